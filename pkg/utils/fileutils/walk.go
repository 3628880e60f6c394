package fileutils

import (
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// FindFiles returns every regular file below root whose name ends in ext, as paths
// joined onto root, sorted element by element so a directory's contents stay together.
func FindFiles(root, ext string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(root), "**/*"+ext,
		doublestar.WithFilesOnly(),
		doublestar.WithFailOnIOErrors(),
	)
	if err != nil {
		return nil, err
	}

	files := make([]string, 0, len(matches))
	for _, m := range matches {
		files = append(files, filepath.Join(root, filepath.FromSlash(m)))
	}
	slices.SortFunc(files, ComparePaths)

	return files, nil
}

// ComparePaths orders paths by comparing their elements in turn, so "a/x" sorts before
// "a-b" even though '-' sorts before the separator.
func ComparePaths(a, b string) int {
	sep := string(filepath.Separator)
	return slices.Compare(strings.Split(a, sep), strings.Split(b, sep))
}

// WalkDirs walks a directory tree and returns every directory, including root itself
func WalkDirs(root string) ([]string, error) {
	abs, err := filepath.Abs(root)
	if err != nil {
		return nil, err
	}

	dirs := make([]string, 0)
	err = filepath.WalkDir(abs, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}

		if d.IsDir() {
			dirs = append(dirs, path)
		}

		return nil
	})

	return dirs, err
}
