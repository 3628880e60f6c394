package fileutils

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
)

// FileMode is the permission given to written files
const FileMode os.FileMode = 0o644

// AtomicWrite writes a file atomically.
func AtomicWrite(path string, gen func(w io.Writer) error) error {
	return replaceFile(path, gen, false)
}

// AtomicEdit edits a file atomically, leaving it alone when the new content is identical.
func AtomicEdit(path string, gen func(w io.Writer) error) error {
	return replaceFile(path, gen, true)
}

// WriteFile writes path atomically, through AtomicEdit when it already exists so an
// unchanged file is left untouched.
func WriteFile(path string, gen func(w io.Writer) error, exists bool) error {
	if exists {
		return AtomicEdit(path, gen)
	}
	return AtomicWrite(path, gen)
}

// replaceFile generates into a temp file next to path and renames it into place
func replaceFile(path string, gen func(w io.Writer) error, keepIdentical bool) error {
	dir := filepath.Dir(path)

	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return err
	}
	defer func() {
		_ = tmp.Close()
		_ = os.Remove(tmp.Name())
	}()

	if err := tmp.Chmod(FileMode); err != nil {
		return err
	}
	if err := gen(tmp); err != nil {
		return err
	}
	if err := tmp.Sync(); err != nil {
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}

	if keepIdentical {
		same, err := sameContent(tmp.Name(), path)
		if err != nil {
			return err
		}
		if same {
			return nil
		}
	}

	if err := os.Rename(tmp.Name(), path); err != nil {
		return err
	}
	if df, err := os.Open(dir); err == nil {
		_ = df.Sync()
		_ = df.Close()
	}

	return nil
}

// sameContent reports whether two files hold the same bytes. A missing b is not an error.
func sameContent(a, b string) (bool, error) {
	bInfo, err := os.Stat(b)
	if os.IsNotExist(err) {
		return false, nil
	} else if err != nil {
		return false, err
	}

	aInfo, err := os.Stat(a)
	if err != nil {
		return false, err
	}
	if aInfo.Size() != bInfo.Size() {
		return false, nil
	}

	aData, err := os.ReadFile(a)
	if err != nil {
		return false, err
	}
	bData, err := os.ReadFile(b)
	if err != nil {
		return false, err
	}
	return bytes.Equal(aData, bData), nil
}
