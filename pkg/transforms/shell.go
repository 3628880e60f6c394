package transforms

import (
	"html/template"
	"io"
	"path"
)

// DefaultSecondaryStylesheet is linked next to the primary stylesheet
const DefaultSecondaryStylesheet = "page.css"

// shellTemplate keeps the class names of the site's index page so its stylesheet applies.
var shellTemplate = template.Must(template.New("page").Parse(`<!doctype html>
<html lang="en">
<head>
  <meta charset="utf-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1" />
  <title>{{ .Title }}</title>
  <link rel="stylesheet" type="text/css" href="{{ .Stylesheet }}" />
  <link rel="stylesheet" type="text/css" href="{{ .SecondaryStylesheet }}" />
</head>
<body>
  <main class="page">
    <div class="maketitle">
      <h2 class="titleHead">{{ .Title }}</h2>
      <div class="author"></div><br />
      <div class="date">{{ .Date }}</div>
    </div>
{{ .Body }}
  </main>
</body>
</html>
`))

// ShellData is the input to the page shell
type ShellData struct {
	Title string
	Date  string

	// Stylesheet is the primary stylesheet href, relative to the page
	Stylesheet string
	// Secondary is the file name of the second stylesheet, which lives next to the primary one
	Secondary string

	Body template.HTML
}

// SecondaryStylesheet is the primary stylesheet's directory joined with the secondary name
func (d ShellData) SecondaryStylesheet() string {
	name := d.Secondary
	if name == "" {
		name = DefaultSecondaryStylesheet
	}
	return path.Join(path.Dir(d.Stylesheet), name)
}

// RenderShell writes a complete HTML page wrapping d.Body. Title, date and stylesheet
// hrefs are escaped, the body is written verbatim.
func RenderShell(w io.Writer, d ShellData) error {
	return shellTemplate.Execute(w, d)
}
