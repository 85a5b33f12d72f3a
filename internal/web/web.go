// Package web renders the HTML form and results pages.
package web

import (
	"embed"
	"encoding/base64"
	"html/template"
	"io"
	"io/fs"
	"net/http"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// LangCookie stores the selected UI language.
const LangCookie = "lang"

// TemplateLink is one entry of the template switcher.
type TemplateLink struct {
	ID    string
	Title string
}

// CardView is one rendered card on the results page.
type CardView struct {
	Name     string
	Filename string
	DataURI  template.URL
}

type Page struct {
	Strings    Strings
	Lang       string
	TemplateID string
	Heading    string
	Multi      bool
	Templates  []TemplateLink
	Logo       string
	Input      string
	Warning    string
	Cards      []CardView
	// ZipNames feeds the bundle form; empty hides the download-all action.
	ZipNames   string
	Fallback   bool
}

type Views struct {
	tmpl *template.Template
}

func NewViews() (*Views, error) {
	t, err := template.New("").ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, err
	}
	return &Views{tmpl: t}, nil
}

// Render writes the page to w.
func (v *Views) Render(w io.Writer, p Page) error {
	return v.tmpl.ExecuteTemplate(w, "page.html", p)
}

// Static serves the embedded stylesheet.
func Static() http.FileSystem {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return http.FS(sub)
}

func DataURI(png []byte) template.URL {
	return template.URL("data:image/png;base64," + base64.StdEncoding.EncodeToString(png))
}
