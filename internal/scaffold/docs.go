package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"text/template"
)

//go:embed templates/*.tmpl
var docsFS embed.FS

var docTemplates = template.Must(template.ParseFS(docsFS, "templates/*.tmpl"))

// DocData holds the variables available to the README and CHANGELOG templates.
type DocData struct {
	Name    string // e.g., "daily-notes-helper"
	Version string // e.g., "0.0.1"
	Date    string // YYYY-MM-DD
}

// BuildReadme renders README.md for a new plugin.
func BuildReadme(data DocData) (string, error) {
	return renderDoc("README.md.tmpl", data)
}

// BuildChangelog renders CHANGELOG.md for a new plugin.
func BuildChangelog(data DocData) (string, error) {
	return renderDoc("CHANGELOG.md.tmpl", data)
}

func renderDoc(name string, data DocData) (string, error) {
	var buf bytes.Buffer
	if err := docTemplates.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("executing template %s: %w", name, err)
	}
	return buf.String(), nil
}
