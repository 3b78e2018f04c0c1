package command

import (
	"bytes"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"text/template"

	"github.com/namewta/forge/internal/errs"
	"github.com/namewta/forge/internal/naming"
)

//go:embed templates/command.md.tmpl
var templateFS embed.FS

var commandTemplate = template.Must(template.ParseFS(templateFS, "templates/command.md.tmpl"))

// Data holds the template variables for a command file.
type Data struct {
	Name  string // e.g., "git-release"
	Title string // Derived: "Git Release"
}

// Result holds the outcome of a Create call.
type Result struct {
	Path string
}

// Render returns the markdown scaffold for the named command.
func Render(name string) (string, error) {
	var buf bytes.Buffer
	data := Data{Name: name, Title: naming.TitleCase(name)}
	if err := commandTemplate.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("executing command template: %w", err)
	}
	return buf.String(), nil
}

// FileName returns the file name used for a command.
func FileName(name string) string {
	return name + ".md"
}

// Create writes <dir>/<name>.md. It never overwrites an existing file and
// writes nothing when the name is invalid.
func Create(name, dir string) (*Result, error) {
	if err := naming.ValidateCommandName(name); err != nil {
		return nil, err
	}

	content, err := Render(name)
	if err != nil {
		return nil, err
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	path := filepath.Join(dir, FileName(name))

	// O_EXCL makes the existence check and the create a single step.
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		if os.IsExist(err) {
			return nil, errs.Newf(errs.AlreadyExists,
				"file already exists: %s (delete it first to regenerate)", path)
		}
		return nil, fmt.Errorf("creating %s: %w", path, err)
	}

	if _, err := f.WriteString(content); err != nil {
		f.Close()
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}
	if err := f.Close(); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return &Result{Path: path}, nil
}
