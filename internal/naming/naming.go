// Package naming validates generator names and derives the display and
// identifier forms used in generated files.
package naming

import (
	"fmt"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/gosimple/slug"
	"github.com/namewta/forge/internal/errs"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

const pluginSuffix = "Plugin"

var (
	commandNamePattern = regexp.MustCompile(`^[A-Za-z0-9-]*[A-Za-z0-9][A-Za-z0-9-]*$`)
	pluginNamePattern  = regexp.MustCompile(`^[a-z0-9]+(?:-[a-z0-9]+)*$`)
)

// ValidateCommandName accepts letters, digits and hyphens. A name made only
// of hyphens (e.g. "---") is rejected: at least one letter or digit is
// required so the file name and title are never blank.
func ValidateCommandName(name string) error {
	if commandNamePattern.MatchString(name) {
		return nil
	}
	return errs.Newf(errs.InvalidName,
		"command name may only contain letters, digits and hyphens (got %q)%s", name, suggestion(name))
}

// ValidatePluginName requires hyphen-case: lowercase letters and digits in
// segments joined by single hyphens.
func ValidatePluginName(name string) error {
	if pluginNamePattern.MatchString(name) {
		return nil
	}
	return errs.Newf(errs.InvalidName,
		"invalid plugin name %q: use hyphen-case with lowercase letters and digits only (example: daily-notes-helper)%s",
		name, suggestion(name))
}

// Suggest returns a hyphen-case slug for name, or "" when no valid slug
// differs from the input.
func Suggest(name string) string {
	s := slug.Make(name)
	if s == name || !pluginNamePattern.MatchString(s) {
		return ""
	}
	return s
}

func suggestion(name string) string {
	if s := Suggest(name); s != "" {
		return fmt.Sprintf("; did you mean %q?", s)
	}
	return ""
}

// TitleCase turns "git-release" into "Git Release".
func TitleCase(name string) string {
	return strings.Join(capitalizeAll(strings.Split(name, "-")), " ")
}

// PascalCase turns "daily-notes" into "DailyNotes".
func PascalCase(name string) string {
	return strings.Join(capitalizeAll(strings.Split(name, "-")), "")
}

// PluginClassName returns the PascalCase name with a "Plugin" suffix,
// unless it already ends with one.
func PluginClassName(name string) string {
	pascal := PascalCase(name)
	if strings.HasSuffix(pascal, pluginSuffix) {
		return pascal
	}
	return pascal + pluginSuffix
}

// ComponentPrefix strips a trailing "Plugin" from a class name.
func ComponentPrefix(className string) string {
	return strings.TrimSuffix(className, pluginSuffix)
}

func capitalizeAll(words []string) []string {
	out := make([]string, len(words))
	for i, w := range words {
		out[i] = capitalize(w)
	}
	return out
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	if word == "" {
		return ""
	}
	_, size := utf8.DecodeRuneInString(word)
	return cases.Upper(language.Und).String(word[:size]) + cases.Lower(language.Und).String(word[size:])
}
