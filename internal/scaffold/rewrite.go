package scaffold

import (
	"fmt"
	"os"
	"strings"
)

// Replacement is a literal token rename.
type Replacement struct {
	Old string
	New string
}

// RewriteTargets are the template files, relative to the app root, whose
// identifiers are renamed. Missing files are skipped.
var RewriteTargets = []string{
	"src/main.ts",
	"src/settings/SettingTab.tsx",
	"src/react/App.tsx",
	"src/react/mount.tsx",
	"src/data/schema.ts",
	"styles.css",
}

// ReplacementTable returns the ordered token table for a plugin. Longer
// tokens precede the shorter tokens they contain (TemplatePluginSettingTab
// before TemplatePlugin, TemplateAppProps before TemplateApp).
func ReplacementTable(className, componentPrefix, displayName, pluginName string) []Replacement {
	return []Replacement{
		{"TemplatePluginSettingTab", className + "SettingTab"},
		{"TemplatePluginData", className + "Data"},
		{"mountTemplateApp", "mount" + componentPrefix + "App"},
		{"TemplateAppProps", componentPrefix + "AppProps"},
		{"TemplateApp", componentPrefix + "App"},
		{"updateTemplateText", "updateSampleText"},
		{"getTemplateText", "getSampleText"},
		{"TemplatePlugin", className},
		{"Template Plugin", displayName},
		{"template plugin", strings.ToLower(displayName)},
		{"template-plugin", pluginName},
	}
}

// ApplyReplacements applies each replacement, in order, to the whole text.
func ApplyReplacements(text string, table []Replacement) string {
	for _, r := range table {
		text = strings.ReplaceAll(text, r.Old, r.New)
	}
	return text
}

// rewriteFile applies the table to the file at path. It reports false
// without error when the file does not exist.
func rewriteFile(path string, table []Replacement) (bool, error) {
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return false, fmt.Errorf("reading %s: %w", path, err)
	}

	updated := ApplyReplacements(string(data), table)
	if err := os.WriteFile(path, []byte(updated), info.Mode().Perm()); err != nil {
		return false, fmt.Errorf("writing %s: %w", path, err)
	}
	return true, nil
}
