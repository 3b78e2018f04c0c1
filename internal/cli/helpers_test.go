package cli

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/spf13/viper"
)

// isolateConfig points the config file at an empty home directory.
func isolateConfig(t *testing.T) string {
	t.Helper()
	home := t.TempDir()
	t.Setenv("HOME", home)
	viper.Reset()
	t.Cleanup(viper.Reset)
	return home
}

// execute runs a fresh command tree and returns stdout and stderr.
func execute(t *testing.T, args ...string) (string, string, error) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	root := newRootCmd()
	root.SetOut(&stdout)
	root.SetErr(&stderr)
	root.SetArgs(args)
	err := root.Execute()
	return stdout.String(), stderr.String(), err
}

// setupRepo creates a monorepo with a minimal template app and returns its root.
func setupRepo(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages:\n  - \"apps/*\"\n")
	tpl := filepath.Join(root, "apps", "template-plugin")
	writeFile(t, filepath.Join(tpl, "manifest.json"), `{
  "id": "template-plugin",
  "name": "Template Plugin",
  "version": "1.0.0",
  "minAppVersion": "1.5.0",
  "description": "Template plugin.",
  "author": "someone",
  "authorUrl": "https://example.org",
  "isDesktopOnly": false
}
`)
	writeFile(t, filepath.Join(tpl, "package.json"), "{\n  \"name\": \"template-plugin\",\n  \"version\": \"1.0.0\"\n}\n")
	writeFile(t, filepath.Join(tpl, "src", "main.ts"), "export default class TemplatePlugin {}\n")
	return root
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}
}

func readFile(t *testing.T, path string) string {
	t.Helper()
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("reading %s: %v", path, err)
	}
	return string(data)
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("output does not contain %q\n--- output ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("output should not contain %q\n--- output ---\n%s", substr, content)
	}
}
