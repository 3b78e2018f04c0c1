//go:build integration

package integration_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/namewta/forge/internal/scaffold"
)

// testEnv holds paths to an isolated monorepo.
type testEnv struct {
	Root        string // repository root with pnpm-workspace.yaml
	TemplateDir string // apps/template-plugin
	AgentsDir   string // .agents at the root
}

// setupTestEnv creates a monorepo with a complete template plugin and an
// .agents directory, and isolates HOME so no user config leaks in.
func setupTestEnv(t *testing.T) *testEnv {
	t.Helper()

	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	t.Setenv("HOME", t.TempDir())

	env := &testEnv{
		Root:        root,
		TemplateDir: filepath.Join(root, "apps", "template-plugin"),
		AgentsDir:   filepath.Join(root, ".agents"),
	}

	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages:\n  - \"apps/*\"\n  - \"packages/*\"\n")
	writeFile(t, filepath.Join(root, "package.json"), "{\n  \"name\": \"monorepo\",\n  \"private\": true\n}\n")
	if err := os.MkdirAll(env.AgentsDir, 0755); err != nil {
		t.Fatal(err)
	}
	setupTemplate(t, env.TemplateDir)
	return env
}

// setupTemplate writes a template plugin carrying every rewritten file.
func setupTemplate(t *testing.T, dir string) {
	t.Helper()

	writeFile(t, filepath.Join(dir, "manifest.json"), `{
  "id": "template-plugin",
  "name": "Template Plugin",
  "version": "2.4.1",
  "minAppVersion": "1.6.0",
  "description": "Starter plugin, edit me.",
  "author": "template author",
  "authorUrl": "https://example.org",
  "isDesktopOnly": false
}
`)
	writeFile(t, filepath.Join(dir, "package.json"), `{
  "name": "template-plugin",
  "version": "2.4.1",
  "private": true,
  "type": "module",
  "scripts": {
    "dev": "node esbuild.config.mjs",
    "typecheck": "tsc --noEmit"
  },
  "dependencies": {
    "@repo/core": "workspace:*",
    "react": "^19.0.0"
  }
}
`)
	writeFile(t, filepath.Join(dir, "versions.json"), "{\n  \"2.4.1\": \"1.6.0\",\n  \"2.4.0\": \"1.5.0\"\n}\n")
	writeFile(t, filepath.Join(dir, "styles.css"), ".template-plugin-root {\n  padding: 8px;\n}\n")
	writeFile(t, filepath.Join(dir, "src", "main.ts"), `import { TemplatePluginSettingTab } from "./settings/SettingTab";
import { DEFAULT_DATA, type TemplatePluginData } from "./data/schema";

export default class TemplatePlugin extends Plugin {
  data: TemplatePluginData = DEFAULT_DATA;

  async onload(): Promise<void> {
    this.addSettingTab(new TemplatePluginSettingTab(this.app, this));
    this.addCommand({ id: "template-plugin-open", name: "Open template plugin settings", callback: () => {} });
  }

  async updateTemplateText(text: string): Promise<void> {}
  getTemplateText(): string { return ""; }
}
`)
	writeFile(t, filepath.Join(dir, "src", "settings", "SettingTab.tsx"), `import type TemplatePlugin from "../main";
import { mountTemplateApp } from "../react/mount";

export class TemplatePluginSettingTab extends PluginSettingTab {
  display(): void {
    this.containerEl.createEl("h2", { text: "Template Plugin Settings" });
  }
}
`)
	writeFile(t, filepath.Join(dir, "src", "react", "App.tsx"), `export interface TemplateAppProps { value: string }
export function TemplateApp(props: TemplateAppProps) { return <div className="template-plugin-root" />; }
`)
	writeFile(t, filepath.Join(dir, "src", "react", "mount.tsx"), `import { TemplateApp, type TemplateAppProps } from "./App";
export function mountTemplateApp(el: HTMLElement, props: TemplateAppProps) {}
`)
	writeFile(t, filepath.Join(dir, "src", "data", "schema.ts"), `export interface TemplatePluginData { sampleText: string }
export const DEFAULT_DATA: TemplatePluginData = { sampleText: "" };
`)
	writeFile(t, filepath.Join(dir, "src", "utils", "format.ts"), "// TemplatePlugin helpers are not rewritten here.\n")

	writeFile(t, filepath.Join(dir, "main.js"), "compiled")
	writeFile(t, filepath.Join(dir, "node_modules", "react", "package.json"), "{}")
	writeFile(t, filepath.Join(dir, ".turbo", "turbo-build.log"), "")
	writeFile(t, filepath.Join(dir, "dist", "main.js"), "")
	writeFile(t, filepath.Join(dir, "release", "v2.4.1", "main.js"), "")
}

func scaffoldOptions(env *testEnv, name string) scaffold.Options {
	return scaffold.Options{
		PluginName: name,
		Starts:     []string{env.Root},
		Now: func() time.Time {
			return time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)
		},
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		t.Fatalf("creating dir for %s: %v", path, err)
	}
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing %s: %v", path, err)
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

func assertFileExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Errorf("expected file to exist: %s", path)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

func assertContains(t *testing.T, content, substr string) {
	t.Helper()
	if !strings.Contains(content, substr) {
		t.Errorf("content does not contain %q\n--- content ---\n%s", substr, content)
	}
}

func assertNotContains(t *testing.T, content, substr string) {
	t.Helper()
	if strings.Contains(content, substr) {
		t.Errorf("content should not contain %q\n--- content ---\n%s", substr, content)
	}
}
