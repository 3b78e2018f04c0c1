package scaffold

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"
	"time"
)

const templateManifest = `{
  "id": "template-plugin",
  "name": "Template Plugin",
  "version": "1.3.0",
  "minAppVersion": "1.5.0",
  "description": "Template plugin.",
  "author": "someone",
  "authorUrl": "https://example.org",
  "fundingUrl": "https://x",
  "isDesktopOnly": false
}
`

const templatePackage = `{
  "name": "template-plugin",
  "version": "1.3.0",
  "private": true,
  "scripts": {
    "dev": "node esbuild.mjs --watch",
    "build": "node esbuild.mjs"
  }
}
`

const templateMainTS = `import { ObsidianPluginBase } from "@repo/core";

import { DEFAULT_DATA, migrateData, type TemplatePluginData } from "./data/schema";
import { TemplatePluginSettingTab } from "./settings/SettingTab";

export default class TemplatePlugin extends ObsidianPluginBase<TemplatePluginData> {
  protected override async onPluginReady(): Promise<void> {
    this.addSettingTab(new TemplatePluginSettingTab(this.app, this));
    this.addCommand({
      id: "template-plugin-open-settings",
      name: "Open template plugin settings",
      callback: () => {}
    });
  }

  async updateTemplateText(sampleText: string): Promise<void> {}

  getTemplateText(): string {
    return this.data.sampleText;
  }
}
`

const templateSettingTab = `import type TemplatePlugin from "../main";
import { mountTemplateApp } from "../react/mount";

export class TemplatePluginSettingTab extends PluginSettingTab {
  display(): void {
    containerEl.createEl("h2", { text: "Template Plugin Settings" });
  }
}
`

const templateAppTSX = `export interface TemplateAppProps {
  value: string;
}

export function TemplateApp({ value, onSave }: TemplateAppProps): ReactElement {
  return <h3>Template Plugin</h3>;
}
`

// setupRepo builds a minimal monorepo with a template app and returns its root.
func setupRepo(t *testing.T) string {
	t.Helper()
	root, err := filepath.EvalSymlinks(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}

	writeFile(t, filepath.Join(root, "pnpm-workspace.yaml"), "packages:\n  - \"apps/*\"\n  - \"packages/*\"\n")

	tpl := filepath.Join(root, "apps", "template-plugin")
	writeFile(t, filepath.Join(tpl, "manifest.json"), templateManifest)
	writeFile(t, filepath.Join(tpl, "package.json"), templatePackage)
	writeFile(t, filepath.Join(tpl, "esbuild.mjs"), "// build\n")
	writeFile(t, filepath.Join(tpl, "styles.css"), ".template-plugin-root { display: block; }\n")
	writeFile(t, filepath.Join(tpl, "src", "main.ts"), templateMainTS)
	writeFile(t, filepath.Join(tpl, "src", "settings", "SettingTab.tsx"), templateSettingTab)
	writeFile(t, filepath.Join(tpl, "src", "react", "App.tsx"), templateAppTSX)
	writeFile(t, filepath.Join(tpl, "src", "lib", "util.ts"), "export const x = 1;\n")

	// Build output and dependencies that must not be copied.
	writeFile(t, filepath.Join(tpl, "main.js"), "bundle")
	writeFile(t, filepath.Join(tpl, "node_modules", "react", "index.js"), "")
	writeFile(t, filepath.Join(tpl, "dist", "out.js"), "")
	writeFile(t, filepath.Join(tpl, ".turbo", "cache"), "")
	writeFile(t, filepath.Join(tpl, "release", "v1.3.0", "main.js"), "")
	writeFile(t, filepath.Join(tpl, "src", "dist", "x.js"), "")
	writeFile(t, filepath.Join(tpl, "src", "lib", "node_modules", "y.js"), "")
	writeFile(t, filepath.Join(tpl, "src", "lib", "main.js"), "")

	return root
}

func testOptions(root, name string) Options {
	return Options{
		PluginName: name,
		Starts:     []string{root},
		Now: func() time.Time {
			return time.Date(2026, 3, 14, 9, 0, 0, 0, time.UTC)
		},
	}
}

// listTree returns every path below root, relative and sorted.
func listTree(t *testing.T, root string) []string {
	t.Helper()
	var paths []string
	err := filepath.WalkDir(root, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		rel, _ := filepath.Rel(root, p)
		paths = append(paths, rel)
		return nil
	})
	if err != nil {
		t.Fatal(err)
	}
	sort.Strings(paths)
	return paths
}

func assertNoStaging(t *testing.T, appsDir string) {
	t.Helper()
	entries, err := os.ReadDir(appsDir)
	if err != nil {
		t.Fatal(err)
	}
	for _, e := range entries {
		if strings.Contains(e.Name(), "-staging-") {
			t.Errorf("staging directory left behind: %s", e.Name())
		}
	}
}

func mkdirAll(t *testing.T, path string) {
	t.Helper()
	if err := os.MkdirAll(path, 0755); err != nil {
		t.Fatal(err)
	}
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	mkdirAll(t, filepath.Dir(path))
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
	if _, err := os.Stat(path); err != nil {
		t.Errorf("expected file to exist: %s (error: %v)", path, err)
	}
}

func assertFileNotExists(t *testing.T, path string) {
	t.Helper()
	if _, err := os.Stat(path); err == nil {
		t.Errorf("expected file NOT to exist: %s", path)
	}
}

func assertFileEquals(t *testing.T, path, want string) {
	t.Helper()
	if got := readFile(t, path); got != want {
		t.Errorf("%s =\n%s\nwant\n%s", path, got, want)
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
