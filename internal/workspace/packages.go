package workspace

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"
)

// Workspace is the parsed pnpm-workspace.yaml.
type Workspace struct {
	Packages []string `yaml:"packages"`
}

// LoadWorkspace reads pnpm-workspace.yaml from the repository root.
func LoadWorkspace(root string) (*Workspace, error) {
	p := filepath.Join(root, WorkspaceMarker)
	data, err := os.ReadFile(p)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", p, err)
	}

	var ws Workspace
	if err := yaml.Unmarshal(data, &ws); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", p, err)
	}
	return &ws, nil
}

// Covers reports whether a repo-relative directory is matched by one of the
// workspace package globs. Negated globs ("!pattern") exclude.
func (w *Workspace) Covers(relDir string) bool {
	relDir = strings.TrimSuffix(filepath.ToSlash(filepath.Clean(relDir)), "/")

	covered := false
	for _, pattern := range w.Packages {
		negate := strings.HasPrefix(pattern, "!")
		pattern = strings.TrimPrefix(pattern, "!")
		pattern = strings.TrimPrefix(strings.TrimSuffix(pattern, "/"), "./")

		if matchGlob(pattern, relDir) {
			covered = !negate
		}
	}
	return covered
}

// matchGlob supports path.Match syntax plus a trailing "/**" that matches
// any depth below the prefix.
func matchGlob(pattern, dir string) bool {
	if prefix, ok := strings.CutSuffix(pattern, "/**"); ok {
		return strings.HasPrefix(dir, prefix+"/")
	}
	ok, err := path.Match(pattern, dir)
	return err == nil && ok
}
