package workspace

import (
	"os"
	"path/filepath"

	"github.com/namewta/forge/internal/errs"
)

// Marker and directory names used during discovery.
const (
	AgentsDir       = ".agents"
	CommandsDir     = "commands"
	WorkspaceMarker = "pnpm-workspace.yaml"
	AppsDir         = "apps"
)

// exists reports whether path exists, regardless of its type.
func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

// ancestors returns dir followed by each of its parents up to the
// filesystem root.
func ancestors(dir string) []string {
	dir = filepath.Clean(dir)
	var out []string
	for {
		out = append(out, dir)
		parent := filepath.Dir(dir)
		if parent == dir {
			return out
		}
		dir = parent
	}
}

// FindUp returns the first directory among start and its ancestors that
// contains marker. The marker may be a file or a directory.
func FindUp(start, marker string) (string, bool) {
	for _, dir := range ancestors(start) {
		if exists(filepath.Join(dir, marker)) {
			return dir, true
		}
	}
	return "", false
}

// DefaultCommandsDir resolves the output directory for command files:
// <dir>/.agents/commands for the nearest ancestor of cwd holding .agents,
// or <cwd>/.agents/commands when there is none.
func DefaultCommandsDir(cwd string) string {
	base := cwd
	if dir, ok := FindUp(cwd, AgentsDir); ok {
		base = dir
	}
	return filepath.Join(base, AgentsDir, CommandsDir)
}

// IsRepoRoot reports whether dir holds both the workspace marker and apps/.
func IsRepoRoot(dir string) bool {
	return exists(filepath.Join(dir, WorkspaceMarker)) && exists(filepath.Join(dir, AppsDir))
}

// FindRepoRoot walks each start directory and its ancestors, in order, and
// returns the first repository root found.
func FindRepoRoot(starts ...string) (string, error) {
	for _, start := range starts {
		if start == "" {
			continue
		}
		abs, err := filepath.Abs(start)
		if err != nil {
			continue
		}
		if resolved, err := filepath.EvalSymlinks(abs); err == nil {
			abs = resolved
		}
		for _, dir := range ancestors(abs) {
			if IsRepoRoot(dir) {
				return dir, nil
			}
		}
	}
	return "", errs.Newf(errs.RepoRootNotFound,
		"cannot locate repository root (missing %s and %s/)", WorkspaceMarker, AppsDir)
}

// DefaultStarts returns the discovery starting points: the working
// directory, then the directory of the running executable.
func DefaultStarts() []string {
	var starts []string
	if cwd, err := os.Getwd(); err == nil {
		starts = append(starts, cwd)
	}
	if exe, err := os.Executable(); err == nil {
		starts = append(starts, filepath.Dir(exe))
	}
	return starts
}
