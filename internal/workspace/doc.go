// Package workspace locates the directories the generators write into: the
// nearest .agents/commands directory for command files, and the monorepo
// root (pnpm-workspace.yaml next to apps/) for plugin scaffolds.
package workspace
