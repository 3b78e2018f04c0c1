// Package scaffold creates a new Obsidian plugin app by cloning the
// monorepo's template app. It powers the "forge create plugin" command:
// the template tree is copied without build output, package.json and
// manifest.json are re-stamped for the new plugin, identifiers in the known
// source files are renamed, and a fresh README and CHANGELOG are written.
//
// The new app is assembled in a hidden staging directory next to the target
// and moved into place only once every step has succeeded.
package scaffold
