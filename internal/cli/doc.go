// Package cli defines the Cobra command tree for the forge CLI. Each file
// in this package builds one top-level command (create, config, version)
// and attaches it to the root command. Command implementations delegate to
// internal packages for the generators and only handle flag parsing and
// output formatting.
package cli
