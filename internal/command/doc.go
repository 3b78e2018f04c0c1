// Package command renders agent command definitions: a markdown file with
// YAML front matter and TODO placeholders, named after a kebab-case command.
// It powers the "forge create command" command.
package command
