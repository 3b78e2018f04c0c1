// Package manifest reads, patches and validates the JSON descriptors of an
// Obsidian plugin app (manifest.json, package.json, versions.json).
//
// Documents keep their keys in load order so that patching a handful of
// fields leaves the rest of the file recognizable in a diff. The plugin
// manifest is checked against an embedded JSON Schema.
package manifest
