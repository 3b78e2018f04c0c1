// Package config manages user-level settings stored at ~/.forge/config.yaml.
// Settings provide defaults for scaffold flags (author, author URL, minimum
// app version, template and apps directories) and can be overridden with
// FORGE_* environment variables.
package config
