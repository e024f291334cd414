// Package config loads the settings of the tilegen command.
//
// Settings come from three layers, later ones winning:
//
//  1. built-in defaults (Default)
//  2. an optional YAML or TOML file, chosen by extension
//  3. TILEGEN_* environment variables
//
// The merged result is checked with validator struct tags before use.
package config
