// Package config loads the text core configuration.
//
// Configuration comes from three sources, later ones overriding earlier:
//
//  1. Built-in defaults (Default)
//  2. A TOML or YAML file, chosen by extension (Load)
//  3. Environment variables such as TEXTCORE_FONT_SIZE (ApplyEnv)
//
// A file only needs the keys it changes:
//
//	[font]
//	family = "Go"
//	size = 16
//
//	[layout]
//	max_width = 640
//
// The bind methods turn a validated configuration into the components it
// describes: NewShaper, EditorOptions and Logger. Watch reloads a file when
// it changes on disk.
package config
