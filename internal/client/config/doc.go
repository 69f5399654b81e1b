// Package config loads runtime settings for the satchel client.
//
// Sources are applied in order, later ones overriding earlier ones:
// built-in defaults, a JSON file (-c/-config), SATCHEL_* environment
// variables, and command-line flags.
package config
