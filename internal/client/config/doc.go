// Package config loads settings for the poetrykeeper CLI: defaults first,
// then an optional JSON or YAML file named by -c/-config, then flags.
package config
