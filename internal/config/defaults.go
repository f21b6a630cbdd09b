// Package config provides configuration loading and defaults for fixforge.
package config

// DefaultConfigDir is the default location for fixforge configuration.
const DefaultConfigDir = "~/.config/fixforge"

// DefaultDBName is the filename for the SQLite history database.
const DefaultDBName = "fixforge.db"

// DefaultConfigFile is the filename for the YAML config.
const DefaultConfigFile = "config.yaml"

// DefaultAnalysis holds the default category toggles: everything on.
var DefaultAnalysis = Analysis{
	Syntax:      true,
	Security:    true,
	Performance: true,
	CodeSmells:  true,
	Complexity:  true,
	DeadCode:    true,
	TypeHints:   true,
}

// DefaultOutput holds the default output preferences.
var DefaultOutput = Output{
	Color:  true,
	Format: "text",
}

// DefaultAI holds the default fix-model settings. The API key is never
// stored in configuration; it comes from the environment.
var DefaultAI = AI{
	Model:     "",
	KeyEnvVar: "ANTHROPIC_API_KEY",
}
