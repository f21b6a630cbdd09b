package config

import (
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// Config is the top-level fixforge configuration.
type Config struct {
	Analysis Analysis `mapstructure:"analysis"`
	Output   Output   `mapstructure:"output"`
	AI       AI       `mapstructure:"ai"`
}

// Analysis defines which rule categories run by default. Command-line flags
// override these per invocation.
type Analysis struct {
	Syntax      bool `mapstructure:"syntax"`
	Security    bool `mapstructure:"security"`
	Performance bool `mapstructure:"performance"`
	CodeSmells  bool `mapstructure:"code_smells"`
	Complexity  bool `mapstructure:"complexity"`
	DeadCode    bool `mapstructure:"dead_code"`
	TypeHints   bool `mapstructure:"type_hints"`
}

// Output defines output preferences.
type Output struct {
	Color  bool   `mapstructure:"color"`
	Format string `mapstructure:"format"`
}

// AI defines fix-model settings for delegable issues.
type AI struct {
	Model     string `mapstructure:"model"`
	KeyEnvVar string `mapstructure:"key_env_var"`
}

// APIKey resolves the fix-model API key from the configured environment
// variable. Empty when unset.
func (a AI) APIKey() string {
	return os.Getenv(a.KeyEnvVar)
}

// expandPath replaces a leading ~ with the user's home directory.
func expandPath(path string) string {
	if strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[2:])
	}
	return path
}

// Load reads configuration from the given path (or the default location)
// and returns a Config with all defaults applied.
func Load(cfgFile string) (*Config, error) {
	v := viper.New()

	// Set defaults.
	v.SetDefault("analysis.syntax", DefaultAnalysis.Syntax)
	v.SetDefault("analysis.security", DefaultAnalysis.Security)
	v.SetDefault("analysis.performance", DefaultAnalysis.Performance)
	v.SetDefault("analysis.code_smells", DefaultAnalysis.CodeSmells)
	v.SetDefault("analysis.complexity", DefaultAnalysis.Complexity)
	v.SetDefault("analysis.dead_code", DefaultAnalysis.DeadCode)
	v.SetDefault("analysis.type_hints", DefaultAnalysis.TypeHints)
	v.SetDefault("output.color", DefaultOutput.Color)
	v.SetDefault("output.format", DefaultOutput.Format)
	v.SetDefault("ai.model", DefaultAI.Model)
	v.SetDefault("ai.key_env_var", DefaultAI.KeyEnvVar)

	if cfgFile != "" {
		v.SetConfigFile(expandPath(cfgFile))
	} else {
		configDir := expandPath(DefaultConfigDir)
		v.AddConfigPath(configDir)
		v.SetConfigName("config")
		v.SetConfigType("yaml")
	}

	// Read config file if it exists; missing file is not an error.
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error for problems other than file not found.
			if !os.IsNotExist(err) {
				return nil, err
			}
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// DBPath returns the full path to the SQLite history database.
func DBPath() string {
	return filepath.Join(expandPath(DefaultConfigDir), DefaultDBName)
}

// ConfigDir returns the expanded configuration directory.
func ConfigDir() string {
	return expandPath(DefaultConfigDir)
}
