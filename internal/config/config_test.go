package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	// Point at a directory with no config file: defaults must apply.
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	require.NoError(t, err)

	assert.True(t, cfg.Analysis.Security)
	assert.True(t, cfg.Analysis.Syntax)
	assert.True(t, cfg.Analysis.TypeHints)
	assert.True(t, cfg.Output.Color)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "ANTHROPIC_API_KEY", cfg.AI.KeyEnvVar)
}

func TestLoadFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
analysis:
  dead_code: false
  type_hints: false
output:
  color: false
  format: json
ai:
  model: claude-sonnet-4-20250514
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.False(t, cfg.Analysis.DeadCode)
	assert.False(t, cfg.Analysis.TypeHints)
	// Untouched keys keep their defaults.
	assert.True(t, cfg.Analysis.Security)
	assert.False(t, cfg.Output.Color)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.Equal(t, "claude-sonnet-4-20250514", cfg.AI.Model)
}

func TestAPIKeyFromEnv(t *testing.T) {
	t.Setenv("FIXFORGE_TEST_KEY", "sk-test")
	ai := AI{KeyEnvVar: "FIXFORGE_TEST_KEY"}
	assert.Equal(t, "sk-test", ai.APIKey())

	assert.Empty(t, AI{KeyEnvVar: "FIXFORGE_UNSET_KEY"}.APIKey())
}

func TestDBPathUnderConfigDir(t *testing.T) {
	assert.Equal(t, filepath.Join(ConfigDir(), DefaultDBName), DBPath())
}
