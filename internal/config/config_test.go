package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultValidates(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 12.0, cfg.Analysis.GroupDeltaE)
	assert.Equal(t, 0.15, cfg.Analysis.ClusterDistanceFrac)
	assert.Equal(t, "text", cfg.Output.Format)
	assert.Equal(t, "info", cfg.Logging.Level)
}

func TestLoadOverridesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	body := `
[analysis]
group_delta_e = 8.5

[output]
format = "json"
preview = false

[logging]
level = "debug"
`
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 8.5, cfg.Analysis.GroupDeltaE)
	// Untouched keys keep their defaults.
	assert.Equal(t, 0.15, cfg.Analysis.ClusterDistanceFrac)
	assert.Equal(t, "json", cfg.Output.Format)
	assert.False(t, cfg.Output.Preview)
	assert.Equal(t, "debug", cfg.Logging.Level)
}

func TestLoadRejectsBadValues(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"negative delta", "[analysis]\ngroup_delta_e = -1.0\n"},
		{"fraction too large", "[analysis]\ncluster_distance_frac = 1.5\n"},
		{"unknown format", "[output]\nformat = \"yaml\"\n"},
		{"unknown level", "[logging]\nlevel = \"loud\"\n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "config.toml")
			require.NoError(t, os.WriteFile(path, []byte(tt.body), 0o644))

			_, err := Load(path)
			assert.Error(t, err)
		})
	}
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.toml"))
	assert.Error(t, err)
}
