package cli

import (
	"bytes"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/matzehuels/entitree/pkg/errors"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), configFile)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := loadConfig(writeConfig(t, "color = false\nformat = \"svg\"\ndetailed = true\n"))
	require.NoError(t, err)
	require.NotNil(t, cfg.Color)
	assert.False(t, *cfg.Color)
	assert.Equal(t, "svg", cfg.Format)
	assert.True(t, cfg.Detailed)
}

func TestLoadConfigMissing(t *testing.T) {
	cfg, err := loadConfig(filepath.Join(t.TempDir(), "none.toml"))
	require.NoError(t, err)
	assert.Equal(t, Config{}, cfg)
}

func TestLoadConfigErrors(t *testing.T) {
	tests := []struct {
		name    string
		content string
	}{
		{"unknown key", "colour = true\n"},
		{"bad format", "format = \"gif\"\n"},
		{"bad syntax", "color = \n"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := loadConfig(writeConfig(t, tt.content))
			require.Error(t, err)
			assert.True(t, errors.Is(err, errors.ErrCodeInvalidInput), "code = %v", errors.GetCode(err))
		})
	}
}

func TestResolveColor(t *testing.T) {
	on, off := true, false

	tests := []struct {
		name    string
		flags   colorFlags
		cfg     Config
		file    bool
		noColor string
		force   string
		want    bool
	}{
		{"terminal default", colorFlags{color: true}, Config{}, false, "", "1", true},
		{"pipe default", colorFlags{color: true}, Config{}, false, "", "", false},
		{"pipe ignores config", colorFlags{color: true}, Config{Color: &on}, false, "", "", false},
		{"file default", colorFlags{color: true}, Config{Color: &on}, true, "", "1", false},
		{"config off", colorFlags{color: true}, Config{Color: &off}, false, "", "1", false},
		{"env beats config", colorFlags{color: true}, Config{Color: &on}, false, "1", "1", false},
		{"color flag beats env", colorFlags{color: true, colorSet: true}, Config{}, false, "1", "", true},
		{"color flag on file", colorFlags{color: true, colorSet: true}, Config{}, true, "", "", true},
		{"color=false flag", colorFlags{color: false, colorSet: true}, Config{Color: &on}, false, "", "1", false},
		{"no-color flag wins", colorFlags{color: true, colorSet: true, noColor: true, noColorSet: true}, Config{}, false, "", "1", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv("NO_COLOR", tt.noColor)
			t.Setenv("CLICOLOR", "")
			t.Setenv("CLICOLOR_FORCE", tt.force)
			var out io.Writer = &bytes.Buffer{}
			if tt.file {
				out = nil
			}
			assert.Equal(t, tt.want, resolveColor(tt.flags, tt.cfg, out))
		})
	}
}
