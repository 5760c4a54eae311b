package configs

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)

	cfg, err := Load(viper.New(), "")
	require.NoError(t, err)

	assert.Equal(t, "tooled", cfg.App.Name)
	assert.Equal(t, "Loading...", cfg.Indicator.StartMessage)
	assert.Equal(t, 100*time.Millisecond, cfg.Indicator.Interval)
	assert.Equal(t, "rotate", cfg.Indicator.Style)
	assert.Equal(t, 30, cfg.Decon.Iterations)
	assert.InDelta(t, 0.01, cfg.Decon.RegFactor, 1e-12)
	assert.Equal(t, "row ID", cfg.Table.DropColumn)
	assert.Equal(t, 6.0, cfg.Plot.Width)
}

func TestLoadFileAndEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "tooled.yaml")
	content := "indicator:\n  style: build\n  interval: 250ms\ndecon:\n  iterations: 12\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	t.Setenv("TOOLED_INDICATOR_END_MESSAGE", "Finished")

	cfg, err := Load(viper.New(), path)
	require.NoError(t, err)
	assert.Equal(t, "build", cfg.Indicator.Style)
	assert.Equal(t, 250*time.Millisecond, cfg.Indicator.Interval)
	assert.Equal(t, 12, cfg.Decon.Iterations)
	assert.Equal(t, "Finished", cfg.Indicator.EndMessage)
	// 未覆盖的键保持默认值
	assert.InDelta(t, 0.75, cfg.Decon.NumericalAperture, 1e-12)
}

func TestLoadMissingExplicitFile(t *testing.T) {
	_, err := Load(viper.New(), filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestCreateDefaultConfig(t *testing.T) {
	for _, format := range []OutputFormat{FormatYAML, FormatJSON, FormatTOML} {
		t.Run(string(format), func(t *testing.T) {
			path := filepath.Join(t.TempDir(), "conf", "tooled."+string(format))
			require.NoError(t, CreateDefaultConfig(path, format))

			cfg, err := Load(viper.New(), path)
			require.NoError(t, err)
			assert.Equal(t, 100*time.Millisecond, cfg.Indicator.Interval)
			assert.Equal(t, "track", cfg.Table.TrackColumn)

			assert.Error(t, CreateDefaultConfig(path, format), "existing file must not be overwritten")
		})
	}
}

func TestOutputDataWritesToWriter(t *testing.T) {
	data := map[string]any{"style": "rotate"}

	var buf bytes.Buffer
	require.NoError(t, OutputData(data, FormatYAML, &buf))
	assert.Equal(t, "style: rotate\n", buf.String())

	buf.Reset()
	require.NoError(t, OutputData(data, FormatTOML, &buf))
	assert.True(t, strings.HasPrefix(buf.String(), "style = "))
	assert.Contains(t, buf.String(), "rotate")

	buf.Reset()
	require.NoError(t, OutputData(data, FormatText, &buf))
	assert.Equal(t, "map[style:rotate]\n", buf.String())

	assert.Error(t, OutputData(data, OutputFormat("xml"), &buf))
}

func TestParseOutputFormat(t *testing.T) {
	f, err := ParseOutputFormat("YML")
	require.NoError(t, err)
	assert.Equal(t, FormatYAML, f)

	_, err = ParseOutputFormat("xml")
	assert.Error(t, err)
}

func TestGetConfigSection(t *testing.T) {
	v := newViper(viper.New())

	sec, err := GetConfigSection(v, "indicator", true)
	require.NoError(t, err)
	ic, ok := sec.(IndicatorConfig)
	require.True(t, ok)
	assert.Equal(t, "Done!", ic.EndMessage)

	_, err = GetConfigSection(v, "nope", true)
	assert.Error(t, err)
}
