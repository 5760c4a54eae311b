package cmd

import (
	"errors"
	"testing"
	"time"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/tooled/pkg/configs"
	"github.com/yeisme/tooled/pkg/imaging"
	"github.com/yeisme/tooled/pkg/indicator"
)

func TestDefaultsMatchPackages(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("HOME", t.TempDir())
	cfg, err := configs.Load(viper.New(), "")
	require.NoError(t, err)

	ic, err := indicatorConfig(cfg.Indicator)
	require.NoError(t, err)
	assert.Equal(t, indicator.DefaultConfig(), ic)

	assert.Equal(t, imaging.DefaultDeconOptions(), deconOptions(cfg.Decon))
}

func TestIndicatorConfigRejectsUnknownStyle(t *testing.T) {
	_, err := indicatorConfig(configs.IndicatorConfig{Style: "spiral", Interval: time.Millisecond})
	assert.True(t, errors.Is(err, indicator.ErrInvalidConfiguration))
}
