package indicator

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixedWidth(n int) Option {
	return WithWidth(func() int { return n })
}

// frames 从输出中提取所有动画帧的字形（忽略擦除行与结束消息）
func frames(out, msg string) []string {
	var glyphs []string
	for _, part := range strings.Split(out, "\r") {
		if !strings.HasPrefix(part, msg+" ") {
			continue
		}
		g := strings.TrimSuffix(strings.TrimPrefix(part, msg+" "), " ")
		glyphs = append(glyphs, g)
	}
	return glyphs
}

func TestNewInvalidConfiguration(t *testing.T) {
	cases := map[string]Config{
		"zero interval":     {Interval: 0},
		"negative interval": {Interval: -time.Millisecond},
		"unknown style":     {Interval: time.Millisecond, Style: "spin"},
	}
	for name, cfg := range cases {
		t.Run(name, func(t *testing.T) {
			ind, err := New(cfg)
			require.ErrorIs(t, err, ErrInvalidConfiguration)
			assert.Nil(t, ind)
		})
	}
}

func TestNewFillsDefaults(t *testing.T) {
	ind, err := New(Config{Interval: time.Second})
	require.NoError(t, err)

	cfg := ind.Config()
	assert.Equal(t, DefaultStartMessage, cfg.StartMessage)
	assert.Equal(t, DefaultEndMessage, cfg.EndMessage)
	assert.Equal(t, StyleRotate, cfg.Style)
	assert.False(t, ind.Done())
}

func TestEmptyBodyPrintsEndMessageOnce(t *testing.T) {
	var buf bytes.Buffer
	ind, err := New(DefaultConfig(), WithWriter(&buf), fixedWidth(12))
	require.NoError(t, err)

	require.NoError(t, ind.Start())
	ind.Stop()

	out := buf.String()
	assert.True(t, ind.Done())
	assert.Equal(t, 1, strings.Count(out, DefaultEndMessage))
	assert.True(t, strings.HasSuffix(out, "\r"+strings.Repeat(" ", 12)+"\r"+DefaultEndMessage+"\n"), "output %q", out)
}

func TestRunPropagatesBodyError(t *testing.T) {
	var buf bytes.Buffer
	want := errors.New("deconvolution failed")

	err := Run(Config{StartMessage: "Working", EndMessage: "Finished", Interval: time.Millisecond}, func() error {
		time.Sleep(5 * time.Millisecond)
		return want
	}, WithWriter(&buf), fixedWidth(4))

	require.Equal(t, want, err)
	assert.True(t, strings.HasSuffix(buf.String(), "\r    \rFinished\n"))
}

func TestRunCleansUpOnPanic(t *testing.T) {
	var buf bytes.Buffer
	func() {
		defer func() {
			assert.Equal(t, "boom", recover())
		}()
		_ = Run(Config{EndMessage: "bye", Interval: time.Millisecond}, func() error {
			panic("boom")
		}, WithWriter(&buf), fixedWidth(1))
	}()
	assert.True(t, strings.HasSuffix(buf.String(), "\r \rbye\n"))
}

func TestRotateCyclesInOrder(t *testing.T) {
	var buf bytes.Buffer
	err := Run(Config{StartMessage: "spin", Interval: 2 * time.Millisecond, Style: StyleRotate}, func() error {
		time.Sleep(60 * time.Millisecond)
		return nil
	}, WithWriter(&buf), fixedWidth(1))
	require.NoError(t, err)

	got := frames(buf.String(), "spin")
	require.Greater(t, len(got), 4, "expected the sequence to wrap at least once")

	table := StyleRotate.Glyphs()
	require.Len(t, table, 4)
	for i, g := range got {
		assert.Equal(t, table[i%len(table)], g, "frame %d", i)
	}
}

func TestNoFrameAfterStop(t *testing.T) {
	var buf bytes.Buffer
	interval := 2 * time.Millisecond
	ind, err := New(Config{StartMessage: "x", Interval: interval}, WithWriter(&buf), fixedWidth(1))
	require.NoError(t, err)
	require.NoError(t, ind.Start())

	time.Sleep(10 * time.Millisecond)
	ind.Stop()
	n := buf.Len()

	time.Sleep(5 * interval)
	assert.Equal(t, n, buf.Len())
	assert.True(t, strings.HasSuffix(buf.String(), DefaultEndMessage+"\n"))
}

func TestSingleUse(t *testing.T) {
	ind, err := New(DefaultConfig(), WithWriter(&bytes.Buffer{}), fixedWidth(1))
	require.NoError(t, err)

	require.NoError(t, ind.Start())
	require.ErrorIs(t, ind.Start(), ErrAlreadyStarted)
	ind.Stop()
	ind.Stop()
}

func TestStopWithoutStart(t *testing.T) {
	var buf bytes.Buffer
	ind, err := New(DefaultConfig(), WithWriter(&buf), fixedWidth(0))
	require.NoError(t, err)

	ind.Stop()
	assert.True(t, ind.Done())
	assert.Equal(t, "\r"+strings.Repeat(" ", fallbackWidth)+"\r"+DefaultEndMessage+"\n", buf.String())
}

func TestFramesWrap(t *testing.T) {
	var got []string
	for g := range StyleRotate.Frames() {
		got = append(got, g)
		if len(got) == 9 {
			break
		}
	}
	assert.Equal(t, []string{"⠚", "⠓", "⠋", "⠙", "⠚", "⠓", "⠋", "⠙", "⠚"}, got)

	// 重新 range 从第一个字形开始
	for g := range StyleRotate.Frames() {
		assert.Equal(t, "⠚", g)
		break
	}
}

func TestParseStyle(t *testing.T) {
	st, err := ParseStyle("")
	require.NoError(t, err)
	assert.Equal(t, StyleRotate, st)

	st, err = ParseStyle(" Build ")
	require.NoError(t, err)
	assert.Equal(t, StyleBuild, st)

	for _, name := range Styles() {
		s, err := ParseStyle(name)
		require.NoError(t, err)
		assert.NotEmpty(t, s.Glyphs())
	}

	_, err = ParseStyle("wobble")
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}
