package table

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func conditionFrame() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"condition", "value"},
		{"A", "1"},
		{"A", "2"},
		{"B", "3"},
		{"B", "4"},
		{"B", "5"},
		{"C", "6"},
	})
}

func trackFrame() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"track", "time", "loc", "gfp"},
		{"t1", "0", "nucleus", "5"},
		{"t1", "1", "nucleus", "10"},
		{"t2", "0", "cytoplasm", "3"},
		{"t2", "1", "cytoplasm", "4"},
		{"t3", "0", "nucleus", "10"},
	})
}

func TestSplitByColumn(t *testing.T) {
	df := conditionFrame()
	groups, err := SplitByColumn(df, "condition")
	require.NoError(t, err)
	require.Len(t, groups, 3)

	var counts []int
	var values []string
	var union []string
	for _, g := range groups {
		counts = append(counts, g.Frame.Nrow())
		values = append(values, g.Value)
		union = append(union, g.Frame.Col("value").Records()...)
	}
	assert.Equal(t, []int{2, 3, 1}, counts)
	assert.Equal(t, []string{"A", "B", "C"}, values)
	assert.ElementsMatch(t, df.Col("value").Records(), union)
}

func TestSplitByColumnMissing(t *testing.T) {
	_, err := SplitByColumn(conditionFrame(), "sample")
	assert.True(t, errors.Is(err, ErrInvalidChannel))
}

func TestSumTracks(t *testing.T) {
	sums, err := SumTracks(trackFrame(), "gfp")
	require.NoError(t, err)
	assert.Equal(t, []TrackSum{
		{Track: "t1", Sum: 15},
		{Track: "t2", Sum: 7},
		{Track: "t3", Sum: 10},
	}, sums)
}

func TestFilterTracksAbove(t *testing.T) {
	out, err := FilterTracks(trackFrame(), "gfp", 10, Above)
	require.NoError(t, err)

	tracks := out.Col("track").Records()
	assert.NotContains(t, tracks, "t1")
	assert.Equal(t, []string{"t2", "t2", "t3"}, tracks)
}

func TestFilterTracksBelow(t *testing.T) {
	out, err := FilterTracks(trackFrame(), "gfp", 10, Below)
	require.NoError(t, err)
	assert.Equal(t, []string{"t1", "t1", "t3"}, out.Col("track").Records())
}

func TestFilterTracksErrors(t *testing.T) {
	_, err := FilterTracks(trackFrame(), "gfp", 10, Position("middle"))
	assert.ErrorIs(t, err, ErrInvalidPosition)

	_, err = FilterTracks(trackFrame(), "rfp", 10, Above)
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestDeleteTrack(t *testing.T) {
	df := trackFrame()
	out, err := DeleteTrack(df, "t2")
	require.NoError(t, err)
	assert.Equal(t, 3, out.Nrow())
	assert.NotContains(t, out.Col("track").Records(), "t2")
	// 输入表保持不变
	assert.Equal(t, 5, df.Nrow())
}

func TestCustomColumns(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"id", "signal"},
		{"a", "1"},
		{"a", "2"},
		{"b", "5"},
	})
	cols := Columns{Track: "id"}
	sums, err := cols.SumTracks(df, "signal")
	require.NoError(t, err)
	assert.Equal(t, []TrackSum{{Track: "a", Sum: 3}, {Track: "b", Sum: 5}}, sums)

	_, err = SumTracks(df, "signal")
	assert.ErrorIs(t, err, ErrInvalidChannel)
}

func TestOpenDropsRowID(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "results.csv")
	content := "row ID,track,gfp\nRow0,t1,1\nRow1,t1,2\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))

	df, err := Open(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"track", "gfp"}, df.Names())
	assert.Equal(t, 2, df.Nrow())

	_, err = Open(filepath.Join(dir, "missing.csv"))
	assert.Error(t, err)
}

func TestWriteAppendsExtension(t *testing.T) {
	dir := t.TempDir()
	name, err := Write(trackFrame(), filepath.Join(dir, "filtered"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "filtered.csv"), name)

	df, err := Open(name)
	require.NoError(t, err)
	assert.Equal(t, 5, df.Nrow())

	name, err = Write(trackFrame(), filepath.Join(dir, "kept.csv"))
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "kept.csv"), name)
}
