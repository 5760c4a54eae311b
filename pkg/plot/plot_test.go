package plot

import (
	"math"
	"os"
	"path/filepath"
	"testing"

	"github.com/go-gota/gota/dataframe"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yeisme/tooled/pkg/table"
)

func measurements() dataframe.DataFrame {
	return dataframe.LoadRecords([][]string{
		{"track", "time", "loc", "gfp"},
		{"t1", "0", "nucleus", "5"},
		{"t1", "1", "nucleus", "10"},
		{"t2", "0", "nucleus", "7"},
		{"t2", "1", "nucleus", "8"},
		{"t3", "0", "cytoplasm", "3"},
		{"t3", "1", "cytoplasm", "4"},
	})
}

func assertNonEmptyFile(t *testing.T, path string) {
	t.Helper()
	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Greater(t, info.Size(), int64(0))
}

func TestTrackSum(t *testing.T) {
	sums, err := table.SumTracks(measurements(), "gfp")
	require.NoError(t, err)

	path := filepath.Join(t.TempDir(), "sum.png")
	require.NoError(t, TrackSum(sums, "gfp", path))
	assertNonEmptyFile(t, path)
}

func TestShadeLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "line.svg")
	require.NoError(t, ShadeLine(measurements(), "gfp", path, WithSize(Size{Width: 4})))
	assertNonEmptyFile(t, path)

	err := ShadeLine(measurements(), "rfp", path)
	assert.ErrorIs(t, err, table.ErrInvalidChannel)
}

func TestScatter3D(t *testing.T) {
	df := dataframe.LoadRecords([][]string{
		{"x", "y", "z", "label"},
		{"1", "2", "0.5", "a"},
		{"2", "3", "1.5", "b"},
		{"3", "1", "2.5", "c"},
	})
	dir := t.TempDir()

	// 不指定轴时使用前三列
	path := filepath.Join(dir, "auto.png")
	require.NoError(t, Scatter3D(df, nil, path))
	assertNonEmptyFile(t, path)

	path = filepath.Join(dir, "named.png")
	require.NoError(t, Scatter3D(df, []string{"y", "x", "z"}, path))
	assertNonEmptyFile(t, path)

	err := Scatter3D(df, []string{"x", "y"}, path)
	assert.ErrorIs(t, err, ErrNotEnoughAxes)
}

func TestAggregate(t *testing.T) {
	bands := aggregate([]float64{1, 0, 1, 0}, []float64{4, 1, 6, 3})
	require.Len(t, bands, 2)
	assert.Equal(t, band{time: 0, mean: 2, std: 1}, bands[0])
	assert.Equal(t, band{time: 1, mean: 5, std: 1}, bands[1])
}

func TestAggregateUsesPopulationStd(t *testing.T) {
	// 样本标准差为 2，总体标准差为 sqrt(8/3)
	bands := aggregate([]float64{0, 0, 0}, []float64{2, 4, 6})
	require.Len(t, bands, 1)
	assert.InDelta(t, math.Sqrt(8.0/3.0), bands[0].std, 1e-12)
	assert.Equal(t, "nucleus (mean ± sd)", bandLabel("nucleus"))
}
