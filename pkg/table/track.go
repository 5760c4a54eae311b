package table

import (
	"fmt"
	"math"

	"github.com/go-gota/gota/dataframe"

	"github.com/yeisme/tooled/pkg/utils/log"
)

// Position 过滤阈值的方向
type Position string

const (
	Above Position = "above"
	Below Position = "below"
)

// ParsePosition 解析过滤方向
func ParsePosition(s string) (Position, error) {
	switch p := Position(s); p {
	case Above, Below:
		return p, nil
	default:
		return "", fmt.Errorf("%w: position=%s", ErrInvalidPosition, s)
	}
}

// TrackSum 一条 track 在某个通道上的总和
type TrackSum struct {
	Track string
	Sum   float64
}

// DeleteTrack 删除默认 track 列等于 track 的所有行
func DeleteTrack(df dataframe.DataFrame, track string) (dataframe.DataFrame, error) {
	return DefaultColumns().DeleteTrack(df, track)
}

// DeleteTrack 返回删除指定 track 后的新表
func (c Columns) DeleteTrack(df dataframe.DataFrame, track string) (dataframe.DataFrame, error) {
	c = c.withDefaults()
	if err := CheckChannel(df, c.Track); err != nil {
		return dataframe.DataFrame{}, err
	}

	var keep []int
	for i, v := range df.Col(c.Track).Records() {
		if v != track {
			keep = append(keep, i)
		}
	}
	out := subset(df, keep)
	if out.Err != nil {
		return dataframe.DataFrame{}, out.Err
	}

	log.Info().
		Str("track", track).
		Int("deleted", df.Nrow()-out.Nrow()).
		Int("old_size", df.Nrow()).
		Int("new_size", out.Nrow()).
		Msg("track deleted")
	return out, nil
}

// SumTracks 按默认 track 列对 channel 求和
func SumTracks(df dataframe.DataFrame, channel string) ([]TrackSum, error) {
	return DefaultColumns().SumTracks(df, channel)
}

// SumTracks 对每条 track 的 channel 列求和，顺序为 track 首次出现的顺序
// 无法解析为数字的单元格按 0 计
func (c Columns) SumTracks(df dataframe.DataFrame, channel string) ([]TrackSum, error) {
	c = c.withDefaults()
	if err := CheckChannel(df, channel); err != nil {
		return nil, err
	}
	if err := CheckChannel(df, c.Track); err != nil {
		return nil, err
	}

	tracks := df.Col(c.Track).Records()
	values := df.Col(channel).Float()

	var sums []TrackSum
	index := make(map[string]int)
	for i, tr := range tracks {
		v := values[i]
		if math.IsNaN(v) {
			v = 0
		}
		j, ok := index[tr]
		if !ok {
			j = len(sums)
			index[tr] = j
			sums = append(sums, TrackSum{Track: tr})
		}
		sums[j].Sum += v
	}
	return sums, nil
}

// FilterTracks 按默认 track 列过滤
func FilterTracks(df dataframe.DataFrame, channel string, threshold float64, position Position) (dataframe.DataFrame, error) {
	return DefaultColumns().FilterTracks(df, channel, threshold, position)
}

// FilterTracks 根据每条 track 的 channel 总和过滤整条 track
//
//	above: 保留总和 <= threshold 的 track
//	below: 保留总和 >= threshold 的 track
func (c Columns) FilterTracks(df dataframe.DataFrame, channel string, threshold float64, position Position) (dataframe.DataFrame, error) {
	c = c.withDefaults()
	if _, err := ParsePosition(string(position)); err != nil {
		return dataframe.DataFrame{}, err
	}
	sums, err := c.SumTracks(df, channel)
	if err != nil {
		return dataframe.DataFrame{}, err
	}

	matched := make(map[string]bool, len(sums))
	for _, s := range sums {
		switch position {
		case Above:
			matched[s.Track] = s.Sum <= threshold
		case Below:
			matched[s.Track] = s.Sum >= threshold
		}
	}

	var keep []int
	for i, tr := range df.Col(c.Track).Records() {
		if matched[tr] {
			keep = append(keep, i)
		}
	}
	out := subset(df, keep)
	if out.Err != nil {
		return dataframe.DataFrame{}, out.Err
	}

	log.Debug().
		Str("channel", channel).
		Float64("threshold", threshold).
		Str("position", string(position)).
		Int("rows", out.Nrow()).
		Msg("tracks filtered")
	return out, nil
}
