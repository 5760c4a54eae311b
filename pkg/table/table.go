// Package table 处理 KNIME 导出的实验结果表：读写 CSV、按列拆分、按 track 删除/求和/过滤
// 所有操作都返回新的表，不修改输入
package table

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"github.com/go-gota/gota/dataframe"
	"github.com/go-gota/gota/series"

	"github.com/yeisme/tooled/pkg/utils/log"
)

var (
	// ErrInvalidChannel 请求的列不存在
	ErrInvalidChannel = errors.New("channel not found in table")
	// ErrInvalidPosition 过滤位置只能是 above 或 below
	ErrInvalidPosition = errors.New(`invalid position, valid values are "above" and "below"`)
)

const (
	TrackColumn = "track"
	TimeColumn  = "time"
	LocColumn   = "loc"
	// RowIDColumn KNIME 导出时附带的行号列
	RowIDColumn = "row ID"
)

// Columns 描述表中各角色列的列名
type Columns struct {
	Track string
	Time  string
	Loc   string
	// Drop 读取时如果存在则删除的列，为空表示不删除
	Drop string
}

// DefaultColumns 返回 KNIME 导出表的默认列名
func DefaultColumns() Columns {
	return Columns{
		Track: TrackColumn,
		Time:  TimeColumn,
		Loc:   LocColumn,
		Drop:  RowIDColumn,
	}
}

func (c Columns) withDefaults() Columns {
	d := DefaultColumns()
	if c.Track == "" {
		c.Track = d.Track
	}
	if c.Time == "" {
		c.Time = d.Time
	}
	if c.Loc == "" {
		c.Loc = d.Loc
	}
	return c
}

// Open 读取 CSV 文件，按默认列名删除 row ID 列
func Open(path string) (dataframe.DataFrame, error) {
	return DefaultColumns().Open(path)
}

// Open 读取 CSV 文件；c.Drop 指定的列存在时会被删除
func (c Columns) Open(path string) (dataframe.DataFrame, error) {
	f, err := os.Open(path)
	if err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("open table: %w", err)
	}
	defer f.Close()

	log.Info().Str("file", path).Msg("opening table")

	df := dataframe.ReadCSV(f)
	if df.Err != nil {
		return dataframe.DataFrame{}, fmt.Errorf("parse %s: %w", path, df.Err)
	}
	if c.Drop != "" && HasColumn(df, c.Drop) {
		df = df.Drop(c.Drop)
		if df.Err != nil {
			return dataframe.DataFrame{}, df.Err
		}
	}
	return df, nil
}

// Write 把表写入 CSV 文件，文件名缺少 .csv 时自动补全，返回实际写入的文件名
func Write(df dataframe.DataFrame, name string) (string, error) {
	if !strings.Contains(name, ".csv") {
		name += ".csv"
	}
	f, err := os.Create(name)
	if err != nil {
		return "", fmt.Errorf("write table: %w", err)
	}
	defer f.Close()

	log.Info().Str("file", name).Int("rows", df.Nrow()).Msg("saving table")
	if err := df.WriteCSV(f); err != nil {
		return "", fmt.Errorf("write %s: %w", name, err)
	}
	return name, nil
}

// HasColumn 报告表中是否存在该列
func HasColumn(df dataframe.DataFrame, name string) bool {
	return slices.Contains(df.Names(), name)
}

// CheckChannel 列不存在时返回包装了 ErrInvalidChannel 的错误
func CheckChannel(df dataframe.DataFrame, name string) error {
	if !HasColumn(df, name) {
		return fmt.Errorf("%w: %q (columns: %s)", ErrInvalidChannel, name, strings.Join(df.Names(), ", "))
	}
	return nil
}

// subset 按行号取子表；行号为空时返回保留列名的空表
func subset(df dataframe.DataFrame, rows []int) dataframe.DataFrame {
	if len(rows) == 0 {
		cols := make([]series.Series, 0, df.Ncol())
		for _, name := range df.Names() {
			s := df.Col(name)
			cols = append(cols, series.New([]string{}, s.Type(), name))
		}
		return dataframe.New(cols...)
	}
	return df.Subset(rows)
}
