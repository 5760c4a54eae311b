// Package kernel 提供常用的图像卷积核查找表
package kernel

import (
	"errors"
	"fmt"
	"slices"
	"sort"
	"strings"

	"github.com/lithammer/fuzzysearch/fuzzy"
)

// ErrUnknownKernel 查找了不存在的卷积核名称
var ErrUnknownKernel = errors.New("unknown kernel")

// Kernel 是一个方形的整数卷积核，按行存储
type Kernel [][]int

// 卷积核表，进程级只读；Get 返回副本
var kernels = map[string]Kernel{
	"emboss": {
		{-2, -1, 0},
		{-1, 1, 1},
		{0, 1, 2},
	},
	"sharp": {
		{0, -1, 0},
		{-1, 5, -1},
		{0, -1, 0},
	},
	"ridge": {
		{-1, -1, -1},
		{-1, 8, -1},
		{-1, -1, -1},
	},
	"imagej": {
		{-1, -1, -1, -1, -1},
		{-1, -1, -1, -1, -1},
		{-1, -1, 24, -1, -1},
		{-1, -1, -1, -1, -1},
		{-1, -1, -1, -1, -1},
	},
	"emboss1": {
		{0, 0, 0, 0, 0},
		{0, -2, -1, 0, 0},
		{0, -1, 1, 1, 0},
		{0, 0, 1, 2, 0},
		{0, 0, 0, 0, 0},
	},
	"emboss2": {
		{0, 0, 0, 0, 0},
		{0, 2, 1, 0, 0},
		{0, 1, -1, -1, 0},
		{0, 0, -1, -2, 0},
		{0, 0, 0, 0, 0},
	},
}

// Names 返回所有卷积核名称（已排序）
func Names() []string {
	names := make([]string, 0, len(kernels))
	for name := range kernels {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Get 按名称查找卷积核
//
// 名称不存在时返回包装了 ErrUnknownKernel 的错误，并附带相近名称的提示
func Get(name string) (Kernel, error) {
	k, ok := kernels[name]
	if !ok {
		if hints := Suggest(name); len(hints) > 0 {
			return nil, fmt.Errorf("%w: %q not found, did you mean: %s", ErrUnknownKernel, name, strings.Join(hints, ", "))
		}
		return nil, fmt.Errorf("%w: %q not found", ErrUnknownKernel, name)
	}
	return k.clone(), nil
}

// Suggest 对名称进行模糊匹配，按编辑距离返回候选
func Suggest(name string) []string {
	q := strings.ToLower(strings.TrimSpace(name))
	if q == "" {
		return nil
	}
	ranks := fuzzy.RankFindFold(q, Names())
	sort.Sort(ranks)
	out := make([]string, 0, len(ranks))
	for _, r := range ranks {
		out = append(out, r.Target)
	}
	// 反向匹配：输入比名称更长时（例如 "sharpen"）
	for _, n := range Names() {
		if strings.Contains(q, n) && !slices.Contains(out, n) {
			out = append(out, n)
		}
	}
	return out
}

func (k Kernel) clone() Kernel {
	out := make(Kernel, len(k))
	for i, row := range k {
		out[i] = append([]int(nil), row...)
	}
	return out
}

// Size 返回卷积核边长
func (k Kernel) Size() int {
	return len(k)
}

// Sum 返回所有权重之和
func (k Kernel) Sum() int {
	total := 0
	for _, row := range k {
		for _, v := range row {
			total += v
		}
	}
	return total
}

// Float32 以行优先顺序返回 float32 权重，供图像运行时使用
func (k Kernel) Float32() []float32 {
	out := make([]float32, 0, len(k)*len(k))
	for _, row := range k {
		for _, v := range row {
			out = append(out, float32(v))
		}
	}
	return out
}

// Rows 将卷积核格式化为字符串矩阵，便于表格输出
func (k Kernel) Rows() [][]string {
	rows := make([][]string, len(k))
	for i, row := range k {
		cells := make([]string, len(row))
		for j, v := range row {
			cells[j] = fmt.Sprintf("%d", v)
		}
		rows[i] = cells
	}
	return rows
}
