package imaging

import (
	"fmt"
	"io"
)

// ImageClasses 为运行时中常见的图像类型，ConversionCheck 会检查它们之间的转换
var ImageClasses = []string{
	"net.imagej.Dataset",
	"ij.ImagePlus",
	"net.imagej.ImgPlus",
	"net.imglib2.img.Img",
	"net.imglib2.RandomAccessibleInterval",
}

// Conversion 是一次转换能力查询的结果
type Conversion struct {
	Src       string `json:"src"`
	Dst       string `json:"dst"`
	Supported bool   `json:"supported"`
}

// Conversions 查询 ImageClasses 中每一对有序类型的转换能力
func Conversions(ops OpService) []Conversion {
	out := make([]Conversion, 0, len(ImageClasses)*(len(ImageClasses)-1))
	for _, src := range ImageClasses {
		for _, dst := range ImageClasses {
			if src == dst {
				continue
			}
			out = append(out, Conversion{Src: src, Dst: dst, Supported: ops.Supports(src, dst)})
		}
	}
	return out
}

// ConversionCheck 打印所有类型转换的支持情况
func ConversionCheck(w io.Writer, ops OpService) {
	for _, c := range Conversions(ops) {
		fmt.Fprintf(w, "%s [--->] %s: %t\n", c.Src, c.Dst, c.Supported)
	}
}
