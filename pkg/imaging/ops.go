// Package imaging 封装外部图像运行时的操作：反卷积、合成 PSF、高斯相减、反相、斑点检测等
//
// 本包不实现任何图像算法，所有计算都委托给 OpService / BlobDetector 的实现，
// 运行时返回的错误原样向上传递
package imaging

import (
	"errors"
	"fmt"
)

// ErrUnsupportedOp 运行时不支持某个操作
var ErrUnsupportedOp = errors.New("operation not supported by image runtime")

// Image 是运行时持有的图像，本包只读取其维度
type Image interface {
	Dimensions() []int64
}

// OpService 是外部图像运行时暴露的操作集合
type OpService interface {
	ConvertFloat32(img Image) (Image, error)
	ConvertInt32(img Image) (Image, error)
	Gauss(img Image, sigma float64) (Image, error)
	// Subtract 返回 a - b
	Subtract(a, b Image) (Image, error)
	Invert(img Image) (Image, error)
	// RichardsonLucyTV 运行带全变分正则的 Richardson-Lucy 反卷积
	RichardsonLucyTV(observed, psf Image, iterations int, regFactor float64) (Image, error)
	// KernelDiffraction 合成衍射 PSF；长度单位为米
	KernelDiffraction(dims []int64, na, wavelength, riSample, riImmersion, lateralRes, axialRes, depth float64) (Image, error)
	// Slice 取 axis 轴上第 index 个切片
	Slice(img Image, axis int, index int64) (Image, error)
	Stack(imgs ...Image) (Image, error)
	// Supports 报告运行时能否把 src 类型的图像转换为 dst 类型
	Supports(src, dst string) bool
}

// Unsupported 生成一个 ErrUnsupportedOp 错误，供运行时实现使用
func Unsupported(op string) error {
	return fmt.Errorf("%w: %s", ErrUnsupportedOp, op)
}
