//go:build gocv

// Package opencv 基于 gocv (OpenCV) 实现 imaging.OpService 与 imaging.BlobDetector
//
// 需要本机安装 OpenCV，并使用 `-tags gocv` 构建
// OpenCV 没有 Richardson-Lucy TV 与衍射 PSF 合成，这两个操作返回 imaging.ErrUnsupportedOp
package opencv

import (
	"fmt"
	"image"
	"math"

	"gocv.io/x/gocv"

	"github.com/yeisme/tooled/pkg/imaging"
	"github.com/yeisme/tooled/pkg/kernel"
)

// Mat 包装 gocv.Mat 以实现 imaging.Image
type Mat struct {
	gocv.Mat
}

// Dimensions 返回 (rows, cols[, channels])
func (m Mat) Dimensions() []int64 {
	dims := []int64{int64(m.Rows()), int64(m.Cols())}
	if c := m.Channels(); c > 1 {
		dims = append(dims, int64(c))
	}
	return dims
}

// Read 读取图像文件
func Read(path string, gray bool) (Mat, error) {
	flag := gocv.IMReadUnchanged
	if gray {
		flag = gocv.IMReadGrayScale
	}
	m := gocv.IMRead(path, flag)
	if m.Empty() {
		return Mat{}, fmt.Errorf("read image %s: empty or unsupported file", path)
	}
	return Mat{m}, nil
}

// Write 写出图像文件
func Write(path string, img imaging.Image) error {
	m, err := unwrap(img)
	if err != nil {
		return err
	}
	if !gocv.IMWrite(path, m.Mat) {
		return fmt.Errorf("write image %s failed", path)
	}
	return nil
}

// Ops 是 gocv 实现的操作服务
type Ops struct{}

var _ imaging.OpService = Ops{}

func unwrap(img imaging.Image) (Mat, error) {
	m, ok := img.(Mat)
	if !ok {
		return Mat{}, fmt.Errorf("opencv: expected opencv.Mat, got %T", img)
	}
	return m, nil
}

func (Ops) convert(img imaging.Image, mt gocv.MatType) (imaging.Image, error) {
	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}
	dst := gocv.NewMat()
	src.ConvertTo(&dst, mt)
	return Mat{dst}, nil
}

// ConvertFloat32 转换为 32 位浮点
func (o Ops) ConvertFloat32(img imaging.Image) (imaging.Image, error) {
	return o.convert(img, gocv.MatTypeCV32F)
}

// ConvertInt32 转换为 32 位整数
func (o Ops) ConvertInt32(img imaging.Image) (imaging.Image, error) {
	return o.convert(img, gocv.MatTypeCV32S)
}

// Gauss 高斯模糊，核大小由 sigma 推导
func (Ops) Gauss(img imaging.Image, sigma float64) (imaging.Image, error) {
	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}
	// OpenCV 的 GaussianBlur 不接受 CV_32S
	work := src.Mat
	if src.Type() == gocv.MatTypeCV32S {
		work = gocv.NewMat()
		defer work.Close()
		src.ConvertTo(&work, gocv.MatTypeCV32F)
	}
	dst := gocv.NewMat()
	gocv.GaussianBlur(work, &dst, image.Pt(0, 0), sigma, sigma, gocv.BorderDefault)
	if src.Type() == gocv.MatTypeCV32S {
		out := gocv.NewMat()
		dst.ConvertTo(&out, gocv.MatTypeCV32S)
		dst.Close()
		return Mat{out}, nil
	}
	return Mat{dst}, nil
}

// Subtract 返回 a - b
func (Ops) Subtract(a, b imaging.Image) (imaging.Image, error) {
	ma, err := unwrap(a)
	if err != nil {
		return nil, err
	}
	mb, err := unwrap(b)
	if err != nil {
		return nil, err
	}
	dst := gocv.NewMat()
	gocv.Subtract(ma.Mat, mb.Mat, &dst)
	return Mat{dst}, nil
}

// Invert 按位取反
func (Ops) Invert(img imaging.Image) (imaging.Image, error) {
	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}
	dst := gocv.NewMat()
	gocv.BitwiseNot(src.Mat, &dst)
	return Mat{dst}, nil
}

// RichardsonLucyTV 不受支持
func (Ops) RichardsonLucyTV(imaging.Image, imaging.Image, int, float64) (imaging.Image, error) {
	return nil, imaging.Unsupported("richardson_lucy_tv")
}

// KernelDiffraction 不受支持
func (Ops) KernelDiffraction([]int64, float64, float64, float64, float64, float64, float64, float64) (imaging.Image, error) {
	return nil, imaging.Unsupported("kernel_diffraction")
}

// Slice 取多通道图像的第 index 个通道（axis 必须为 2）
func (Ops) Slice(img imaging.Image, axis int, index int64) (imaging.Image, error) {
	if axis != 2 {
		return nil, imaging.Unsupported(fmt.Sprintf("slice along axis %d", axis))
	}
	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}
	channels := gocv.Split(src.Mat)
	if index < 0 || int(index) >= len(channels) {
		for _, c := range channels {
			c.Close()
		}
		return nil, fmt.Errorf("opencv: channel %d out of range (%d channels)", index, len(channels))
	}
	for i, c := range channels {
		if i != int(index) {
			c.Close()
		}
	}
	return Mat{channels[index]}, nil
}

// Stack 把单通道图像合并为多通道图像
func (Ops) Stack(imgs ...imaging.Image) (imaging.Image, error) {
	mats := make([]gocv.Mat, 0, len(imgs))
	for _, img := range imgs {
		m, err := unwrap(img)
		if err != nil {
			return nil, err
		}
		mats = append(mats, m.Mat)
	}
	dst := gocv.NewMat()
	gocv.Merge(mats, &dst)
	return Mat{dst}, nil
}

// Supports 只支持 Mat 之间的转换
func (Ops) Supports(src, dst string) bool {
	return src == "gocv.Mat" && dst == "gocv.Mat"
}

// Convolve 使用查找表中的卷积核做二维卷积
func Convolve(img imaging.Image, k kernel.Kernel) (imaging.Image, error) {
	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}
	size := k.Size()
	km := gocv.NewMatWithSize(size, size, gocv.MatTypeCV32F)
	defer km.Close()
	weights := k.Float32()
	for r := 0; r < size; r++ {
		for c := 0; c < size; c++ {
			km.SetFloatAt(r, c, weights[r*size+c])
		}
	}
	dst := gocv.NewMat()
	gocv.Filter2D(src.Mat, &dst, -1, km, image.Pt(-1, -1), 0, gocv.BorderDefault)
	return Mat{dst}, nil
}

// Detector 使用 OpenCV SimpleBlobDetector 实现斑点检测
type Detector struct{}

var _ imaging.BlobDetector = Detector{}

// DetectLoG 返回 (y, x, sigma)；sigma 由关键点直径换算，使 FindBlobs 得到的半径等于直径的一半
func (Detector) DetectLoG(img imaging.Image, p imaging.BlobParams) ([][3]float64, error) {
	src, err := unwrap(img)
	if err != nil {
		return nil, err
	}
	gray := src.Mat
	if src.Channels() > 1 {
		gray = gocv.NewMat()
		defer gray.Close()
		gocv.CvtColor(src.Mat, &gray, gocv.ColorBGRToGray)
	}

	params := gocv.NewSimpleBlobDetectorParams()
	params.SetMinThreshold(float32(p.Threshold * 255))
	params.SetFilterByArea(true)
	params.SetMinArea(float32(math.Pi * p.MinSigma * p.MinSigma * 2))
	params.SetMaxArea(float32(math.Pi * p.MaxSigma * p.MaxSigma * 2 * 100))

	det := gocv.NewSimpleBlobDetectorWithParams(params)
	defer det.Close()

	kps := det.Detect(gray)
	out := make([][3]float64, 0, len(kps))
	for _, kp := range kps {
		out = append(out, [3]float64{kp.Y, kp.X, kp.Size / 2 / math.Sqrt2})
	}
	return out, nil
}
