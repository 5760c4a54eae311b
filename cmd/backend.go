package cmd

import (
	"errors"

	"github.com/yeisme/tooled/pkg/imaging"
	"github.com/yeisme/tooled/pkg/kernel"
)

// errNoImageRuntime 二进制未编译图像运行时
var errNoImageRuntime = errors.New("tooled was built without an image runtime, rebuild with `-tags gocv` (requires OpenCV)")

// imageBackend 图像运行时提供的全部能力
type imageBackend struct {
	Name     string
	Ops      imaging.OpService
	Blobs    imaging.BlobDetector
	Load     func(path string, gray bool) (imaging.Image, error)
	Save     func(path string, img imaging.Image) error
	Convolve func(img imaging.Image, k kernel.Kernel) (imaging.Image, error)
}
