package imaging

import "math"

// Blob 是一个检测到的斑点，Radius = sigma * sqrt(2)
type Blob struct {
	Y      float64 `json:"y"`
	X      float64 `json:"x"`
	Radius float64 `json:"radius"`
}

// BlobParams 高斯拉普拉斯斑点检测参数
type BlobParams struct {
	// MinSigma 越小越能检测到小斑点
	MinSigma float64
	// MaxSigma 越大越能检测到大斑点
	MaxSigma float64
	// NumSigma 为 MinSigma 与 MaxSigma 之间的标准差个数
	NumSigma  int
	Threshold float64
}

// DefaultBlobParams 返回推荐的检测参数
func DefaultBlobParams() BlobParams {
	return BlobParams{MinSigma: 0.47, MaxSigma: 2, NumSigma: 50, Threshold: 0.008}
}

// BlobDetector 由图像运行时实现，返回 (y, x, sigma)；灰度转换同样由运行时负责
type BlobDetector interface {
	DetectLoG(img Image, p BlobParams) ([][3]float64, error)
}

// FindBlobs 检测斑点并把 sigma 换算为半径
func FindBlobs(det BlobDetector, img Image, p BlobParams) ([]Blob, error) {
	raw, err := det.DetectLoG(img, p)
	if err != nil {
		return nil, err
	}
	blobs := make([]Blob, len(raw))
	for i, r := range raw {
		blobs[i] = Blob{Y: r[0], X: r[1], Radius: r[2] * math.Sqrt2}
	}
	return blobs, nil
}
