package imaging

import "fmt"

// Processor 提供基于运行时操作的常用图像处理组合
type Processor struct {
	Ops OpService
}

// NewProcessor 创建 Processor
func NewProcessor(ops OpService) *Processor {
	return &Processor{Ops: ops}
}

// GaussSub 高斯模糊相减：gauss(int32(img), sigma) - int32(img)
func (p *Processor) GaussSub(img Image, sigma float64) (Image, error) {
	imgI, err := p.Ops.ConvertInt32(img)
	if err != nil {
		return nil, err
	}
	blurred, err := p.Ops.Gauss(imgI, sigma)
	if err != nil {
		return nil, err
	}
	return p.Ops.Subtract(blurred, imgI)
}

// GaussSubStack 对第 3 维（axis=2）的每个切片执行 slice - gauss(slice)，再重新堆叠
func (p *Processor) GaussSubStack(stack Image, sigma float64) (Image, error) {
	dims := stack.Dimensions()
	if len(dims) < 3 {
		return nil, fmt.Errorf("gauss subtraction stack: expected at least 3 dimensions, got %d", len(dims))
	}
	stackI, err := p.Ops.ConvertInt32(stack)
	if err != nil {
		return nil, err
	}

	slices := make([]Image, 0, dims[2])
	for i := int64(0); i < dims[2]; i++ {
		s, err := p.Ops.Slice(stackI, 2, i)
		if err != nil {
			return nil, err
		}
		g, err := p.Ops.Gauss(s, sigma)
		if err != nil {
			return nil, err
		}
		diff, err := p.Ops.Subtract(s, g)
		if err != nil {
			return nil, err
		}
		slices = append(slices, diff)
	}
	return p.Ops.Stack(slices...)
}

// Invert 返回反相后的新图像
func (p *Processor) Invert(img Image) (Image, error) {
	return p.Ops.Invert(img)
}
