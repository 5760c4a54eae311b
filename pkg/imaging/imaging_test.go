package imaging

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeImage struct {
	name string
	dims []int64
}

func (f fakeImage) Dimensions() []int64 { return f.dims }

// fakeOps 记录调用顺序，返回以操作名命名的新图像
type fakeOps struct {
	calls     []string
	psfArgs   []float64
	rlErr     error
	rlDelay   time.Duration // 模拟耗时的运行时调用
	supported map[string]bool
}

func (f *fakeOps) record(op string, img Image) Image {
	f.calls = append(f.calls, op)
	return fakeImage{name: op, dims: img.Dimensions()}
}

func (f *fakeOps) ConvertFloat32(img Image) (Image, error) { return f.record("float32", img), nil }
func (f *fakeOps) ConvertInt32(img Image) (Image, error)   { return f.record("int32", img), nil }
func (f *fakeOps) Gauss(img Image, sigma float64) (Image, error) {
	return f.record(fmt.Sprintf("gauss(%g)", sigma), img), nil
}
func (f *fakeOps) Subtract(a, b Image) (Image, error) {
	return f.record(fmt.Sprintf("sub(%s,%s)", a.(fakeImage).name, b.(fakeImage).name), a), nil
}
func (f *fakeOps) Invert(img Image) (Image, error) { return f.record("invert", img), nil }
func (f *fakeOps) RichardsonLucyTV(observed, psf Image, iterations int, reg float64) (Image, error) {
	f.calls = append(f.calls, fmt.Sprintf("rltv(%s,%s,%d,%g)", observed.(fakeImage).name, psf.(fakeImage).name, iterations, reg))
	time.Sleep(f.rlDelay)
	if f.rlErr != nil {
		return nil, f.rlErr
	}
	return fakeImage{name: "decon", dims: observed.Dimensions()}, nil
}
func (f *fakeOps) KernelDiffraction(dims []int64, na, wl, riS, riI, lat, ax, depth float64) (Image, error) {
	f.calls = append(f.calls, "psf")
	f.psfArgs = []float64{na, wl, riS, riI, lat, ax, depth}
	return fakeImage{name: "psf", dims: dims}, nil
}
func (f *fakeOps) Slice(img Image, axis int, index int64) (Image, error) {
	dims := img.Dimensions()
	return f.record(fmt.Sprintf("slice%d", index), fakeImage{dims: dims[:axis]}), nil
}
func (f *fakeOps) Stack(imgs ...Image) (Image, error) {
	f.calls = append(f.calls, fmt.Sprintf("stack(%d)", len(imgs)))
	return fakeImage{name: "stack"}, nil
}
func (f *fakeOps) Supports(src, dst string) bool { return f.supported[src+">"+dst] }

func TestDeconvolveSynthesizesPSF(t *testing.T) {
	ops := &fakeOps{rlDelay: 30 * time.Millisecond}
	var buf bytes.Buffer
	d := NewDeconvolution(ops, DefaultDeconOptions())
	d.Out = &buf

	out, err := d.Deconvolve(fakeImage{name: "raw", dims: []int64{64, 64, 10}})
	require.NoError(t, err)

	assert.Equal(t, "decon", out.(fakeImage).name)
	assert.Equal(t, []string{"float32", "psf", "rltv(float32,psf,30,0.01)"}, ops.calls)
	assert.Equal(t, []int64{64, 64, 10}, d.PSF.Dimensions())

	// 纳米转换为米
	require.Len(t, ops.psfArgs, 7)
	assert.InDelta(t, 0.75, ops.psfArgs[0], 1e-12)
	assert.InDelta(t, 550e-9, ops.psfArgs[1], 1e-18)
	assert.InDelta(t, 100e-9, ops.psfArgs[4], 1e-18)
	assert.InDelta(t, 2000e-9, ops.psfArgs[6], 1e-18)

	assert.True(t, strings.HasSuffix(buf.String(), "Done!\n"))
	assert.Contains(t, buf.String(), "Deconvolving image...")
}

func TestDeconvolveKeepsExistingPSF(t *testing.T) {
	ops := &fakeOps{}
	d := NewDeconvolution(ops, DefaultDeconOptions())
	d.Out = &bytes.Buffer{}
	d.PSF = fakeImage{name: "measured", dims: []int64{9, 9}}

	_, err := d.Deconvolve(fakeImage{name: "raw", dims: []int64{32, 32}})
	require.NoError(t, err)
	assert.Equal(t, []string{"float32", "rltv(float32,measured,30,0.01)"}, ops.calls)
}

func TestDeconvolvePropagatesUpstreamError(t *testing.T) {
	upstream := errors.New("incompatible image type")
	ops := &fakeOps{rlErr: upstream}
	var buf bytes.Buffer
	d := NewDeconvolution(ops, DefaultDeconOptions())
	d.Out = &buf

	_, err := d.Deconvolve(fakeImage{name: "raw", dims: []int64{8, 8}})
	require.Equal(t, upstream, err)
	assert.True(t, strings.HasSuffix(buf.String(), "Done!\n"), "indicator must clean up before the error returns")
}

func TestPrintConfig(t *testing.T) {
	var buf bytes.Buffer
	d := NewDeconvolution(&fakeOps{}, DefaultDeconOptions())
	d.PrintConfig(&buf)

	out := buf.String()
	assert.Contains(t, out, "\tIterations: 30\n")
	assert.Contains(t, out, "\tWavelength: 550 nm\n")
	assert.Contains(t, out, "\tParticle position: 2000 nm\n")
	assert.Contains(t, out, "\tPSF: synthetic (default)\n")

	assert.Contains(t, d.ConfigMarkdown(), "| Reg factor | 0.01 |")
}

func TestGaussSub(t *testing.T) {
	ops := &fakeOps{}
	out, err := NewProcessor(ops).GaussSub(fakeImage{name: "raw", dims: []int64{4, 4}}, 2)
	require.NoError(t, err)
	assert.Equal(t, "sub(gauss(2),int32)", out.(fakeImage).name)
}

func TestGaussSubStack(t *testing.T) {
	ops := &fakeOps{}
	p := NewProcessor(ops)

	_, err := p.GaussSubStack(fakeImage{dims: []int64{4, 4}}, 1)
	require.Error(t, err)

	out, err := p.GaussSubStack(fakeImage{dims: []int64{4, 4, 3}}, 1.5)
	require.NoError(t, err)
	assert.Equal(t, "stack", out.(fakeImage).name)
	assert.Equal(t, "stack(3)", ops.calls[len(ops.calls)-1])
	assert.Contains(t, ops.calls, "sub(slice2,gauss(1.5))")
}

func TestConversionCheck(t *testing.T) {
	ops := &fakeOps{supported: map[string]bool{
		"net.imagej.Dataset>ij.ImagePlus": true,
	}}
	var buf bytes.Buffer
	ConversionCheck(&buf, ops)

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 20)
	assert.Equal(t, "net.imagej.Dataset [--->] ij.ImagePlus: true", lines[0])
	assert.Equal(t, "net.imagej.Dataset [--->] net.imagej.ImgPlus: false", lines[1])
}

type fakeDetector struct {
	raw [][3]float64
	err error
}

func (f fakeDetector) DetectLoG(Image, BlobParams) ([][3]float64, error) { return f.raw, f.err }

func TestFindBlobsScalesRadius(t *testing.T) {
	blobs, err := FindBlobs(fakeDetector{raw: [][3]float64{{10, 20, 1}, {5, 6, 2}}}, fakeImage{}, DefaultBlobParams())
	require.NoError(t, err)
	require.Len(t, blobs, 2)
	assert.Equal(t, 10.0, blobs[0].Y)
	assert.Equal(t, 20.0, blobs[0].X)
	assert.InDelta(t, math.Sqrt2, blobs[0].Radius, 1e-12)
	assert.InDelta(t, 2*math.Sqrt2, blobs[1].Radius, 1e-12)

	upstream := errors.New("runtime down")
	_, err = FindBlobs(fakeDetector{err: upstream}, fakeImage{}, DefaultBlobParams())
	assert.Equal(t, upstream, err)
}
