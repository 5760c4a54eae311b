package imaging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/yeisme/tooled/pkg/indicator"
	"github.com/yeisme/tooled/pkg/utils/log"
)

const nm = 1e-9

// DeconOptions 反卷积参数，长度单位为纳米
type DeconOptions struct {
	Iterations        int
	NumericalAperture float64
	Wavelength        float64
	LateralRes        float64
	AxialRes          float64
	ParticlePos       float64
	RegFactor         float64
	RIImmersion       float64
	RISample          float64
}

// DefaultDeconOptions 返回默认的反卷积参数
func DefaultDeconOptions() DeconOptions {
	return DeconOptions{
		Iterations:        30,
		NumericalAperture: 0.75,
		Wavelength:        550,
		LateralRes:        100,
		AxialRes:          100,
		ParticlePos:       2000,
		RegFactor:         0.01,
		RIImmersion:       1.5,
		RISample:          1.4,
	}
}

// Deconvolution 使用运行时的 Richardson-Lucy TV 实现对图像反卷积
type Deconvolution struct {
	Ops     OpService
	Options DeconOptions
	// PSF 为空时，Deconvolve 会根据输入图像的维度合成一个衍射 PSF
	PSF Image
	// Out 为进度动画的输出目标，默认 os.Stdout
	Out io.Writer
}

// NewDeconvolution 创建反卷积器
func NewDeconvolution(ops OpService, opts DeconOptions) *Deconvolution {
	return &Deconvolution{Ops: ops, Options: opts, Out: os.Stdout}
}

// Deconvolve 对图像进行反卷积，返回新的图像
func (d *Deconvolution) Deconvolve(img Image) (Image, error) {
	logger := log.GetLogger()

	imgF, err := d.Ops.ConvertFloat32(img)
	if err != nil {
		return nil, err
	}

	if d.PSF == nil {
		if err := d.CreateSyntheticPSF(img); err != nil {
			return nil, err
		}
	}

	logger.Debug().
		Int("iterations", d.Options.Iterations).
		Float64("reg_factor", d.Options.RegFactor).
		Msg("running Richardson-Lucy TV deconvolution")

	var out Image
	err = indicator.Run(indicator.Config{
		StartMessage: "Deconvolving image...",
		EndMessage:   indicator.DefaultEndMessage,
		Interval:     indicator.DefaultInterval,
		Style:        indicator.StyleBuild,
	}, func() error {
		var runErr error
		out, runErr = d.Ops.RichardsonLucyTV(imgF, d.PSF, d.Options.Iterations, d.Options.RegFactor)
		return runErr
	}, indicator.WithWriter(d.writer()))
	if err != nil {
		return nil, err
	}
	return out, nil
}

// CreateSyntheticPSF 根据图像维度合成衍射 PSF 并保存到 d.PSF
func (d *Deconvolution) CreateSyntheticPSF(img Image) error {
	o := d.Options
	psf, err := d.Ops.KernelDiffraction(
		img.Dimensions(),
		o.NumericalAperture,
		o.Wavelength*nm,
		o.RISample,
		o.RIImmersion,
		o.LateralRes*nm,
		o.AxialRes*nm,
		o.ParticlePos*nm,
	)
	if err != nil {
		return err
	}
	d.PSF = psf
	return nil
}

func (d *Deconvolution) writer() io.Writer {
	if d.Out == nil {
		return os.Stdout
	}
	return d.Out
}

// PrintConfig 打印当前的反卷积配置
func (d *Deconvolution) PrintConfig(w io.Writer) {
	o := d.Options
	fmt.Fprintln(w, "\nDeconvolution configuration")
	fmt.Fprintf(w, "\tIterations: %d\n", o.Iterations)
	fmt.Fprintf(w, "\tNumerical Aperture: %g\n", o.NumericalAperture)
	fmt.Fprintf(w, "\tWavelength: %g nm\n", o.Wavelength)
	fmt.Fprintf(w, "\tLateral resolution: %g nm\n", o.LateralRes)
	fmt.Fprintf(w, "\tAxial resolution: %g nm\n", o.AxialRes)
	fmt.Fprintf(w, "\tParticle position: %.0f nm\n", o.ParticlePos)
	fmt.Fprintf(w, "\tRi Immersion: %g\n", o.RIImmersion)
	fmt.Fprintf(w, "\tRi Sample: %g\n", o.RISample)
	fmt.Fprintf(w, "\tReg factor: %g\n", o.RegFactor)
	fmt.Fprintf(w, "\tPSF: %s\n\n", d.psfLabel())
}

// ConfigMarkdown 以 Markdown 表格返回当前配置
func (d *Deconvolution) ConfigMarkdown() string {
	o := d.Options
	var b strings.Builder
	b.WriteString("# Deconvolution configuration\n\n")
	b.WriteString("| Parameter | Value |\n|---|---|\n")
	fmt.Fprintf(&b, "| Iterations | %d |\n", o.Iterations)
	fmt.Fprintf(&b, "| Numerical Aperture | %g |\n", o.NumericalAperture)
	fmt.Fprintf(&b, "| Wavelength | %g nm |\n", o.Wavelength)
	fmt.Fprintf(&b, "| Lateral resolution | %g nm |\n", o.LateralRes)
	fmt.Fprintf(&b, "| Axial resolution | %g nm |\n", o.AxialRes)
	fmt.Fprintf(&b, "| Particle position | %.0f nm |\n", o.ParticlePos)
	fmt.Fprintf(&b, "| Ri Immersion | %g |\n", o.RIImmersion)
	fmt.Fprintf(&b, "| Ri Sample | %g |\n", o.RISample)
	fmt.Fprintf(&b, "| Reg factor | %g |\n", o.RegFactor)
	fmt.Fprintf(&b, "| PSF | %s |\n", d.psfLabel())
	return b.String()
}

func (d *Deconvolution) psfLabel() string {
	if d.PSF == nil {
		return "synthetic (default)"
	}
	return fmt.Sprintf("%v", d.PSF.Dimensions())
}
