// Package plot 把实验表绘制为图像文件，图像格式由文件扩展名决定（png、svg、pdf...）
package plot

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"sort"

	"github.com/go-gota/gota/dataframe"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette/moreland"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	"github.com/yeisme/tooled/pkg/table"
)

// ErrNotEnoughAxes 三维散点图需要三列
var ErrNotEnoughAxes = errors.New("3d scatter needs three axes")

// Size 输出图像尺寸，单位为英寸
type Size struct {
	Width  float64
	Height float64
}

// DefaultSize 默认 6x4 英寸
func DefaultSize() Size {
	return Size{Width: 6, Height: 4}
}

// Option 调整输出
type Option func(*options)

type options struct {
	size    Size
	columns table.Columns
}

// WithSize 设置输出尺寸
func WithSize(s Size) Option {
	return func(o *options) {
		if s.Width > 0 {
			o.size.Width = s.Width
		}
		if s.Height > 0 {
			o.size.Height = s.Height
		}
	}
}

// WithColumns 设置 time/loc 列名
func WithColumns(c table.Columns) Option {
	return func(o *options) {
		o.columns = c
	}
}

func buildOptions(opts []Option) options {
	o := options{size: DefaultSize(), columns: table.DefaultColumns()}
	for _, opt := range opts {
		opt(&o)
	}
	return o
}

func save(p *plot.Plot, o options, path string) error {
	if err := p.Save(vg.Length(o.size.Width)*vg.Inch, vg.Length(o.size.Height)*vg.Inch, path); err != nil {
		return fmt.Errorf("save plot %s: %w", path, err)
	}
	return nil
}

// TrackSum 绘制每条 track 的通道总和散点图
func TrackSum(sums []table.TrackSum, channel, path string, opts ...Option) error {
	o := buildOptions(opts)

	p := plot.New()
	p.Title.Text = "Track sum"
	p.X.Label.Text = o.columns.Track
	p.Y.Label.Text = channel

	pts := make(plotter.XYs, len(sums))
	names := make([]string, len(sums))
	for i, s := range sums {
		pts[i].X = float64(i)
		pts[i].Y = s.Sum
		names[i] = s.Track
	}
	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyle.Color = plotutil.Color(0)
	sc.GlyphStyle.Shape = draw.CircleGlyph{}
	p.Add(sc, plotter.NewGrid())
	p.NominalX(names...)

	return save(p, o, path)
}

type band struct {
	time      float64
	mean, std float64
}

// ShadeLine 按 loc 分组绘制 time 与通道值的折线
// 折线为每个 time 的均值，阴影为 ± 总体标准差（不是置信区间），图例标注为 "<loc> (mean ± sd)"
func ShadeLine(df dataframe.DataFrame, channel, path string, opts ...Option) error {
	o := buildOptions(opts)
	for _, col := range []string{channel, o.columns.Time, o.columns.Loc} {
		if err := table.CheckChannel(df, col); err != nil {
			return err
		}
	}

	groups, err := table.SplitByColumn(df, o.columns.Loc)
	if err != nil {
		return err
	}

	p := plot.New()
	p.X.Label.Text = o.columns.Time
	p.Y.Label.Text = channel
	p.Legend.Top = true

	for i, g := range groups {
		bands := aggregate(g.Frame.Col(o.columns.Time).Float(), g.Frame.Col(channel).Float())
		if len(bands) == 0 {
			continue
		}

		line := make(plotter.XYs, len(bands))
		shade := make(plotter.XYs, 0, 2*len(bands))
		for j, b := range bands {
			line[j] = plotter.XY{X: b.time, Y: b.mean}
			shade = append(shade, plotter.XY{X: b.time, Y: b.mean + b.std})
		}
		for j := len(bands) - 1; j >= 0; j-- {
			shade = append(shade, plotter.XY{X: bands[j].time, Y: bands[j].mean - bands[j].std})
		}

		c := plotutil.Color(i)
		poly, err := plotter.NewPolygon(shade)
		if err != nil {
			return err
		}
		poly.Color = fade(c)
		poly.LineStyle.Width = 0

		l, err := plotter.NewLine(line)
		if err != nil {
			return err
		}
		l.LineStyle.Color = c
		l.LineStyle.Dashes = plotutil.Dashes(i)
		l.LineStyle.Width = vg.Points(1.5)

		p.Add(poly, l)
		p.Legend.Add(bandLabel(g.Value), l)
	}

	return save(p, o, path)
}

func bandLabel(loc string) string {
	return loc + " (mean ± sd)"
}

// aggregate 按 time 聚合出均值和总体标准差，结果按 time 升序
func aggregate(times, values []float64) []band {
	acc := make(map[float64][]float64)
	for i, t := range times {
		if math.IsNaN(t) || math.IsNaN(values[i]) {
			continue
		}
		acc[t] = append(acc[t], values[i])
	}

	out := make([]band, 0, len(acc))
	for t, vs := range acc {
		var sum float64
		for _, v := range vs {
			sum += v
		}
		mean := sum / float64(len(vs))
		var sq float64
		for _, v := range vs {
			sq += (v - mean) * (v - mean)
		}
		out = append(out, band{time: t, mean: mean, std: math.Sqrt(sq / float64(len(vs)))})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].time < out[j].time })
	return out
}

// Scatter3D 绘制 x/y 散点，z 映射为颜色；axes 为空时使用表的前三列
func Scatter3D(df dataframe.DataFrame, axes []string, path string, opts ...Option) error {
	o := buildOptions(opts)
	if len(axes) == 0 {
		axes = df.Names()
	}
	if len(axes) < 3 {
		return fmt.Errorf("%w, got %d", ErrNotEnoughAxes, len(axes))
	}
	for _, a := range axes[:3] {
		if err := table.CheckChannel(df, a); err != nil {
			return err
		}
	}

	xs := df.Col(axes[0]).Float()
	ys := df.Col(axes[1]).Float()
	zs := df.Col(axes[2]).Float()

	pts := make(plotter.XYZs, len(xs))
	for i := range xs {
		pts[i] = plotter.XYZ{X: xs[i], Y: ys[i], Z: zs[i]}
	}

	cm := moreland.SmoothBlueRed()
	lo, hi := zRange(zs)
	cm.SetMin(lo)
	cm.SetMax(hi)

	sc, err := plotter.NewScatter(pts)
	if err != nil {
		return err
	}
	sc.GlyphStyleFunc = func(i int) draw.GlyphStyle {
		gs := draw.GlyphStyle{Shape: draw.CircleGlyph{}, Radius: vg.Points(3)}
		c, err := cm.At(pts[i].Z)
		if err != nil {
			c = plotutil.Color(0)
		}
		gs.Color = c
		return gs
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("colour: %s [%.4g, %.4g]", axes[2], lo, hi)
	p.X.Label.Text = axes[0]
	p.Y.Label.Text = axes[1]
	p.Add(sc)

	return save(p, o, path)
}

// fade 返回半透明的同色，用于阴影区域
func fade(c color.Color) color.Color {
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 0x40
	return n
}

func zRange(zs []float64) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, z := range zs {
		if math.IsNaN(z) {
			continue
		}
		lo = math.Min(lo, z)
		hi = math.Max(hi, z)
	}
	if math.IsInf(lo, 1) {
		return 0, 1
	}
	if lo == hi {
		hi = lo + 1
	}
	return lo, hi
}
