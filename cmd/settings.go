package cmd

import (
	"github.com/yeisme/tooled/pkg/configs"
	"github.com/yeisme/tooled/pkg/imaging"
	"github.com/yeisme/tooled/pkg/indicator"
	"github.com/yeisme/tooled/pkg/plot"
	"github.com/yeisme/tooled/pkg/table"
)

// 配置结构到各功能包参数的转换；configs 不依赖功能包，转换集中在这里

func indicatorConfig(c configs.IndicatorConfig) (indicator.Config, error) {
	st, err := indicator.ParseStyle(c.Style)
	if err != nil {
		return indicator.Config{}, err
	}
	return indicator.Config{
		StartMessage: c.StartMessage,
		EndMessage:   c.EndMessage,
		Interval:     c.Interval,
		Style:        st,
	}, nil
}

func deconOptions(c configs.DeconConfig) imaging.DeconOptions {
	return imaging.DeconOptions{
		Iterations:        c.Iterations,
		NumericalAperture: c.NumericalAperture,
		Wavelength:        c.Wavelength,
		LateralRes:        c.LateralRes,
		AxialRes:          c.AxialRes,
		ParticlePos:       c.ParticlePos,
		RegFactor:         c.RegFactor,
		RIImmersion:       c.RIImmersion,
		RISample:          c.RISample,
	}
}

func tableColumns(c configs.TableConfig) table.Columns {
	return table.Columns{
		Track: c.TrackColumn,
		Time:  c.TimeColumn,
		Loc:   c.LocColumn,
		Drop:  c.DropColumn,
	}
}

func plotOptions(cfg *configs.Config) []plot.Option {
	return []plot.Option{
		plot.WithSize(plot.Size{Width: cfg.Plot.Width, Height: cfg.Plot.Height}),
		plot.WithColumns(tableColumns(cfg.Table)),
	}
}
