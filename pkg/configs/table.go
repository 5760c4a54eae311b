package configs

import "github.com/spf13/viper"

// TableConfig 实验结果表的列名
type TableConfig struct {
	TrackColumn string `mapstructure:"track_column"`
	TimeColumn  string `mapstructure:"time_column"`
	LocColumn   string `mapstructure:"loc_column"`
	DropColumn  string `mapstructure:"drop_column"` // 读取时删除的列，KNIME 导出的行号列
}

// PlotConfig 输出图像尺寸（英寸）
type PlotConfig struct {
	Width  float64 `mapstructure:"width"`
	Height float64 `mapstructure:"height"`
}

func setTableConfigDefaults(v *viper.Viper) {
	v.SetDefault("table.track_column", "track")
	v.SetDefault("table.time_column", "time")
	v.SetDefault("table.loc_column", "loc")
	v.SetDefault("table.drop_column", "row ID")
}

func setPlotConfigDefaults(v *viper.Viper) {
	v.SetDefault("plot.width", 6)
	v.SetDefault("plot.height", 4)
}
