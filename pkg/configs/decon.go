package configs

import "github.com/spf13/viper"

// DeconConfig 反卷积默认参数，长度单位为纳米
type DeconConfig struct {
	Iterations        int     `mapstructure:"iterations"`
	NumericalAperture float64 `mapstructure:"numerical_aperture"`
	Wavelength        float64 `mapstructure:"wavelength"`
	LateralRes        float64 `mapstructure:"lateral_res"`
	AxialRes          float64 `mapstructure:"axial_res"`
	ParticlePos       float64 `mapstructure:"particle_pos"`
	RegFactor         float64 `mapstructure:"reg_factor"`
	RIImmersion       float64 `mapstructure:"ri_immersion"`
	RISample          float64 `mapstructure:"ri_sample"`
}

func setDeconConfigDefaults(v *viper.Viper) {
	v.SetDefault("decon.iterations", 30)
	v.SetDefault("decon.numerical_aperture", 0.75)
	v.SetDefault("decon.wavelength", 550)
	v.SetDefault("decon.lateral_res", 100)
	v.SetDefault("decon.axial_res", 100)
	v.SetDefault("decon.particle_pos", 2000)
	v.SetDefault("decon.reg_factor", 0.01)
	v.SetDefault("decon.ri_immersion", 1.5)
	v.SetDefault("decon.ri_sample", 1.4)
}
