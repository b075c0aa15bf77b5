package config

import (
	"github.com/spf13/viper"
)

// EnvPrefix prefixes every environment variable rxcalc reads.
const EnvPrefix = "RXCALC"

// LoadEnv fills fields still empty after flag parsing from RXCALC_ADDR,
// RXCALC_DSN, RXCALC_CATALOG, RXCALC_POLICY, RXCALC_LOG_FORMAT and
// RXCALC_LOG_LEVEL, then applies defaults.
func (c *Config) LoadEnv() {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("ADDR", DefaultAddr)
	v.SetDefault("LOG_FORMAT", "text")
	v.SetDefault("LOG_LEVEL", "info")

	_ = v.BindEnv("ADDR")
	_ = v.BindEnv("DSN", EnvPrefix+"_DSN", "DATABASE_URL")
	_ = v.BindEnv("CATALOG")
	_ = v.BindEnv("POLICY")
	_ = v.BindEnv("LOG_FORMAT")
	_ = v.BindEnv("LOG_LEVEL")

	fill(&c.Addr, v.GetString("ADDR"))
	fill(&c.DSN, v.GetString("DSN"))
	fill(&c.CatalogPath, v.GetString("CATALOG"))
	fill(&c.PolicyPath, v.GetString("POLICY"))
	fill(&c.LogFormat, v.GetString("LOG_FORMAT"))
	fill(&c.LogLevel, v.GetString("LOG_LEVEL"))
}

func fill(dst *string, v string) {
	if *dst == "" {
		*dst = v
	}
}
