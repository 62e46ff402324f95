package runtime

import (
	"github.com/spf13/viper"
)

// Config contains configuration details for running the resolver.
type Config struct {
	LogFile      string
	LogLevel     string
	DockerConfig string
	Context      string
	Ping         bool
	// Output-Specific Fields
	ResponseFormat string
	Output         string
	ShowSecrets    bool
}

// ReadOnly returns an uneditable configuration.
func (c *Config) ReadOnly() *ReadOnlyConfig {
	return &ReadOnlyConfig{
		cfg: *c,
	}
}

// NewConfigFrom will return a runtime.Config based on the stored inputs in
// the provided viper.Viper. Note that shared configuration should be set
// in this function, and not in command-specific functions. Defaults should
// also be set after this function has been called.
func NewConfigFrom(vcfg viper.Viper) (*Config, error) {
	cfg := Config{}
	cfg.LogFile = vcfg.GetString("logfile")
	cfg.LogLevel = vcfg.GetString("loglevel")
	cfg.DockerConfig = vcfg.GetString("dockerConfig")
	cfg.Context = vcfg.GetString("context")
	cfg.Ping = vcfg.GetBool("ping")
	cfg.storeOutputConfiguration(vcfg)
	return &cfg, nil
}

// storeOutputConfiguration reads output-specific config items in viper,
// normalizes them, and stores them in Config.
func (c *Config) storeOutputConfiguration(vcfg viper.Viper) {
	c.ResponseFormat = vcfg.GetString("format")
	c.Output = vcfg.GetString("output")
	c.ShowSecrets = vcfg.GetBool("showSecrets")
}
