package runtime

import (
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/config"
)

// ensure ReadOnlyConfig always implements config.Config
var _ config.Config = &ReadOnlyConfig{}

// ReadOnlyConfig is a Config that cannot be modified.
type ReadOnlyConfig struct {
	cfg Config
}

func (ro *ReadOnlyConfig) LogFile() string {
	return ro.cfg.LogFile
}

func (ro *ReadOnlyConfig) LogLevel() string {
	return ro.cfg.LogLevel
}

func (ro *ReadOnlyConfig) DockerConfig() string {
	return ro.cfg.DockerConfig
}

func (ro *ReadOnlyConfig) Context() string {
	return ro.cfg.Context
}

func (ro *ReadOnlyConfig) Ping() bool {
	return ro.cfg.Ping
}

func (ro *ReadOnlyConfig) ResponseFormat() string {
	return ro.cfg.ResponseFormat
}

func (ro *ReadOnlyConfig) Output() string {
	return ro.cfg.Output
}

func (ro *ReadOnlyConfig) ShowSecrets() bool {
	return ro.cfg.ShowSecrets
}
