package config

// Config is a read-only resolver configuration.
type Config interface {
	commonConfig
	outputConfig
}

// commonConfig contains configurables common
// to all commands.
type commonConfig interface {
	LogFile() string
	LogLevel() string
	DockerConfig() string
	Context() string
	Ping() bool
}

// outputConfig are configurables relevant to
// how resolved values are presented.
type outputConfig interface {
	ResponseFormat() string
	Output() string
	ShowSecrets() bool
}
