package errors

import "errors"

// Library-wide error messages are here.
var (
	ErrConfigFileRead      = errors.New("error reading docker configuration file")
	ErrConfigFileParse     = errors.New("error parsing docker configuration file")
	ErrContextNotFound     = errors.New("docker context does not exist")
	ErrContextMetaParse    = errors.New("error parsing docker context metadata file")
	ErrCredentialHelper    = errors.New("credential helper execution failed")
	ErrNoDaemonHost        = errors.New("no docker daemon host could be determined")
	ErrInvalidRegistryName = errors.New("invalid registry or image reference")
)
