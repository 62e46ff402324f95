package dockerconfig

import (
	"crypto/sha256"
	"encoding/hex"
	"path/filepath"

	"github.com/docker/docker/pkg/homedir"
)

// On-disk layout constants. These mirror the Docker CLI's own layout
// and must not drift from it: this package only ever reads directories
// the CLI itself created.
const (
	// EnvOverride names the environment variable that overrides the
	// configuration root directory when set and non-empty.
	EnvOverride = "DOCKER_CONFIG"

	// DefaultContextName is the reserved context name that resolves to
	// engine defaults without touching the contexts directory.
	DefaultContextName = "default"

	configDirName      = ".docker"
	configFileName     = "config.json"
	contextsDirName    = "contexts"
	contextsMetaSubdir = "meta"
	contextsTLSSubdir  = "tls"
	metaFileName       = "meta.json"

	// dockerEndpointName keys the daemon endpoint inside context
	// metadata and names the TLS subdirectory for that endpoint.
	dockerEndpointName = "docker"
)

// configRoot determines the configuration root directory: the
// EnvOverride value when set and non-empty, otherwise .docker under the
// user's home directory. Existence is not checked here; downstream
// readers treat a missing tree as empty configuration.
func configRoot(env func(string) string) string {
	if dir := env(EnvOverride); dir != "" {
		return dir
	}
	return filepath.Join(homedir.Get(), configDirName)
}

// ContextHash derives the directory name the Docker CLI uses for a
// named context: the lowercase hex SHA-256 digest of the name's UTF-8
// bytes. No salt, no normalization.
func ContextHash(name string) string {
	digest := sha256.Sum256([]byte(name))
	return hex.EncodeToString(digest[:])
}

func configFilePath(root string) string {
	return filepath.Join(root, configFileName)
}

func contextMetaRoot(root string) string {
	return filepath.Join(root, contextsDirName, contextsMetaSubdir)
}

func contextMetaPath(root, hash string) string {
	return filepath.Join(contextMetaRoot(root), hash, metaFileName)
}

func contextTLSPath(root, hash string) string {
	return filepath.Join(root, contextsDirName, contextsTLSSubdir, hash, dockerEndpointName)
}
