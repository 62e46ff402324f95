package credhelper

import (
	clicredentials "github.com/docker/cli/cli/config/credentials"
)

// DefaultStore returns the effective default credential store: the
// configured name when non-empty, otherwise the platform default if
// its helper binary is installed. Empty means credentials stay inline
// in config.json.
func DefaultStore(configured string) string {
	return clicredentials.DetectDefaultStore(configured)
}
