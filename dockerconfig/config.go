package dockerconfig

import (
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"strings"

	"github.com/spf13/afero"

	dockerctxerr "github.com/redhat-openshift-ecosystem/dockerctx/errors"
)

// Config is the parsed content of the Docker CLI's config.json. A
// missing file parses to the zero value, which callers read as "use
// engine defaults, no registry credentials". Treat it as read-only.
type Config struct {
	// CurrentContext names the active context, or is empty when the
	// CLI never recorded one.
	CurrentContext string
	// CredsStore names the default external credential helper, without
	// the docker-credential- binary prefix.
	CredsStore string
	// CredHelpers maps a registry host to the helper handling it,
	// taking precedence over CredsStore for that host.
	CredHelpers map[string]string
	// Auths holds the inline credentials, keyed by registry.
	Auths map[string]Auth
}

// Auth is one registry credential from the auths section of
// config.json. A packed auth string, when present and well formed, has
// already been decoded into Username and Password.
type Auth struct {
	Username string
	Password string
	Email    string
}

// Empty reports whether the credential carries no usable values.
func (a Auth) Empty() bool {
	return a == Auth{}
}

// AuthFor returns the inline credential stored under exactly the given
// key. Registry aliasing is a caller concern.
func (c Config) AuthFor(registry string) (Auth, bool) {
	auth, ok := c.Auths[registry]
	return auth, ok
}

// CredentialHelperFor returns the helper responsible for a registry:
// the registry-specific entry from credHelpers when present, otherwise
// the default credsStore. Empty means no helper is configured.
func (c Config) CredentialHelperFor(registry string) string {
	if helper, ok := c.CredHelpers[registry]; ok {
		return helper
	}
	return c.CredsStore
}

// configFile is the wire form of config.json. The CLI writes more keys
// than these; everything else is ignored.
type configFile struct {
	CurrentContext string               `json:"currentContext"`
	CredsStore     string               `json:"credsStore"`
	CredHelpers    map[string]string    `json:"credHelpers"`
	Auths          map[string]authEntry `json:"auths"`
}

type authEntry struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Auth     string `json:"auth"`
}

// loadConfig reads and parses config.json under root. A missing file is
// the normal no-configuration case and yields an empty Config. A file
// that exists but cannot be read or parsed is fatal; absence and
// malformation must never be conflated.
func loadConfig(fsys afero.Fs, root string) (Config, error) {
	path := configFilePath(root)

	raw, err := afero.ReadFile(fsys, path)
	if errors.Is(err, fs.ErrNotExist) {
		return Config{}, nil
	}
	if err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", dockerctxerr.ErrConfigFileRead, path, err)
	}

	var file configFile
	if err := json.Unmarshal(raw, &file); err != nil {
		return Config{}, fmt.Errorf("%w: %s: %v", dockerctxerr.ErrConfigFileParse, path, err)
	}

	cfg := Config{
		CurrentContext: file.CurrentContext,
		CredsStore:     file.CredsStore,
		CredHelpers:    file.CredHelpers,
	}
	if len(file.Auths) > 0 {
		cfg.Auths = make(map[string]Auth, len(file.Auths))
		for registry, entry := range file.Auths {
			cfg.Auths[registry] = newAuth(entry)
		}
	}
	return cfg, nil
}

// newAuth builds an Auth from one wire entry. When the packed auth
// string decodes to a username:password pair, the decoded values
// replace the discrete fields; on any decode trouble the discrete
// fields stand. Email only ever comes from its own field.
func newAuth(entry authEntry) Auth {
	auth := Auth{
		Username: entry.Username,
		Password: entry.Password,
		Email:    entry.Email,
	}
	if entry.Auth == "" {
		return auth
	}

	decoded, err := base64.StdEncoding.DecodeString(entry.Auth)
	if err != nil {
		// Some writers strip the trailing padding.
		decoded, err = base64.RawStdEncoding.DecodeString(entry.Auth)
	}
	if err != nil {
		return auth
	}

	parts := strings.SplitN(string(decoded), ":", 2)
	if len(parts) != 2 {
		return auth
	}
	auth.Username = parts[0]
	auth.Password = parts[1]
	return auth
}
