package authn

import (
	"context"
	"strings"

	clicredentials "github.com/docker/cli/cli/config/credentials"
	"github.com/go-logr/logr"
	craneauthn "github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/credhelper"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
)

// dockerHubHosts are the registry names that all refer to Docker Hub.
// Credentials for any of them are conventionally stored under the
// canonical v1 endpoint key, but tools like podman write the shorter
// forms, so lookups must treat the whole set as one registry.
var dockerHubHosts = []string{"docker.io", "index.docker.io", "registry-1.docker.io"}

type dockerKeychain struct {
	ctx        context.Context
	meta       *dockerconfig.Metadata
	helperOpts []credhelper.Option
}

type Option = func(*dockerKeychain)

// WithMetadata resolves credentials against an already-loaded
// resolution result instead of loading one on first use.
func WithMetadata(meta *dockerconfig.Metadata) Option {
	return func(k *dockerKeychain) {
		k.meta = meta
	}
}

// WithHelperOptions applies opts to every credential helper the
// keychain constructs. Tests use this to stub helper execution.
func WithHelperOptions(opts ...credhelper.Option) Option {
	return func(k *dockerKeychain) {
		k.helperOpts = opts
	}
}

var keychain = dockerKeychain{
	ctx: context.Background(), // Initialize here, but can be overridden with Keychain func
}

// Keychain returns the docker-config keychain as a craneauthn.Keychain.
// This operates as a singleton. If provided an option, that option
// overwrites the single instance. If provided no option, the keychain
// is returned as already configured.
func Keychain(ctx context.Context, opts ...Option) craneauthn.Keychain {
	for _, opt := range opts {
		opt(&keychain)
	}

	keychain.ctx = ctx

	return &keychain
}

// Resolve returns an Authenticator with credentials, or Anonymous if no
// suitable credentials are found for the target. This implements the
// Keychain interface from go-containerregistry.
//
// A credential helper configured for the target's registry is consulted
// first; when it has no entry, the inline auths from config.json are
// searched. A helper that cannot be executed is an error, since
// silently downgrading to anonymous would mask a broken installation.
func (k *dockerKeychain) Resolve(target craneauthn.Resource) (craneauthn.Authenticator, error) {
	logger := logr.FromContextOrDiscard(k.ctx)
	logger.V(log.TRC).Info("resolving registry credential", "target", target.String())

	if k.meta == nil {
		meta, err := dockerconfig.Load(k.ctx)
		if err != nil {
			return nil, err
		}
		k.meta = meta
	}
	cfg := k.meta.Config()

	registry := target.RegistryStr()
	serverURL := registry
	if isDockerHub(registry) {
		serverURL = craneauthn.DefaultAuthKey
	}

	if helperName := helperFor(cfg, registry); helperName != "" {
		helper := credhelper.New(helperName, k.helperOpts...)
		cred, found, err := helper.Get(k.ctx, serverURL)
		if err != nil {
			return nil, err
		}
		if found {
			if cred.IsIdentityToken() {
				return craneauthn.FromConfig(craneauthn.AuthConfig{IdentityToken: cred.Secret}), nil
			}
			return craneauthn.FromConfig(craneauthn.AuthConfig{
				Username: cred.Username,
				Password: cred.Secret,
			}), nil
		}
		logger.V(log.DBG).Info("credential helper had no entry for target", "helper", helperName)
	}

	if auth, ok := inlineAuthFor(cfg, target); ok {
		return craneauthn.FromConfig(craneauthn.AuthConfig{
			Username: auth.Username,
			Password: auth.Password,
		}), nil
	}

	return craneauthn.Anonymous, nil
}

// helperFor returns the helper responsible for registry. Helper maps
// may key Docker Hub under any of its aliases, so all of them are
// checked before falling back to the default store.
func helperFor(cfg dockerconfig.Config, registry string) string {
	if !isDockerHub(registry) {
		return cfg.CredentialHelperFor(registry)
	}

	for _, alias := range append([]string{craneauthn.DefaultAuthKey}, dockerHubHosts...) {
		if helper, ok := cfg.CredHelpers[alias]; ok {
			return helper
		}
	}
	return cfg.CredsStore
}

// inlineAuthFor searches the inline auths for the target: exact keys
// first, then every stored key normalized to its hostname. Legacy
// entries key credentials under URLs such as https://test.io/v1/, and
// podman writes docker.io/repo style keys, so both shapes must match.
func inlineAuthFor(cfg dockerconfig.Config, target craneauthn.Resource) (dockerconfig.Auth, bool) {
	registry := target.RegistryStr()

	keys := []string{target.String(), registry}
	if isDockerHub(registry) {
		keys = append(keys, craneauthn.DefaultAuthKey)
		keys = append(keys, dockerHubHosts...)
		keys = append(keys, strings.Replace(target.String(), name.DefaultRegistry, "docker.io", 1))
	}

	for _, key := range keys {
		if auth, ok := cfg.AuthFor(key); ok {
			return auth, true
		}
	}

	for key, auth := range cfg.Auths {
		hostname := clicredentials.ConvertToHostname(key)
		if hostname == registry {
			return auth, true
		}
		if isDockerHub(registry) && isDockerHub(hostname) {
			return auth, true
		}
	}

	return dockerconfig.Auth{}, false
}

func isDockerHub(host string) bool {
	if host == name.DefaultRegistry {
		return true
	}
	for _, alias := range dockerHubHosts {
		if host == alias {
			return true
		}
	}
	return false
}
