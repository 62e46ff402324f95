// Package dockerconfig resolves the Docker CLI's on-disk configuration
// without talking to a daemon. It answers three questions: which
// context is active, what daemon host and TLS parameters that context
// implies, and what registry credentials are recorded.
//
// The layout and encoding rules reproduce the Docker CLI's own: the
// configuration root comes from DOCKER_CONFIG or ~/.docker, context
// metadata lives under contexts/meta keyed by the SHA-256 of the
// context name, and packed auth strings decode to username:password
// pairs. Any divergence from the CLI here silently breaks connectivity
// for users, so behavior follows the CLI even where it is surprising,
// most notably the TLS verification default described on
// Context.TLSVerify.
package dockerconfig

import (
	"context"
	"os"

	"github.com/go-logr/logr"
	"github.com/spf13/afero"

	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
)

// Metadata is the result of one resolution run: the configuration
// root, the parsed global configuration, and the active context. It is
// a snapshot; nothing is re-read or watched after Load returns, and a
// new build or connect operation should Load again.
type Metadata struct {
	root    string
	fs      afero.Fs
	env     func(string) string
	config  Config
	context Context
}

type Option = func(*Metadata)

// WithFilesystem reads all configuration through fsys instead of the
// host filesystem.
func WithFilesystem(fsys afero.Fs) Option {
	return func(m *Metadata) {
		m.fs = fsys
	}
}

// WithEnvironment resolves environment lookups through env instead of
// the process environment.
func WithEnvironment(env func(string) string) Option {
	return func(m *Metadata) {
		m.env = env
	}
}

// Load resolves the configuration root, parses config.json when
// present, and resolves the currently active context. Fatal conditions
// return an error and no Metadata; resolution is all-or-nothing.
func Load(ctx context.Context, opts ...Option) (*Metadata, error) {
	logger := logr.FromContextOrDiscard(ctx)

	m := &Metadata{
		fs:  afero.NewOsFs(),
		env: os.Getenv,
	}
	for _, opt := range opts {
		opt(m)
	}

	m.root = configRoot(m.env)
	logger.V(log.DBG).Info("resolved docker configuration root", "root", m.root)

	config, err := loadConfig(m.fs, m.root)
	if err != nil {
		return nil, err
	}
	m.config = config

	active, err := resolveContext(m.fs, m.root, config.CurrentContext)
	if err != nil {
		return nil, err
	}
	m.context = active

	logger.V(log.DBG).Info("resolved active docker context",
		"context", config.CurrentContext, "host", active.Host)

	return m, nil
}

// Root returns the resolved configuration root directory.
func (m *Metadata) Root() string {
	return m.root
}

// Config returns the parsed global configuration. The maps it carries
// are shared; treat them as read-only.
func (m *Metadata) Config() Config {
	return m.config
}

// Context returns the context that was active at load time.
func (m *Metadata) Context() Context {
	return m.context
}

// ForContext resolves the named context against the same configuration
// root, without re-reading config.json and without mutating the
// receiver. It answers "what would connecting via this context look
// like" for a context other than the active one.
func (m *Metadata) ForContext(ctx context.Context, name string) (Context, error) {
	logger := logr.FromContextOrDiscard(ctx)
	logger.V(log.TRC).Info("resolving docker context", "context", name)

	return resolveContext(m.fs, m.root, name)
}
