// Package engine resolves how to reach a Docker daemon. It combines
// the on-disk configuration with the conventional environment
// overrides and can build API clients from the result.
package engine

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/docker/docker/client"
	"github.com/go-logr/logr"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	dockerctxerr "github.com/redhat-openshift-ecosystem/dockerctx/errors"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
)

// Source records where the daemon host came from.
type Source string

const (
	// SourceEnvironment means DOCKER_HOST supplied the host.
	SourceEnvironment Source = "environment"
	// SourceContext means a Docker context supplied the host.
	SourceContext Source = "context"
	// SourceDefault means the platform default socket was assumed.
	SourceDefault Source = "default"
)

// ConnectionParams is everything needed to dial a Docker daemon.
type ConnectionParams struct {
	// Host is the daemon endpoint, e.g. unix:///var/run/docker.sock.
	Host string
	// ContextName is set when Host was taken from a Docker context.
	ContextName string
	// TLSVerify requires TLS with certificate verification.
	TLSVerify bool
	// CertPath is the directory holding ca.pem, cert.pem and key.pem
	// when TLS material is configured.
	CertPath string
	// Source records where Host was taken from.
	Source Source
}

type resolver struct {
	env func(string) string
}

type Option = func(*resolver)

// WithEnvironment substitutes env for os.Getenv when reading the
// DOCKER_HOST, DOCKER_CONTEXT, DOCKER_TLS_VERIFY and DOCKER_CERT_PATH
// overrides.
func WithEnvironment(env func(string) string) Option {
	return func(r *resolver) {
		r.env = env
	}
}

// ResolveConnection determines the daemon endpoint with the precedence
// the Docker CLI applies: DOCKER_HOST wins outright and the context is
// not consulted, then the active context with DOCKER_CONTEXT able to
// override its name, then the platform default socket. TLS settings
// from the environment are applied on top of whatever the context
// provided.
func ResolveConnection(ctx context.Context, meta *dockerconfig.Metadata, opts ...Option) (ConnectionParams, error) {
	resolver := resolver{
		env: os.Getenv,
	}
	for _, opt := range opts {
		opt(&resolver)
	}
	logger := logr.FromContextOrDiscard(ctx)

	var params ConnectionParams

	if host := resolver.env("DOCKER_HOST"); host != "" {
		params.Host = host
		params.Source = SourceEnvironment
		logger.V(log.DBG).Info("daemon host from environment", "host", host)
	} else {
		active := meta.Context()
		contextName := meta.Config().CurrentContext

		if override := resolver.env("DOCKER_CONTEXT"); override != "" {
			overridden, err := meta.ForContext(ctx, override)
			if err != nil {
				return ConnectionParams{}, fmt.Errorf("resolving DOCKER_CONTEXT override: %w", err)
			}
			active = overridden
			contextName = override
		}

		if active.Host != "" {
			params.Host = active.Host
			params.ContextName = contextName
			params.TLSVerify = active.TLSVerify()
			params.CertPath = active.TLSPath
			params.Source = SourceContext
			logger.V(log.DBG).Info("daemon host from context", "context", contextName, "host", active.Host)
		} else {
			params.Host = client.DefaultDockerHost
			params.Source = SourceDefault
			logger.V(log.DBG).Info("daemon host from platform default", "host", params.Host)
		}
	}

	// Any non-empty DOCKER_TLS_VERIFY enables verification; the value
	// itself is not inspected. The certificate directory falls back to
	// the configuration root, where the Docker CLI keeps its certs.
	if resolver.env("DOCKER_TLS_VERIFY") != "" {
		params.TLSVerify = true
		if params.CertPath == "" {
			params.CertPath = meta.Root()
		}
	}
	if certPath := resolver.env("DOCKER_CERT_PATH"); certPath != "" {
		params.CertPath = certPath
	}

	return params, nil
}

// NewClient builds a Docker API client for the given connection
// parameters. The caller owns the client and must Close it.
func NewClient(params ConnectionParams) (*client.Client, error) {
	if params.Host == "" {
		return nil, dockerctxerr.ErrNoDaemonHost
	}

	opts := []client.Opt{
		client.WithHost(params.Host),
		client.WithAPIVersionNegotiation(),
	}
	if params.CertPath != "" {
		opts = append(opts, client.WithTLSClientConfig(
			filepath.Join(params.CertPath, "ca.pem"),
			filepath.Join(params.CertPath, "cert.pem"),
			filepath.Join(params.CertPath, "key.pem"),
		))
	}

	return client.NewClientWithOpts(opts...)
}

// Validate dials the daemon described by params and pings it once.
func Validate(ctx context.Context, params ConnectionParams) error {
	cli, err := NewClient(params)
	if err != nil {
		return err
	}
	defer cli.Close()

	if _, err := cli.Ping(ctx); err != nil {
		return fmt.Errorf("pinging docker daemon at %s: %w", params.Host, err)
	}

	return nil
}
