// Package credhelper invokes the external docker-credential-* programs
// that the Docker CLI delegates registry credentials to. Helpers are
// separate binaries speaking a small JSON protocol on stdin/stdout;
// this package wraps the get operation and the platform default store
// detection.
package credhelper

import (
	"context"
	"fmt"

	"github.com/docker/docker-credential-helpers/client"
	"github.com/docker/docker-credential-helpers/credentials"
	"github.com/go-logr/logr"

	dockerctxerr "github.com/redhat-openshift-ecosystem/dockerctx/errors"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
)

// binaryPrefix is prepended to a helper name to form the binary the
// Docker CLI would execute, e.g. desktop -> docker-credential-desktop.
const binaryPrefix = "docker-credential-"

// tokenUsername is the reserved username helpers return when the
// secret is an identity token rather than a password.
const tokenUsername = "<token>"

// Credential is what a helper returned for one server.
type Credential struct {
	Username string
	Secret   string
}

// IsIdentityToken reports whether the secret is an identity token
// instead of a password.
func (c Credential) IsIdentityToken() bool {
	return c.Username == tokenUsername
}

// Helper runs one named credential helper.
type Helper struct {
	name    string
	program client.ProgramFunc
}

type Option = func(*Helper)

// WithProgramFunc substitutes the helper binary execution. Tests use
// this to avoid spawning processes.
func WithProgramFunc(program client.ProgramFunc) Option {
	return func(h *Helper) {
		h.program = program
	}
}

// New returns a Helper for the named helper, executing the
// conventionally named binary from PATH unless overridden.
func New(name string, opts ...Option) *Helper {
	h := &Helper{
		name:    name,
		program: client.NewShellProgramFunc(binaryPrefix + name),
	}

	for _, opt := range opts {
		opt(h)
	}

	return h
}

// Name returns the helper's short name, without the binary prefix.
func (h *Helper) Name() string {
	return h.name
}

// Get asks the helper for the credential stored under serverURL. A
// helper that has no entry for the server is a normal outcome reported
// through found; a helper that cannot run or misbehaves is an error.
func (h *Helper) Get(ctx context.Context, serverURL string) (cred Credential, found bool, err error) {
	logger := logr.FromContextOrDiscard(ctx)
	logger.V(log.TRC).Info("invoking credential helper", "helper", h.name, "serverURL", serverURL)

	resolved, err := client.Get(h.program, serverURL)
	if credentials.IsErrCredentialsNotFound(err) {
		return Credential{}, false, nil
	}
	if err != nil {
		return Credential{}, false, fmt.Errorf("%w: %s: %v", dockerctxerr.ErrCredentialHelper, h.name, err)
	}

	return Credential{
		Username: resolved.Username,
		Secret:   resolved.Secret,
	}, true, nil
}
