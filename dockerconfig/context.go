package dockerconfig

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"

	"github.com/spf13/afero"

	dockerctxerr "github.com/redhat-openshift-ecosystem/dockerctx/errors"
)

// Context describes how to reach the daemon for one named context. The
// zero value is the empty context: no host, no TLS flag, no TLS
// material, meaning "connect using engine defaults".
type Context struct {
	// Host is the daemon endpoint recorded for the context, such as
	// unix:///var/run/docker.sock or tcp://10.0.0.5:2376. Empty when
	// the metadata carries none.
	Host string
	// SkipTLSVerify is the raw flag from the metadata. Nil when the
	// flag is absent; the distinction feeds TLSVerify.
	SkipTLSVerify *bool
	// TLSPath is the directory holding TLS material for the daemon
	// endpoint, empty when no such directory exists. Contents are
	// opaque to this package.
	TLSPath string
}

// TLSVerify reports whether the context explicitly enables TLS
// verification: true only when SkipTLSVerify is present and false. An
// absent flag, or one explicitly set to true, both yield false. The
// Docker CLI's effective default works this way and the asymmetry is
// deliberate.
func (c Context) TLSVerify() bool {
	return c.SkipTLSVerify != nil && !*c.SkipTLSVerify
}

// metaFile is the wire form of a context's meta.json. Only the docker
// endpoint is consumed; the CLI records other endpoints and metadata
// this package ignores.
type metaFile struct {
	Name      string                  `json:"Name"`
	Endpoints map[string]endpointMeta `json:"Endpoints"`
}

type endpointMeta struct {
	Host          string `json:"Host"`
	SkipTLSVerify *bool  `json:"SkipTLSVerify"`
}

// resolveContext loads the context with the given name from root. An
// empty or "default" name short-circuits to the empty Context without
// any disk access. A named context must have a metadata file; its
// absence is a user misconfiguration reported with the context name,
// never silently downgraded to defaults. TLS material is attached only
// when its directory exists.
func resolveContext(fsys afero.Fs, root, name string) (Context, error) {
	if name == "" || name == DefaultContextName {
		return Context{}, nil
	}

	hash := ContextHash(name)
	metaPath := contextMetaPath(root, hash)

	raw, err := afero.ReadFile(fsys, metaPath)
	if errors.Is(err, fs.ErrNotExist) {
		return Context{}, fmt.Errorf("%w: %s", dockerctxerr.ErrContextNotFound, name)
	}
	if err != nil {
		return Context{}, fmt.Errorf("%w: %s: %v", dockerctxerr.ErrConfigFileRead, metaPath, err)
	}

	var meta metaFile
	if err := json.Unmarshal(raw, &meta); err != nil {
		return Context{}, fmt.Errorf("%w: %s: %v", dockerctxerr.ErrContextMetaParse, metaPath, err)
	}

	resolved := Context{}
	if endpoint, ok := meta.Endpoints[dockerEndpointName]; ok {
		resolved.Host = endpoint.Host
		resolved.SkipTLSVerify = endpoint.SkipTLSVerify
	}

	tlsPath := contextTLSPath(root, hash)
	if isDir, _ := afero.DirExists(fsys, tlsPath); isDir {
		resolved.TLSPath = tlsPath
	}

	return resolved, nil
}
