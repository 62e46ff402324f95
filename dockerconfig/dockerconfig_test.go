package dockerconfig_test

import (
	"context"
	"fmt"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	"github.com/spf13/afero"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	dockerctxerr "github.com/redhat-openshift-ecosystem/dockerctx/errors"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/test"
)

const testRoot = "/home/tester/.docker"

// testctx carries a spec-visible logger through the resolver calls.
var testctx = test.NewTestLoggerContext(context.Background())

// envWith returns an environment lookup backed by the given map.
func envWith(vars map[string]string) func(string) string {
	return func(key string) string {
		return vars[key]
	}
}

// writeConfig writes contents as the global config.json under root.
func writeConfig(fsys afero.Fs, root, contents string) {
	GinkgoHelper()
	Expect(afero.WriteFile(fsys, filepath.Join(root, "config.json"), []byte(contents), 0o644)).To(Succeed())
}

// writeContextMeta records a context the way the Docker CLI would:
// meta.json under the hashed directory name.
func writeContextMeta(fsys afero.Fs, root, name, contents string) {
	GinkgoHelper()
	metaPath := filepath.Join(root, "contexts", "meta", dockerconfig.ContextHash(name), "meta.json")
	Expect(afero.WriteFile(fsys, metaPath, []byte(contents), 0o644)).To(Succeed())
}

// countingFs counts Open calls per path on top of a backing filesystem.
type countingFs struct {
	afero.Fs
	opens map[string]int
}

func newCountingFs(backing afero.Fs) *countingFs {
	return &countingFs{Fs: backing, opens: map[string]int{}}
}

func (c *countingFs) Open(name string) (afero.File, error) {
	c.opens[name]++
	return c.Fs.Open(name)
}

var _ = Describe("Docker configuration resolution", func() {
	var fsys afero.Fs
	var env func(string) string

	BeforeEach(func() {
		fsys = afero.NewMemMapFs()
		env = envWith(map[string]string{"DOCKER_CONFIG": testRoot})
	})

	load := func() (*dockerconfig.Metadata, error) {
		return dockerconfig.Load(testctx,
			dockerconfig.WithFilesystem(fsys),
			dockerconfig.WithEnvironment(env),
		)
	}

	Describe("resolving the configuration root", func() {
		It("should honor a non-empty DOCKER_CONFIG override verbatim", func() {
			md, err := load()
			Expect(err).ToNot(HaveOccurred())
			Expect(md.Root()).To(Equal(testRoot))
		})

		It("should fall back to .docker under the home directory when the override is empty", func() {
			env = envWith(map[string]string{})
			GinkgoT().Setenv("HOME", "/home/fallback")

			md, err := load()
			Expect(err).ToNot(HaveOccurred())
			Expect(md.Root()).To(Equal(filepath.Join("/home/fallback", ".docker")))
		})
	})

	Describe("loading the global configuration", func() {
		When("no config file exists", func() {
			It("should resolve to an empty configuration and context", func() {
				md, err := load()
				Expect(err).ToNot(HaveOccurred())

				cfg := md.Config()
				Expect(cfg.CurrentContext).To(BeEmpty())
				Expect(cfg.CredsStore).To(BeEmpty())
				Expect(cfg.CredHelpers).To(BeEmpty())
				Expect(cfg.Auths).To(BeEmpty())

				active := md.Context()
				Expect(active.Host).To(BeEmpty())
				Expect(active.SkipTLSVerify).To(BeNil())
				Expect(active.TLSVerify()).To(BeFalse())
				Expect(active.TLSPath).To(BeEmpty())
			})
		})

		When("the config file is present and well formed", func() {
			BeforeEach(func() {
				writeConfig(fsys, testRoot, `{
					"credsStore": "desktop",
					"credHelpers": {"registry.example.com": "ecr-login"},
					"auths": {"quay.io": {"username": "quayuser", "password": "quaypass"}}
				}`)
			})

			It("should surface the scalar fields and mappings", func() {
				md, err := load()
				Expect(err).ToNot(HaveOccurred())

				cfg := md.Config()
				Expect(cfg.CredsStore).To(Equal("desktop"))
				Expect(cfg.CredHelpers).To(HaveKeyWithValue("registry.example.com", "ecr-login"))
				auth, found := cfg.AuthFor("quay.io")
				Expect(found).To(BeTrue())
				Expect(auth.Username).To(Equal("quayuser"))
				Expect(auth.Password).To(Equal("quaypass"))
			})
		})

		When("the config file is malformed", func() {
			BeforeEach(func() {
				writeConfig(fsys, testRoot, `{"currentContext": `)
			})

			It("should fail identifying the file path", func() {
				_, err := load()
				Expect(err).To(MatchError(dockerctxerr.ErrConfigFileParse))
				Expect(err.Error()).To(ContainSubstring(filepath.Join(testRoot, "config.json")))
			})
		})
	})

	Describe("resolving the active context", func() {
		When("the current context is the default sentinel", func() {
			BeforeEach(func() {
				writeConfig(fsys, testRoot, `{"currentContext": "default"}`)
			})

			It("should return the empty context without touching the contexts directory", func() {
				counting := newCountingFs(fsys)
				fsys = counting

				md, err := load()
				Expect(err).ToNot(HaveOccurred())
				Expect(md.Context()).To(BeZero())

				for path := range counting.opens {
					Expect(path).ToNot(ContainSubstring("contexts"))
				}
			})
		})

		When("the current context is named and recorded", func() {
			BeforeEach(func() {
				writeConfig(fsys, testRoot, `{"currentContext": "remote"}`)
				writeContextMeta(fsys, testRoot, "remote", `{
					"Name": "remote",
					"Endpoints": {"docker": {"Host": "tcp://10.0.0.5:2376", "SkipTLSVerify": false}}
				}`)
			})

			It("should carry the endpoint host and TLS flag", func() {
				md, err := load()
				Expect(err).ToNot(HaveOccurred())

				active := md.Context()
				Expect(active.Host).To(Equal("tcp://10.0.0.5:2376"))
				Expect(active.SkipTLSVerify).ToNot(BeNil())
				Expect(*active.SkipTLSVerify).To(BeFalse())
				Expect(active.TLSVerify()).To(BeTrue())
				Expect(active.TLSPath).To(BeEmpty())
			})

			It("should attach the TLS directory only when it exists", func() {
				tlsDir := filepath.Join(testRoot, "contexts", "tls", dockerconfig.ContextHash("remote"), "docker")
				Expect(fsys.MkdirAll(tlsDir, 0o755)).To(Succeed())

				md, err := load()
				Expect(err).ToNot(HaveOccurred())
				Expect(md.Context().TLSPath).To(Equal(tlsDir))
			})
		})

		When("the current context has no metadata on disk", func() {
			BeforeEach(func() {
				writeConfig(fsys, testRoot, `{"currentContext": "ghost"}`)
			})

			It("should fail naming the context, not the path", func() {
				_, err := load()
				Expect(err).To(MatchError(dockerctxerr.ErrContextNotFound))
				Expect(err.Error()).To(ContainSubstring("ghost"))
			})
		})

		When("the context metadata is malformed", func() {
			BeforeEach(func() {
				writeConfig(fsys, testRoot, `{"currentContext": "remote"}`)
				writeContextMeta(fsys, testRoot, "remote", `{"Endpoints": [`)
			})

			It("should fail identifying the metadata file path", func() {
				_, err := load()
				Expect(err).To(MatchError(dockerctxerr.ErrContextMetaParse))
				Expect(err.Error()).To(ContainSubstring(dockerconfig.ContextHash("remote")))
				Expect(err.Error()).To(ContainSubstring("meta.json"))
			})
		})

		When("the metadata omits the skip flag", func() {
			BeforeEach(func() {
				writeConfig(fsys, testRoot, `{"currentContext": "remote"}`)
				writeContextMeta(fsys, testRoot, "remote", `{
					"Name": "remote",
					"Endpoints": {"docker": {"Host": "ssh://user@host"}}
				}`)
			})

			It("should leave the flag unset and verification off", func() {
				md, err := load()
				Expect(err).ToNot(HaveOccurred())
				Expect(md.Context().SkipTLSVerify).To(BeNil())
				Expect(md.Context().TLSVerify()).To(BeFalse())
			})
		})
	})

	Describe("re-resolving with ForContext", func() {
		var counting *countingFs

		BeforeEach(func() {
			writeConfig(fsys, testRoot, `{"currentContext": "remote"}`)
			writeContextMeta(fsys, testRoot, "remote", `{
				"Name": "remote",
				"Endpoints": {"docker": {"Host": "tcp://10.0.0.5:2376"}}
			}`)
			writeContextMeta(fsys, testRoot, "other", `{
				"Name": "other",
				"Endpoints": {"docker": {"Host": "unix:///run/other.sock", "SkipTLSVerify": true}}
			}`)
			counting = newCountingFs(fsys)
			fsys = counting
		})

		It("should resolve an arbitrary context without re-reading the global config", func() {
			md, err := load()
			Expect(err).ToNot(HaveOccurred())

			configPath := filepath.Join(testRoot, "config.json")
			Expect(counting.opens[configPath]).To(Equal(1))

			other, err := md.ForContext(testctx, "other")
			Expect(err).ToNot(HaveOccurred())
			Expect(other.Host).To(Equal("unix:///run/other.sock"))
			Expect(other.TLSVerify()).To(BeFalse())

			Expect(counting.opens[configPath]).To(Equal(1))
			Expect(md.Context().Host).To(Equal("tcp://10.0.0.5:2376"))
		})

		It("should short-circuit the default name to the empty context", func() {
			md, err := load()
			Expect(err).ToNot(HaveOccurred())

			resolved, err := md.ForContext(testctx, "default")
			Expect(err).ToNot(HaveOccurred())
			Expect(resolved).To(BeZero())
		})

		It("should propagate referenced-but-missing failures", func() {
			md, err := load()
			Expect(err).ToNot(HaveOccurred())

			_, err = md.ForContext(testctx, "ghost")
			Expect(err).To(MatchError(dockerctxerr.ErrContextNotFound))
		})
	})

	Describe("listing recorded contexts", func() {
		It("should return an empty listing when nothing is recorded", func() {
			md, err := load()
			Expect(err).ToNot(HaveOccurred())

			summaries, err := md.Contexts(testctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries).To(BeEmpty())
		})

		It("should list contexts by name with their endpoint hosts", func() {
			writeContextMeta(fsys, testRoot, "remote", `{
				"Name": "remote",
				"Endpoints": {"docker": {"Host": "tcp://10.0.0.5:2376"}}
			}`)
			writeContextMeta(fsys, testRoot, "desktop-linux", `{
				"Name": "desktop-linux",
				"Endpoints": {"docker": {"Host": "unix:///home/tester/.docker/desktop/docker.sock"}}
			}`)

			md, err := load()
			Expect(err).ToNot(HaveOccurred())

			summaries, err := md.Contexts(testctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries).To(HaveLen(2))
			Expect(summaries[0].Name).To(Equal("desktop-linux"))
			Expect(summaries[1].Name).To(Equal("remote"))
			Expect(summaries[1].Host).To(Equal("tcp://10.0.0.5:2376"))
			Expect(summaries[1].Hash).To(Equal(dockerconfig.ContextHash("remote")))
		})

		It("should skip entries with unparsable metadata", func() {
			writeContextMeta(fsys, testRoot, "remote", `{
				"Name": "remote",
				"Endpoints": {"docker": {"Host": "tcp://10.0.0.5:2376"}}
			}`)
			writeContextMeta(fsys, testRoot, "broken", `{{{`)

			md, err := load()
			Expect(err).ToNot(HaveOccurred())

			summaries, err := md.Contexts(testctx)
			Expect(err).ToNot(HaveOccurred())
			Expect(summaries).To(HaveLen(1))
			Expect(summaries[0].Name).To(Equal("remote"))
		})
	})

	Describe("decoding packed auth entries", func() {
		// alice:secret in base64.
		const packed = "YWxpY2U6c2VjcmV0"

		It("should let decoded credentials replace the discrete fields", func() {
			writeConfig(fsys, testRoot, fmt.Sprintf(`{
				"auths": {"registry.example.com": {
					"username": "ignored", "password": "ignored",
					"email": "alice@example.com", "auth": %q
				}}
			}`, packed))

			md, err := load()
			Expect(err).ToNot(HaveOccurred())

			auth, found := md.Config().AuthFor("registry.example.com")
			Expect(found).To(BeTrue())
			Expect(auth.Username).To(Equal("alice"))
			Expect(auth.Password).To(Equal("secret"))
			Expect(auth.Email).To(Equal("alice@example.com"))
		})
	})
})
