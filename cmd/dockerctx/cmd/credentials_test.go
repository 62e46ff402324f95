package cmd

import (
	"context"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/redhat-openshift-ecosystem/dockerctx/internal/writer"
)

var _ = Describe("Credentials Command", func() {
	BeforeEach(createAndCleanupDirForConfigAndLogs)

	Context("when running the credentials subcommand", func() {
		Context("and the positional arg (registry) is missing", func() {
			It("should fail", func() {
				out, err := executeCommand(rootCmd(), "credentials")
				Expect(err).To(HaveOccurred())
				Expect(out).To(ContainSubstring("a registry or image reference positional argument is required"))
			})
		})

		Context("and the argument is neither a registry nor an image reference", func() {
			It("should fail", func() {
				out, err := executeCommand(rootCmd(), "credentials", "foo/BAR")
				Expect(err).To(HaveOccurred())
				Expect(out).To(ContainSubstring("invalid registry or image reference"))
			})
		})

		Context("with no credential recorded for the registry", func() {
			It("should report an anonymous credential", func() {
				out, err := executeCommand(rootCmd(), "credentials", "test.io")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"anonymous": true`))
				Expect(out).ToNot(ContainSubstring(`"username"`))
			})
		})

		Context("with an inline credential recorded for the registry", func() {
			BeforeEach(func() {
				writeDockerConfig(`{"auths": {"test.io": {"username": "tester", "password": "s3cret"}}}`)
			})

			It("should redact the secret by default", func() {
				out, err := executeCommand(rootCmd(), "credentials", "test.io")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"username": "tester"`))
				Expect(out).To(ContainSubstring(`"password": "[REDACTED]"`))
				Expect(out).To(ContainSubstring(`"anonymous": false`))
				Expect(out).ToNot(ContainSubstring("s3cret"))
			})

			It("should print the secret when asked to", func() {
				out, err := executeCommand(rootCmd(), "credentials", "test.io", "--show-secrets")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"password": "s3cret"`))
			})

			It("should honor show-secrets swallowed by another flag", func() {
				// --output consumes "--show-secrets" as its value here; the
				// injected writer keeps that value from reaching the disk.
				mw, err := writer.NewMapWriter()
				Expect(err).ToNot(HaveOccurred())
				ctx := writer.ContextWithWriter(context.Background(), mw)

				out, err := executeCommandWithContext(ctx, rootCmd(), "credentials", "test.io", "--output", "--show-secrets")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"password": "s3cret"`))
			})
		})

		Context("with a credential recorded for a specific repository", func() {
			BeforeEach(func() {
				writeDockerConfig(`{"auths": {
					"test.io/my-repo": {"username": "repo-user", "password": "repo-pass"},
					"test.io": {"username": "registry-user", "password": "registry-pass"}
				}}`)
			})
			It("should prefer it over the registry credential for an image reference", func() {
				out, err := executeCommand(rootCmd(), "credentials", "test.io/my-repo")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"username": "repo-user"`))
				Expect(out).To(ContainSubstring(`"registry": "test.io"`))
			})
		})

		Context("with a packed credential recorded for the registry", func() {
			BeforeEach(func() {
				// bob:builder in base64.
				writeDockerConfig(`{"auths": {"test.io": {"auth": "Ym9iOmJ1aWxkZXI="}}}`)
			})
			It("should report the decoded username", func() {
				out, err := executeCommand(rootCmd(), "credentials", "test.io")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"username": "bob"`))
			})
		})

		Context("with a legacy index credential recorded for Docker Hub", func() {
			BeforeEach(func() {
				writeDockerConfig(`{"auths": {"https://index.docker.io/v1/": {"username": "hubuser", "password": "hubpass"}}}`)
			})
			It("should resolve it for the docker.io alias", func() {
				out, err := executeCommand(rootCmd(), "credentials", "docker.io")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"username": "hubuser"`))
			})
		})
	})
})
