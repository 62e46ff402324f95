package cmd

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
)

var _ = Describe("Context Command", func() {
	BeforeEach(createAndCleanupDirForConfigAndLogs)

	Context("when running the context subcommand", func() {
		Context("and the positional arg (context name) is missing", func() {
			It("should fail", func() {
				out, err := executeCommand(rootCmd(), "context")
				Expect(err).To(HaveOccurred())
				Expect(out).To(ContainSubstring("a context name positional argument is required"))
			})
		})

		Context("and more than one positional arg is provided", func() {
			It("should fail", func() {
				_, err := executeCommand(rootCmd(), "context", "one", "two")
				Expect(err).To(HaveOccurred())
			})
		})

		Context("and the named context is recorded", func() {
			BeforeEach(func() {
				writeDockerContext("prod", "tcp://prod.example.com:2376")
			})
			It("should report its endpoint and hashed directory name", func() {
				out, err := executeCommand(rootCmd(), "context", "prod")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"name": "prod"`))
				Expect(out).To(ContainSubstring(dockerconfig.ContextHash("prod")))
				Expect(out).To(ContainSubstring("tcp://prod.example.com:2376"))
			})
		})

		Context("and the named context is not recorded", func() {
			It("should fail", func() {
				out, err := executeCommand(rootCmd(), "context", "ghost")
				Expect(err).To(HaveOccurred())
				Expect(out).To(ContainSubstring("docker context does not exist"))
			})
		})

		Context("and the default context is requested", func() {
			It("should report engine defaults without reading the context store", func() {
				out, err := executeCommand(rootCmd(), "context", "default")
				Expect(err).ToNot(HaveOccurred())
				Expect(out).To(ContainSubstring(`"name": "default"`))
				Expect(out).To(ContainSubstring(`"tls_verify": false`))
				Expect(out).ToNot(ContainSubstring(`"host"`))
			})
		})
	})
})
