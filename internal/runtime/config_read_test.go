package runtime

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("Runtime ReadOnlyConfig test", func() {
	Context("When calling ReadOnly on a config", func() {
		c := &Config{
			LogFile:        "logfile",
			LogLevel:       "trace",
			DockerConfig:   "dockercfg",
			Context:        "remote",
			Ping:           true,
			ResponseFormat: "format",
			Output:         "outputdir",
			ShowSecrets:    true,
		}
		cro := c.ReadOnly()
		It("should return values assigned to corresponding struct fields", func() {
			Expect(cro.LogFile()).To(Equal("logfile"))
			Expect(cro.LogLevel()).To(Equal("trace"))
			Expect(cro.DockerConfig()).To(Equal("dockercfg"))
			Expect(cro.Context()).To(Equal("remote"))
			Expect(cro.Ping()).To(BeTrue())
			Expect(cro.ResponseFormat()).To(Equal("format"))
			Expect(cro.Output()).To(Equal("outputdir"))
			Expect(cro.ShowSecrets()).To(BeTrue())
		})
	})
})
