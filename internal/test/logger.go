// Package test holds helpers shared by the Ginkgo suites.
package test

import (
	"context"

	. "github.com/onsi/ginkgo/v2"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"

	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
)

// NewTestLoggerContext returns ctx carrying a logger that writes to the
// GinkgoWriter, so resolver logging shows up with failing specs. The
// verbosity is opened up through the trace level.
func NewTestLoggerContext(ctx context.Context) context.Context {
	logger := funcr.New(func(prefix, args string) {
		GinkgoWriter.Println(prefix, args)
	}, funcr.Options{Verbosity: log.TRC})
	return logr.NewContext(ctx, logger)
}
