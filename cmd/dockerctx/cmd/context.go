package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/runtime"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/viper"
)

func contextCmd() *cobra.Command {
	contextCmd := &cobra.Command{
		Use:   "context <name>",
		Short: "Show the endpoint a named Docker context provides",
		Long:  "This command reads the metadata for the named Docker context and reports its daemon host and TLS settings.",
		// this fmt.Sprintf is in place to keep spacing consistent with cobras two spaces that's used in: Usage, Flags, etc
		Example: fmt.Sprintf("  %s", "dockerctx context desktop-linux"),
		Args:    contextPositionalArgs,
		RunE:    contextRunE,
	}
	return contextCmd
}

func contextPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("a context name positional argument is required")
	}
	return nil
}

type contextResponse struct {
	Name      string `json:"name"`
	Hash      string `json:"hash"`
	Host      string `json:"host,omitempty"`
	TLSVerify bool   `json:"tls_verify"`
	TLSPath   string `json:"tls_path,omitempty"`
}

// contextRunE executes context using the user args to inform the execution.
func contextRunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	cfg, err := runtime.NewConfigFrom(*viper.Instance())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cmd.SilenceUsage = true

	meta, err := dockerconfig.Load(ctx, dockerconfig.WithEnvironment(resolverEnv(cfg)))
	if err != nil {
		return err
	}

	contextName := args[0]
	resolved, err := meta.ForContext(ctx, contextName)
	if err != nil {
		return err
	}

	response := contextResponse{
		Name:      contextName,
		Hash:      dockerconfig.ContextHash(contextName),
		Host:      resolved.Host,
		TLSVerify: resolved.TLSVerify(),
		TLSPath:   resolved.TLSPath,
	}

	return writeResponse(cmd, cfg, response)
}
