package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/runtime"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/viper"
)

func contextsCmd() *cobra.Command {
	contextsCmd := &cobra.Command{
		Use:   "contexts",
		Short: "List the Docker contexts on disk",
		Long:  "This command lists every context found in the configuration's context store, with the daemon host each one provides.",
		Args:  cobra.NoArgs,
		RunE:  contextsRunE,
	}
	return contextsCmd
}

// contextsRunE lists the contexts found in the resolved configuration root.
func contextsRunE(cmd *cobra.Command, args []string) error {
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

	summaries, err := meta.Contexts(ctx)
	if err != nil {
		return err
	}

	return writeResponse(cmd, cfg, summaries)
}
