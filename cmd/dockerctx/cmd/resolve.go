package cmd

import (
	"context"
	"fmt"
	"sort"

	"github.com/go-logr/logr"
	"github.com/spf13/cobra"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/engine"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/runtime"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/viper"
	"github.com/redhat-openshift-ecosystem/dockerctx/version"
)

func resolveCmd() *cobra.Command {
	resolveCmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve the effective Docker daemon connection",
		Long: "This command resolves the configuration root, the active context and the daemon endpoint " +
			"the Docker CLI would use, honoring the DOCKER_HOST, DOCKER_CONTEXT and TLS environment overrides.",
		// this fmt.Sprintf is in place to keep spacing consistent with cobras two spaces that's used in: Usage, Flags, etc
		Example: fmt.Sprintf("  %s", "dockerctx resolve --context desktop-linux"),
		Args:    cobra.NoArgs,
		RunE:    resolveRunE,
	}

	flags := resolveCmd.Flags()

	viper := viper.Instance()
	flags.String("context", "", "Resolve the named context instead of the active one. (env: DCTX_CONTEXT)")
	_ = viper.BindPFlag("context", flags.Lookup("context"))

	flags.Bool("ping", false, "Dial the resolved daemon and ping it once before returning. (env: DCTX_PING)")
	_ = viper.BindPFlag("ping", flags.Lookup("ping"))

	return resolveCmd
}

type resolveResponse struct {
	ConfigRoot    string                 `json:"config_root"`
	ActiveContext string                 `json:"active_context,omitempty"`
	Host          string                 `json:"host"`
	HostSource    string                 `json:"host_source"`
	TLSVerify     bool                   `json:"tls_verify"`
	CertPath      string                 `json:"cert_path,omitempty"`
	CredsStore    string                 `json:"creds_store,omitempty"`
	CredHelpers   map[string]string      `json:"cred_helpers,omitempty"`
	Registries    []string               `json:"registries,omitempty"`
	LibraryInfo   version.VersionContext `json:"resolver_library"`
}

// resolveRunE executes resolve using the user configuration to inform the execution.
func resolveRunE(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	logger, err := logr.FromContext(ctx)
	if err != nil {
		return fmt.Errorf("invalid logging configuration")
	}
	logger.Info("resolver library version", "version", version.Version.String())

	// Render the Viper configuration as a runtime.Config
	cfg, err := runtime.NewConfigFrom(*viper.Instance())
	if err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	cmd.SilenceUsage = true

	meta, err := dockerconfig.Load(ctx, dockerconfig.WithEnvironment(resolverEnv(cfg)))
	if err != nil {
		return err
	}

	params, err := engine.ResolveConnection(ctx, meta, engine.WithEnvironment(resolverEnv(cfg)))
	if err != nil {
		return err
	}

	if cfg.Ping {
		pingCtx, cancel := context.WithTimeout(ctx, runtime.DefaultPingTimeout)
		defer cancel()
		if err := engine.Validate(pingCtx, params); err != nil {
			return err
		}
		logger.V(log.DBG).Info("daemon responded to ping", "host", params.Host)
	}

	dockerCfg := meta.Config()
	registries := make([]string, 0, len(dockerCfg.Auths))
	for registry := range dockerCfg.Auths {
		registries = append(registries, registry)
	}
	sort.Strings(registries)

	activeContext := dockerCfg.CurrentContext
	if cfg.Context != "" {
		activeContext = cfg.Context
	}

	response := resolveResponse{
		ConfigRoot:    meta.Root(),
		ActiveContext: activeContext,
		Host:          params.Host,
		HostSource:    string(params.Source),
		TLSVerify:     params.TLSVerify,
		CertPath:      params.CertPath,
		CredsStore:    dockerCfg.CredsStore,
		CredHelpers:   dockerCfg.CredHelpers,
		Registries:    registries,
		LibraryInfo:   version.Version,
	}

	return writeResponse(cmd, cfg, response)
}
