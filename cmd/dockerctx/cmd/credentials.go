package cmd

import (
	"fmt"
	"strings"

	craneauthn "github.com/google/go-containerregistry/pkg/authn"
	"github.com/google/go-containerregistry/pkg/name"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	dockerctxerr "github.com/redhat-openshift-ecosystem/dockerctx/errors"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/authn"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/runtime"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/viper"
)

var showSecrets bool

const redactedValue = "[REDACTED]"

func credentialsCmd() *cobra.Command {
	credentialsCmd := &cobra.Command{
		Use:   "credentials <registry|image>",
		Short: "Resolve registry credentials",
		Long: "This command resolves the credential the configuration provides for a registry or image reference, " +
			"consulting the configured credential helpers before the inline auths.",
		// this fmt.Sprintf is in place to keep spacing consistent with cobras two spaces that's used in: Usage, Flags, etc
		Example: fmt.Sprintf("  %s", "dockerctx credentials quay.io"),
		Args:    credentialsPositionalArgs,
		RunE:    credentialsRunE,
	}

	flags := credentialsCmd.Flags()

	viper := viper.Instance()
	flags.BoolVar(&showSecrets, "show-secrets", false, "Print secrets in clear text instead of redacting them.")
	_ = viper.BindPFlag("showSecrets", flags.Lookup("show-secrets"))

	return credentialsCmd
}

func credentialsPositionalArgs(cmd *cobra.Command, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("a registry or image reference positional argument is required")
	}

	cmd.Flags().VisitAll(func(f *pflag.Flag) {
		if f.Changed && strings.Contains(f.Value.String(), "--show-secrets") {
			// A string flag swallowed --show-secrets as its value. The
			// intent is unambiguous, so honor it.
			_ = cmd.Flags().Set("show-secrets", "true")
		}
	})

	return nil
}

// credentialTarget parses value as a registry name, falling back to an
// image reference whose repository becomes the lookup target.
func credentialTarget(value string) (craneauthn.Resource, error) {
	registry, err := name.NewRegistry(value, name.WeakValidation)
	if err == nil {
		return registry, nil
	}

	ref, err := name.ParseReference(value, name.WeakValidation)
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", dockerctxerr.ErrInvalidRegistryName, value, err)
	}
	return ref.Context(), nil
}

type credentialResponse struct {
	Registry      string `json:"registry"`
	Username      string `json:"username,omitempty"`
	Password      string `json:"password,omitempty"`
	IdentityToken string `json:"identity_token,omitempty"`
	Anonymous     bool   `json:"anonymous"`
}

// credentialsRunE executes credentials using the user args to inform the execution.
func credentialsRunE(cmd *cobra.Command, args []string) error {
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

	target, err := credentialTarget(args[0])
	if err != nil {
		return err
	}

	authenticator, err := authn.Keychain(ctx, authn.WithMetadata(meta)).Resolve(target)
	if err != nil {
		return err
	}

	response := credentialResponse{
		Registry:  target.RegistryStr(),
		Anonymous: authenticator == craneauthn.Anonymous,
	}
	if !response.Anonymous {
		authConfig, err := authenticator.Authorization()
		if err != nil {
			return err
		}
		response.Username = authConfig.Username
		response.Password = authConfig.Password
		response.IdentityToken = authConfig.IdentityToken
		if !cfg.ShowSecrets {
			if response.Password != "" {
				response.Password = redactedValue
			}
			if response.IdentityToken != "" {
				response.IdentityToken = redactedValue
			}
		}
	}

	return writeResponse(cmd, cfg, response)
}
