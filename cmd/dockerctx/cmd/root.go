// Package cmd implements the command-line interface for dockerctx.
package cmd

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/redhat-openshift-ecosystem/dockerctx/dockerconfig"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/formatters"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/log"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/runtime"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/viper"
	"github.com/redhat-openshift-ecosystem/dockerctx/internal/writer"
	"github.com/redhat-openshift-ecosystem/dockerctx/version"

	"github.com/bombsimon/logrusr/v4"
	"github.com/go-logr/logr"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	spfviper "github.com/spf13/viper"
)

var configFileUsed bool

func init() {
	cobra.OnInitialize(func() { initConfig(viper.Instance()) })
}

func rootCmd() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:              "dockerctx",
		Short:            "Docker configuration resolver.",
		Long:             "A utility that resolves the Docker CLI's on-disk configuration: the active context, the daemon endpoint with its TLS settings, and registry credentials.",
		Version:          version.Version.String(),
		Args:             cobra.MinimumNArgs(1),
		PersistentPreRun: preRunConfig,
	}

	viper := viper.Instance()
	rootCmd.PersistentFlags().String("logfile", "", "Where the execution logfile will be written. (env: DCTX_LOGFILE)")
	_ = viper.BindPFlag("logfile", rootCmd.PersistentFlags().Lookup("logfile"))

	rootCmd.PersistentFlags().String("loglevel", "", "The verbosity of the dockerctx tool itself. Ex. warn, debug, trace, info, error. (env: DCTX_LOGLEVEL)")
	_ = viper.BindPFlag("loglevel", rootCmd.PersistentFlags().Lookup("loglevel"))

	rootCmd.PersistentFlags().String("docker-config", "", "Docker configuration directory to resolve against. Defaults to DOCKER_CONFIG, or ~/.docker when that is unset. (env: DCTX_DOCKERCONFIG)")
	_ = viper.BindPFlag("dockerConfig", rootCmd.PersistentFlags().Lookup("docker-config"))

	rootCmd.PersistentFlags().String("format", "", "Response output format. Valid options: json, yaml (env: DCTX_FORMAT)")
	_ = viper.BindPFlag("format", rootCmd.PersistentFlags().Lookup("format"))

	rootCmd.PersistentFlags().String("output", "", "Directory where response files will be written, in addition to stdout. (env: DCTX_OUTPUT)")
	_ = viper.BindPFlag("output", rootCmd.PersistentFlags().Lookup("output"))

	rootCmd.AddCommand(resolveCmd())
	rootCmd.AddCommand(contextCmd())
	rootCmd.AddCommand(contextsCmd())
	rootCmd.AddCommand(credentialsCmd())

	return rootCmd
}

func Execute() error {
	return rootCmd().ExecuteContext(context.Background())
}

func initConfig(viper *spfviper.Viper) {
	// set up ENV var support
	viper.SetEnvPrefix("dctx")
	viper.AutomaticEnv()

	// set up optional config file support
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")

	configFileUsed = true
	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(spfviper.ConfigFileNotFoundError); ok {
			configFileUsed = false
		}
	}

	// Set up logging config defaults
	viper.SetDefault("logfile", DefaultLogFile)
	viper.SetDefault("loglevel", DefaultLogLevel)

	// Set up output defaults
	viper.SetDefault("format", formatters.DefaultFormat)
}

// preRunConfig is used by cobra.PreRun in all non-root commands to load all necessary configurations
func preRunConfig(cmd *cobra.Command, args []string) {
	viper := viper.Instance()
	l := logrus.New()
	l.SetFormatter(&logrus.TextFormatter{DisableColors: true})

	// set up logging
	logname := viper.GetString("logfile")
	logFile, err := os.OpenFile(logname, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, 0o600)
	if err == nil {
		mw := io.MultiWriter(os.Stderr, logFile)
		l.SetOutput(mw)
	} else {
		l.Infof("Failed to log to file, using default stderr")
	}
	if ll, err := logrus.ParseLevel(viper.GetString("loglevel")); err == nil {
		l.SetLevel(ll)
	}

	if !configFileUsed {
		l.Debug("config file not found, proceeding without it")
	}

	logger := logrusr.New(l)
	ctx := logr.NewContext(cmd.Context(), logger)
	cmd.SetContext(ctx)
}

// resolverEnv returns the environment lookup used during resolution. It
// honors the command-line overrides for the configuration directory and
// the context name, deferring to the process environment otherwise.
func resolverEnv(cfg *runtime.Config) func(string) string {
	return func(key string) string {
		switch {
		case key == dockerconfig.EnvOverride && cfg.DockerConfig != "":
			return cfg.DockerConfig
		case key == "DOCKER_CONTEXT" && cfg.Context != "":
			return cfg.Context
		}
		return os.Getenv(key)
	}
}

// outputFilenameWithExtension returns the default output filename with the
// formatter-provided extension.
func outputFilenameWithExtension(extension string) string {
	return strings.Join([]string{"resolved", extension}, ".")
}

// writeResponse formats the payload and prints it to the command's output.
// When an output directory is configured, or a writer was provided in the
// context, the formatted response is also written as a file.
func writeResponse(cmd *cobra.Command, cfg *runtime.Config, payload any) error {
	ctx := cmd.Context()

	formatter, err := formatters.NewForConfig(cfg.ReadOnly())
	if err != nil {
		return err
	}

	formatted, err := formatter.Format(ctx, payload)
	if err != nil {
		return err
	}

	fmt.Fprintln(cmd.OutOrStdout(), string(formatted))

	responseWriter := writer.WriterFromContext(ctx)
	if responseWriter == nil && cfg.Output != "" {
		fsw, err := writer.NewFilesystemWriter(writer.WithDirectory(cfg.Output))
		if err != nil {
			return err
		}
		responseWriter = fsw
	}
	if responseWriter != nil {
		fileName := outputFilenameWithExtension(formatter.FileExtension())
		fullPath, err := responseWriter.WriteFile(fileName, bytes.NewReader(formatted))
		if err != nil {
			return err
		}
		logr.FromContextOrDiscard(ctx).V(log.DBG).Info("response written", "filename", fullPath)
	}

	return nil
}
