package main

import (
	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/jonathan/portfolio/internal/buildinfo"
	"github.com/jonathan/portfolio/internal/config"
	"github.com/jonathan/portfolio/internal/logging"
)

// rootOptions holds the persistent flags shared by every subcommand.
type rootOptions struct {
	configPath string
	logLevel   string
	logFormat  string
}

func newRootCmd() *cobra.Command {
	opts := &rootOptions{}
	root := &cobra.Command{
		Use:           "portfolio",
		Short:         "Resume export service",
		Long:          "portfolio renders structured resumes into LaTeX and compiles them to PDF, locally with a remote fallback, over HTTP or from the command line.",
		Version:       buildinfo.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetVersionTemplate(buildinfo.Template())

	root.PersistentFlags().StringVarP(&opts.configPath, "config", "c", "", "Path to a YAML or JSON config file")
	root.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level (debug, info, warn, error)")
	root.PersistentFlags().StringVar(&opts.logFormat, "log-format", "", "Log format (text, json)")

	root.AddCommand(
		newServeCmd(opts),
		newExportCmd(opts),
		newRenderCmd(opts),
		newImportCmd(opts),
		newTokenCmd(opts),
		newVersionCmd(),
	)
	return root
}

// load reads the configuration and builds the logger, applying flag
// overrides on top of file and environment values.
func (o *rootOptions) load(cmd *cobra.Command) (*config.Config, *log.Logger, error) {
	cfg, err := config.Load(o.configPath)
	if err != nil {
		return nil, nil, err
	}
	if o.logLevel != "" {
		cfg.Log.Level = o.logLevel
	}
	if o.logFormat != "" {
		cfg.Log.Format = o.logFormat
	}
	return cfg, logging.New(cmd.ErrOrStderr(), cfg.Log.Level, cfg.Log.Format), nil
}
