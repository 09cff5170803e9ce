// Package cli implements the modkit command line: a headless plugin host
// that registers the bundled plugins, runs tools and deploys artifacts.
package cli

import (
	"fmt"

	"github.com/leeforge/modkit/config"
	"github.com/leeforge/modkit/env_mode"
	"github.com/leeforge/modkit/logging"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
)

type options struct {
	configPath string
	env        string
	logLevel   string
}

// app is the state shared by all commands of one execution.
type app struct {
	opts options
	fs   afero.Fs

	cfg  *config.AppConfig
	conf *config.Config
	log  logging.Logger
}

func newRootCmd(fs afero.Fs) *cobra.Command {
	a := &app{fs: fs}

	cmd := &cobra.Command{
		Use:   "modkit",
		Short: "modkit is a headless host for mod manager plugins",
		Long: "modkit registers plugins from manifests, initializes them against a host\n" +
			"and lets you list them, run their tools and deploy their build artifacts.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}
			return a.load(cmd)
		},
		PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
			return a.close()
		},
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&a.opts.configPath, "config", "", "config directory (default $MODKIT_CONFIG_PATH or ./config)")
	cmd.PersistentFlags().StringVar(&a.opts.env, "env", "", "run mode selecting config overlays (development, production, test)")
	cmd.PersistentFlags().StringVar(&a.opts.logLevel, "log-level", "", "log level (debug, info, warn, error)")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newListCmd(a))
	cmd.AddCommand(newDescribeCmd(a))
	cmd.AddCommand(newInvokeCmd(a))
	cmd.AddCommand(newManifestsCmd(a))
	cmd.AddCommand(newDeployCmd(a))
	cmd.AddCommand(newServeCmd(a))
	cmd.AddCommand(newConfigCmd(a))

	return cmd
}

// Execute runs the root command against the real filesystem.
func Execute() error {
	cmd := newRootCmd(afero.NewOsFs())
	err := cmd.Execute()
	if err != nil {
		fmt.Fprintln(cmd.ErrOrStderr(), "Error:", err)
	}
	return err
}

// load reads configuration and creates the logger.
func (a *app) load(cmd *cobra.Command) error {
	if a.opts.env != "" {
		env_mode.SetMode(env_mode.ParseEnv(a.opts.env))
	}

	opts := config.DefaultConfigOptions()
	if a.opts.configPath != "" {
		opts.BasePath = a.opts.configPath
	}
	cfg, conf, err := config.LoadApp(opts)
	if err != nil {
		return err
	}
	if a.opts.logLevel != "" {
		cfg.Log.Level = a.opts.logLevel
	}
	a.cfg, a.conf = cfg, conf

	// Terminal output goes to the command's stderr so callers can capture it.
	logCfg := cfg.Log
	if logCfg.LogInTerminal {
		logCfg.LogInTerminal = false
		a.log = logging.NewLoggerTo(logCfg, cmd.ErrOrStderr())
	} else {
		a.log = logging.NewLogger(logCfg)
	}
	return nil
}

func (a *app) close() error {
	var err error
	if a.conf != nil {
		err = a.conf.Close()
	}
	if a.log != nil {
		_ = a.log.Close()
	}
	return err
}
