package cli

import (
	"fmt"
	"io"

	"github.com/leeforge/modkit/deploy"
	"github.com/spf13/cobra"
)

func newDeployCmd(a *app) *cobra.Command {
	var target string
	cmd := &cobra.Command{
		Use:   "deploy",
		Short: "Copy built plugin artifacts into the plugins directory",
	}
	cmd.PersistentFlags().StringVar(&target, "target", "", "plugins directory to deploy into (default deploy.target)")

	deployer := func() (*deploy.Deployer, error) {
		cfg := a.cfg.Deploy
		if target != "" {
			cfg.Target = target
		}
		return deploy.New(a.fs, cfg, a.log.Zap())
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "native [names...]",
		Short: "Deploy native plugin libraries and their debug symbols",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deployer()
			if err != nil {
				return err
			}
			results, err := d.DeployNatives(args...)
			printResults(cmd.OutOrStdout(), results)
			return err
		},
	})
	cmd.AddCommand(&cobra.Command{
		Use:   "script [names...]",
		Short: "Deploy script plugins, replacing previous copies",
		RunE: func(cmd *cobra.Command, args []string) error {
			d, err := deployer()
			if err != nil {
				return err
			}
			results, err := d.DeployScripts(args...)
			printResults(cmd.OutOrStdout(), results)
			return err
		},
	})
	return cmd
}

func printResults(w io.Writer, results []deploy.Result) {
	for _, r := range results {
		if r.Skipped {
			fmt.Fprintf(w, "skipped  %s (%s): %s\n", r.Name, r.Kind, r.Reason)
			continue
		}
		fmt.Fprintf(w, "deployed %s (%s): %d files\n", r.Name, r.Kind, len(r.Files))
	}
}
