package cli

import (
	"fmt"
	"text/tabwriter"

	"github.com/leeforge/modkit/manifest"
	"github.com/leeforge/modkit/utils"
	"github.com/spf13/cobra"
)

func newManifestsCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "manifests",
		Short: "List plugin manifests found in the plugins directory",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			manifests, discoverErr := manifest.Discover(a.fs, a.cfg.Paths.Plugins)
			if asJSON {
				if err := utils.PrintJSON(cmd.OutOrStdout(), manifests); err != nil {
					return err
				}
				return discoverErr
			}

			if len(manifests) == 0 {
				fmt.Fprintf(cmd.OutOrStdout(), "no manifests in %s\n", a.cfg.Paths.Plugins)
				return discoverErr
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "IID\tKIND\tENABLED\tFILE\tPATH")
			for _, m := range manifests {
				fmt.Fprintf(tw, "%s\t%s\t%t\t%s\t%s\n", m.IID, m.Kind, m.Enabled, m.File, m.Path)
			}
			if err := tw.Flush(); err != nil {
				return err
			}
			return discoverErr
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}
