package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"
)

func newConfigCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "config",
		Short: "Print the effective configuration and the files it was read from",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			files := a.conf.Files()
			if len(files) == 0 {
				fmt.Fprintln(out, "# no config files, using defaults")
			}
			for _, f := range files {
				fmt.Fprintf(out, "# %s\n", f)
			}

			cfg := *a.cfg
			if cfg.Settings.Redis.Password != "" {
				cfg.Settings.Redis.Password = "[REDACTED]"
			}
			data, err := yaml.Marshal(&cfg)
			if err != nil {
				return err
			}
			_, err = out.Write(data)
			return err
		},
	}
}
