package cli

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newInvokeCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "invoke <tool>",
		Short: "Run a tool's action and print the messages it shows",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			s.notes.Reset()
			invokeErr := s.registry.Invoke(args[0])
			for _, n := range s.notes.Notifications() {
				fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", n.Level, n.Title, n.Body)
			}
			return invokeErr
		},
	}
}
