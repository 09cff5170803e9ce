package cli

import (
	"fmt"
	"io"
	"strings"
	"text/tabwriter"

	apperrors "github.com/leeforge/modkit/errors"
	"github.com/leeforge/modkit/inspector"
	"github.com/leeforge/modkit/plugin"
	"github.com/leeforge/modkit/registry"
	"github.com/leeforge/modkit/utils"
	"github.com/spf13/cobra"
)

func newListCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List registered plugins and their state",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			if asJSON {
				return utils.PrintJSON(cmd.OutOrStdout(), inspector.Views(s.registry))
			}
			return printPlugins(cmd.OutOrStdout(), s.registry.Entries())
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of a table")
	return cmd
}

func newDescribeCmd(a *app) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "describe <name>",
		Short: "Show the metadata, settings and state of one plugin",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.openSession(cmd.Context())
			if err != nil {
				return err
			}
			defer s.Close(cmd.Context())

			view, err := describe(s.registry, args[0])
			if err != nil {
				return err
			}
			if asJSON {
				return utils.PrintJSON(cmd.OutOrStdout(), view)
			}
			return printView(cmd.OutOrStdout(), view)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")
	return cmd
}

func describe(r *registry.Registry, name string) (inspector.PluginView, error) {
	e, ok := r.Entry(name)
	if !ok {
		return inspector.PluginView{}, apperrors.NewNotFound("plugin", name)
	}
	p, _ := r.Get(name)
	return inspector.NewPluginView(e, p), nil
}

// capabilityLabels returns display labels for caps, e.g. "Tool".
func capabilityLabels(caps []string) string {
	labels := make([]string, len(caps))
	for i, c := range caps {
		labels[i] = utils.Title(c)
	}
	return strings.Join(labels, ", ")
}

func printPlugins(w io.Writer, entries []registry.Entry) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "NAME\tVERSION\tSTATE\tCAPABILITIES\tAUTHOR")
	for _, e := range entries {
		caps := make([]string, 0, len(e.Capabilities))
		for _, c := range e.Capabilities.List() {
			if c != plugin.CapabilityPlugin {
				caps = append(caps, string(c))
			}
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\n",
			e.Descriptor.Name(), e.Descriptor.Version(), e.State, capabilityLabels(caps), e.Descriptor.Author())
	}
	return tw.Flush()
}

func printView(w io.Writer, v inspector.PluginView) error {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Name:\t%s\n", v.Name)
	fmt.Fprintf(tw, "Author:\t%s\n", v.Author)
	fmt.Fprintf(tw, "Version:\t%s\n", v.Version)
	fmt.Fprintf(tw, "Description:\t%s\n", v.Description)
	fmt.Fprintf(tw, "State:\t%s\n", v.State)
	fmt.Fprintf(tw, "Capabilities:\t%s\n", capabilityLabels(v.Capabilities))
	if v.Source != "" {
		fmt.Fprintf(tw, "Source:\t%s\n", v.Source)
	}
	if v.Error != "" {
		fmt.Fprintf(tw, "Error:\t%s\n", v.Error)
	}
	if v.Tool != nil {
		fmt.Fprintf(tw, "Display name:\t%s\n", v.Tool.DisplayName)
		fmt.Fprintf(tw, "Tooltip:\t%s\n", v.Tool.Tooltip)
		if v.Tool.Icon != "" {
			fmt.Fprintf(tw, "Icon:\t%s\n", v.Tool.Icon)
		}
	}
	if len(v.Settings) > 0 {
		fmt.Fprintln(tw, "Settings:")
		for _, s := range v.Settings {
			fmt.Fprintf(tw, "  %s\t%s (%s, default %v)\n", s.Key, s.Label, s.Kind, s.Default)
		}
	}
	return tw.Flush()
}
