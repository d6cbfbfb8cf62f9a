package cmd

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/kilianp07/curtail/app"
)

func newClustersCmd(root *rootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "clusters",
		Short: "List the configured clusters and their parks",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return root.withService(func(svc *app.Service) error {
				tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
				fmt.Fprintln(tw, "CLUSTER\tMODE\tPARK\tCAPACITY (MW)")
				for _, c := range svc.Catalog().Clusters {
					mode := "proportional"
					if c.Direct {
						mode = "direct"
					}
					for _, m := range c.Members {
						var notes []string
						if c.Merge != nil && c.Merge.From == m.Name {
							notes = append(notes, "merged into "+c.Merge.Into)
						}
						if c.BatteryPark == m.Name {
							notes = append(notes, "battery")
						}
						name := m.Name
						if len(notes) > 0 {
							name += " (" + strings.Join(notes, ", ") + ")"
						}
						fmt.Fprintf(tw, "%s\t%s\t%s\t%.1f\n", c.Name, mode, name, m.CapacityMW)
					}
				}
				return tw.Flush()
			})
		},
	}
}
