package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/kilianp07/curtail/app"
	"github.com/kilianp07/curtail/pkg/export"
)

func newSecondaryCmd(root *rootOptions) *cobra.Command {
	var output string
	cmd := &cobra.Command{
		Use:   "secondary [file]",
		Short: "Sum the active power of PV- and SAT- sites from a SCADA paste",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return root.withService(func(svc *app.Service) error {
				res := svc.Extract(raw)
				w, closeFn, err := openOutput(cmd, output)
				if err != nil {
					return err
				}
				err = export.WritePairsCSV(w, res.Pairs)
				if cerr := closeFn(); err == nil {
					err = cerr
				}
				if err != nil {
					return err
				}
				_, err = fmt.Fprintf(cmd.ErrOrStderr(), "total %s MW over %d sites\n", res.TotalMW.String(), len(res.Pairs))
				return err
			})
		},
	}
	cmd.Flags().StringVarP(&output, "output", "o", "", "output file (default stdout)")
	return cmd
}
