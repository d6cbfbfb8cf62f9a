package cmd

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/kilianp07/curtail/app"
	"github.com/kilianp07/curtail/pkg/export"
)

type parseOptions struct {
	date     string
	tomorrow bool
	format   string
	output   string
}

func newParseCmd(root *rootOptions) *cobra.Command {
	opts := &parseOptions{}
	cmd := &cobra.Command{
		Use:   "parse [file]",
		Short: "Convert a pasted curtailment table into schedule rows",
		Long: "Reads a curtailment table from file or stdin, detects its layout and writes\n" +
			"one row per site and interval for the selected day.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ref, err := opts.reference(time.Now())
			if err != nil {
				return err
			}
			raw, err := readInput(cmd, args)
			if err != nil {
				return err
			}
			return root.withService(func(svc *app.Service) error {
				sched, err := svc.Parse(raw, ref)
				if err != nil {
					return err
				}
				w, closeFn, err := openOutput(cmd, opts.output)
				if err != nil {
					return err
				}
				switch opts.format {
				case "json":
					err = export.WriteScheduleJSON(w, sched.Rows)
				default:
					err = export.WriteScheduleCSV(w, sched.Rows)
				}
				if cerr := closeFn(); err == nil {
					err = cerr
				}
				return err
			})
		},
	}
	cmd.Flags().StringVar(&opts.date, "date", "", "reference day as YYYY-MM-DD (default today)")
	cmd.Flags().BoolVar(&opts.tomorrow, "tomorrow", false, "use the day after the reference day")
	cmd.Flags().StringVarP(&opts.format, "format", "f", "csv", "output format: csv or json")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	return cmd
}

// reference returns local midnight of the selected day.
func (o *parseOptions) reference(now time.Time) (time.Time, error) {
	if o.format != "csv" && o.format != "json" {
		return time.Time{}, fmt.Errorf("unknown format %s", o.format)
	}
	day := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.Local)
	if o.date != "" {
		d, err := time.ParseInLocation("2006-01-02", o.date, time.Local)
		if err != nil {
			return time.Time{}, fmt.Errorf("invalid --date: %w", err)
		}
		day = d
	}
	if o.tomorrow {
		day = day.AddDate(0, 0, 1)
	}
	return day, nil
}
