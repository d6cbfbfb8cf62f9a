package cmd

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/kilianp07/curtail/app"
	"github.com/kilianp07/curtail/core/allocator"
	"github.com/kilianp07/curtail/pkg/export"
)

type allocateOptions struct {
	cluster      string
	setpoint     float64
	battery      float64
	availability []string
	offline      []string
	mergeFixed   bool
	mergeFixedMW float64
	format       string
	output       string
}

func newAllocateCmd(root *rootOptions) *cobra.Command {
	opts := &allocateOptions{}
	cmd := &cobra.Command{
		Use:   "allocate",
		Short: "Distribute a setpoint over the parks of a cluster",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			req, err := opts.request(cmd.Flags().Changed("merge-fixed-mw"))
			if err != nil {
				return err
			}
			return root.withService(func(svc *app.Service) error {
				out, err := svc.Allocate(opts.cluster, req)
				if err != nil {
					return err
				}
				w, closeFn, err := openOutput(cmd, opts.output)
				if err != nil {
					return err
				}
				err = opts.render(w, out)
				if cerr := closeFn(); err == nil {
					err = cerr
				}
				if err == nil && out.Guard != nil {
					_, err = fmt.Fprintln(cmd.ErrOrStderr(), "warning:", out.Guard)
				}
				return err
			})
		},
	}
	f := cmd.Flags()
	f.StringVar(&opts.cluster, "cluster", "", "cluster name")
	f.Float64Var(&opts.setpoint, "setpoint", 0, "total setpoint in MW")
	f.Float64Var(&opts.battery, "battery", 0, "battery contribution in MW, positive when discharging")
	f.StringArrayVar(&opts.availability, "availability", nil, "park availability as park=percent, repeatable")
	f.StringArrayVar(&opts.offline, "offline", nil, "park without communication, repeatable")
	f.BoolVar(&opts.mergeFixed, "merge-fixed", true, "treat the merged sub-unit as a fixed add-on")
	f.Float64Var(&opts.mergeFixedMW, "merge-fixed-mw", 0, "override the fixed add-on of the merged sub-unit")
	f.StringVarP(&opts.format, "format", "f", "table", "output format: table, csv, json or yaml")
	f.StringVarP(&opts.output, "output", "o", "", "output file (default stdout)")
	_ = cmd.MarkFlagRequired("cluster")
	return cmd
}

func (o *allocateOptions) request(overrideFixed bool) (allocator.Request, error) {
	switch o.format {
	case "table", "csv", "json", "yaml":
	default:
		return allocator.Request{}, fmt.Errorf("unknown format %s", o.format)
	}
	req := allocator.Request{
		SetpointMW: o.setpoint,
		BatteryMW:  o.battery,
		MergeFixed: o.mergeFixed,
	}
	if overrideFixed {
		v := o.mergeFixedMW
		req.MergeFixedMW = &v
	}
	if len(o.availability) > 0 {
		req.Availability = make(map[string]float64, len(o.availability))
		for _, a := range o.availability {
			park, pct, ok := strings.Cut(a, "=")
			if !ok {
				return allocator.Request{}, fmt.Errorf("invalid --availability %q, want park=percent", a)
			}
			v, err := strconv.ParseFloat(strings.TrimSpace(pct), 64)
			if err != nil {
				return allocator.Request{}, fmt.Errorf("invalid --availability %q: %w", a, err)
			}
			req.Availability[strings.TrimSpace(park)] = v
		}
	}
	if len(o.offline) > 0 {
		req.Controllable = make(map[string]bool, len(o.offline))
		for _, p := range o.offline {
			req.Controllable[strings.TrimSpace(p)] = false
		}
	}
	return req, nil
}

func (o *allocateOptions) render(w io.Writer, out allocator.Outcome) error {
	switch o.format {
	case "csv":
		return export.WriteAllocationCSV(w, out.Results)
	case "json":
		return export.WriteAllocationJSON(w, out.Results)
	case "yaml":
		return export.WriteAllocationYAML(w, out.Results)
	}
	if err := export.WriteAllocationTable(w, out.Results); err != nil {
		return err
	}
	_, err := fmt.Fprintf(w, "\nmax output %.2f MW, fixed %.2f MW, remaining %.2f MW\n",
		out.MaxOutputMW, out.FixedOutputMW, out.RemainingMW)
	return err
}

