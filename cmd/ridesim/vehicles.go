package main

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"
)

func newVehiclesCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "vehicles",
		Short: "List the fleet's vehicles",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			svc, _, err := newService(opts, time.Now())
			if err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Fleet %s (%s)\n", svc.FleetID(), svc.OperatorName())

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(w, "ID\tKIND\tSTATUS\tLOCATION\tSEATS\tEXTRA")
			for _, v := range svc.Vehicles() {
				extra := ""
				switch {
				case v.Driver != nil:
					extra = "driver " + v.Driver.Name
				case len(v.Sensors) > 0:
					extra = fmt.Sprintf("%d sensors", len(v.Sensors))
				}
				fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\t%s\n",
					v.ID, v.Kind, v.Status, v.Location, v.MaxPassengers, extra)
			}
			return w.Flush()
		},
	}
}
