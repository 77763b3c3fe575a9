package main

import (
	"context"
	"fmt"
	"io"
	"ride-dispatch-service/internal/domain"
	"ride-dispatch-service/internal/services"
	"time"

	"github.com/spf13/cobra"
)

type trip struct {
	passengerID string
	pickup      domain.Location
	dropoff     domain.Location
}

var demoTrips = []trip{
	{"p_alex", domain.NewLocation(40.7128, -74.0060), domain.NewLocation(40.7580, -73.9855)},
	{"p_alex", domain.NewLocation(40.7580, -73.9855), domain.NewLocation(40.6892, -74.0445)},
}

func newSimulateCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "simulate",
		Short: "Request, drive and complete the demo rides in sequence",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			start := time.Date(2026, 1, 1, 8, 0, 0, 0, time.UTC)
			svc, clk, err := newService(opts, start)
			if err != nil {
				return err
			}
			return simulate(cmd.Context(), cmd.OutOrStdout(), svc, clk, demoTrips)
		},
	}
}

// simulate runs each trip to completion. A dispatch failure is reported and
// the remaining trips still run.
func simulate(ctx context.Context, out io.Writer, svc *services.RideService, clk *clock, trips []trip) error {
	if ctx == nil {
		ctx = context.Background()
	}

	for i, t := range trips {
		fmt.Fprintf(out, "--- Ride %d: %s requests %s -> %s\n", i+1, t.passengerID, t.pickup, t.dropoff)

		ride, err := svc.RequestRide(ctx, t.passengerID, t.pickup, t.dropoff)
		if err != nil {
			fmt.Fprintf(out, "no ride: %v\n", err)
			continue
		}
		fmt.Fprintf(out, "dispatched %s on %s (%.2f km)\n", ride.VehicleID, ride.RouteID, ride.DistanceKm)

		plan, err := svc.TripPlan(ctx, ride.ID)
		if err != nil {
			return err
		}
		for _, s := range plan.Stops {
			fmt.Fprintf(out, "  eta %s at %s\n", s.ArriveAt.Format("15:04:05"), s.Location)
		}

		report, err := svc.DriveVehicle(ctx, ride.VehicleID)
		if err != nil {
			fmt.Fprintf(out, "drive failed: %v\n", err)
		} else {
			printDrive(out, report)
		}

		clk.Advance(plan.Stops[0].ArriveAt.Sub(clk.Now()))
		if _, err := svc.StartRide(ctx, ride.ID); err != nil {
			fmt.Fprintf(out, "pickup failed: %v\n", err)
			if _, err := svc.CancelRide(ctx, ride.ID); err != nil {
				return err
			}
			continue
		}
		fmt.Fprintf(out, "picked up %s\n", t.passengerID)

		clk.Advance(plan.TotalDuration - plan.Stops[0].ArriveAt.Sub(plan.DepartAt))
		ride, err = svc.CompleteRide(ctx, ride.ID)
		if err != nil {
			return err
		}
		fmt.Fprintf(out, "completed at %s\n", ride.CompletedAt.Format("15:04:05"))
	}

	st := svc.Stats()
	fmt.Fprintf(out, "--- %d requested, %d completed, %d failed, %.2f km\n",
		st.RidesRequested, st.RidesCompleted, st.DispatchFailures, st.CompletedDistanceKm)
	return nil
}

func printDrive(out io.Writer, r domain.DriveReport) {
	switch r.Kind {
	case domain.KindTaxi:
		fmt.Fprintf(out, "%s driven by %s\n", r.VehicleID, r.DriverName)
	case domain.KindRoboTaxi:
		fmt.Fprintf(out, "%s driving autonomously\n", r.VehicleID)
		for _, rd := range r.Readings {
			fmt.Fprintf(out, "  %s (%s): %.1f\n", rd.SensorID, rd.Type, rd.Value)
		}
	default:
		fmt.Fprintf(out, "%s driving\n", r.VehicleID)
	}
}
