package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
)

func (a *App) assignCmd() *cobra.Command {
	var (
		at    string
		force bool
	)

	cmd := &cobra.Command{
		Use:   "assign [booking-id] [guide-id]",
		Short: "Assign a booking to a guide",
		Long: `Assign a booking to a guide's lane, reassigning if it already sits on
another lane. The drop is validated the same way the board validates it;
--force overrides a capacity denial, nothing overrides an exclusivity
conflict.`,
		Example: `  tourboard assign bk-102 g-ana
  tourboard assign bk-102 g-ana --time=10:30
  tourboard assign bk-102 g-ana --force`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.day()
			if err != nil {
				return err
			}
			ctx := context.Background()

			sheet, err := a.store.GetDispatch(ctx, date)
			if err != nil {
				return fmt.Errorf("loading day: %w", err)
			}

			booking := sheet.Booking(args[0])
			if booking == nil {
				return fmt.Errorf("booking %q not on %s", args[0], date.Format("2006-01-02"))
			}
			guide := sheet.Guide(args[1])
			if guide == nil {
				return fmt.Errorf("unknown guide %q", args[1])
			}

			targetTime := at
			if targetTime == "" {
				targetTime = booking.PickupTime
			}

			v := dispatch.ValidateDrop(dispatch.DropQuery{
				Runs:       sheet.RunsFor(guide.ID),
				Booking:    booking,
				TargetTime: targetTime,
				Capacity:   guide.Capacity,
				Outsourced: guide.Outsourced,
			})
			if !v.Allowed {
				if !v.Reason.Overridable() {
					return fmt.Errorf("drop denied: %s", v.Message)
				}
				if !force {
					return fmt.Errorf("drop denied: %s (repeat with --force to override)", v.Message)
				}
				fmt.Println(colorDenied.Sprintf("Overriding: %s", v.Message))
			}

			changes := assignChangeSet(booking, guide.ID, targetTime)
			if changes == nil {
				fmt.Println("Nothing to change.")
				return nil
			}

			res, err := a.store.BatchApplyChanges(ctx, date, changes)
			if err != nil {
				return fmt.Errorf("applying changes: %w", err)
			}
			if !res.Success {
				return fmt.Errorf("store rejected the change, reload and retry")
			}

			fmt.Println(colorOk.Sprintf("Assigned %s to %s at %s", booking.ID, guide.Name, targetTime))
			return nil
		},
	}

	cmd.Flags().StringVar(&at, "time", "", "Departure time (HH:MM, default: the booking's pickup time)")
	cmd.Flags().BoolVar(&force, "force", false, "Override a capacity denial")

	return cmd
}

// assignChangeSet picks the change-set for moving a booking onto a guide's
// lane. It returns nil when the booking is already on that lane at that time.
func assignChangeSet(booking *dispatch.Booking, guideID, targetTime string) []dispatch.Change {
	if booking.GuideID == nil {
		return dispatch.AssignChanges(booking, guideID, targetTime)
	}
	if *booking.GuideID == guideID {
		if booking.PickupTime == targetTime {
			return nil
		}
		return dispatch.TimeShiftChanges(booking, guideID, targetTime)
	}
	return dispatch.ReassignChanges(booking, *booking.GuideID, guideID, targetTime)
}

func (a *App) unassignCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "unassign [booking-id]",
		Short: "Return a booking to the unassigned pool",
		Args:  cobra.ExactArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.day()
			if err != nil {
				return err
			}
			ctx := context.Background()

			sheet, err := a.store.GetDispatch(ctx, date)
			if err != nil {
				return fmt.Errorf("loading day: %w", err)
			}

			booking := sheet.Booking(args[0])
			if booking == nil {
				return fmt.Errorf("booking %q not on %s", args[0], date.Format("2006-01-02"))
			}
			if booking.GuideID == nil {
				fmt.Println("Booking is already unassigned.")
				return nil
			}

			changes := []dispatch.Change{{
				Type:       dispatch.ChangeUnassign,
				BookingIDs: []string{booking.ID},
				FromGuide:  *booking.GuideID,
			}}
			res, err := a.store.BatchApplyChanges(ctx, date, changes)
			if err != nil {
				return fmt.Errorf("applying changes: %w", err)
			}
			if !res.Success {
				return fmt.Errorf("store rejected the change, reload and retry")
			}

			fmt.Println(colorOk.Sprintf("Returned %s to the pool", booking.ID))
			return nil
		},
	}
}
