package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

func (a *App) listCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "Print the day sheet",
		Long: `Print one operating day as text: every guide's tour runs with their
member bookings, the unassigned pool last.`,
		Example: `  tourboard list
  tourboard list --date=2026-07-14`,
		RunE: func(_ *cobra.Command, _ []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.day()
			if err != nil {
				return err
			}

			sheet, err := a.store.GetDispatch(context.Background(), date)
			if err != nil {
				return fmt.Errorf("loading day: %w", err)
			}

			fmt.Println(colorHeader.Sprintf("Dispatch %s", date.Format("Monday 2006-01-02")))
			fmt.Println(hr())

			if len(sheet.Bookings) == 0 {
				fmt.Println("No bookings on this day.")
				return nil
			}

			for _, g := range sheet.Guides {
				runs := sheet.RunsFor(g.ID)
				fmt.Println(formatGuideHeader(g, runGuests(runs)))
				if len(runs) == 0 {
					fmt.Println(colorMuted.Sprint("  free"))
				}
				for i := range runs {
					fmt.Println(formatRunLine(&runs[i]))
					for _, id := range runs[i].BookingIDs {
						if b := sheet.Booking(id); b != nil {
							fmt.Println(formatBookingLine(b))
						}
					}
				}
				fmt.Println()
			}

			pool := sheet.PoolRuns()
			fmt.Println(colorPool.Sprintf("Unassigned (%d bookings)", len(sheet.Pool())))
			for i := range pool {
				fmt.Println(formatRunLine(&pool[i]))
				for _, id := range pool[i].BookingIDs {
					if b := sheet.Booking(id); b != nil {
						fmt.Println(formatBookingLine(b))
					}
				}
			}

			return nil
		},
	}

	return cmd
}
