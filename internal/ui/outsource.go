package ui

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
)

func (a *App) outsourceCmd() *cobra.Command {
	var contact string

	cmd := &cobra.Command{
		Use:   "outsource [run-key] [partner-name]",
		Short: "Staff a tour run with an external partner",
		Long: `Create an outsourced guide for an external partner and move a run's
bookings onto it. Run keys are printed by the board and have the form
tour@start@guide; an empty guide segment targets a pool run.`,
		Example: `  tourboard outsource caves@09:00@g-ana "Island Partners" --contact=+351911222333
  tourboard outsource sunset@17:00@ "Atlantic Boats"`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}
			date, err := a.day()
			if err != nil {
				return err
			}

			if _, _, _, err := dispatch.ParseRunKey(args[0]); err != nil {
				return fmt.Errorf("bad run key %q: %w", args[0], err)
			}

			g, err := a.store.AddOutsourcedGuide(context.Background(), date, args[0], args[1], contact)
			if err != nil {
				return fmt.Errorf("outsourcing run: %w", err)
			}

			fmt.Println(colorOk.Sprintf("Run %s staffed by %s (%s)", args[0], g.Name, g.ID))
			return nil
		},
	}

	cmd.Flags().StringVar(&contact, "contact", "", "Partner phone or email")

	return cmd
}
