package ui

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
	"github.com/saimali7/Tour-CRM-sub000/internal/store"
)

func (a *App) importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import [guides|bookings] [csv_path]",
		Short: "Import guides or bookings from a CSV export",
		Long: `Import rows from a booking-system CSV export into the store.

Guides need the columns: id, name, capacity, contact.
Bookings need: id, customer, adults, children, infants, pickup_time,
pickup_location, pickup_zone, tour_id, tour_name, duration_min, mode,
guide_id. Extra columns are ignored; guide_id may be empty.`,
		Example: `  tourboard import guides guides.csv
  tourboard import bookings 2026-07-14.csv --date=2026-07-14`,
		Args: cobra.ExactArgs(2),
		RunE: func(_ *cobra.Command, args []string) error {
			if err := a.ensureStore(); err != nil {
				return err
			}

			f, err := os.Open(args[1])
			if err != nil {
				return fmt.Errorf("opening %s: %w", args[1], err)
			}
			defer func() { _ = f.Close() }()

			ctx := context.Background()
			var count int
			switch args[0] {
			case "guides":
				count, err = importGuides(ctx, a.store, f)
			case "bookings":
				var date time.Time
				date, err = a.day()
				if err != nil {
					return err
				}
				count, err = importBookings(ctx, a.store, date, f)
			default:
				return fmt.Errorf("unknown import kind %q, want guides or bookings", args[0])
			}
			if err != nil {
				return err
			}

			fmt.Printf("Imported %d %s from %s\n", count, args[0], args[1])
			return nil
		},
	}

	return cmd
}

// csvHeader maps column names to their index, lowercased and trimmed.
func csvHeader(record []string) map[string]int {
	idx := make(map[string]int, len(record))
	for i, name := range record {
		idx[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return idx
}

func field(record []string, idx map[string]int, name string) string {
	i, ok := idx[name]
	if !ok || i >= len(record) {
		return ""
	}
	return strings.TrimSpace(record[i])
}

func intField(record []string, idx map[string]int, name string) (int, error) {
	s := field(record, idx, name)
	if s == "" {
		return 0, nil
	}
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, fmt.Errorf("column %s: %w", name, err)
	}
	return n, nil
}

func importGuides(ctx context.Context, dest *store.Store, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	idx := csvHeader(header)
	for _, col := range []string{"id", "name", "capacity"} {
		if _, ok := idx[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	imported := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}

		capacity, err := intField(record, idx, "capacity")
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}
		g := &dispatch.Guide{
			ID:       field(record, idx, "id"),
			Name:     field(record, idx, "name"),
			Capacity: capacity,
			Contact:  field(record, idx, "contact"),
		}
		if err := dest.CreateGuide(ctx, g); err != nil {
			return imported, fmt.Errorf("importing guide %q: %w", g.ID, err)
		}
		imported++
	}
	return imported, nil
}

func importBookings(ctx context.Context, dest *store.Store, date time.Time, r io.Reader) (int, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return 0, fmt.Errorf("reading header: %w", err)
	}
	idx := csvHeader(header)
	for _, col := range []string{"id", "customer", "adults", "pickup_time", "tour_id"} {
		if _, ok := idx[col]; !ok {
			return 0, fmt.Errorf("missing column %q", col)
		}
	}

	imported := 0
	for {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return imported, fmt.Errorf("row %d: %w", imported+2, err)
		}

		b := &dispatch.Booking{
			ID:             field(record, idx, "id"),
			CustomerName:   field(record, idx, "customer"),
			PickupTime:     field(record, idx, "pickup_time"),
			PickupLocation: field(record, idx, "pickup_location"),
			PickupZone:     field(record, idx, "pickup_zone"),
			TourID:         field(record, idx, "tour_id"),
			TourName:       field(record, idx, "tour_name"),
		}
		if b.TourName == "" {
			b.TourName = b.TourID
		}

		for _, col := range []struct {
			name string
			dst  *int
		}{
			{"adults", &b.Adults},
			{"children", &b.Children},
			{"infants", &b.Infants},
			{"duration_min", &b.DurationMin},
		} {
			n, err := intField(record, idx, col.name)
			if err != nil {
				return imported, fmt.Errorf("row %d: %w", imported+2, err)
			}
			*col.dst = n
		}

		modeStr := field(record, idx, "mode")
		if modeStr == "" {
			modeStr = "shared"
		}
		mode, err := dispatch.ParseMode(modeStr)
		if err != nil {
			return imported, fmt.Errorf("row %d booking %q: %w", imported+2, b.ID, err)
		}
		b.Mode = mode

		if g := field(record, idx, "guide_id"); g != "" {
			b.GuideID = &g
		}

		if err := dest.CreateBooking(ctx, date, b); err != nil {
			return imported, fmt.Errorf("importing booking %q: %w", b.ID, err)
		}
		imported++
	}
	return imported, nil
}
