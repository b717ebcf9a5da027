package ui

import (
	"fmt"
	"strings"

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
)

// modeSymbol marks a run's experience mode in listings.
func modeSymbol(m dispatch.ExperienceMode) string {
	if m == dispatch.ModeCharter {
		return "◆"
	}
	return "○"
}

// formatRunLine renders one tour run for the day listing.
func formatRunLine(run *dispatch.TourRun) string {
	symbol := modeSymbol(run.Mode)
	if run.Mode == dispatch.ModeCharter {
		symbol = colorCharter.Sprint(symbol)
	}
	return fmt.Sprintf("  %s %s-%s %s (%d guests, %d bookings)",
		symbol, run.Start, run.End, run.TourName, run.Guests, len(run.BookingIDs))
}

// formatBookingLine renders one member booking under its run.
func formatBookingLine(b *dispatch.Booking) string {
	pickup := b.PickupLocation
	if pickup == "" {
		pickup = "no pickup set"
	}
	party := fmt.Sprintf("%d", b.Guests())
	if b.Infants > 0 {
		party = fmt.Sprintf("%d+%d lap", b.Guests(), b.Infants)
	}
	return fmt.Sprintf("      %s  %s ×%s, %s %s",
		colorMuted.Sprint(b.ID), b.CustomerName, party, b.PickupTime, pickup)
}

// formatGuideHeader renders a guide's lane header with its seat total.
func formatGuideHeader(g *dispatch.Guide, guests int) string {
	if g.Outsourced {
		label := fmt.Sprintf("%s (outsourced)", g.Name)
		if g.Contact != "" {
			label += " · " + g.Contact
		}
		return colorMuted.Sprint(label)
	}
	return colorGuide.Sprintf("%s", g.Name) + colorMuted.Sprintf(" %d/%d seats", guests, g.Capacity)
}

// hr draws a horizontal rule sized to the terminal.
func hr() string {
	w := termWidth()
	if w > 72 {
		w = 72
	}
	return strings.Repeat("─", w)
}

// runGuests sums the guests of a guide's runs, double counts included when
// runs overlap; the listing is a roster, not a capacity audit.
func runGuests(runs []dispatch.TourRun) int {
	total := 0
	for _, r := range runs {
		total += r.Guests
	}
	return total
}
