// Package store provides the SQLite system of record behind the dispatch
// board. It implements dispatch.Service with an all-or-nothing batch
// boundary.
package store

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/saimali7/Tour-CRM-sub000/internal/dispatch"
)

// Store implements dispatch.Service using SQLite.
type Store struct {
	db *sql.DB
}

// New creates a new Store and runs migrations.
func New(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("connecting to database: %w", err)
	}

	s := &Store{db: db}
	if err := s.migrate(); err != nil {
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return s, nil
}

// Close releases database resources.
func (s *Store) Close() error {
	return s.db.Close()
}

// GetDispatch returns the read projection for one day.
func (s *Store) GetDispatch(ctx context.Context, date time.Time) (*dispatch.DaySheet, error) {
	guides, err := s.listGuides(ctx)
	if err != nil {
		return nil, err
	}

	query := `
		SELECT id, customer_name, adults, children, infants,
		       pickup_location, pickup_zone, pickup_time,
		       tour_id, tour_name, duration_min, mode, guide_id
		FROM bookings
		WHERE trip_date = ?
		ORDER BY pickup_time, tour_id, id
	`
	rows, err := s.db.QueryContext(ctx, query, dateKey(date))
	if err != nil {
		return nil, fmt.Errorf("querying bookings: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var bookings []*dispatch.Booking
	for rows.Next() {
		var (
			b       dispatch.Booking
			mode    string
			guideID sql.NullString
		)
		err := rows.Scan(
			&b.ID,
			&b.CustomerName,
			&b.Adults,
			&b.Children,
			&b.Infants,
			&b.PickupLocation,
			&b.PickupZone,
			&b.PickupTime,
			&b.TourID,
			&b.TourName,
			&b.DurationMin,
			&mode,
			&guideID,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning booking: %w", err)
		}

		b.Mode, err = dispatch.ParseMode(mode)
		if err != nil {
			return nil, fmt.Errorf("booking %s: %w", b.ID, err)
		}
		if guideID.Valid {
			g := guideID.String
			b.GuideID = &g
		}

		bookings = append(bookings, &b)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating bookings: %w", err)
	}

	return &dispatch.DaySheet{Date: date, Guides: guides, Bookings: bookings}, nil
}

func (s *Store) listGuides(ctx context.Context) ([]*dispatch.Guide, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT id, name, capacity, outsourced, contact FROM guides ORDER BY outsourced, name, id`)
	if err != nil {
		return nil, fmt.Errorf("querying guides: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var guides []*dispatch.Guide
	for rows.Next() {
		var g dispatch.Guide
		if err := rows.Scan(&g.ID, &g.Name, &g.Capacity, &g.Outsourced, &g.Contact); err != nil {
			return nil, fmt.Errorf("scanning guide: %w", err)
		}
		guides = append(guides, &g)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating guides: %w", err)
	}
	return guides, nil
}

// BatchApplyChanges applies a change-set in one transaction. Any change that
// cannot be applied (a missing booking, a stale from-guide, an unknown
// target guide) rolls the whole batch back and reports every change as
// failed; the caller can trust that a rejected batch changed nothing.
func (s *Store) BatchApplyChanges(ctx context.Context, date time.Time, changes []dispatch.Change) (dispatch.BatchResult, error) {
	if len(changes) == 0 {
		return dispatch.BatchResult{Success: true}, nil
	}

	rejected := dispatch.BatchResult{Success: false, Applied: 0, Failed: len(changes)}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return rejected, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for _, c := range changes {
		ok, err := s.applyChange(ctx, tx, date, c)
		if err != nil {
			return rejected, err
		}
		if !ok {
			return rejected, nil
		}
	}

	if err := tx.Commit(); err != nil {
		return rejected, fmt.Errorf("committing transaction: %w", err)
	}

	return dispatch.BatchResult{Success: true, Applied: len(changes)}, nil
}

// applyChange executes one primitive. Returns false (no error) when the
// change names rows that are missing or in an unexpected state.
func (s *Store) applyChange(ctx context.Context, tx *sql.Tx, date time.Time, c dispatch.Change) (bool, error) {
	if len(c.BookingIDs) == 0 {
		return false, nil
	}
	placeholders := strings.TrimSuffix(strings.Repeat("?,", len(c.BookingIDs)), ",")

	args := func(extra ...any) []any {
		out := append([]any{}, extra...)
		for _, id := range c.BookingIDs {
			out = append(out, id)
		}
		out = append(out, dateKey(date))
		return out
	}

	var (
		res sql.Result
		err error
	)
	switch c.Type {
	case dispatch.ChangeAssign:
		if ok, gerr := s.guideExists(ctx, tx, c.ToGuide); gerr != nil || !ok {
			return false, gerr
		}
		query := `UPDATE bookings SET guide_id = ? WHERE id IN (` + placeholders + `) AND trip_date = ? AND guide_id IS NULL`
		res, err = tx.ExecContext(ctx, query, args(c.ToGuide)...)

	case dispatch.ChangeUnassign:
		query := `UPDATE bookings SET guide_id = NULL WHERE id IN (` + placeholders + `) AND trip_date = ? AND guide_id = ?`
		res, err = tx.ExecContext(ctx, query, append(args(), c.FromGuide)...)

	case dispatch.ChangeReassign:
		if ok, gerr := s.guideExists(ctx, tx, c.ToGuide); gerr != nil || !ok {
			return false, gerr
		}
		query := `UPDATE bookings SET guide_id = ? WHERE id IN (` + placeholders + `) AND trip_date = ? AND guide_id = ?`
		res, err = tx.ExecContext(ctx, query, append(args(c.ToGuide), c.FromGuide)...)

	case dispatch.ChangeTimeShift:
		query := `UPDATE bookings SET pickup_time = ? WHERE id IN (` + placeholders + `) AND trip_date = ? AND guide_id = ?`
		res, err = tx.ExecContext(ctx, query, append(args(c.NewStart), c.GuideID)...)

	default:
		return false, fmt.Errorf("%w: %q", dispatch.ErrUnknownChangeType, c.Type)
	}
	if err != nil {
		return false, fmt.Errorf("applying %s: %w", c, err)
	}

	rows, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("applying %s: %w", c, err)
	}
	// Fewer rows than booking ids means a change named a row that is missing
	// or already moved by someone else.
	return rows == int64(len(c.BookingIDs)), nil
}

func (s *Store) guideExists(ctx context.Context, tx *sql.Tx, id string) (bool, error) {
	var one int
	err := tx.QueryRowContext(ctx, `SELECT 1 FROM guides WHERE id = ?`, id).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("checking guide %s: %w", id, err)
	}
	return true, nil
}

// AddOutsourcedGuide staffs a run with an external guide: inserts the
// outsourced guide row and reassigns the run's member bookings to it, all in
// one transaction.
func (s *Store) AddOutsourcedGuide(ctx context.Context, date time.Time, runKey, name, contact string) (*dispatch.Guide, error) {
	tourID, start, fromGuide, err := dispatch.ParseRunKey(runKey)
	if err != nil {
		return nil, err
	}

	guide := &dispatch.Guide{
		ID:         outsourcedID(name, date),
		Name:       name,
		Outsourced: true,
		Contact:    contact,
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("beginning transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO guides (id, name, capacity, outsourced, contact) VALUES (?, ?, 0, 1, ?)`,
		guide.ID, guide.Name, guide.Contact,
	)
	if err != nil {
		return nil, fmt.Errorf("inserting outsourced guide: %w", err)
	}

	query := `
		UPDATE bookings SET guide_id = ?
		WHERE trip_date = ? AND tour_id = ? AND pickup_time = ?
	`
	args := []any{guide.ID, dateKey(date), tourID, start}
	if fromGuide == "" {
		query += ` AND guide_id IS NULL`
	} else {
		query += ` AND guide_id = ?`
		args = append(args, fromGuide)
	}

	res, err := tx.ExecContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("staffing run %s: %w", runKey, err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return nil, fmt.Errorf("staffing run %s: %w", runKey, err)
	}
	if rows == 0 {
		return nil, fmt.Errorf("run %s: %w", runKey, dispatch.ErrBookingNotFound)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing transaction: %w", err)
	}

	return guide, nil
}

// CreateGuide inserts a guide row. Used by the importer and tests.
func (s *Store) CreateGuide(ctx context.Context, g *dispatch.Guide) error {
	if err := g.Validate(); err != nil {
		return err
	}
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO guides (id, name, capacity, outsourced, contact) VALUES (?, ?, ?, ?, ?)`,
		g.ID, g.Name, g.Capacity, g.Outsourced, g.Contact,
	)
	if err != nil {
		return fmt.Errorf("inserting guide: %w", err)
	}
	return nil
}

// CreateBooking inserts a booking row for the given day. Used by the
// importer and tests.
func (s *Store) CreateBooking(ctx context.Context, date time.Time, b *dispatch.Booking) error {
	if err := b.Validate(); err != nil {
		return err
	}
	var guideID any
	if b.GuideID != nil {
		guideID = *b.GuideID
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO bookings (
			id, trip_date, customer_name, adults, children, infants,
			pickup_location, pickup_zone, pickup_time,
			tour_id, tour_name, duration_min, mode, guide_id
		) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		b.ID, dateKey(date), b.CustomerName, b.Adults, b.Children, b.Infants,
		b.PickupLocation, b.PickupZone, b.PickupTime,
		b.TourID, b.TourName, b.DurationMin, string(b.Mode), guideID,
	)
	if err != nil {
		return fmt.Errorf("inserting booking: %w", err)
	}
	return nil
}

func dateKey(t time.Time) string {
	return t.Format("2006-01-02")
}

// outsourcedID derives a stable-enough id for an outsourced guide row from
// the name, the day, and a nanosecond suffix to dodge collisions.
func outsourcedID(name string, date time.Time) string {
	slug := strings.ToLower(strings.Join(strings.Fields(name), "-"))
	if slug == "" {
		slug = "guide"
	}
	return fmt.Sprintf("ext-%s-%s-%d", slug, date.Format("0102"), time.Now().UnixNano()%100000)
}
