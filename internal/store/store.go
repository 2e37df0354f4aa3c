// Package store writes estimates into a SQLite file chosen by the user, so an
// export can be queried with ordinary SQL tools.
package store

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	"github.com/theirongolddev/feeplan/internal/estimate"
	"github.com/theirongolddev/feeplan/internal/model"

	_ "modernc.org/sqlite" // register sqlite driver
)

// ErrNotFound is returned when an estimate id is not in the file.
var ErrNotFound = errors.New("estimate not found")

// Store is an open SQLite export file.
type Store struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the export database at the given path.
func Open(dbPath string) (*Store, error) {
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return nil, fmt.Errorf("creating export dir: %w", err)
	}

	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(wal)&_pragma=synchronous(normal)&_pragma=foreign_keys(on)")
	if err != nil {
		return nil, fmt.Errorf("opening export db: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}

	return &Store{db: db, now: time.Now}, nil
}

// Close closes the database.
func (s *Store) Close() error {
	return s.db.Close()
}

// Header is the summary row of an exported estimate.
type Header struct {
	ID             string
	Discipline     string
	Params         estimate.Params
	BillingRate    float64
	Scale          float64
	BaseTotalHours float64
	TotalHours     float64
	TotalFee       float64
	ExportedAt     time.Time
}

// SaveEstimate stores an estimate and its rows under a new id.
func (s *Store) SaveEstimate(res model.EstimateResult, p estimate.Params) (string, error) {
	id := uuid.NewString()

	tx, err := s.db.Begin()
	if err != nil {
		return "", err
	}
	defer func() { _ = tx.Rollback() }()

	_, err = tx.Exec(`INSERT INTO estimates
		(estimate_id, discipline, standard_rate, multiplier, billing_rate, target_fee,
		 scale, base_total_hours, total_hours, total_fee, exported_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		id, res.Discipline, p.StandardRate, p.Multiplier, res.BillingRate, res.TargetFee,
		res.Scale, res.BaseTotalHours, res.TotalHours, res.TotalFee,
		s.now().UTC().Format(time.RFC3339),
	)
	if err != nil {
		return "", fmt.Errorf("inserting estimate: %w", err)
	}

	// Task rows carry their exact values; subtotal rows leave them NULL.
	exact := make(map[string]model.ComputedTask, len(res.Tasks))
	for _, ct := range res.Tasks {
		exact[ct.Phase+"\x00"+ct.Task] = ct
	}

	for seq, r := range res.Rows {
		var exactHours, exactFee sql.NullFloat64
		isSubtotal := 0
		if r.IsSubtotal() {
			isSubtotal = 1
		} else if ct, ok := exact[r.Phase+"\x00"+r.Task]; ok {
			exactHours = sql.NullFloat64{Float64: ct.ExactHours, Valid: true}
			exactFee = sql.NullFloat64{Float64: ct.ExactFee, Valid: true}
		}

		_, err = tx.Exec(`INSERT INTO estimate_rows
			(estimate_id, seq, is_subtotal, phase, task, hours, fee, exact_hours, exact_fee)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
			id, seq, isSubtotal, r.Phase, r.Task, r.Hours, r.Fee, exactHours, exactFee,
		)
		if err != nil {
			return "", fmt.Errorf("inserting row %d: %w", seq, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return "", err
	}
	return id, nil
}

// ListEstimates returns every exported estimate header, oldest first.
func (s *Store) ListEstimates() ([]Header, error) {
	rows, err := s.db.Query(`SELECT
		estimate_id, discipline, standard_rate, multiplier, billing_rate, target_fee,
		scale, base_total_hours, total_hours, total_fee, exported_at
		FROM estimates ORDER BY exported_at, rowid`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	var out []Header
	for rows.Next() {
		h, err := scanHeader(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, h)
	}
	return out, rows.Err()
}

type scanner interface {
	Scan(dest ...any) error
}

func scanHeader(sc scanner) (Header, error) {
	var h Header
	var exportedAt string
	err := sc.Scan(
		&h.ID, &h.Discipline, &h.Params.StandardRate, &h.Params.Multiplier, &h.BillingRate,
		&h.Params.TargetFee, &h.Scale, &h.BaseTotalHours, &h.TotalHours, &h.TotalFee, &exportedAt,
	)
	if err != nil {
		return h, err
	}
	h.ExportedAt, _ = time.Parse(time.RFC3339, exportedAt)
	return h, nil
}

// LoadEstimate reads one estimate back into an EstimateResult.
func (s *Store) LoadEstimate(id string) (Header, model.EstimateResult, error) {
	row := s.db.QueryRow(`SELECT
		estimate_id, discipline, standard_rate, multiplier, billing_rate, target_fee,
		scale, base_total_hours, total_hours, total_fee, exported_at
		FROM estimates WHERE estimate_id = ?`, id)
	h, err := scanHeader(row)
	if errors.Is(err, sql.ErrNoRows) {
		return h, model.EstimateResult{}, fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	if err != nil {
		return h, model.EstimateResult{}, err
	}

	res := model.EstimateResult{
		Discipline:     h.Discipline,
		BillingRate:    h.BillingRate,
		TargetFee:      h.Params.TargetFee,
		Scale:          h.Scale,
		BaseTotalHours: h.BaseTotalHours,
		BaseTotalFee:   h.BaseTotalHours * h.BillingRate,
		TotalHours:     h.TotalHours,
		TotalFee:       h.TotalFee,
	}

	rows, err := s.db.Query(`SELECT is_subtotal, phase, task, hours, fee, exact_hours, exact_fee
		FROM estimate_rows WHERE estimate_id = ? ORDER BY seq`, id)
	if err != nil {
		return h, res, err
	}
	defer func() { _ = rows.Close() }()

	for rows.Next() {
		var r model.Row
		var isSubtotal int
		var exactHours, exactFee sql.NullFloat64
		if err := rows.Scan(&isSubtotal, &r.Phase, &r.Task, &r.Hours, &r.Fee, &exactHours, &exactFee); err != nil {
			return h, res, err
		}
		if isSubtotal != 0 {
			r.Kind = model.RowSubtotal
			res.Subtotals = append(res.Subtotals, model.PhaseSubtotal{Phase: r.Phase, Hours: r.Hours, Fee: r.Fee})
		} else {
			res.Tasks = append(res.Tasks, model.ComputedTask{
				Phase:      r.Phase,
				Task:       r.Task,
				Hours:      r.Hours,
				Fee:        r.Fee,
				ExactHours: exactHours.Float64,
				ExactFee:   exactFee.Float64,
			})
		}
		res.Rows = append(res.Rows, r)
	}
	return h, res, rows.Err()
}

// DeleteEstimate removes an estimate and its rows.
func (s *Store) DeleteEstimate(id string) error {
	r, err := s.db.Exec("DELETE FROM estimates WHERE estimate_id = ?", id)
	if err != nil {
		return err
	}
	if n, err := r.RowsAffected(); err == nil && n == 0 {
		return fmt.Errorf("%w: %s", ErrNotFound, id)
	}
	return nil
}

// EstimateCount returns the number of estimates in the file.
func (s *Store) EstimateCount() (int, error) {
	var count int
	err := s.db.QueryRow("SELECT COUNT(*) FROM estimates").Scan(&count)
	return count, err
}
