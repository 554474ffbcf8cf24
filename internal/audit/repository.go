package audit

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/jmoiron/sqlx/types"
)

// Repository persists SolveRuns and their assignments, adapted from the
// teacher's SemesterScheduleRepository/SemesterScheduleSlotRepository
// pair onto the new run/assignment shape.
type Repository struct {
	db *sqlx.DB
}

// NewRepository builds the audit repository.
func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) exec(exec sqlx.ExtContext) sqlx.ExtContext {
	if exec != nil {
		return exec
	}
	return r.db
}

// CreateRun inserts a solve run, assigning an ID and timestamp when
// absent.
func (r *Repository) CreateRun(ctx context.Context, exec sqlx.ExtContext, run *SolveRun) error {
	if run == nil {
		return fmt.Errorf("solve run payload is nil")
	}
	if run.TermID == "" {
		return fmt.Errorf("term_id is required")
	}
	if run.ID == "" {
		run.ID = uuid.NewString()
	}
	if len(run.SkippedMeta) == 0 {
		run.SkippedMeta = types.JSONText(`[]`)
	}
	if run.CreatedAt.IsZero() {
		run.CreatedAt = time.Now().UTC()
	}

	const query = `
INSERT INTO solve_runs (id, term_id, strategy, status, penalty, elapsed_ms, skipped_meta, created_at)
VALUES (:id, :term_id, :strategy, :status, :penalty, :elapsed_ms, :skipped_meta, :created_at)`
	if _, err := sqlx.NamedExecContext(ctx, r.exec(exec), query, run); err != nil {
		return fmt.Errorf("insert solve run: %w", err)
	}
	return nil
}

// InsertAssignments stores the placed assignments for a run, issuing one
// NamedExecContext INSERT round trip per record.
func (r *Repository) InsertAssignments(ctx context.Context, exec sqlx.ExtContext, records []SolveAssignmentRecord) error {
	if len(records) == 0 {
		return nil
	}
	target := r.exec(exec)
	now := time.Now().UTC()

	const query = `
INSERT INTO solve_assignments (id, run_id, offering_id, slot_id, room_id, locked, created_at)
VALUES (:id, :run_id, :offering_id, :slot_id, :room_id, :locked, :created_at)`

	for i := range records {
		rec := &records[i]
		if rec.ID == "" {
			rec.ID = uuid.NewString()
		}
		if rec.CreatedAt.IsZero() {
			rec.CreatedAt = now
		}
		if _, err := sqlx.NamedExecContext(ctx, target, query, rec); err != nil {
			return fmt.Errorf("insert solve assignment: %w", err)
		}
	}
	return nil
}

// ListRunsByTerm returns every run recorded for a term, most recent
// first.
func (r *Repository) ListRunsByTerm(ctx context.Context, termID string) ([]RunSummary, error) {
	const query = `SELECT id, term_id, strategy, status, penalty, created_at
FROM solve_runs WHERE term_id = $1 ORDER BY created_at DESC`
	var runs []RunSummary
	if err := r.db.SelectContext(ctx, &runs, query, termID); err != nil {
		return nil, fmt.Errorf("list solve runs: %w", err)
	}
	return runs, nil
}

// FindRun loads a run by ID.
func (r *Repository) FindRun(ctx context.Context, id string) (*SolveRun, error) {
	const query = `SELECT id, term_id, strategy, status, penalty, elapsed_ms, skipped_meta, created_at
FROM solve_runs WHERE id = $1`
	var run SolveRun
	if err := r.db.GetContext(ctx, &run, query, id); err != nil {
		return nil, err
	}
	return &run, nil
}

// ListAssignments returns the assignments recorded for a run, ordered
// by slot.
func (r *Repository) ListAssignments(ctx context.Context, runID string) ([]SolveAssignmentRecord, error) {
	const query = `SELECT id, run_id, offering_id, slot_id, room_id, locked, created_at
FROM solve_assignments WHERE run_id = $1 ORDER BY slot_id ASC`
	var records []SolveAssignmentRecord
	if err := r.db.SelectContext(ctx, &records, query, runID); err != nil {
		return nil, fmt.Errorf("list solve assignments: %w", err)
	}
	return records, nil
}

// DeleteRun removes a run and (via ON DELETE CASCADE) its assignments.
func (r *Repository) DeleteRun(ctx context.Context, id string) error {
	const query = `DELETE FROM solve_runs WHERE id = $1`
	result, err := r.db.ExecContext(ctx, query, id)
	if err != nil {
		return fmt.Errorf("delete solve run: %w", err)
	}
	affected, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("solve run rows affected: %w", err)
	}
	if affected == 0 {
		return sql.ErrNoRows
	}
	return nil
}
