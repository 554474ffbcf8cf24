// Package audit persists solver runs and the assignments they produced,
// the supplemented "audit trail" feature (SPEC_FULL.md §8 Supplemented
// Features) grounded on the teacher's semester_schedule persistence
// layer (internal/models/semester_schedule.go), repurposed from a
// day/time-slot timetable onto domain.SolverOutput.
package audit

import (
	"time"

	"github.com/jmoiron/sqlx/types"
)

// RunStatus mirrors domain.Status for storage, kept as its own type so
// the audit package does not need to import internal/domain just for
// an enum of strings.
type RunStatus string

const (
	RunStatusOptimal    RunStatus = "OPTIMAL"
	RunStatusFeasible   RunStatus = "FEASIBLE"
	RunStatusPartial    RunStatus = "PARTIAL"
	RunStatusInfeasible RunStatus = "INFEASIBLE"
)

// SolveRun is one persisted invocation of the solver: which strategy
// ran, what it decided, and how it scored.
type SolveRun struct {
	ID          string         `db:"id" json:"id"`
	TermID      string         `db:"term_id" json:"term_id"`
	Strategy    string         `db:"strategy" json:"strategy"`
	Status      RunStatus      `db:"status" json:"status"`
	Penalty     float64        `db:"penalty" json:"penalty"`
	ElapsedMS   int64          `db:"elapsed_ms" json:"elapsed_ms"`
	SkippedMeta types.JSONText `db:"skipped_meta" json:"skipped_meta"`
	CreatedAt   time.Time      `db:"created_at" json:"created_at"`
}

// SolveAssignmentRecord is one placed (offering, slot, room) triple
// belonging to a SolveRun.
type SolveAssignmentRecord struct {
	ID         string    `db:"id" json:"id"`
	RunID      string    `db:"run_id" json:"run_id"`
	OfferingID string    `db:"offering_id" json:"offering_id"`
	SlotID     string    `db:"slot_id" json:"slot_id"`
	RoomID     string    `db:"room_id" json:"room_id"`
	Locked     bool      `db:"locked" json:"locked"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
}

// RunSummary is a lightweight projection for list views.
type RunSummary struct {
	ID        string    `json:"id"`
	TermID    string    `json:"term_id"`
	Strategy  string    `json:"strategy"`
	Status    RunStatus `json:"status"`
	Penalty   float64   `json:"penalty"`
	CreatedAt time.Time `json:"created_at"`
}
