// Package exact implements the exact solver as a depth-limited
// branch-and-bound search with constraint propagation directly over
// internal/constraints. The corpus carries no CP-SAT/ILP binding (the
// Python original builds its model against ortools.sat.python.cp_model,
// which has no Go equivalent anywhere in the example pack), so the
// boolean decision-variable formulation from model.py — X[offering,
// slot, room, kind] for lectures/tutorials, Y[offering, cluster, room]
// for practicals — is realized here as an explicit search over the same
// variables rather than handed to an external solver (SPEC_FULL.md
// §4.3; see DESIGN.md for why this is the one stdlib-only core piece).
package exact

import (
	"context"
	"sort"
	"time"

	"github.com/iitkgp/timetable-solver/internal/constraints"
	"github.com/iitkgp/timetable-solver/internal/domain"
	"github.com/iitkgp/timetable-solver/internal/scoring"
)

// DefaultBudget bounds how long Solve searches before returning its best
// incumbent, mirroring CP-SAT's solver.parameters.max_time_in_seconds.
const DefaultBudget = 30 * time.Second

// variable is one candidate placement for an occurrence: X[o,slot,room]
// for L/T, or Y[o,cluster,room] expanded to its member slots for P.
type variable struct {
	offering *domain.Offering
	kind     domain.SessionKind
	slots    []*domain.Slot // single slot for L/T, full cluster for P
	room     *domain.Room
}

// occurrence groups the variables competing to satisfy one required
// session of one offering (coverage constraint #1 in model.py).
type occurrence struct {
	offering *domain.Offering
	kind     domain.SessionKind
	domainV  []variable
}

type searchState struct {
	idx      *domain.Indices
	rs       *domain.RuntimeState
	deadline time.Time

	bestAssignments []domain.Assignment
	bestSkipped     []domain.SkippedOffering
	bestPenalty     float64
	haveIncumbent   bool
}

// Solve runs the branch-and-bound search and returns the best complete
// or partial assignment found within the context's deadline (falling
// back to DefaultBudget if ctx carries none).
func Solve(ctx context.Context, in *domain.SolverInput) domain.SolverOutput {
	if in.Indices == nil {
		in.Normalize()
	}
	idx := in.Indices

	deadline := time.Now().Add(DefaultBudget)
	if d, ok := ctx.Deadline(); ok && d.Before(deadline) {
		deadline = d
	}

	rs := domain.NewRuntimeState(in)
	var lockedOut []domain.Assignment
	for _, locked := range in.Locked {
		lockedOut = append(lockedOut, placeLocked(rs, idx, locked)...)
	}

	occurrences := buildOccurrences(idx, in.Offerings)
	sortByConstrainedness(occurrences)

	st := &searchState{idx: idx, rs: rs, deadline: deadline}
	search(ctx, st, occurrences, 0, nil, nil, 0)
	st.bestAssignments = append(lockedOut, st.bestAssignments...)

	status := domain.StatusInfeasible
	switch {
	case len(st.bestSkipped) == 0 && st.haveIncumbent:
		status = domain.StatusOptimal
	case st.haveIncumbent && len(st.bestAssignments) > 0:
		status = domain.StatusFeasible
	}

	return domain.SolverOutput{
		Status:      status,
		Assignments: st.bestAssignments,
		Skipped:     st.bestSkipped,
		Penalty:     st.bestPenalty,
	}
}

// buildOccurrences expands every offering's required L/T/P counts into
// occurrences, each carrying its full candidate-variable domain —
// the Go analogue of model.py's create_variables grouped by coverage
// constraint.
func buildOccurrences(idx *domain.Indices, offerings []domain.Offering) []occurrence {
	var out []occurrence
	for i := range offerings {
		o := &offerings[i]
		if o.Course == nil || o.Teacher == nil {
			continue
		}
		for _, kind := range []domain.SessionKind{domain.Lecture, domain.Tutorial, domain.Practical} {
			count := o.Course.SessionsNeeded(kind)
			for n := 0; n < count; n++ {
				out = append(out, occurrence{offering: o, kind: kind, domainV: candidateVariables(idx, o, kind)})
			}
		}
	}
	return out
}

// candidateVariables enumerates every (slot-or-cluster, room) pair that
// passes the offering-independent hard filters (availability, capacity,
// room kind) — constraints #2, #3 from model.py's add_hard_constraints.
func candidateVariables(idx *domain.Indices, o *domain.Offering, kind domain.SessionKind) []variable {
	var vars []variable

	if kind == domain.Practical {
		seen := map[string]bool{}
		for _, slot := range idx.LabSlots {
			if !slot.HasCluster() || seen[slot.Cluster] {
				continue
			}
			seen[slot.Cluster] = true
			cluster := idx.Clusters[slot.Cluster]
			if !allAvailable(idx, o, cluster) {
				continue
			}
			for _, room := range idx.RoomsByKind[domain.RoomLab] {
				if constraints.CapacityOK(o, room) {
					vars = append(vars, variable{offering: o, kind: kind, slots: cluster, room: room})
				}
			}
		}
		return vars
	}

	for _, slot := range idx.TheorySlots {
		if !constraints.Available(idx, o, slot.ID) {
			continue
		}
		for _, room := range idx.RoomsByKind[domain.RoomClass] {
			if constraints.CapacityOK(o, room) {
				vars = append(vars, variable{offering: o, kind: kind, slots: []*domain.Slot{slot}, room: room})
			}
		}
	}
	return vars
}

func allAvailable(idx *domain.Indices, o *domain.Offering, slots []*domain.Slot) bool {
	for _, s := range slots {
		if !constraints.Available(idx, o, s.ID) {
			return false
		}
	}
	return true
}

// sortByConstrainedness orders occurrences by ascending domain size so
// the search branches on the most constrained variables first — a
// standard CSP heuristic that keeps the branch-and-bound tractable
// without an external solver.
func sortByConstrainedness(occurrences []occurrence) {
	sort.SliceStable(occurrences, func(i, j int) bool {
		return len(occurrences[i].domainV) < len(occurrences[j].domainV)
	})
}

// search explores occurrences[i:] depth-first, propagating constraints
// #4-#6 (no double-booking for teacher/section/room) via rs at each
// node, and records the best incumbent found under the soft objective
// computed by placementPenalty (teacher preferences, placement fit, load
// penalties). The objective has no section-gap term.
func search(ctx context.Context, st *searchState, occurrences []occurrence, i int, placed []domain.Assignment, skipped []domain.SkippedOffering, penalty float64) {
	if time.Now().After(st.deadline) {
		st.considerIncumbent(placed, skipped, penalty)
		return
	}
	select {
	case <-ctx.Done():
		st.considerIncumbent(placed, skipped, penalty)
		return
	default:
	}

	if i == len(occurrences) {
		st.considerIncumbent(placed, skipped, penalty)
		return
	}
	occ := occurrences[i]

	tried := false
	for _, v := range occ.domainV {
		if !legal(st.rs, st.idx, v) {
			continue
		}
		added := place(st.rs, v)
		p := penalty + placementPenalty(st.rs, v)
		tried = true

		nextPlaced := make([]domain.Assignment, len(placed), len(placed)+len(added))
		copy(nextPlaced, placed)
		nextPlaced = append(nextPlaced, added...)

		search(ctx, st, occurrences, i+1, nextPlaced, skipped, p)

		unplace(st.rs, added)

		if time.Now().After(st.deadline) {
			return
		}
	}

	// Branch where this occurrence is left unsatisfied — lets the search
	// continue covering the rest even when one occurrence is infeasible,
	// matching the Python solver's failed_assignments bookkeeping.
	skippedHere := append(append([]domain.SkippedOffering{}, skipped...), domain.SkippedOffering{
		OfferingID: occ.offering.ID,
		Reason:     "no feasible slot/room within hard constraints",
	})
	search(ctx, st, occurrences, i+1, placed, skippedHere, penalty)
	_ = tried
}

// considerIncumbent replaces the best-known solution when placed/skipped
// represents a strict improvement: fewer skipped occurrences first,
// then lower soft-objective penalty (model.py minimizes a weighted sum
// of exactly these soft terms).
func (st *searchState) considerIncumbent(placed []domain.Assignment, skipped []domain.SkippedOffering, penalty float64) {
	if st.haveIncumbent {
		if len(skipped) > len(st.bestSkipped) {
			return
		}
		if len(skipped) == len(st.bestSkipped) && penalty >= st.bestPenalty {
			return
		}
	}
	st.bestAssignments = append([]domain.Assignment{}, placed...)
	st.bestSkipped = append([]domain.SkippedOffering{}, skipped...)
	st.bestPenalty = penalty
	st.haveIncumbent = true
}

// legal checks v's slots against the runtime state's current occupancy
// — teacher/section/room freeness (constraints #4-#6) plus daily/weekly
// caps, gating the greedy-only preference constraints off since the
// exact solver treats them as soft (domain.ModeExact).
func legal(rs *domain.RuntimeState, idx *domain.Indices, v variable) bool {
	teacher := v.offering.Teacher
	for _, s := range v.slots {
		if !constraints.TeacherFree(rs, v.offering, s.ID) {
			return false
		}
		if !constraints.SectionFree(rs, v.offering, s.ID) {
			return false
		}
		if !constraints.RoomFree(rs, v.room.ID, s.ID) {
			return false
		}
	}
	if teacher != nil {
		projectedDay := map[domain.Day]int{}
		for _, s := range v.slots {
			projectedDay[s.Day]++
		}
		for day, n := range projectedDay {
			if rs.TeacherDayCount[teacher.ID][day]+n > teacher.MaxPerDay {
				return false
			}
		}
		if rs.TeacherWeekCount[teacher.ID]+len(v.slots) > teacher.MaxPerWeek {
			return false
		}
	}
	return true
}

func place(rs *domain.RuntimeState, v variable) []domain.Assignment {
	out := make([]domain.Assignment, 0, len(v.slots))
	for _, s := range v.slots {
		a := domain.Assignment{
			OfferingID: v.offering.ID,
			SlotID:     s.ID,
			RoomID:     v.room.ID,
			Kind:       v.kind,
			Offering:   v.offering,
			Slot:       s,
			Room:       v.room,
		}
		rs.Place(a, s.Day)
		out = append(out, a)
	}
	return out
}

func unplace(rs *domain.RuntimeState, placed []domain.Assignment) {
	for i := len(placed) - 1; i >= 0; i-- {
		rs.Unplace(placed[i], placed[i].Slot.Day)
	}
}

// placementPenalty scores v under the soft objective: the negated
// internal/scoring placement score per slot (placement_score is
// higher-is-better; this search minimizes a penalty), the teacher's
// avoid_8am/avoid_late (5 each) and prefer_days (2) preferences per
// slot, and scoring.LoadPenalty for the teacher's load.
func placementPenalty(rs *domain.RuntimeState, v variable) float64 {
	total := 0.0
	for _, s := range v.slots {
		total += -scoring.PlacementScore(rs, v.offering, s, v.room)
	}
	if t := v.offering.Teacher; t != nil {
		for _, s := range v.slots {
			if t.Prefs.Avoid8am && s.Is8am() {
				total += 5
			}
			if t.Prefs.AvoidLate && s.IsLateStart() {
				total += 5
			}
			if !t.Prefs.PrefersDay(s.Day) {
				total += 2
			}
		}
		total += scoring.LoadPenalty(
			rs.TeacherDayCount[t.ID][v.slots[0].Day], t.MaxPerDay,
			rs.TeacherWeekCount[t.ID], t.MaxPerWeek,
		)
	}
	return total
}

// placeLocked applies a caller-supplied locked assignment unconditionally
// before the search begins, expanding clusters the same way place does
// (model.py's constraint #7: locked assignments pin their variable to 1).
func placeLocked(rs *domain.RuntimeState, idx *domain.Indices, a domain.Assignment) []domain.Assignment {
	slot := idx.SlotsByID[a.SlotID]
	offering := idx.OfferingsByID[a.OfferingID]
	if slot == nil || offering == nil {
		return nil
	}
	cluster := idx.ClusterFor(a.SlotID)
	if len(cluster) == 0 {
		cluster = []*domain.Slot{slot}
	}
	room := idx.RoomsByID[a.RoomID]
	out := make([]domain.Assignment, 0, len(cluster))
	for _, s := range cluster {
		placed := domain.Assignment{
			OfferingID: a.OfferingID,
			SlotID:     s.ID,
			RoomID:     a.RoomID,
			Kind:       a.Kind,
			Locked:     true,
			Offering:   offering,
			Slot:       s,
			Room:       room,
		}
		rs.Place(placed, s.Day)
		out = append(out, placed)
	}
	return out
}
