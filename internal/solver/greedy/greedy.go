// Package greedy implements the constructive-heuristic solver: a
// priority-ordered placement pass followed by a bounded pairwise-swap
// optimization. It is grounded on advanced_solver.py's ConstraintSolver,
// with both REDESIGN FLAG fixes applied: cluster placements emit one
// Assignment per member slot instead of silently blocking the rest, and
// swap candidates are re-checked for teacher availability before being
// accepted (SPEC_FULL.md §4.4).
package greedy

import (
	"context"
	"sort"

	"github.com/iitkgp/timetable-solver/internal/constraints"
	"github.com/iitkgp/timetable-solver/internal/domain"
	"github.com/iitkgp/timetable-solver/internal/scoring"
)

const maxSwapIterations = 100

// occurrence is one (offering, kind) unit still needing a placement —
// an offering with course.L=2 produces two Lecture occurrences, etc.
type occurrence struct {
	offering *domain.Offering
	kind     domain.SessionKind
}

// Solve runs the greedy constructive pass followed by swap optimization
// and returns every assignment it managed to place, plus what it
// couldn't.
func Solve(ctx context.Context, in *domain.SolverInput) domain.SolverOutput {
	if in.Indices == nil {
		in.Normalize()
	}
	idx := in.Indices
	rs := domain.NewRuntimeState(in)

	for _, locked := range in.Locked {
		applyAssignment(rs, idx, locked)
	}

	offerings := prioritize(in.Offerings)
	var skipped []domain.SkippedOffering

	for _, o := range offerings {
		if o.Teacher == nil {
			continue
		}
		for _, occ := range occurrencesFor(o) {
			a, ok := findBestAssignment(rs, idx, occ)
			if !ok {
				skipped = append(skipped, domain.SkippedOffering{
					OfferingID: occ.offering.ID,
					Reason:     "no suitable slot/room found",
				})
				continue
			}
			applyAssignment(rs, idx, a)
		}
		select {
		case <-ctx.Done():
			return finish(rs, skipped, domain.StatusPartial)
		default:
		}
	}

	optimize(ctx, rs, idx)

	status := domain.StatusFeasible
	if len(skipped) == 0 {
		status = domain.StatusOptimal
	}
	return finish(rs, skipped, status)
}

func finish(rs *domain.RuntimeState, skipped []domain.SkippedOffering, status domain.Status) domain.SolverOutput {
	// placement_score is higher-is-better; Penalty is reported as a
	// lower-is-better total, so each term is negated on the way in.
	penalty := 0.0
	for _, a := range rs.Assignments {
		if a.Offering != nil && a.Slot != nil && a.Room != nil {
			penalty += -scoring.PlacementScore(rs, a.Offering, a.Slot, a.Room)
		}
	}
	return domain.SolverOutput{
		Status:      status,
		Assignments: rs.Assignments,
		Skipped:     skipped,
		Penalty:     penalty,
	}
}

// occurrencesFor expands an offering's weekly kind counts (course.L/T/P)
// into individual placement units.
func occurrencesFor(o *domain.Offering) []occurrence {
	if o.Course == nil {
		return nil
	}
	var out []occurrence
	for _, kind := range []domain.SessionKind{domain.Lecture, domain.Tutorial, domain.Practical} {
		for i := 0; i < o.Course.SessionsNeeded(kind); i++ {
			out = append(out, occurrence{offering: o, kind: kind})
		}
	}
	return out
}

// prioritize orders offerings by priority_score: larger expected class
// size, presence of practicals, and teachers with tighter weekly caps
// all move an offering earlier (advanced_solver.py's _prioritize_offerings).
func prioritize(offerings []domain.Offering) []*domain.Offering {
	out := make([]*domain.Offering, len(offerings))
	for i := range offerings {
		out[i] = &offerings[i]
	}
	sort.SliceStable(out, func(i, j int) bool {
		return priorityScore(out[i]) > priorityScore(out[j])
	})
	return out
}

func priorityScore(o *domain.Offering) float64 {
	score := float64(o.ExpectedSize()) / 10.0
	if o.Course != nil && o.Course.PracticalsWeek > 0 {
		score += 50
	}
	if o.Teacher != nil {
		score += 100 - float64(o.Teacher.MaxPerWeek)
	}
	return score
}

// findBestAssignment scores every legal (slot, room) pair for occ and
// returns the highest-scoring one, mirroring _find_best_assignment.
func findBestAssignment(rs *domain.RuntimeState, idx *domain.Indices, occ occurrence) (domain.Assignment, bool) {
	o := occ.offering
	candidates := idx.TheorySlots
	if occ.kind == domain.Practical {
		candidates = idx.LabSlots
	}

	type scored struct {
		slot  *domain.Slot
		room  *domain.Room
		score float64
	}
	var best *scored

	for _, slot := range candidates {
		if !constraints.Available(idx, o, slot.ID) {
			continue
		}
		if rs.IsTeacherBusy(o.TeacherID, slot.ID) {
			continue
		}
		if !constraints.PrefHardOK(domain.ModeGreedy, o, slot) {
			continue
		}
		if o.Teacher != nil && (!constraints.DailyCapOK(rs, o.Teacher, slot.Day) || !constraints.WeeklyCapOK(rs, o.Teacher)) {
			continue
		}
		if !constraints.SectionFree(rs, o, slot.ID) {
			continue
		}

		room := findBestRoom(rs, idx, o, slot, occ.kind)
		if room == nil {
			continue
		}
		if occ.kind == domain.Practical && !constraints.ClusterBlockOK(rs, idx, o, slot.ID, room.ID) {
			continue
		}

		score := scoring.PlacementScore(rs, o, slot, room) // higher is better
		if best == nil || score > best.score {
			best = &scored{slot: slot, room: room, score: score}
		}
	}

	if best == nil {
		return domain.Assignment{}, false
	}
	return domain.Assignment{
		OfferingID: o.ID,
		SlotID:     best.slot.ID,
		RoomID:     best.room.ID,
		Kind:       occ.kind,
		Offering:   o,
		Slot:       best.slot,
		Room:       best.room,
	}, true
}

// findBestRoom picks the tightest-fitting, best-tagged free room of the
// right kind for occ, mirroring _find_best_room's room_score.
func findBestRoom(rs *domain.RuntimeState, idx *domain.Indices, o *domain.Offering, slot *domain.Slot, kind domain.SessionKind) *domain.Room {
	var best *domain.Room
	bestScore := 0.0
	first := true

	pool := idx.RoomsByKind[domain.RoomClass]
	if kind == domain.Practical {
		pool = idx.RoomsByKind[domain.RoomLab]
	}

	for _, room := range pool {
		if rs.IsRoomBusy(room.ID, slot.ID) {
			continue
		}
		if !constraints.CapacityOK(o, room) {
			continue
		}
		score := roomScore(o, room)
		if first || score > bestScore {
			best, bestScore, first = room, score, false
		}
	}
	return best
}

func roomScore(o *domain.Offering, room *domain.Room) float64 {
	score := -float64(room.Capacity-o.ExpectedSize()) * 0.1
	score += float64(room.TagOverlap(o.RoomTags())) * 10
	return score
}

// applyAssignment places a in rs, expanding a lab cluster into one
// Assignment per member slot so every slot the cluster occupies is
// represented in the output (the REDESIGN FLAG fix: the legacy
// _apply_assignment blocked the remaining cluster slots in the busy
// maps without ever emitting assignments for them).
func applyAssignment(rs *domain.RuntimeState, idx *domain.Indices, a domain.Assignment) {
	if a.Slot == nil {
		a.Slot = idx.SlotsByID[a.SlotID]
	}
	if a.Offering == nil {
		a.Offering = idx.OfferingsByID[a.OfferingID]
	}
	if a.Room == nil {
		a.Room = idx.RoomsByID[a.RoomID]
	}
	if a.Slot == nil || a.Offering == nil {
		return
	}

	cluster := idx.ClusterFor(a.SlotID)
	if len(cluster) == 0 {
		rs.Place(a, a.Slot.Day)
		return
	}
	for _, s := range cluster {
		member := a
		member.SlotID = s.ID
		member.Slot = s
		rs.Place(member, s.Day)
	}
}

// optimize runs bounded pairwise-swap passes, accepting a swap only
// when it legally improves the combined score (advanced_solver.py's
// _optimize_schedule/_can_swap/_calculate_swap_score, with the missing
// availability re-check added per the REDESIGN FLAG).
func optimize(ctx context.Context, rs *domain.RuntimeState, idx *domain.Indices) {
	improved := true
	for iter := 0; improved && iter < maxSwapIterations; iter++ {
		improved = false
		select {
		case <-ctx.Done():
			return
		default:
		}
		for i := 0; i < len(rs.Assignments); i++ {
			for j := i + 1; j < len(rs.Assignments); j++ {
				if trySwap(rs, idx, i, j) {
					improved = true
				}
			}
		}
	}
}

// trySwap attempts to swap the (slot, room) of assignments at i and j,
// accepting the swap only if it is legal for both sides and strictly
// reduces total penalty.
func trySwap(rs *domain.RuntimeState, idx *domain.Indices, i, j int) bool {
	a1, a2 := rs.Assignments[i], rs.Assignments[j]
	if a1.Offering == nil || a2.Offering == nil || a1.Slot == nil || a2.Slot == nil {
		return false
	}
	if a1.Kind != a2.Kind {
		return false
	}
	if a1.Slot.HasCluster() || a2.Slot.HasCluster() {
		return false // clusters swap as a unit, not handled here
	}
	if !canSwap(idx, a1, a2) {
		return false
	}

	current := scoring.PlacementScore(rs, a1.Offering, a1.Slot, a1.Room) +
		scoring.PlacementScore(rs, a2.Offering, a2.Slot, a2.Room)
	swapped := scoring.PlacementScore(rs, a1.Offering, a2.Slot, a2.Room) +
		scoring.PlacementScore(rs, a2.Offering, a1.Slot, a1.Room)

	if swapped <= current { // higher is better; only accept a strict improvement
		return false
	}

	saved := append([]domain.Assignment(nil), rs.Assignments...)
	rs.Unplace(a1, a1.Slot.Day)
	rs.Unplace(a2, a2.Slot.Day)

	n1 := a1
	n1.SlotID, n1.Slot, n1.RoomID, n1.Room = a2.SlotID, a2.Slot, a2.RoomID, a2.Room
	n2 := a2
	n2.SlotID, n2.Slot, n2.RoomID, n2.Room = a1.SlotID, a1.Slot, a1.RoomID, a1.Room

	if !legalAfterSwap(rs, idx, n1) || !legalAfterSwap(rs, idx, n2) {
		rs.Place(a1, a1.Slot.Day)
		rs.Place(a2, a2.Slot.Day)
		rs.Assignments = saved
		return false
	}

	rs.Place(n1, n1.Slot.Day)
	rs.Place(n2, n2.Slot.Day)
	saved[i], saved[j] = n1, n2
	rs.Assignments = saved
	return true
}

// canSwap checks the swap's static legality before any mutation:
// capacity fits both ways, and — the REDESIGN FLAG fix — both teachers
// are available in the slot they'd be moving into. advanced_solver.py's
// _can_swap only checked capacity, which could silently place a teacher
// into a slot they had never declared availability for.
func canSwap(idx *domain.Indices, a1, a2 domain.Assignment) bool {
	if !constraints.CapacityOK(a1.Offering, a2.Room) || !constraints.CapacityOK(a2.Offering, a1.Room) {
		return false
	}
	if !constraints.Available(idx, a1.Offering, a2.SlotID) || !constraints.Available(idx, a2.Offering, a1.SlotID) {
		return false
	}
	return true
}

// legalAfterSwap re-checks teacher/section/room freeness once the two
// assignments have been provisionally removed from rs — guards against
// a third assignment already occupying the destination.
func legalAfterSwap(rs *domain.RuntimeState, idx *domain.Indices, a domain.Assignment) bool {
	return constraints.TeacherFree(rs, a.Offering, a.SlotID) &&
		constraints.SectionFree(rs, a.Offering, a.SlotID) &&
		constraints.RoomFree(rs, a.RoomID, a.SlotID)
}
