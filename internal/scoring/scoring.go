// Package scoring implements the soft-objective penalty formulas shared
// by the greedy solver, the exact solver's objective, and the
// recommendation engine — grounded on advanced_solver.py's
// _calculate_slot_score/_find_best_room and model.py's
// add_soft_objectives.
package scoring

import "github.com/iitkgp/timetable-solver/internal/domain"

// PlacementBase is placement_score's starting value before any term is
// applied (spec §4.2).
const PlacementBase = 100.0

// Placement-score term weights, spec §4.2.
const (
	PlacementAvoid8am      = 20.0
	PlacementAvailableSlot = 30.0
	PlacementDayReused     = 5.0
	PlacementDayFresh      = 15.0
	PlacementCapacityFit   = 20.0
	PlacementCapacityThin  = 15.0
	PlacementSectionDense  = 25.0
	PlacementTagBonus      = 10.0
	PlacementOversizeRate  = 0.1
)

// Recommendation-penalty term weights, spec §4.2.
const (
	RecommendAvoid8am     = 10.0
	RecommendAvoidLate    = 10.0
	RecommendPreferDays   = 5.0
	RecommendCapacityThin = 5.0
	RecommendCapacityTigh = 3.0
)

// Exact solver soft-objective weights (spec §4.3), kept distinct from
// the placement/recommendation weights above since they score a
// different objective: excess teacher load and section-schedule gaps
// rather than a single placement's fit.
const (
	WeightExcessDay  = 10.0
	WeightExcessWeek = 20.0
	WeightGap        = 3.0
)

// PlacementScore scores a candidate (slot, room) placement for o —
// higher is better (spec §4.2). Used identically by the greedy solver's
// constructive and swap passes and the exact solver's objective.
func PlacementScore(rs *domain.RuntimeState, o *domain.Offering, slot *domain.Slot, room *domain.Room) float64 {
	score := PlacementBase

	if slot.Is8am() {
		score -= PlacementAvoid8am
	}
	if o.Teacher != nil && o.Teacher.Prefs.MatchesAvailableSlot(slot.Window()) {
		score += PlacementAvailableSlot
	}
	if o.Teacher != nil && rs.TeacherDayCount[o.Teacher.ID][slot.Day] > 0 {
		score -= PlacementDayReused
	} else {
		score += PlacementDayFresh
	}

	switch ratio := capacityRatio(o, room); {
	case ratio >= 0.7 && ratio <= 0.9:
		score += PlacementCapacityFit
	case ratio < 0.5:
		score -= PlacementCapacityThin
	}

	if sectionDayCount(rs, o.SectionID, slot.Day) > 4 {
		score -= PlacementSectionDense
	}

	score += PlacementTagBonus * float64(room.TagOverlap(o.RoomTags()))
	score -= PlacementOversizeRate * float64(room.Capacity-o.ExpectedSize())

	return score
}

// capacityRatio is off.expected_size / room.capacity, the fill fraction
// both scoring functions bucket on (spec §4.2).
func capacityRatio(o *domain.Offering, room *domain.Room) float64 {
	if room.Capacity == 0 {
		return 0
	}
	return float64(o.ExpectedSize()) / float64(room.Capacity)
}

// sectionDayCount counts how many assignments already placed in rs
// belong to sectionID on day — the crowding term placement_score
// penalizes past four.
func sectionDayCount(rs *domain.RuntimeState, sectionID string, day domain.Day) int {
	n := 0
	for _, a := range rs.Assignments {
		if a.Slot != nil && a.Slot.Day == day && a.SectionID() == sectionID {
			n++
		}
	}
	return n
}

// GapPenalty scores the schedule-fragmentation cost of giving a teacher
// an assignment that leaves a gap in the section's day (model.py's gap
// term, spec §4.3). Neither solver calls it.
func GapPenalty(isolated bool) float64 {
	if isolated {
		return WeightGap
	}
	return 0
}

// LoadPenalty scores a teacher's excess load once placement has pushed
// them past half their daily/weekly caps, mirroring model.py's
// excess_day/excess_week soft terms (spec §4.3).
func LoadPenalty(dayCount, maxPerDay, weekCount, maxPerWeek int) float64 {
	penalty := 0.0
	if half := maxPerDay / 2; half > 0 && dayCount > half {
		penalty += WeightExcessDay * float64(dayCount-half)
	}
	if half := maxPerWeek / 2; half > 0 && weekCount > half {
		penalty += WeightExcessWeek * float64(weekCount-half)
	}
	return penalty
}

// RecommendationPenalty scores a candidate placement for the
// recommendation engine and returns the human-readable reasons behind
// the non-zero terms — lower is better (spec §4.2). The cluster bonus
// for practicals is applied by the caller, which alone knows the kind
// being placed.
func RecommendationPenalty(rs *domain.RuntimeState, o *domain.Offering, slot *domain.Slot, room *domain.Room) (float64, []string) {
	var reasons []string
	score := 0.0

	if o.Teacher != nil {
		prefs := o.Teacher.Prefs
		if prefs.Avoid8am && slot.Is8am() {
			score += RecommendAvoid8am
			reasons = append(reasons, "teacher prefers to avoid 8am slots")
		}
		if prefs.AvoidLate && slot.IsLateStart() {
			score += RecommendAvoidLate
			reasons = append(reasons, "teacher prefers to avoid late slots")
		}
		if len(prefs.PreferDays) > 0 && !prefs.PrefersDay(slot.Day) {
			score += RecommendPreferDays
			reasons = append(reasons, "day is outside teacher's preferred days")
		}
	}

	switch ratio := capacityRatio(o, room); {
	case ratio < 0.5:
		score += RecommendCapacityThin
		reasons = append(reasons, "room is much larger than needed")
	case ratio > 0.9:
		score += RecommendCapacityTigh
		reasons = append(reasons, "room is a tight fit for the expected size")
	}

	return score, reasons
}
