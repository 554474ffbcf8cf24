// Package recommend ranks candidate (slot, room) placements for moving
// or (re)placing a single offering occurrence, grounded on
// recommendations.py's generate_slot_recommendations (spec §4.5).
package recommend

import (
	"sort"

	"github.com/iitkgp/timetable-solver/internal/constraints"
	"github.com/iitkgp/timetable-solver/internal/domain"
	"github.com/iitkgp/timetable-solver/internal/scoring"
)

const maxResults = 10

// Recommend scores every legal (slot, room) candidate for placing
// offeringID's kind occurrence, excluding the occurrence's own current
// assignments from the occupancy it conflicts-checks against (so moving
// a class doesn't flag it as blocking itself), and returns the top 10
// by ascending penalty.
func Recommend(in *domain.SolverInput, offeringID string, kind domain.SessionKind, current []domain.Assignment) []domain.Recommendation {
	if in.Indices == nil {
		in.Normalize()
	}
	idx := in.Indices

	o := idx.OfferingsByID[offeringID]
	if o == nil {
		return nil
	}

	rs := replayExcluding(in, idx, offeringID, kind, current)

	candidateSlots := idx.TheorySlots
	roomPool := idx.RoomsByKind[domain.RoomClass]
	if kind == domain.Practical {
		candidateSlots = idx.LabSlots
		roomPool = idx.RoomsByKind[domain.RoomLab]
	}

	var recs []domain.Recommendation
	for _, slot := range candidateSlots {
		if !constraints.Available(idx, o, slot.ID) {
			continue
		}
		if !constraints.TeacherFree(rs, o, slot.ID) || !constraints.SectionFree(rs, o, slot.ID) {
			continue
		}
		for _, room := range roomPool {
			if !constraints.RoomFree(rs, room.ID, slot.ID) {
				continue
			}
			if !constraints.CapacityOK(o, room) {
				continue
			}
			penalty, reasons := scoring.RecommendationPenalty(rs, o, slot, room)
			if kind == domain.Practical && slot.HasCluster() {
				penalty -= 5
				reasons = append(reasons, "part of a lab cluster")
			}
			if ratio := utilizationRatio(o, room); ratio >= 0.7 && ratio <= 0.9 {
				reasons = append(reasons, "good room utilization")
			}
			if len(reasons) == 0 {
				reasons = append(reasons, "good fit, no issues found")
			}
			recs = append(recs, domain.Recommendation{
				SlotID:  slot.ID,
				RoomID:  room.ID,
				Penalty: penalty,
				Reasons: reasons,
			})
		}
	}

	sort.SliceStable(recs, func(i, j int) bool { return recs[i].Penalty < recs[j].Penalty })
	if len(recs) > maxResults {
		recs = recs[:maxResults]
	}
	return recs
}

// replayExcluding rebuilds a RuntimeState from current, skipping only
// the specific (offeringID, kind) occurrence being moved so it doesn't
// conflict-block its own candidate slots — a single offering can hold
// other L/T/P occurrences that must stay blocking.
func replayExcluding(in *domain.SolverInput, idx *domain.Indices, offeringID string, kind domain.SessionKind, current []domain.Assignment) *domain.RuntimeState {
	rs := domain.NewRuntimeState(in)
	for i := range current {
		a := current[i]
		if a.OfferingID == offeringID && a.Kind == kind {
			continue
		}
		if a.Offering == nil {
			a.Offering = idx.OfferingsByID[a.OfferingID]
		}
		if a.Slot == nil {
			a.Slot = idx.SlotsByID[a.SlotID]
		}
		if a.Offering == nil || a.Slot == nil {
			continue
		}
		rs.Place(a, a.Slot.Day)
	}
	return rs
}

func utilizationRatio(o *domain.Offering, room *domain.Room) float64 {
	if room.Capacity == 0 {
		return 0
	}
	return float64(o.ExpectedSize()) / float64(room.Capacity)
}
