// Package validate audits an already-built assignment set against a
// SolverInput's constraints without attempting to fix anything —
// grounded on model.py's constraint checks replayed post-hoc, plus the
// teacher-overload warnings folded in from advanced_solver.py's
// generate_recommendations (SPEC_FULL.md §8).
package validate

import (
	"fmt"

	"github.com/iitkgp/timetable-solver/internal/constraints"
	"github.com/iitkgp/timetable-solver/internal/domain"
)

// Validate replays assignments against in's indices from scratch and
// reports every conflict and warning found. It never mutates assignments,
// and changes in only by building its Indices when they are missing
// (spec §4.6).
func Validate(in *domain.SolverInput, assignments []domain.Assignment) domain.ValidationResult {
	if in.Indices == nil {
		in.Normalize()
	}
	idx := in.Indices
	rs := domain.NewRuntimeState(in)

	result := domain.ValidationResult{}

	for i := range assignments {
		cp := assignments[i]
		a := &cp
		hydrate(idx, a)
		if a.Offering == nil || a.Slot == nil || a.Room == nil {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("assignment %s references an unknown offering, slot, or room", a.Key()))
			continue
		}

		if !constraints.TeacherFree(rs, a.Offering, a.SlotID) {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("teacher %s double-booked in slot %s", a.Offering.TeacherID, a.SlotID))
		}
		if !constraints.SectionFree(rs, a.Offering, a.SlotID) {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("section %s double-booked in slot %s", a.Offering.SectionID, a.SlotID))
		}
		if !constraints.RoomFree(rs, a.RoomID, a.SlotID) {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("room %s double-booked in slot %s", a.RoomID, a.SlotID))
		}
		if !constraints.Available(idx, a.Offering, a.SlotID) {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("teacher %s is unavailable in slot %s", a.Offering.TeacherID, a.SlotID))
		}
		if !constraints.CapacityOK(a.Offering, a.Room) {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("room %s is too small for offering %s", a.RoomID, a.OfferingID))
		}
		if !constraints.RoomKindOK(a.Kind, a.Room) {
			result.Conflicts = append(result.Conflicts, fmt.Sprintf("room %s is the wrong kind for offering %s", a.RoomID, a.OfferingID))
		}

		teacher := a.Offering.Teacher
		if teacher != nil {
			if !constraints.DailyCapOK(rs, teacher, a.Slot.Day) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("teacher %s exceeds max_per_day on %s", teacher.ID, a.Slot.Day))
			}
			if !constraints.WeeklyCapOK(rs, teacher) {
				result.Warnings = append(result.Warnings, fmt.Sprintf("teacher %s exceeds max_per_week", teacher.ID))
			}
		}

		rs.Place(*a, a.Slot.Day)
	}

	result.Warnings = append(result.Warnings, overloadWarnings(idx, rs)...)
	return result
}

// hydrate fills a's Offering/Slot/Room pointers from idx when the
// caller passed a bare (offering, slot, room) ID triple.
func hydrate(idx *domain.Indices, a *domain.Assignment) {
	if a.Offering == nil {
		a.Offering = idx.OfferingsByID[a.OfferingID]
	}
	if a.Slot == nil {
		a.Slot = idx.SlotsByID[a.SlotID]
	}
	if a.Room == nil {
		a.Room = idx.RoomsByID[a.RoomID]
	}
}

// overloadWarnings flags teachers sitting at or above their weekly cap
// once the full assignment set has replayed, mirroring
// generate_recommendations' overload detection.
func overloadWarnings(idx *domain.Indices, rs *domain.RuntimeState) []string {
	var warnings []string
	for id, teacher := range idx.TeachersByID {
		if rs.TeacherWeekCount[id] >= teacher.MaxPerWeek {
			warnings = append(warnings, fmt.Sprintf("teacher %s is at or above max_per_week capacity", id))
		}
	}
	return warnings
}
