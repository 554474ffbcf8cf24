// Package constraints holds the pure predicates the solvers, the
// validator, and the recommender all share to decide whether a
// candidate (offering, slot, room) placement is legal. Every function
// here is a pure read over a domain.SolverInput and domain.RuntimeState
// — no function mutates either (spec §4.1, grounded on
// advanced_solver.py's _check_constraints and model.py's
// add_hard_constraints).
package constraints

import "github.com/iitkgp/timetable-solver/internal/domain"

// TeacherFree reports whether o's teacher has no other assignment in slotID.
func TeacherFree(rs *domain.RuntimeState, o *domain.Offering, slotID string) bool {
	return !rs.IsTeacherBusy(o.TeacherID, slotID)
}

// SectionFree reports whether o's section has no other assignment in slotID.
func SectionFree(rs *domain.RuntimeState, o *domain.Offering, slotID string) bool {
	return !rs.IsSectionBusy(o.SectionID, slotID)
}

// RoomFree reports whether roomID has no other assignment in slotID.
func RoomFree(rs *domain.RuntimeState, roomID, slotID string) bool {
	return !rs.IsRoomBusy(roomID, slotID)
}

// Available reports whether o's teacher is available during slotID
// (invariant I1). Absence from the availability index means unavailable.
func Available(idx *domain.Indices, o *domain.Offering, slotID string) bool {
	return idx.Availability.Has(o.TeacherID, slotID)
}

// CapacityOK reports whether room can seat o's section (invariant I3).
func CapacityOK(o *domain.Offering, room *domain.Room) bool {
	return room.FitsCapacity(o.ExpectedSize())
}

// RoomKindOK reports whether room's kind matches what kind requires —
// labs for Practical, classrooms otherwise (invariant I2). kind is the
// occurrence being placed, not a static property of the offering: one
// offering can hold L, T, and P occurrences at once, each needing a
// different room kind.
func RoomKindOK(kind domain.SessionKind, room *domain.Room) bool {
	return room.KindMatches(kind)
}

// DailyCapOK reports whether placing one more session for o's teacher on
// day would still be within the teacher's MaxPerDay (invariant I4).
func DailyCapOK(rs *domain.RuntimeState, teacher *domain.Teacher, day domain.Day) bool {
	return rs.TeacherDayCount[teacher.ID][day] < teacher.MaxPerDay
}

// WeeklyCapOK reports whether placing one more session for teacher would
// still be within MaxPerWeek (invariant I5).
func WeeklyCapOK(rs *domain.RuntimeState, teacher *domain.Teacher) bool {
	return rs.TeacherWeekCount[teacher.ID] < teacher.MaxPerWeek
}

// ClusterBlockOK reports whether every slot in slotID's lab cluster is
// simultaneously free for teacher, section, and room — the check that
// must run before a Practical offering claims an entire cluster in one
// step (invariant I6; REDESIGN FLAG: the legacy implementation only
// blocked the remaining slots without ever validating or assigning them
// — this predicate is what makes the fixed, atomic-cluster placement
// possible).
func ClusterBlockOK(rs *domain.RuntimeState, idx *domain.Indices, o *domain.Offering, slotID, roomID string) bool {
	cluster := idx.ClusterFor(slotID)
	if cluster == nil {
		return TeacherFree(rs, o, slotID) && SectionFree(rs, o, slotID) && RoomFree(rs, roomID, slotID)
	}
	for _, s := range cluster {
		if !TeacherFree(rs, o, s.ID) || !SectionFree(rs, o, s.ID) || !RoomFree(rs, roomID, s.ID) {
			return false
		}
	}
	return true
}

// PrefHardOK reports whether placing o in slot respects the teacher's
// avoid_8am/prefer_days preferences as HARD constraints. Only
// the greedy solver calls this (domain.ModeGreedy); the exact solver
// treats the same preferences as soft objective terms instead (spec §9
// Open Question — resolved per SPEC_FULL.md §4.3/§4.4).
func PrefHardOK(mode domain.Mode, o *domain.Offering, slot *domain.Slot) bool {
	if mode != domain.ModeGreedy || o.Teacher == nil {
		return true
	}
	prefs := o.Teacher.Prefs
	if prefs.Avoid8am && slot.Is8am() {
		return false
	}
	return prefs.PrefersDay(slot.Day)
}

// Hard runs every hard predicate (I1-I6) for placing o's kind occurrence
// into slot/room, short-circuiting on the first failure. It does not
// evaluate PrefHardOK — callers that want preferences enforced as hard
// constraints must call it separately, since whether they are hard
// depends on solver mode.
func Hard(rs *domain.RuntimeState, idx *domain.Indices, o *domain.Offering, kind domain.SessionKind, slot *domain.Slot, room *domain.Room) bool {
	if !Available(idx, o, slot.ID) {
		return false
	}
	if !CapacityOK(o, room) || !RoomKindOK(kind, room) {
		return false
	}
	teacher := o.Teacher
	if teacher != nil {
		if !DailyCapOK(rs, teacher, slot.Day) || !WeeklyCapOK(rs, teacher) {
			return false
		}
	}
	return ClusterBlockOK(rs, idx, o, slot.ID, room.ID)
}
