package domain

// RuntimeState is the mutable per-solve bookkeeping both the exact and
// greedy solvers maintain as they place assignments: who/what is busy in
// which slot, and each teacher's running day/week load. It is always
// scoped to a single Solve call and discarded afterward — nothing here
// is persisted (spec §5: no state carried between requests).
type RuntimeState struct {
	TeacherBusy map[string]map[string]bool // teacherID -> slotID -> busy
	RoomBusy    map[string]map[string]bool // roomID -> slotID -> busy
	SectionBusy map[string]map[string]bool // sectionID -> slotID -> busy

	TeacherDayCount  map[string]map[Day]int
	TeacherWeekCount map[string]int

	Assignments []Assignment
}

// NewRuntimeState builds an empty RuntimeState sized for in.
func NewRuntimeState(in *SolverInput) *RuntimeState {
	return &RuntimeState{
		TeacherBusy:      make(map[string]map[string]bool, len(in.Teachers)),
		RoomBusy:         make(map[string]map[string]bool, len(in.Rooms)),
		SectionBusy:      make(map[string]map[string]bool, len(in.Sections)),
		TeacherDayCount:  make(map[string]map[Day]int, len(in.Teachers)),
		TeacherWeekCount: make(map[string]int, len(in.Teachers)),
	}
}

// IsTeacherBusy reports whether teacherID already has an assignment in slotID.
func (rs *RuntimeState) IsTeacherBusy(teacherID, slotID string) bool {
	return rs.TeacherBusy[teacherID][slotID]
}

// IsRoomBusy reports whether roomID already has an assignment in slotID.
func (rs *RuntimeState) IsRoomBusy(roomID, slotID string) bool {
	return rs.RoomBusy[roomID][slotID]
}

// IsSectionBusy reports whether sectionID already has an assignment in slotID.
func (rs *RuntimeState) IsSectionBusy(sectionID, slotID string) bool {
	return rs.SectionBusy[sectionID][slotID]
}

// Place records a into the runtime state's busy maps and counters, and
// appends it to Assignments. Callers must have already verified the
// placement against internal/constraints.
func (rs *RuntimeState) Place(a Assignment, day Day) {
	teacherID, sectionID := a.TeacherID(), a.SectionID()

	if rs.TeacherBusy[teacherID] == nil {
		rs.TeacherBusy[teacherID] = make(map[string]bool)
	}
	rs.TeacherBusy[teacherID][a.SlotID] = true

	if rs.RoomBusy[a.RoomID] == nil {
		rs.RoomBusy[a.RoomID] = make(map[string]bool)
	}
	rs.RoomBusy[a.RoomID][a.SlotID] = true

	if rs.SectionBusy[sectionID] == nil {
		rs.SectionBusy[sectionID] = make(map[string]bool)
	}
	rs.SectionBusy[sectionID][a.SlotID] = true

	if rs.TeacherDayCount[teacherID] == nil {
		rs.TeacherDayCount[teacherID] = make(map[Day]int)
	}
	rs.TeacherDayCount[teacherID][day]++
	rs.TeacherWeekCount[teacherID]++

	rs.Assignments = append(rs.Assignments, a)
}

// Unplace reverses a prior Place, used by the exact solver when it
// backtracks and by the greedy optimizer's swap pass to lift both
// assignments before trying the swapped placement.
func (rs *RuntimeState) Unplace(a Assignment, day Day) {
	teacherID, sectionID := a.TeacherID(), a.SectionID()

	delete(rs.TeacherBusy[teacherID], a.SlotID)
	delete(rs.RoomBusy[a.RoomID], a.SlotID)
	delete(rs.SectionBusy[sectionID], a.SlotID)

	if rs.TeacherDayCount[teacherID] != nil {
		rs.TeacherDayCount[teacherID][day]--
	}
	rs.TeacherWeekCount[teacherID]--

	for i, existing := range rs.Assignments {
		if existing.Key() == a.Key() {
			rs.Assignments = append(rs.Assignments[:i], rs.Assignments[i+1:]...)
			break
		}
	}
}
