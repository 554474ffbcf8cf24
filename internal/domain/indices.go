package domain

import "sort"

// Indices holds every lookup structure derived once from a SolverInput's
// raw rows, so the solver, validator, and recommender never re-scan the
// flat lists (spec §3 "derived indices", grounded on model.py's slot and
// cluster grouping).
type Indices struct {
	SlotsByID    map[string]*Slot
	SlotsByDay   map[Day][]*Slot
	Clusters     map[string][]*Slot // cluster id -> member slots, start-time order
	LabSlots     []*Slot
	TheorySlots  []*Slot

	TeachersByID map[string]*Teacher
	RoomsByID    map[string]*Room
	RoomsByKind  map[RoomKind][]*Room
	CoursesByID  map[string]*Course
	SectionsByID map[string]*Section

	OfferingsByID    map[string]*Offering
	TeacherOfferings map[string][]*Offering
	SectionOfferings map[string][]*Offering

	Availability AvailabilitySet
}

// BuildIndices derives every index from a SolverInput's raw rows. It
// also hydrates each Offering's denormalized Course/Section/Teacher
// pointers, mutating the slice in place.
func BuildIndices(in *SolverInput) *Indices {
	idx := &Indices{
		SlotsByID:        make(map[string]*Slot, len(in.Slots)),
		SlotsByDay:       make(map[Day][]*Slot),
		Clusters:         make(map[string][]*Slot),
		TeachersByID:     make(map[string]*Teacher, len(in.Teachers)),
		RoomsByID:        make(map[string]*Room, len(in.Rooms)),
		RoomsByKind:      make(map[RoomKind][]*Room),
		CoursesByID:      make(map[string]*Course, len(in.Courses)),
		SectionsByID:     make(map[string]*Section, len(in.Sections)),
		OfferingsByID:    make(map[string]*Offering, len(in.Offerings)),
		TeacherOfferings: make(map[string][]*Offering),
		SectionOfferings: make(map[string][]*Offering),
	}

	for i := range in.Teachers {
		t := &in.Teachers[i]
		t.Normalize()
		idx.TeachersByID[t.ID] = t
	}
	for i := range in.Rooms {
		r := &in.Rooms[i]
		idx.RoomsByID[r.ID] = r
		idx.RoomsByKind[r.Kind] = append(idx.RoomsByKind[r.Kind], r)
	}
	for i := range in.Courses {
		idx.CoursesByID[in.Courses[i].ID] = &in.Courses[i]
	}
	for i := range in.Sections {
		idx.SectionsByID[in.Sections[i].ID] = &in.Sections[i]
	}

	for i := range in.Slots {
		s := &in.Slots[i]
		idx.SlotsByID[s.ID] = s
		idx.SlotsByDay[s.Day] = append(idx.SlotsByDay[s.Day], s)
		if s.IsLab {
			idx.LabSlots = append(idx.LabSlots, s)
		} else {
			idx.TheorySlots = append(idx.TheorySlots, s)
		}
		if s.HasCluster() {
			idx.Clusters[s.Cluster] = append(idx.Clusters[s.Cluster], s)
		}
	}
	for day := range idx.SlotsByDay {
		sortSlotsByTime(idx.SlotsByDay[day])
	}
	for cluster := range idx.Clusters {
		sortSlotsByTime(idx.Clusters[cluster])
	}

	for i := range in.Offerings {
		o := &in.Offerings[i]
		o.Course = idx.CoursesByID[o.CourseID]
		o.Section = idx.SectionsByID[o.SectionID]
		o.Teacher = idx.TeachersByID[o.TeacherID]
		idx.OfferingsByID[o.ID] = o
		idx.TeacherOfferings[o.TeacherID] = append(idx.TeacherOfferings[o.TeacherID], o)
		idx.SectionOfferings[o.SectionID] = append(idx.SectionOfferings[o.SectionID], o)
	}

	idx.Availability = NewAvailabilitySet(in.Availability)

	return idx
}

func sortSlotsByTime(slots []*Slot) {
	sort.Slice(slots, func(i, j int) bool {
		return slots[i].StartTime < slots[j].StartTime
	})
}

// ClusterFor returns the ordered member slots of slotID's cluster,
// including slotID itself, or nil if slotID isn't a clustered lab slot.
func (idx *Indices) ClusterFor(slotID string) []*Slot {
	s, ok := idx.SlotsByID[slotID]
	if !ok || !s.HasCluster() {
		return nil
	}
	return idx.Clusters[s.Cluster]
}
