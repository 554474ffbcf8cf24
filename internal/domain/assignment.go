package domain

// Assignment binds one occurrence of an offering to a slot and a room.
// A practical offering whose course needs a multi-slot cluster produces
// one Assignment per slot in the cluster (REDESIGN FLAG: the legacy
// behavior of blocking the remaining cluster slots without emitting an
// Assignment for them is not carried forward — see DESIGN.md).
type Assignment struct {
	OfferingID string
	SlotID     string
	RoomID     string
	Kind       SessionKind
	Locked     bool

	Offering *Offering
	Slot     *Slot
	Room     *Room
}

// Key uniquely identifies an assignment by its (offering, slot) pair,
// the natural key the solver and validator dedupe and index on.
func (a Assignment) Key() string {
	return a.OfferingID + "@" + a.SlotID
}

// TeacherID proxies to the denormalized offering's teacher, empty when
// the assignment hasn't been hydrated.
func (a Assignment) TeacherID() string {
	if a.Offering == nil {
		return ""
	}
	return a.Offering.TeacherID
}

// SectionID proxies to the denormalized offering's section.
func (a Assignment) SectionID() string {
	if a.Offering == nil {
		return ""
	}
	return a.Offering.SectionID
}
