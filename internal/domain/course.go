package domain

// Course is a catalog entry describing which session kinds it requires
// and how many of each kind a section must hold per week (spec §3).
type Course struct {
	ID            string
	Code          string
	Name          string
	LecturesWeek  int
	TutorialsWeek int
	PracticalsWeek int
	LabClusterLen  int
	RoomTags       map[string]struct{}
}

// SessionsNeeded returns the weekly count of sessions of kind the course
// requires. Practicals are counted in clusters of LabClusterLen slots.
func (c Course) SessionsNeeded(kind SessionKind) int {
	switch kind {
	case Lecture:
		return c.LecturesWeek
	case Tutorial:
		return c.TutorialsWeek
	case Practical:
		return c.PracticalsWeek
	default:
		return 0
	}
}

// ClusterLen returns the number of contiguous slots a single practical
// session occupies, defaulting to 1 when unset.
func (c Course) ClusterLen() int {
	if c.LabClusterLen <= 0 {
		return 1
	}
	return c.LabClusterLen
}
