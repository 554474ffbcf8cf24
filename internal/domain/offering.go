package domain

// Offering is a (course, section) tuple awaiting assignment to slots and
// a room for each Lecture/Tutorial/Practical session its course needs —
// the atomic unit the solver places one occurrence at a time. A single
// offering can require any mix of L, T, and P sessions (spec §1); the
// session kind belongs to each occurrence's Assignment, not the
// offering itself. Course/Section/Teacher are denormalized onto the
// offering once at input-parse time (see SolverInput.Normalize) so
// downstream code never has to re-look them up by ID.
type Offering struct {
	ID        string
	CourseID  string
	SectionID string
	TeacherID string
	Count     int

	Course  *Course
	Section *Section
	Teacher *Teacher
}

// ExpectedSize proxies to the denormalized Section, defaulting to 0 if
// the offering hasn't been normalized yet.
func (o Offering) ExpectedSize() int {
	if o.Section == nil {
		return 0
	}
	return o.Section.ExpectedSize
}

// RoomTags proxies to the denormalized Course's required room tags.
func (o Offering) RoomTags() map[string]struct{} {
	if o.Course == nil {
		return nil
	}
	return o.Course.RoomTags
}
