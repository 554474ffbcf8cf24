// Package dto defines the wire-level request/response shapes for the
// solver HTTP API, kept separate from internal/domain so the JSON
// contract can evolve (camelCase fields, validator tags) without
// reshaping the engine's value objects.
package dto

import "github.com/iitkgp/timetable-solver/internal/domain"

// TeacherInput is the wire shape of a domain.Teacher.
type TeacherInput struct {
	ID             string   `json:"id" validate:"required"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	MaxPerDay      int      `json:"maxPerDay" validate:"omitempty,min=1"`
	MaxPerWeek     int      `json:"maxPerWeek" validate:"omitempty,min=1"`
	Avoid8am       bool     `json:"avoid8am"`
	AvoidLate      bool     `json:"avoidLate"`
	PreferDays     []string `json:"preferDays" validate:"omitempty,dive,oneof=MON TUE WED THU FRI"`
	AvailableSlots []string `json:"availableSlots" validate:"omitempty,dive,availableslot"`
}

// RoomInput is the wire shape of a domain.Room.
type RoomInput struct {
	ID       string   `json:"id" validate:"required"`
	Code     string   `json:"code"`
	Capacity int      `json:"capacity" validate:"required,min=1"`
	Kind     string   `json:"kind" validate:"required,oneof=CLASS LAB"`
	Tags     []string `json:"tags"`
}

// SlotInput is the wire shape of a domain.Slot.
type SlotInput struct {
	ID        string `json:"id" validate:"required"`
	Code      string `json:"code"`
	Day       string `json:"day" validate:"required,oneof=MON TUE WED THU FRI"`
	StartTime string `json:"startTime" validate:"required,availableslothalf"`
	EndTime   string `json:"endTime" validate:"required,availableslothalf"`
	IsLab     bool   `json:"isLab"`
	Cluster   string `json:"cluster,omitempty"`
}

// CourseInput is the wire shape of a domain.Course.
type CourseInput struct {
	ID             string   `json:"id" validate:"required"`
	Code           string   `json:"code"`
	Name           string   `json:"name"`
	LecturesWeek   int      `json:"lecturesWeek" validate:"min=0"`
	TutorialsWeek  int      `json:"tutorialsWeek" validate:"min=0"`
	PracticalsWeek int      `json:"practicalsWeek" validate:"min=0"`
	LabClusterLen  int      `json:"labClusterLen" validate:"omitempty,min=1"`
	RoomTags       []string `json:"roomTags"`
}

// SectionInput is the wire shape of a domain.Section.
type SectionInput struct {
	ID           string `json:"id" validate:"required"`
	Code         string `json:"code"`
	CourseID     string `json:"courseId" validate:"required"`
	ExpectedSize int    `json:"expectedSize" validate:"required,min=1"`
}

// OfferingInput is the wire shape of a domain.Offering. A single offering
// can require any mix of Lecture/Tutorial/Practical sessions (taken from
// its course's weekly counts), so it carries no session kind of its
// own — kind belongs to each placed Assignment instead.
type OfferingInput struct {
	ID        string `json:"id" validate:"required"`
	CourseID  string `json:"courseId" validate:"required"`
	SectionID string `json:"sectionId" validate:"required"`
	TeacherID string `json:"teacherId" validate:"required"`
}

// AvailabilityInput is the wire shape of a domain.Availability row.
type AvailabilityInput struct {
	TeacherID string `json:"teacherId" validate:"required"`
	SlotID    string `json:"slotId" validate:"required"`
}

// AssignmentInput is the wire shape of a locked/candidate domain.Assignment.
type AssignmentInput struct {
	OfferingID string `json:"offeringId" validate:"required"`
	SlotID     string `json:"slotId" validate:"required"`
	RoomID     string `json:"roomId" validate:"required"`
	Kind       string `json:"kind" validate:"required,oneof=L T P"`
}

// SolveRequest carries a full scheduling problem plus which strategy to
// run it with.
type SolveRequest struct {
	TermID       string              `json:"termId" validate:"required"`
	Strategy     string              `json:"strategy" validate:"omitempty,oneof=exact greedy"`
	Teachers     []TeacherInput      `json:"teachers" validate:"required,min=1,dive"`
	Rooms        []RoomInput         `json:"rooms" validate:"required,min=1,dive"`
	Slots        []SlotInput         `json:"slots" validate:"required,min=1,dive"`
	Courses      []CourseInput       `json:"courses" validate:"required,min=1,dive"`
	Sections     []SectionInput      `json:"sections" validate:"required,min=1,dive"`
	Offerings    []OfferingInput     `json:"offerings" validate:"required,min=1,dive"`
	Availability []AvailabilityInput `json:"availability"`
	Locked       []AssignmentInput   `json:"locked"`
}

// AssignmentOutput is the wire shape of a placed domain.Assignment.
type AssignmentOutput struct {
	OfferingID string `json:"offeringId"`
	SlotID     string `json:"slotId"`
	RoomID     string `json:"roomId"`
	Kind       string `json:"kind"`
	Locked     bool   `json:"locked"`
}

// SkippedOutput is the wire shape of a domain.SkippedOffering.
type SkippedOutput struct {
	OfferingID string `json:"offeringId"`
	Reason     string `json:"reason"`
}

// SolveResponse is the result of running a solve.
type SolveResponse struct {
	RunID       string             `json:"runId,omitempty"`
	Status      string             `json:"status"`
	Assignments []AssignmentOutput `json:"assignments"`
	Skipped     []SkippedOutput    `json:"skipped,omitempty"`
	Penalty     float64            `json:"penalty"`
	ElapsedMS   int64              `json:"elapsedMs"`
}

// ValidateRequest asks for a conflict/warning audit of an assignment set
// against a problem definition.
type ValidateRequest struct {
	Problem     SolveRequest      `json:"problem" validate:"required"`
	Assignments []AssignmentInput `json:"assignments" validate:"required,dive"`
}

// ValidateResponse is the result of a validate call.
type ValidateResponse struct {
	Conflicts []string `json:"conflicts"`
	Warnings  []string `json:"warnings"`
	OK        bool     `json:"ok"`
}

// RecommendRequest asks for ranked (slot, room) candidates for placing or
// moving one offering occurrence.
type RecommendRequest struct {
	Problem     SolveRequest      `json:"problem" validate:"required"`
	OfferingID  string            `json:"offeringId" validate:"required"`
	Kind        string            `json:"kind" validate:"required,oneof=L T P"`
	Assignments []AssignmentInput `json:"assignments"`
}

// RecommendationOutput is one ranked candidate.
type RecommendationOutput struct {
	SlotID  string   `json:"slotId"`
	RoomID  string   `json:"roomId"`
	Penalty float64  `json:"penalty"`
	Reasons []string `json:"reasons"`
}

// RecommendResponse wraps the ranked candidates.
type RecommendResponse struct {
	Recommendations []RecommendationOutput `json:"recommendations"`
}

// ToDomain converts a SolveRequest into the engine's SolverInput.
func (r SolveRequest) ToDomain() *domain.SolverInput {
	in := &domain.SolverInput{
		Teachers:     make([]domain.Teacher, len(r.Teachers)),
		Rooms:        make([]domain.Room, len(r.Rooms)),
		Slots:        make([]domain.Slot, len(r.Slots)),
		Courses:      make([]domain.Course, len(r.Courses)),
		Sections:     make([]domain.Section, len(r.Sections)),
		Offerings:    make([]domain.Offering, len(r.Offerings)),
		Availability: make([]domain.Availability, len(r.Availability)),
		Locked:       make([]domain.Assignment, len(r.Locked)),
	}

	for i, t := range r.Teachers {
		preferDays := make([]domain.Day, 0, len(t.PreferDays))
		for _, d := range t.PreferDays {
			preferDays = append(preferDays, domain.Day(d))
		}
		in.Teachers[i] = domain.Teacher{
			ID:         t.ID,
			Code:       t.Code,
			Name:       t.Name,
			MaxPerDay:  t.MaxPerDay,
			MaxPerWeek: t.MaxPerWeek,
			Prefs: domain.TeacherPrefs{
				Avoid8am:       t.Avoid8am,
				AvoidLate:      t.AvoidLate,
				PreferDays:     preferDays,
				AvailableSlots: t.AvailableSlots,
			},
		}
	}
	for i, rm := range r.Rooms {
		in.Rooms[i] = domain.Room{
			ID:       rm.ID,
			Code:     rm.Code,
			Capacity: rm.Capacity,
			Kind:     domain.RoomKind(rm.Kind),
			Tags:     toTagSet(rm.Tags),
		}
	}
	for i, s := range r.Slots {
		in.Slots[i] = domain.Slot{
			ID:        s.ID,
			Code:      s.Code,
			Day:       domain.Day(s.Day),
			StartTime: s.StartTime,
			EndTime:   s.EndTime,
			IsLab:     s.IsLab,
			Cluster:   s.Cluster,
		}
	}
	for i, c := range r.Courses {
		in.Courses[i] = domain.Course{
			ID:             c.ID,
			Code:           c.Code,
			Name:           c.Name,
			LecturesWeek:   c.LecturesWeek,
			TutorialsWeek:  c.TutorialsWeek,
			PracticalsWeek: c.PracticalsWeek,
			LabClusterLen:  c.LabClusterLen,
			RoomTags:       toTagSet(c.RoomTags),
		}
	}
	for i, s := range r.Sections {
		in.Sections[i] = domain.Section{
			ID:           s.ID,
			Code:         s.Code,
			CourseID:     s.CourseID,
			ExpectedSize: s.ExpectedSize,
		}
	}
	for i, o := range r.Offerings {
		in.Offerings[i] = domain.Offering{
			ID:        o.ID,
			CourseID:  o.CourseID,
			SectionID: o.SectionID,
			TeacherID: o.TeacherID,
		}
	}
	for i, a := range r.Availability {
		in.Availability[i] = domain.Availability{TeacherID: a.TeacherID, SlotID: a.SlotID}
	}
	for i, a := range r.Locked {
		in.Locked[i] = domain.Assignment{
			OfferingID: a.OfferingID,
			SlotID:     a.SlotID,
			RoomID:     a.RoomID,
			Kind:       domain.SessionKind(a.Kind),
			Locked:     true,
		}
	}

	in.Normalize()
	return in
}

// ToDomainAssignments converts AssignmentInput rows into bare domain.Assignments
// (Offering/Slot/Room pointers unset; callers hydrate via Indices).
func ToDomainAssignments(rows []AssignmentInput) []domain.Assignment {
	out := make([]domain.Assignment, len(rows))
	for i, a := range rows {
		out[i] = domain.Assignment{
			OfferingID: a.OfferingID,
			SlotID:     a.SlotID,
			RoomID:     a.RoomID,
			Kind:       domain.SessionKind(a.Kind),
		}
	}
	return out
}

// FromSolverOutput converts a domain.SolverOutput into its wire shape.
func FromSolverOutput(out domain.SolverOutput) SolveResponse {
	resp := SolveResponse{
		Status:    string(out.Status),
		Penalty:   out.Penalty,
		ElapsedMS: out.ElapsedMS,
	}
	for _, a := range out.Assignments {
		resp.Assignments = append(resp.Assignments, AssignmentOutput{
			OfferingID: a.OfferingID,
			SlotID:     a.SlotID,
			RoomID:     a.RoomID,
			Kind:       string(a.Kind),
			Locked:     a.Locked,
		})
	}
	for _, s := range out.Skipped {
		resp.Skipped = append(resp.Skipped, SkippedOutput{OfferingID: s.OfferingID, Reason: s.Reason})
	}
	return resp
}

// FromValidationResult converts a domain.ValidationResult into its wire
// shape.
func FromValidationResult(res domain.ValidationResult) ValidateResponse {
	return ValidateResponse{Conflicts: res.Conflicts, Warnings: res.Warnings, OK: res.OK()}
}

// FromRecommendations converts ranked domain.Recommendations into their
// wire shape.
func FromRecommendations(recs []domain.Recommendation) RecommendResponse {
	out := RecommendResponse{Recommendations: make([]RecommendationOutput, 0, len(recs))}
	for _, r := range recs {
		out.Recommendations = append(out.Recommendations, RecommendationOutput{
			SlotID:  r.SlotID,
			RoomID:  r.RoomID,
			Penalty: r.Penalty,
			Reasons: r.Reasons,
		})
	}
	return out
}

func toTagSet(tags []string) map[string]struct{} {
	if len(tags) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(tags))
	for _, t := range tags {
		set[t] = struct{}{}
	}
	return set
}
