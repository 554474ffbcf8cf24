package dto

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitkgp/timetable-solver/internal/domain"
)

func sampleRequest() SolveRequest {
	return SolveRequest{
		TermID:   "2026-1",
		Strategy: "exact",
		Teachers: []TeacherInput{{
			ID: "t1", MaxPerDay: 3, MaxPerWeek: 12,
			Avoid8am: true, PreferDays: []string{"MON", "TUE"},
			AvailableSlots: []string{"09:00-10:30"},
		}},
		Rooms: []RoomInput{{ID: "r1", Capacity: 60, Kind: "CLASS", Tags: []string{"smart"}}},
		Slots: []SlotInput{{ID: "s1", Day: "MON", StartTime: "09:00", EndTime: "10:30"}},
		Courses: []CourseInput{{
			ID: "c1", LecturesWeek: 2, RoomTags: []string{"smart"},
		}},
		Sections:  []SectionInput{{ID: "sec1", CourseID: "c1", ExpectedSize: 50}},
		Offerings: []OfferingInput{{ID: "o1", CourseID: "c1", SectionID: "sec1", TeacherID: "t1"}},
		Availability: []AvailabilityInput{{TeacherID: "t1", SlotID: "s1"}},
		Locked:       []AssignmentInput{{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Kind: "L"}},
	}
}

func TestSolveRequestToDomain(t *testing.T) {
	req := sampleRequest()
	in := req.ToDomain()

	require.NotNil(t, in.Indices)
	require.Len(t, in.Teachers, 1)
	assert.Equal(t, "t1", in.Teachers[0].ID)
	assert.True(t, in.Teachers[0].Prefs.Avoid8am)
	assert.Equal(t, []domain.Day{"MON", "TUE"}, in.Teachers[0].Prefs.PreferDays)

	require.Len(t, in.Rooms, 1)
	assert.Equal(t, domain.RoomKind("CLASS"), in.Rooms[0].Kind)
	_, tagged := in.Rooms[0].Tags["smart"]
	assert.True(t, tagged)

	require.Len(t, in.Locked, 1)
	assert.True(t, in.Locked[0].Locked)
}

func TestToDomainAssignments(t *testing.T) {
	rows := []AssignmentInput{{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Kind: "L"}}
	out := ToDomainAssignments(rows)
	require.Len(t, out, 1)
	assert.Equal(t, "o1", out[0].OfferingID)
	assert.False(t, out[0].Locked)
}

func TestFromSolverOutput(t *testing.T) {
	out := domain.SolverOutput{
		Status: domain.StatusInfeasible,
		Skipped: []domain.SkippedOffering{{OfferingID: "o2", Reason: "no free room"}},
		Penalty: 12.5,
		ElapsedMS: 42,
	}
	resp := FromSolverOutput(out)
	assert.Equal(t, "INFEASIBLE", resp.Status)
	require.Len(t, resp.Skipped, 1)
	assert.Equal(t, "no free room", resp.Skipped[0].Reason)
	assert.Empty(t, resp.Assignments)
}

func TestFromValidationResult(t *testing.T) {
	ok := FromValidationResult(domain.ValidationResult{})
	assert.True(t, ok.OK)

	withConflict := FromValidationResult(domain.ValidationResult{Conflicts: []string{"room double-booked"}})
	assert.False(t, withConflict.OK)
	assert.Equal(t, []string{"room double-booked"}, withConflict.Conflicts)
}

func TestFromRecommendations(t *testing.T) {
	resp := FromRecommendations([]domain.Recommendation{{SlotID: "s1", RoomID: "r1", Penalty: 1, Reasons: []string{"fits"}}})
	require.Len(t, resp.Recommendations, 1)
	assert.Equal(t, "s1", resp.Recommendations[0].SlotID)
}

func TestValidatorRejectsMalformedAvailableSlot(t *testing.T) {
	v := NewValidator()
	req := sampleRequest()
	req.Teachers[0].AvailableSlots = []string{"not-a-window"}
	err := v.Struct(req)
	assert.Error(t, err)
}

func TestValidatorAcceptsWellFormedRequest(t *testing.T) {
	v := NewValidator()
	req := sampleRequest()
	err := v.Struct(req)
	assert.NoError(t, err)
}
