package recommend

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitkgp/timetable-solver/internal/domain"
)

func buildInput() *domain.SolverInput {
	in := &domain.SolverInput{
		Teachers: []domain.Teacher{{ID: "t1", MaxPerDay: 5, MaxPerWeek: 20}},
		Rooms: []domain.Room{
			{ID: "r1", Capacity: 60, Kind: domain.RoomClass},
			{ID: "r2", Capacity: 20, Kind: domain.RoomLab},
		},
		Slots: []domain.Slot{
			{ID: "s1", Day: domain.Monday, StartTime: "09:00", EndTime: "10:00"},
			{ID: "s2", Day: domain.Monday, StartTime: "10:00", EndTime: "11:00"},
			{ID: "s3", Day: domain.Tuesday, StartTime: "11:00", EndTime: "12:00", IsLab: true},
		},
		Courses:  []domain.Course{{ID: "c1", LecturesWeek: 1}, {ID: "c2", PracticalsWeek: 1}},
		Sections: []domain.Section{{ID: "sec1", CourseID: "c1", ExpectedSize: 40}, {ID: "sec2", CourseID: "c2", ExpectedSize: 15}},
		Offerings: []domain.Offering{
			{ID: "o1", CourseID: "c1", SectionID: "sec1", TeacherID: "t1"},
			{ID: "o2", CourseID: "c2", SectionID: "sec2", TeacherID: "t1"},
		},
		Availability: []domain.Availability{
			{TeacherID: "t1", SlotID: "s1"},
			{TeacherID: "t1", SlotID: "s2"},
			{TeacherID: "t1", SlotID: "s3"},
		},
	}
	in.Normalize()
	return in
}

func TestRecommendRanksByAscendingPenalty(t *testing.T) {
	in := buildInput()
	recs := Recommend(in, "o1", domain.Lecture, nil)
	require.NotEmpty(t, recs)
	for i := 1; i < len(recs); i++ {
		assert.LessOrEqual(t, recs[i-1].Penalty, recs[i].Penalty)
	}
}

func TestRecommendOnlyOffersMatchingRoomKind(t *testing.T) {
	in := buildInput()
	recs := Recommend(in, "o2", domain.Practical, nil)
	require.NotEmpty(t, recs)
	for _, r := range recs {
		assert.Equal(t, "r2", r.RoomID)
	}
}

func TestRecommendUnknownOfferingReturnsNil(t *testing.T) {
	in := buildInput()
	recs := Recommend(in, "ghost", domain.Lecture, nil)
	assert.Nil(t, recs)
}

func TestRecommendExcludesOwnCurrentOccupancy(t *testing.T) {
	in := buildInput()
	current := []domain.Assignment{{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Kind: domain.Lecture}}

	recs := Recommend(in, "o1", domain.Lecture, current)
	require.NotEmpty(t, recs)

	found := false
	for _, r := range recs {
		if r.SlotID == "s1" && r.RoomID == "r1" {
			found = true
		}
	}
	assert.True(t, found, "offering's own current slot should remain a candidate when recommending for itself")
}

func TestRecommendMovesOnlyTheOccurrenceBeingMoved(t *testing.T) {
	in := buildInput()
	// o1 holds both a Lecture at s1 and (hypothetically) a Tutorial at
	// s2 - moving the Lecture occurrence must not free up or re-block
	// based on the offering as a whole, only the matching (id, kind).
	current := []domain.Assignment{
		{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Kind: domain.Lecture},
		{OfferingID: "o1", SlotID: "s2", RoomID: "r1", Kind: domain.Tutorial},
	}

	recs := Recommend(in, "o1", domain.Lecture, current)
	require.NotEmpty(t, recs)

	for _, r := range recs {
		assert.False(t, r.SlotID == "s2" && r.RoomID == "r1",
			"the offering's other occurrence at s2 must still block that slot/room")
	}
}
