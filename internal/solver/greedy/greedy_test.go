package greedy

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitkgp/timetable-solver/internal/domain"
)

func smallFeasibleInput() *domain.SolverInput {
	return &domain.SolverInput{
		Teachers: []domain.Teacher{{ID: "t1", MaxPerDay: 5, MaxPerWeek: 20}},
		Rooms:    []domain.Room{{ID: "r1", Capacity: 60, Kind: domain.RoomClass}},
		Slots: []domain.Slot{
			{ID: "s1", Day: domain.Monday, StartTime: "09:00", EndTime: "10:00"},
			{ID: "s2", Day: domain.Monday, StartTime: "10:00", EndTime: "11:00"},
		},
		Courses:   []domain.Course{{ID: "c1", LecturesWeek: 2}},
		Sections:  []domain.Section{{ID: "sec1", CourseID: "c1", ExpectedSize: 40}},
		Offerings: []domain.Offering{{ID: "o1", CourseID: "c1", SectionID: "sec1", TeacherID: "t1"}},
		Availability: []domain.Availability{
			{TeacherID: "t1", SlotID: "s1"},
			{TeacherID: "t1", SlotID: "s2"},
		},
	}
}

func TestGreedySolvePlacesAllOccurrencesWhenFeasible(t *testing.T) {
	in := smallFeasibleInput()
	out := Solve(context.Background(), in)

	assert.Equal(t, domain.StatusOptimal, out.Status)
	assert.Len(t, out.Assignments, 2)
	assert.Empty(t, out.Skipped)
}

func TestGreedySolveReportsFeasibleWithSkipsWhenNoRoomFits(t *testing.T) {
	in := smallFeasibleInput()
	in.Rooms[0].Capacity = 5 // too small for the 40-seat section
	out := Solve(context.Background(), in)

	assert.Equal(t, domain.StatusFeasible, out.Status)
	require.Len(t, out.Skipped, 2)
	assert.Empty(t, out.Assignments)
}

func TestGreedySolveRespectsLockedAssignments(t *testing.T) {
	in := smallFeasibleInput()
	in.Locked = []domain.Assignment{{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Kind: domain.Lecture}}
	out := Solve(context.Background(), in)

	found := false
	for _, a := range out.Assignments {
		if a.SlotID == "s1" && a.RoomID == "r1" {
			found = true
		}
	}
	assert.True(t, found)
}

func TestGreedySolveExpandsLabClusterIntoOneAssignmentPerSlot(t *testing.T) {
	in := &domain.SolverInput{
		Teachers: []domain.Teacher{{ID: "t1", MaxPerDay: 5, MaxPerWeek: 20}},
		Rooms:    []domain.Room{{ID: "lab1", Capacity: 30, Kind: domain.RoomLab}},
		Slots: []domain.Slot{
			{ID: "s1", Day: domain.Tuesday, StartTime: "11:00", EndTime: "12:00", IsLab: true, Cluster: "lab-a"},
			{ID: "s2", Day: domain.Tuesday, StartTime: "12:00", EndTime: "13:00", IsLab: true, Cluster: "lab-a"},
		},
		Courses:   []domain.Course{{ID: "c1", PracticalsWeek: 1}},
		Sections:  []domain.Section{{ID: "sec1", CourseID: "c1", ExpectedSize: 20}},
		Offerings: []domain.Offering{{ID: "o1", CourseID: "c1", SectionID: "sec1", TeacherID: "t1"}},
		Availability: []domain.Availability{
			{TeacherID: "t1", SlotID: "s1"},
			{TeacherID: "t1", SlotID: "s2"},
		},
	}

	out := Solve(context.Background(), in)
	assert.Equal(t, domain.StatusOptimal, out.Status)
	require.Len(t, out.Assignments, 2)
	seen := map[string]bool{}
	for _, a := range out.Assignments {
		seen[a.SlotID] = true
		assert.Equal(t, "lab1", a.RoomID)
	}
	assert.True(t, seen["s1"] && seen["s2"])
}

func TestGreedySolveHonoursContextCancellation(t *testing.T) {
	in := smallFeasibleInput()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	out := Solve(ctx, in)
	assert.Equal(t, domain.StatusPartial, out.Status)
}
