package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleOffering() *Offering {
	return &Offering{ID: "o1", TeacherID: "t1", SectionID: "sec1"}
}

func TestRuntimeStatePlaceMarksBusyAndCounts(t *testing.T) {
	in := buildSampleInput()
	in.Normalize()
	rs := NewRuntimeState(in)
	o := sampleOffering()

	a := Assignment{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Offering: o}
	rs.Place(a, Monday)

	assert.True(t, rs.IsTeacherBusy("t1", "s1"))
	assert.True(t, rs.IsRoomBusy("r1", "s1"))
	assert.True(t, rs.IsSectionBusy("sec1", "s1"))
	assert.Equal(t, 1, rs.TeacherDayCount["t1"][Monday])
	assert.Equal(t, 1, rs.TeacherWeekCount["t1"])
	require.Len(t, rs.Assignments, 1)
}

func TestRuntimeStateUnplaceReversesPlace(t *testing.T) {
	in := buildSampleInput()
	in.Normalize()
	rs := NewRuntimeState(in)
	o := sampleOffering()

	a := Assignment{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Offering: o}
	rs.Place(a, Monday)
	rs.Unplace(a, Monday)

	assert.False(t, rs.IsTeacherBusy("t1", "s1"))
	assert.False(t, rs.IsRoomBusy("r1", "s1"))
	assert.False(t, rs.IsSectionBusy("sec1", "s1"))
	assert.Equal(t, 0, rs.TeacherDayCount["t1"][Monday])
	assert.Equal(t, 0, rs.TeacherWeekCount["t1"])
	assert.Empty(t, rs.Assignments)
}

func TestAssignmentKeyAndProxies(t *testing.T) {
	unhydrated := Assignment{OfferingID: "o1", SlotID: "s1"}
	assert.Equal(t, "o1@s1", unhydrated.Key())
	assert.Empty(t, unhydrated.TeacherID())
	assert.Empty(t, unhydrated.SectionID())

	hydrated := Assignment{OfferingID: "o1", SlotID: "s1", Offering: sampleOffering()}
	assert.Equal(t, "t1", hydrated.TeacherID())
	assert.Equal(t, "sec1", hydrated.SectionID())
}
