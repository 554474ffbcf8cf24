package scoring

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/iitkgp/timetable-solver/internal/domain"
)

func sampleOffering(avoid8am bool) *domain.Offering {
	return &domain.Offering{
		ID: "o1", SectionID: "sec1",
		Teacher: &domain.Teacher{
			ID: "t1", MaxPerDay: 4, MaxPerWeek: 10,
			Prefs: domain.TeacherPrefs{Avoid8am: avoid8am},
		},
		Section: &domain.Section{ExpectedSize: 40},
		Course:  &domain.Course{RoomTags: map[string]struct{}{"smart": {}}},
	}
}

func emptyRuntimeState() *domain.RuntimeState {
	return &domain.RuntimeState{TeacherDayCount: map[string]map[domain.Day]int{}, TeacherWeekCount: map[string]int{}}
}

func TestPlacementScoreMatchesSpecFormulaAt8am(t *testing.T) {
	rs := emptyRuntimeState()
	o := sampleOffering(true)
	slot8am := &domain.Slot{StartTime: "08:00", Day: domain.Monday}
	slot9am := &domain.Slot{StartTime: "09:00", Day: domain.Monday}
	room := &domain.Room{Capacity: 40, Tags: map[string]struct{}{"smart": {}}}

	// base 100, -20 8am, +15 fresh day, +10 tag bonus, 0 oversize = 105
	scoreAt8 := PlacementScore(rs, o, slot8am, room)
	assert.Equal(t, 105.0, scoreAt8)

	// base 100, no 8am penalty, +15 fresh day, +10 tag bonus, 0 oversize = 125
	scoreAt9 := PlacementScore(rs, o, slot9am, room)
	assert.Equal(t, 125.0, scoreAt9)
	assert.Less(t, scoreAt8, scoreAt9)
}

func TestPlacementScoreRewardsAvailableSlotMatch(t *testing.T) {
	rs := emptyRuntimeState()
	o := sampleOffering(false)
	o.Teacher.Prefs.AvailableSlots = []string{"09:00-10:00"}
	slot := &domain.Slot{StartTime: "09:00", EndTime: "10:00", Day: domain.Monday}
	room := &domain.Room{Capacity: 40, Tags: map[string]struct{}{"smart": {}}}

	// base 100, +30 available_slots match, +15 fresh day, +10 tag, 0 oversize = 155
	assert.Equal(t, 155.0, PlacementScore(rs, o, slot, room))
}

func TestPlacementScorePenalizesRepeatedDay(t *testing.T) {
	rs := emptyRuntimeState()
	o := sampleOffering(false)
	slot := &domain.Slot{StartTime: "09:00", Day: domain.Monday}
	room := &domain.Room{Capacity: 40, Tags: map[string]struct{}{"smart": {}}}

	rs.TeacherDayCount["t1"] = map[domain.Day]int{domain.Monday: 1}

	// base 100, -5 day already used, +10 tag, 0 oversize = 105
	assert.Equal(t, 105.0, PlacementScore(rs, o, slot, room))
}

func TestPlacementScoreCapacityRatioBuckets(t *testing.T) {
	rs := emptyRuntimeState()
	o := sampleOffering(false)
	slot := &domain.Slot{StartTime: "09:00", Day: domain.Monday}

	wellFit := &domain.Room{Capacity: 50, Tags: map[string]struct{}{"smart": {}}} // ratio 0.8
	thin := &domain.Room{Capacity: 100, Tags: map[string]struct{}{"smart": {}}}  // ratio 0.4

	// base 100, +15 fresh day, +20 capacity fit [0.7,0.9], +10 tag, -0.1*(50-40)=-1 = 144
	assert.Equal(t, 144.0, PlacementScore(rs, o, slot, wellFit))

	// base 100, +15 fresh day, -15 capacity thin (<0.5), +10 tag, -0.1*(100-40)=-6 = 104
	assert.Equal(t, 104.0, PlacementScore(rs, o, slot, thin))
}

func TestPlacementScorePenalizesSectionDayCrowding(t *testing.T) {
	rs := emptyRuntimeState()
	o := sampleOffering(false)
	slot := &domain.Slot{StartTime: "09:00", Day: domain.Monday}
	room := &domain.Room{Capacity: 40, Tags: map[string]struct{}{"smart": {}}}

	other := &domain.Offering{SectionID: "sec1"}
	for i := 0; i < 5; i++ {
		rs.Assignments = append(rs.Assignments, domain.Assignment{
			Offering: other, Slot: &domain.Slot{Day: domain.Monday},
		})
	}

	// base 100, +15 fresh day, -25 section_day_count>4, +10 tag, 0 oversize = 100
	assert.Equal(t, 100.0, PlacementScore(rs, o, slot, room))
}

func TestPlacementScorePenalizesTagMismatch(t *testing.T) {
	rs := emptyRuntimeState()
	o := sampleOffering(false)
	slot := &domain.Slot{StartTime: "10:00", Day: domain.Monday}
	fittingRoom := &domain.Room{Capacity: 40, Tags: map[string]struct{}{"smart": {}}}
	mismatchedRoom := &domain.Room{Capacity: 40, Tags: nil}

	scoreFitting := PlacementScore(rs, o, slot, fittingRoom)
	scoreMismatched := PlacementScore(rs, o, slot, mismatchedRoom)
	assert.Equal(t, 125.0, scoreFitting)
	assert.Equal(t, 115.0, scoreMismatched)
	assert.Greater(t, scoreFitting, scoreMismatched)
}

func TestGapPenalty(t *testing.T) {
	assert.Equal(t, WeightGap, GapPenalty(true))
	assert.Equal(t, 0.0, GapPenalty(false))
}

func TestLoadPenaltyOnlyAboveHalfCapacity(t *testing.T) {
	assert.Equal(t, 0.0, LoadPenalty(1, 4, 1, 10))
	assert.Greater(t, LoadPenalty(3, 4, 1, 10), 0.0)
	assert.Greater(t, LoadPenalty(1, 4, 6, 10), 0.0)
}

func TestRecommendationPenaltyReportsReasons(t *testing.T) {
	o := sampleOffering(true)
	slot := &domain.Slot{StartTime: "08:00", Day: domain.Monday}
	room := &domain.Room{Capacity: 40, Tags: map[string]struct{}{"smart": {}}}

	// +10 avoid_8am, +3 capacity_ratio>0.9 (40/40=1.0) = 13
	score, reasons := RecommendationPenalty(nil, o, slot, room)
	assert.Equal(t, 13.0, score)
	assert.Contains(t, reasons, "teacher prefers to avoid 8am slots")
	assert.Contains(t, reasons, "room is a tight fit for the expected size")
}

func TestRecommendationPenaltyFlagsOversizedRoom(t *testing.T) {
	o := sampleOffering(false)
	slot := &domain.Slot{StartTime: "10:00", Day: domain.Monday}
	room := &domain.Room{Capacity: 200, Tags: map[string]struct{}{"smart": {}}}

	// +5 capacity_ratio<0.5 (40/200=0.2) = 5
	score, reasons := RecommendationPenalty(nil, o, slot, room)
	assert.Equal(t, 5.0, score)
	assert.Contains(t, reasons, "room is much larger than needed")
}

func TestRecommendationPenaltyFlagsPreferDaysOnlyWhenSet(t *testing.T) {
	o := sampleOffering(false)
	o.Teacher.Prefs.PreferDays = []domain.Day{domain.Tuesday}
	slot := &domain.Slot{StartTime: "10:00", Day: domain.Monday}
	room := &domain.Room{Capacity: 50, Tags: map[string]struct{}{"smart": {}}}

	// +5 prefer_days non-empty and day not in it; ratio 40/50=0.8, no bucket
	score, reasons := RecommendationPenalty(nil, o, slot, room)
	assert.Equal(t, 5.0, score)
	assert.Contains(t, reasons, "day is outside teacher's preferred days")
}
