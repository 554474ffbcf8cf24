package domain

import (
	"fmt"
	"regexp"
	"strings"
)

// DefaultMaxPerDay and DefaultMaxPerWeek back-fill a Teacher's caps when the
// input omits them, per spec §3.
const (
	DefaultMaxPerDay  = 3
	DefaultMaxPerWeek = 12
)

var availableSlotPattern = regexp.MustCompile(`^([01]\d|2[0-3]):[0-5]\d-([01]\d|2[0-3]):[0-5]\d$`)

// TeacherPrefs captures the recognized preference keys from spec §3. Any
// other key present in a raw input map is ignored rather than rejected.
type TeacherPrefs struct {
	Avoid8am       bool
	AvoidLate      bool
	PreferDays     []Day
	AvailableSlots []string
}

// Validate rejects available_slots entries that don't match the canonical
// "HH:MM-HH:MM" format (spec §9 Open Question — resolved as: reject
// alternates rather than attempt to normalize them).
func (p TeacherPrefs) Validate() error {
	for _, slot := range p.AvailableSlots {
		if !availableSlotPattern.MatchString(slot) {
			return fmt.Errorf("invalid available_slots entry %q: want HH:MM-HH:MM", slot)
		}
	}
	return nil
}

// MatchesAvailableSlot reports whether start-end (already "HH:MM-HH:MM")
// appears in the teacher's available_slots preference.
func (p TeacherPrefs) MatchesAvailableSlot(window string) bool {
	for _, s := range p.AvailableSlots {
		if s == window {
			return true
		}
	}
	return false
}

// PrefersDay reports whether prefer_days names day, or whether prefer_days
// is empty (no preference expressed).
func (p TeacherPrefs) PrefersDay(day Day) bool {
	if len(p.PreferDays) == 0 {
		return true
	}
	for _, d := range p.PreferDays {
		if d == day {
			return true
		}
	}
	return false
}

// Teacher is an instructor available to be assigned to offerings.
type Teacher struct {
	ID          string
	Code        string
	Name        string
	MaxPerDay   int
	MaxPerWeek  int
	Prefs       TeacherPrefs
}

// Normalize back-fills MaxPerDay/MaxPerWeek defaults. Called once while
// building a SolverInput's indices.
func (t *Teacher) Normalize() {
	if t.MaxPerDay <= 0 {
		t.MaxPerDay = DefaultMaxPerDay
	}
	if t.MaxPerWeek <= 0 {
		t.MaxPerWeek = DefaultMaxPerWeek
	}
}

// SlotWindow renders a slot's start-end as the canonical available_slots
// window string, e.g. "09:00-10:00".
func SlotWindow(start, end string) string {
	return strings.Join([]string{start, end}, "-")
}
