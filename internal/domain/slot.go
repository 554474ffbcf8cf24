package domain

// Slot is a named time window on a day, optionally a lab slot belonging to
// a cluster of slots that must be allocated atomically (spec §3, §GLOSSARY).
type Slot struct {
	ID        string
	Code      string
	Occ       int
	Day       Day
	StartTime string
	EndTime   string
	IsLab     bool
	Cluster   string
}

// Window renders the slot's "HH:MM-HH:MM" representation for matching
// against a teacher's available_slots preference.
func (s Slot) Window() string {
	return SlotWindow(s.StartTime, s.EndTime)
}

// Is8am reports whether the slot begins at exactly 08:00.
func (s Slot) Is8am() bool {
	return s.StartTime == "08:00"
}

// IsLateStart reports whether the slot begins at or after 17:00. Time
// strings are HH:MM 24h, so lexicographic comparison is valid (spec §6).
func (s Slot) IsLateStart() bool {
	return s.StartTime >= "17:00"
}

// HasCluster reports whether the slot belongs to a lab cluster.
func (s Slot) HasCluster() bool {
	return s.Cluster != ""
}
