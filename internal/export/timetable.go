// Package export renders a persisted solve run into downloadable
// timetable formats, adapting pkg/export's generic Dataset renderers
// onto internal/audit's run/assignment rows.
package export

import (
	"fmt"

	"github.com/iitkgp/timetable-solver/internal/audit"
	pkgexport "github.com/iitkgp/timetable-solver/pkg/export"
)

// Headers for the rendered timetable table.
var Headers = []string{"offering_id", "slot_id", "room_id", "locked"}

// Dataset builds a pkg/export.Dataset from a run's recorded assignments.
func Dataset(records []audit.SolveAssignmentRecord) pkgexport.Dataset {
	rows := make([]map[string]string, len(records))
	for i, r := range records {
		rows[i] = map[string]string{
			"offering_id": r.OfferingID,
			"slot_id":     r.SlotID,
			"room_id":     r.RoomID,
			"locked":      fmt.Sprintf("%t", r.Locked),
		}
	}
	return pkgexport.Dataset{Headers: Headers, Rows: rows}
}

// CSV renders a run's assignments as CSV bytes.
func CSV(records []audit.SolveAssignmentRecord) ([]byte, error) {
	return pkgexport.NewCSVExporter().Render(Dataset(records))
}

// PDF renders a run's assignments as a PDF table titled with the run ID.
func PDF(runID string, records []audit.SolveAssignmentRecord) ([]byte, error) {
	return pkgexport.NewPDFExporter().Render(Dataset(records), fmt.Sprintf("timetable %s", runID))
}
