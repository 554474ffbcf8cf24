package export

import (
	"bytes"
	"encoding/csv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitkgp/timetable-solver/internal/audit"
)

func sampleRecords() []audit.SolveAssignmentRecord {
	return []audit.SolveAssignmentRecord{
		{RunID: "run1", OfferingID: "o1", SlotID: "s1", RoomID: "r1", Locked: true},
		{RunID: "run1", OfferingID: "o2", SlotID: "s2", RoomID: "r2", Locked: false},
	}
}

func TestDatasetBuildsOneRowPerRecord(t *testing.T) {
	ds := Dataset(sampleRecords())
	assert.Equal(t, Headers, ds.Headers)
	require.Len(t, ds.Rows, 2)
	assert.Equal(t, "o1", ds.Rows[0]["offering_id"])
	assert.Equal(t, "true", ds.Rows[0]["locked"])
	assert.Equal(t, "false", ds.Rows[1]["locked"])
}

func TestCSVRendersHeaderAndRows(t *testing.T) {
	out, err := CSV(sampleRecords())
	require.NoError(t, err)

	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, Headers, rows[0])
	assert.Equal(t, "o1", rows[1][0])
}

func TestPDFRendersNonEmptyDocument(t *testing.T) {
	out, err := PDF("run1", sampleRecords())
	require.NoError(t, err)
	assert.NotEmpty(t, out)
	assert.True(t, bytes.HasPrefix(out, []byte("%PDF")))
}

func TestCSVWithNoRecordsStillHasHeader(t *testing.T) {
	out, err := CSV(nil)
	require.NoError(t, err)
	rows, err := csv.NewReader(bytes.NewReader(out)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Equal(t, Headers, rows[0])
}
