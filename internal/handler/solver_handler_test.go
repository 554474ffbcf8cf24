package handler

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/iitkgp/timetable-solver/internal/dto"
	"github.com/iitkgp/timetable-solver/internal/service"
)

func trivialSolveBody() dto.SolveRequest {
	return dto.SolveRequest{
		TermID:       "2026-1",
		Strategy:     "greedy",
		Teachers:     []dto.TeacherInput{{ID: "t1", MaxPerDay: 5, MaxPerWeek: 20}},
		Rooms:        []dto.RoomInput{{ID: "r1", Capacity: 60, Kind: "CLASS"}},
		Slots:        []dto.SlotInput{{ID: "s1", Day: "MON", StartTime: "09:00", EndTime: "10:00"}},
		Courses:      []dto.CourseInput{{ID: "c1", LecturesWeek: 1}},
		Sections:     []dto.SectionInput{{ID: "sec1", CourseID: "c1", ExpectedSize: 40}},
		Offerings:    []dto.OfferingInput{{ID: "o1", CourseID: "c1", SectionID: "sec1", TeacherID: "t1"}},
		Availability: []dto.AvailabilityInput{{TeacherID: "t1", SlotID: "s1"}},
	}
}

func newTestSolverHandler() *SolverHandler {
	solverSvc := service.NewSolverService(nil, nil, nil, nil, 2*time.Second, "greedy")
	return NewSolverHandler(solverSvc, service.NewValidationService(), service.NewRecommendationService())
}

func TestSolverHandlerSolveReturnsAssignments(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSolverHandler()

	body, err := json.Marshal(trivialSolveBody())
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Solve(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "o1")
}

func TestSolverHandlerSolveRejectsMalformedBody(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSolverHandler()

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/solve", bytes.NewReader([]byte("{not json")))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Solve(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSolverHandlerValidateReportsOK(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSolverHandler()

	reqBody := dto.ValidateRequest{
		Problem:     trivialSolveBody(),
		Assignments: []dto.AssignmentInput{{OfferingID: "o1", SlotID: "s1", RoomID: "r1", Kind: "L"}},
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/validate", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Validate(c)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"ok":true`)
}

func TestSolverHandlerRecommendationsReturnsList(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestSolverHandler()

	reqBody := dto.RecommendRequest{
		Problem:    trivialSolveBody(),
		OfferingID: "o1",
		Kind:       "L",
	}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/recommendations", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Recommendations(c)
	assert.Equal(t, http.StatusOK, w.Code)
}
