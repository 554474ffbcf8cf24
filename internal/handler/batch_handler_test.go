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

func newTestBatchHandler() *BatchHandler {
	solverSvc := service.NewSolverService(nil, nil, nil, nil, 2*time.Second, "greedy")
	return NewBatchHandler(solverSvc)
}

func TestBatchHandlerSolveRunsEveryProblem(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestBatchHandler()

	reqBody := batchRequest{Problems: []dto.SolveRequest{trivialSolveBody(), trivialSolveBody()}}
	body, err := json.Marshal(reqBody)
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/solve/batch", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Solve(c)
	assert.Equal(t, http.StatusOK, w.Code)

	var envelope struct {
		Data []batchResult `json:"data"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &envelope))
	require.Len(t, envelope.Data, 2)
	for _, r := range envelope.Data {
		assert.Empty(t, r.Error)
		require.NotNil(t, r.Response)
		assert.NotEmpty(t, r.Response.Assignments)
	}
}

func TestBatchHandlerSolveRejectsEmptyBatch(t *testing.T) {
	gin.SetMode(gin.TestMode)
	h := newTestBatchHandler()

	body, err := json.Marshal(batchRequest{Problems: nil})
	require.NoError(t, err)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/solve/batch", bytes.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")

	h.Solve(c)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}
