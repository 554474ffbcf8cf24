package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iitkgp/timetable-solver/internal/dto"
	"github.com/iitkgp/timetable-solver/internal/service"
	appErrors "github.com/iitkgp/timetable-solver/pkg/errors"
	"github.com/iitkgp/timetable-solver/pkg/batch"
	"github.com/iitkgp/timetable-solver/pkg/response"
)

const batchWorkers = 4

// BatchHandler runs several independent solves concurrently through a
// bounded worker pool, for callers that need to try multiple terms or
// multiple strategies without issuing one HTTP round trip per problem
// (SPEC_FULL.md §5).
type BatchHandler struct {
	solver *service.SolverService
	pool   *batch.Pool
}

// NewBatchHandler constructs the batch handler.
func NewBatchHandler(solver *service.SolverService) *BatchHandler {
	return &BatchHandler{solver: solver, pool: batch.NewPool(batchWorkers)}
}

// batchRequest is the wire shape of a /solve/batch submission.
type batchRequest struct {
	Problems []dto.SolveRequest `json:"problems" binding:"required,min=1,dive"`
}

// batchResult pairs one problem's outcome with its index.
type batchResult struct {
	Index    int                `json:"index"`
	Response *dto.SolveResponse `json:"response,omitempty"`
	Error    string             `json:"error,omitempty"`
}

// Solve godoc
// @Summary Solve several independent problems concurrently
// @Tags solver
// @Accept json
// @Produce json
// @Param request body batchRequest true "problems to solve"
// @Success 200 {array} batchResult
// @Router /solve/batch [post]
func (h *BatchHandler) Solve(c *gin.Context) {
	var req batchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body"))
		return
	}
	if len(req.Problems) == 0 {
		response.Error(c, appErrors.Clone(appErrors.ErrValidation, "at least one problem is required"))
		return
	}

	ctx := c.Request.Context()
	tasks := make([]batch.Task, len(req.Problems))
	for i, problem := range req.Problems {
		problem := problem
		tasks[i] = func(taskCtx context.Context) (interface{}, error) {
			return h.solver.Solve(taskCtx, problem)
		}
	}

	outcomes := h.pool.Run(ctx, tasks)
	results := make([]batchResult, len(outcomes))
	for i, o := range outcomes {
		results[i] = batchResult{Index: o.Index}
		if o.Err != nil {
			results[i].Error = o.Err.Error()
			continue
		}
		if resp, ok := o.Value.(*dto.SolveResponse); ok {
			results[i].Response = resp
		}
	}

	response.JSON(c, http.StatusOK, results, nil)
}
