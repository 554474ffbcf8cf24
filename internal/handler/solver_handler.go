package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/iitkgp/timetable-solver/internal/dto"
	"github.com/iitkgp/timetable-solver/internal/service"
	appErrors "github.com/iitkgp/timetable-solver/pkg/errors"
	"github.com/iitkgp/timetable-solver/pkg/response"
)

// SolverHandler exposes the scheduling engine over HTTP: solve,
// reoptimize, validate, and recommendations, mirroring the teacher's
// thin-handler-delegates-to-service shape.
type SolverHandler struct {
	solver  *service.SolverService
	validation *service.ValidationService
	recommendation *service.RecommendationService
}

// NewSolverHandler constructs the solver handler.
func NewSolverHandler(solver *service.SolverService, validation *service.ValidationService, recommendation *service.RecommendationService) *SolverHandler {
	return &SolverHandler{solver: solver, validation: validation, recommendation: recommendation}
}

// Solve godoc
// @Summary Run the timetable solver
// @Tags solver
// @Accept json
// @Produce json
// @Param request body dto.SolveRequest true "scheduling problem"
// @Success 200 {object} dto.SolveResponse
// @Router /solve [post]
func (h *SolverHandler) Solve(c *gin.Context) {
	var req dto.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body"))
		return
	}

	resp, err := h.solver.Solve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Reoptimize godoc
// @Summary Re-solve a problem with existing assignments locked
// @Tags solver
// @Accept json
// @Produce json
// @Param request body dto.SolveRequest true "scheduling problem with locked assignments"
// @Success 200 {object} dto.SolveResponse
// @Router /reoptimize [post]
func (h *SolverHandler) Reoptimize(c *gin.Context) {
	var req dto.SolveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body"))
		return
	}

	resp, err := h.solver.Reoptimize(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Validate godoc
// @Summary Audit an assignment set for conflicts and warnings
// @Tags solver
// @Accept json
// @Produce json
// @Param request body dto.ValidateRequest true "problem and assignments"
// @Success 200 {object} dto.ValidateResponse
// @Router /validate [post]
func (h *SolverHandler) Validate(c *gin.Context) {
	var req dto.ValidateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body"))
		return
	}

	resp, err := h.validation.Validate(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}

// Recommendations godoc
// @Summary Rank candidate placements for one offering occurrence
// @Tags solver
// @Accept json
// @Produce json
// @Param request body dto.RecommendRequest true "problem, offering, and current assignments"
// @Success 200 {object} dto.RecommendResponse
// @Router /recommendations [post]
func (h *SolverHandler) Recommendations(c *gin.Context) {
	var req dto.RecommendRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "malformed request body"))
		return
	}

	resp, err := h.recommendation.Recommend(req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
