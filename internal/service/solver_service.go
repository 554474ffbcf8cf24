package service

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx/types"
	"go.uber.org/zap"

	"github.com/iitkgp/timetable-solver/internal/audit"
	"github.com/iitkgp/timetable-solver/internal/domain"
	"github.com/iitkgp/timetable-solver/internal/dto"
	"github.com/iitkgp/timetable-solver/internal/recommend"
	"github.com/iitkgp/timetable-solver/internal/solver/exact"
	"github.com/iitkgp/timetable-solver/internal/solver/greedy"
	"github.com/iitkgp/timetable-solver/internal/validate"
	appErrors "github.com/iitkgp/timetable-solver/pkg/errors"
	"github.com/go-playground/validator/v10"
)

// SolverService runs the scheduling engine against a validated problem,
// optionally memoizing results in Redis and always recording a summary
// of the finished run to the audit trail — grounded on the teacher's
// AnalyticsService (cache-then-repo-then-cache-fill shape) but driving
// the exact/greedy solvers instead of a SQL aggregation.
type SolverService struct {
	validate        *validator.Validate
	cache           *CacheService
	metrics         *MetricsService
	audit           *audit.Repository
	logger          *zap.Logger
	solveBudget     time.Duration
	defaultStrategy string
}

// NewSolverService constructs the solver service. auditRepo and cache may
// be nil, in which case persistence/memoization are silently skipped.
func NewSolverService(cache *CacheService, metrics *MetricsService, auditRepo *audit.Repository, logger *zap.Logger, solveBudget time.Duration, defaultStrategy string) *SolverService {
	if solveBudget <= 0 {
		solveBudget = 30 * time.Second
	}
	if defaultStrategy == "" {
		defaultStrategy = "exact"
	}
	return &SolverService{
		validate:        dto.NewValidator(),
		cache:           cache,
		metrics:         metrics,
		audit:           auditRepo,
		logger:          logger,
		solveBudget:     solveBudget,
		defaultStrategy: defaultStrategy,
	}
}

// Solve validates req, runs the requested strategy (falling back to the
// configured default), persists an audit record, and returns the wire
// response. A structurally infeasible problem is not an error: it comes
// back as a 200-shaped SolveResponse with Status INFEASIBLE and Skipped
// populated (spec §7).
func (s *SolverService) Solve(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid solve request")
	}
	if req.Strategy == "" {
		req.Strategy = s.defaultStrategy
	}

	cacheKey, cacheable := s.cacheKey(req)
	if cacheable {
		var cached dto.SolveResponse
		if hit, err := s.cache.Get(ctx, cacheKey, &cached); err == nil && hit {
			return &cached, nil
		}
	}

	in := req.ToDomain()

	start := time.Now()
	solveCtx, cancel := context.WithTimeout(ctx, s.solveBudget)
	defer cancel()

	var out domain.SolverOutput
	switch req.Strategy {
	case "greedy":
		out = greedy.Solve(solveCtx, in)
	default:
		out = exact.Solve(solveCtx, in)
	}
	out.ElapsedMS = time.Since(start).Milliseconds()

	resp := dto.FromSolverOutput(out)
	s.persistRun(ctx, req, out)

	if cacheable {
		if err := s.cache.Set(ctx, cacheKey, resp, 0); err != nil && s.logger != nil {
			s.logger.Warn("cache solve result", zap.Error(err))
		}
	}

	return &resp, nil
}

// Reoptimize re-solves the full problem with req.Locked pre-populated,
// i.e. a fresh solve rather than an incremental repair (spec §6: full
// re-solve, not incremental).
func (s *SolverService) Reoptimize(ctx context.Context, req dto.SolveRequest) (*dto.SolveResponse, error) {
	return s.Solve(ctx, req)
}

func (s *SolverService) persistRun(ctx context.Context, req dto.SolveRequest, out domain.SolverOutput) {
	if s.audit == nil {
		return
	}
	skippedJSON, err := json.Marshal(out.Skipped)
	if err != nil {
		skippedJSON = []byte(`[]`)
	}
	run := &audit.SolveRun{
		ID:          uuid.NewString(),
		TermID:      req.TermID,
		Strategy:    req.Strategy,
		Status:      audit.RunStatus(out.Status),
		Penalty:     out.Penalty,
		ElapsedMS:   out.ElapsedMS,
		SkippedMeta: types.JSONText(skippedJSON),
	}
	if err := s.audit.CreateRun(ctx, nil, run); err != nil {
		if s.logger != nil {
			s.logger.Warn("persist solve run", zap.Error(err))
		}
		return
	}

	if len(out.Assignments) == 0 {
		return
	}
	records := make([]audit.SolveAssignmentRecord, len(out.Assignments))
	for i, a := range out.Assignments {
		records[i] = audit.SolveAssignmentRecord{
			RunID:      run.ID,
			OfferingID: a.OfferingID,
			SlotID:     a.SlotID,
			RoomID:     a.RoomID,
			Locked:     a.Locked,
		}
	}
	if err := s.audit.InsertAssignments(ctx, nil, records); err != nil && s.logger != nil {
		s.logger.Warn("persist solve assignments", zap.Error(err))
	}
}

// cacheKey derives a stable SHA-256 digest of the canonical JSON
// encoding of req so identical problems (same strategy and rows) hit
// the same memoized result, per spec §2's "stable input hash" note.
func (s *SolverService) cacheKey(req dto.SolveRequest) (string, bool) {
	if s.cache == nil || !s.cache.Enabled() {
		return "", false
	}
	payload, err := json.Marshal(req)
	if err != nil {
		return "", false
	}
	sum := sha256.Sum256(payload)
	return fmt.Sprintf("solve:%s", hex.EncodeToString(sum[:])), true
}

// ValidationService audits an assignment set against a problem without
// attempting to fix it.
type ValidationService struct {
	validate *validator.Validate
}

// NewValidationService constructs the validation service.
func NewValidationService() *ValidationService {
	return &ValidationService{validate: dto.NewValidator()}
}

// Validate runs internal/validate.Validate against req.
func (s *ValidationService) Validate(req dto.ValidateRequest) (*dto.ValidateResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid validate request")
	}
	in := req.Problem.ToDomain()
	result := validate.Validate(in, dto.ToDomainAssignments(req.Assignments))
	resp := dto.FromValidationResult(result)
	return &resp, nil
}

// RecommendationService ranks candidate placements for one offering.
type RecommendationService struct {
	validate *validator.Validate
}

// NewRecommendationService constructs the recommendation service.
func NewRecommendationService() *RecommendationService {
	return &RecommendationService{validate: dto.NewValidator()}
}

// Recommend runs internal/recommend.Recommend against req.
func (s *RecommendationService) Recommend(req dto.RecommendRequest) (*dto.RecommendResponse, error) {
	if err := s.validate.Struct(req); err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid recommendation request")
	}
	in := req.Problem.ToDomain()
	recs := recommend.Recommend(in, req.OfferingID, domain.SessionKind(req.Kind), dto.ToDomainAssignments(req.Assignments))
	resp := dto.FromRecommendations(recs)
	return &resp, nil
}
