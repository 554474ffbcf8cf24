package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/iitkgp/timetable-solver/internal/audit"
	"github.com/iitkgp/timetable-solver/internal/export"
	pkgstorage "github.com/iitkgp/timetable-solver/pkg/storage"
	"github.com/iitkgp/timetable-solver/pkg/response"
)

// ExportHandler renders a persisted solve run as CSV/PDF and mints
// signed download tokens for the rendered files, grounded on the
// teacher's reports/archives download flow (pkg/storage.SignedURLSigner
// + LocalStorage) repurposed onto audit.SolveRun rows (SPEC_FULL.md §8).
type ExportHandler struct {
	auditRepo *audit.Repository
	storage   *pkgstorage.LocalStorage
	signer    *pkgstorage.SignedURLSigner
}

// NewExportHandler constructs the export handler.
func NewExportHandler(auditRepo *audit.Repository, storage *pkgstorage.LocalStorage, signer *pkgstorage.SignedURLSigner) *ExportHandler {
	return &ExportHandler{auditRepo: auditRepo, storage: storage, signer: signer}
}

// CSV godoc
// @Summary Export a solve run's assignments as CSV
// @Tags export
// @Produce text/csv
// @Param runId path string true "solve run ID"
// @Success 200 {file} file
// @Router /schedules/{runId}/export.csv [get]
func (h *ExportHandler) CSV(c *gin.Context) {
	runID := c.Param("runId")
	records, err := h.auditRepo.ListAssignments(c.Request.Context(), runID)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := export.CSV(records)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+runID+".csv\"")
	c.Data(http.StatusOK, "text/csv", payload)
}

// PDF godoc
// @Summary Export a solve run's assignments as PDF
// @Tags export
// @Produce application/pdf
// @Param runId path string true "solve run ID"
// @Success 200 {file} file
// @Router /schedules/{runId}/export.pdf [get]
func (h *ExportHandler) PDF(c *gin.Context) {
	runID := c.Param("runId")
	records, err := h.auditRepo.ListAssignments(c.Request.Context(), runID)
	if err != nil {
		response.Error(c, err)
		return
	}
	payload, err := export.PDF(runID, records)
	if err != nil {
		response.Error(c, err)
		return
	}
	c.Header("Content-Disposition", "attachment; filename=\""+runID+".pdf\"")
	c.Data(http.StatusOK, "application/pdf", payload)
}

// SignedDownloadURL godoc
// @Summary Mint a time-limited signed download token for a rendered export
// @Tags export
// @Produce json
// @Param runId path string true "solve run ID"
// @Param format query string true "csv or pdf"
// @Success 200 {object} map[string]string
// @Router /schedules/{runId}/export-url [get]
func (h *ExportHandler) SignedDownloadURL(c *gin.Context) {
	runID := c.Param("runId")
	format := c.DefaultQuery("format", "csv")

	records, err := h.auditRepo.ListAssignments(c.Request.Context(), runID)
	if err != nil {
		response.Error(c, err)
		return
	}

	var (
		payload  []byte
		filename string
	)
	switch format {
	case "pdf":
		payload, err = export.PDF(runID, records)
		filename = runID + ".pdf"
	default:
		payload, err = export.CSV(records)
		filename = runID + ".csv"
	}
	if err != nil {
		response.Error(c, err)
		return
	}

	if _, err := h.storage.Save(filename, payload); err != nil {
		response.Error(c, err)
		return
	}

	token, expiresAt, err := h.signer.Generate(runID, filename)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"token":      token,
		"expires_at": expiresAt.Format(time.RFC3339),
	})
}

