package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	apperrors "ledgerline/internal/errors"
	"ledgerline/internal/ledger"
	"ledgerline/internal/pagination"
	"ledgerline/internal/services"
)

// SnapshotHandler handles net worth snapshot requests.
type SnapshotHandler struct {
	snapshotService services.SnapshotServicer
}

// NewSnapshotHandler creates a new SnapshotHandler.
func NewSnapshotHandler(snapshotService services.SnapshotServicer) *SnapshotHandler {
	return &SnapshotHandler{snapshotService: snapshotService}
}

// ComputeSnapshotsRequest represents the request payload for computing snapshots.
// RecordedAt accepts YYYY-MM-DD or an RFC3339 timestamp and defaults to today.
type ComputeSnapshotsRequest struct {
	RecordedAt string `json:"recorded_at"`
}

// ComputeSnapshots handles computing and recording net worth snapshots.
// @Summary     Compute net worth snapshots
// @Description Compute and record net worth snapshots for all users (pipeline endpoint). Re-running for the same date overwrites it.
// @Tags        pipeline
// @Accept      json
// @Produce     json
// @Param       X-API-Key  header   string                   true "Pipeline API key"
// @Param       request    body     ComputeSnapshotsRequest  false "Snapshot parameters"
// @Success     200        {object} map[string]int           "Snapshots recorded count"
// @Failure     400        {object} ErrorResponse            "Invalid input"
// @Failure     401        {object} ErrorResponse            "Invalid API key"
// @Failure     503        {object} ErrorResponse            "Pipeline not configured"
// @Router      /pipeline/snapshots [post]
func (h *SnapshotHandler) ComputeSnapshots(c *gin.Context) {
	var req ComputeSnapshotsRequest
	if c.Request.ContentLength != 0 {
		if !bindJSON(c, &req) {
			return
		}
	}

	recordedAt := today()
	if req.RecordedAt != "" {
		parsed, err := ledger.NormalizeDate(req.RecordedAt)
		if err != nil {
			respondWithError(c, err)
			return
		}
		recordedAt = parsed
	}

	count, err := h.snapshotService.ComputeAndRecordSnapshots(recordedAt)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"snapshots_recorded": count, "recorded_at": recordedAt})
}

// GetSnapshots handles retrieving net worth snapshots for the authenticated user.
// @Summary     Get net worth snapshots
// @Description Get paginated net worth snapshots for a date range, newest first
// @Tags        snapshots
// @Accept      json
// @Produce     json
// @Security    BearerAuth
// @Param       from_date query string true  "Start date (YYYY-MM-DD)"
// @Param       to_date   query string true  "End date (YYYY-MM-DD)"
// @Param       page      query int    false "Page number (default 1)"
// @Param       page_size query int    false "Items per page (default 20, max 100)"
// @Success     200 {object} pagination.PageResponse[models.NetWorthSnapshot] "Paginated snapshots"
// @Failure     400 {object} ErrorResponse "Invalid input"
// @Failure     401 {object} ErrorResponse "Unauthorized"
// @Router      /snapshots [get]
func (h *SnapshotHandler) GetSnapshots(c *gin.Context) {
	userID, ok := requireUser(c)
	if !ok {
		return
	}

	from, err := parseDateQuery(c, "from_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if from == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "from_date is required"))
		return
	}

	to, err := parseDateQuery(c, "to_date")
	if err != nil {
		respondWithError(c, err)
		return
	}
	if to == nil {
		respondWithError(c, apperrors.WithMessage(apperrors.ErrInvalidInput, "to_date is required"))
		return
	}

	var page pagination.PageRequest
	if !bindQuery(c, &page) {
		return
	}

	result, err := h.snapshotService.GetSnapshots(userID, *from, *to, page)
	if err != nil {
		respondWithError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}
