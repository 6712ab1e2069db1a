package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"

	"ledgerline/internal/ledger"
	"ledgerline/internal/models"
	"ledgerline/internal/pagination"
	"ledgerline/internal/services"
)

// --- mock snapshot service ---

type mockSnapshotService struct {
	computeAndRecordSnapshotsFn func(recordedAt ledger.Date) (int, error)
	getSnapshotsFn              func(userID string, from, to ledger.Date, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error)
}

var _ services.SnapshotServicer = (*mockSnapshotService)(nil)

func (m *mockSnapshotService) ComputeAndRecordSnapshots(recordedAt ledger.Date) (int, error) {
	if m.computeAndRecordSnapshotsFn != nil {
		return m.computeAndRecordSnapshotsFn(recordedAt)
	}
	return 0, nil
}

func (m *mockSnapshotService) GetSnapshots(userID string, from, to ledger.Date, page pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
	if m.getSnapshotsFn != nil {
		return m.getSnapshotsFn(userID, from, to, page)
	}
	resp := pagination.NewPageResponse([]models.NetWorthSnapshot{}, 1, 20, 0)
	return &resp, nil
}

// --- router setup ---

func setupSnapshotRouter(handler *SnapshotHandler) *gin.Engine {
	r := gin.New()
	// Pipeline route (no user auth)
	r.POST("/pipeline/snapshots", handler.ComputeSnapshots)
	auth := r.Group("", injectUserID(testUserID))
	auth.GET("/snapshots", handler.GetSnapshots)
	return r
}

// --- tests ---

func TestSnapshotHandler_ComputeSnapshots(t *testing.T) {
	t.Run("returns_200_on_success", func(t *testing.T) {
		var captured ledger.Date
		svc := &mockSnapshotService{
			computeAndRecordSnapshotsFn: func(recordedAt ledger.Date) (int, error) {
				captured = recordedAt
				return 3, nil
			},
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doRequest(r, "POST", "/pipeline/snapshots", `{"recorded_at":"2026-02-09T12:00:00Z"}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		result := parseJSON(t, rec)
		if result["snapshots_recorded"].(float64) != 3 {
			t.Errorf("expected snapshots_recorded=3, got %v", result["snapshots_recorded"])
		}
		if captured.String() != "2026-02-09" {
			t.Errorf("expected 2026-02-09, got %s", captured)
		}
	})

	t.Run("defaults_to_today", func(t *testing.T) {
		var captured ledger.Date
		svc := &mockSnapshotService{
			computeAndRecordSnapshotsFn: func(recordedAt ledger.Date) (int, error) {
				captured = recordedAt
				return 0, nil
			},
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doRequest(r, "POST", "/pipeline/snapshots", `{}`)

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if captured.String() != "2024-03-15" {
			t.Errorf("expected 2024-03-15, got %s", captured)
		}
	})

	t.Run("returns_400_on_bad_date", func(t *testing.T) {
		r := setupSnapshotRouter(NewSnapshotHandler(&mockSnapshotService{}))

		rec := doRequest(r, "POST", "/pipeline/snapshots", `{"recorded_at":"09/02/2026"}`)

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_DATE")
	})

	t.Run("returns_500_on_service_error", func(t *testing.T) {
		svc := &mockSnapshotService{
			computeAndRecordSnapshotsFn: func(_ ledger.Date) (int, error) {
				return 0, fmt.Errorf("database error")
			},
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doRequest(r, "POST", "/pipeline/snapshots", `{"recorded_at":"2026-02-09"}`)

		if rec.Code != http.StatusInternalServerError {
			t.Fatalf("expected 500, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}

func TestSnapshotHandler_GetSnapshots(t *testing.T) {
	t.Run("returns_200_with_data", func(t *testing.T) {
		var capturedUser string
		var capturedFrom, capturedTo ledger.Date
		svc := &mockSnapshotService{
			getSnapshotsFn: func(userID string, from, to ledger.Date, _ pagination.PageRequest) (*pagination.PageResponse[models.NetWorthSnapshot], error) {
				capturedUser, capturedFrom, capturedTo = userID, from, to
				resp := pagination.NewPageResponse([]models.NetWorthSnapshot{
					{UserID: userID, RecordedAt: ledger.MustParseDate("2026-02-01"), NetWorth: 15500000, Assets: 16000000, Liabilities: 500000},
				}, 1, 20, 1)
				return &resp, nil
			},
		}
		r := setupSnapshotRouter(NewSnapshotHandler(svc))

		rec := doRequest(r, "GET", "/snapshots?from_date=2026-01-01&to_date=2026-12-31", "")

		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
		}
		if capturedUser != testUserID || capturedFrom.String() != "2026-01-01" || capturedTo.String() != "2026-12-31" {
			t.Errorf("unexpected arguments %s %s %s", capturedUser, capturedFrom, capturedTo)
		}
		data := parseJSON(t, rec)["data"].([]interface{})
		if len(data) != 1 {
			t.Fatalf("expected 1 snapshot, got %d", len(data))
		}
		snap := data[0].(map[string]interface{})
		if snap["net_worth"].(float64) != 15500000 {
			t.Errorf("expected net_worth=15500000, got %v", snap["net_worth"])
		}
	})

	t.Run("returns_400_missing_from_date", func(t *testing.T) {
		r := setupSnapshotRouter(NewSnapshotHandler(&mockSnapshotService{}))

		rec := doRequest(r, "GET", "/snapshots?to_date=2026-12-31", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
		assertErrorCode(t, parseJSON(t, rec), "INVALID_INPUT")
	})

	t.Run("returns_400_missing_to_date", func(t *testing.T) {
		r := setupSnapshotRouter(NewSnapshotHandler(&mockSnapshotService{}))

		rec := doRequest(r, "GET", "/snapshots?from_date=2026-01-01", "")

		if rec.Code != http.StatusBadRequest {
			t.Fatalf("expected 400, got %d: %s", rec.Code, rec.Body.String())
		}
	})

	t.Run("returns_401_without_auth", func(t *testing.T) {
		r := gin.New()
		r.GET("/snapshots", NewSnapshotHandler(&mockSnapshotService{}).GetSnapshots)

		rec := doRequest(r, "GET", "/snapshots?from_date=2026-01-01&to_date=2026-12-31", "")

		if rec.Code != http.StatusUnauthorized {
			t.Fatalf("expected 401, got %d: %s", rec.Code, rec.Body.String())
		}
	})
}
