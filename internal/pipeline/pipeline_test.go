package pipeline

import (
	"context"
	"errors"
	"testing"

	"go.uber.org/zap"

	"ledgerline/internal/client"
)

// mockAPI implements API for testing.
type mockAPI struct {
	realizeDueFn       func(ctx context.Context, today string) (*client.RealizeResult, error)
	computeSnapshotsFn func(ctx context.Context, recordedAt string) (*client.SnapshotResult, error)
}

func (m *mockAPI) RealizeDue(ctx context.Context, today string) (*client.RealizeResult, error) {
	return m.realizeDueFn(ctx, today)
}

func (m *mockAPI) ComputeSnapshots(ctx context.Context, recordedAt string) (*client.SnapshotResult, error) {
	return m.computeSnapshotsFn(ctx, recordedAt)
}

var _ API = (*client.Client)(nil)

func newRunner(api API) *Runner {
	return NewRunner(api, zap.NewNop().Sugar())
}

func TestRun_RealizesThenSnapshots(t *testing.T) {
	var calls []string
	api := &mockAPI{
		realizeDueFn: func(_ context.Context, today string) (*client.RealizeResult, error) {
			calls = append(calls, "realize")
			if today != "" {
				t.Errorf("expected empty date, got %q", today)
			}
			return &client.RealizeResult{Templates: 3, Created: 5, Today: "2024-03-15"}, nil
		},
		computeSnapshotsFn: func(_ context.Context, recordedAt string) (*client.SnapshotResult, error) {
			calls = append(calls, "snapshots")
			if recordedAt != "2024-03-15" {
				t.Errorf("expected snapshots for the server's date, got %q", recordedAt)
			}
			return &client.SnapshotResult{SnapshotsRecorded: 2, RecordedAt: recordedAt}, nil
		},
	}

	result, err := newRunner(api).Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(calls) != 2 || calls[0] != "realize" || calls[1] != "snapshots" {
		t.Errorf("unexpected call order: %v", calls)
	}
	if result.Created != 5 || result.Templates != 3 || result.SnapshotsRecorded != 2 || result.Date != "2024-03-15" {
		t.Errorf("unexpected result: %+v", result)
	}
}

func TestRun_SkipSnapshots(t *testing.T) {
	api := &mockAPI{
		realizeDueFn: func(_ context.Context, today string) (*client.RealizeResult, error) {
			return &client.RealizeResult{Today: today}, nil
		},
		computeSnapshotsFn: func(context.Context, string) (*client.SnapshotResult, error) {
			t.Error("snapshots should not be computed")
			return nil, nil
		},
	}

	result, err := newRunner(api).Run(context.Background(), Options{Date: "2024-01-31", SkipSnapshots: true})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.Date != "2024-01-31" {
		t.Errorf("expected date 2024-01-31, got %q", result.Date)
	}
}

func TestRun_RealizeErrorAborts(t *testing.T) {
	api := &mockAPI{
		realizeDueFn: func(context.Context, string) (*client.RealizeResult, error) {
			return nil, errors.New("connection refused")
		},
		computeSnapshotsFn: func(context.Context, string) (*client.SnapshotResult, error) {
			t.Error("snapshots should not be computed after a failed realization")
			return nil, nil
		},
	}

	if _, err := newRunner(api).Run(context.Background(), Options{}); err == nil {
		t.Fatal("expected error, got nil")
	}
}

func TestRun_SnapshotErrorIsReported(t *testing.T) {
	api := &mockAPI{
		realizeDueFn: func(context.Context, string) (*client.RealizeResult, error) {
			return &client.RealizeResult{Created: 1, Today: "2024-03-15"}, nil
		},
		computeSnapshotsFn: func(context.Context, string) (*client.SnapshotResult, error) {
			return nil, errors.New("timeout")
		},
	}

	result, err := newRunner(api).Run(context.Background(), Options{})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if result.SnapshotErr == nil || result.Created != 1 {
		t.Errorf("unexpected result: %+v", result)
	}
}
