package repository

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/vaimebancar/backend/internal/model"
)

func TestMemoryDonationRepository_UpdateStatus_RejectsStale(t *testing.T) {
	repo := NewMemoryDonationRepository()
	ctx := context.Background()
	base := time.Date(2025, 7, 1, 12, 0, 0, 0, time.UTC)

	d := &model.Donation{
		ID: "d1", ProjectID: "p1", Side: model.SideHelp,
		Status: model.StatusPending, Amount: model.NewMoney("100"),
		CreatedAt: base, UpdatedAt: base,
	}
	if err := repo.Create(ctx, d); err != nil {
		t.Fatalf("create: %v", err)
	}

	if err := repo.UpdateStatus(ctx, "d1", model.StatusPaid, base.Add(time.Hour)); err != nil {
		t.Fatalf("update: %v", err)
	}

	// An older webhook delivery must not roll the status back.
	err := repo.UpdateStatus(ctx, "d1", model.StatusOverdue, base.Add(time.Minute))
	if !errors.Is(err, ErrStaleTransition) {
		t.Fatalf("expected ErrStaleTransition, got %v", err)
	}

	got, err := repo.GetByID(ctx, "d1")
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if got.Status != model.StatusPaid {
		t.Errorf("status rolled back to %s", got.Status)
	}
}

func TestMemoryDonationRepository_UpdateStatus_NotFound(t *testing.T) {
	repo := NewMemoryDonationRepository()
	err := repo.UpdateStatus(context.Background(), "missing", model.StatusPaid, time.Now())
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryDonationRepository_ListPaidByProjectBetween(t *testing.T) {
	repo := NewMemoryDonationRepository()
	ctx := context.Background()
	day := time.Date(2025, 7, 10, 0, 0, 0, 0, time.UTC)

	seed := []struct {
		id        string
		status    model.Status
		createdAt time.Time
	}{
		{"in-window", model.StatusPaid, day.Add(10 * time.Hour)},
		{"paid-before", model.StatusPaid, day.Add(-time.Minute)},
		{"paid-after", model.StatusPaid, day.Add(24 * time.Hour)},
		{"pending-in-window", model.StatusPending, day.Add(12 * time.Hour)},
	}
	for _, s := range seed {
		err := repo.Create(ctx, &model.Donation{
			ID: s.id, ProjectID: "p1", Side: model.SideHelp, Status: s.status,
			Amount: model.NewMoney("10"), CreatedAt: s.createdAt, UpdatedAt: s.createdAt,
		})
		if err != nil {
			t.Fatalf("create %s: %v", s.id, err)
		}
	}

	got, err := repo.ListPaidByProjectBetween(ctx, "p1", day, day.Add(24*time.Hour))
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	if len(got) != 1 || got[0].ID != "in-window" {
		t.Errorf("expected only in-window, got %+v", got)
	}
}
