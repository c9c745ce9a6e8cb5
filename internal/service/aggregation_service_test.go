package service

import (
	"context"
	"testing"
	"time"

	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
)

func seedDonation(t *testing.T, repo *repository.MemoryDonationRepository, id string, side model.Side, amount string, status model.Status, createdAt time.Time) {
	t.Helper()
	err := repo.Create(context.Background(), &model.Donation{
		ID:        id,
		ProjectID: "p1",
		Side:      side,
		Status:    status,
		Amount:    model.NewMoney(amount),
		DonorName: "Donor " + id,
		CreatedAt: createdAt,
		UpdatedAt: createdAt,
	})
	if err != nil {
		t.Fatalf("seed %s: %v", id, err)
	}
}

func TestComputeSnapshot_PartitionsPaidDonations(t *testing.T) {
	repo := repository.NewMemoryDonationRepository()
	now := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	seedDonation(t, repo, "a", model.SideHelp, "600", model.StatusPaid, now)
	seedDonation(t, repo, "b", model.SideStop, "300", model.StatusPaid, now.Add(time.Minute))
	seedDonation(t, repo, "c", model.SideHelp, "200", model.StatusPending, now.Add(2*time.Minute))

	svc := NewAggregationService(repo)
	snap, err := svc.ComputeSnapshot(context.Background(), "p1")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}

	if snap.TotalAmount.StringFixed(2) != "900.00" {
		t.Errorf("total: got %s, want 900.00", snap.TotalAmount.StringFixed(2))
	}
	if snap.HelpAmount.StringFixed(2) != "600.00" {
		t.Errorf("help: got %s", snap.HelpAmount.StringFixed(2))
	}
	if snap.StopAmount.StringFixed(2) != "300.00" {
		t.Errorf("stop: got %s", snap.StopAmount.StringFixed(2))
	}
	if snap.HelpCount != 1 || snap.StopCount != 1 {
		t.Errorf("counts: got help=%d stop=%d, want 1/1", snap.HelpCount, snap.StopCount)
	}
	if snap.HelpPercentage.StringFixed(1) != "66.7" {
		t.Errorf("help pct: got %s, want 66.7", snap.HelpPercentage.StringFixed(1))
	}
	if snap.StopPercentage.StringFixed(1) != "33.3" {
		t.Errorf("stop pct: got %s, want 33.3", snap.StopPercentage.StringFixed(1))
	}
	if snap.StopWins {
		t.Error("stop_wins should be false when help leads")
	}
}

func TestBuildSnapshot_AmountsSumExactly(t *testing.T) {
	// Amounts chosen to drift under binary floating point.
	donations := []*model.Donation{
		{Side: model.SideHelp, Status: model.StatusPaid, Amount: model.NewMoney("0.10")},
		{Side: model.SideHelp, Status: model.StatusPaid, Amount: model.NewMoney("0.20")},
		{Side: model.SideStop, Status: model.StatusPaid, Amount: model.NewMoney("0.30")},
	}
	snap := BuildSnapshot(donations)

	sum := snap.HelpAmount.Add(snap.StopAmount.Decimal)
	if !sum.Equal(snap.TotalAmount.Decimal) {
		t.Errorf("help+stop=%s, total=%s", sum, snap.TotalAmount)
	}
	if !snap.HelpAmount.Equal(model.NewMoney("0.30").Decimal) {
		t.Errorf("help: got %s, want 0.30 exactly", snap.HelpAmount)
	}
}

func TestBuildSnapshot_PercentagesComplement(t *testing.T) {
	donations := []*model.Donation{
		{Side: model.SideHelp, Status: model.StatusPaid, Amount: model.NewMoney("1")},
		{Side: model.SideStop, Status: model.StatusPaid, Amount: model.NewMoney("2")},
	}
	snap := BuildSnapshot(donations)

	sum := snap.HelpPercentage.Add(snap.StopPercentage.Decimal)
	if sum.StringFixed(10) != "100.0000000000" {
		t.Errorf("percentages sum to %s, want exactly 100", sum)
	}
}

func TestBuildSnapshot_EmptyBoard(t *testing.T) {
	snap := BuildSnapshot(nil)

	if !snap.TotalAmount.IsZero() {
		t.Errorf("total: got %s, want 0", snap.TotalAmount)
	}
	if !snap.HelpPercentage.IsZero() || !snap.StopPercentage.IsZero() {
		t.Errorf("percentages on empty board: %s/%s, want 0/0",
			snap.HelpPercentage, snap.StopPercentage)
	}
	if snap.StopWins {
		t.Error("stop_wins should be false on empty board")
	}
}

func TestBuildSnapshot_TieGoesToHelp(t *testing.T) {
	donations := []*model.Donation{
		{Side: model.SideStop, Status: model.StatusPaid, Amount: model.NewMoney("500")},
		{Side: model.SideHelp, Status: model.StatusPaid, Amount: model.NewMoney("500")},
	}
	snap := BuildSnapshot(donations)

	if snap.StopWins {
		t.Error("an exact tie must read as Help ahead")
	}
	if snap.HelpPercentage.StringFixed(1) != "50.0" || snap.StopPercentage.StringFixed(1) != "50.0" {
		t.Errorf("percentages: %s/%s, want 50.0/50.0",
			snap.HelpPercentage.StringFixed(1), snap.StopPercentage.StringFixed(1))
	}
}

func TestBuildSnapshot_StopWinsOnStrictMajority(t *testing.T) {
	donations := []*model.Donation{
		{Side: model.SideStop, Status: model.StatusPaid, Amount: model.NewMoney("500.01")},
		{Side: model.SideHelp, Status: model.StatusPaid, Amount: model.NewMoney("500")},
	}
	if snap := BuildSnapshot(donations); !snap.StopWins {
		t.Error("stop_wins should be true when stop strictly leads")
	}
}

func TestComputeSnapshot_Deterministic(t *testing.T) {
	repo := repository.NewMemoryDonationRepository()
	now := time.Date(2025, 7, 10, 10, 0, 0, 0, time.UTC)
	seedDonation(t, repo, "a", model.SideHelp, "33.33", model.StatusPaid, now)
	seedDonation(t, repo, "b", model.SideStop, "66.67", model.StatusPaid, now)

	svc := NewAggregationService(repo)
	first, err := svc.ComputeSnapshot(context.Background(), "p1")
	if err != nil {
		t.Fatalf("compute: %v", err)
	}
	for i := 0; i < 5; i++ {
		again, err := svc.ComputeSnapshot(context.Background(), "p1")
		if err != nil {
			t.Fatalf("compute #%d: %v", i, err)
		}
		if !again.HelpPercentage.Equal(first.HelpPercentage.Decimal) ||
			!again.StopPercentage.Equal(first.StopPercentage.Decimal) ||
			again.StopWins != first.StopWins {
			t.Fatalf("run %d diverged: %+v vs %+v", i, again, first)
		}
	}
}
