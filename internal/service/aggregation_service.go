package service

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"
	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
)

var oneHundred = decimal.NewFromInt(100)

// AggregationService computes the Help/Stop scoreboard for a project.
type AggregationService interface {
	// ComputeSnapshot folds the project's paid donations into an
	// AggregateSnapshot. Pure read; repeated calls over identical
	// ledger contents return identical snapshots.
	ComputeSnapshot(ctx context.Context, projectID string) (*model.AggregateSnapshot, error)
}

type aggregationService struct {
	ledger repository.DonationRepository
}

// NewAggregationService creates an AggregationService over the ledger.
func NewAggregationService(ledger repository.DonationRepository) AggregationService {
	return &aggregationService{ledger: ledger}
}

func (s *aggregationService) ComputeSnapshot(ctx context.Context, projectID string) (*model.AggregateSnapshot, error) {
	// One query, one consistent read-committed snapshot. Summing
	// happens over this slice only, so help and stop totals can never
	// reflect different points in time.
	paid, err := s.ledger.ListPaidByProject(ctx, projectID)
	if err != nil {
		return nil, fmt.Errorf("list paid donations: %w", err)
	}
	return BuildSnapshot(paid), nil
}

// BuildSnapshot partitions paid donations into Help and Stop buckets
// and derives totals, counts, percentages and the win flag.
func BuildSnapshot(paid []*model.Donation) *model.AggregateSnapshot {
	help := decimal.Zero
	stop := decimal.Zero
	helpCount, stopCount := 0, 0

	for _, d := range paid {
		if !d.Status.Countable() {
			continue
		}
		switch d.Side {
		case model.SideHelp:
			help = help.Add(d.Amount.Decimal)
			helpCount++
		case model.SideStop:
			stop = stop.Add(d.Amount.Decimal)
			stopCount++
		}
	}

	total := help.Add(stop)

	helpPct := decimal.Zero
	stopPct := decimal.Zero
	if total.IsPositive() {
		helpPct = help.Mul(oneHundred).Div(total)
		// Complement, not an independent division: the pair always
		// sums to exactly 100.
		stopPct = oneHundred.Sub(helpPct)
	}

	return &model.AggregateSnapshot{
		HelpAmount:     model.MoneyFromDecimal(help),
		StopAmount:     model.MoneyFromDecimal(stop),
		TotalAmount:    model.MoneyFromDecimal(total),
		HelpCount:      helpCount,
		StopCount:      stopCount,
		HelpPercentage: model.PercentFromDecimal(helpPct),
		StopPercentage: model.PercentFromDecimal(stopPct),
		// Strict inequality: an exact tie reads as Help ahead.
		StopWins: stop.GreaterThan(help),
	}
}
