package service

import (
	"context"
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
)

// RankingService computes the per-day donor ranking for a project.
type RankingService interface {
	// ComputeDailyRanking ranks the paid donations whose created_at
	// falls on the given calendar day in loc, descending by amount
	// with created_at then id as tie-breaks.
	ComputeDailyRanking(ctx context.Context, projectID string, day time.Time, loc *time.Location) (*model.DailyRanking, error)
}

type rankingService struct {
	ledger repository.DonationRepository
}

// NewRankingService creates a RankingService over the ledger.
func NewRankingService(ledger repository.DonationRepository) RankingService {
	return &rankingService{ledger: ledger}
}

func (s *rankingService) ComputeDailyRanking(ctx context.Context, projectID string, day time.Time, loc *time.Location) (*model.DailyRanking, error) {
	from, to := DayWindow(day, loc)

	paid, err := s.ledger.ListPaidByProjectBetween(ctx, projectID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list day donations: %w", err)
	}

	SortRanking(paid)

	ranking := &model.DailyRanking{
		Day:       from.Format("2006-01-02"),
		Donations: paid,
	}
	if len(paid) > 0 {
		ranking.TopDonor = paid[0]
		ranking.LowestDonor = paid[len(paid)-1]
	}
	return ranking, nil
}

// DayWindow returns the [start, end) instants of the calendar day
// containing t in loc. Using AddDate keeps the window correct across
// DST shifts, where the day is not always 24 hours.
func DayWindow(t time.Time, loc *time.Location) (time.Time, time.Time) {
	local := t.In(loc)
	start := time.Date(local.Year(), local.Month(), local.Day(), 0, 0, 0, 0, loc)
	return start, start.AddDate(0, 0, 1)
}

// SortRanking orders donations in place: amount descending, then
// created_at ascending, then id ascending. The ordering is total, so
// repeated runs over the same set always agree.
func SortRanking(donations []*model.Donation) {
	slices.SortFunc(donations, func(a, b *model.Donation) int {
		if c := b.Amount.Cmp(a.Amount.Decimal); c != 0 {
			return c
		}
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		return strings.Compare(a.ID, b.ID)
	})
}
