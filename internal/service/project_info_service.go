package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/vaimebancar/backend/internal/cache"
	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
)

// ErrInvalidBudget is returned when a project's budget is not positive.
// Progress cannot be computed against it; the project's info view is
// withheld rather than served with a garbage percentage.
var ErrInvalidBudget = errors.New("invalid budget")

// ProjectInfoService composes the single project view the frontend
// consumes: metadata, funding progress, today's ranking and the
// Help/Stop scoreboard.
type ProjectInfoService interface {
	BuildProjectInfo(ctx context.Context, projectID string, now time.Time) (*model.ProjectInfo, error)
	// Invalidate drops the cached view for a project. Called on every
	// donation write so readers never see a snapshot older than the
	// last acknowledged write.
	Invalidate(projectID string)
}

type projectInfoService struct {
	projects repository.ProjectRepository
	agg      AggregationService
	ranking  RankingService
	loc      *time.Location
	cache    *cache.TTLCache[string, *model.ProjectInfo]
	cacheTTL time.Duration
}

// NewProjectInfoService creates a ProjectInfoService. loc defines the
// calendar-day boundary for "today"; cacheTTL bounds snapshot
// staleness between writes (non-positive disables caching).
func NewProjectInfoService(projects repository.ProjectRepository, agg AggregationService, ranking RankingService, loc *time.Location, cacheTTL time.Duration) ProjectInfoService {
	return &projectInfoService{
		projects: projects,
		agg:      agg,
		ranking:  ranking,
		loc:      loc,
		cache:    cache.New[string, *model.ProjectInfo](),
		cacheTTL: cacheTTL,
	}
}

func (s *projectInfoService) Invalidate(projectID string) {
	s.cache.Delete(projectID)
}

func (s *projectInfoService) BuildProjectInfo(ctx context.Context, projectID string, now time.Time) (*model.ProjectInfo, error) {
	if cached, ok := s.cache.Get(projectID); ok {
		return cached, nil
	}

	project, err := s.projects.GetByID(ctx, projectID)
	if err != nil {
		return nil, err
	}
	if !project.Budget.IsPositive() {
		return nil, fmt.Errorf("%w: project %s has budget %s",
			ErrInvalidBudget, projectID, project.Budget.String())
	}

	snapshot, err := s.agg.ComputeSnapshot(ctx, projectID)
	if err != nil {
		return nil, err
	}

	ranking, err := s.ranking.ComputeDailyRanking(ctx, projectID, now, s.loc)
	if err != nil {
		return nil, err
	}

	if snapshot.StopWins {
		snapshot.TrollMessage = PickTrollMessage(projectID, ranking.Day)
	}

	progress := snapshot.TotalAmount.Mul(oneHundred).Div(project.Budget.Decimal)
	if progress.GreaterThan(oneHundred) {
		progress = oneHundred
	}

	project.CurrentAmount = snapshot.TotalAmount

	info := &model.ProjectInfo{
		Project:            project,
		ProgressPercentage: model.PercentFromDecimal(progress),
		IsGoalReached:      snapshot.TotalAmount.GreaterThanOrEqual(project.Budget.Decimal),
		TimeRemaining:      formatTimeRemaining(now, project.EndDate),
		DailyRanking:       ranking,
		TopDonorToday:      ranking.TopDonor,
		LowestDonorToday:   ranking.LowestDonor,
		FundraisingStats:   snapshot,
	}

	s.cache.Set(projectID, info, s.cacheTTL)
	return info, nil
}

// formatTimeRemaining renders the time left until end in the
// platform's voice. Past deadlines read as closed, never negative.
func formatTimeRemaining(now, end time.Time) string {
	remaining := end.Sub(now)
	if remaining <= 0 {
		return "Encerrado"
	}

	days := int(remaining / (24 * time.Hour))
	hours := int(remaining % (24 * time.Hour) / time.Hour)

	switch {
	case days > 0 && hours > 0:
		return fmt.Sprintf("%s e %s", plural(days, "dia"), plural(hours, "hora"))
	case days > 0:
		return plural(days, "dia")
	case hours > 0:
		return plural(hours, "hora")
	default:
		return "menos de 1 hora"
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s", unit)
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
