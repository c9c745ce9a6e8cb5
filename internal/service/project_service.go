package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
)

// ProjectService provides business logic for project management. The
// scoring core treats projects as read-only; creation and status
// changes live here at the collaborator boundary.
type ProjectService interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	List(ctx context.Context, status model.ProjectStatus) ([]*model.Project, error)
	UpdateStatus(ctx context.Context, id string, status model.ProjectStatus) error
}

type projectService struct {
	repo repository.ProjectRepository
	agg  AggregationService
}

// NewProjectService creates a ProjectService. agg fills the transient
// current_amount on reads; nil skips it.
func NewProjectService(repo repository.ProjectRepository, agg AggregationService) ProjectService {
	return &projectService{repo: repo, agg: agg}
}

func (s *projectService) Create(ctx context.Context, p *model.Project) error {
	if p.Name == "" {
		return errors.New("name is required")
	}
	if !p.Budget.IsPositive() {
		return fmt.Errorf("%w: budget must be greater than 0", ErrInvalidBudget)
	}
	if !p.EndDate.After(p.StartDate) {
		return errors.New("end_date must be after start_date")
	}
	if p.ID == "" {
		p.ID = uuid.NewString()
	}
	if p.Status == "" {
		p.Status = model.ProjectActive
	}
	if !p.Status.Valid() {
		return fmt.Errorf("unknown project status %q", p.Status)
	}
	return s.repo.Create(ctx, p)
}

func (s *projectService) GetByID(ctx context.Context, id string) (*model.Project, error) {
	p, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	s.fillCurrentAmount(ctx, p)
	return p, nil
}

func (s *projectService) List(ctx context.Context, status model.ProjectStatus) ([]*model.Project, error) {
	if status != "" && !status.Valid() {
		return nil, fmt.Errorf("unknown project status %q", status)
	}
	projects, err := s.repo.List(ctx, status)
	if err != nil {
		return nil, err
	}
	for _, p := range projects {
		s.fillCurrentAmount(ctx, p)
	}
	return projects, nil
}

func (s *projectService) UpdateStatus(ctx context.Context, id string, status model.ProjectStatus) error {
	if !status.Valid() {
		return fmt.Errorf("unknown project status %q", status)
	}
	return s.repo.UpdateStatus(ctx, id, status)
}

// fillCurrentAmount sets the transient paid total. Listing keeps
// working when the snapshot is unavailable; the amount just reads zero.
func (s *projectService) fillCurrentAmount(ctx context.Context, p *model.Project) {
	if s.agg == nil {
		return
	}
	snapshot, err := s.agg.ComputeSnapshot(ctx, p.ID)
	if err != nil {
		return
	}
	p.CurrentAmount = snapshot.TotalAmount
}
