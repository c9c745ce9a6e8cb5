package repository

import (
	"context"

	"github.com/vaimebancar/backend/internal/model"
)

// ProjectRepository handles persistence for projects. Projects are
// created and transitioned by the CRUD collaborator; the scoring core
// only reads them.
type ProjectRepository interface {
	Create(ctx context.Context, p *model.Project) error
	GetByID(ctx context.Context, id string) (*model.Project, error)
	// List returns projects newest first, optionally filtered by status
	// (empty string means all).
	List(ctx context.Context, status model.ProjectStatus) ([]*model.Project, error)
	UpdateStatus(ctx context.Context, id string, status model.ProjectStatus) error
}
