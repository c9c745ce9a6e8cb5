package repository

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vaimebancar/backend/internal/model"
)

type pgProjectRepository struct {
	pool *pgxpool.Pool
}

// NewPgProjectRepository returns a PostgreSQL-backed ProjectRepository.
func NewPgProjectRepository(pool *pgxpool.Pool) ProjectRepository {
	return &pgProjectRepository{pool: pool}
}

const projectSelectCols = `id, name, description, owner_name, cellphone,
	COALESCE(category, ''), budget, start_date, end_date, status,
	created_at, updated_at`

func scanProject(scan func(...any) error) (*model.Project, error) {
	p := &model.Project{}
	return p, scan(
		&p.ID, &p.Name, &p.Description, &p.OwnerName, &p.Cellphone,
		&p.Category, &p.Budget, &p.StartDate, &p.EndDate, &p.Status,
		&p.CreatedAt, &p.UpdatedAt,
	)
}

func (r *pgProjectRepository) Create(ctx context.Context, p *model.Project) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO projects
		 (id, name, description, owner_name, cellphone, category, budget,
		  start_date, end_date, status)
		 VALUES ($1, $2, $3, $4, $5, NULLIF($6,''), $7, $8, $9, $10)
		 RETURNING created_at, updated_at`,
		p.ID, p.Name, p.Description, p.OwnerName, p.Cellphone, p.Category,
		p.Budget, p.StartDate, p.EndDate, p.Status,
	).Scan(&p.CreatedAt, &p.UpdatedAt)
}

func (r *pgProjectRepository) GetByID(ctx context.Context, id string) (*model.Project, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+projectSelectCols+` FROM projects WHERE id = $1`, id)
	p, err := scanProject(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *pgProjectRepository) List(ctx context.Context, status model.ProjectStatus) ([]*model.Project, error) {
	query := `SELECT ` + projectSelectCols + ` FROM projects`
	args := []any{}
	if status != "" {
		query += ` WHERE status = $1`
		args = append(args, status)
	}
	query += ` ORDER BY created_at DESC, id`

	rows, err := r.pool.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var list []*model.Project
	for rows.Next() {
		p, err := scanProject(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, p)
	}
	return list, rows.Err()
}

func (r *pgProjectRepository) UpdateStatus(ctx context.Context, id string, status model.ProjectStatus) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE projects SET status = $2, updated_at = NOW() WHERE id = $1`,
		id, status)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
