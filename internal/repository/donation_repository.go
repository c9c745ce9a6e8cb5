package repository

import (
	"context"
	"time"

	"github.com/vaimebancar/backend/internal/model"
)

// DonationRepository is the donation ledger: append-only creation,
// status-mutable records, read-committed snapshots for the engines.
type DonationRepository interface {
	// Create persists a new donation. ID, Side, Amount and CreatedAt
	// are immutable afterwards.
	Create(ctx context.Context, d *model.Donation) error
	// GetByID returns a single donation by ID.
	GetByID(ctx context.Context, id string) (*model.Donation, error)
	// GetByGatewayChargeID returns the donation holding the given
	// asaas_cobranca_id, used to route webhook events.
	GetByGatewayChargeID(ctx context.Context, chargeID string) (*model.Donation, error)
	// UpdateStatus transitions a donation's status, stamping updated_at
	// with observedAt. Updates whose observedAt precedes the current
	// updated_at are rejected with ErrStaleTransition and the stored
	// status is retained.
	UpdateStatus(ctx context.Context, id string, status model.Status, observedAt time.Time) error
	// ListByProject returns every donation for a project, newest first,
	// regardless of status.
	ListByProject(ctx context.Context, projectID string) ([]*model.Donation, error)
	// ListPaidByProject returns the paid donations for a project, the
	// only ones that count toward aggregates.
	ListPaidByProject(ctx context.Context, projectID string) ([]*model.Donation, error)
	// ListPaidByProjectBetween returns paid donations created within
	// [from, to), for the daily ranking window.
	ListPaidByProjectBetween(ctx context.Context, projectID string, from, to time.Time) ([]*model.Donation, error)
}
