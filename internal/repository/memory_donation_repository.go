package repository

import (
	"context"
	"sync"
	"time"

	"github.com/vaimebancar/backend/internal/model"
)

// MemoryDonationRepository is a mutex-guarded in-memory ledger with the
// same transition semantics as the PostgreSQL implementation. The
// engine tests run against it so they exercise real repository
// behavior (stale rejection included) instead of bespoke mocks.
type MemoryDonationRepository struct {
	mu        sync.RWMutex
	donations map[string]*model.Donation
}

// NewMemoryDonationRepository returns an empty in-memory ledger.
func NewMemoryDonationRepository() *MemoryDonationRepository {
	return &MemoryDonationRepository{donations: make(map[string]*model.Donation)}
}

func (r *MemoryDonationRepository) Create(_ context.Context, d *model.Donation) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if d.CreatedAt.IsZero() {
		d.CreatedAt = time.Now()
	}
	if d.UpdatedAt.IsZero() {
		d.UpdatedAt = d.CreatedAt
	}
	cp := *d
	r.donations[d.ID] = &cp
	return nil
}

func (r *MemoryDonationRepository) GetByID(_ context.Context, id string) (*model.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	d, ok := r.donations[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *d
	return &cp, nil
}

func (r *MemoryDonationRepository) GetByGatewayChargeID(_ context.Context, chargeID string) (*model.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, d := range r.donations {
		if d.AsaasCobrancaID == chargeID {
			cp := *d
			return &cp, nil
		}
	}
	return nil, ErrNotFound
}

func (r *MemoryDonationRepository) UpdateStatus(_ context.Context, id string, status model.Status, observedAt time.Time) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	d, ok := r.donations[id]
	if !ok {
		return ErrNotFound
	}
	if observedAt.Before(d.UpdatedAt) {
		return ErrStaleTransition
	}
	d.Status = status
	d.UpdatedAt = observedAt
	return nil
}

func (r *MemoryDonationRepository) ListByProject(_ context.Context, projectID string) ([]*model.Donation, error) {
	return r.list(projectID, func(d *model.Donation) bool { return true })
}

func (r *MemoryDonationRepository) ListPaidByProject(_ context.Context, projectID string) ([]*model.Donation, error) {
	return r.list(projectID, func(d *model.Donation) bool { return d.Status.Countable() })
}

func (r *MemoryDonationRepository) ListPaidByProjectBetween(_ context.Context, projectID string, from, to time.Time) ([]*model.Donation, error) {
	return r.list(projectID, func(d *model.Donation) bool {
		return d.Status.Countable() && !d.CreatedAt.Before(from) && d.CreatedAt.Before(to)
	})
}

func (r *MemoryDonationRepository) list(projectID string, keep func(*model.Donation) bool) ([]*model.Donation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var list []*model.Donation
	for _, d := range r.donations {
		if d.ProjectID == projectID && keep(d) {
			cp := *d
			list = append(list, &cp)
		}
	}
	return list, nil
}
