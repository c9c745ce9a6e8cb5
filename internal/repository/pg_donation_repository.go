package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/vaimebancar/backend/internal/model"
)

type pgDonationRepository struct {
	pool *pgxpool.Pool
}

// NewPgDonationRepository returns a PostgreSQL-backed DonationRepository.
func NewPgDonationRepository(pool *pgxpool.Pool) DonationRepository {
	return &pgDonationRepository{pool: pool}
}

const donationSelectCols = `id, project_id, side, status, amount, donor_name,
	COALESCE(donor_email, ''), COALESCE(donor_cpf, ''), cellphone,
	COALESCE(donor_address, ''), COALESCE(donor_city, ''),
	COALESCE(donor_state, ''), COALESCE(donor_zipcode, ''),
	COALESCE(message, ''), COALESCE(asaas_cliente_id, ''),
	COALESCE(asaas_cobranca_id, ''), created_at, updated_at`

func scanDonation(scan func(...any) error) (*model.Donation, error) {
	d := &model.Donation{}
	return d, scan(
		&d.ID, &d.ProjectID, &d.Side, &d.Status, &d.Amount, &d.DonorName,
		&d.DonorEmail, &d.DonorCPF, &d.Cellphone,
		&d.DonorAddress, &d.DonorCity, &d.DonorState, &d.DonorZipcode,
		&d.Message, &d.AsaasClienteID, &d.AsaasCobrancaID,
		&d.CreatedAt, &d.UpdatedAt,
	)
}

func (r *pgDonationRepository) Create(ctx context.Context, d *model.Donation) error {
	return r.pool.QueryRow(ctx,
		`INSERT INTO donations
		 (id, project_id, side, status, amount, donor_name, donor_email,
		  donor_cpf, cellphone, donor_address, donor_city, donor_state,
		  donor_zipcode, message, asaas_cliente_id, asaas_cobranca_id)
		 VALUES ($1, $2, $3, $4, $5, $6, NULLIF($7,''), NULLIF($8,''), $9,
		         NULLIF($10,''), NULLIF($11,''), NULLIF($12,''),
		         NULLIF($13,''), NULLIF($14,''), NULLIF($15,''), NULLIF($16,''))
		 RETURNING created_at, updated_at`,
		d.ID, d.ProjectID, d.Side, d.Status, d.Amount, d.DonorName,
		d.DonorEmail, d.DonorCPF, d.Cellphone, d.DonorAddress, d.DonorCity,
		d.DonorState, d.DonorZipcode, d.Message,
		d.AsaasClienteID, d.AsaasCobrancaID,
	).Scan(&d.CreatedAt, &d.UpdatedAt)
}

func (r *pgDonationRepository) GetByID(ctx context.Context, id string) (*model.Donation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+donationSelectCols+` FROM donations WHERE id = $1`, id)
	d, err := scanDonation(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *pgDonationRepository) GetByGatewayChargeID(ctx context.Context, chargeID string) (*model.Donation, error) {
	row := r.pool.QueryRow(ctx,
		`SELECT `+donationSelectCols+` FROM donations WHERE asaas_cobranca_id = $1`, chargeID)
	d, err := scanDonation(row.Scan)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateStatus applies the transition in a single conditional statement
// so a concurrent aggregate read either sees the old committed row or
// the new one, never an intermediate state.
func (r *pgDonationRepository) UpdateStatus(ctx context.Context, id string, status model.Status, observedAt time.Time) error {
	tag, err := r.pool.Exec(ctx,
		`UPDATE donations SET status = $2, updated_at = $3
		 WHERE id = $1 AND updated_at <= $3`,
		id, status, observedAt)
	if err != nil {
		return err
	}
	if tag.RowsAffected() > 0 {
		return nil
	}

	// No row matched: either the donation is missing or the update is
	// older than what we already applied.
	var exists bool
	if err := r.pool.QueryRow(ctx,
		`SELECT EXISTS (SELECT 1 FROM donations WHERE id = $1)`, id).Scan(&exists); err != nil {
		return err
	}
	if !exists {
		return ErrNotFound
	}
	return ErrStaleTransition
}

func (r *pgDonationRepository) ListByProject(ctx context.Context, projectID string) ([]*model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+`
		 FROM donations
		 WHERE project_id = $1
		 ORDER BY created_at DESC, id`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDonations(rows)
}

func (r *pgDonationRepository) ListPaidByProject(ctx context.Context, projectID string) ([]*model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+`
		 FROM donations
		 WHERE project_id = $1 AND status = 'paid'
		 ORDER BY created_at, id`,
		projectID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDonations(rows)
}

func (r *pgDonationRepository) ListPaidByProjectBetween(ctx context.Context, projectID string, from, to time.Time) ([]*model.Donation, error) {
	rows, err := r.pool.Query(ctx,
		`SELECT `+donationSelectCols+`
		 FROM donations
		 WHERE project_id = $1 AND status = 'paid'
		   AND created_at >= $2 AND created_at < $3
		 ORDER BY created_at, id`,
		projectID, from, to)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return collectDonations(rows)
}

func collectDonations(rows pgx.Rows) ([]*model.Donation, error) {
	var list []*model.Donation
	for rows.Next() {
		d, err := scanDonation(rows.Scan)
		if err != nil {
			return nil, err
		}
		list = append(list, d)
	}
	return list, rows.Err()
}
