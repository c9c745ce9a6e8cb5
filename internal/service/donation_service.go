package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
	"github.com/vaimebancar/backend/pkg/boleto"
)

// BoletoIssuer is the slice of the payment gateway the donation intake
// needs: register the donor as a customer, issue the bank slip.
type BoletoIssuer interface {
	CreateCustomer(ctx context.Context, p boleto.CustomerParams) (string, error)
	CreateCharge(ctx context.Context, p boleto.ChargeParams) (*boleto.Charge, error)
}

// InfoInvalidator drops cached project views after ledger writes.
type InfoInvalidator interface {
	Invalidate(projectID string)
}

// CreateBoletoRequest carries the donor form for a new boleto donation.
type CreateBoletoRequest struct {
	ProjectID    string
	Side         model.Side
	Amount       model.Money
	DonorName    string
	DonorEmail   string
	DonorCPF     string
	DonorPhone   string
	DonorAddress string
	DonorCity    string
	DonorState   string
	DonorZipcode string
	Message      string
	Description  string
}

// CreateBoletoResult is the donation plus the slip the donor pays.
type CreateBoletoResult struct {
	Donation    *model.Donation `json:"donation"`
	BankSlipURL string          `json:"bank_slip_url"`
	DueDate     string          `json:"due_date"`
}

// PaymentEvent is a normalized gateway webhook notification.
type PaymentEvent struct {
	ChargeID      string
	ExternalState string
	ObservedAt    time.Time
}

// DonationService provides business logic for donation intake and
// payment-lifecycle updates.
type DonationService interface {
	CreateBoleto(ctx context.Context, req CreateBoletoRequest) (*CreateBoletoResult, error)
	ListByProject(ctx context.Context, projectID string) ([]*model.Donation, error)
	// ApplyPaymentEvent resolves the gateway state and applies the
	// lifecycle transition. Duplicate and out-of-order deliveries are
	// absorbed as no-ops; unknown states propagate so the gateway
	// retries.
	ApplyPaymentEvent(ctx context.Context, ev PaymentEvent) error
}

type donationService struct {
	ledger            repository.DonationRepository
	projects          repository.ProjectRepository
	gateway           BoletoIssuer
	invalidator       InfoInvalidator // optional, nil = skip
	overdueAutoSettle bool
}

// NewDonationService creates a DonationService. gateway may be nil in
// tests; invalidator may be nil when no view cache is wired.
func NewDonationService(ledger repository.DonationRepository, projects repository.ProjectRepository, gateway BoletoIssuer, invalidator InfoInvalidator, overdueAutoSettle bool) DonationService {
	return &donationService{
		ledger:            ledger,
		projects:          projects,
		gateway:           gateway,
		invalidator:       invalidator,
		overdueAutoSettle: overdueAutoSettle,
	}
}

func (s *donationService) CreateBoleto(ctx context.Context, req CreateBoletoRequest) (*CreateBoletoResult, error) {
	if !req.Amount.IsPositive() {
		return nil, errors.New("amount must be greater than 0")
	}
	if !req.Side.Valid() {
		return nil, fmt.Errorf("unknown side %q", req.Side)
	}
	if _, err := s.projects.GetByID(ctx, req.ProjectID); err != nil {
		return nil, fmt.Errorf("get project: %w", err)
	}

	d := &model.Donation{
		ID:           uuid.NewString(),
		ProjectID:    req.ProjectID,
		Side:         req.Side,
		Status:       model.StatusPending,
		Amount:       req.Amount,
		DonorName:    req.DonorName,
		DonorEmail:   req.DonorEmail,
		DonorCPF:     req.DonorCPF,
		Cellphone:    req.DonorPhone,
		DonorAddress: req.DonorAddress,
		DonorCity:    req.DonorCity,
		DonorState:   req.DonorState,
		DonorZipcode: req.DonorZipcode,
		Message:      req.Message,
	}

	var charge *boleto.Charge
	if s.gateway != nil {
		customerID, err := s.gateway.CreateCustomer(ctx, boleto.CustomerParams{
			Name:    req.DonorName,
			Email:   req.DonorEmail,
			CPF:     req.DonorCPF,
			Phone:   req.DonorPhone,
			Address: req.DonorAddress,
			City:    req.DonorCity,
			State:   req.DonorState,
			Zipcode: req.DonorZipcode,
		})
		if err != nil {
			return nil, fmt.Errorf("gateway customer: %w", err)
		}

		charge, err = s.gateway.CreateCharge(ctx, boleto.ChargeParams{
			CustomerID:        customerID,
			Value:             req.Amount.StringFixed(2),
			Description:       req.Description,
			ExternalReference: d.ID,
		})
		if err != nil {
			return nil, fmt.Errorf("gateway charge: %w", err)
		}
		d.AsaasClienteID = customerID
		d.AsaasCobrancaID = charge.ID
	}

	if err := s.ledger.Create(ctx, d); err != nil {
		return nil, fmt.Errorf("persist donation: %w", err)
	}
	if s.invalidator != nil {
		s.invalidator.Invalidate(req.ProjectID)
	}

	res := &CreateBoletoResult{Donation: d}
	if charge != nil {
		res.BankSlipURL = charge.BankSlipURL
		res.DueDate = charge.DueDate
	}
	return res, nil
}

func (s *donationService) ListByProject(ctx context.Context, projectID string) ([]*model.Donation, error) {
	return s.ledger.ListByProject(ctx, projectID)
}

func (s *donationService) ApplyPaymentEvent(ctx context.Context, ev PaymentEvent) error {
	next, err := ResolveChargeStatus(ev.ExternalState)
	if err != nil {
		return err
	}

	d, err := s.ledger.GetByGatewayChargeID(ctx, ev.ChargeID)
	if err != nil {
		return fmt.Errorf("lookup charge %s: %w", ev.ChargeID, err)
	}

	if d.Status == next {
		// Duplicate delivery; already applied.
		return nil
	}
	if !d.Status.CanTransitionTo(next, s.overdueAutoSettle) {
		slog.Warn("ignoring disallowed status transition",
			"donation_id", d.ID, "from", d.Status, "to", next)
		return nil
	}

	err = s.ledger.UpdateStatus(ctx, d.ID, next, ev.ObservedAt)
	if errors.Is(err, repository.ErrStaleTransition) {
		slog.Warn("ignoring stale payment event",
			"donation_id", d.ID, "to", next, "observed_at", ev.ObservedAt)
		return nil
	}
	if err != nil {
		return fmt.Errorf("update status: %w", err)
	}

	if s.invalidator != nil {
		s.invalidator.Invalidate(d.ProjectID)
	}
	return nil
}
