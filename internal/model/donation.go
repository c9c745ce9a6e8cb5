package model

import "time"

// Side is the competing category a donation backs: help supports the
// project, stop opposes it.
type Side string

const (
	SideHelp Side = "help"
	SideStop Side = "stop"
)

// Valid reports whether s is one of the two known sides.
func (s Side) Valid() bool {
	return s == SideHelp || s == SideStop
}

// Status is the payment-confirmation state of a donation. Only paid
// donations count toward totals, percentages and rankings.
type Status string

const (
	StatusPending   Status = "pending"
	StatusPaid      Status = "paid"
	StatusCancelled Status = "cancelled"
	StatusOverdue   Status = "overdue"
)

// Valid reports whether s is a known lifecycle status.
func (s Status) Valid() bool {
	switch s {
	case StatusPending, StatusPaid, StatusCancelled, StatusOverdue:
		return true
	}
	return false
}

// Countable reports whether donations in this status are included in
// aggregates and rankings.
func (s Status) Countable() bool {
	return s == StatusPaid
}

// CanTransitionTo reports whether the lifecycle state machine permits
// moving from s to next. paid and cancelled are terminal. overdue may
// still settle to paid when a late payment clears, gated on
// overdueAutoSettle, and may expire to cancelled.
func (s Status) CanTransitionTo(next Status, overdueAutoSettle bool) bool {
	switch s {
	case StatusPending:
		return next == StatusPaid || next == StatusCancelled || next == StatusOverdue
	case StatusOverdue:
		if next == StatusPaid {
			return overdueAutoSettle
		}
		return next == StatusCancelled
	default:
		return false
	}
}

// Donation is one ledger entry: an amount pledged to one side of one
// project, moving through the payment lifecycle. Side and Amount never
// change after creation; only Status (and UpdatedAt with it) does.
type Donation struct {
	ID        string `json:"id"`
	ProjectID string `json:"project_id"`
	Side      Side   `json:"side"`
	Status    Status `json:"status"`
	Amount    Money  `json:"amount"`

	DonorName    string `json:"donor_name"`
	DonorEmail   string `json:"donor_email,omitempty"`
	DonorCPF     string `json:"-"`
	Cellphone    string `json:"cellphone"`
	DonorAddress string `json:"-"`
	DonorCity    string `json:"-"`
	DonorState   string `json:"-"`
	DonorZipcode string `json:"-"`
	Message      string `json:"message,omitempty"`

	// Gateway references filled in when the boleto is issued.
	AsaasClienteID  string `json:"asaas_cliente_id,omitempty"`
	AsaasCobrancaID string `json:"asaas_cobranca_id,omitempty"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
