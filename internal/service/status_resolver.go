package service

import (
	"errors"
	"fmt"

	"github.com/vaimebancar/backend/internal/model"
)

// ErrUnknownPaymentState is returned when the gateway reports a charge
// state this resolver has no mapping for. Callers must treat it as a
// retryable transient failure: defaulting to pending would exclude
// money already moving, defaulting to paid would count unconfirmed money.
var ErrUnknownPaymentState = errors.New("unknown payment state")

// asaasStatusMap is the single translation point from the gateway's
// charge-state vocabulary to the internal lifecycle statuses.
var asaasStatusMap = map[string]model.Status{
	"PENDING":                "pending",
	"AWAITING_RISK_ANALYSIS": "pending",

	"CONFIRMED":        "paid",
	"RECEIVED":         "paid",
	"RECEIVED_IN_CASH": "paid",

	"OVERDUE": "overdue",

	"REFUND_REQUESTED":     "cancelled",
	"REFUNDED":             "cancelled",
	"CHARGEBACK_REQUESTED": "cancelled",
	"CHARGEBACK_DISPUTE":   "cancelled",
	"DELETED":              "cancelled",
}

// ResolveChargeStatus maps an Asaas charge state to a lifecycle status.
func ResolveChargeStatus(external string) (model.Status, error) {
	status, ok := asaasStatusMap[external]
	if !ok {
		return "", fmt.Errorf("%w: %q", ErrUnknownPaymentState, external)
	}
	return status, nil
}
