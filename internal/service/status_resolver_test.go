package service

import (
	"errors"
	"testing"

	"github.com/vaimebancar/backend/internal/model"
)

func TestResolveChargeStatus(t *testing.T) {
	cases := []struct {
		external string
		want     model.Status
	}{
		{"PENDING", model.StatusPending},
		{"AWAITING_RISK_ANALYSIS", model.StatusPending},
		{"CONFIRMED", model.StatusPaid},
		{"RECEIVED", model.StatusPaid},
		{"RECEIVED_IN_CASH", model.StatusPaid},
		{"OVERDUE", model.StatusOverdue},
		{"REFUNDED", model.StatusCancelled},
		{"REFUND_REQUESTED", model.StatusCancelled},
		{"CHARGEBACK_REQUESTED", model.StatusCancelled},
		{"DELETED", model.StatusCancelled},
	}
	for _, c := range cases {
		got, err := ResolveChargeStatus(c.external)
		if err != nil {
			t.Errorf("%s: unexpected error %v", c.external, err)
			continue
		}
		if got != c.want {
			t.Errorf("%s: got %s, want %s", c.external, got, c.want)
		}
	}
}

func TestResolveChargeStatus_UnknownStateErrs(t *testing.T) {
	_, err := ResolveChargeStatus("SOMETHING_NEW")
	if !errors.Is(err, ErrUnknownPaymentState) {
		t.Fatalf("expected ErrUnknownPaymentState, got %v", err)
	}
}
