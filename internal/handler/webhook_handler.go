package handler

import (
	"encoding/json"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"time"

	"github.com/vaimebancar/backend/internal/repository"
	"github.com/vaimebancar/backend/internal/service"
	"github.com/vaimebancar/backend/pkg/boleto"
)

// TokenVerifier checks the webhook access token the gateway sends.
type TokenVerifier interface {
	VerifyWebhookToken(token string) bool
}

// WebhookHandler receives payment notifications from the gateway.
// Deliveries are at-least-once and may arrive out of order; anything
// already applied or stale is acknowledged so the gateway stops
// retrying, while unknown states return 5xx to force a retry once the
// mapping is fixed.
type WebhookHandler struct {
	svc      service.DonationService
	verifier TokenVerifier
	loc      *time.Location
}

// NewWebhookHandler creates a WebhookHandler. loc is used to interpret
// the gateway's local event timestamps.
func NewWebhookHandler(svc service.DonationService, verifier TokenVerifier, loc *time.Location) *WebhookHandler {
	return &WebhookHandler{svc: svc, verifier: verifier, loc: loc}
}

// Receive handles POST /api/webhooks/asaas.
func (h *WebhookHandler) Receive(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	if !h.verifier.VerifyWebhookToken(r.Header.Get("asaas-access-token")) {
		w.WriteHeader(http.StatusUnauthorized)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unauthorized"})
		return
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "read_failed"})
		return
	}
	ev, err := boleto.ParseWebhookEvent(body)
	if err != nil {
		slog.Warn("malformed webhook event", "error", err)
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_event"})
		return
	}

	err = h.svc.ApplyPaymentEvent(r.Context(), service.PaymentEvent{
		ChargeID:      ev.Payment.ID,
		ExternalState: ev.Payment.Status,
		ObservedAt:    ev.ObservedAt(h.loc),
	})
	switch {
	case err == nil:
		_ = json.NewEncoder(w).Encode(map[string]string{"received": "ok"})
	case errors.Is(err, repository.ErrNotFound):
		// A charge we never issued; nothing to retry.
		slog.Warn("webhook for unknown charge", "charge_id", ev.Payment.ID)
		w.WriteHeader(http.StatusNotFound)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown_charge"})
	case errors.Is(err, service.ErrUnknownPaymentState):
		slog.Error("unresolvable payment state", "error", err, "charge_id", ev.Payment.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "unknown_payment_state"})
	default:
		slog.Error("webhook processing failed", "error", err, "charge_id", ev.Payment.ID)
		w.WriteHeader(http.StatusInternalServerError)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "webhook_failed"})
	}
}
