package boleto

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestParseWebhookEvent(t *testing.T) {
	body := []byte(`{
		"id": "evt_1",
		"event": "PAYMENT_CONFIRMED",
		"dateCreated": "2025-07-10 14:30:00",
		"payment": {
			"id": "pay_123",
			"status": "CONFIRMED",
			"value": 150.00,
			"externalReference": "don-1"
		}
	}`)
	ev, err := ParseWebhookEvent(body)
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if ev.Payment.ID != "pay_123" || ev.Payment.Status != "CONFIRMED" {
		t.Errorf("unexpected payment: %+v", ev.Payment)
	}

	loc := time.FixedZone("BRT", -3*3600)
	got := ev.ObservedAt(loc)
	want := time.Date(2025, 7, 10, 14, 30, 0, 0, loc)
	if !got.Equal(want) {
		t.Errorf("observed at %v, want %v", got, want)
	}
}

func TestParseWebhookEvent_MissingPaymentID(t *testing.T) {
	if _, err := ParseWebhookEvent([]byte(`{"event":"PAYMENT_CONFIRMED"}`)); err == nil {
		t.Fatal("expected error for missing payment id")
	}
}

func TestVerifyWebhookToken(t *testing.T) {
	c := NewClient("http://example", "key", "secret")
	if !c.VerifyWebhookToken("secret") {
		t.Error("expected matching token to verify")
	}
	if c.VerifyWebhookToken("wrong") {
		t.Error("expected mismatched token to fail")
	}

	unconfigured := NewClient("http://example", "key", "")
	if unconfigured.VerifyWebhookToken("") {
		t.Error("expected empty configured token to reject everything")
	}
}

func TestCreateCharge_SendsBoletoPayload(t *testing.T) {
	var got map[string]string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v3/payments" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if r.Header.Get("access_token") != "key" {
			t.Errorf("missing access_token header")
		}
		_ = json.NewDecoder(r.Body).Decode(&got)
		_ = json.NewEncoder(w).Encode(Charge{ID: "pay_1", Status: "PENDING", BankSlipURL: "https://slip"})
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "tok")
	charge, err := c.CreateCharge(context.Background(), ChargeParams{
		CustomerID:        "cus_1",
		Value:             "150.00",
		ExternalReference: "don-1",
	})
	if err != nil {
		t.Fatalf("create charge: %v", err)
	}
	if charge.ID != "pay_1" || charge.BankSlipURL != "https://slip" {
		t.Errorf("unexpected charge: %+v", charge)
	}
	if got["billingType"] != "BOLETO" || got["value"] != "150.00" || got["externalReference"] != "don-1" {
		t.Errorf("unexpected payload: %v", got)
	}
	if got["dueDate"] == "" {
		t.Error("expected a default due date")
	}
}

func TestCreateCustomer_GatewayError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"errors":[{"description":"invalid cpf"}]}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, "key", "tok")
	if _, err := c.CreateCustomer(context.Background(), CustomerParams{Name: "x"}); err == nil {
		t.Fatal("expected error from 400 response")
	}
}
