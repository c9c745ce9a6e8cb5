// Package boleto provides a lightweight Asaas API client for issuing
// boleto charges and parsing payment webhooks. Uses raw HTTP calls
// (no SDK) to minimize external dependencies.
package boleto

import (
	"bytes"
	"context"
	"crypto/subtle"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"
)

// CustomerParams registers the donor with the gateway before charging.
type CustomerParams struct {
	Name    string
	Email   string
	CPF     string
	Phone   string
	Address string
	City    string
	State   string
	Zipcode string
}

// ChargeParams creates one boleto charge against a customer.
type ChargeParams struct {
	CustomerID        string
	Value             string // decimal string, two places
	Description       string
	ExternalReference string // donation id, echoed back in webhooks
	DueDate           string // YYYY-MM-DD; empty = 3 days from now
}

// Charge is the issued bank slip as the gateway reports it.
type Charge struct {
	ID          string `json:"id"`
	Status      string `json:"status"`
	BankSlipURL string `json:"bankSlipUrl"`
	InvoiceURL  string `json:"invoiceUrl"`
	DueDate     string `json:"dueDate"`
}

// WebhookPayment is the payment object inside a webhook event.
type WebhookPayment struct {
	ID                string      `json:"id"`
	Status            string      `json:"status"`
	Value             json.Number `json:"value"`
	ExternalReference string      `json:"externalReference"`
}

// WebhookEvent is one Asaas payment notification. DateCreated is the
// gateway's event timestamp, used to order out-of-order deliveries.
type WebhookEvent struct {
	ID          string         `json:"id"`
	Event       string         `json:"event"`
	DateCreated string         `json:"dateCreated"`
	Payment     WebhookPayment `json:"payment"`
}

// ObservedAt parses the gateway event timestamp in loc, falling back
// to the current time when the field is absent or malformed.
func (e *WebhookEvent) ObservedAt(loc *time.Location) time.Time {
	if t, err := time.ParseInLocation("2006-01-02 15:04:05", e.DateCreated, loc); err == nil {
		return t
	}
	if t, err := time.Parse(time.RFC3339, e.DateCreated); err == nil {
		return t
	}
	return time.Now()
}

// ParseWebhookEvent decodes a webhook body.
func ParseWebhookEvent(body []byte) (*WebhookEvent, error) {
	var ev WebhookEvent
	if err := json.Unmarshal(body, &ev); err != nil {
		return nil, fmt.Errorf("decode webhook: %w", err)
	}
	if ev.Payment.ID == "" {
		return nil, errors.New("webhook event has no payment id")
	}
	return &ev, nil
}

// Client is the gateway interface the donation service consumes.
type Client interface {
	// CreateCustomer registers a customer and returns its cus_... id.
	CreateCustomer(ctx context.Context, p CustomerParams) (string, error)
	// CreateCharge issues a boleto charge and returns the slip data.
	CreateCharge(ctx context.Context, p ChargeParams) (*Charge, error)
	// VerifyWebhookToken checks the asaas-access-token webhook header.
	VerifyWebhookToken(token string) bool
	// Configured reports whether the client has credentials.
	Configured() bool
}

type client struct {
	baseURL      string
	apiKey       string
	webhookToken string
	hc           *http.Client
}

// NewClient creates an Asaas client. An empty apiKey yields a client
// whose Configured() is false; intake then records donations without
// issuing slips, which keeps local development gateway-free.
func NewClient(baseURL, apiKey, webhookToken string) Client {
	return &client{
		baseURL:      baseURL,
		apiKey:       apiKey,
		webhookToken: webhookToken,
		hc:           &http.Client{Timeout: 15 * time.Second},
	}
}

func (c *client) Configured() bool {
	return c.apiKey != ""
}

func (c *client) VerifyWebhookToken(token string) bool {
	if c.webhookToken == "" {
		return false
	}
	return subtle.ConstantTimeCompare([]byte(token), []byte(c.webhookToken)) == 1
}

func (c *client) CreateCustomer(ctx context.Context, p CustomerParams) (string, error) {
	payload := map[string]string{
		"name":       p.Name,
		"email":      p.Email,
		"cpfCnpj":    p.CPF,
		"mobilePhone": p.Phone,
		"address":    p.Address,
		"city":       p.City,
		"state":      p.State,
		"postalCode": p.Zipcode,
	}
	var resp struct {
		ID string `json:"id"`
	}
	if err := c.post(ctx, "/v3/customers", payload, &resp); err != nil {
		return "", err
	}
	if resp.ID == "" {
		return "", errors.New("gateway returned empty customer id")
	}
	return resp.ID, nil
}

func (c *client) CreateCharge(ctx context.Context, p ChargeParams) (*Charge, error) {
	dueDate := p.DueDate
	if dueDate == "" {
		dueDate = time.Now().AddDate(0, 0, 3).Format("2006-01-02")
	}
	payload := map[string]string{
		"customer":          p.CustomerID,
		"billingType":       "BOLETO",
		"value":             p.Value,
		"dueDate":           dueDate,
		"description":       p.Description,
		"externalReference": p.ExternalReference,
	}
	charge := &Charge{}
	if err := c.post(ctx, "/v3/payments", payload, charge); err != nil {
		return nil, err
	}
	if charge.ID == "" {
		return nil, errors.New("gateway returned empty charge id")
	}
	return charge, nil
}

func (c *client) post(ctx context.Context, path string, payload any, out any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(body))
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("access_token", c.apiKey)

	resp, err := c.hc.Do(req)
	if err != nil {
		return fmt.Errorf("asaas %s: %w", path, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 300 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, 2048))
		return fmt.Errorf("asaas %s: status %d: %s", path, resp.StatusCode, b)
	}
	return json.NewDecoder(resp.Body).Decode(out)
}
