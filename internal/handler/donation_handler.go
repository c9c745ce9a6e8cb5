package handler

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vaimebancar/backend/internal/model"
	"github.com/vaimebancar/backend/internal/repository"
	"github.com/vaimebancar/backend/internal/service"
)

// DonationHandler handles donation intake.
type DonationHandler struct {
	svc service.DonationService
}

// NewDonationHandler creates a DonationHandler.
func NewDonationHandler(svc service.DonationService) *DonationHandler {
	return &DonationHandler{svc: svc}
}

type createBoletoRequest struct {
	ProjectID    string      `json:"project_id" validate:"required"`
	Side         model.Side  `json:"side" validate:"required,oneof=help stop"`
	Amount       model.Money `json:"amount" validate:"required"`
	DonorName    string      `json:"donor_name" validate:"required"`
	DonorEmail   string      `json:"donor_email" validate:"required,email"`
	DonorCPF     string      `json:"donor_cpf" validate:"required"`
	DonorPhone   string      `json:"donor_phone" validate:"required"`
	DonorAddress string      `json:"donor_address" validate:"required"`
	DonorCity    string      `json:"donor_city" validate:"required"`
	DonorState   string      `json:"donor_state" validate:"required,len=2"`
	DonorZipcode string      `json:"donor_zipcode" validate:"required"`
	Message      string      `json:"message"`
	Description  string      `json:"description"`
}

// CreateBoleto handles POST /api/donates/boleto: validates the donor
// form, issues the bank slip through the gateway and records the
// donation as pending.
func (h *DonationHandler) CreateBoleto(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")

	var req createBoletoRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_json"})
		return
	}
	if err := validate.Struct(req); err != nil {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "validation_failed", "detail": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_amount"})
		return
	}

	res, err := h.svc.CreateBoleto(r.Context(), service.CreateBoletoRequest{
		ProjectID:    req.ProjectID,
		Side:         req.Side,
		Amount:       req.Amount,
		DonorName:    req.DonorName,
		DonorEmail:   req.DonorEmail,
		DonorCPF:     req.DonorCPF,
		DonorPhone:   req.DonorPhone,
		DonorAddress: req.DonorAddress,
		DonorCity:    req.DonorCity,
		DonorState:   req.DonorState,
		DonorZipcode: req.DonorZipcode,
		Message:      req.Message,
		Description:  req.Description,
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			w.WriteHeader(http.StatusNotFound)
			_ = json.NewEncoder(w).Encode(map[string]string{"error": "project_not_found"})
			return
		}
		slog.Error("boleto donation failed", "error", err, "project_id", req.ProjectID)
		w.WriteHeader(http.StatusBadGateway)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "boleto_failed"})
		return
	}

	w.WriteHeader(http.StatusCreated)
	_ = json.NewEncoder(w).Encode(res)
}
