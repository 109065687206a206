package handler

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/pmerrill/mortgage-ledger/internal/domain"
	"github.com/pmerrill/mortgage-ledger/internal/ledger"
	"github.com/pmerrill/mortgage-ledger/internal/service"
	customError "github.com/pmerrill/mortgage-ledger/pkg/errors"
	"github.com/pmerrill/mortgage-ledger/pkg/response"
)

type LedgerHandler struct {
	service   *service.LedgerService
	validator *validator.Validate
}

func NewLedgerHandler(service *service.LedgerService) *LedgerHandler {
	return &LedgerHandler{
		service:   service,
		validator: validator.New(),
	}
}

// GetSummary returns the dashboard statistics.
func (h *LedgerHandler) GetSummary(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Summary(r.Context()))
}

// GetLedger lists the ledger with cumulative totals. Query parameters:
// order=asc|desc (default asc), limit=N (0 = all).
func (h *LedgerHandler) GetLedger(w http.ResponseWriter, r *http.Request) {
	order := ledger.OrderAsc
	if r.URL.Query().Get("order") == string(ledger.OrderDesc) {
		order = ledger.OrderDesc
	}
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			response.BadRequest(w, "limit must be a non-negative integer", err)
			return
		}
		limit = n
	}
	response.Success(w, domain.LedgerResponse{
		Rows:  h.service.Ledger(order, limit),
		Order: string(order),
	})
}

// CreatePayment adds a new ledger entry.
func (h *LedgerHandler) CreatePayment(w http.ResponseWriter, r *http.Request) {
	var req domain.SavePaymentRequest
	if !h.decode(w, r, &req) {
		return
	}
	rec, err := h.service.AddPayment(r.Context(), &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Created(w, rec)
}

// UpdatePayment replaces an existing entry wholesale.
func (h *LedgerHandler) UpdatePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	var req domain.SavePaymentRequest
	if !h.decode(w, r, &req) {
		return
	}
	rec, err := h.service.UpdatePayment(r.Context(), id, &req)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, rec)
}

// DeletePayment removes an entry by id.
func (h *LedgerHandler) DeletePayment(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	if err := h.service.DeletePayment(r.Context(), id); err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, map[string]string{"deleted": id})
}

// SuggestSplit returns the calculator suggestion for a record being composed.
func (h *LedgerHandler) SuggestSplit(w http.ResponseWriter, r *http.Request) {
	var req domain.SplitRequest
	if !h.decode(w, r, &req) {
		return
	}
	response.Success(w, h.service.SuggestSplit(&req))
}

// ExportJSON streams the full ledger backup.
func (h *LedgerHandler) ExportJSON(w http.ResponseWriter, r *http.Request) {
	data, err := h.service.ExportJSON()
	if err != nil {
		response.InternalServerError(w, "Failed to serialize ledger", err)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("Content-Disposition", `attachment; filename="payments-backup.json"`)
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

// ExportCSV streams the ledger as a flat delimited table.
func (h *LedgerHandler) ExportCSV(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="house-payments.csv"`)
	w.WriteHeader(http.StatusOK)
	w.Write(h.service.ExportCSV())
}

// ImportLedger wholesale-replaces the ledger from an uploaded JSON backup.
func (h *LedgerHandler) ImportLedger(w http.ResponseWriter, r *http.Request) {
	raw, err := io.ReadAll(r.Body)
	if err != nil {
		response.BadRequest(w, "Failed to read request body", err)
		return
	}
	count, err := h.service.ImportLedger(r.Context(), raw)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	response.Success(w, map[string]int{"imported": count})
}

// ResetLedger clears every payment record, keeping the loan config.
func (h *LedgerHandler) ResetLedger(w http.ResponseWriter, r *http.Request) {
	h.service.Reset(r.Context())
	response.Success(w, map[string]string{"status": "reset"})
}

// GetConfig returns the loan configuration.
func (h *LedgerHandler) GetConfig(w http.ResponseWriter, r *http.Request) {
	response.Success(w, h.service.Config())
}

// UpdateConfig replaces the loan configuration.
func (h *LedgerHandler) UpdateConfig(w http.ResponseWriter, r *http.Request) {
	var req domain.UpdateConfigRequest
	if !h.decode(w, r, &req) {
		return
	}
	response.Success(w, h.service.UpdateConfig(r.Context(), &req))
}

// decode unmarshals and validates a JSON request body, writing a 400 on
// failure.
func (h *LedgerHandler) decode(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		response.BadRequest(w, "Invalid request body", err)
		return false
	}
	if err := h.validator.Struct(dst); err != nil {
		response.BadRequest(w, "Request validation failed", err)
		return false
	}
	return true
}

func writeServiceError(w http.ResponseWriter, err error) {
	switch {
	case customError.IsNotFound(err):
		response.NotFound(w, err.Error())
	case customError.IsValidation(err):
		response.BadRequest(w, "Payment validation failed", err)
	default:
		var be *customError.BusinessError
		if errors.As(err, &be) && be.Code == customError.ErrCodeDeserializationFailed {
			response.BadRequest(w, "Import rejected", err)
			return
		}
		response.InternalServerError(w, "Internal error", err)
	}
}
