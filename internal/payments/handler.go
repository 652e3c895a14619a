package payments

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/saasrevops/revenue-gateway/internal/transport"
	"github.com/saasrevops/revenue-gateway/pkg/logger"
)

type ServiceAPI interface {
	ListPayments(ctx context.Context, status string) ([]Payment, error)
	GetPayment(ctx context.Context, paymentID string) (*Payment, error)
	AllocatePayment(ctx context.Context, paymentID string, dto AllocatePaymentDTO) ([]Allocation, error)
	CreateRefund(ctx context.Context, paymentID string, dto CreateRefundDTO) (*Refund, error)
}

type Handler struct {
	*transport.BaseHandler
	Service ServiceAPI
}

func NewHandler(service ServiceAPI) *Handler {
	lg := logger.LoggerWrapper()
	if lg == nil {
		lg = slog.Default()
	}
	return &Handler{
		BaseHandler: transport.NewBaseHandler(lg),
		Service:     service,
	}
}

func (h *Handler) ListPayments(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	payments, err := h.Service.ListPayments(r.Context(), status)
	if err != nil {
		h.Logger.Error("ListPayments: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"payments": payments,
		"status":   status,
	})
}

func (h *Handler) GetPayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")

	payment, err := h.Service.GetPayment(r.Context(), paymentID)
	if err != nil {
		h.Logger.Error("GetPayment: service error", "error", err, "payment_id", paymentID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, payment)
}

func (h *Handler) AllocatePayment(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")

	var dto AllocatePaymentDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("AllocatePayment: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	allocations, err := h.Service.AllocatePayment(r.Context(), paymentID, dto)
	if err != nil {
		h.Logger.Error("AllocatePayment: service error", "error", err, "payment_id", paymentID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, map[string]interface{}{
		"allocations": allocations,
	})
}

func (h *Handler) CreateRefund(w http.ResponseWriter, r *http.Request) {
	paymentID := chi.URLParam(r, "id")

	var dto CreateRefundDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateRefund: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	refund, err := h.Service.CreateRefund(r.Context(), paymentID, dto)
	if err != nil {
		h.Logger.Error("CreateRefund: service error", "error", err, "payment_id", paymentID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, refund)
}
