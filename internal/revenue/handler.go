package revenue

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
	ListQuotes(ctx context.Context, status string) ([]Quote, error)
	GetQuote(ctx context.Context, quoteID string) (*Quote, error)
	CreateQuote(ctx context.Context, dto CreateQuoteDTO) (*Quote, error)
	SendQuote(ctx context.Context, quoteID string) (*Quote, error)
	AcceptQuote(ctx context.Context, quoteID string) (*Quote, error)
	ListOrders(ctx context.Context, status string) ([]Order, error)
	GetOrder(ctx context.Context, orderID string) (*Order, error)
	ListContracts(ctx context.Context, status string) ([]Contract, error)
	GetContract(ctx context.Context, contractID string) (*Contract, error)
	CreateContract(ctx context.Context, dto CreateContractDTO) (*Contract, error)
	ActivateContract(ctx context.Context, contractID string) (*Contract, error)
	TerminateContract(ctx context.Context, contractID string, dto TerminateContractDTO) (*Contract, error)
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

func (h *Handler) ListQuotes(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	quotes, err := h.Service.ListQuotes(r.Context(), status)
	if err != nil {
		h.Logger.Error("ListQuotes: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"quotes": quotes,
		"status": status,
	})
}

func (h *Handler) GetQuote(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")

	quote, err := h.Service.GetQuote(r.Context(), quoteID)
	if err != nil {
		h.Logger.Error("GetQuote: service error", "error", err, "quote_id", quoteID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, quote)
}

func (h *Handler) CreateQuote(w http.ResponseWriter, r *http.Request) {
	var dto CreateQuoteDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateQuote: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	quote, err := h.Service.CreateQuote(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateQuote: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, quote)
}

func (h *Handler) SendQuote(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")

	quote, err := h.Service.SendQuote(r.Context(), quoteID)
	if err != nil {
		h.Logger.Error("SendQuote: service error", "error", err, "quote_id", quoteID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, quote)
}

func (h *Handler) AcceptQuote(w http.ResponseWriter, r *http.Request) {
	quoteID := chi.URLParam(r, "id")

	quote, err := h.Service.AcceptQuote(r.Context(), quoteID)
	if err != nil {
		h.Logger.Error("AcceptQuote: service error", "error", err, "quote_id", quoteID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, quote)
}

func (h *Handler) ListOrders(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	orders, err := h.Service.ListOrders(r.Context(), status)
	if err != nil {
		h.Logger.Error("ListOrders: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"orders": orders,
		"status": status,
	})
}

func (h *Handler) GetOrder(w http.ResponseWriter, r *http.Request) {
	orderID := chi.URLParam(r, "id")

	order, err := h.Service.GetOrder(r.Context(), orderID)
	if err != nil {
		h.Logger.Error("GetOrder: service error", "error", err, "order_id", orderID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, order)
}

func (h *Handler) ListContracts(w http.ResponseWriter, r *http.Request) {
	status := r.URL.Query().Get("status")

	contracts, err := h.Service.ListContracts(r.Context(), status)
	if err != nil {
		h.Logger.Error("ListContracts: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"contracts": contracts,
		"status":    status,
	})
}

func (h *Handler) GetContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "id")

	contract, err := h.Service.GetContract(r.Context(), contractID)
	if err != nil {
		h.Logger.Error("GetContract: service error", "error", err, "contract_id", contractID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, contract)
}

func (h *Handler) CreateContract(w http.ResponseWriter, r *http.Request) {
	var dto CreateContractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateContract: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.Service.CreateContract(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateContract: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, contract)
}

func (h *Handler) ActivateContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "id")

	contract, err := h.Service.ActivateContract(r.Context(), contractID)
	if err != nil {
		h.Logger.Error("ActivateContract: service error", "error", err, "contract_id", contractID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, contract)
}

func (h *Handler) TerminateContract(w http.ResponseWriter, r *http.Request) {
	contractID := chi.URLParam(r, "id")

	var dto TerminateContractDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("TerminateContract: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	contract, err := h.Service.TerminateContract(r.Context(), contractID, dto)
	if err != nil {
		h.Logger.Error("TerminateContract: service error", "error", err, "contract_id", contractID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, contract)
}
