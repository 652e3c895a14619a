package catalog

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
	ListProducts(ctx context.Context, search string) ([]Product, error)
	GetProduct(ctx context.Context, productID string) (*Product, error)
	CreateProduct(ctx context.Context, dto CreateProductDTO) (*Product, error)
	UpdateProduct(ctx context.Context, productID string, dto UpdateProductDTO) (*Product, error)
	DeleteProduct(ctx context.Context, productID string) error
	ListPricebooks(ctx context.Context) ([]Pricebook, error)
	GetPricebook(ctx context.Context, pricebookID string) (*Pricebook, error)
	CreatePricebook(ctx context.Context, dto CreatePricebookDTO) (*Pricebook, error)
	UpdatePricebook(ctx context.Context, pricebookID string, dto UpdatePricebookDTO) (*Pricebook, error)
	DeletePricebook(ctx context.Context, pricebookID string) error
	CreatePricebookItem(ctx context.Context, pricebookID string, dto CreatePricebookItemDTO) (*PricebookItem, error)
	ListPricebookItems(ctx context.Context, pricebookID string) ([]PricebookItem, error)
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

func (h *Handler) ListProducts(w http.ResponseWriter, r *http.Request) {
	search := r.URL.Query().Get("search")

	products, err := h.Service.ListProducts(r.Context(), search)
	if err != nil {
		h.Logger.Error("ListProducts: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"products": products,
		"search":   search,
	})
}

func (h *Handler) GetProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	product, err := h.Service.GetProduct(r.Context(), productID)
	if err != nil {
		h.Logger.Error("GetProduct: service error", "error", err, "product_id", productID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) CreateProduct(w http.ResponseWriter, r *http.Request) {
	var dto CreateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreateProduct: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.Service.CreateProduct(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreateProduct: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, product)
}

func (h *Handler) UpdateProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	var dto UpdateProductDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdateProduct: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	product, err := h.Service.UpdateProduct(r.Context(), productID, dto)
	if err != nil {
		h.Logger.Error("UpdateProduct: service error", "error", err, "product_id", productID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, product)
}

func (h *Handler) DeleteProduct(w http.ResponseWriter, r *http.Request) {
	productID := chi.URLParam(r, "id")

	if err := h.Service.DeleteProduct(r.Context(), productID); err != nil {
		h.Logger.Error("DeleteProduct: service error", "error", err, "product_id", productID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) ListPricebooks(w http.ResponseWriter, r *http.Request) {
	pricebooks, err := h.Service.ListPricebooks(r.Context())
	if err != nil {
		h.Logger.Error("ListPricebooks: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"pricebooks": pricebooks,
	})
}

func (h *Handler) GetPricebook(w http.ResponseWriter, r *http.Request) {
	pricebookID := chi.URLParam(r, "id")

	pricebook, err := h.Service.GetPricebook(r.Context(), pricebookID)
	if err != nil {
		h.Logger.Error("GetPricebook: service error", "error", err, "pricebook_id", pricebookID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, pricebook)
}

func (h *Handler) CreatePricebook(w http.ResponseWriter, r *http.Request) {
	var dto CreatePricebookDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePricebook: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pricebook, err := h.Service.CreatePricebook(r.Context(), dto)
	if err != nil {
		h.Logger.Error("CreatePricebook: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, pricebook)
}

func (h *Handler) UpdatePricebook(w http.ResponseWriter, r *http.Request) {
	pricebookID := chi.URLParam(r, "id")

	var dto UpdatePricebookDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("UpdatePricebook: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	pricebook, err := h.Service.UpdatePricebook(r.Context(), pricebookID, dto)
	if err != nil {
		h.Logger.Error("UpdatePricebook: service error", "error", err, "pricebook_id", pricebookID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, pricebook)
}

func (h *Handler) DeletePricebook(w http.ResponseWriter, r *http.Request) {
	pricebookID := chi.URLParam(r, "id")

	if err := h.Service.DeletePricebook(r.Context(), pricebookID); err != nil {
		h.Logger.Error("DeletePricebook: service error", "error", err, "pricebook_id", pricebookID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]string{"status": "deleted"})
}

func (h *Handler) CreatePricebookItem(w http.ResponseWriter, r *http.Request) {
	pricebookID := chi.URLParam(r, "id")

	var dto CreatePricebookItemDTO
	if err := json.NewDecoder(r.Body).Decode(&dto); err != nil {
		h.Logger.Error("CreatePricebookItem: invalid request body", "error", err)
		h.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	item, err := h.Service.CreatePricebookItem(r.Context(), pricebookID, dto)
	if err != nil {
		h.Logger.Error("CreatePricebookItem: service error", "error", err, "pricebook_id", pricebookID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, item)
}

// ListPricebookItems serves only the items created through this process;
// the partial marker tells callers the view is incomplete across sessions.
func (h *Handler) ListPricebookItems(w http.ResponseWriter, r *http.Request) {
	pricebookID := chi.URLParam(r, "id")

	items, err := h.Service.ListPricebookItems(r.Context(), pricebookID)
	if err != nil {
		h.Logger.Error("ListPricebookItems: service error", "error", err, "pricebook_id", pricebookID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"items":   items,
		"partial": true,
	})
}
