package ledger

import (
	"context"
	"log/slog"
	"net/http"

	"github.com/go-chi/chi"

	"github.com/saasrevops/revenue-gateway/internal/transport"
	"github.com/saasrevops/revenue-gateway/pkg/logger"
)

type ServiceAPI interface {
	ListJournalEntries(ctx context.Context, period string) ([]JournalEntry, error)
	GetJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error)
	ReverseJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error)
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

func (h *Handler) ListJournalEntries(w http.ResponseWriter, r *http.Request) {
	period := r.URL.Query().Get("period")

	entries, err := h.Service.ListJournalEntries(r.Context(), period)
	if err != nil {
		h.Logger.Error("ListJournalEntries: service error", "error", err)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, map[string]interface{}{
		"journal_entries": entries,
		"period":          period,
	})
}

func (h *Handler) GetJournalEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	entry, err := h.Service.GetJournalEntry(r.Context(), entryID)
	if err != nil {
		h.Logger.Error("GetJournalEntry: service error", "error", err, "entry_id", entryID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusOK, entry)
}

func (h *Handler) ReverseJournalEntry(w http.ResponseWriter, r *http.Request) {
	entryID := chi.URLParam(r, "id")

	reversal, err := h.Service.ReverseJournalEntry(r.Context(), entryID)
	if err != nil {
		h.Logger.Error("ReverseJournalEntry: service error", "error", err, "entry_id", entryID)
		h.HandleServiceError(w, err)
		return
	}

	h.WriteJSON(w, http.StatusCreated, reversal)
}
