package ledger

import (
	"context"
	"log/slog"

	"github.com/saasrevops/revenue-gateway/internal/cache"
)

const (
	EventEntryReversed = "ledger.entry.reversed"
)

const (
	keyEntries = "ledger.journal_entries"
)

type ClientAPI interface {
	ListJournalEntries(ctx context.Context, period string) ([]JournalEntry, error)
	GetJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error)
	ReverseJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error)
}

type Service struct {
	client ClientAPI
	store  *cache.Store
	bus    *cache.Bus
	logger *slog.Logger
}

func NewService(client ClientAPI, store *cache.Store, bus *cache.Bus, logger *slog.Logger) *Service {
	s := &Service{
		client: client,
		store:  store,
		bus:    bus,
		logger: logger,
	}
	s.registerInvalidations()
	return s
}

func (s *Service) registerInvalidations() {
	s.bus.Subscribe(EventEntryReversed, func(ctx context.Context, ev cache.Event) {
		s.store.InvalidatePrefix(cache.Key(keyEntries, "list"))
		s.store.Invalidate(cache.Key(keyEntries, "detail", ev.ResourceID))
	})
}

func (s *Service) ListJournalEntries(ctx context.Context, period string) ([]JournalEntry, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyEntries, "list", period), func(ctx context.Context) ([]JournalEntry, error) {
		return s.client.ListJournalEntries(ctx, period)
	})
}

func (s *Service) GetJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error) {
	return cache.Fetch(ctx, s.store, cache.Key(keyEntries, "detail", entryID), func(ctx context.Context) (*JournalEntry, error) {
		return s.client.GetJournalEntry(ctx, entryID)
	})
}

func (s *Service) ReverseJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error) {
	reversal, err := s.client.ReverseJournalEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}

	s.bus.Publish(ctx, cache.Event{Type: EventEntryReversed, ResourceID: entryID})
	s.logger.Info("journal entry reversed", "entry_id", entryID, "reversal_id", reversal.ID)
	return reversal, nil
}
