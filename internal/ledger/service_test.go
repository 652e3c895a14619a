package ledger_test

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"testing"
	"time"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/saasrevops/revenue-gateway/internal/cache"
	"github.com/saasrevops/revenue-gateway/internal/ledger"
)

func TestLedger(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Ledger Suite")
}

// Mock platform ledger API client for testing
type mockLedgerClient struct {
	entries map[string][]ledger.JournalEntry

	listCalls map[string]int

	reverseError error
}

func newMockLedgerClient() *mockLedgerClient {
	return &mockLedgerClient{
		entries:   make(map[string][]ledger.JournalEntry),
		listCalls: make(map[string]int),
	}
}

func (m *mockLedgerClient) ListJournalEntries(ctx context.Context, period string) ([]ledger.JournalEntry, error) {
	m.listCalls[period]++
	return m.entries[period], nil
}

func (m *mockLedgerClient) GetJournalEntry(ctx context.Context, entryID string) (*ledger.JournalEntry, error) {
	for _, entries := range m.entries {
		for i := range entries {
			if entries[i].ID == entryID {
				return &entries[i], nil
			}
		}
	}
	return nil, errors.New("journal entry not found")
}

func (m *mockLedgerClient) ReverseJournalEntry(ctx context.Context, entryID string) (*ledger.JournalEntry, error) {
	if m.reverseError != nil {
		return nil, m.reverseError
	}
	original, err := m.GetJournalEntry(ctx, entryID)
	if err != nil {
		return nil, err
	}
	original.Status = ledger.EntryStatusReversed
	reversal := ledger.JournalEntry{
		ID:     "je-reversal",
		Period: original.Period,
		Status: ledger.EntryStatusPosted,
	}
	m.entries[original.Period] = append(m.entries[original.Period], reversal)
	return &reversal, nil
}

var _ = Describe("Ledger Service", func() {
	var (
		service    *ledger.Service
		mockClient *mockLedgerClient
		ctx        context.Context
	)

	BeforeEach(func() {
		mockClient = newMockLedgerClient()
		logger := slog.New(slog.NewTextHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelError}))
		store := cache.NewStore(128, time.Minute)
		bus := cache.NewBus(logger)
		service = ledger.NewService(mockClient, store, bus, logger)
		ctx = context.Background()

		mockClient.entries["2026-08"] = []ledger.JournalEntry{
			{ID: "je-1", Period: "2026-08", Status: ledger.EntryStatusPosted},
			{ID: "je-2", Period: "2026-08", Status: ledger.EntryStatusPosted},
		}
		mockClient.entries["2026-07"] = []ledger.JournalEntry{
			{ID: "je-0", Period: "2026-07", Status: ledger.EntryStatusPosted},
		}
	})

	Describe("ListJournalEntries", func() {
		It("should cache each period as its own entry", func() {
			august, err := service.ListJournalEntries(ctx, "2026-08")
			Expect(err).ToNot(HaveOccurred())
			Expect(august).To(HaveLen(2))

			july, err := service.ListJournalEntries(ctx, "2026-07")
			Expect(err).ToNot(HaveOccurred())
			Expect(july).To(HaveLen(1))

			_, err = service.ListJournalEntries(ctx, "2026-08")
			Expect(err).ToNot(HaveOccurred())

			Expect(mockClient.listCalls["2026-08"]).To(Equal(1))
			Expect(mockClient.listCalls["2026-07"]).To(Equal(1))
		})
	})

	Describe("ReverseJournalEntry", func() {
		It("should return the reversing entry and stale the period lists", func() {
			_, err := service.ListJournalEntries(ctx, "2026-08")
			Expect(err).ToNot(HaveOccurred())

			reversal, err := service.ReverseJournalEntry(ctx, "je-1")
			Expect(err).ToNot(HaveOccurred())
			Expect(reversal.ID).To(Equal("je-reversal"))
			Expect(reversal.Status).To(Equal(ledger.EntryStatusPosted))

			entries, err := service.ListJournalEntries(ctx, "2026-08")
			Expect(err).ToNot(HaveOccurred())
			Expect(entries).To(HaveLen(3))
			Expect(mockClient.listCalls["2026-08"]).To(Equal(2))
		})

		It("should surface a refusal to reverse an already reversed entry", func() {
			mockClient.reverseError = errors.New("entry already reversed")

			_, err := service.ReverseJournalEntry(ctx, "je-1")

			Expect(err).To(MatchError(mockClient.reverseError))
		})
	})
})
