package ledger

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saasrevops/revenue-gateway/internal/upstream"
)

// Client wraps the platform's ledger endpoints. Each method is one HTTP
// call.
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ListJournalEntries(ctx context.Context, period string) ([]JournalEntry, error) {
	path := "/ledger/journal-entries"
	if period != "" {
		path += "?period=" + url.QueryEscape(period)
	}
	var entries []JournalEntry
	if err := c.api.Get(ctx, path, &entries); err != nil {
		return nil, err
	}
	return entries, nil
}

func (c *Client) GetJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error) {
	var entry JournalEntry
	if err := c.api.Get(ctx, "/ledger/journal-entries/"+url.PathEscape(entryID), &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}

// ReverseJournalEntry posts a reversal; the platform returns the new
// reversing entry.
func (c *Client) ReverseJournalEntry(ctx context.Context, entryID string) (*JournalEntry, error) {
	var entry JournalEntry
	path := fmt.Sprintf("/ledger/journal-entries/%s/reverse", url.PathEscape(entryID))
	if err := c.api.Post(ctx, path, nil, &entry); err != nil {
		return nil, err
	}
	return &entry, nil
}
