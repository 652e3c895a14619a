// Package ledger fronts the platform's journal entries for the reporting
// pages. Entries are read-only except for reversal, which posts a new
// entry upstream.
package ledger

import "time"

type JournalLine struct {
	AccountCode string `json:"account_code"`
	Description string `json:"description"`
	DebitCents  int64  `json:"debit_cents"`
	CreditCents int64  `json:"credit_cents"`
}

type JournalEntry struct {
	ID          string        `json:"id"`
	Number      string        `json:"number"`
	Period      string        `json:"period"`
	Description string        `json:"description"`
	Status      string        `json:"status"`
	Lines       []JournalLine `json:"lines"`
	PostedAt    time.Time     `json:"posted_at"`
}

const (
	EntryStatusPosted   = "posted"
	EntryStatusReversed = "reversed"
)
