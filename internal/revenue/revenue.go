// Package revenue fronts the platform's quote, order and contract
// resources for the sales pages. Documents carry line items and monetary
// totals computed and validated by the platform; the gateway never does
// pricing arithmetic of its own.
package revenue

import "time"

type LineItem struct {
	ProductID      string `json:"product_id"`
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
	TotalCents     int64  `json:"total_cents"`
}

type Quote struct {
	ID            string     `json:"id"`
	Number        string     `json:"number"`
	CustomerID    string     `json:"customer_id"`
	Status        string     `json:"status"`
	Items         []LineItem `json:"items"`
	SubtotalCents int64      `json:"subtotal_cents"`
	TaxCents      int64      `json:"tax_cents"`
	TotalCents    int64      `json:"total_cents"`
	Currency      string     `json:"currency"`
	CreatedAt     time.Time  `json:"created_at"`
}

// Quote statuses as the platform reports them.
const (
	QuoteStatusDraft    = "draft"
	QuoteStatusSent     = "sent"
	QuoteStatusAccepted = "accepted"
	QuoteStatusExpired  = "expired"
)

// Order is read-only through the gateway; the platform creates orders from
// accepted quotes.
type Order struct {
	ID         string     `json:"id"`
	Number     string     `json:"number"`
	QuoteID    string     `json:"quote_id"`
	CustomerID string     `json:"customer_id"`
	Status     string     `json:"status"`
	Items      []LineItem `json:"items"`
	TotalCents int64      `json:"total_cents"`
	Currency   string     `json:"currency"`
	CreatedAt  time.Time  `json:"created_at"`
}

type Contract struct {
	ID         string    `json:"id"`
	Number     string    `json:"number"`
	CustomerID string    `json:"customer_id"`
	Status     string    `json:"status"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
	TotalCents int64     `json:"total_cents"`
	Currency   string    `json:"currency"`
	CreatedAt  time.Time `json:"created_at"`
}

const (
	ContractStatusDraft      = "draft"
	ContractStatusActive     = "active"
	ContractStatusTerminated = "terminated"
)
