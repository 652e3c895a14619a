// Package payments fronts the platform's payment, refund and allocation
// resources. Allocation math (which invoice absorbs how much) is entirely
// the platform's; the gateway submits lines as entered.
package payments

import "time"

type Payment struct {
	ID               string    `json:"id"`
	CustomerID       string    `json:"customer_id"`
	AmountCents      int64     `json:"amount_cents"`
	UnallocatedCents int64     `json:"unallocated_cents"`
	Currency         string    `json:"currency"`
	Status           string    `json:"status"`
	Method           string    `json:"method"`
	ReceivedAt       time.Time `json:"received_at"`
}

const (
	PaymentStatusPending   = "pending"
	PaymentStatusSettled   = "settled"
	PaymentStatusAllocated = "allocated"
	PaymentStatusRefunded  = "refunded"
)

// Allocation applies part of a payment to an invoice.
type Allocation struct {
	ID          string    `json:"id"`
	PaymentID   string    `json:"payment_id"`
	InvoiceID   string    `json:"invoice_id"`
	AmountCents int64     `json:"amount_cents"`
	CreatedAt   time.Time `json:"created_at"`
}

type Refund struct {
	ID          string    `json:"id"`
	PaymentID   string    `json:"payment_id"`
	AmountCents int64     `json:"amount_cents"`
	Reason      string    `json:"reason"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
}
