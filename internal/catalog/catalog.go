// Package catalog fronts the platform's product and pricebook resources.
package catalog

import "time"

type Product struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	SKU         string    `json:"sku"`
	Description string    `json:"description"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type Pricebook struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Currency  string    `json:"currency"`
	IsDefault bool      `json:"is_default"`
	CreatedAt time.Time `json:"created_at"`
}

// PricebookItem prices one product in one pricebook for a billing period
// and currency. The platform exposes no list endpoint for items, so the
// gateway can only show the ones created through it in the current process;
// see Service.ListPricebookItems.
type PricebookItem struct {
	ID             string `json:"id"`
	PricebookID    string `json:"pricebook_id"`
	ProductID      string `json:"product_id"`
	BillingPeriod  string `json:"billing_period"`
	Currency       string `json:"currency"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

// Billing periods accepted for pricebook items.
const (
	BillingPeriodMonthly = "monthly"
	BillingPeriodAnnual  = "annual"
	BillingPeriodOneTime = "one_time"
)
