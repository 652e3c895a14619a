package revenue

import (
	"errors"
	"fmt"
	"time"
)

// LineItemDTO is one quote or contract line as submitted. Totals are left
// to the platform.
type LineItemDTO struct {
	ProductID      string `json:"product_id"`
	Description    string `json:"description"`
	Quantity       int64  `json:"quantity"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (dto LineItemDTO) Validate() error {
	if dto.ProductID == "" {
		return errors.New("product_id is required")
	}
	if dto.Quantity <= 0 {
		return errors.New("quantity must be greater than 0")
	}
	return nil
}

// CreateQuoteDTO represents the request payload for creating a quote
type CreateQuoteDTO struct {
	CustomerID string        `json:"customer_id"`
	Currency   string        `json:"currency"`
	Items      []LineItemDTO `json:"items"`
}

func (dto CreateQuoteDTO) Validate() error {
	if dto.CustomerID == "" {
		return errors.New("customer_id is required")
	}
	if len(dto.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	if len(dto.Items) == 0 {
		return errors.New("at least one line item is required")
	}
	for i, item := range dto.Items {
		if err := item.Validate(); err != nil {
			return fmt.Errorf("item %d: %w", i+1, err)
		}
	}
	return nil
}

// CreateContractDTO represents the request payload for creating a contract
type CreateContractDTO struct {
	CustomerID string    `json:"customer_id"`
	QuoteID    string    `json:"quote_id,omitempty"`
	StartDate  time.Time `json:"start_date"`
	EndDate    time.Time `json:"end_date"`
}

func (dto CreateContractDTO) Validate() error {
	if dto.CustomerID == "" {
		return errors.New("customer_id is required")
	}
	if dto.StartDate.IsZero() {
		return errors.New("start_date is required")
	}
	if !dto.EndDate.IsZero() && dto.EndDate.Before(dto.StartDate) {
		return errors.New("end_date cannot be before start_date")
	}
	return nil
}

// TerminateContractDTO represents the request for terminating a contract
type TerminateContractDTO struct {
	Reason string `json:"reason"`
}

func (dto TerminateContractDTO) Validate() error {
	if dto.Reason == "" {
		return errors.New("reason is required when terminating a contract")
	}
	return nil
}
