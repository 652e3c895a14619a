package catalog

import "errors"

// CreateProductDTO represents the request payload for creating a product
type CreateProductDTO struct {
	Name        string `json:"name"`
	SKU         string `json:"sku"`
	Description string `json:"description"`
}

func (dto CreateProductDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if dto.SKU == "" {
		return errors.New("sku is required")
	}
	return nil
}

// UpdateProductDTO represents the request payload for updating a product
type UpdateProductDTO struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Active      *bool  `json:"active,omitempty"`
}

func (dto UpdateProductDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreatePricebookDTO represents the request payload for creating a pricebook
type CreatePricebookDTO struct {
	Name     string `json:"name"`
	Currency string `json:"currency"`
}

func (dto CreatePricebookDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	if len(dto.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	return nil
}

// UpdatePricebookDTO represents the request payload for updating a pricebook
type UpdatePricebookDTO struct {
	Name string `json:"name"`
}

func (dto UpdatePricebookDTO) Validate() error {
	if dto.Name == "" {
		return errors.New("name is required")
	}
	return nil
}

// CreatePricebookItemDTO prices a product within a pricebook
type CreatePricebookItemDTO struct {
	ProductID      string `json:"product_id"`
	BillingPeriod  string `json:"billing_period"`
	Currency       string `json:"currency"`
	UnitPriceCents int64  `json:"unit_price_cents"`
}

func (dto CreatePricebookItemDTO) Validate() error {
	if dto.ProductID == "" {
		return errors.New("product_id is required")
	}
	switch dto.BillingPeriod {
	case BillingPeriodMonthly, BillingPeriodAnnual, BillingPeriodOneTime:
	default:
		return errors.New("billing_period must be monthly, annual or one_time")
	}
	if len(dto.Currency) != 3 {
		return errors.New("currency must be a 3-letter code")
	}
	if dto.UnitPriceCents < 0 {
		return errors.New("unit_price_cents cannot be negative")
	}
	return nil
}
