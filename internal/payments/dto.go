package payments

import "errors"

// AllocationLineDTO is one invoice/amount pair within an allocation request
type AllocationLineDTO struct {
	InvoiceID   string `json:"invoice_id"`
	AmountCents int64  `json:"amount_cents"`
}

// AllocatePaymentDTO represents the request payload for allocating a payment
type AllocatePaymentDTO struct {
	Lines []AllocationLineDTO `json:"lines"`
}

func (dto AllocatePaymentDTO) Validate() error {
	if len(dto.Lines) == 0 {
		return errors.New("at least one allocation line is required")
	}
	for _, line := range dto.Lines {
		if line.InvoiceID == "" {
			return errors.New("invoice_id is required on every line")
		}
		if line.AmountCents <= 0 {
			return errors.New("amount_cents must be greater than 0 on every line")
		}
	}
	return nil
}

// CreateRefundDTO represents the request payload for refunding a payment
type CreateRefundDTO struct {
	AmountCents int64  `json:"amount_cents"`
	Reason      string `json:"reason"`
}

func (dto CreateRefundDTO) Validate() error {
	if dto.AmountCents <= 0 {
		return errors.New("amount_cents must be greater than 0")
	}
	if dto.Reason == "" {
		return errors.New("reason is required")
	}
	return nil
}
