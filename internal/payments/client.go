package payments

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saasrevops/revenue-gateway/internal/upstream"
)

// Client wraps the platform's payment endpoints. Each method is one HTTP
// call.
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ListPayments(ctx context.Context, status string) ([]Payment, error) {
	path := "/payments"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var payments []Payment
	if err := c.api.Get(ctx, path, &payments); err != nil {
		return nil, err
	}
	return payments, nil
}

func (c *Client) GetPayment(ctx context.Context, paymentID string) (*Payment, error) {
	var payment Payment
	if err := c.api.Get(ctx, "/payments/"+url.PathEscape(paymentID), &payment); err != nil {
		return nil, err
	}
	return &payment, nil
}

func (c *Client) AllocatePayment(ctx context.Context, paymentID string, dto AllocatePaymentDTO) ([]Allocation, error) {
	var allocations []Allocation
	path := fmt.Sprintf("/payments/%s/allocate", url.PathEscape(paymentID))
	if err := c.api.Post(ctx, path, dto, &allocations); err != nil {
		return nil, err
	}
	return allocations, nil
}

func (c *Client) CreateRefund(ctx context.Context, paymentID string, dto CreateRefundDTO) (*Refund, error) {
	var refund Refund
	path := fmt.Sprintf("/payments/%s/refunds", url.PathEscape(paymentID))
	if err := c.api.Post(ctx, path, dto, &refund); err != nil {
		return nil, err
	}
	return &refund, nil
}
