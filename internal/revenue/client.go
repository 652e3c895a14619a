package revenue

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saasrevops/revenue-gateway/internal/upstream"
)

// Client wraps the platform's revenue endpoints. Each method is one HTTP
// call.
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ListQuotes(ctx context.Context, status string) ([]Quote, error) {
	path := "/revenue/quotes"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var quotes []Quote
	if err := c.api.Get(ctx, path, &quotes); err != nil {
		return nil, err
	}
	return quotes, nil
}

func (c *Client) GetQuote(ctx context.Context, quoteID string) (*Quote, error) {
	var quote Quote
	if err := c.api.Get(ctx, "/revenue/quotes/"+url.PathEscape(quoteID), &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) CreateQuote(ctx context.Context, dto CreateQuoteDTO) (*Quote, error) {
	var quote Quote
	if err := c.api.Post(ctx, "/revenue/quotes", dto, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) SendQuote(ctx context.Context, quoteID string) (*Quote, error) {
	var quote Quote
	path := fmt.Sprintf("/revenue/quotes/%s/send", url.PathEscape(quoteID))
	if err := c.api.Post(ctx, path, nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) AcceptQuote(ctx context.Context, quoteID string) (*Quote, error) {
	var quote Quote
	path := fmt.Sprintf("/revenue/quotes/%s/accept", url.PathEscape(quoteID))
	if err := c.api.Post(ctx, path, nil, &quote); err != nil {
		return nil, err
	}
	return &quote, nil
}

func (c *Client) ListOrders(ctx context.Context, status string) ([]Order, error) {
	path := "/revenue/orders"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var orders []Order
	if err := c.api.Get(ctx, path, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) GetOrder(ctx context.Context, orderID string) (*Order, error) {
	var order Order
	if err := c.api.Get(ctx, "/revenue/orders/"+url.PathEscape(orderID), &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) ListContracts(ctx context.Context, status string) ([]Contract, error) {
	path := "/revenue/contracts"
	if status != "" {
		path += "?status=" + url.QueryEscape(status)
	}
	var contracts []Contract
	if err := c.api.Get(ctx, path, &contracts); err != nil {
		return nil, err
	}
	return contracts, nil
}

func (c *Client) GetContract(ctx context.Context, contractID string) (*Contract, error) {
	var contract Contract
	if err := c.api.Get(ctx, "/revenue/contracts/"+url.PathEscape(contractID), &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (c *Client) CreateContract(ctx context.Context, dto CreateContractDTO) (*Contract, error) {
	var contract Contract
	if err := c.api.Post(ctx, "/revenue/contracts", dto, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (c *Client) ActivateContract(ctx context.Context, contractID string) (*Contract, error) {
	var contract Contract
	path := fmt.Sprintf("/revenue/contracts/%s/activate", url.PathEscape(contractID))
	if err := c.api.Post(ctx, path, nil, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}

func (c *Client) TerminateContract(ctx context.Context, contractID string, dto TerminateContractDTO) (*Contract, error) {
	var contract Contract
	path := fmt.Sprintf("/revenue/contracts/%s/terminate", url.PathEscape(contractID))
	if err := c.api.Post(ctx, path, dto, &contract); err != nil {
		return nil, err
	}
	return &contract, nil
}
