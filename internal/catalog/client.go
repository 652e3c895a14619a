package catalog

import (
	"context"
	"fmt"
	"net/url"

	"github.com/saasrevops/revenue-gateway/internal/upstream"
)

// Client wraps the platform's catalog endpoints. Each method is one HTTP
// call.
type Client struct {
	api *upstream.Client
}

func NewClient(api *upstream.Client) *Client {
	return &Client{api: api}
}

func (c *Client) ListProducts(ctx context.Context) ([]Product, error) {
	var products []Product
	if err := c.api.Get(ctx, "/catalog/products", &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) GetProduct(ctx context.Context, productID string) (*Product, error) {
	var product Product
	if err := c.api.Get(ctx, "/catalog/products/"+url.PathEscape(productID), &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, dto CreateProductDTO) (*Product, error) {
	var product Product
	if err := c.api.Post(ctx, "/catalog/products", dto, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) UpdateProduct(ctx context.Context, productID string, dto UpdateProductDTO) (*Product, error) {
	var product Product
	if err := c.api.Patch(ctx, "/catalog/products/"+url.PathEscape(productID), dto, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, productID string) error {
	return c.api.Delete(ctx, "/catalog/products/"+url.PathEscape(productID))
}

func (c *Client) ListPricebooks(ctx context.Context) ([]Pricebook, error) {
	var pricebooks []Pricebook
	if err := c.api.Get(ctx, "/catalog/pricebooks", &pricebooks); err != nil {
		return nil, err
	}
	return pricebooks, nil
}

func (c *Client) GetPricebook(ctx context.Context, pricebookID string) (*Pricebook, error) {
	var pricebook Pricebook
	if err := c.api.Get(ctx, "/catalog/pricebooks/"+url.PathEscape(pricebookID), &pricebook); err != nil {
		return nil, err
	}
	return &pricebook, nil
}

func (c *Client) CreatePricebook(ctx context.Context, dto CreatePricebookDTO) (*Pricebook, error) {
	var pricebook Pricebook
	if err := c.api.Post(ctx, "/catalog/pricebooks", dto, &pricebook); err != nil {
		return nil, err
	}
	return &pricebook, nil
}

func (c *Client) UpdatePricebook(ctx context.Context, pricebookID string, dto UpdatePricebookDTO) (*Pricebook, error) {
	var pricebook Pricebook
	if err := c.api.Patch(ctx, "/catalog/pricebooks/"+url.PathEscape(pricebookID), dto, &pricebook); err != nil {
		return nil, err
	}
	return &pricebook, nil
}

func (c *Client) DeletePricebook(ctx context.Context, pricebookID string) error {
	return c.api.Delete(ctx, "/catalog/pricebooks/"+url.PathEscape(pricebookID))
}

func (c *Client) CreatePricebookItem(ctx context.Context, pricebookID string, dto CreatePricebookItemDTO) (*PricebookItem, error) {
	var item PricebookItem
	path := fmt.Sprintf("/catalog/pricebooks/%s/items", url.PathEscape(pricebookID))
	if err := c.api.Post(ctx, path, dto, &item); err != nil {
		return nil, err
	}
	return &item, nil
}
