package shop

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hegerb/rohlik-admin/internal/domain"
)

func (c *Client) Products(ctx context.Context) ([]domain.Product, error) {
	var products []domain.Product
	if err := c.call(ctx, "products.list", http.MethodGet, "/products", nil, &products); err != nil {
		return nil, err
	}
	return products, nil
}

func (c *Client) Product(ctx context.Context, id int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d", id)
	if err := c.call(ctx, "products.get", http.MethodGet, path, nil, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) CreateProduct(ctx context.Context, in domain.ProductInput) (*domain.Product, error) {
	var product domain.Product
	if err := c.call(ctx, "products.create", http.MethodPost, "/products", in, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

type updateProductRequest struct {
	domain.ProductInput
	Version int64 `json:"version"`
}

// UpdateProduct echoes the last-seen version so the server's optimistic
// concurrency check can detect a concurrent modification. Conflict
// detection and the resulting error are entirely server-owned.
func (c *Client) UpdateProduct(ctx context.Context, id int64, in domain.ProductInput, version int64) (*domain.Product, error) {
	var product domain.Product
	path := fmt.Sprintf("/products/%d", id)
	body := updateProductRequest{ProductInput: in, Version: version}
	if err := c.call(ctx, "products.update", http.MethodPut, path, body, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

func (c *Client) DeleteProduct(ctx context.Context, id int64) error {
	path := fmt.Sprintf("/products/%d", id)
	return c.call(ctx, "products.delete", http.MethodDelete, path, nil, nil)
}
