package shop

import (
	"context"
	"fmt"
	"net/http"

	"github.com/hegerb/rohlik-admin/internal/domain"
)

func (c *Client) Orders(ctx context.Context) ([]domain.Order, error) {
	var orders []domain.Order
	if err := c.call(ctx, "orders.list", http.MethodGet, "/orders", nil, &orders); err != nil {
		return nil, err
	}
	return orders, nil
}

func (c *Client) Order(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/orders/%d", id)
	if err := c.call(ctx, "orders.get", http.MethodGet, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CompleteOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/orders/%d/complete", id)
	if err := c.call(ctx, "orders.complete", http.MethodPost, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

func (c *Client) CancelOrder(ctx context.Context, id int64) (*domain.Order, error) {
	var order domain.Order
	path := fmt.Sprintf("/orders/%d/cancel", id)
	if err := c.call(ctx, "orders.cancel", http.MethodPost, path, nil, &order); err != nil {
		return nil, err
	}
	return &order, nil
}

// UpdateOrderStatus dispatches a requested transition to the matching
// endpoint. The state machine is one-way: only COMPLETED and CANCELLED are
// reachable, and anything else (including PENDING) is rejected here before
// any network call.
func (c *Client) UpdateOrderStatus(ctx context.Context, id int64, status domain.OrderStatus) (*domain.Order, error) {
	switch status {
	case domain.OrderStatusCompleted:
		return c.CompleteOrder(ctx, id)
	case domain.OrderStatusCancelled:
		return c.CancelOrder(ctx, id)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnsupportedStatus, status)
	}
}
