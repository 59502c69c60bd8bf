package domain

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "PENDING"
	OrderStatusCompleted OrderStatus = "COMPLETED"
	OrderStatusCancelled OrderStatus = "CANCELLED"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// Terminal reports whether the status permits no further transitions.
// Only PENDING orders may still be completed or cancelled.
func (s OrderStatus) Terminal() bool {
	return s != OrderStatusPending
}

// OrderItem is an immutable snapshot taken at order creation time; the
// product name and unit price do not follow later product changes.
type OrderItem struct {
	ID          int64   `json:"id"`
	ProductID   int64   `json:"productId"`
	ProductName string  `json:"productName"`
	Quantity    int     `json:"quantity"`
	Price       float64 `json:"price"`
}

type Order struct {
	ID        int64       `json:"id"`
	CreatedAt time.Time   `json:"createdAt"`
	ExpiresAt *time.Time  `json:"expiresAt,omitempty"`
	Status    OrderStatus `json:"status"`
	Items     []OrderItem `json:"items"`
	Version   int64       `json:"version"`
	Expired   bool        `json:"expired"`
}

// Total sums unit price times quantity over all items. It is computed for
// display only; the authoritative value lives on the server.
func (o Order) Total() float64 {
	var total float64
	for _, item := range o.Items {
		total += item.Price * float64(item.Quantity)
	}
	return total
}
