package domain

type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
	Version       int64   `json:"version"`
}

// ProductInput is the client-side payload for create and update requests.
// The server assigns ID and Version on create; updates echo the last-seen
// version separately so the server can detect concurrent modification.
type ProductInput struct {
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stockQuantity"`
}
