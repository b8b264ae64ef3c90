package domain

import (
	"errors"

	"github.com/google/uuid"
)

var (
	ErrInvalidName     = errors.New("product name is required")
	ErrInvalidPrice    = errors.New("product price must be greater than zero")
	ErrProductNotFound = errors.New("product not found")
)

// Product is a menu entry customers can order. The same document is read by
// the order flow when it resolves order items.
type Product struct {
	ID        string  `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Available bool    `json:"available"`
}

// NewProduct creates a new Product and validates it. An empty id is replaced
// with a generated one.
func NewProduct(id, name string, price float64, available bool) (*Product, error) {
	if name == "" {
		return nil, ErrInvalidName
	}
	if price <= 0 {
		return nil, ErrInvalidPrice
	}

	if id == "" {
		id = uuid.NewString()
	}

	return &Product{
		ID:        id,
		Name:      name,
		Price:     price,
		Available: available,
	}, nil
}
