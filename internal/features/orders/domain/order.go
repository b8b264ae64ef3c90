package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
)

// OrderStatus represents the current state of an order in the kitchen pipeline.
type OrderStatus string

const (
	// OrderStatusPreparing indicates the kitchen is working on the order.
	OrderStatusPreparing OrderStatus = "PREPARING"
	// OrderStatusReady indicates the order is ready for pickup.
	OrderStatusReady OrderStatus = "READY"
	// OrderStatusDelivered indicates the order was handed to the customer. Terminal.
	OrderStatusDelivered OrderStatus = "DELIVERED"
)

var (
	// ErrEmptyOrder is returned when an order is created with no items.
	ErrEmptyOrder = errors.New("order must contain at least one item")
	// ErrInvalidQuantity is returned when an item quantity is below 1.
	ErrInvalidQuantity = errors.New("item quantity must be at least 1")
	// ErrInvalidStatus is returned when a status value is not part of the closed enum.
	ErrInvalidStatus = errors.New("invalid order status")
	// ErrInvalidTransition is returned when a status change does not follow the allowed edges.
	ErrInvalidTransition = errors.New("invalid status transition")
	// ErrOrderNotFound is returned when an order id or code does not resolve.
	ErrOrderNotFound = errors.New("order not found")
	// ErrDuplicateCode is returned by the store when the order code is already reserved.
	ErrDuplicateCode = errors.New("order code already exists")
	// ErrStatusConflict is returned when a status update loses a concurrent race.
	ErrStatusConflict = errors.New("order status changed concurrently")
	// ErrProductNotFound is returned when a referenced product does not exist in the catalog.
	ErrProductNotFound = errors.New("product not found")
	// ErrProductUnavailable is returned when a referenced product is not currently sold.
	ErrProductUnavailable = errors.New("product not available")
)

// transitions is the allowed forward-only edge set. DELIVERED has no outgoing
// edges and PREPARING cannot skip straight to DELIVERED.
var transitions = map[OrderStatus]map[OrderStatus]bool{
	OrderStatusPreparing: {OrderStatusReady: true},
	OrderStatusReady:     {OrderStatusDelivered: true},
	OrderStatusDelivered: {},
}

// statusRank orders statuses along the pipeline for comparisons.
var statusRank = map[OrderStatus]int{
	OrderStatusPreparing: 0,
	OrderStatusReady:     1,
	OrderStatusDelivered: 2,
}

// ParseOrderStatus maps an external status string to the internal enum.
// Unmapped values are rejected rather than defaulted.
func ParseOrderStatus(s string) (OrderStatus, error) {
	switch OrderStatus(s) {
	case OrderStatusPreparing, OrderStatusReady, OrderStatusDelivered:
		return OrderStatus(s), nil
	default:
		return "", ErrInvalidStatus
	}
}

// CanTransition reports whether from→to is an allowed edge.
func CanTransition(from, to OrderStatus) bool {
	next := transitions[from]
	return next != nil && next[to]
}

// IsTerminal reports whether no transition leaves the status.
func (s OrderStatus) IsTerminal() bool {
	return len(transitions[s]) == 0 && statusRank[s] > 0
}

// Rank returns the position of the status along the pipeline.
func (s OrderStatus) Rank() int {
	return statusRank[s]
}

// Product is the read-only catalog view the order flow consumes. The catalog
// collaborator owns it; orders only read price and name at creation time.
type Product struct {
	// ID is the catalog identifier of the product.
	ID string `json:"id"`
	// Name is the display name of the product.
	Name string `json:"name"`
	// Price is the current unit price.
	Price float64 `json:"price"`
	// Available indicates whether the product can currently be ordered.
	Available bool `json:"available"`
}

// OrderItem is a line item with the unit price snapshotted at purchase time.
// Later catalog price changes do not affect existing orders.
type OrderItem struct {
	// ProductID references the catalog product.
	ProductID string `json:"productId"`
	// Name is the product name captured at order time for display.
	Name string `json:"name"`
	// Quantity is the number of units purchased.
	Quantity int `json:"quantity"`
	// Price is the unit price captured at order time.
	Price float64 `json:"price"`
}

// Order represents a customer order. Items and total are fixed at creation;
// only the status changes afterwards, through the lifecycle service.
type Order struct {
	// ID is the process-unique identifier, assigned at creation.
	ID string `json:"id"`
	// Code is the short human-typeable identifier used for anonymous lookup.
	Code string `json:"code"`
	// CustomerID references the customer account; empty for guest orders.
	CustomerID string `json:"customerId,omitempty"`
	// Items is the ordered list of line items, fixed at creation.
	Items []OrderItem `json:"items"`
	// Total is the monetary sum computed once at creation.
	Total float64 `json:"total"`
	// Status is the current lifecycle state.
	Status OrderStatus `json:"status"`
	// CreatedAt is the creation timestamp, used for queue ordering and
	// the tracking view's progress estimate.
	CreatedAt time.Time `json:"createdAt"`
}

// NewOrder builds a new order in the PREPARING state and computes its total
// from the snapshotted item prices. The code must already be reserved by the
// caller through the code generator.
func NewOrder(customerID, code string, items []OrderItem) (*Order, error) {
	if len(items) == 0 {
		return nil, ErrEmptyOrder
	}

	var total float64
	for _, item := range items {
		if item.Quantity < 1 {
			return nil, ErrInvalidQuantity
		}
		total += item.Price * float64(item.Quantity)
	}

	return &Order{
		ID:         uuid.NewString(),
		Code:       code,
		CustomerID: customerID,
		Items:      items,
		Total:      total,
		Status:     OrderStatusPreparing,
		CreatedAt:  time.Now().UTC(),
	}, nil
}
