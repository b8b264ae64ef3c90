package adapters

import (
	"encoding/json"

	"ghost-kitchen/internal/core/logger"
	"ghost-kitchen/internal/core/realtime"
	"ghost-kitchen/internal/features/orders/domain"
	"ghost-kitchen/internal/features/orders/ports"

	"go.uber.org/zap"
)

const (
	// EventOrderCreated is broadcast when a new order is persisted.
	EventOrderCreated = "orderCreated"
	// EventOrderStatusChanged is broadcast when an order moves along the pipeline.
	EventOrderStatusChanged = "orderStatusChanged"
)

// orderEvent is the wire envelope for broadcast order events. Clients treat
// every event as "refresh from current store state", never as a delta.
type orderEvent struct {
	Event string        `json:"event"`
	Order *domain.Order `json:"order"`
}

// HubPublisher implements ports.EventPublisher over the WebSocket hub.
type HubPublisher struct {
	hub *realtime.Hub
}

// NewHubPublisher creates a new HubPublisher.
func NewHubPublisher(hub *realtime.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// OrderCreated broadcasts an orderCreated event.
func (p *HubPublisher) OrderCreated(order *domain.Order) {
	p.emit(EventOrderCreated, order)
}

// OrderStatusChanged broadcasts an orderStatusChanged event.
func (p *HubPublisher) OrderStatusChanged(order *domain.Order) {
	p.emit(EventOrderStatusChanged, order)
}

func (p *HubPublisher) emit(event string, order *domain.Order) {
	message, err := json.Marshal(orderEvent{Event: event, Order: order})
	if err != nil {
		logger.Get().Error("Failed to marshal order event",
			zap.String("event", event),
			zap.Error(err),
		)
		return
	}
	p.hub.Broadcast(message)
}

// FanoutPublisher forwards each event to several publishers, e.g. the
// WebSocket hub and the in-process tracking watcher.
type FanoutPublisher struct {
	targets []ports.EventPublisher
}

// NewFanoutPublisher creates a FanoutPublisher over the given targets.
func NewFanoutPublisher(targets ...ports.EventPublisher) *FanoutPublisher {
	return &FanoutPublisher{targets: targets}
}

// OrderCreated forwards the event to every target.
func (p *FanoutPublisher) OrderCreated(order *domain.Order) {
	for _, target := range p.targets {
		target.OrderCreated(order)
	}
}

// OrderStatusChanged forwards the event to every target.
func (p *FanoutPublisher) OrderStatusChanged(order *domain.Order) {
	for _, target := range p.targets {
		target.OrderStatusChanged(order)
	}
}
