// Package events announces order lifecycle changes to connected staff
// screens.
//
// The order service depends only on the Publisher interface, never on a
// transport, so any pub/sub mechanism can stand in (the production
// implementation is the ws hub; tests use an in-memory recorder).
package events

import (
	"encoding/json"

	"github.com/shashiranjanraj/dinehub/app/models"
	"github.com/shashiranjanraj/dinehub/pkg/logger"
	"github.com/shashiranjanraj/dinehub/pkg/metrics"
	"github.com/shashiranjanraj/dinehub/pkg/ws"
)

// Event names pushed over the live channel. On top of the two generic
// names, every status change also emits "order_<status>" so screens can
// subscribe to exactly the transitions they render.
const (
	OrderCreated = "order_created"
	OrderUpdated = "order_updated"
)

// Publisher delivers order lifecycle events to whoever is listening.
// Both methods are fire-and-forget: delivery is best-effort and a publish
// with zero observers is not an error. Implementations must preserve the
// publish order per observer.
type Publisher interface {
	PublishCreated(order models.Order)
	PublishStatusChanged(order models.Order)
}

// Envelope is the wire shape of one event.
type Envelope struct {
	Event string       `json:"event"`
	Order models.Order `json:"order"`
}

// StatusEventName returns the status-specific event name, e.g.
// "order_confirmed".
func StatusEventName(status models.Status) string {
	return "order_" + status.String()
}

// ─── Hub-backed implementation ───────────────────────────────────────────────

// HubPublisher fans events out to every client of a ws.Hub.
type HubPublisher struct {
	hub *ws.Hub
}

func NewHubPublisher(hub *ws.Hub) *HubPublisher {
	return &HubPublisher{hub: hub}
}

// PublishCreated announces a freshly created order.
func (p *HubPublisher) PublishCreated(order models.Order) {
	p.emit(OrderCreated, order)
}

// PublishStatusChanged announces a status transition: the generic
// order_updated event plus the status-named one.
func (p *HubPublisher) PublishStatusChanged(order models.Order) {
	p.emit(OrderUpdated, order)
	p.emit(StatusEventName(order.Status), order)
}

func (p *HubPublisher) emit(event string, order models.Order) {
	payload, err := json.Marshal(Envelope{Event: event, Order: order})
	if err != nil {
		// Never let a broadcast failure surface to the mutation path.
		logger.Error("events: marshal failed", "event", event, "order_id", order.ID.Hex(), "error", err)
		return
	}
	p.hub.Broadcast(payload)
	metrics.EventsPublished.WithLabelValues(event).Inc()
}
