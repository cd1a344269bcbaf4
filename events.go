package engine

import "reflect"

// MaxEventTypes defines the maximum number of unique event types that can be
// registered in the EventBus. This value is fixed at 256.
const MaxEventTypes = 256

// Frame notifications published by Game.Tick, in order: BeforeFixedUpdate and
// AfterFixedUpdate around every fixed step, then BeforeUpdate and AfterUpdate
// around the variable-rate pass. Each carries the elapsed seconds for that
// pass.
type (
	BeforeFixedUpdate struct{ DeltaSeconds float64 }
	AfterFixedUpdate  struct{ DeltaSeconds float64 }
	BeforeUpdate      struct{ DeltaSeconds float64 }
	AfterUpdate       struct{ DeltaSeconds float64 }
)

// Resize is relayed, uninterpreted, from the render backend's resize stream.
type Resize struct {
	Width  int
	Height int
}

// ExitRequest is published when the input aggregator signals an exit; the
// frame that observes it is the last one.
type ExitRequest struct{}

// EventBus is a typed publish/subscribe channel for decoupled communication
// between the engine core and its consumers (profilers, editors, game code).
// Handlers run synchronously, in subscription order, on the thread that
// publishes.
type EventBus struct {
	eventTypeMap    map[reflect.Type]uint8
	handlers        [MaxEventTypes][]eventHandler
	nextEventTypeID uint8
	nextHandlerID   uint64
}

type eventHandler struct {
	fn any
	id uint64
}

// Subscription identifies one registered handler so it can be removed again.
type Subscription struct {
	typeID uint8
	id     uint64
}

// NewEventBus creates an empty bus.
func NewEventBus() *EventBus {
	return &EventBus{}
}

// Subscribe registers a handler for events of type T and returns the handle
// used to unsubscribe it. Handlers fire in the order they were subscribed.
func Subscribe[T any](bus *EventBus, handler func(T)) Subscription {
	t := reflect.TypeFor[T]()
	id := bus.getEventTypeID(t)
	bus.nextHandlerID++
	bus.handlers[id] = append(bus.handlers[id], eventHandler{fn: handler, id: bus.nextHandlerID})
	return Subscription{typeID: id, id: bus.nextHandlerID}
}

// Unsubscribe removes a previously registered handler. Unsubscribing twice is
// a no-op. Removal is copy-on-write: a publish in flight keeps iterating its
// own stable view, so handlers may unsubscribe themselves or each other from
// inside a handler.
func (bus *EventBus) Unsubscribe(sub Subscription) {
	hs := bus.handlers[sub.typeID]
	for i, h := range hs {
		if h.id == sub.id {
			next := make([]eventHandler, 0, len(hs)-1)
			next = append(next, hs[:i]...)
			next = append(next, hs[i+1:]...)
			bus.handlers[sub.typeID] = next
			return
		}
	}
}

// Publish broadcasts an event of type T to all registered handlers for that
// type, synchronously and in subscription order.
func Publish[T any](bus *EventBus, event T) {
	t := reflect.TypeFor[T]()
	if id, ok := bus.eventTypeMap[t]; ok {
		for _, h := range bus.handlers[id] {
			h.fn.(func(T))(event)
		}
	}
}

// getEventTypeID retrieves or assigns an ID for the event type.
func (bus *EventBus) getEventTypeID(t reflect.Type) uint8 {
	if bus.eventTypeMap == nil {
		bus.eventTypeMap = make(map[reflect.Type]uint8)
	}
	if id, ok := bus.eventTypeMap[t]; ok {
		return id
	}
	if len(bus.eventTypeMap) >= MaxEventTypes {
		panic("engine: too many event types")
	}
	id := bus.nextEventTypeID
	bus.nextEventTypeID++
	bus.eventTypeMap[t] = id
	return id
}
