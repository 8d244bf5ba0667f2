package eventbus

import (
	"sync"
	"time"
)

// DefaultFrame is the delay before queued subscriptions are applied
const DefaultFrame = 16 * time.Millisecond

// Registration identifies a subscription made through a Registrar
type Registration struct {
	id uint64
}

type pendingSubscription struct {
	eventType EventType
	handler   Handler
}

// Registrar batches the subscriptions of one component. Added handlers are
// subscribed on the next frame tick so attach/detach churn within a frame
// never reaches the bus.
type Registrar struct {
	bus   EventBus
	frame time.Duration

	mu      sync.Mutex
	nextID  uint64
	pending map[uint64]pendingSubscription
	order   []uint64
	active  map[uint64]func()
	timer   *time.Timer
}

// NewRegistrar creates a Registrar bound to bus. A non-positive frame uses DefaultFrame.
func NewRegistrar(bus EventBus, frame time.Duration) *Registrar {
	if frame <= 0 {
		frame = DefaultFrame
	}
	return &Registrar{
		bus:     bus,
		frame:   frame,
		pending: make(map[uint64]pendingSubscription),
		active:  make(map[uint64]func()),
	}
}

// Add queues a subscription for the next frame
func (r *Registrar) Add(eventType EventType, handler Handler) Registration {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	id := r.nextID
	r.pending[id] = pendingSubscription{eventType: eventType, handler: handler}
	r.order = append(r.order, id)

	if r.timer == nil {
		r.timer = time.AfterFunc(r.frame, r.Flush)
	}
	return Registration{id: id}
}

// Remove cancels a queued subscription, or unsubscribes an applied one
func (r *Registrar) Remove(reg Registration) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, ok := r.pending[reg.id]; ok {
		delete(r.pending, reg.id)
		return
	}
	if unsubscribe, ok := r.active[reg.id]; ok {
		unsubscribe()
		delete(r.active, reg.id)
	}
}

// Flush applies every queued subscription now
func (r *Registrar) Flush() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	for _, id := range r.order {
		p, ok := r.pending[id]
		if !ok {
			continue
		}
		r.active[id] = r.bus.Subscribe(p.eventType, p.handler)
	}
	r.pending = make(map[uint64]pendingSubscription)
	r.order = nil
}

// Close drops queued subscriptions and unsubscribes applied ones
func (r *Registrar) Close() {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.timer != nil {
		r.timer.Stop()
		r.timer = nil
	}
	r.pending = make(map[uint64]pendingSubscription)
	r.order = nil
	for id, unsubscribe := range r.active {
		unsubscribe()
		delete(r.active, id)
	}
}

// Active returns the number of subscriptions applied to the bus
func (r *Registrar) Active() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.active)
}

// Pending returns the number of subscriptions waiting for the next frame
func (r *Registrar) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.pending)
}
