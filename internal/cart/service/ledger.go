package service

import (
	"encoding/json"
	"sync"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/shopspring/decimal"

	"github.com/freshmart/storefront/internal/cart/domain"
	"github.com/freshmart/storefront/internal/platform/events"
	"github.com/freshmart/storefront/internal/platform/logger"
)

// Ledger is the in-memory cart of one shopping session. Lines are keyed by
// product id and kept in insertion order. Every mutation publishes a domain
// event before returning, so subscribers observe it before the next read.
type Ledger struct {
	mu        sync.Mutex
	lines     []domain.CartLine
	index     map[string]int
	sessionID string
	publisher message.Publisher
}

func NewLedger(sessionID string, publisher message.Publisher) *Ledger {
	return &Ledger{
		index:     make(map[string]int),
		sessionID: sessionID,
		publisher: publisher,
	}
}

// AddItem increments the quantity of an existing line for the snapshot's
// product, or appends a new line with quantity 1.
func (l *Ledger) AddItem(snapshot domain.ProductSnapshot) {
	l.mu.Lock()
	var quantity int
	if idx, ok := l.index[snapshot.ID]; ok {
		l.lines[idx].Quantity++
		quantity = l.lines[idx].Quantity
	} else {
		l.index[snapshot.ID] = len(l.lines)
		l.lines = append(l.lines, domain.CartLine{ProductSnapshot: snapshot, Quantity: 1})
		quantity = 1
	}
	event := l.eventLocked(domain.EventItemAdded, snapshot.ID, quantity)
	l.mu.Unlock()

	l.publish(event)
}

// RemoveItem deletes the whole line for the product id, regardless of its
// quantity. Unknown ids are a no-op.
func (l *Ledger) RemoveItem(productID string) {
	l.mu.Lock()
	idx, ok := l.index[productID]
	if !ok {
		l.mu.Unlock()
		return
	}
	l.removeLineLocked(idx, productID)
	event := l.eventLocked(domain.EventItemRemoved, productID, 0)
	l.mu.Unlock()

	l.publish(event)
}

// UpdateQuantity sets the line's quantity to the given absolute value.
// A quantity of zero or less removes the line. Unknown ids are a no-op.
func (l *Ledger) UpdateQuantity(productID string, quantity int) {
	l.mu.Lock()
	idx, ok := l.index[productID]
	if !ok {
		l.mu.Unlock()
		return
	}
	var event domain.Event
	if quantity <= 0 {
		l.removeLineLocked(idx, productID)
		event = l.eventLocked(domain.EventItemRemoved, productID, 0)
	} else {
		l.lines[idx].Quantity = quantity
		event = l.eventLocked(domain.EventQuantityUpdated, productID, quantity)
	}
	l.mu.Unlock()

	l.publish(event)
}

// Clear removes all lines.
func (l *Ledger) Clear() {
	l.mu.Lock()
	l.lines = nil
	l.index = make(map[string]int)
	event := l.eventLocked(domain.EventCartCleared, "", 0)
	l.mu.Unlock()

	l.publish(event)
}

// Items returns the cart lines in insertion order.
func (l *Ledger) Items() []domain.CartLine {
	l.mu.Lock()
	defer l.mu.Unlock()
	out := make([]domain.CartLine, len(l.lines))
	copy(out, l.lines)
	return out
}

// TotalItems is the sum of all line quantities.
func (l *Ledger) TotalItems() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.totalItemsLocked()
}

// TotalPrice sums price times quantity over all lines, using the snapshot
// price captured at add time. Exact to the cent.
func (l *Ledger) TotalPrice() decimal.Decimal {
	l.mu.Lock()
	defer l.mu.Unlock()
	total := decimal.Zero
	for _, line := range l.lines {
		price := decimal.NewFromFloat(line.Price)
		total = total.Add(price.Mul(decimal.NewFromInt(int64(line.Quantity))))
	}
	return total
}

// Summary bundles the lines and both totals for the UI.
func (l *Ledger) Summary() domain.CartSummary {
	return domain.CartSummary{
		Lines:      l.Items(),
		TotalItems: l.TotalItems(),
		TotalPrice: l.TotalPrice().StringFixed(2),
	}
}

func (l *Ledger) removeLineLocked(idx int, productID string) {
	l.lines = append(l.lines[:idx], l.lines[idx+1:]...)
	delete(l.index, productID)
	for i := idx; i < len(l.lines); i++ {
		l.index[l.lines[i].ID] = i
	}
}

func (l *Ledger) totalItemsLocked() int {
	total := 0
	for _, line := range l.lines {
		total += line.Quantity
	}
	return total
}

func (l *Ledger) eventLocked(eventType, productID string, quantity int) domain.Event {
	return domain.Event{
		Type:       eventType,
		SessionID:  l.sessionID,
		ProductID:  productID,
		Quantity:   quantity,
		TotalItems: l.totalItemsLocked(),
	}
}

func (l *Ledger) publish(event domain.Event) {
	if l.publisher == nil {
		return
	}
	payload, err := json.Marshal(event)
	if err != nil {
		logger.Error("Ledger.publish: marshal event failed", err, "type", event.Type)
		return
	}
	msg := message.NewMessage(watermill.NewUUID(), payload)
	if err := l.publisher.Publish(events.CartTopic, msg); err != nil {
		logger.Error("Ledger.publish: publish failed", err, "type", event.Type)
	}
}
