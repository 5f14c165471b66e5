// Package cart maintains the client-side ledger of requested tickets.
// Every mutation enforces availability against the last known stock
// snapshot; the remote API remains the final arbiter at checkout.
package cart

import (
	"errors"
	"fmt"
	"sync"

	"github.com/jamal0042/boomPlan/internal/models"
)

// ErrInvalidQuantity is returned when an add requests zero or fewer
// tickets.
var ErrInvalidQuantity = errors.New("quantity must be greater than 0")

// AvailabilityError is returned when a requested quantity exceeds the
// remaining stock of a ticket type. The ledger is left unchanged.
type AvailabilityError struct {
	TicketTypeID int
	Available    int
}

func (e *AvailabilityError) Error() string {
	return fmt.Sprintf("only %d tickets available", e.Available)
}

// Line represents one ticket-type reservation request. The snapshot is
// the freshest stock record seen for that ticket type.
type Line struct {
	TicketTypeID int               `json:"ticket_type_id"`
	Ticket       models.TicketType `json:"ticket"`
	Quantity     int               `json:"quantity"`
}

// Subtotal returns quantity times unit price, in cents.
func (l Line) Subtotal() int {
	return l.Quantity * l.Ticket.Price
}

// Reader is the read-only view of a cart handed to consumers that only
// display totals.
type Reader interface {
	Lines() []Line
	TotalItems() int
	TotalPrice() int
}

// Mutator is the full cart handle. By construction only the component
// holding it can change the ledger.
type Mutator interface {
	Reader
	Add(ticket models.TicketType, quantity int) error
	Remove(ticketTypeID int)
	UpdateQuantity(ticketTypeID, quantity int) error
	Clear()
}

// Cart is the in-memory reservation ledger. Lines keep insertion order
// and are unique per ticket type. A single mutex serializes all
// mutations, so concurrent adds for one ticket type can never exceed
// availability through a lost update.
type Cart struct {
	mu       sync.Mutex
	lines    []*Line
	notifier Notifier
}

var _ Mutator = (*Cart)(nil)

// New creates an empty cart. A nil notifier is replaced by a no-op one.
func New(notifier Notifier) *Cart {
	if notifier == nil {
		notifier = NopNotifier{}
	}
	return &Cart{notifier: notifier}
}

// Add puts quantity tickets of the given type into the cart. If a line
// for the ticket type already exists its quantity grows and its
// snapshot is refreshed to the one passed in; otherwise a new line is
// appended. The whole operation is rejected when the combined quantity
// would exceed the snapshot's availability.
func (c *Cart) Add(ticket models.TicketType, quantity int) error {
	if quantity <= 0 {
		return ErrInvalidQuantity
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	available := ticket.Available()

	if line := c.find(ticket.ID); line != nil {
		newQuantity := line.Quantity + quantity
		if newQuantity > available {
			err := &AvailabilityError{TicketTypeID: ticket.ID, Available: available}
			c.notifier.Rejected(ticket, err)
			return err
		}
		line.Quantity = newQuantity
		line.Ticket = ticket
		c.notifier.ItemAdded(ticket, newQuantity)
		return nil
	}

	if quantity > available {
		err := &AvailabilityError{TicketTypeID: ticket.ID, Available: available}
		c.notifier.Rejected(ticket, err)
		return err
	}

	c.lines = append(c.lines, &Line{
		TicketTypeID: ticket.ID,
		Ticket:       ticket,
		Quantity:     quantity,
	})
	c.notifier.ItemAdded(ticket, quantity)
	return nil
}

// Remove deletes the line for the ticket type if present. Removing an
// absent line leaves the ledger untouched but still signals removal.
func (c *Cart) Remove(ticketTypeID int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.remove(ticketTypeID)
	c.notifier.ItemRemoved(ticketTypeID)
}

// UpdateQuantity sets the line's quantity. A quantity of zero or less
// removes the line. The update is rejected when the new quantity
// exceeds the availability of the line's stored snapshot. An absent
// ticket type is a no-op.
func (c *Cart) UpdateQuantity(ticketTypeID, quantity int) error {
	if quantity <= 0 {
		c.Remove(ticketTypeID)
		return nil
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	line := c.find(ticketTypeID)
	if line == nil {
		return nil
	}

	if available := line.Ticket.Available(); quantity > available {
		err := &AvailabilityError{TicketTypeID: ticketTypeID, Available: available}
		c.notifier.Rejected(line.Ticket, err)
		return err
	}

	line.Quantity = quantity
	return nil
}

// Clear empties the ledger.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.lines = nil
}

// Lines returns a copy of the current lines in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	lines := make([]Line, len(c.lines))
	for i, line := range c.lines {
		lines[i] = *line
	}
	return lines
}

// TotalItems returns the sum of all line quantities, recomputed on
// every call.
func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity
	}
	return total
}

// TotalPrice returns the sum of quantity times price over all lines,
// in cents, recomputed on every call.
func (c *Cart) TotalPrice() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := 0
	for _, line := range c.lines {
		total += line.Quantity * line.Ticket.Price
	}
	return total
}

// find returns the line for a ticket type. Caller holds the lock.
func (c *Cart) find(ticketTypeID int) *Line {
	for _, line := range c.lines {
		if line.TicketTypeID == ticketTypeID {
			return line
		}
	}
	return nil
}

// remove deletes the line for a ticket type. Caller holds the lock.
func (c *Cart) remove(ticketTypeID int) {
	for i, line := range c.lines {
		if line.TicketTypeID == ticketTypeID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}
