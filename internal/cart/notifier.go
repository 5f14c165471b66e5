package cart

import (
	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/models"
)

// Notifier receives the user-visible signals cart mutations emit.
// Signals are observable side effects distinct from the state change
// itself; a rejected operation signals without mutating.
type Notifier interface {
	ItemAdded(ticket models.TicketType, quantity int)
	ItemRemoved(ticketTypeID int)
	Rejected(ticket models.TicketType, err *AvailabilityError)
}

// NopNotifier discards all signals.
type NopNotifier struct{}

func (NopNotifier) ItemAdded(models.TicketType, int)               {}
func (NopNotifier) ItemRemoved(int)                                {}
func (NopNotifier) Rejected(models.TicketType, *AvailabilityError) {}

// LogNotifier writes cart signals to a structured log.
type LogNotifier struct {
	log *zap.Logger
}

// NewLogNotifier creates a notifier backed by the given logger.
func NewLogNotifier(log *zap.Logger) *LogNotifier {
	return &LogNotifier{log: log}
}

func (n *LogNotifier) ItemAdded(ticket models.TicketType, quantity int) {
	n.log.Info("ticket added to cart",
		zap.Int("ticket_type_id", ticket.ID),
		zap.Int("quantity", quantity))
}

func (n *LogNotifier) ItemRemoved(ticketTypeID int) {
	n.log.Info("ticket removed from cart",
		zap.Int("ticket_type_id", ticketTypeID))
}

func (n *LogNotifier) Rejected(ticket models.TicketType, err *AvailabilityError) {
	n.log.Warn("cart operation rejected",
		zap.Int("ticket_type_id", ticket.ID),
		zap.Int("available", err.Available))
}
