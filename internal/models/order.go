package models

// OrderStatus represents the payment status of an order.
type OrderStatus string

const (
	OrderPending   OrderStatus = "pending"
	OrderPaid      OrderStatus = "paid"
	OrderCancelled OrderStatus = "cancelled"
	OrderRefunded  OrderStatus = "refunded"
)

// OrderTicketStatus represents the status of an issued ticket.
type OrderTicketStatus string

const (
	OrderTicketValid     OrderTicketStatus = "valid"
	OrderTicketUsed      OrderTicketStatus = "used"
	OrderTicketCancelled OrderTicketStatus = "cancelled"
)

// Order represents a past purchase as returned by the remote API.
type Order struct {
	ID            int           `json:"id"`
	UserID        int           `json:"user_id"`
	EventID       int           `json:"event_id"`
	OrderDatetime string        `json:"order_datetime"`
	TotalAmount   int           `json:"total_amount"` // in cents
	Status        OrderStatus   `json:"status"`
	PaymentMethod string        `json:"payment_method,omitempty"`
	Tickets       []OrderTicket `json:"tickets,omitempty"`
}

// OrderTicket represents one issued ticket line inside an order.
type OrderTicket struct {
	ID         int               `json:"id"`
	OrderID    int               `json:"order_id"`
	TicketID   int               `json:"ticket_id"`
	Quantity   int               `json:"quantity"`
	TicketCode string            `json:"ticket_code"`
	Status     OrderTicketStatus `json:"status"`
	Ticket     *TicketType       `json:"ticket,omitempty"`
}

// IsPaid returns true if the order has been paid.
func (o *Order) IsPaid() bool {
	return o.Status == OrderPaid
}

// TicketCount returns the total number of tickets across all lines.
func (o *Order) TicketCount() int {
	count := 0
	for i := range o.Tickets {
		count += o.Tickets[i].Quantity
	}
	return count
}

// IsValid returns true if the issued ticket can still be used.
func (ot *OrderTicket) IsValid() bool {
	return ot.Status == OrderTicketValid
}
