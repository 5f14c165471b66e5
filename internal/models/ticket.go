package models

import (
	"errors"
	"strings"
	"time"
)

// TicketType represents a purchasable category of admission for an event,
// with finite stock. The client only ever holds read-only snapshots of
// this record; stock counts are owned by the remote API.
type TicketType struct {
	ID            int    `json:"id"`
	EventID       int    `json:"event_id"`
	Name          string `json:"type"`
	Description   string `json:"description,omitempty"`
	Price         int    `json:"price"` // Price in cents
	QuantityTotal int    `json:"quantity_total"`
	QuantitySold  int    `json:"quantity_sold"`
	SaleStart     string `json:"sale_start,omitempty"`
	SaleEnd       string `json:"sale_end,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// TicketTypeRequest represents ticket type fields sent with event
// create/update calls.
type TicketTypeRequest struct {
	Name          string `json:"type"`
	Description   string `json:"description,omitempty"`
	Price         int    `json:"price"`
	QuantityTotal int    `json:"quantity_total"`
	SaleStart     string `json:"sale_start,omitempty"`
	SaleEnd       string `json:"sale_end,omitempty"`
	IsActive      bool   `json:"is_active"`
}

// Validate validates a ticket type snapshot.
func (tt *TicketType) Validate() error {
	if err := validateTicketTypeName(tt.Name); err != nil {
		return err
	}

	if err := validateTicketTypePrice(tt.Price); err != nil {
		return err
	}

	return validateTicketTypeQuantities(tt.QuantityTotal, tt.QuantitySold)
}

// Validate validates ticket type fields before they are sent to the
// remote API.
func (req *TicketTypeRequest) Validate() error {
	if err := validateTicketTypeName(req.Name); err != nil {
		return err
	}

	if err := validateTicketTypePrice(req.Price); err != nil {
		return err
	}

	return validateTicketTypeQuantities(req.QuantityTotal, 0)
}

// validateTicketTypeName validates a ticket type name.
func validateTicketTypeName(name string) error {
	if name == "" {
		return errors.New("ticket type name is required")
	}

	if len(name) > 100 {
		return errors.New("ticket type name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("ticket type name cannot be only whitespace")
	}

	return nil
}

// validateTicketTypePrice validates a ticket type price.
func validateTicketTypePrice(price int) error {
	if price < 0 {
		return errors.New("ticket price cannot be negative")
	}

	return nil
}

// validateTicketTypeQuantities validates stock counts.
func validateTicketTypeQuantities(total, sold int) error {
	if total < 0 {
		return errors.New("ticket quantity cannot be negative")
	}

	if sold < 0 {
		return errors.New("tickets sold cannot be negative")
	}

	if sold > total {
		return errors.New("tickets sold cannot exceed total quantity")
	}

	return nil
}

// Available returns the number of tickets still purchasable for this
// snapshot, never negative.
func (tt *TicketType) Available() int {
	available := tt.QuantityTotal - tt.QuantitySold
	if available < 0 {
		return 0
	}
	return available
}

// IsSoldOut returns true if all tickets are sold.
func (tt *TicketType) IsSoldOut() bool {
	return tt.QuantitySold >= tt.QuantityTotal
}

// IsOnSale returns true if the ticket type is active and the current
// time falls inside its sale window. An absent or unparseable bound
// does not restrict the window.
func (tt *TicketType) IsOnSale() bool {
	if !tt.IsActive {
		return false
	}

	now := time.Now()
	if start, ok := parseWireTime(tt.SaleStart); ok && now.Before(start) {
		return false
	}
	if end, ok := parseWireTime(tt.SaleEnd); ok && now.After(end) {
		return false
	}
	return true
}

// PriceInCurrency returns the price in the main currency as a float.
func (tt *TicketType) PriceInCurrency() float64 {
	return float64(tt.Price) / 100.0
}

// wireTimeFormats lists the timestamp layouts the remote API is known
// to emit.
var wireTimeFormats = []string{
	time.RFC3339,
	"2006-01-02 15:04:05",
	"2006-01-02",
}

// parseWireTime parses a timestamp string from the remote API.
func parseWireTime(s string) (time.Time, bool) {
	if s == "" {
		return time.Time{}, false
	}
	for _, layout := range wireTimeFormats {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}
