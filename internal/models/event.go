package models

import (
	"errors"
	"net/url"
	"strconv"
	"strings"
)

// EventStatus represents the publication status of an event.
type EventStatus string

const (
	EventDraft     EventStatus = "draft"
	EventPublished EventStatus = "published"
	EventCancelled EventStatus = "cancelled"
)

// EventCategory represents a category an event can belong to.
type EventCategory struct {
	ID          int    `json:"id"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// Event represents an event listed on the marketplace, optionally
// embedding its ticket types when the remote API includes them.
type Event struct {
	ID            int            `json:"id"`
	OrganizerID   int            `json:"organizer_id"`
	Organizer     *User          `json:"organizer,omitempty"`
	CategoryID    int            `json:"category_id,omitempty"`
	Category      *EventCategory `json:"category,omitempty"`
	Title         string         `json:"title"`
	Description   string         `json:"description,omitempty"`
	Location      string         `json:"location,omitempty"`
	Address       string         `json:"address,omitempty"`
	City          string         `json:"city,omitempty"`
	Country       string         `json:"country,omitempty"`
	StartDatetime string         `json:"start_datetime"`
	EndDatetime   string         `json:"end_datetime"`
	ImageURL      string         `json:"image_url,omitempty"`
	IsPublic      bool           `json:"is_public"`
	Status        EventStatus    `json:"status"`
	CreatedAt     string         `json:"created_at"`
	UpdatedAt     string         `json:"updated_at"`
	Tickets       []TicketType   `json:"tickets,omitempty"`
}

// EventRequest represents event fields sent with create/update calls.
type EventRequest struct {
	Title         string              `json:"title"`
	Description   string              `json:"description,omitempty"`
	Location      string              `json:"location,omitempty"`
	Address       string              `json:"address,omitempty"`
	City          string              `json:"city,omitempty"`
	Country       string              `json:"country,omitempty"`
	CategoryID    int                 `json:"category_id,omitempty"`
	StartDatetime string              `json:"start_datetime"`
	EndDatetime   string              `json:"end_datetime"`
	IsPublic      bool                `json:"is_public"`
	Status        EventStatus         `json:"status,omitempty"`
	Tickets       []TicketTypeRequest `json:"tickets,omitempty"`
}

// SearchFilters represents the criteria an event list fetch can carry.
// Zero values mean "not filtered".
type SearchFilters struct {
	Query       string
	Category    string
	City        string
	DateFrom    string
	DateTo      string
	FreeOnly    bool
	OrganizerID int
}

// TicketType returns the embedded ticket type with the given id, or nil.
func (e *Event) TicketType(id int) *TicketType {
	for i := range e.Tickets {
		if e.Tickets[i].ID == id {
			return &e.Tickets[i]
		}
	}
	return nil
}

// IsPublished returns true if the event is publicly listed.
func (e *Event) IsPublished() bool {
	return e.Status == EventPublished
}

// Validate validates event fields before they are sent to the remote API.
func (req *EventRequest) Validate() error {
	if err := validateEventTitle(req.Title); err != nil {
		return err
	}

	if req.StartDatetime == "" {
		return errors.New("event start date is required")
	}

	if req.EndDatetime == "" {
		return errors.New("event end date is required")
	}

	if err := validateEventStatus(req.Status); err != nil {
		return err
	}

	for i := range req.Tickets {
		if err := req.Tickets[i].Validate(); err != nil {
			return err
		}
	}

	return nil
}

// validateEventTitle validates an event title.
func validateEventTitle(title string) error {
	if title == "" {
		return errors.New("event title is required")
	}

	if len(title) > 200 {
		return errors.New("event title must be less than 200 characters")
	}

	if strings.TrimSpace(title) == "" {
		return errors.New("event title cannot be only whitespace")
	}

	return nil
}

// validateEventStatus validates an event status.
func validateEventStatus(status EventStatus) error {
	switch status {
	case "", EventDraft, EventPublished, EventCancelled:
		return nil
	default:
		return errors.New("invalid event status")
	}
}

// Values encodes the filters as the query parameters the remote API
// expects. Only non-zero criteria are included.
func (f *SearchFilters) Values() url.Values {
	values := url.Values{}
	if f == nil {
		return values
	}

	if f.Query != "" {
		values.Set("query", f.Query)
	}
	if f.City != "" {
		values.Set("city", f.City)
	}
	if f.FreeOnly {
		values.Set("is_free", "true")
	}
	if f.DateFrom != "" {
		values.Set("date_from", f.DateFrom)
	}
	if f.DateTo != "" {
		values.Set("date_to", f.DateTo)
	}
	if f.Category != "" {
		values.Set("category", f.Category)
	}
	if f.OrganizerID != 0 {
		values.Set("organizer_id", strconv.Itoa(f.OrganizerID))
	}

	return values
}
