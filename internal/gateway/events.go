package gateway

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jamal0042/boomPlan/internal/models"
)

// EventService talks to the remote API's event catalog endpoints.
type EventService struct {
	client *Client
}

// NewEventService creates an event gateway over the shared client.
func NewEventService(client *Client) *EventService {
	return &EventService{client: client}
}

type eventListEnvelope struct {
	Events []models.Event `json:"events"`
}

type eventEnvelope struct {
	Message string        `json:"message,omitempty"`
	Event   *models.Event `json:"event"`
}

// List fetches events matching the filters. A nil filter fetches
// everything. This is an unauthenticated read.
func (s *EventService) List(ctx context.Context, filters *models.SearchFilters) ([]models.Event, error) {
	var out eventListEnvelope
	if err := s.client.do(ctx, http.MethodGet, "/events", filters.Values(), nil, &out, false); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// ListByOrganizer fetches the events owned by an organizer. The remote
// API requires the caller's credential for this view.
func (s *EventService) ListByOrganizer(ctx context.Context, organizerID int) ([]models.Event, error) {
	query := url.Values{}
	query.Set("organizer_id", strconv.Itoa(organizerID))

	var out eventListEnvelope
	if err := s.client.do(ctx, http.MethodGet, "/events", query, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Events, nil
}

// Get fetches a single event by id, with its ticket types embedded when
// the remote API includes them. A miss is reported as ErrNotFound.
func (s *EventService) Get(ctx context.Context, id int) (*models.Event, error) {
	var out eventEnvelope
	err := s.client.do(ctx, http.MethodGet, fmt.Sprintf("/events/%d", id), nil, nil, &out, false)
	if err != nil {
		var apiErr *Error
		if errors.As(err, &apiErr) && apiErr.Status == http.StatusNotFound {
			return nil, ErrNotFound
		}
		return nil, err
	}
	if out.Event == nil {
		return nil, ErrNotFound
	}
	return out.Event, nil
}

// Create persists a new event with its ticket types, optionally
// attaching an image binary. Requires a persisted credential.
func (s *EventService) Create(ctx context.Context, req models.EventRequest, image *Upload) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, http.MethodPost, "/events", req, image)
}

// Update replaces an event's fields, optionally attaching a new image
// binary. Requires a persisted credential.
func (s *EventService) Update(ctx context.Context, id int, req models.EventRequest, image *Upload) (*models.Event, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}
	return s.mutate(ctx, http.MethodPut, fmt.Sprintf("/events/%d", id), req, image)
}

func (s *EventService) mutate(ctx context.Context, method, path string, req models.EventRequest, image *Upload) (*models.Event, error) {
	var out eventEnvelope
	var err error
	if image != nil {
		err = s.client.doMultipart(ctx, method, path, "event", req, image, &out)
	} else {
		err = s.client.do(ctx, method, path, nil, req, &out, true)
	}
	if err != nil {
		return nil, err
	}
	if out.Event == nil {
		return nil, errors.New("no event in response")
	}
	return out.Event, nil
}
