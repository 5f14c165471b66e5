package gateway

import (
	"context"
	"net/http"

	"github.com/jamal0042/boomPlan/internal/models"
)

// OrderService talks to the remote API's order history endpoints.
type OrderService struct {
	client *Client
}

// NewOrderService creates an order gateway over the shared client.
func NewOrderService(client *Client) *OrderService {
	return &OrderService{client: client}
}

type orderListEnvelope struct {
	Orders []models.Order `json:"orders"`
}

// ListMine fetches the authenticated identity's orders with their
// nested order tickets. The remote API scopes the result to the bearer
// of the credential.
func (s *OrderService) ListMine(ctx context.Context) ([]models.Order, error) {
	var out orderListEnvelope
	if err := s.client.do(ctx, http.MethodGet, "/orders", nil, nil, &out, true); err != nil {
		return nil, err
	}
	return out.Orders, nil
}
