package handlers

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/cart"
	"github.com/jamal0042/boomPlan/internal/gateway"
	"github.com/jamal0042/boomPlan/internal/middleware"
	"github.com/jamal0042/boomPlan/pkg/response"
)

// CartHandler exposes the reservation ledger to browser views. It is
// the only component holding the cart's mutating handle.
type CartHandler struct {
	cart   cart.Mutator
	events *gateway.EventService
	log    *zap.Logger
}

// NewCartHandler creates a cart handler.
func NewCartHandler(mutator cart.Mutator, events *gateway.EventService, log *zap.Logger) *CartHandler {
	return &CartHandler{cart: mutator, events: events, log: log}
}

// Register mounts the cart routes. The cart is usable anonymously; the
// remote API enforces authentication at checkout.
func (h *CartHandler) Register(rg *gin.RouterGroup, _ *middleware.Guard) {
	rg.GET("/cart", h.View)
	rg.POST("/cart/items", h.AddItem)
	rg.PUT("/cart/items/:id", h.UpdateItem)
	rg.DELETE("/cart/items/:id", h.RemoveItem)
	rg.DELETE("/cart", h.Clear)
}

type addItemRequest struct {
	EventID  int `json:"event_id" binding:"required"`
	TicketID int `json:"ticket_id" binding:"required"`
	Quantity int `json:"quantity" binding:"required"`
}

type updateItemRequest struct {
	Quantity int `json:"quantity"`
}

type cartView struct {
	Items      []cart.Line `json:"items"`
	TotalItems int         `json:"total_items"`
	TotalPrice int         `json:"total_price"`
}

// View returns the current ledger with its derived totals.
func (h *CartHandler) View(c *gin.Context) {
	response.OK(c, h.view())
}

// AddItem fetches a fresh stock snapshot for the requested ticket type
// and reserves the quantity against it.
func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "event_id, ticket_id and quantity are required")
		return
	}

	event, err := h.events.Get(c.Request.Context(), req.EventID)
	if err != nil {
		remoteError(c, err)
		return
	}

	ticket := event.TicketType(req.TicketID)
	if ticket == nil {
		response.NotFound(c, "ticket type not found for this event")
		return
	}
	if !ticket.IsActive {
		response.Conflict(c, "ticket type is not on sale")
		return
	}

	if err := h.cart.Add(*ticket, req.Quantity); err != nil {
		h.cartError(c, err)
		return
	}

	response.OK(c, h.view())
}

// UpdateItem sets a line's quantity; zero or less removes the line.
func (h *CartHandler) UpdateItem(c *gin.Context) {
	ticketTypeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid ticket type id")
		return
	}

	var req updateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, "quantity is required")
		return
	}

	if err := h.cart.UpdateQuantity(ticketTypeID, req.Quantity); err != nil {
		h.cartError(c, err)
		return
	}

	response.OK(c, h.view())
}

// RemoveItem deletes a line.
func (h *CartHandler) RemoveItem(c *gin.Context) {
	ticketTypeID, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid ticket type id")
		return
	}

	h.cart.Remove(ticketTypeID)
	response.OK(c, h.view())
}

// Clear empties the ledger.
func (h *CartHandler) Clear(c *gin.Context) {
	h.cart.Clear()
	response.NoContent(c)
}

func (h *CartHandler) view() cartView {
	return cartView{
		Items:      h.cart.Lines(),
		TotalItems: h.cart.TotalItems(),
		TotalPrice: h.cart.TotalPrice(),
	}
}

// cartError maps ledger rejections onto facade responses. Availability
// violations keep the remaining count in the message.
func (h *CartHandler) cartError(c *gin.Context, err error) {
	var availErr *cart.AvailabilityError
	switch {
	case errors.As(err, &availErr):
		response.Conflict(c, availErr.Error())
	case errors.Is(err, cart.ErrInvalidQuantity):
		response.BadRequest(c, err.Error())
	default:
		response.Internal(c, err.Error())
	}
}
