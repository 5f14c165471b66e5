package handlers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/jamal0042/boomPlan/internal/authz"
	"github.com/jamal0042/boomPlan/internal/gateway"
	"github.com/jamal0042/boomPlan/internal/middleware"
	"github.com/jamal0042/boomPlan/internal/models"
	"github.com/jamal0042/boomPlan/pkg/response"
)

// CatalogHandler exposes the event catalog and order history gateways
// to browser views.
type CatalogHandler struct {
	events *gateway.EventService
	orders *gateway.OrderService
	log    *zap.Logger
}

// NewCatalogHandler creates a catalog handler.
func NewCatalogHandler(events *gateway.EventService, orders *gateway.OrderService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{events: events, orders: orders, log: log}
}

// Register mounts the catalog routes. Event reads are public; event
// mutation is organizer-gated and order history needs a session.
func (h *CatalogHandler) Register(rg *gin.RouterGroup, guard *middleware.Guard) {
	rg.GET("/events", h.ListEvents)
	rg.GET("/events/:id", h.GetEvent)
	rg.POST("/events", guard.RequireCapability(authz.CapManageEvents), h.CreateEvent)
	rg.PUT("/events/:id", guard.RequireCapability(authz.CapManageEvents), h.UpdateEvent)
	rg.GET("/orders", guard.RequireAuth(), h.ListOrders)
}

// ListEvents fetches events matching the query-string filters.
func (h *CatalogHandler) ListEvents(c *gin.Context) {
	filters := &models.SearchFilters{
		Query:    c.Query("query"),
		Category: c.Query("category"),
		City:     c.Query("city"),
		DateFrom: c.Query("date_from"),
		DateTo:   c.Query("date_to"),
		FreeOnly: c.Query("is_free") == "true",
	}
	if raw := c.Query("organizer_id"); raw != "" {
		id, err := strconv.Atoi(raw)
		if err != nil {
			response.BadRequest(c, "invalid organizer id")
			return
		}
		filters.OrganizerID = id
	}

	var events []models.Event
	var err error
	if filters.OrganizerID != 0 {
		events, err = h.events.ListByOrganizer(c.Request.Context(), filters.OrganizerID)
	} else {
		events, err = h.events.List(c.Request.Context(), filters)
	}
	if err != nil {
		remoteError(c, err)
		return
	}

	response.OK(c, gin.H{"events": events})
}

// GetEvent fetches one event with its ticket types.
func (h *CatalogHandler) GetEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	event, err := h.events.Get(c.Request.Context(), id)
	if err != nil {
		remoteError(c, err)
		return
	}

	response.OK(c, gin.H{"event": event})
}

// CreateEvent forwards a new event, its ticket types and an optional
// image to the remote API.
func (h *CatalogHandler) CreateEvent(c *gin.Context) {
	req, image, ok := h.bindEvent(c)
	if !ok {
		return
	}

	event, err := h.events.Create(c.Request.Context(), req, image)
	if err != nil {
		remoteError(c, err)
		return
	}

	response.Created(c, gin.H{"event": event})
}

// UpdateEvent forwards changed event fields to the remote API.
func (h *CatalogHandler) UpdateEvent(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		response.BadRequest(c, "invalid event id")
		return
	}

	req, image, ok := h.bindEvent(c)
	if !ok {
		return
	}

	event, err := h.events.Update(c.Request.Context(), id, req, image)
	if err != nil {
		remoteError(c, err)
		return
	}

	response.OK(c, gin.H{"event": event})
}

// ListOrders fetches the signed-in identity's order history.
func (h *CatalogHandler) ListOrders(c *gin.Context) {
	orders, err := h.orders.ListMine(c.Request.Context())
	if err != nil {
		remoteError(c, err)
		return
	}

	response.OK(c, gin.H{"orders": orders})
}

// bindEvent reads an event payload from either a JSON body or a
// multipart form carrying an "event" JSON field plus an "image" file.
func (h *CatalogHandler) bindEvent(c *gin.Context) (models.EventRequest, *gateway.Upload, bool) {
	var req models.EventRequest

	if !strings.HasPrefix(c.ContentType(), "multipart/") {
		if err := c.ShouldBindJSON(&req); err != nil {
			response.BadRequest(c, "invalid event payload")
			return req, nil, false
		}
		return req, nil, true
	}

	if err := json.Unmarshal([]byte(c.PostForm("event")), &req); err != nil {
		response.BadRequest(c, "invalid event payload")
		return req, nil, false
	}

	file, header, err := c.Request.FormFile("image")
	if err != nil {
		// The image is optional; a form without one is fine.
		return req, nil, true
	}
	return req, &gateway.Upload{Field: "image", Filename: header.Filename, Content: file}, true
}
