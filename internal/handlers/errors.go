package handlers

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/jamal0042/boomPlan/internal/gateway"
	"github.com/jamal0042/boomPlan/pkg/response"
)

// remoteError maps a gateway failure onto a facade response. Remote 4xx
// answers keep their status and message so the browser sees what the
// API said; transport failures and remote 5xx become a 502.
func remoteError(c *gin.Context, err error) {
	if errors.Is(err, gateway.ErrNoCredential) {
		response.Unauthorized(c, "authentication required")
		return
	}
	if errors.Is(err, gateway.ErrNotFound) {
		response.NotFound(c, "not found")
		return
	}

	var apiErr *gateway.Error
	if errors.As(err, &apiErr) && apiErr.Status >= 400 && apiErr.Status < 500 {
		c.JSON(apiErr.Status, response.Body{Success: false, Error: apiErr.Error()})
		return
	}

	response.BadGateway(c, err.Error())
}
