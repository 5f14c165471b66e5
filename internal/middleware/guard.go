package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/jamal0042/boomPlan/internal/authz"
	"github.com/jamal0042/boomPlan/pkg/response"
)

// Guard adapts authorization decisions to HTTP. The three-state
// evaluation keeps a protected endpoint from answering Denied while the
// session bootstrap is still running.
type Guard struct {
	state authz.SessionState
}

// NewGuard creates a guard over the given session state.
func NewGuard(state authz.SessionState) *Guard {
	return &Guard{state: state}
}

// RequireAuth aborts requests from anonymous principals.
func (g *Guard) RequireAuth() gin.HandlerFunc {
	return g.require(authz.RequireAuthenticated())
}

// RequireCapability aborts requests whose principal's role does not
// grant the capability.
func (g *Guard) RequireCapability(capability authz.Capability) gin.HandlerFunc {
	return g.require(authz.RequireCapability(capability))
}

func (g *Guard) require(req authz.Requirement) gin.HandlerFunc {
	return func(c *gin.Context) {
		switch authz.Evaluate(g.state, req) {
		case authz.DecisionAuthorized:
			c.Next()
		case authz.DecisionUnknown:
			c.Header("Retry-After", "1")
			response.Unavailable(c, "session is still loading")
			c.Abort()
		default:
			// Denial is a silent redirect, not an error surface.
			if wantsHTML(c) {
				c.Redirect(http.StatusSeeOther, authz.DeniedRedirect)
			} else {
				response.Denied(c, authz.DeniedRedirect)
			}
			c.Abort()
		}
	}
}

// wantsHTML reports whether the request came from browser navigation
// rather than a fetch/XHR call.
func wantsHTML(c *gin.Context) bool {
	return strings.Contains(c.GetHeader("Accept"), "text/html")
}
