package authz

import "github.com/jamal0042/boomPlan/internal/models"

// Decision is the outcome of evaluating a guard requirement.
type Decision int

const (
	// DecisionUnknown means the session is still loading; render a
	// neutral affordance, never Denied.
	DecisionUnknown Decision = iota
	DecisionAuthorized
	DecisionDenied
)

// String returns a human-readable decision name.
func (d Decision) String() string {
	switch d {
	case DecisionAuthorized:
		return "authorized"
	case DecisionDenied:
		return "denied"
	default:
		return "unknown"
	}
}

// DeniedRedirect is the safe default view a denied principal is sent to.
const DeniedRedirect = "/"

// SessionState is the read-only view of the session store a guard needs.
type SessionState interface {
	// Loading reports whether the one-shot bootstrap is still running.
	Loading() bool
	// Identity returns the current identity, nil when unauthenticated.
	Identity() *models.User
}

// Requirement describes what a protected view demands.
type Requirement struct {
	// Authenticated requires a signed-in identity of any role.
	Authenticated bool
	// Capability additionally requires the identity's role to grant
	// the capability. Implies Authenticated.
	Capability *Capability
}

// RequireAuthenticated returns a requirement for any signed-in identity.
func RequireAuthenticated() Requirement {
	return Requirement{Authenticated: true}
}

// RequireCapability returns a requirement for a specific capability.
func RequireCapability(c Capability) Requirement {
	return Requirement{Authenticated: true, Capability: &c}
}

// Evaluate maps the session state and a requirement onto a decision.
// The loading flag gates every check so a protected view can never
// flash Denied before the session is known.
func Evaluate(state SessionState, req Requirement) Decision {
	if state.Loading() {
		return DecisionUnknown
	}

	user := state.Identity()
	if req.Authenticated && user == nil {
		return DecisionDenied
	}

	if req.Capability != nil && !RoleOf(user).Can(*req.Capability) {
		return DecisionDenied
	}

	return DecisionAuthorized
}
