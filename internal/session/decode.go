package session

import (
	"github.com/golang-jwt/jwt/v5"

	"github.com/jamal0042/boomPlan/internal/models"
)

// credentialPayload is the nested data object the remote API embeds in
// the credential's claims.
type credentialPayload struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url"`
	Phone     string `json:"phone"`
	Bio       string `json:"bio"`
	RoleID    int    `json:"role_id"`
	RoleName  string `json:"role_name"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// credentialClaims is the full claim set of the credential. Only the
// nested data object matters to the client.
type credentialClaims struct {
	Data *credentialPayload `json:"data"`
	jwt.RegisteredClaims
}

// DecodeCredential derives an identity from an opaque bearer token. The
// token is untrusted input: it must have exactly three dot-separated
// segments, a base64url-decodable payload segment, and a JSON claim set
// carrying a nested data object. Any structural failure yields nil;
// a partial identity is never produced. The signature is deliberately
// not verified here, the remote API is the authority on validity.
func DecodeCredential(token string) *models.User {
	claims := &credentialClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		return nil
	}
	if claims.Data == nil {
		return nil
	}

	payload := claims.Data
	user := &models.User{
		ID:        payload.ID,
		Name:      payload.Name,
		Email:     payload.Email,
		AvatarURL: payload.AvatarURL,
		Phone:     payload.Phone,
		Bio:       payload.Bio,
		RoleID:    payload.RoleID,
		CreatedAt: payload.CreatedAt,
		UpdatedAt: payload.UpdatedAt,
	}

	// The role relation is only materialized when the payload names it.
	// RoleID alone is what authorization checks run on.
	if payload.RoleName != "" {
		user.Role = &models.Role{ID: payload.RoleID, Name: payload.RoleName}
	}

	return user
}
