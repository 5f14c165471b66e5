package models

import (
	"errors"
	"regexp"
	"strings"
)

// Well-known role ids used by the remote API.
const (
	RoleIDUser      = 1
	RoleIDOrganizer = 2
	RoleIDAdmin     = 3
)

// Role represents the named role relation attached to a user.
type Role struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// User represents the signed-in principal as the remote API describes it.
// The same shape is carried inside the credential payload, so it doubles
// as the client's Identity record.
type User struct {
	ID        int    `json:"id"`
	Name      string `json:"name"`
	Email     string `json:"email"`
	AvatarURL string `json:"avatar_url,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Bio       string `json:"bio,omitempty"`
	RoleID    int    `json:"role_id"`
	Role      *Role  `json:"role,omitempty"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}

// RegisterRequest represents the data needed to register a new account.
type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Phone    string `json:"phone,omitempty"`
	Bio      string `json:"bio,omitempty"`
}

// ProfileUpdate represents the partial user fields a profile update may send.
// Pointer fields distinguish "leave unchanged" from "set to empty".
type ProfileUpdate struct {
	Name      *string `json:"name,omitempty"`
	AvatarURL *string `json:"avatar_url,omitempty"`
	Phone     *string `json:"phone,omitempty"`
	Bio       *string `json:"bio,omitempty"`
}

var emailRegex = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

// Validate validates the user data.
func (u *User) Validate() error {
	if err := validateUserName(u.Name); err != nil {
		return err
	}

	if err := validateEmail(u.Email); err != nil {
		return err
	}

	return validateRoleID(u.RoleID)
}

// Validate validates registration data before it is sent to the remote API.
func (req *RegisterRequest) Validate() error {
	if err := validateUserName(req.Name); err != nil {
		return err
	}

	if err := validateEmail(req.Email); err != nil {
		return err
	}

	return validatePassword(req.Password)
}

// validateUserName validates a display name.
func validateUserName(name string) error {
	if name == "" {
		return errors.New("name is required")
	}

	if len(name) > 100 {
		return errors.New("name must be less than 100 characters")
	}

	if strings.TrimSpace(name) == "" {
		return errors.New("name cannot be only whitespace")
	}

	return nil
}

// validateEmail validates an email address.
func validateEmail(email string) error {
	if email == "" {
		return errors.New("email is required")
	}

	if len(email) > 255 {
		return errors.New("email must be less than 255 characters")
	}

	if !emailRegex.MatchString(email) {
		return errors.New("email format is invalid")
	}

	return nil
}

// validatePassword validates a password.
func validatePassword(password string) error {
	if password == "" {
		return errors.New("password is required")
	}

	if len(password) < 8 {
		return errors.New("password must be at least 8 characters long")
	}

	if len(password) > 128 {
		return errors.New("password must be less than 128 characters")
	}

	return nil
}

// validateRoleID validates that a role id belongs to the closed set the
// remote API uses.
func validateRoleID(roleID int) error {
	switch roleID {
	case RoleIDUser, RoleIDOrganizer, RoleIDAdmin:
		return nil
	default:
		return errors.New("invalid role id")
	}
}
