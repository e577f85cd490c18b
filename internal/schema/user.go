package schema

import (
	"errors"

	json "github.com/goccy/go-json"
)

// User describes an account on the network.
type User struct {
	ID           int     `json:"id"`
	Username     string  `json:"username"`
	Email        *string `json:"email,omitempty"`
	Role         *string `json:"role,omitempty"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

type userWire struct {
	ID           *int    `json:"id"`
	UserID       *int    `json:"user_id"`
	Username     string  `json:"username"`
	Email        *string `json:"email"`
	Role         *string `json:"role"`
	ProfileImage *string `json:"profile_image"`
}

// UnmarshalJSON accepts the account identity under either "id" (login
// response) or "user_id" (/users/me); "id" wins when both are present.
func (u *User) UnmarshalJSON(data []byte) error {
	var wire userWire
	if err := json.Unmarshal(data, &wire); err != nil {
		return err
	}
	switch {
	case wire.ID != nil:
		u.ID = *wire.ID
	case wire.UserID != nil:
		u.ID = *wire.UserID
	default:
		return errors.New("user: missing id and user_id")
	}
	u.Username = wire.Username
	u.Email = wire.Email
	u.Role = wire.Role
	u.ProfileImage = wire.ProfileImage
	return nil
}

// LoginRequest carries credentials for POST /users/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// RegisterRequest carries the fields for POST /users/register.
type RegisterRequest struct {
	Username   string  `json:"username"`
	Email      string  `json:"email"`
	Password   string  `json:"password"`
	InviteCode *string `json:"invite_code,omitempty"`
}

// LoginResponse is returned by login and register.
type LoginResponse struct {
	Token string `json:"token"`
	User  User   `json:"user"`
}

// FollowUser is one entry in a followers/following list.
type FollowUser struct {
	UserID       int     `json:"user_id"`
	Username     string  `json:"username"`
	ProfileImage *string `json:"profile_image,omitempty"`
}

// StatusMessage is the generic {message} acknowledgement body.
type StatusMessage struct {
	Message string `json:"message"`
}
