package domain

import "time"

type Role string

const (
	RoleAdmin Role = "admin"
	RoleUser  Role = "user"
)

// User is the full upstream record. Token fields are opaque; the console only
// checks them for presence.
type User struct {
	ID                 string    `json:"_id"`
	Email              string    `json:"email"`
	Name               string    `json:"name"`
	Role               Role      `json:"role"`
	Tokens             string    `json:"tokens,omitempty"`
	RefreshTokens      string    `json:"refreshTokens,omitempty"`
	TempTokens         string    `json:"tempTokens,omitempty"`
	RestPasswordTokens string    `json:"restPasswordTokens,omitempty"`
	CreatedAt          time.Time `json:"createdAt"`
	UpdatedAt          time.Time `json:"updatedAt"`
}

// Profile is the pruned identity persisted client-side after login.
type Profile struct {
	ID    string `json:"_id"`
	Email string `json:"email"`
	Name  string `json:"name"`
	Role  Role   `json:"role"`
}

func (u User) Profile() Profile {
	return Profile{ID: u.ID, Email: u.Email, Name: u.Name, Role: u.Role}
}

type UserPage struct {
	Total int    `json:"total"`
	Page  int    `json:"page"`
	Limit int    `json:"limit"`
	Pages int    `json:"pages"`
	Users []User `json:"users"`
}

type UserFilter struct {
	Name  string
	Email string
	Phone string
}

type Registration struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Password string `json:"password"`
}

type PasswordReset struct {
	NewPassword     string `json:"newPassword"`
	ConfirmPassword string `json:"confirmPassword"`
}
