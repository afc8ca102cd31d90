package model

import (
	"time"
)

// Role is the access level of an authenticated user.
type Role string

const (
	RoleAdmin  Role = "admin"
	RoleMember Role = "member"
)

// Valid reports whether r is one of the known roles.
func (r Role) Valid() bool {
	return r == RoleAdmin || r == RoleMember
}

// User is an identity as returned by the external system.
type User struct {
	ID              string `json:"_id"`
	Name            string `json:"name"`
	Email           string `json:"email"`
	Role            Role   `json:"role"`
	ProfileImageURL string `json:"profileImageUrl,omitempty"`

	// Per-user task counters, only filled by the users listing.
	PendingTasks    int `json:"pendingTasks,omitempty"`
	InProgressTasks int `json:"inProgressTasks,omitempty"`
	CompletedTasks  int `json:"completedTasks,omitempty"`
}

// Credentials are what a user types on the login screen.
type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Profile is the signup payload.
type Profile struct {
	Name             string `json:"name"`
	Email            string `json:"email"`
	Password         string `json:"password"`
	ProfileImageURL  string `json:"profileImageUrl"`
	AdminInviteToken string `json:"adminInviteToken,omitempty"`
}

// AuthResult is returned by login and register.
type AuthResult struct {
	Token    string
	Identity User
}

// Credential is the locally persisted session token of one profile.
type Credential struct {
	Profile   string    `gorm:"primaryKey"`
	Token     string    `gorm:"not null"`
	UpdatedAt time.Time `gorm:"autoUpdateTime"`
}
