package models

type EmailSyncRequest struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
}

type RoleUpdateRequest struct {
	UserID string `json:"user_id"`
	Role   string `json:"role"`
}

const (
	RoleUser   = "user"
	RoleEditor = "editor"
	RoleAdmin  = "admin"
)

// ValidRole reports whether role is one the profiles table accepts.
func ValidRole(role string) bool {
	switch role {
	case RoleUser, RoleEditor, RoleAdmin:
		return true
	}
	return false
}
