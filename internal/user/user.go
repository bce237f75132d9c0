// Package user defines the user model used throughout the application,
// particularly for authentication and the admin user listing.
package user

// Roles a user may carry. Registration always produces RoleGuest;
// admins come from seeding or manual inserts.
const (
	RoleAdmin = "admin"
	RoleGuest = "guest"
)

// User represents a system user.
// The password is kept in clear text, matching the data produced by the
// system this service replaces. See DESIGN.md for the open question.
type User struct {
	// UserID is the unique identifier of the user and also the login name.
	UserID string `json:"userid"`

	// Password is the clear-text password.
	Password string `json:"password"`

	// Role is either RoleAdmin or RoleGuest.
	Role string `json:"role"`
}
