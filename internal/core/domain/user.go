package domain

import "time"

const (
	UserTypeClient     = "client"
	UserTypeFreelancer = "freelancer"
)

// ValidUserType reports whether t is one of the two account types.
func ValidUserType(t string) bool {
	return t == UserTypeClient || t == UserTypeFreelancer
}

// User models an account on the marketplace. Depending on UserType the user
// owns either a client profile or a freelancer profile; ProfileID points at
// that row and is nil only when profile creation has not happened yet.
type User struct {
	ID           int       `json:"id"`
	Email        string    `json:"email"`
	UserType     string    `json:"userType"`
	FirstName    string    `json:"firstName"`
	LastName     string    `json:"lastName"`
	ProfileID    *int      `json:"profileId"`
	PasswordHash string    `json:"-"`
	IsActive     bool      `json:"-"`
	CreatedAt    time.Time `json:"-"`
}
