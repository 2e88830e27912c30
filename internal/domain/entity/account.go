package entity

import "time"

// Account is the aggregate root for the account domain.
// Password always holds a bcrypt hash, never the plaintext.
type Account struct {
	ID       string
	Name     string
	Email    string
	Password string
	Role     Role

	// Employer-only details; empty for job seekers.
	OrganizationName string
	IndustryType     string
	TotalEmployee    *int
	Description      string
	Address          string
	Province         string
	City             string
	District         string
	PostalCode       string

	AvatarURL string

	IsVerified        bool
	VerifyToken       string
	VerifyTokenExpiry *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsEmployer reports whether the account was registered as an employer.
func (a *Account) IsEmployer() bool { return a.Role == RoleEmployer }
