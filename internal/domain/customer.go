package domain

import "time"

// Role represents the access level of an account. Customers submit repairs;
// managers and finance staff run the board and pricing.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleManager  Role = "manager"
	RoleFinance  Role = "finance"
)

// IsStaff reports whether the role may mutate tickets after creation.
func (r Role) IsStaff() bool {
	return r == RoleManager || r == RoleFinance
}

// Customer is the domain model for registered accounts, staff included.
type Customer struct {
	ID           string
	FirstName    string
	LastName     string
	Email        string
	Mobile       string
	PasswordHash string
	Role         Role
	LineUserID   *string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// FullName joins first and last name for display.
func (c *Customer) FullName() string {
	if c.LastName == "" {
		return c.FirstName
	}
	return c.FirstName + " " + c.LastName
}
