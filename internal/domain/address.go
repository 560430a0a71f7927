package domain

import "time"

// Address is a delivery address owned by a customer. At most one address per
// customer is marked default; the upsert path in the customer service keeps
// that invariant.
type Address struct {
	ID          string
	CustomerID  string
	Province    string
	District    string
	SubDistrict string
	PostalCode  string
	Details     string
	IsDefault   bool
	CreatedAt   time.Time
}
