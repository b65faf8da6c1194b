package model

const (
	RoleCustomer = "customer"
	RoleCompany  = "company"
	RoleAdmin    = "admin"
)

// Caller is the identity carried by a verified bearer token.
type Caller struct {
	ID    string
	Email string
	Role  string
}

func (c *Caller) IsAdmin() bool {
	return c != nil && c.Role == RoleAdmin
}
