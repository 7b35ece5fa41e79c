package domain

// Role constants define the user roles known to the storefront.
const (
	RoleCustomer = "customer"
	RoleAdmin    = "admin"
)
