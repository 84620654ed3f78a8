package models

// Customer is read-only from this layer; the employee console browses
// customers but never mutates them.
type Customer struct {
	ID        int64  `json:"id"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	FullName  string `json:"fullName"`
	Email     string `json:"email"`
	Phone     string `json:"phone,omitempty"`
	Role      string `json:"role,omitempty"`
	Active    bool   `json:"active"`
	CreatedAt Time   `json:"createdAt"`
}
