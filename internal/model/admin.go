package model

// Admin represents an administrator account. Admins review pending
// registrations and are kept entirely separate from members: a member session
// never grants admin access and vice versa.
type Admin struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	PasswordHash string `json:"-"`
}
