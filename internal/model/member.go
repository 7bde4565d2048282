package model

// Member represents an approved account. Members are only ever created by
// approving a pending account; registration never inserts here directly.
type Member struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Contact      string `json:"contact,omitempty"`
	Address      string `json:"address,omitempty"`
}

// PendingAccount is a registration awaiting an administrator decision. It has
// the same attributes as Member and exactly one state: approval converts it
// into a Member, rejection deletes it.
type PendingAccount struct {
	ID           int64  `json:"id"`
	Username     string `json:"username"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"`
	Contact      string `json:"contact,omitempty"`
	Address      string `json:"address,omitempty"`
}
