package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusboard/lostfound/internal/model"
)

// CreateMember creates a new member. passwordHash must already be hashed; the
// store never sees plaintext passwords.
func CreateMember(ctx context.Context, db *sql.DB, username, email, passwordHash, contact, address string) (*model.Member, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO members (username, email, password_hash, contact, address)
		 VALUES (?, ?, ?, ?, ?)`,
		username, email, passwordHash, contact, address,
	)
	if err != nil {
		return nil, fmt.Errorf("creating member: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting member id: %w", err)
	}

	return GetMember(ctx, db, id)
}

// GetMember returns a member by ID.
func GetMember(ctx context.Context, db *sql.DB, id int64) (*model.Member, error) {
	m := &model.Member{}
	var contact, address sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, contact, address
		 FROM members WHERE id = ?`, id,
	).Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &contact, &address)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member: %w", err)
	}
	m.Contact = contact.String
	m.Address = address.String
	return m, nil
}

// GetMemberByEmail returns a member by email.
func GetMemberByEmail(ctx context.Context, db *sql.DB, email string) (*model.Member, error) {
	m := &model.Member{}
	var contact, address sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, contact, address
		 FROM members WHERE email = ?`, email,
	).Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &contact, &address)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting member by email: %w", err)
	}
	m.Contact = contact.String
	m.Address = address.String
	return m, nil
}

// ListMembers returns all members.
func ListMembers(ctx context.Context, db *sql.DB) ([]model.Member, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, email, password_hash, contact, address
		 FROM members ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing members: %w", err)
	}
	defer rows.Close()

	var members []model.Member
	for rows.Next() {
		var m model.Member
		var contact, address sql.NullString
		if err := rows.Scan(&m.ID, &m.Username, &m.Email, &m.PasswordHash, &contact, &address); err != nil {
			return nil, fmt.Errorf("scanning member: %w", err)
		}
		m.Contact = contact.String
		m.Address = address.String
		members = append(members, m)
	}
	return members, rows.Err()
}
