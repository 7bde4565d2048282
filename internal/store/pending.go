package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusboard/lostfound/internal/model"
)

// CreatePendingAccount inserts a registration into the review queue.
func CreatePendingAccount(ctx context.Context, db *sql.DB, username, email, passwordHash, contact, address string) (*model.PendingAccount, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO pending_accounts (username, email, password_hash, contact, address)
		 VALUES (?, ?, ?, ?, ?)`,
		username, email, passwordHash, contact, address,
	)
	if err != nil {
		return nil, fmt.Errorf("creating pending account: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting pending account id: %w", err)
	}

	return GetPendingAccount(ctx, db, id)
}

// GetPendingAccount returns a pending account by ID.
func GetPendingAccount(ctx context.Context, db *sql.DB, id int64) (*model.PendingAccount, error) {
	p := &model.PendingAccount{}
	var contact, address sql.NullString
	err := db.QueryRowContext(ctx,
		`SELECT id, username, email, password_hash, contact, address
		 FROM pending_accounts WHERE id = ?`, id,
	).Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &contact, &address)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting pending account: %w", err)
	}
	p.Contact = contact.String
	p.Address = address.String
	return p, nil
}

// ListPendingAccounts returns the full review queue in storage order.
func ListPendingAccounts(ctx context.Context, db *sql.DB) ([]model.PendingAccount, error) {
	rows, err := db.QueryContext(ctx,
		`SELECT id, username, email, password_hash, contact, address
		 FROM pending_accounts ORDER BY id`,
	)
	if err != nil {
		return nil, fmt.Errorf("listing pending accounts: %w", err)
	}
	defer rows.Close()

	var pending []model.PendingAccount
	for rows.Next() {
		var p model.PendingAccount
		var contact, address sql.NullString
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &contact, &address); err != nil {
			return nil, fmt.Errorf("scanning pending account: %w", err)
		}
		p.Contact = contact.String
		p.Address = address.String
		pending = append(pending, p)
	}
	return pending, rows.Err()
}
