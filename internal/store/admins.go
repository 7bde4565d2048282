package store

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/campusboard/lostfound/internal/model"
)

// CreateAdmin creates a new administrator.
func CreateAdmin(ctx context.Context, db *sql.DB, name, passwordHash string) (*model.Admin, error) {
	result, err := db.ExecContext(ctx,
		`INSERT INTO admins (name, password_hash) VALUES (?, ?)`,
		name, passwordHash,
	)
	if err != nil {
		return nil, fmt.Errorf("creating admin: %w", err)
	}

	id, err := result.LastInsertId()
	if err != nil {
		return nil, fmt.Errorf("getting admin id: %w", err)
	}

	return GetAdmin(ctx, db, id)
}

// GetAdmin returns an admin by ID.
func GetAdmin(ctx context.Context, db *sql.DB, id int64) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM admins WHERE id = ?`, id,
	).Scan(&a.ID, &a.Name, &a.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin: %w", err)
	}
	return a, nil
}

// GetAdminByName returns an admin by name.
func GetAdminByName(ctx context.Context, db *sql.DB, name string) (*model.Admin, error) {
	a := &model.Admin{}
	err := db.QueryRowContext(ctx,
		`SELECT id, name, password_hash FROM admins WHERE name = ?`, name,
	).Scan(&a.ID, &a.Name, &a.PasswordHash)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("getting admin by name: %w", err)
	}
	return a, nil
}

// CountAdmins returns the number of administrator accounts.
func CountAdmins(ctx context.Context, db *sql.DB) (int, error) {
	var count int
	err := db.QueryRowContext(ctx, `SELECT COUNT(*) FROM admins`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("counting admins: %w", err)
	}
	return count, nil
}
