// Package account implements the account lifecycle: registration into a
// review queue, member and admin credential checks, and the administrator
// approve/reject transitions that turn pending registrations into members.
package account

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/campusboard/lostfound/internal/model"
	"github.com/campusboard/lostfound/internal/store"
)

var (
	// ErrDuplicateEmail means the email already belongs to an approved
	// member. Only the members table is consulted: a duplicate that is
	// still in the review queue does not trigger this error.
	ErrDuplicateEmail = errors.New("email already registered")

	// ErrInvalidCredentials covers both unknown accounts and wrong
	// passwords, deliberately without distinguishing the two.
	ErrInvalidCredentials = errors.New("wrong account or password")

	// ErrNoIDs means a review batch was submitted with an empty id list.
	ErrNoIDs = errors.New("no account ids provided")
)

// Registration holds the fields submitted by the registration form.
type Registration struct {
	Username string
	Email    string
	Password string
	Contact  string
	Address  string
}

// Register hashes the password and places the registration in the review
// queue. It fails with ErrDuplicateEmail only when the email belongs to an
// existing member; duplicates already waiting in the queue are accepted.
func Register(ctx context.Context, db *sql.DB, reg Registration) (*model.PendingAccount, error) {
	existing, err := store.GetMemberByEmail(ctx, db, reg.Email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrDuplicateEmail
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(reg.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hashing password: %w", err)
	}

	return store.CreatePendingAccount(ctx, db, reg.Username, reg.Email, string(hash), reg.Contact, reg.Address)
}

// Login verifies member credentials and returns the member on success.
func Login(ctx context.Context, db *sql.DB, email, password string) (*model.Member, error) {
	member, err := store.GetMemberByEmail(ctx, db, email)
	if err != nil {
		return nil, err
	}
	if member == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(member.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return member, nil
}

// AdminLogin verifies administrator credentials against the admins table,
// which is entirely separate from members.
func AdminLogin(ctx context.Context, db *sql.DB, name, password string) (*model.Admin, error) {
	admin, err := store.GetAdminByName(ctx, db, name)
	if err != nil {
		return nil, err
	}
	if admin == nil {
		return nil, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(admin.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}
	return admin, nil
}

// ListPending returns the review queue.
func ListPending(ctx context.Context, db *sql.DB) ([]model.PendingAccount, error) {
	return store.ListPendingAccounts(ctx, db)
}

// Approve converts each listed pending account into a member, carrying every
// field over verbatim (the password hash is never rehashed), and removes it
// from the queue. Ids with no matching pending account are skipped silently.
// The whole batch runs in one transaction, so a failure (for example two
// queued registrations for an email that only one member may hold) approves
// nothing.
func Approve(ctx context.Context, db *sql.DB, ids []int64) (int, error) {
	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	approved := 0
	for _, id := range ids {
		var p model.PendingAccount
		var contact, address sql.NullString
		err := tx.QueryRowContext(ctx,
			`SELECT id, username, email, password_hash, contact, address
			 FROM pending_accounts WHERE id = ?`, id,
		).Scan(&p.ID, &p.Username, &p.Email, &p.PasswordHash, &contact, &address)
		if err == sql.ErrNoRows {
			continue
		}
		if err != nil {
			return 0, fmt.Errorf("getting pending account %d: %w", id, err)
		}

		_, err = tx.ExecContext(ctx,
			`INSERT INTO members (username, email, password_hash, contact, address)
			 VALUES (?, ?, ?, ?, ?)`,
			p.Username, p.Email, p.PasswordHash, contact.String, address.String,
		)
		if err != nil {
			return 0, fmt.Errorf("approving account %d: %w", id, err)
		}

		if _, err := tx.ExecContext(ctx,
			`DELETE FROM pending_accounts WHERE id = ?`, id,
		); err != nil {
			return 0, fmt.Errorf("removing pending account %d: %w", id, err)
		}
		approved++
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing approval: %w", err)
	}
	return approved, nil
}

// Reject deletes each listed pending account, skipping unmatched ids
// silently. An empty id list fails with ErrNoIDs.
func Reject(ctx context.Context, db *sql.DB, ids []int64) (int, error) {
	if len(ids) == 0 {
		return 0, ErrNoIDs
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	rejected := 0
	for _, id := range ids {
		result, err := tx.ExecContext(ctx,
			`DELETE FROM pending_accounts WHERE id = ?`, id,
		)
		if err != nil {
			return 0, fmt.Errorf("rejecting account %d: %w", id, err)
		}
		if n, _ := result.RowsAffected(); n > 0 {
			rejected++
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("committing rejection: %w", err)
	}
	return rejected, nil
}
