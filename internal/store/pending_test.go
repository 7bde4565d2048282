package store

import (
	"context"
	"testing"

	"github.com/campusboard/lostfound/internal/db"
)

func TestCreateAndListPendingAccounts(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	p, err := CreatePendingAccount(ctx, database, "Alice", "alice@example.com", "hash", "555-0101", "dorm 3")
	if err != nil {
		t.Fatalf("CreatePendingAccount: %v", err)
	}
	if p.Email != "alice@example.com" {
		t.Errorf("expected email 'alice@example.com', got %q", p.Email)
	}

	CreatePendingAccount(ctx, database, "Bob", "bob@example.com", "hash", "", "")

	pending, err := ListPendingAccounts(ctx, database)
	if err != nil {
		t.Fatalf("ListPendingAccounts: %v", err)
	}
	if len(pending) != 2 {
		t.Errorf("expected 2 pending accounts, got %d", len(pending))
	}
}

func TestPendingAccountsAllowDuplicateEmail(t *testing.T) {
	database := db.NewTestDB(t)
	ctx := context.Background()

	if _, err := CreatePendingAccount(ctx, database, "Alice", "alice@example.com", "hash", "", ""); err != nil {
		t.Fatalf("CreatePendingAccount: %v", err)
	}
	// The queue has no email uniqueness: a second registration for the same
	// address must insert cleanly.
	if _, err := CreatePendingAccount(ctx, database, "Alice again", "alice@example.com", "hash2", "", ""); err != nil {
		t.Fatalf("CreatePendingAccount duplicate email: %v", err)
	}

	pending, _ := ListPendingAccounts(ctx, database)
	if len(pending) != 2 {
		t.Errorf("expected 2 pending accounts, got %d", len(pending))
	}
}
