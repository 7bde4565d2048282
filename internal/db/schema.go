package db

import (
	"database/sql"
	"fmt"
)

// schema is the full database schema.
//
// pending_accounts carries no unique index on email: registration only checks
// the members table, so repeated registrations for the same address can sit in
// the review queue together. An address already belonging to a member is
// rejected at registration time and backed by the UNIQUE constraint on
// members.email.
const schema = `
CREATE TABLE IF NOT EXISTS members (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    email         TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL,
    contact       TEXT,
    address       TEXT
);

CREATE TABLE IF NOT EXISTS pending_accounts (
    id            INTEGER PRIMARY KEY,
    username      TEXT NOT NULL,
    email         TEXT NOT NULL,
    password_hash TEXT NOT NULL,
    contact       TEXT,
    address       TEXT
);

CREATE TABLE IF NOT EXISTS lost_items (
    id        INTEGER PRIMARY KEY,
    member_id INTEGER NOT NULL REFERENCES members(id),
    county    TEXT NOT NULL,
    district  TEXT NOT NULL,
    location  TEXT NOT NULL,
    lost_date TEXT NOT NULL,
    category  TEXT NOT NULL,
    image     TEXT,
    note      TEXT,
    posted_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
);

CREATE INDEX IF NOT EXISTS idx_lost_items_member
    ON lost_items(member_id);

CREATE TABLE IF NOT EXISTS admins (
    id            INTEGER PRIMARY KEY,
    name          TEXT NOT NULL UNIQUE,
    password_hash TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS settings (
    key   TEXT PRIMARY KEY,
    value TEXT NOT NULL
);

CREATE TABLE IF NOT EXISTS revoked_tokens (
    jti        TEXT PRIMARY KEY,
    expires_at DATETIME NOT NULL
);
`

// EnsureSchema creates all tables and indexes if they don't already exist.
func EnsureSchema(db *sql.DB) error {
	_, err := db.Exec(schema)
	if err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
