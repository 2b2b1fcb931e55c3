package postgres

import (
	"database/sql"
	"fmt"

	_ "github.com/lib/pq" // PostgreSQL driver
)

// DB wraps the database connection
type DB struct {
	*sql.DB
}

// NewDB creates a new database connection
// connectionString should be in the format: "host=localhost port=5432 user=postgres password=postgres dbname=minibank sslmode=disable"
func NewDB(connectionString string) (*DB, error) {
	db, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database connection: %w", err)
	}

	if err := db.Ping(); err != nil {
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &DB{DB: db}, nil
}

// InitSchema creates the accounts and transactions tables if they don't exist.
// The CHECK constraints are the storage-level guard behind the domain
// invariants (non-negative balances, positive amounts); the repositories
// enforce them first so violations surface as typed errors, not constraint
// failures.
func (db *DB) InitSchema() error {
	queryAccounts := `
	CREATE TABLE IF NOT EXISTS accounts (
		id UUID PRIMARY KEY,
		owner_id UUID NOT NULL,
		account_number TEXT NOT NULL,
		account_type TEXT NOT NULL,
		balance NUMERIC(12, 2) NOT NULL CHECK (balance >= 0),
		currency TEXT NOT NULL,
		version BIGINT NOT NULL DEFAULT 0,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(queryAccounts); err != nil {
		return fmt.Errorf("failed to create accounts table: %w", err)
	}

	queryTransactions := `
	CREATE TABLE IF NOT EXISTS transactions (
		id UUID PRIMARY KEY,
		from_account_id UUID NOT NULL,
		to_account_id UUID,
		amount NUMERIC(12, 2) NOT NULL CHECK (amount > 0),
		transaction_type TEXT NOT NULL,
		description TEXT NOT NULL,
		status TEXT NOT NULL,
		created_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
	);`

	if _, err := db.Exec(queryTransactions); err != nil {
		return fmt.Errorf("failed to create transactions table: %w", err)
	}

	return nil
}

// Close closes the database connection
func (db *DB) Close() error {
	return db.DB.Close()
}
