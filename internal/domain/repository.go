package domain

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountRepository defines the interface for account persistence operations
type AccountRepository interface {
	// GetByID retrieves an account by its ID
	// Returns ErrNotFound if the account does not exist
	GetByID(ctx context.Context, id uuid.UUID) (*Account, error)

	// ListByOwner retrieves all accounts owned by the given principal,
	// ordered by creation time (id as tie-break)
	ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*Account, error)

	// Create creates a new account
	// Account opening is out-of-band for the transfer core; this is used by
	// the seeder and future account-opening flows
	Create(ctx context.Context, account *Account) error

	// ApplyBalanceDelta atomically adjusts the balance by delta (positive or
	// negative) conditioned on the optimistic version check.
	// Returns ErrConflict if the account changed since it was read and
	// ErrInsufficientFunds if the resulting balance would be negative.
	ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal, expectedVersion int64) (*Account, error)
}

// TransactionRepository defines the interface for transaction persistence operations
type TransactionRepository interface {
	// CreateTransfer commits the transfer as a single unit of work: it
	// inserts the completed transaction record, debits the source account and
	// credits the destination account. Either all three writes become visible
	// or none do. Balance updates are guarded by the accounts' versions;
	// losers of a version race get ErrConflict and an overdrawing debit gets
	// ErrInsufficientFunds, both with the whole unit rolled back.
	CreateTransfer(ctx context.Context, tx *Transaction, from, to *Account) error

	// Create inserts a single transaction record (deposits, seed data)
	Create(ctx context.Context, tx *Transaction) error

	// ListByAccounts retrieves every transaction where the source or
	// destination is one of the given accounts, ordered by created_at
	// descending (id descending as tie-break)
	ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*Transaction, error)
}
