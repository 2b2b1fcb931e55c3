package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpereira/minibank-backend/internal/domain"
)

// accountRepository implements domain.AccountRepository
type accountRepository struct {
	db *DB
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *DB) domain.AccountRepository {
	return &accountRepository{db: db}
}

const accountColumns = "id, owner_id, account_number, account_type, balance, currency, version, created_at"

// GetByID retrieves an account by its ID
func (r *accountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE id = $1
	`

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return nil, fmt.Errorf("failed to get account by ID: %w", err)
	}

	return account, nil
}

// ListByOwner retrieves all accounts owned by the given principal
func (r *accountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Account, error) {
	query := `
		SELECT ` + accountColumns + `
		FROM accounts
		WHERE owner_id = $1
		ORDER BY created_at, id
	`

	rows, err := r.db.QueryContext(ctx, query, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts by owner: %w", err)
	}
	defer rows.Close()

	accounts := make([]*domain.Account, 0)
	for rows.Next() {
		account, err := scanAccount(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan account: %w", err)
		}
		accounts = append(accounts, account)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate accounts: %w", err)
	}

	return accounts, nil
}

// Create creates a new account
func (r *accountRepository) Create(ctx context.Context, account *domain.Account) error {
	query := `
		INSERT INTO accounts (id, owner_id, account_number, account_type, balance, currency, version, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err := r.db.ExecContext(ctx, query,
		account.ID,
		account.OwnerID,
		account.AccountNumber,
		string(account.AccountType),
		account.Balance.String(),
		account.Currency,
		account.Version,
		account.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	return nil
}

// ApplyBalanceDelta atomically adjusts the balance by delta conditioned on the
// optimistic version check. The guard against a negative resulting balance
// lives in the same UPDATE statement, so two concurrent debits can never
// jointly overdraw the account.
func (r *accountRepository) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal, expectedVersion int64) (*domain.Account, error) {
	query := `
		UPDATE accounts
		SET balance = balance + $1::numeric, version = version + 1
		WHERE id = $2 AND version = $3 AND balance + $1::numeric >= 0
		RETURNING ` + accountColumns

	account, err := scanAccount(r.db.QueryRowContext(ctx, query, delta.String(), id, expectedVersion))
	if err == nil {
		return account, nil
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("failed to apply balance delta: %w", err)
	}

	// The conditional update matched nothing; re-read to tell the cases apart.
	return nil, classifyBalanceUpdateFailure(ctx, r.db.DB, id, expectedVersion)
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows
type rowScanner interface {
	Scan(dest ...any) error
}

// scanAccount reads one account row, parsing the balance from its NUMERIC
// text representation.
func scanAccount(row rowScanner) (*domain.Account, error) {
	var account domain.Account
	var balanceStr string

	err := row.Scan(
		&account.ID,
		&account.OwnerID,
		&account.AccountNumber,
		&account.AccountType,
		&balanceStr,
		&account.Currency,
		&account.Version,
		&account.CreatedAt,
	)
	if err != nil {
		return nil, err
	}

	balance, err := decimal.NewFromString(balanceStr)
	if err != nil {
		return nil, fmt.Errorf("failed to parse balance: %w", err)
	}
	account.Balance = balance

	return &account, nil
}

// querier is satisfied by both *sql.DB and *sql.Tx
type querier interface {
	QueryRowContext(ctx context.Context, query string, args ...any) *sql.Row
}

// classifyBalanceUpdateFailure decides which typed error a zero-row
// conditional balance update maps to: the account is gone, its version moved,
// or the balance guard rejected the delta.
func classifyBalanceUpdateFailure(ctx context.Context, q querier, id uuid.UUID, expectedVersion int64) error {
	var currentVersion int64
	err := q.QueryRowContext(ctx, "SELECT version FROM accounts WHERE id = $1", id).Scan(&currentVersion)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		return fmt.Errorf("failed to inspect account after conditional update: %w", err)
	}

	if currentVersion != expectedVersion {
		return fmt.Errorf("%w: account %s", domain.ErrConflict, id)
	}

	return fmt.Errorf("%w: account %s", domain.ErrInsufficientFunds, id)
}
