package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"

	"github.com/jpereira/minibank-backend/internal/domain"
)

// transactionRepository implements domain.TransactionRepository
type transactionRepository struct {
	db *DB
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *DB) domain.TransactionRepository {
	return &transactionRepository{db: db}
}

const insertTransactionQuery = `
	INSERT INTO transactions (id, from_account_id, to_account_id, amount, transaction_type, description, status, created_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
`

// CreateTransfer commits the transfer as a single database transaction:
// the record insert, the debit and the credit either all become visible or
// none do. Both balance updates carry the version guard, and the debit
// additionally re-checks the balance, so a reader can never observe a
// partially applied transfer and concurrent debits cannot jointly overdraw.
func (r *transactionRepository) CreateTransfer(ctx context.Context, tx *domain.Transaction, from, to *domain.Account) error {
	dbTx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer dbTx.Rollback()

	_, err = dbTx.ExecContext(ctx, insertTransactionQuery,
		tx.ID,
		tx.FromAccountID,
		tx.ToAccountID,
		tx.Amount.String(),
		string(tx.Type),
		tx.Description,
		string(tx.Status),
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	if err := r.applyDelta(ctx, dbTx, from.ID, tx.Amount.Neg(), from.Version); err != nil {
		return err
	}

	if err := r.applyDelta(ctx, dbTx, to.ID, tx.Amount, to.Version); err != nil {
		return err
	}

	if err := dbTx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transfer: %w", err)
	}

	return nil
}

// applyDelta runs one version-guarded balance update inside the surrounding
// database transaction.
func (r *transactionRepository) applyDelta(ctx context.Context, dbTx querierExecer, accountID uuid.UUID, delta decimal.Decimal, expectedVersion int64) error {
	query := `
		UPDATE accounts
		SET balance = balance + $1::numeric, version = version + 1
		WHERE id = $2 AND version = $3 AND balance + $1::numeric >= 0
	`

	result, err := dbTx.ExecContext(ctx, query, delta.String(), accountID, expectedVersion)
	if err != nil {
		return fmt.Errorf("failed to update balance for account %s: %w", accountID, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to read affected rows: %w", err)
	}
	if rows == 0 {
		return classifyBalanceUpdateFailure(ctx, dbTx, accountID, expectedVersion)
	}

	return nil
}

// Create inserts a single transaction record (deposits, seed data)
func (r *transactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	_, err := r.db.ExecContext(ctx, insertTransactionQuery,
		tx.ID,
		tx.FromAccountID,
		tx.ToAccountID,
		tx.Amount.String(),
		string(tx.Type),
		tx.Description,
		string(tx.Status),
		tx.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert transaction: %w", err)
	}

	return nil
}

// ListByAccounts retrieves every transaction touching one of the given
// accounts, most recent first (id as tie-break for equal timestamps)
func (r *transactionRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*domain.Transaction, error) {
	if len(accountIDs) == 0 {
		return []*domain.Transaction{}, nil
	}

	query := `
		SELECT id, from_account_id, to_account_id, amount, transaction_type, description, status, created_at
		FROM transactions
		WHERE from_account_id = ANY($1) OR to_account_id = ANY($1)
		ORDER BY created_at DESC, id DESC
	`

	ids := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		ids = append(ids, id.String())
	}

	rows, err := r.db.QueryContext(ctx, query, pq.Array(ids))
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}
	defer rows.Close()

	transactions := make([]*domain.Transaction, 0)
	for rows.Next() {
		var tx domain.Transaction
		var toAccountID uuid.NullUUID
		var amountStr string

		err := rows.Scan(
			&tx.ID,
			&tx.FromAccountID,
			&toAccountID,
			&amountStr,
			&tx.Type,
			&tx.Description,
			&tx.Status,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}

		if toAccountID.Valid {
			id := toAccountID.UUID
			tx.ToAccountID = &id
		}

		amount, err := decimal.NewFromString(amountStr)
		if err != nil {
			return nil, fmt.Errorf("failed to parse amount: %w", err)
		}
		tx.Amount = amount

		transactions = append(transactions, &tx)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate transactions: %w", err)
	}

	return transactions, nil
}

// querierExecer is satisfied by *sql.Tx
type querierExecer interface {
	querier
	ExecContext(ctx context.Context, query string, args ...any) (sql.Result, error)
}
