package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// TransactionType represents the kind of money movement
type TransactionType string

const (
	TransactionTypeTransfer TransactionType = "transfer"
	TransactionTypeDeposit  TransactionType = "deposit"
)

// TransactionStatus represents the settlement state of a transaction
type TransactionStatus string

const (
	StatusPending   TransactionStatus = "pending"
	StatusCompleted TransactionStatus = "completed"
	StatusFailed    TransactionStatus = "failed"
)

// Transaction represents an immutable money movement record.
// ToAccountID is nil for non-transfer entries such as deposits; those rows
// are not created by the transfer path but must remain displayable.
// Once a transaction reaches a terminal status it is never mutated.
type Transaction struct {
	ID            uuid.UUID
	FromAccountID uuid.UUID
	ToAccountID   *uuid.UUID
	Amount        decimal.Decimal // absolute value, always positive
	Type          TransactionType
	Description   string
	Status        TransactionStatus
	CreatedAt     time.Time
}

// Validate ensures the transaction adheres to domain rules
// Returns an error if validation fails
func (t *Transaction) Validate() error {
	if t.FromAccountID == uuid.Nil {
		return errors.New("transaction must reference a source account")
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("transaction amount must be positive")
	}

	if t.Type != TransactionTypeTransfer && t.Type != TransactionTypeDeposit {
		return errors.New("transaction type must be transfer or deposit")
	}

	// A transfer always names two distinct accounts.
	if t.Type == TransactionTypeTransfer {
		if t.ToAccountID == nil {
			return errors.New("transfer must reference a destination account")
		}
		if *t.ToAccountID == t.FromAccountID {
			return errors.New("transfer source and destination must differ")
		}
	}

	switch t.Status {
	case StatusPending, StatusCompleted, StatusFailed:
	default:
		return errors.New("transaction status must be pending, completed or failed")
	}

	return nil
}
