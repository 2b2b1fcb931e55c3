package domain

import (
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// AccountType labels the product behind an account
type AccountType string

const (
	AccountTypeChecking AccountType = "checking"
	AccountTypeSavings  AccountType = "savings"
)

// Account represents a bank account entity in the domain layer
// Balance is never negative; only the transfer engine mutates it.
type Account struct {
	ID            uuid.UUID
	OwnerID       uuid.UUID
	AccountNumber string
	AccountType   AccountType
	Balance       decimal.Decimal
	Currency      string
	Version       int64 // bumped on every balance mutation (optimistic check)
	CreatedAt     time.Time
}

// Validate ensures the account adheres to domain rules
// Returns an error if validation fails
func (a *Account) Validate() error {
	if a.OwnerID == uuid.Nil {
		return errors.New("account must have an owner")
	}

	if a.AccountNumber == "" {
		return errors.New("account number cannot be empty")
	}

	if a.AccountType != AccountTypeChecking && a.AccountType != AccountTypeSavings {
		return errors.New("account type must be checking or savings")
	}

	if a.Balance.IsNegative() {
		return errors.New("account balance cannot be negative")
	}

	if a.Currency == "" {
		return errors.New("account currency cannot be empty")
	}

	return nil
}

// Label returns the display label used when rendering the account
// in statements and transaction history ("checking ACC-1001").
func (a *Account) Label() string {
	return string(a.AccountType) + " " + a.AccountNumber
}
