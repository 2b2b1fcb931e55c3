package transfer

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpereira/minibank-backend/internal/domain"
)

// minorUnitPlaces is the maximum decimal precision accepted for amounts.
// All supported currencies use two minor-unit digits.
const minorUnitPlaces = 2

// TransferInput represents the input for a fund transfer.
// Principal is the acting user resolved by the authentication layer; it is
// always passed explicitly, never read from ambient state.
type TransferInput struct {
	FromAccountID uuid.UUID
	ToAccountID   uuid.UUID
	Amount        decimal.Decimal
	Description   string
	Principal     uuid.UUID
}

// Service validates transfer requests and applies them atomically.
// Each call that passes validation creates a new transaction and a new pair of
// balance mutations; resubmitted identical requests are not deduplicated, that
// responsibility stays with the caller.
type Service struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
}

// NewService creates a new transfer Service instance
func NewService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *Service {
	return &Service{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
	}
}

// Transfer moves funds between two accounts owned by / visible to the acting
// principal.
// Validation is fail-fast, each condition producing a distinct error kind:
//  1. both accounts present and distinct -> ErrInvalidRequest
//  2. positive amount within minor-unit precision -> ErrInvalidAmount
//  3. source owned by the principal -> ErrNotAuthorized
//  4. destination exists -> ErrNotFound
//  5. source balance covers the amount -> ErrInsufficientFunds
//
// The commit (transaction insert + debit + credit) is a single unit of work;
// a partial application is never observable. The engine does not auto-retry:
// a failed commit surfaces immediately and retrying is a caller decision.
func (s *Service) Transfer(ctx context.Context, input TransferInput) (*domain.Transaction, error) {
	if input.FromAccountID == uuid.Nil || input.ToAccountID == uuid.Nil {
		return nil, fmt.Errorf("%w: both accounts are required", domain.ErrInvalidRequest)
	}
	if input.FromAccountID == input.ToAccountID {
		return nil, fmt.Errorf("%w: cannot transfer to the same account", domain.ErrInvalidRequest)
	}

	if input.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, fmt.Errorf("%w: amount must be positive", domain.ErrInvalidAmount)
	}
	if !input.Amount.Equal(input.Amount.Round(minorUnitPlaces)) {
		return nil, fmt.Errorf("%w: amount exceeds minor-unit precision", domain.ErrInvalidAmount)
	}

	from, err := s.AccountRepo.GetByID(ctx, input.FromAccountID)
	if err != nil {
		return nil, err
	}
	if from.OwnerID != input.Principal {
		return nil, fmt.Errorf("%w: principal does not own the source account", domain.ErrNotAuthorized)
	}

	to, err := s.AccountRepo.GetByID(ctx, input.ToAccountID)
	if err != nil {
		return nil, err
	}

	// Conversion is out of scope, so a cross-currency request is malformed.
	if from.Currency != to.Currency {
		return nil, fmt.Errorf("%w: accounts use different currencies", domain.ErrInvalidRequest)
	}

	if from.Balance.LessThan(input.Amount) {
		return nil, fmt.Errorf("%w: balance %s is below %s",
			domain.ErrInsufficientFunds, from.Balance.StringFixed(minorUnitPlaces), input.Amount.StringFixed(minorUnitPlaces))
	}

	description := input.Description
	if description == "" {
		description = "Transfer between accounts"
	}

	toID := input.ToAccountID
	tx := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: input.FromAccountID,
		ToAccountID:   &toID,
		Amount:        input.Amount,
		Type:          domain.TransactionTypeTransfer,
		Description:   description,
		Status:        domain.StatusCompleted,
		CreatedAt:     time.Now(),
	}

	if err := tx.Validate(); err != nil {
		return nil, fmt.Errorf("%w: %v", domain.ErrInvalidRequest, err)
	}

	if err := s.TransactionRepo.CreateTransfer(ctx, tx, from, to); err != nil {
		// Commit-time guards keep their kind; anything else means the unit
		// was rolled back for an infrastructure reason.
		if errors.Is(err, domain.ErrConflict) || errors.Is(err, domain.ErrInsufficientFunds) {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", domain.ErrTransferFailed, err)
	}

	return tx, nil
}
