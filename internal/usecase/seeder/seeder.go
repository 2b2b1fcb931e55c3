package seeder

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpereira/minibank-backend/internal/domain"
)

// Fixed UUIDs for the demo customer and accounts so seeding stays idempotent
var (
	DemoUserID         = uuid.MustParse("00000000-0000-0000-0000-000000000001")
	DemoCheckingID     = uuid.MustParse("00000000-0000-0000-0000-000000000011")
	DemoSavingsID      = uuid.MustParse("00000000-0000-0000-0000-000000000012")
	demoOpeningDeposit = uuid.MustParse("00000000-0000-0000-0000-000000000021")
	demoOpeningBalance = decimal.NewFromInt(1000)
	demoSavingsBalance = decimal.NewFromInt(250)
)

// Seeder creates demo accounts for local development. Account opening is an
// out-of-band flow for the transfer core, so this stands in for it.
type Seeder struct {
	accountRepo     domain.AccountRepository
	transactionRepo domain.TransactionRepository
}

// NewSeeder creates a new Seeder instance
func NewSeeder(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *Seeder {
	return &Seeder{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
	}
}

// Seed ensures the demo accounts exist, creating them on first run.
// It also records one deposit-style transaction (nil destination) so the
// history view exercises the nullable to_account_id rendering.
func (s *Seeder) Seed(ctx context.Context) error {
	demoAccounts := []*domain.Account{
		{
			ID:            DemoCheckingID,
			OwnerID:       DemoUserID,
			AccountNumber: "ACC-1001",
			AccountType:   domain.AccountTypeChecking,
			Balance:       demoOpeningBalance,
			Currency:      "USD",
			CreatedAt:     time.Now(),
		},
		{
			ID:            DemoSavingsID,
			OwnerID:       DemoUserID,
			AccountNumber: "ACC-1002",
			AccountType:   domain.AccountTypeSavings,
			Balance:       demoSavingsBalance,
			Currency:      "USD",
			CreatedAt:     time.Now(),
		},
	}

	created := false
	for _, account := range demoAccounts {
		_, err := s.accountRepo.GetByID(ctx, account.ID)
		if err == nil {
			continue
		}
		if !errors.Is(err, domain.ErrNotFound) {
			return err
		}

		if err := account.Validate(); err != nil {
			return err
		}

		if err := s.accountRepo.Create(ctx, account); err != nil {
			return err
		}
		created = true
	}

	if !created {
		return nil
	}

	deposit := &domain.Transaction{
		ID:            demoOpeningDeposit,
		FromAccountID: DemoCheckingID,
		ToAccountID:   nil,
		Amount:        demoOpeningBalance,
		Type:          domain.TransactionTypeDeposit,
		Description:   "Opening deposit",
		Status:        domain.StatusCompleted,
		CreatedAt:     time.Now(),
	}

	if err := deposit.Validate(); err != nil {
		return err
	}

	return s.transactionRepo.Create(ctx, deposit)
}
