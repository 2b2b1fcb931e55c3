package dashboard

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpereira/minibank-backend/internal/domain"
)

// OverviewResult represents the account overview shown on the dashboard
type OverviewResult struct {
	Accounts     []*domain.Account
	TotalBalance decimal.Decimal
}

// Service handles dashboard-related operations
type Service struct {
	AccountRepo domain.AccountRepository
}

// NewService creates a new dashboard Service instance
func NewService(accountRepo domain.AccountRepository) *Service {
	return &Service{
		AccountRepo: accountRepo,
	}
}

// Overview returns the owner's accounts in creation order together with the
// sum of their balances. Totals assume a single currency per customer;
// conversion is out of scope.
func (s *Service) Overview(ctx context.Context, ownerID uuid.UUID) (*OverviewResult, error) {
	accounts, err := s.AccountRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for owner: %w", err)
	}

	total := decimal.Zero
	for _, account := range accounts {
		total = total.Add(account.Balance)
	}

	return &OverviewResult{
		Accounts:     accounts,
		TotalBalance: total,
	}, nil
}
