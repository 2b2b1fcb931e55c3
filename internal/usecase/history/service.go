package history

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/jpereira/minibank-backend/internal/domain"
)

// externalAccountLabel is rendered for account references outside the owner's
// set (e.g. the destination of a transfer to another customer).
const externalAccountLabel = "External account"

// Entry is a transaction decorated for display: direction relative to the
// owner plus resolved account labels.
type Entry struct {
	Transaction *domain.Transaction

	// Outgoing is true when the source account belongs to the owner and the
	// transaction is a transfer; deposits and inbound rows are neutral.
	Outgoing bool

	FromLabel string
	ToLabel   string
}

// Service resolves a principal's transaction history
type Service struct {
	AccountRepo     domain.AccountRepository
	TransactionRepo domain.TransactionRepository
}

// NewService creates a new history Service instance
func NewService(accountRepo domain.AccountRepository, transactionRepo domain.TransactionRepository) *Service {
	return &Service{
		AccountRepo:     accountRepo,
		TransactionRepo: transactionRepo,
	}
}

// ListForOwner returns every transaction touching one of the owner's accounts,
// most recent first. Labels are resolved against the owner's accounts; a
// reference that cannot be resolved renders with a generic label instead of
// failing.
func (s *Service) ListForOwner(ctx context.Context, ownerID uuid.UUID) ([]Entry, error) {
	accounts, err := s.AccountRepo.ListByOwner(ctx, ownerID)
	if err != nil {
		return nil, fmt.Errorf("failed to list accounts for owner: %w", err)
	}

	owned := make(map[uuid.UUID]*domain.Account, len(accounts))
	accountIDs := make([]uuid.UUID, 0, len(accounts))
	for _, account := range accounts {
		owned[account.ID] = account
		accountIDs = append(accountIDs, account.ID)
	}

	if len(accountIDs) == 0 {
		return []Entry{}, nil
	}

	transactions, err := s.TransactionRepo.ListByAccounts(ctx, accountIDs)
	if err != nil {
		return nil, fmt.Errorf("failed to list transactions: %w", err)
	}

	entries := make([]Entry, 0, len(transactions))
	for _, tx := range transactions {
		entry := Entry{
			Transaction: tx,
			FromLabel:   s.labelFor(owned, tx.FromAccountID),
		}

		if tx.ToAccountID != nil {
			entry.ToLabel = s.labelFor(owned, *tx.ToAccountID)
		}

		if _, ok := owned[tx.FromAccountID]; ok && tx.Type == domain.TransactionTypeTransfer {
			entry.Outgoing = true
		}

		entries = append(entries, entry)
	}

	return entries, nil
}

// labelFor resolves the display label for an account reference.
// Only the owner's accounts are resolvable; anything else gets the generic label.
func (s *Service) labelFor(owned map[uuid.UUID]*domain.Account, id uuid.UUID) string {
	if account, ok := owned[id]; ok {
		return account.Label()
	}
	return externalAccountLabel
}
