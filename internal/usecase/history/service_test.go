package history

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/jpereira/minibank-backend/internal/domain"
)

// MockAccountRepository is a mock implementation of AccountRepository for testing
type MockAccountRepository struct {
	mock.Mock
}

func (m *MockAccountRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Account, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]*domain.Account, error) {
	args := m.Called(ctx, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Account), args.Error(1)
}

func (m *MockAccountRepository) Create(ctx context.Context, account *domain.Account) error {
	args := m.Called(ctx, account)
	return args.Error(0)
}

func (m *MockAccountRepository) ApplyBalanceDelta(ctx context.Context, id uuid.UUID, delta decimal.Decimal, expectedVersion int64) (*domain.Account, error) {
	args := m.Called(ctx, id, delta, expectedVersion)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Account), args.Error(1)
}

// MockTransactionRepository is a mock implementation of TransactionRepository for testing
type MockTransactionRepository struct {
	mock.Mock
}

func (m *MockTransactionRepository) CreateTransfer(ctx context.Context, tx *domain.Transaction, from, to *domain.Account) error {
	args := m.Called(ctx, tx, from, to)
	return args.Error(0)
}

func (m *MockTransactionRepository) Create(ctx context.Context, tx *domain.Transaction) error {
	args := m.Called(ctx, tx)
	return args.Error(0)
}

func (m *MockTransactionRepository) ListByAccounts(ctx context.Context, accountIDs []uuid.UUID) ([]*domain.Transaction, error) {
	args := m.Called(ctx, accountIDs)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*domain.Transaction), args.Error(1)
}

func TestListForOwner_StandardFlow(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewService(mockAccountRepo, mockTxRepo)

	ownerID := uuid.New()
	checking := &domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AccountNumber: "ACC-1001",
		AccountType:   domain.AccountTypeChecking,
		Balance:       decimal.NewFromInt(70),
		Currency:      "USD",
	}
	savings := &domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AccountNumber: "ACC-1002",
		AccountType:   domain.AccountTypeSavings,
		Balance:       decimal.NewFromInt(80),
		Currency:      "USD",
	}
	foreignID := uuid.New()

	now := time.Now()

	// Repository returns newest first; the service preserves that order.
	outbound := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: checking.ID,
		ToAccountID:   &foreignID,
		Amount:        decimal.NewFromInt(25),
		Type:          domain.TransactionTypeTransfer,
		Description:   "Rent share",
		Status:        domain.StatusCompleted,
		CreatedAt:     now,
	}
	internal := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: checking.ID,
		ToAccountID:   &savings.ID,
		Amount:        decimal.NewFromInt(30),
		Type:          domain.TransactionTypeTransfer,
		Description:   "Savings deposit",
		Status:        domain.StatusCompleted,
		CreatedAt:     now.Add(-time.Hour),
	}
	deposit := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: checking.ID,
		ToAccountID:   nil,
		Amount:        decimal.NewFromInt(1000),
		Type:          domain.TransactionTypeDeposit,
		Description:   "Opening deposit",
		Status:        domain.StatusCompleted,
		CreatedAt:     now.Add(-2 * time.Hour),
	}

	mockAccountRepo.On("ListByOwner", ctx, ownerID).
		Return([]*domain.Account{checking, savings}, nil)
	mockTxRepo.On("ListByAccounts", ctx, []uuid.UUID{checking.ID, savings.ID}).
		Return([]*domain.Transaction{outbound, internal, deposit}, nil)

	entries, err := service.ListForOwner(ctx, ownerID)

	assert.NoError(t, err)
	assert.Len(t, entries, 3)

	// Transfer to a foreign account: outgoing, destination unresolvable.
	assert.True(t, entries[0].Outgoing)
	assert.Equal(t, "checking ACC-1001", entries[0].FromLabel)
	assert.Equal(t, "External account", entries[0].ToLabel)

	// Transfer between own accounts: outgoing with both labels resolved.
	assert.True(t, entries[1].Outgoing)
	assert.Equal(t, "checking ACC-1001", entries[1].FromLabel)
	assert.Equal(t, "savings ACC-1002", entries[1].ToLabel)

	// Deposit: neutral direction, no destination label.
	assert.False(t, entries[2].Outgoing)
	assert.Equal(t, "checking ACC-1001", entries[2].FromLabel)
	assert.Empty(t, entries[2].ToLabel)

	mockAccountRepo.AssertExpectations(t)
	mockTxRepo.AssertExpectations(t)
}

func TestListForOwner_InboundTransferIsNeutral(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewService(mockAccountRepo, mockTxRepo)

	ownerID := uuid.New()
	checking := &domain.Account{
		ID:            uuid.New(),
		OwnerID:       ownerID,
		AccountNumber: "ACC-1001",
		AccountType:   domain.AccountTypeChecking,
		Balance:       decimal.NewFromInt(100),
		Currency:      "USD",
	}
	senderID := uuid.New()

	inbound := &domain.Transaction{
		ID:            uuid.New(),
		FromAccountID: senderID,
		ToAccountID:   &checking.ID,
		Amount:        decimal.NewFromInt(40),
		Type:          domain.TransactionTypeTransfer,
		Description:   "Payback",
		Status:        domain.StatusCompleted,
		CreatedAt:     time.Now(),
	}

	mockAccountRepo.On("ListByOwner", ctx, ownerID).
		Return([]*domain.Account{checking}, nil)
	mockTxRepo.On("ListByAccounts", ctx, []uuid.UUID{checking.ID}).
		Return([]*domain.Transaction{inbound}, nil)

	entries, err := service.ListForOwner(ctx, ownerID)

	assert.NoError(t, err)
	assert.Len(t, entries, 1)
	assert.False(t, entries[0].Outgoing)
	assert.Equal(t, "External account", entries[0].FromLabel)
	assert.Equal(t, "checking ACC-1001", entries[0].ToLabel)
}

func TestListForOwner_NoAccounts(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewService(mockAccountRepo, mockTxRepo)

	ownerID := uuid.New()
	mockAccountRepo.On("ListByOwner", ctx, ownerID).
		Return([]*domain.Account{}, nil)

	entries, err := service.ListForOwner(ctx, ownerID)

	assert.NoError(t, err)
	assert.Empty(t, entries)
	mockTxRepo.AssertNotCalled(t, "ListByAccounts")
}

func TestListForOwner_RepositoryError(t *testing.T) {
	ctx := context.Background()
	mockAccountRepo := new(MockAccountRepository)
	mockTxRepo := new(MockTransactionRepository)

	service := NewService(mockAccountRepo, mockTxRepo)

	ownerID := uuid.New()
	mockAccountRepo.On("ListByOwner", ctx, ownerID).
		Return(nil, errors.New("connection reset"))

	entries, err := service.ListForOwner(ctx, ownerID)

	assert.Error(t, err)
	assert.Nil(t, entries)
}
