package domain

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAccount_Validate(t *testing.T) {
	ownerID := uuid.New()

	tests := []struct {
		name    string
		account Account
		wantErr bool
		errMsg  string
	}{
		{
			name: "Valid checking account should pass",
			account: Account{
				ID:            uuid.New(),
				OwnerID:       ownerID,
				AccountNumber: "ACC-1001",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromInt(100),
				Currency:      "USD",
			},
			wantErr: false,
		},
		{
			name: "Valid savings account with zero balance should pass",
			account: Account{
				ID:            uuid.New(),
				OwnerID:       ownerID,
				AccountNumber: "ACC-1002",
				AccountType:   AccountTypeSavings,
				Balance:       decimal.Zero,
				Currency:      "EUR",
			},
			wantErr: false,
		},
		{
			name: "Missing owner should fail",
			account: Account{
				ID:            uuid.New(),
				AccountNumber: "ACC-1003",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromInt(100),
				Currency:      "USD",
			},
			wantErr: true,
			errMsg:  "account must have an owner",
		},
		{
			name: "Empty account number should fail",
			account: Account{
				ID:          uuid.New(),
				OwnerID:     ownerID,
				AccountType: AccountTypeChecking,
				Balance:     decimal.NewFromInt(100),
				Currency:    "USD",
			},
			wantErr: true,
			errMsg:  "account number cannot be empty",
		},
		{
			name: "Unknown account type should fail",
			account: Account{
				ID:            uuid.New(),
				OwnerID:       ownerID,
				AccountNumber: "ACC-1004",
				AccountType:   "money-market",
				Balance:       decimal.NewFromInt(100),
				Currency:      "USD",
			},
			wantErr: true,
			errMsg:  "account type must be checking or savings",
		},
		{
			name: "Negative balance should fail",
			account: Account{
				ID:            uuid.New(),
				OwnerID:       ownerID,
				AccountNumber: "ACC-1005",
				AccountType:   AccountTypeSavings,
				Balance:       decimal.NewFromInt(-1),
				Currency:      "USD",
			},
			wantErr: true,
			errMsg:  "account balance cannot be negative",
		},
		{
			name: "Empty currency should fail",
			account: Account{
				ID:            uuid.New(),
				OwnerID:       ownerID,
				AccountNumber: "ACC-1006",
				AccountType:   AccountTypeChecking,
				Balance:       decimal.NewFromInt(100),
			},
			wantErr: true,
			errMsg:  "account currency cannot be empty",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.account.Validate()
			if tt.wantErr {
				assert.Error(t, err)
				assert.Contains(t, err.Error(), tt.errMsg)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestAccount_Label(t *testing.T) {
	account := Account{
		AccountNumber: "ACC-1001",
		AccountType:   AccountTypeChecking,
	}

	assert.Equal(t, "checking ACC-1001", account.Label())
}
