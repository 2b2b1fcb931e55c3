package httpapi

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jpereira/minibank-backend/internal/domain"
	"github.com/jpereira/minibank-backend/internal/usecase/dashboard"
	"github.com/jpereira/minibank-backend/internal/usecase/history"
	"github.com/jpereira/minibank-backend/internal/usecase/transfer"
)

// Server holds the use-case services exposed over HTTP
type Server struct {
	TransferService  *transfer.Service
	HistoryService   *history.Service
	DashboardService *dashboard.Service
}

// NewServer creates a new HTTP server instance
func NewServer(transferService *transfer.Service, historyService *history.Service, dashboardService *dashboard.Service) *Server {
	return &Server{
		TransferService:  transferService,
		HistoryService:   historyService,
		DashboardService: dashboardService,
	}
}

type accountResponse struct {
	ID            string `json:"id"`
	AccountNumber string `json:"account_number"`
	AccountType   string `json:"account_type"`
	Balance       string `json:"balance"`
	Currency      string `json:"currency"`
}

type overviewResponse struct {
	Accounts     []accountResponse `json:"accounts"`
	TotalBalance string            `json:"total_balance"`
}

type transactionResponse struct {
	ID          string `json:"id"`
	Type        string `json:"transaction_type"`
	Description string `json:"description"`
	Amount      string `json:"amount"`
	Status      string `json:"status"`
	Outgoing    bool   `json:"outgoing"`
	FromAccount string `json:"from_account"`
	ToAccount   string `json:"to_account,omitempty"`
	CreatedAt   string `json:"created_at"`
}

type transferRequest struct {
	FromAccountID string `json:"from_account_id"`
	ToAccountID   string `json:"to_account_id"`
	Amount        string `json:"amount"`
	Description   string `json:"description"`
}

type transferResponse struct {
	TransactionID string `json:"transaction_id"`
	Amount        string `json:"amount"`
	Status        string `json:"status"`
	CreatedAt     string `json:"created_at"`
}

// ListAccounts handles GET /v1/accounts
func (s *Server) ListAccounts(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing principal")
		return
	}

	overview, err := s.DashboardService.Overview(r.Context(), principal)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := overviewResponse{
		Accounts:     make([]accountResponse, 0, len(overview.Accounts)),
		TotalBalance: overview.TotalBalance.StringFixed(2),
	}
	for _, account := range overview.Accounts {
		resp.Accounts = append(resp.Accounts, accountResponse{
			ID:            account.ID.String(),
			AccountNumber: account.AccountNumber,
			AccountType:   string(account.AccountType),
			Balance:       account.Balance.StringFixed(2),
			Currency:      account.Currency,
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// ListTransactions handles GET /v1/transactions
func (s *Server) ListTransactions(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing principal")
		return
	}

	entries, err := s.HistoryService.ListForOwner(r.Context(), principal)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	resp := make([]transactionResponse, 0, len(entries))
	for _, entry := range entries {
		tx := entry.Transaction
		resp = append(resp, transactionResponse{
			ID:          tx.ID.String(),
			Type:        string(tx.Type),
			Description: tx.Description,
			Amount:      tx.Amount.StringFixed(2),
			Status:      string(tx.Status),
			Outgoing:    entry.Outgoing,
			FromAccount: entry.FromLabel,
			ToAccount:   entry.ToLabel,
			CreatedAt:   tx.CreatedAt.Format(time.RFC3339),
		})
	}

	respondJSON(w, http.StatusOK, resp)
}

// CreateTransfer handles POST /v1/transfers
func (s *Server) CreateTransfer(w http.ResponseWriter, r *http.Request) {
	principal, ok := principalFrom(r.Context())
	if !ok {
		respondError(w, http.StatusUnauthorized, "missing principal")
		return
	}

	var req transferRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	fromID, err := uuid.Parse(req.FromAccountID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid from_account_id format")
		return
	}

	toID, err := uuid.Parse(req.ToAccountID)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid to_account_id format")
		return
	}

	amount, err := decimal.NewFromString(req.Amount)
	if err != nil {
		respondError(w, http.StatusBadRequest, "invalid amount format")
		return
	}

	input := transfer.TransferInput{
		FromAccountID: fromID,
		ToAccountID:   toID,
		Amount:        amount,
		Description:   req.Description,
		Principal:     principal,
	}

	tx, err := s.TransferService.Transfer(r.Context(), input)
	if err != nil {
		respondDomainError(w, err)
		return
	}

	slog.Info("transfer completed",
		"transaction_id", tx.ID,
		"from_account", tx.FromAccountID,
		"amount", tx.Amount.StringFixed(2),
	)

	respondJSON(w, http.StatusCreated, transferResponse{
		TransactionID: tx.ID.String(),
		Amount:        tx.Amount.StringFixed(2),
		Status:        string(domain.StatusCompleted),
		CreatedAt:     tx.CreatedAt.Format(time.RFC3339),
	})
}
