package dto

import (
	"encoding/json"
	"time"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// CreateAccountRequest defines the data needed to create a new account.
type CreateAccountRequest struct {
	AccountID string         `json:"accountID" binding:"omitempty,uuid"` // Optional, generated when empty
	Name      string         `json:"name" binding:"required"`
	Code      string         `json:"code" binding:"required"`
	Metadata  map[string]any `json:"metadata"`
}

// AccountResponse defines the data returned for an account.
// Mirrors domain.Account.
type AccountResponse struct {
	AccountID string          `json:"accountID"`
	Name      string          `json:"name"`
	Code      string          `json:"code"`
	Metadata  json.RawMessage `json:"metadata,omitempty"`
	CreatedAt time.Time       `json:"createdAt"`
}

// ToAccountResponse converts a domain.Account to AccountResponse DTO
func ToAccountResponse(acc *domain.Account) AccountResponse {
	return AccountResponse{
		AccountID: acc.AccountID,
		Name:      acc.Name,
		Code:      acc.Code,
		Metadata:  acc.Metadata,
		CreatedAt: acc.CreatedAt,
	}
}
