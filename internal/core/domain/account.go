package domain

import (
	"encoding/json"
	"time"
)

// Account is a ledger account that entries are posted against.
// Identity and code never change once created.
type Account struct {
	AccountID string          `json:"accountID"` // Primary Key (UUID)
	Name      string          `json:"name"`
	Code      string          `json:"code"`     // Unique
	Metadata  json.RawMessage `json:"metadata"` // Free-form JSON object, may be nil
	CreatedAt time.Time       `json:"createdAt"`
}
