package models

import "time"

// Account is the accounts table row.
type Account struct {
	AccountID string    `db:"account_id"`
	Name      string    `db:"name"`
	Code      string    `db:"code"`
	Metadata  []byte    `db:"metadata"` // JSONB, nullable
	CreatedAt time.Time `db:"created_at"`
}
