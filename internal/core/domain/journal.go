package domain

import "time"

// Journal groups transactions. Balances are tracked per journal.
type Journal struct {
	JournalID   string    `json:"journalID"` // Primary Key (UUID)
	Name        string    `json:"name"`
	Description string    `json:"description"`
	Code        string    `json:"code"` // Unique
	CreatedAt   time.Time `json:"createdAt"`
}
