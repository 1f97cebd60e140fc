package models

import "time"

// Journal is the journals table row.
type Journal struct {
	JournalID   string    `db:"journal_id"`
	Name        string    `db:"name"`
	Code        string    `db:"code"`
	Description string    `db:"description"`
	CreatedAt   time.Time `db:"created_at"`
}
