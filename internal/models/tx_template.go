package models

import "time"

// TxTemplate is the tx_templates table row. The structured parts of the template are
// stored as JSONB documents and never updated after insert.
type TxTemplate struct {
	Seq          int64     `db:"seq"` // BIGSERIAL, creation order
	TxTemplateID string    `db:"tx_template_id"`
	Code         string    `db:"code"`
	Version      int       `db:"version"`
	Description  string    `db:"description"`
	ExternalID   *string   `db:"external_id"`
	Params       []byte    `db:"params"`      // JSONB
	Transaction  []byte    `db:"transaction"` // JSONB
	Entries      []byte    `db:"entries"`     // JSONB
	Metadata     []byte    `db:"metadata"`    // JSONB, nullable
	CreatedAt    time.Time `db:"created_at"`
}
