package dto

import (
	"time"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// CreateJournalRequest defines the data needed to create a new journal.
type CreateJournalRequest struct {
	JournalID   string `json:"journalID" binding:"omitempty,uuid"` // Optional, generated when empty
	Name        string `json:"name" binding:"required"`
	Code        string `json:"code" binding:"required"`
	Description string `json:"description"`
}

// JournalResponse defines the data returned for a journal.
type JournalResponse struct {
	JournalID   string    `json:"journalID"`
	Name        string    `json:"name"`
	Code        string    `json:"code"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// ToJournalResponse converts a domain.Journal to JournalResponse DTO.
func ToJournalResponse(j *domain.Journal) JournalResponse {
	return JournalResponse{
		JournalID:   j.JournalID,
		Name:        j.Name,
		Code:        j.Code,
		Description: j.Description,
		CreatedAt:   j.CreatedAt,
	}
}
