package mapping

import (
	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/models"
)

// ToModelJournal converts a domain Journal to a model Journal
func ToModelJournal(d domain.Journal) models.Journal {
	return models.Journal{
		JournalID:   d.JournalID,
		Name:        d.Name,
		Code:        d.Code,
		Description: d.Description,
		CreatedAt:   d.CreatedAt,
	}
}

// ToDomainJournal converts a model Journal to a domain Journal
func ToDomainJournal(m models.Journal) domain.Journal {
	return domain.Journal{
		JournalID:   m.JournalID,
		Name:        m.Name,
		Code:        m.Code,
		Description: m.Description,
		CreatedAt:   m.CreatedAt,
	}
}
