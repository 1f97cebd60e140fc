package repositories

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
)

// TxTemplateReader defines read operations for transaction templates
type TxTemplateReader interface {
	// FindTxTemplateByCode retrieves a template by its unique code.
	FindTxTemplateByCode(ctx context.Context, code string) (*domain.TxTemplate, error)

	// FindTxTemplateByExternalID retrieves a template by its optional external identifier.
	FindTxTemplateByExternalID(ctx context.Context, externalID string) (*domain.TxTemplate, error)

	// ListTxTemplates retrieves templates in creation order, starting after the given cursor.
	// It returns the templates, a token for the next page (nil on the last page), and an error.
	ListTxTemplates(ctx context.Context, limit int, nextToken *string) ([]domain.TxTemplate, *string, error)
}

// TxTemplateWriter defines write operations for transaction templates
type TxTemplateWriter interface {
	// SaveTxTemplate persists a new template. Templates are immutable once saved.
	// A code clash returns apperrors.ErrDuplicateCode, an external id clash apperrors.ErrDuplicateExternalID.
	SaveTxTemplate(ctx context.Context, tpl domain.TxTemplate) error
}

// TxTemplateRepositoryFacade combines all template-related repository interfaces
type TxTemplateRepositoryFacade interface {
	TxTemplateReader
	TxTemplateWriter
}
