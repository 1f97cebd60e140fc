package services

import (
	"context"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/dto"
)

// TxTemplateReaderSvc defines read operations on the template registry
type TxTemplateReaderSvc interface {
	// FindTxTemplateByCode retrieves a template by code.
	FindTxTemplateByCode(ctx context.Context, code string) (*domain.TxTemplate, error)

	// FindTxTemplateByExternalID retrieves a template by its external identifier.
	FindTxTemplateByExternalID(ctx context.Context, externalID string) (*domain.TxTemplate, error)

	// ListTxTemplates retrieves one cursor-paginated page of templates in creation order.
	ListTxTemplates(ctx context.Context, params dto.ListTxTemplatesParams) (*dto.ListTxTemplatesResponse, error)
}

// TxTemplateWriterSvc defines write operations on the template registry
type TxTemplateWriterSvc interface {
	// CreateTxTemplate parses, validates and registers a new template.
	CreateTxTemplate(ctx context.Context, req dto.CreateTxTemplateRequest) (*domain.TxTemplate, error)
}

// TxTemplateSvcFacade combines all template-related service interfaces
type TxTemplateSvcFacade interface {
	TxTemplateReaderSvc
	TxTemplateWriterSvc
}
