package dto

import (
	"github.com/SscSPs/txledger/internal/core/domain"
)

// TxTemplateParamRequest declares one template parameter.
type TxTemplateParamRequest struct {
	Name        string  `json:"name" yaml:"name" binding:"required"`
	Type        string  `json:"type" yaml:"type" binding:"required"`
	Default     *string `json:"default,omitempty" yaml:"default,omitempty"`
	Description string  `json:"description,omitempty" yaml:"description,omitempty"`
}

// TxTemplateEntryRequest describes one entry of the template. Every field except
// Direction and Layer is an expression: 'literal' or params.<name>.
type TxTemplateEntryRequest struct {
	EntryType   string `json:"entryType" yaml:"entryType" binding:"required"`
	AccountID   string `json:"accountID" yaml:"accountID" binding:"required"`
	Currency    string `json:"currency" yaml:"currency" binding:"required"`
	Direction   string `json:"direction" yaml:"direction" binding:"required"`
	Layer       string `json:"layer" yaml:"layer" binding:"required"`
	Units       string `json:"units" yaml:"units" binding:"required"`
	Description string `json:"description,omitempty" yaml:"description,omitempty"`
}

// TxTemplateTransactionRequest holds the expressions for the transaction header.
type TxTemplateTransactionRequest struct {
	JournalID     string `json:"journalID" yaml:"journalID"`
	Effective     string `json:"effective" yaml:"effective"`
	Metadata      string `json:"metadata,omitempty" yaml:"metadata,omitempty"`
	ExternalID    string `json:"externalID,omitempty" yaml:"externalID,omitempty"`
	Description   string `json:"description,omitempty" yaml:"description,omitempty"`
	CorrelationID string `json:"correlationID,omitempty" yaml:"correlationID,omitempty"`
}

// CreateTxTemplateRequest defines the data needed to register a transaction template.
// The minimum entry count is checked by the registry so the caller gets an invalid-template error.
type CreateTxTemplateRequest struct {
	TxTemplateID string                       `json:"txTemplateID" yaml:"txTemplateID,omitempty" binding:"omitempty,uuid"`
	Code         string                       `json:"code" yaml:"code" binding:"required"`
	Description  string                       `json:"description" yaml:"description,omitempty"`
	ExternalID   string                       `json:"externalID" yaml:"externalID,omitempty"`
	Params       []TxTemplateParamRequest     `json:"params" yaml:"params" binding:"dive"`
	Transaction  TxTemplateTransactionRequest `json:"transaction" yaml:"transaction"`
	Entries      []TxTemplateEntryRequest     `json:"entries" yaml:"entries" binding:"dive"`
	Metadata     map[string]any               `json:"metadata" yaml:"metadata,omitempty"`
}

// ListTxTemplatesParams defines query parameters for listing templates.
type ListTxTemplatesParams struct {
	First int     `form:"first,default=20" binding:"min=0"`
	After *string `form:"after"`
}

// TxTemplateResponse defines the data returned for a template.
type TxTemplateResponse struct {
	domain.TxTemplate
}

// ListTxTemplatesResponse wraps one page of templates.
type ListTxTemplatesResponse struct {
	TxTemplates []TxTemplateResponse `json:"txTemplates"`
	PageInfo    PageInfo             `json:"pageInfo"`
}

// PageInfo describes the position of a page within a cursor-paginated listing.
type PageInfo struct {
	HasNextPage bool    `json:"hasNextPage"`
	EndCursor   *string `json:"endCursor,omitempty"`
}

// ToTxTemplateResponse converts a domain.TxTemplate to TxTemplateResponse DTO.
func ToTxTemplateResponse(tpl *domain.TxTemplate) TxTemplateResponse {
	return TxTemplateResponse{TxTemplate: *tpl}
}

// ToListTxTemplatesResponse wraps a page of templates and its cursor.
func ToListTxTemplatesResponse(tpls []domain.TxTemplate, nextToken *string) ListTxTemplatesResponse {
	res := ListTxTemplatesResponse{
		TxTemplates: make([]TxTemplateResponse, len(tpls)),
		PageInfo:    PageInfo{HasNextPage: nextToken != nil, EndCursor: nextToken},
	}
	for i := range tpls {
		res.TxTemplates[i] = ToTxTemplateResponse(&tpls[i])
	}
	return res
}
