package mapping

import (
	"encoding/json"
	"fmt"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/models"
)

// ToModelTxTemplate converts a domain TxTemplate to a model TxTemplate, encoding the
// structured parts as JSON documents.
func ToModelTxTemplate(d domain.TxTemplate) (models.TxTemplate, error) {
	params, err := json.Marshal(d.Params)
	if err != nil {
		return models.TxTemplate{}, fmt.Errorf("encode params: %w", err)
	}
	tx, err := json.Marshal(d.Transaction)
	if err != nil {
		return models.TxTemplate{}, fmt.Errorf("encode transaction: %w", err)
	}
	entries, err := json.Marshal(d.Entries)
	if err != nil {
		return models.TxTemplate{}, fmt.Errorf("encode entries: %w", err)
	}
	return models.TxTemplate{
		Seq:          d.Seq,
		TxTemplateID: d.TxTemplateID,
		Code:         d.Code,
		Version:      d.Version,
		Description:  d.Description,
		ExternalID:   optionalString(d.ExternalID),
		Params:       params,
		Transaction:  tx,
		Entries:      entries,
		Metadata:     nullableJSON(d.Metadata),
		CreatedAt:    d.CreatedAt,
	}, nil
}

// ToDomainTxTemplate converts a model TxTemplate back to the domain value. Expressions are
// re-parsed from their stored text form.
func ToDomainTxTemplate(m models.TxTemplate) (domain.TxTemplate, error) {
	d := domain.TxTemplate{
		Seq:          m.Seq,
		TxTemplateID: m.TxTemplateID,
		Code:         m.Code,
		Version:      m.Version,
		Description:  m.Description,
		ExternalID:   derefString(m.ExternalID),
		Metadata:     json.RawMessage(m.Metadata),
		CreatedAt:    m.CreatedAt,
	}
	if err := json.Unmarshal(m.Params, &d.Params); err != nil {
		return domain.TxTemplate{}, fmt.Errorf("decode params of %s: %w", m.Code, err)
	}
	if err := json.Unmarshal(m.Transaction, &d.Transaction); err != nil {
		return domain.TxTemplate{}, fmt.Errorf("decode transaction of %s: %w", m.Code, err)
	}
	if err := json.Unmarshal(m.Entries, &d.Entries); err != nil {
		return domain.TxTemplate{}, fmt.Errorf("decode entries of %s: %w", m.Code, err)
	}
	return d, nil
}
