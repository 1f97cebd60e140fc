package domain

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/SscSPs/txledger/internal/apperrors"
)

// MinTemplateEntries is the smallest entry count that can ever balance.
const MinTemplateEntries = 2

// TxTemplateEntry is the shape of one entry produced by a template.
// Direction and Layer are fixed; everything else is an expression.
type TxTemplateEntry struct {
	EntryType   Expression `json:"entryType"`
	Currency    Expression `json:"currency"`
	AccountID   Expression `json:"accountID"`
	Direction   Direction  `json:"direction"`
	Layer       Layer      `json:"layer"`
	Units       Expression `json:"units"`
	Description Expression `json:"description"`
}

// TxTemplateTransaction is the transaction-level shape produced by a template.
type TxTemplateTransaction struct {
	JournalID     Expression `json:"journalID"`
	Effective     Expression `json:"effective"`
	Metadata      Expression `json:"metadata"`
	ExternalID    Expression `json:"externalID"`
	Description   Expression `json:"description"`
	CorrelationID Expression `json:"correlationID"`
}

// TxTemplate is an immutable, versioned transaction blueprint.
type TxTemplate struct {
	TxTemplateID string                `json:"txTemplateID"` // Primary Key (UUID)
	Code         string                `json:"code"`         // Unique
	Version      int                   `json:"version"`
	Description  string                `json:"description"`
	ExternalID   string                `json:"externalID"` // Optional, unique when set
	Entries      []TxTemplateEntry     `json:"entries"`
	Transaction  TxTemplateTransaction `json:"transaction"`
	Params       []ParamDefinition     `json:"params"`
	Metadata     json.RawMessage       `json:"metadata"`
	CreatedAt    time.Time             `json:"createdAt"`
	Seq          int64                 `json:"-"` // Creation order, assigned by the registry store
}

// slot pairs an expression with the type its resolved value must have.
type slot struct {
	name     string
	expr     Expression
	want     ParamDataType
	required bool
}

func (t TxTemplate) transactionSlots() []slot {
	tx := t.Transaction
	return []slot{
		{"transaction.journalID", tx.JournalID, ParamUUID, true},
		{"transaction.effective", tx.Effective, ParamDate, true},
		{"transaction.metadata", tx.Metadata, ParamJSON, false},
		{"transaction.externalID", tx.ExternalID, ParamString, false},
		{"transaction.description", tx.Description, ParamString, false},
		{"transaction.correlationID", tx.CorrelationID, ParamString, false},
	}
}

func entrySlots(i int, e TxTemplateEntry) []slot {
	prefix := fmt.Sprintf("entries[%d].", i)
	return []slot{
		{prefix + "entryType", e.EntryType, ParamString, true},
		{prefix + "currency", e.Currency, ParamString, true},
		{prefix + "accountID", e.AccountID, ParamUUID, true},
		{prefix + "units", e.Units, ParamDecimal, true},
		{prefix + "description", e.Description, ParamString, false},
	}
}

func (t TxTemplate) slots() []slot {
	slots := t.transactionSlots()
	for i, e := range t.Entries {
		slots = append(slots, entrySlots(i, e)...)
	}
	return slots
}

// ReferencedParams returns the sorted, de-duplicated parameter names the template uses.
func (t TxTemplate) ReferencedParams() []string {
	seen := map[string]struct{}{}
	for _, s := range t.slots() {
		if s.expr.Kind == ExprParamRef {
			seen[s.expr.Value] = struct{}{}
		}
	}
	names := make([]string, 0, len(seen))
	for n := range seen {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}

// Validate checks the structural rules a template must satisfy before it is stored.
// Every problem is reported; the result wraps apperrors.ErrInvalidTemplate.
func (t TxTemplate) Validate() error {
	var problems []string
	add := func(format string, args ...any) {
		problems = append(problems, fmt.Sprintf(format, args...))
	}

	if strings.TrimSpace(t.Code) == "" {
		add("code is required")
	}
	if len(t.Entries) < MinTemplateEntries {
		add("template needs at least %d entries, got %d", MinTemplateEntries, len(t.Entries))
	}
	for i, e := range t.Entries {
		if _, err := ParseDirection(string(e.Direction)); err != nil {
			add("entries[%d]: %v", i, err)
		}
		if _, err := ParseLayer(string(e.Layer)); err != nil {
			add("entries[%d]: %v", i, err)
		}
	}

	declared := make(map[string]ParamDefinition, len(t.Params))
	for _, p := range t.Params {
		if !paramNamePattern.MatchString(p.Name) {
			add("invalid parameter name %q", p.Name)
			continue
		}
		if _, dup := declared[p.Name]; dup {
			add("parameter %q declared twice", p.Name)
			continue
		}
		if _, err := ParseParamDataType(string(p.Type)); err != nil {
			add("parameter %q: %v", p.Name, err)
			continue
		}
		if p.Default != nil {
			if _, err := p.Type.Coerce(*p.Default); err != nil {
				add("parameter %q default: %v", p.Name, err)
			}
		}
		declared[p.Name] = p
	}

	used := map[string]struct{}{}
	for _, s := range t.slots() {
		switch s.expr.Kind {
		case ExprEmpty:
			if s.required {
				add("%s is required", s.name)
			}
		case ExprLiteral:
			v, err := s.want.Coerce(s.expr.Value)
			if err != nil {
				add("%s: literal %v", s.name, err)
				continue
			}
			if err := checkSlotValue(s, v); err != nil {
				add("%s: %v", s.name, err)
			}
		case ExprParamRef:
			used[s.expr.Value] = struct{}{}
			def, ok := declared[s.expr.Value]
			if !ok {
				add("%s references undeclared parameter %q", s.name, s.expr.Value)
				continue
			}
			if !s.want.AcceptsParam(def.Type) {
				add("%s expects %s but parameter %q is %s", s.name, s.want, def.Name, def.Type)
			}
		}
	}
	for _, p := range t.Params {
		if _, ok := used[p.Name]; !ok && declared[p.Name].Name != "" {
			add("parameter %q is declared but never used", p.Name)
		}
	}

	if len(problems) == 0 {
		return nil
	}
	return fmt.Errorf("%w: %s", apperrors.ErrInvalidTemplate, strings.Join(problems, "; "))
}

// checkSlotValue applies the per-slot constraints beyond the data type.
func checkSlotValue(s slot, v any) error {
	switch {
	case strings.HasSuffix(s.name, ".currency"):
		if c, _ := v.(string); !IsCurrencyCode(c) {
			return fmt.Errorf("%w: %q is not a currency code", apperrors.ErrTypeMismatch, c)
		}
	case strings.HasSuffix(s.name, ".units"):
		return CheckUnits(v)
	}
	return nil
}

// CheckUnits rejects negative unit amounts.
func CheckUnits(v any) error {
	if u, ok := v.(interface{ IsNegative() bool }); ok && u.IsNegative() {
		return fmt.Errorf("%w: units must not be negative", apperrors.ErrTypeMismatch)
	}
	return nil
}
