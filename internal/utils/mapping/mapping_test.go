package mapping

import (
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/SscSPs/txledger/internal/core/domain"
	"github.com/SscSPs/txledger/internal/models"
)

func TestTxTemplateMapping_PreservesExpressions(t *testing.T) {
	usd := "USD"
	tpl := domain.TxTemplate{
		TxTemplateID: "0b7a3c6e-4a77-4f2e-9d55-0c9d7c1f4f10",
		Code:         "RECORD_DEPOSIT",
		Version:      1,
		Params: []domain.ParamDefinition{
			{Name: "amount", Type: domain.ParamDecimal},
			{Name: "currency", Type: domain.ParamString, Default: &usd, Description: "ISO code"},
		},
		Transaction: domain.TxTemplateTransaction{
			JournalID: domain.Literal("5d0f1f4c-3c36-4b7f-8a0a-8f3f3b0b7a11"),
			Effective: domain.Literal("2024-01-01"),
		},
		Entries: []domain.TxTemplateEntry{
			{EntryType: domain.Literal("DR"), Currency: domain.ParamRef("currency"), Direction: domain.Debit, Layer: domain.Settled, Units: domain.ParamRef("amount")},
		},
		CreatedAt: time.Date(2024, 1, 1, 12, 0, 0, 0, time.UTC),
		Seq:       7,
	}

	m, err := ToModelTxTemplate(tpl)
	require.NoError(t, err)
	assert.Nil(t, m.ExternalID)
	assert.Nil(t, m.Metadata)

	back, err := ToDomainTxTemplate(m)
	require.NoError(t, err)
	assert.Equal(t, tpl.Entries, back.Entries)
	assert.Equal(t, tpl.Transaction, back.Transaction)
	assert.Equal(t, tpl.Params, back.Params)
	assert.Equal(t, int64(7), back.Seq)
}

func TestTransactionMapping_OptionalColumns(t *testing.T) {
	tx := domain.Transaction{TransactionID: "t1", Metadata: json.RawMessage(`{"a":1}`)}
	m := ToModelTransaction(tx)
	assert.Nil(t, m.ExternalID)
	assert.Nil(t, m.VoidOf)

	tx.ExternalID, tx.VoidOf = "ext", "t0"
	m = ToModelTransaction(tx)
	require.NotNil(t, m.ExternalID)
	assert.Equal(t, "ext", *m.ExternalID)
	assert.Equal(t, "t0", ToDomainTransaction(m).VoidOf)
}

func TestBalanceMapping(t *testing.T) {
	b := domain.NewBalance(domain.BalanceKey{AccountID: "a", JournalID: "j", Currency: "USD", Layer: domain.Pending})
	b.DrBalance = decimal.RequireFromString("12.34")
	m := ToModelBalance(b)
	assert.Nil(t, m.LastEntryID)
	assert.Equal(t, "PENDING", m.Layer)

	back := ToDomainBalance(m)
	assert.Equal(t, b.BalanceKey, back.BalanceKey)
	assert.True(t, b.DrBalance.Equal(back.DrBalance))
}

func TestEntryMapping_KeepsCommitSeq(t *testing.T) {
	e := domain.Entry{EntryID: "e1", Seq: 42, Direction: domain.Credit, Layer: domain.Settled, Units: decimal.NewFromInt(5)}
	back := ToDomainEntrySlice([]models.Entry{ToModelEntry(e)})
	require.Len(t, back, 1)
	assert.Equal(t, int64(42), back[0].Seq)
	assert.Equal(t, domain.Credit, back[0].Direction)
}
