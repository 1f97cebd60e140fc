package accounting

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
)

// SignedUnits applies the debit-normal sign convention: debits count positive, credits negative.
// This is used in both services and repositories so the balancing rule stays in one place.
func SignedUnits(e domain.Entry) decimal.Decimal {
	if e.Direction == domain.Credit {
		return e.Units.Neg()
	}
	return e.Units
}

type sideKey struct {
	currency string
	layer    domain.Layer
}

// CheckBalanced verifies that, for every (currency, layer) pair touched by entries, total debits
// equal total credits. Entries in different currencies or layers never offset each other.
func CheckBalanced(entries []domain.Entry) error {
	sums := make(map[sideKey]decimal.Decimal)
	for _, e := range entries {
		k := sideKey{currency: e.Currency, layer: e.Layer}
		sums[k] = sums[k].Add(SignedUnits(e))
	}

	var problems []string
	for k, sum := range sums {
		if !sum.IsZero() {
			problems = append(problems, fmt.Sprintf("%s/%s is off by %s", k.currency, k.layer, sum.String()))
		}
	}
	if len(problems) == 0 {
		return nil
	}
	sort.Strings(problems)
	return fmt.Errorf("%w: %s", apperrors.ErrUnbalancedTransaction, strings.Join(problems, "; "))
}

// ApplyEntry folds one committed entry into the running balance for its key.
func ApplyEntry(b *domain.Balance, e domain.Entry, at time.Time) {
	if e.Direction == domain.Debit {
		b.DrBalance = b.DrBalance.Add(e.Units)
	} else {
		b.CrBalance = b.CrBalance.Add(e.Units)
	}
	b.Version++
	b.LastEntryID = e.EntryID
	b.ModifiedAt = at
}

// Replay recomputes balances from scratch by folding entries in order. Running it over the
// full entry history must reproduce what the incremental updates stored.
func Replay(entries []domain.Entry) map[domain.BalanceKey]domain.Balance {
	out := make(map[domain.BalanceKey]domain.Balance)
	for _, e := range entries {
		key := e.BalanceKey()
		b, ok := out[key]
		if !ok {
			b = domain.NewBalance(key)
		}
		ApplyEntry(&b, e, e.CreatedAt)
		out[key] = b
	}
	return out
}

// SortedBalanceKeys returns the distinct balance keys touched by entries in lock order.
// Every writer acquires balance locks in this order, which rules out lock-order deadlocks.
func SortedBalanceKeys(entries []domain.Entry) []domain.BalanceKey {
	seen := make(map[domain.BalanceKey]struct{}, len(entries))
	keys := make([]domain.BalanceKey, 0, len(entries))
	for _, e := range entries {
		k := e.BalanceKey()
		if _, ok := seen[k]; ok {
			continue
		}
		seen[k] = struct{}{}
		keys = append(keys, k)
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i].String() < keys[j].String() })
	return keys
}
