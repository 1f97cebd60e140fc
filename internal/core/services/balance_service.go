package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/utils/accounting"
)

// balanceService is the read side of the balance ledger. Writes happen only inside
// TransactionWriter.SaveTransaction.
type balanceService struct {
	BaseService
	balanceRepo portsrepo.BalanceReader
	entryRepo   portsrepo.TransactionReader
}

// NewBalanceService creates the balance ledger service.
func NewBalanceService(balanceRepo portsrepo.BalanceReader, entryRepo portsrepo.TransactionReader) portssvc.BalanceSvcFacade {
	return &balanceService{balanceRepo: balanceRepo, entryRepo: entryRepo}
}

var _ portssvc.BalanceSvcFacade = (*balanceService)(nil)

func (s *balanceService) FindBalance(ctx context.Context, accountID, journalID, currency string, layer domain.Layer) (*domain.Balance, error) {
	if layer == "" {
		layer = domain.Settled
	}
	key := domain.BalanceKey{AccountID: accountID, JournalID: journalID, Currency: currency, Layer: layer}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	b, err := s.balanceRepo.FindBalance(ctx, key)
	if errors.Is(err, apperrors.ErrNotFound) {
		zero := domain.NewBalance(key)
		return &zero, nil
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to find balance", slog.String("balance_key", key.String()))
		return nil, err
	}
	return b, nil
}

func (s *balanceService) FindBalances(ctx context.Context, accountID, journalID, currency string) (*domain.LayeredBalance, error) {
	if err := validateKey(domain.BalanceKey{AccountID: accountID, JournalID: journalID, Currency: currency, Layer: domain.Settled}); err != nil {
		return nil, err
	}

	lb := &domain.LayeredBalance{AccountID: accountID, JournalID: journalID, Currency: currency}
	for _, layer := range domain.Layers {
		lb.Set(domain.NewBalance(domain.BalanceKey{AccountID: accountID, JournalID: journalID, Currency: currency, Layer: layer}))
	}

	balances, err := s.balanceRepo.FindBalancesForAccount(ctx, accountID, journalID, currency)
	if err != nil {
		s.LogError(ctx, err, "Failed to find balances",
			slog.String("account_id", accountID), slog.String("journal_id", journalID), slog.String("currency", currency))
		return nil, err
	}
	for _, b := range balances {
		lb.Set(b)
	}
	return lb, nil
}

// FindBalancesByAccount groups every stored balance of an account by (journal, currency).
// Layers the account never touched in a group are reported as zero balances.
func (s *balanceService) FindBalancesByAccount(ctx context.Context, accountID string) ([]domain.LayeredBalance, error) {
	if !isUUID(accountID) {
		return nil, fmt.Errorf("%w: account must be a UUID", apperrors.ErrValidation)
	}

	balances, err := s.balanceRepo.FindBalancesByAccount(ctx, accountID)
	if err != nil {
		s.LogError(ctx, err, "Failed to find balances by account", slog.String("account_id", accountID))
		return nil, err
	}

	out := []domain.LayeredBalance{}
	for _, b := range balances {
		n := len(out)
		if n == 0 || out[n-1].JournalID != b.JournalID || out[n-1].Currency != b.Currency {
			lb := domain.LayeredBalance{AccountID: accountID, JournalID: b.JournalID, Currency: b.Currency}
			for _, layer := range domain.Layers {
				lb.Set(domain.NewBalance(domain.BalanceKey{AccountID: accountID, JournalID: b.JournalID, Currency: b.Currency, Layer: layer}))
			}
			out = append(out, lb)
			n++
		}
		out[n-1].Set(b)
	}
	return out, nil
}

// RecomputeBalance folds the full entry history for key. The result must equal what
// FindBalance reports; any difference means an update was lost or applied twice.
func (s *balanceService) RecomputeBalance(ctx context.Context, key domain.BalanceKey) (*domain.Balance, error) {
	if key.Layer == "" {
		key.Layer = domain.Settled
	}
	if err := validateKey(key); err != nil {
		return nil, err
	}

	entries, err := s.entryRepo.ListEntriesByBalanceKey(ctx, key)
	if err != nil {
		s.LogError(ctx, err, "Failed to load entries for replay", slog.String("balance_key", key.String()))
		return nil, err
	}
	b, ok := accounting.Replay(entries)[key]
	if !ok {
		b = domain.NewBalance(key)
	}
	return &b, nil
}

func validateKey(key domain.BalanceKey) error {
	if key.AccountID == "" || key.JournalID == "" {
		return fmt.Errorf("%w: account and journal are required", apperrors.ErrValidation)
	}
	if !isUUID(key.AccountID) || !isUUID(key.JournalID) {
		return fmt.Errorf("%w: account and journal must be UUIDs", apperrors.ErrValidation)
	}
	if !domain.IsCurrencyCode(key.Currency) {
		return fmt.Errorf("%w: %q is not a currency code", apperrors.ErrValidation, key.Currency)
	}
	if _, err := domain.ParseLayer(string(key.Layer)); err != nil {
		return fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
	}
	return nil
}
