package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
)

// accountService implements the AccountSvcFacade interface
type accountService struct {
	BaseService
	accountRepo portsrepo.AccountRepositoryFacade
}

// NewAccountService creates a new account service.
func NewAccountService(repo portsrepo.AccountRepositoryFacade) portssvc.AccountSvcFacade {
	return &accountService{accountRepo: repo}
}

var _ portssvc.AccountSvcFacade = (*accountService)(nil)

func (s *accountService) CreateAccount(ctx context.Context, req dto.CreateAccountRequest) (*domain.Account, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("%w: account name and code are required", apperrors.ErrValidation)
	}

	accountID := req.AccountID
	if accountID == "" {
		accountID = uuid.NewString()
	} else if !isUUID(accountID) {
		return nil, fmt.Errorf("%w: accountID must be a UUID", apperrors.ErrValidation)
	}

	var metadata json.RawMessage
	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			return nil, fmt.Errorf("%w: metadata: %v", apperrors.ErrValidation, err)
		}
		metadata = raw
	}

	account := domain.Account{
		AccountID: accountID,
		Name:      req.Name,
		Code:      req.Code,
		Metadata:  metadata,
		CreatedAt: s.Now(),
	}

	if err := s.accountRepo.SaveAccount(ctx, account); err != nil {
		s.LogError(ctx, err, "Failed to save account", slog.String("account_id", accountID), slog.String("code", req.Code))
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.LogInfo(ctx, "Account created", slog.String("account_id", accountID), slog.String("code", req.Code))
	return &account, nil
}

func (s *accountService) GetAccountByID(ctx context.Context, accountID string) (*domain.Account, error) {
	if !isUUID(accountID) {
		return nil, fmt.Errorf("account %q: %w", accountID, apperrors.ErrNotFound)
	}
	account, err := s.accountRepo.FindAccountByID(ctx, accountID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account", slog.String("account_id", accountID))
		}
		return nil, err
	}
	return account, nil
}

func (s *accountService) GetAccountByCode(ctx context.Context, code string) (*domain.Account, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: account code is required", apperrors.ErrValidation)
	}
	account, err := s.accountRepo.FindAccountByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get account by code", slog.String("code", code))
		}
		return nil, fmt.Errorf("account code %q: %w", code, err)
	}
	return account, nil
}

func (s *accountService) AccountExists(ctx context.Context, accountID string) (bool, error) {
	missing, err := s.MissingAccounts(ctx, []string{accountID})
	if err != nil {
		return false, err
	}
	return len(missing) == 0, nil
}

func (s *accountService) MissingAccounts(ctx context.Context, accountIDs []string) ([]string, error) {
	if len(accountIDs) == 0 {
		return nil, nil
	}
	valid := make([]string, 0, len(accountIDs))
	for _, id := range accountIDs {
		if isUUID(id) {
			valid = append(valid, id)
		}
	}
	found := map[string]domain.Account{}
	var err error
	if len(valid) > 0 {
		found, err = s.accountRepo.FindAccountsByIDs(ctx, valid)
	}
	if err != nil {
		s.LogError(ctx, err, "Failed to look up accounts", slog.Int("count", len(accountIDs)))
		return nil, err
	}

	var missing []string
	seen := make(map[string]struct{}, len(accountIDs))
	for _, id := range accountIDs {
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		if _, ok := found[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Strings(missing)
	return missing, nil
}
