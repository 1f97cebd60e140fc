package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
	portsrepo "github.com/SscSPs/txledger/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
)

// journalService manages the journals entries are posted into.
type journalService struct {
	BaseService
	journalRepo portsrepo.JournalRepositoryFacade
}

// NewJournalService creates a new JournalService.
func NewJournalService(journalRepo portsrepo.JournalRepositoryFacade) portssvc.JournalSvcFacade {
	return &journalService{journalRepo: journalRepo}
}

// Ensure journalService implements the portssvc.JournalSvcFacade interface
var _ portssvc.JournalSvcFacade = (*journalService)(nil)

func (s *journalService) CreateJournal(ctx context.Context, req dto.CreateJournalRequest) (*domain.Journal, error) {
	if strings.TrimSpace(req.Name) == "" || strings.TrimSpace(req.Code) == "" {
		return nil, fmt.Errorf("%w: journal name and code are required", apperrors.ErrValidation)
	}

	journalID := req.JournalID
	if journalID == "" {
		journalID = uuid.NewString()
	} else if !isUUID(journalID) {
		return nil, fmt.Errorf("%w: journalID must be a UUID", apperrors.ErrValidation)
	}

	journal := domain.Journal{
		JournalID:   journalID,
		Name:        req.Name,
		Code:        req.Code,
		Description: req.Description,
		CreatedAt:   s.Now(),
	}
	if err := s.journalRepo.SaveJournal(ctx, journal); err != nil {
		s.LogError(ctx, err, "Failed to save journal", slog.String("journal_id", journalID))
		return nil, fmt.Errorf("failed to create journal: %w", err)
	}

	s.LogInfo(ctx, "Journal created", slog.String("journal_id", journalID), slog.String("code", req.Code))
	return &journal, nil
}

func (s *journalService) GetJournalByID(ctx context.Context, journalID string) (*domain.Journal, error) {
	if !isUUID(journalID) {
		return nil, fmt.Errorf("journal %q: %w", journalID, apperrors.ErrNotFound)
	}
	journal, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal", slog.String("journal_id", journalID))
		}
		return nil, err
	}
	return journal, nil
}

func (s *journalService) GetJournalByCode(ctx context.Context, code string) (*domain.Journal, error) {
	if strings.TrimSpace(code) == "" {
		return nil, fmt.Errorf("%w: journal code is required", apperrors.ErrValidation)
	}
	journal, err := s.journalRepo.FindJournalByCode(ctx, code)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to get journal by code", slog.String("code", code))
		}
		return nil, fmt.Errorf("journal code %q: %w", code, err)
	}
	return journal, nil
}

func (s *journalService) JournalExists(ctx context.Context, journalID string) (bool, error) {
	if !isUUID(journalID) {
		return false, nil
	}
	_, err := s.journalRepo.FindJournalByID(ctx, journalID)
	if err == nil {
		return true, nil
	}
	if errors.Is(err, apperrors.ErrNotFound) {
		return false, nil
	}
	s.LogError(ctx, err, "Failed to check journal existence", slog.String("journal_id", journalID))
	return false, err
}
