package services

import (
	"context"
	"encoding/json"
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
	"github.com/SscSPs/txledger/internal/utils/pagination"
)

// TemplateVersion is the version assigned to newly registered templates.
const TemplateVersion = 1

// txTemplateService is the template registry.
type txTemplateService struct {
	BaseService
	templateRepo portsrepo.TxTemplateRepositoryFacade
}

// NewTxTemplateService creates the template registry service.
func NewTxTemplateService(templateRepo portsrepo.TxTemplateRepositoryFacade) portssvc.TxTemplateSvcFacade {
	return &txTemplateService{templateRepo: templateRepo}
}

var _ portssvc.TxTemplateSvcFacade = (*txTemplateService)(nil)

// CreateTxTemplate parses every expression once, validates the template structure and stores it.
func (s *txTemplateService) CreateTxTemplate(ctx context.Context, req dto.CreateTxTemplateRequest) (*domain.TxTemplate, error) {
	logger := s.GetLogger(ctx).With(slog.String("template_code", req.Code))

	tpl, err := buildTxTemplate(req)
	if err != nil {
		logger.Warn("Rejected template", slog.String("error", err.Error()))
		return nil, err
	}
	if err := tpl.Validate(); err != nil {
		logger.Warn("Rejected template", slog.String("error", err.Error()))
		return nil, err
	}

	if existing, err := s.templateRepo.FindTxTemplateByCode(ctx, tpl.Code); err == nil && existing != nil {
		return nil, fmt.Errorf("%w: template %q", apperrors.ErrDuplicateCode, tpl.Code)
	} else if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		logger.Error("Failed to check template code", slog.String("error", err.Error()))
		return nil, err
	}

	tpl.TxTemplateID = req.TxTemplateID
	if tpl.TxTemplateID == "" {
		tpl.TxTemplateID = uuid.NewString()
	} else if !isUUID(tpl.TxTemplateID) {
		return nil, fmt.Errorf("%w: txTemplateID must be a UUID", apperrors.ErrValidation)
	}
	tpl.Version = TemplateVersion
	tpl.CreatedAt = s.Now()

	// The store enforces code and external id uniqueness again, which settles concurrent creates.
	if err := s.templateRepo.SaveTxTemplate(ctx, tpl); err != nil {
		if errors.Is(err, apperrors.ErrDuplicateCode) || errors.Is(err, apperrors.ErrDuplicateExternalID) {
			logger.Warn("Template already registered", slog.String("error", err.Error()))
		} else {
			logger.Error("Failed to save template", slog.String("error", err.Error()))
		}
		return nil, err
	}

	logger.Info("Template registered",
		slog.String("template_id", tpl.TxTemplateID),
		slog.Int("entries", len(tpl.Entries)),
		slog.Int("params", len(tpl.Params)))
	return &tpl, nil
}

func (s *txTemplateService) FindTxTemplateByCode(ctx context.Context, code string) (*domain.TxTemplate, error) {
	tpl, err := s.templateRepo.FindTxTemplateByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("template %q: %w", code, err)
	}
	return tpl, nil
}

func (s *txTemplateService) FindTxTemplateByExternalID(ctx context.Context, externalID string) (*domain.TxTemplate, error) {
	tpl, err := s.templateRepo.FindTxTemplateByExternalID(ctx, externalID)
	if err != nil {
		return nil, fmt.Errorf("template with external id %q: %w", externalID, err)
	}
	return tpl, nil
}

// ListTxTemplates returns templates in creation order. The cursor is opaque to callers.
func (s *txTemplateService) ListTxTemplates(ctx context.Context, params dto.ListTxTemplatesParams) (*dto.ListTxTemplatesResponse, error) {
	limit := pagination.ClampLimit(params.First)
	if params.After != nil {
		if _, err := pagination.DecodeSeqToken(*params.After); err != nil {
			return nil, fmt.Errorf("%w: %v", apperrors.ErrValidation, err)
		}
	}

	tpls, next, err := s.templateRepo.ListTxTemplates(ctx, limit, params.After)
	if err != nil {
		s.LogError(ctx, err, "Failed to list templates", slog.Int("limit", limit))
		return nil, err
	}
	res := dto.ToListTxTemplatesResponse(tpls, next)
	return &res, nil
}

// buildTxTemplate turns the wire shape into the domain value, parsing each expression.
// Direction and layer are normalised when recognised and passed through otherwise so that
// Validate reports them alongside every other problem.
func buildTxTemplate(req dto.CreateTxTemplateRequest) (domain.TxTemplate, error) {
	var problems []error
	parse := func(field, raw string) domain.Expression {
		expr, err := domain.ParseExpression(raw)
		if err != nil {
			problems = append(problems, fmt.Errorf("%s: %w", field, err))
		}
		return expr
	}

	tpl := domain.TxTemplate{
		Code:        strings.TrimSpace(req.Code),
		Description: req.Description,
		ExternalID:  strings.TrimSpace(req.ExternalID),
		Transaction: domain.TxTemplateTransaction{
			JournalID:     parse("transaction.journalID", req.Transaction.JournalID),
			Effective:     parse("transaction.effective", req.Transaction.Effective),
			Metadata:      parse("transaction.metadata", req.Transaction.Metadata),
			ExternalID:    parse("transaction.externalID", req.Transaction.ExternalID),
			Description:   parse("transaction.description", req.Transaction.Description),
			CorrelationID: parse("transaction.correlationID", req.Transaction.CorrelationID),
		},
	}

	for i, e := range req.Entries {
		field := fmt.Sprintf("entries[%d].", i)
		entry := domain.TxTemplateEntry{
			EntryType:   parse(field+"entryType", e.EntryType),
			Currency:    parse(field+"currency", e.Currency),
			AccountID:   parse(field+"accountID", e.AccountID),
			Units:       parse(field+"units", e.Units),
			Description: parse(field+"description", e.Description),
			Direction:   domain.Direction(e.Direction),
			Layer:       domain.Layer(e.Layer),
		}
		if d, err := domain.ParseDirection(e.Direction); err == nil {
			entry.Direction = d
		}
		if l, err := domain.ParseLayer(e.Layer); err == nil {
			entry.Layer = l
		}
		tpl.Entries = append(tpl.Entries, entry)
	}

	for _, p := range req.Params {
		def := domain.ParamDefinition{
			Name:        strings.TrimSpace(p.Name),
			Type:        domain.ParamDataType(p.Type),
			Default:     p.Default,
			Description: p.Description,
		}
		if t, err := domain.ParseParamDataType(p.Type); err == nil {
			def.Type = t
		}
		tpl.Params = append(tpl.Params, def)
	}

	if req.Metadata != nil {
		raw, err := json.Marshal(req.Metadata)
		if err != nil {
			problems = append(problems, fmt.Errorf("metadata: %w", err))
		}
		tpl.Metadata = raw
	}

	if len(problems) > 0 {
		return domain.TxTemplate{}, fmt.Errorf("%w: %w", apperrors.ErrInvalidTemplate, errors.Join(problems...))
	}
	return tpl, nil
}
