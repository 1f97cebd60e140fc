// Package bootstrap registers transaction templates declared in a YAML file at startup.
package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/SscSPs/txledger/internal/apperrors"
	portssvc "github.com/SscSPs/txledger/internal/core/ports/services"
	"github.com/SscSPs/txledger/internal/dto"
)

// TemplateFile is the document layout of a templates file:
//
//	templates:
//	  - code: RECORD_DEPOSIT
//	    params: [...]
//	    transaction: {...}
//	    entries: [...]
type TemplateFile struct {
	Templates []dto.CreateTxTemplateRequest `yaml:"templates"`
}

// LoadTemplateFile parses the YAML templates file at path.
func LoadTemplateFile(path string) (*TemplateFile, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read templates file: %w", err)
	}
	var file TemplateFile
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return nil, fmt.Errorf("parse templates file %s: %w", path, err)
	}
	return &file, nil
}

// SeedTemplates registers every template in file. Templates whose code is already registered
// are skipped, so seeding is safe to repeat on every start. It returns the number created.
func SeedTemplates(ctx context.Context, svc portssvc.TxTemplateWriterSvc, file *TemplateFile, logger *slog.Logger) (int, error) {
	created := 0
	for _, req := range file.Templates {
		tpl, err := svc.CreateTxTemplate(ctx, req)
		switch {
		case err == nil:
			created++
			logger.Info("Registered transaction template", slog.String("code", tpl.Code), slog.String("tx_template_id", tpl.TxTemplateID))
		case errors.Is(err, apperrors.ErrDuplicateCode):
			logger.Debug("Transaction template already registered", slog.String("code", req.Code))
		default:
			return created, fmt.Errorf("seed template %q: %w", req.Code, err)
		}
	}
	return created, nil
}
