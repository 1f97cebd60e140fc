package templating

import (
	"fmt"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
)

// ValidateParams checks caller-supplied values against the declared parameters and returns
// the coerced set. Declared parameters that are absent fall back to their default; without a
// default the call fails with ErrUnknownParameter. Undeclared keys are dropped.
func ValidateParams(defs []domain.ParamDefinition, supplied map[string]any) (domain.Params, error) {
	params := make(domain.Params, len(defs))
	for _, def := range defs {
		raw, ok := supplied[def.Name]
		if !ok {
			if def.Default == nil {
				return nil, fmt.Errorf("%w: %q is required", apperrors.ErrUnknownParameter, def.Name)
			}
			raw = *def.Default
		}
		v, err := def.Type.Coerce(raw)
		if err != nil {
			return nil, fmt.Errorf("parameter %q: %w", def.Name, err)
		}
		params[def.Name] = v
	}
	return params, nil
}
