package templating

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/SscSPs/txledger/internal/apperrors"
	"github.com/SscSPs/txledger/internal/core/domain"
)

// Resolver evaluates template expressions against one validated parameter set.
// It is pure: no I/O, no shared state.
type Resolver struct {
	params domain.Params
}

// NewResolver wraps a parameter set, normally the output of ValidateParams.
func NewResolver(params domain.Params) *Resolver {
	return &Resolver{params: params}
}

// Resolve produces the value of expr coerced to want. An empty expression resolves to nil.
func (r *Resolver) Resolve(expr domain.Expression, want domain.ParamDataType) (any, error) {
	switch expr.Kind {
	case domain.ExprEmpty:
		return nil, nil
	case domain.ExprLiteral:
		return want.Coerce(expr.Value)
	case domain.ExprParamRef:
		v, ok := r.params[expr.Value]
		if !ok {
			return nil, fmt.Errorf("%w: %q", apperrors.ErrUnknownParameter, expr.Value)
		}
		out, err := want.Coerce(v)
		if err != nil {
			return nil, fmt.Errorf("params.%s: %w", expr.Value, err)
		}
		return out, nil
	}
	return nil, fmt.Errorf("%w: kind %d", apperrors.ErrUnsupportedExpression, expr.Kind)
}

// String resolves a text slot; empty expressions give "".
func (r *Resolver) String(expr domain.Expression) (string, error) {
	v, err := r.Resolve(expr, domain.ParamString)
	if err != nil || v == nil {
		return "", err
	}
	return v.(string), nil
}

// UUID resolves an identifier slot.
func (r *Resolver) UUID(expr domain.Expression) (string, error) {
	v, err := r.Resolve(expr, domain.ParamUUID)
	if err != nil || v == nil {
		return "", err
	}
	return v.(string), nil
}

// Date resolves a date slot to UTC midnight.
func (r *Resolver) Date(expr domain.Expression) (time.Time, error) {
	v, err := r.Resolve(expr, domain.ParamDate)
	if err != nil || v == nil {
		return time.Time{}, err
	}
	return v.(time.Time), nil
}

// JSON resolves a metadata slot; empty expressions give nil.
func (r *Resolver) JSON(expr domain.Expression) (json.RawMessage, error) {
	if expr.IsEmpty() {
		return nil, nil
	}
	v, err := r.Resolve(expr, domain.ParamJSON)
	if err != nil {
		return nil, err
	}
	return v.(json.RawMessage), nil
}

// Currency resolves a currency slot and checks the code format.
func (r *Resolver) Currency(expr domain.Expression) (string, error) {
	c, err := r.String(expr)
	if err != nil {
		return "", err
	}
	if !domain.IsCurrencyCode(c) {
		return "", fmt.Errorf("%w: %q is not a currency code", apperrors.ErrTypeMismatch, c)
	}
	return c, nil
}

// Units resolves a monetary magnitude: finite and non-negative.
func (r *Resolver) Units(expr domain.Expression) (decimal.Decimal, error) {
	v, err := r.Resolve(expr, domain.ParamDecimal)
	if err != nil {
		return decimal.Zero, err
	}
	if v == nil {
		return decimal.Zero, fmt.Errorf("%w: units are required", apperrors.ErrTypeMismatch)
	}
	if err := domain.CheckUnits(v); err != nil {
		return decimal.Zero, err
	}
	return v.(decimal.Decimal), nil
}
