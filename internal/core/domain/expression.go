package domain

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/SscSPs/txledger/internal/apperrors"
)

// ExpressionKind tags the closed set of template expressions.
type ExpressionKind uint8

const (
	ExprEmpty ExpressionKind = iota
	ExprLiteral
	ExprParamRef
)

const paramPrefix = "params."

var paramNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// Expression is either a quoted literal ('USD') or a parameter reference (params.amount).
// Templates are parsed into Expressions once at creation; nothing re-parses free-form text later.
type Expression struct {
	Kind  ExpressionKind
	Value string // Literal text without quotes, or the parameter name
}

// Literal builds a literal expression.
func Literal(v string) Expression {
	return Expression{Kind: ExprLiteral, Value: v}
}

// ParamRef builds a parameter reference.
func ParamRef(name string) Expression {
	return Expression{Kind: ExprParamRef, Value: name}
}

// ParseExpression parses raw template text. Blank input yields an empty expression.
func ParseExpression(raw string) (Expression, error) {
	s := strings.TrimSpace(raw)
	switch {
	case s == "":
		return Expression{}, nil
	case len(s) >= 2 && s[0] == '\'' && s[len(s)-1] == '\'':
		inner := s[1 : len(s)-1]
		if strings.ContainsRune(inner, '\'') {
			return Expression{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedExpression, raw)
		}
		return Literal(inner), nil
	case strings.HasPrefix(s, paramPrefix):
		name := strings.TrimPrefix(s, paramPrefix)
		if !paramNamePattern.MatchString(name) {
			return Expression{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedExpression, raw)
		}
		return ParamRef(name), nil
	}
	return Expression{}, fmt.Errorf("%w: %q", apperrors.ErrUnsupportedExpression, raw)
}

// IsEmpty reports whether the expression was left blank.
func (e Expression) IsEmpty() bool {
	return e.Kind == ExprEmpty
}

// String renders the expression in template syntax.
func (e Expression) String() string {
	switch e.Kind {
	case ExprLiteral:
		return "'" + e.Value + "'"
	case ExprParamRef:
		return paramPrefix + e.Value
	}
	return ""
}

// MarshalText stores expressions in their template syntax.
func (e Expression) MarshalText() ([]byte, error) {
	return []byte(e.String()), nil
}

// UnmarshalText parses template syntax.
func (e *Expression) UnmarshalText(text []byte) error {
	parsed, err := ParseExpression(string(text))
	if err != nil {
		return err
	}
	*e = parsed
	return nil
}
