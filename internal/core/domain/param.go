package domain

import (
	"encoding/json"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/SscSPs/txledger/internal/apperrors"
)

// ParamDataType is the declared type of a template parameter.
type ParamDataType string

const (
	ParamString    ParamDataType = "STRING"
	ParamInteger   ParamDataType = "INTEGER"
	ParamUUID      ParamDataType = "UUID"
	ParamDecimal   ParamDataType = "DECIMAL"
	ParamDate      ParamDataType = "DATE"
	ParamTimestamp ParamDataType = "TIMESTAMP"
	ParamJSON      ParamDataType = "JSON"
	ParamBoolean   ParamDataType = "BOOLEAN"
)

const dateLayout = "2006-01-02"

// ParseParamDataType accepts the type names in any case ("Uuid", "DECIMAL", "json").
func ParseParamDataType(s string) (ParamDataType, error) {
	switch t := ParamDataType(strings.ToUpper(strings.TrimSpace(s))); t {
	case ParamString, ParamInteger, ParamUUID, ParamDecimal, ParamDate, ParamTimestamp, ParamJSON, ParamBoolean:
		return t, nil
	}
	return "", fmt.Errorf("unknown parameter type %q", s)
}

// ParamDefinition declares one named, typed template parameter.
type ParamDefinition struct {
	Name        string        `json:"name" yaml:"name"`
	Type        ParamDataType `json:"type" yaml:"type"`
	Default     *string       `json:"default,omitempty" yaml:"default,omitempty"` // Raw value coerced to Type when the caller omits the param
	Description string        `json:"description,omitempty" yaml:"description,omitempty"`
}

// Params is a coerced parameter set keyed by name.
type Params map[string]any

// Coerce converts v into the canonical Go representation of t:
// STRING/UUID -> string, INTEGER -> int64, DECIMAL -> decimal.Decimal,
// DATE/TIMESTAMP -> time.Time (UTC), JSON -> json.RawMessage, BOOLEAN -> bool.
// Failures wrap apperrors.ErrTypeMismatch.
func (t ParamDataType) Coerce(v any) (any, error) {
	out, err := t.coerce(v)
	if err != nil {
		return nil, fmt.Errorf("%w: expected %s, got %v (%T): %v", apperrors.ErrTypeMismatch, t, v, v, err)
	}
	return out, nil
}

func (t ParamDataType) coerce(v any) (any, error) {
	if v == nil && t != ParamJSON {
		return nil, fmt.Errorf("null value")
	}
	switch t {
	case ParamString:
		s, ok := v.(string)
		if !ok {
			return nil, fmt.Errorf("not a string")
		}
		return s, nil
	case ParamUUID:
		switch val := v.(type) {
		case uuid.UUID:
			return val.String(), nil
		case string:
			id, err := uuid.Parse(val)
			if err != nil {
				return nil, err
			}
			return id.String(), nil
		}
		return nil, fmt.Errorf("not a uuid")
	case ParamInteger:
		return toInteger(v)
	case ParamDecimal:
		return toDecimal(v)
	case ParamDate:
		ts, err := toTime(v, true)
		if err != nil {
			return nil, err
		}
		y, m, d := ts.Date()
		return time.Date(y, m, d, 0, 0, 0, 0, time.UTC), nil
	case ParamTimestamp:
		return toTime(v, false)
	case ParamJSON:
		return toJSON(v)
	case ParamBoolean:
		switch val := v.(type) {
		case bool:
			return val, nil
		case string:
			return strconv.ParseBool(val)
		}
		return nil, fmt.Errorf("not a boolean")
	}
	return nil, fmt.Errorf("unknown parameter type")
}

func toDecimal(v any) (decimal.Decimal, error) {
	switch val := v.(type) {
	case decimal.Decimal:
		return val, nil
	case float64:
		if math.IsNaN(val) || math.IsInf(val, 0) {
			return decimal.Zero, fmt.Errorf("non-finite number")
		}
		return decimal.NewFromFloat(val), nil
	case float32:
		f := float64(val)
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return decimal.Zero, fmt.Errorf("non-finite number")
		}
		return decimal.NewFromFloat32(val), nil
	case int:
		return decimal.NewFromInt(int64(val)), nil
	case int32:
		return decimal.NewFromInt32(val), nil
	case int64:
		return decimal.NewFromInt(val), nil
	case json.Number:
		return decimal.NewFromString(val.String())
	case string:
		return decimal.NewFromString(strings.TrimSpace(val))
	}
	return decimal.Zero, fmt.Errorf("not a decimal")
}

func toInteger(v any) (int64, error) {
	switch val := v.(type) {
	case int:
		return int64(val), nil
	case int32:
		return int64(val), nil
	case int64:
		return val, nil
	case string:
		return strconv.ParseInt(strings.TrimSpace(val), 10, 64)
	}
	d, err := toDecimal(v)
	if err != nil {
		return 0, err
	}
	if !d.IsInteger() {
		return 0, fmt.Errorf("not an integer")
	}
	// IntPart wraps silently outside the int64 range.
	if !d.BigInt().IsInt64() {
		return 0, fmt.Errorf("integer out of range")
	}
	return d.IntPart(), nil
}

func toTime(v any, dateOnly bool) (time.Time, error) {
	switch val := v.(type) {
	case time.Time:
		return val.UTC(), nil
	case string:
		s := strings.TrimSpace(val)
		if dateOnly {
			if d, err := time.Parse(dateLayout, s); err == nil {
				return d, nil
			}
		}
		ts, err := time.Parse(time.RFC3339Nano, s)
		if err != nil {
			return time.Time{}, err
		}
		return ts.UTC(), nil
	}
	return time.Time{}, fmt.Errorf("not a time")
}

// toJSON accepts raw JSON text or any value encoding/json can marshal.
// A Go string is treated as JSON text, so "hello" must be passed as `"hello"`.
func toJSON(v any) (json.RawMessage, error) {
	switch val := v.(type) {
	case nil:
		return json.RawMessage("null"), nil
	case json.RawMessage:
		if !json.Valid(val) {
			return nil, fmt.Errorf("invalid json")
		}
		return val, nil
	case []byte:
		if !json.Valid(val) {
			return nil, fmt.Errorf("invalid json")
		}
		return json.RawMessage(val), nil
	case string:
		if !json.Valid([]byte(val)) {
			return nil, fmt.Errorf("invalid json")
		}
		return json.RawMessage(val), nil
	}
	b, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	return json.RawMessage(b), nil
}

// AcceptsParam reports whether a slot of type t can be fed from a parameter declared as p.
// STRING parameters are accepted everywhere and checked when the value is resolved.
func (t ParamDataType) AcceptsParam(p ParamDataType) bool {
	if t == p || p == ParamString || t == ParamJSON {
		return true
	}
	switch t {
	case ParamString:
		return p == ParamUUID
	case ParamDecimal:
		return p == ParamInteger
	case ParamDate:
		return p == ParamTimestamp
	}
	return false
}
