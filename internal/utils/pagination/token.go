package pagination

import (
	"encoding/base64"
	"fmt"
	"strconv"
	"strings"
)

const (
	// DefaultLimit is the page size used when the caller does not ask for one.
	DefaultLimit = 20
	// MaxLimit caps the page size.
	MaxLimit = 100

	seqTokenKind = "seq"
)

// ClampLimit normalises a requested page size into [1, MaxLimit], defaulting non-positive values.
func ClampLimit(first int) int {
	if first <= 0 {
		return DefaultLimit
	}
	if first > MaxLimit {
		return MaxLimit
	}
	return first
}

// EncodeSeqToken creates an opaque cursor pointing just after the row with sequence seq.
func EncodeSeqToken(seq int64) string {
	return EncodeMultiFieldToken(seqTokenKind, strconv.FormatInt(seq, 10))
}

// DecodeSeqToken parses a cursor produced by EncodeSeqToken.
func DecodeSeqToken(token string) (int64, error) {
	parts, err := DecodeMultiFieldToken(token)
	if err != nil {
		return 0, err
	}
	if len(parts) != 2 || parts[0] != seqTokenKind {
		return 0, fmt.Errorf("invalid pagination token format (kind)")
	}
	seq, err := strconv.ParseInt(parts[1], 10, 64)
	if err != nil || seq < 0 {
		return 0, fmt.Errorf("invalid pagination token format (sequence parse)")
	}
	return seq, nil
}

// SeqCursor decodes an optional cursor. A nil token means the listing starts at the beginning.
func SeqCursor(token *string) (seq int64, ok bool, err error) {
	if token == nil {
		return 0, false, nil
	}
	seq, err = DecodeSeqToken(*token)
	if err != nil {
		return 0, false, err
	}
	return seq, true, nil
}

// SeqPage trims rows fetched with one row of lookahead down to limit. It returns the cursor
// for the following page, or nil when rows held no more than limit.
func SeqPage[T any](rows []T, limit int, seq func(T) int64) ([]T, *string) {
	if len(rows) <= limit || limit <= 0 {
		return rows, nil
	}
	rows = rows[:limit]
	token := EncodeSeqToken(seq(rows[len(rows)-1]))
	return rows, &token
}

// EncodeMultiFieldToken creates a token with any number of string fields
func EncodeMultiFieldToken(fields ...string) string {
	tokenStr := strings.Join(fields, "|")
	return base64.StdEncoding.EncodeToString([]byte(tokenStr))
}

// DecodeMultiFieldToken decodes a token into its component fields
func DecodeMultiFieldToken(token string) ([]string, error) {
	decodedBytes, err := base64.StdEncoding.DecodeString(token)
	if err != nil {
		return nil, fmt.Errorf("invalid pagination token format (base64 decode): %w", err)
	}

	tokenStr := string(decodedBytes)
	parts := strings.Split(tokenStr, "|")
	return parts, nil
}
