package pagination

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEncodeDecodeSeqToken(t *testing.T) {
	for _, seq := range []int64{0, 1, 42, 1 << 40} {
		token := EncodeSeqToken(seq)
		assert.NotEmpty(t, token, "Token should not be empty")

		decoded, err := DecodeSeqToken(token)
		assert.NoError(t, err, "Decoding should not return an error")
		assert.Equal(t, seq, decoded, "Sequence should match after decode")
	}
}

func TestDecodeSeqTokenError(t *testing.T) {
	// Invalid base64
	_, err := DecodeSeqToken("this is not base64!")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "base64 decode", "Error should mention base64 decoding")

	// Wrong kind
	_, err = DecodeSeqToken(EncodeMultiFieldToken("date", "12"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "kind")

	// Not a number
	_, err = DecodeSeqToken(EncodeMultiFieldToken("seq", "abc"))
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "sequence parse")

	// Negative
	_, err = DecodeSeqToken(EncodeMultiFieldToken("seq", "-3"))
	assert.Error(t, err)
}

func TestClampLimit(t *testing.T) {
	assert.Equal(t, DefaultLimit, ClampLimit(0))
	assert.Equal(t, DefaultLimit, ClampLimit(-5))
	assert.Equal(t, 7, ClampLimit(7))
	assert.Equal(t, MaxLimit, ClampLimit(MaxLimit+1))
}

func TestEncodeMultiFieldToken(t *testing.T) {
	fields := []string{"field1", "field2", "field3"}
	token := EncodeMultiFieldToken(fields...)

	decodedFields, err := DecodeMultiFieldToken(token)
	assert.NoError(t, err, "Decoding should not return an error")
	assert.Equal(t, fields, decodedFields, "Fields should match after decode")

	// When splitting an empty string with strings.Split, we get a slice with one empty string
	decodedEmpty, err := DecodeMultiFieldToken(EncodeMultiFieldToken())
	assert.NoError(t, err)
	assert.Equal(t, []string{""}, decodedEmpty)

	specialToken := EncodeMultiFieldToken("field|with|pipes", "field with spaces")
	decodedSpecial, err := DecodeMultiFieldToken(specialToken)
	assert.NoError(t, err)
	assert.Len(t, decodedSpecial, 4, "Should split on all pipe characters")
}

func TestSeqCursor(t *testing.T) {
	seq, ok, err := SeqCursor(nil)
	assert.NoError(t, err)
	assert.False(t, ok)
	assert.Zero(t, seq)

	token := EncodeSeqToken(9)
	seq, ok, err = SeqCursor(&token)
	assert.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, int64(9), seq)

	bad := "!!"
	_, _, err = SeqCursor(&bad)
	assert.Error(t, err)
}

func TestSeqPage(t *testing.T) {
	id := func(v int64) int64 { return v }

	rows, next := SeqPage([]int64{3, 5, 8}, 2, id)
	assert.Equal(t, []int64{3, 5}, rows)
	if assert.NotNil(t, next) {
		seq, err := DecodeSeqToken(*next)
		assert.NoError(t, err)
		assert.Equal(t, int64(5), seq)
	}

	rows, next = SeqPage([]int64{3, 5}, 2, id)
	assert.Equal(t, []int64{3, 5}, rows)
	assert.Nil(t, next)

	rows, next = SeqPage([]int64{}, 2, id)
	assert.Empty(t, rows)
	assert.Nil(t, next)
}
