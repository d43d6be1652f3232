package csvlayout

import (
	"encoding/csv"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEscapeField(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"plain", "hello", "hello"},
		{"empty", "", ""},
		{"comma", "a,b", `"a,b"`},
		{"quote", `say "hi"`, `"say ""hi"""`},
		{"newline", "line1\nline2", "\"line1\nline2\""},
		{"carriage return", "a\rb", "\"a\rb\""},
		{"only quotes", `""`, `""""""`},
		{"unicode passthrough", "café", "café"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, EscapeField(tt.in))
		})
	}
}

func TestParseRecord_RoundTrip(t *testing.T) {
	fields := []string{
		"plain",
		"",
		"a,b",
		`say "hi"`,
		"line1\nline2",
		`trailing quote"`,
		`",` + "\n",
	}
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}
	record := strings.Join(escaped, ",") + "\n"

	got, err := ParseRecord(record)
	require.NoError(t, err)
	assert.Equal(t, fields, got)
}

func TestParseRecord_PlainFields(t *testing.T) {
	got, err := ParseRecord("a,b,c\n")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", "c"}, got)
}

func TestParseRecord_TrailingEmptyField(t *testing.T) {
	got, err := ParseRecord("a,b,")
	require.NoError(t, err)
	assert.Equal(t, []string{"a", "b", ""}, got)
}

func TestParseRecord_Malformed(t *testing.T) {
	_, err := ParseRecord(`"unterminated`)
	assert.ErrorIs(t, err, ErrUnterminatedQuote)

	_, err = ParseRecord(`stray"quote`)
	assert.ErrorIs(t, err, ErrMalformedRecord)

	_, err = ParseRecord(`"closed"junk`)
	assert.ErrorIs(t, err, ErrMalformedRecord)
}

// The emitted records must stay readable by any standard CSV reader.
func TestEscapeField_StdlibReaderCompatibility(t *testing.T) {
	fields := []string{"tag with, comma", `quo"te`, "multi\nline", "plain"}
	escaped := make([]string, len(fields))
	for i, f := range fields {
		escaped[i] = EscapeField(f)
	}

	r := csv.NewReader(strings.NewReader(strings.Join(escaped, ",") + "\n"))
	record, err := r.Read()
	require.NoError(t, err)
	assert.Equal(t, fields, record)
}
