package csvlayout

import "errors"

var (
	ErrEmptyColumnSpec   = errors.New("column spec resolved to zero columns")
	ErrUnterminatedQuote = errors.New("record has an unterminated quoted field")
	ErrMalformedRecord   = errors.New("record has a stray quote outside a quoted field")
)
