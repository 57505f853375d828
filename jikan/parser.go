package jikan

import (
	"bytes"
	"encoding/json"
	"errors"
)

// errNullDocument is returned for a body that is the JSON literal null
var errNullDocument = errors.New("response body is null")

// Parser decodes a raw response body into v
type Parser interface {
	Unmarshal(data []byte, v any) error
}

// ParserFunc adapts a plain function to the Parser interface
type ParserFunc func(data []byte, v any) error

// Unmarshal calls f(data, v)
func (f ParserFunc) Unmarshal(data []byte, v any) error {
	return f(data, v)
}

// JSONParser decodes with encoding/json.
// A null document is a parse error, never an empty result.
var JSONParser Parser = ParserFunc(unmarshalDocument)

func unmarshalDocument(data []byte, v any) error {
	if bytes.Equal(bytes.TrimSpace(data), []byte("null")) {
		return errNullDocument
	}
	return json.Unmarshal(data, v)
}
