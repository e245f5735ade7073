package httpx

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
)

// MaxBodyBytes caps JSON request bodies. Account payloads are tiny.
const MaxBodyBytes = 64 << 10

var ErrEmptyBody = errors.New("httpx: empty request body")

// DecodeJSON reads a single JSON document from the request body into v.
// Unknown fields are ignored so clients may echo back read-only fields.
func DecodeJSON(w http.ResponseWriter, r *http.Request, v any) error {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	dec := json.NewDecoder(body)

	if err := dec.Decode(v); err != nil {
		if errors.Is(err, io.EOF) {
			return ErrEmptyBody
		}
		return fmt.Errorf("httpx: decode json: %w", err)
	}

	// Trailing garbage after the document is a malformed request
	if dec.More() {
		return errors.New("httpx: unexpected data after json document")
	}

	return nil
}
