package api

import (
	"encoding/json"
	"fmt"
)

// Response is the uniform envelope returned by every backend call.
// Exactly one of Data/Error is set on the happy path; an empty-body
// success carries neither. Status is the HTTP status code, or 0 when
// no response was received at all.
type Response struct {
	// Data is the decoded JSON body (maps, slices, primitives) or the
	// raw text of a plain-text success body. Nil on empty bodies.
	Data any
	// Error is the human-readable failure description, empty on success.
	Error string
	// Status is the HTTP status code, 0 for transport failures.
	Status int
}

// OK reports whether the call succeeded.
func (r Response) OK() bool {
	return r.Error == ""
}

// Decode re-materializes the envelope's Data into a typed value.
// A nil Data yields the zero value without error.
func Decode[T any](r Response) (T, error) {
	var out T
	if r.Data == nil {
		return out, nil
	}
	raw, err := json.Marshal(r.Data)
	if err != nil {
		return out, fmt.Errorf("failed to re-encode response data: %w", err)
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, fmt.Errorf("failed to decode response data: %w", err)
	}
	return out, nil
}
