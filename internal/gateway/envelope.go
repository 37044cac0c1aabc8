package gateway

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Envelope is the portal's uniform response wrapper: a success indicator plus
// whichever payload fields the feature endpoint chose to populate.
type Envelope struct {
	Success    bool            `json:"success"`
	Message    json.RawMessage `json:"message,omitempty"`
	Error      string          `json:"error,omitempty"`
	Data       json.RawMessage `json:"data,omitempty"`
	Stats      json.RawMessage `json:"stats,omitempty"`
	Pagination json.RawMessage `json:"pagination,omitempty"`
}

// Decode unmarshals the data payload into out. Endpoints that nest their
// payload under data all go through here.
func (e *Envelope) Decode(out interface{}) error {
	if len(e.Data) == 0 || bytes.Equal(e.Data, []byte("null")) {
		return fmt.Errorf("response has no data payload")
	}
	if err := json.Unmarshal(e.Data, out); err != nil {
		return fmt.Errorf("failed to decode data payload: %w", err)
	}
	return nil
}

// Text extracts the single logical message of a response, tolerating the
// nesting shapes the backend has been observed to use: message, data.message,
// then data itself. Non-string payloads are coerced to their JSON text so the
// caller always gets something displayable.
func (e *Envelope) Text() string {
	if s, ok := rawString(e.Message); ok && s != "" {
		return s
	}

	if len(e.Data) > 0 && !bytes.Equal(e.Data, []byte("null")) {
		var nested struct {
			Message json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal(e.Data, &nested); err == nil && len(nested.Message) > 0 && !bytes.Equal(nested.Message, []byte("null")) {
			return coerceString(nested.Message)
		}
		return coerceString(e.Data)
	}

	if len(e.Message) > 0 && !bytes.Equal(e.Message, []byte("null")) {
		return coerceString(e.Message)
	}

	return ""
}

// ErrorMessage returns the server-supplied failure message, if any.
func (e *Envelope) ErrorMessage() string {
	if s, ok := rawString(e.Message); ok && s != "" {
		return s
	}
	return e.Error
}

func rawString(raw json.RawMessage) (string, bool) {
	var s string
	if err := json.Unmarshal(raw, &s); err != nil {
		return "", false
	}
	return s, true
}

func coerceString(raw json.RawMessage) string {
	if s, ok := rawString(raw); ok {
		return s
	}
	var buf bytes.Buffer
	if err := json.Compact(&buf, raw); err != nil {
		return string(raw)
	}
	return buf.String()
}
