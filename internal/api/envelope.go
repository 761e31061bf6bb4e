package api

import (
	"bytes"
	"encoding/json"
)

// Envelope is the uniform response body of the backend
type Envelope struct {
	Success *bool           `json:"success,omitempty"`
	Data    json.RawMessage `json:"data,omitempty"`
	Message string          `json:"message,omitempty"`
	Errors  []FieldError    `json:"errors,omitempty"`

	raw []byte
}

// HasData reports whether the envelope carries a non-null data member
func (e *Envelope) HasData() bool {
	d := bytes.TrimSpace(e.Data)
	return len(d) > 0 && !bytes.Equal(d, []byte("null"))
}

// Decode unmarshals the data member into out
func (e *Envelope) Decode(out interface{}) error {
	if !e.HasData() {
		return nil
	}
	return json.Unmarshal(e.Data, out)
}

// DecodeRaw unmarshals the whole body into out. Some endpoints put their payload at the top level.
func (e *Envelope) DecodeRaw(out interface{}) error {
	if len(e.raw) == 0 {
		return nil
	}
	return json.Unmarshal(e.raw, out)
}

func parseEnvelope(body []byte) *Envelope {
	env := &Envelope{raw: body}
	if len(bytes.TrimSpace(body)) == 0 {
		return env
	}
	if err := json.Unmarshal(body, env); err != nil {
		// Not JSON: keep the raw body only
		return &Envelope{raw: body}
	}
	env.raw = body
	return env
}
