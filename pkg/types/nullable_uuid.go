package types

import (
	"bytes"
	"encoding/json"
	"strings"

	"github.com/google/uuid"
)

// NullableUUID accepts a uuid string, an empty string, or null. Clients of
// the orders API send "" or the zero uuid to ask for a generated id.
type NullableUUID struct {
	Valid bool
	Value *uuid.UUID
}

// UnmarshalJSON implements json.Unmarshaler.
func (n *NullableUUID) UnmarshalJSON(data []byte) error {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if bytes.Equal(trimmed, []byte("null")) {
		n.Valid = true
		n.Value = nil
		return nil
	}

	var raw string
	if err := json.Unmarshal(trimmed, &raw); err != nil {
		return err
	}
	n.Valid = true
	if strings.TrimSpace(raw) == "" {
		n.Value = nil
		return nil
	}
	parsed, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return err
	}
	n.Value = &parsed
	return nil
}

// MarshalJSON writes the uuid or null.
func (n NullableUUID) MarshalJSON() ([]byte, error) {
	if n.Value == nil {
		return []byte("null"), nil
	}
	return json.Marshal(n.Value.String())
}

// UUID returns the value, or uuid.Nil when absent.
func (n NullableUUID) UUID() uuid.UUID {
	if n.Value == nil {
		return uuid.Nil
	}
	return *n.Value
}
