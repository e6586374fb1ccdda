package types

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewErrorEnvelopeOmitsEmptyDetails(t *testing.T) {
	raw, err := json.Marshal(NewErrorEnvelope("NOT_FOUND", "order not found", nil))
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":"NOT_FOUND","message":"order not found"}}`, string(raw))
}

func TestNewErrorEnvelopeCarriesDetails(t *testing.T) {
	env := NewErrorEnvelope("VALIDATION_ERROR", "invalid", map[string]string{"phone": "must have 10 digits"})
	raw, err := json.Marshal(env)
	require.NoError(t, err)
	assert.JSONEq(t, `{"error":{"code":"VALIDATION_ERROR","message":"invalid","details":{"phone":"must have 10 digits"}}}`, string(raw))
}
