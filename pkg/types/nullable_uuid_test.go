package types

import (
	"encoding/json"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNullableUUIDUnmarshal(t *testing.T) {
	type payload struct {
		ID NullableUUID `json:"id"`
	}

	var got payload
	require.NoError(t, json.Unmarshal([]byte(`{"id": "00000000-0000-0000-0000-000000000001"}`), &got))
	require.True(t, got.ID.Valid)
	assert.Equal(t, "00000000-0000-0000-0000-000000000001", got.ID.UUID().String())

	got = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"id": null}`), &got))
	assert.True(t, got.ID.Valid)
	assert.Equal(t, uuid.Nil, got.ID.UUID())

	got = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{"id": ""}`), &got))
	assert.True(t, got.ID.Valid)
	assert.Nil(t, got.ID.Value)

	got = payload{}
	require.NoError(t, json.Unmarshal([]byte(`{}`), &got))
	assert.False(t, got.ID.Valid)

	got = payload{}
	require.Error(t, json.Unmarshal([]byte(`{"id": "not-a-uuid"}`), &got))
}

func TestNullableUUIDMarshal(t *testing.T) {
	id := uuid.New()
	raw, err := json.Marshal(NullableUUID{Valid: true, Value: &id})
	require.NoError(t, err)
	assert.Equal(t, `"`+id.String()+`"`, string(raw))

	raw, err = json.Marshal(NullableUUID{})
	require.NoError(t, err)
	assert.Equal(t, "null", string(raw))
}
