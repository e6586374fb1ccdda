package validators

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sampleBody struct {
	Name  string `json:"name" validate:"required"`
	Items []struct {
		Quantity int `json:"quantity" validate:"min=1,max=100"`
	} `json:"items" validate:"dive"`
}

type sampleForm struct {
	CustomerName string `form:"customerName" validate:"required"`
	Lines        []struct {
		PizzaID  string `form:"pizzaId"`
		Quantity int    `form:"quantity" validate:"min=0,max=100"`
	} `form:"orderProducts" validate:"dive"`
}

func fieldErrors(t *testing.T, err error) pkgerrors.FieldErrors {
	t.Helper()
	typed := pkgerrors.As(err)
	require.NotNil(t, typed)
	require.Equal(t, pkgerrors.CodeValidation, typed.Code())
	fields, ok := typed.Details().(pkgerrors.FieldErrors)
	require.True(t, ok, "details %T", typed.Details())
	return fields
}

func TestDecodeJSONBodyStrict(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	var dest sampleBody
	err := DecodeJSONBody(req, &dest)
	require.Error(t, err)
	assert.True(t, pkgerrors.IsCode(err, pkgerrors.CodeValidation))

	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"name":"a","extra":1}`))
	require.NoError(t, DecodeJSONBodyLenient(req, &dest))
	assert.Equal(t, "a", dest.Name)
}

func TestDecodeJSONBodyReportsNestedPaths(t *testing.T) {
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(`{"items":[{"quantity":1},{"quantity":101}]}`))
	var dest sampleBody
	fields := fieldErrors(t, DecodeJSONBody(req, &dest))
	assert.Equal(t, "is required", fields["name"])
	assert.Equal(t, "must be at most 100", fields["items[1].quantity"])
}

func TestDecodeForm(t *testing.T) {
	values := url.Values{}
	values.Set("customerName", "Jane")
	values.Set("orderProducts[0].pizzaId", "abc")
	values.Set("orderProducts[0].quantity", "2")
	values.Set("orderProducts[1].quantity", "")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest sampleForm
	require.NoError(t, DecodeForm(req, &dest))
	assert.Equal(t, "Jane", dest.CustomerName)
	require.Len(t, dest.Lines, 2)
	assert.Equal(t, 2, dest.Lines[0].Quantity)
	assert.Zero(t, dest.Lines[1].Quantity)
}

func TestDecodeFormInvalidValues(t *testing.T) {
	values := url.Values{}
	values.Set("orderProducts[0].quantity", "lots")
	req := httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	var dest sampleForm
	fields := fieldErrors(t, DecodeForm(req, &dest))
	assert.Equal(t, "is invalid", fields["orderProducts[0].quantity"])

	values = url.Values{}
	values.Set("orderProducts[0].quantity", "150")
	req = httptest.NewRequest(http.MethodPost, "/", strings.NewReader(values.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	dest = sampleForm{}
	fields = fieldErrors(t, DecodeForm(req, &dest))
	assert.Equal(t, "is required", fields["customerName"])
	assert.Equal(t, "must be at most 100", fields["orderProducts[0].quantity"])
}

func TestParseUUID(t *testing.T) {
	_, err := ParseUUID("nope", "id")
	assert.Equal(t, "must be a valid id", fieldErrors(t, err)["id"])

	id, err := ParseOptionalUUID("  ", "id")
	require.NoError(t, err)
	assert.Equal(t, "00000000-0000-0000-0000-000000000000", id.String())

	assert.Equal(t, "abc", SanitizeString("  abcdef ", 3))
}
