package validators

import (
	"net/http"
	"strings"

	"github.com/go-playground/form/v4"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
)

var formDecoder = form.NewDecoder()

// DecodeForm parses a url-encoded POST body into dest and validates it.
// Unparseable values are reported per field like tag failures.
func DecodeForm(r *http.Request, dest any) error {
	r.Body = http.MaxBytesReader(nil, r.Body, MaxBodyBytes)
	if err := r.ParseForm(); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	if err := formDecoder.Decode(dest, r.PostForm); err != nil {
		if decodeErrs, ok := err.(form.DecodeErrors); ok {
			details := pkgerrors.FieldErrors{}
			for field := range decodeErrs {
				details[field] = "is invalid"
			}
			return pkgerrors.Validation("validation failed", details)
		}
		return pkgerrors.Wrap(pkgerrors.CodeValidation, err, "invalid form body")
	}
	return Struct(dest)
}

// FormValue returns a trimmed POST value.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.PostFormValue(key))
}
