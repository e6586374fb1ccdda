package validators

import (
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/prontopizzas/pronto-backend/pkg/errors"
)

func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// ParseUUID parses raw as an id, reporting failures against field.
func ParseUUID(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.Validation("invalid id", pkgerrors.FieldErrors{field: "must be a valid id"})
	}
	return id, nil
}

// ParseOptionalUUID treats blank input as uuid.Nil.
func ParseOptionalUUID(raw, field string) (uuid.UUID, error) {
	if strings.TrimSpace(raw) == "" {
		return uuid.Nil, nil
	}
	return ParseUUID(raw, field)
}
