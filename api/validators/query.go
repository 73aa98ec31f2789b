package validators

import (
	"net/http"
	"strings"

	"github.com/google/uuid"
	pkgerrors "github.com/harithahub/storefront-backend/pkg/errors"
)

// ParseUUIDParam validates a path parameter shaped like a uuid.
func ParseUUIDParam(raw, field string) (uuid.UUID, error) {
	id, err := uuid.Parse(strings.TrimSpace(raw))
	if err != nil {
		return uuid.Nil, pkgerrors.New(pkgerrors.CodeValidation, "identifier is not a valid uuid").WithDetails(map[string]any{"field": field})
	}
	return id, nil
}

// SanitizeString trims whitespace and enforces a maximum length.
func SanitizeString(input string, maxLen int) string {
	trimmed := strings.TrimSpace(input)
	if maxLen > 0 && len(trimmed) > maxLen {
		return trimmed[:maxLen]
	}
	return trimmed
}

// FormValue reads a trimmed multipart/urlencoded form field.
func FormValue(r *http.Request, key string) string {
	return strings.TrimSpace(r.FormValue(key))
}
