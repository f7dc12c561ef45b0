package common

import (
	"strconv"
	"strings"

	"github.com/hkopendata/mobile-post-services/api/internal/apperr"
)

// MaxRequestBody limits JSON request bodies on mutating endpoints.
const MaxRequestBody = 1 << 20

// ParseIntParam parses an optional integer query parameter. A missing value
// returns fallback; a malformed one fails with 0106 so range checks (0103)
// stay distinguishable from syntax errors.
func ParseIntParam(name, value string, fallback int) (int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return fallback, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return 0, apperr.Newf(apperr.CodeInvalidNumeric, "%s %q is not an integer", name, value)
	}
	return parsed, nil
}

// ParseOptionalInt parses an optional integer into a pointer.
func ParseOptionalInt(name, value string) (*int, error) {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil, nil
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return nil, apperr.Newf(apperr.CodeInvalidNumeric, "%s %q is not an integer", name, value)
	}
	return &parsed, nil
}
