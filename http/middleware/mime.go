package middleware

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/xy-planning-network/reqbody"
)

// contentType reads the mime type key from the "Content-Type" header of r.
// A missing or blank header is the empty string.
func contentType(r *http.Request) string {
	ct := r.Header.Get("Content-Type")
	if strings.TrimSpace(ct) == "" {
		return ""
	}

	return normalizeMimeType(ct)
}

// normalizeMimeType drops any parameters following a ";",
// trims surrounding whitespace and lower cases mimeType.
func normalizeMimeType(mimeType string) string {
	base, _, _ := strings.Cut(mimeType, ";")
	return strings.ToLower(strings.TrimSpace(base))
}

// validateMimeType asserts mimeType decomposes into a type and subtype.
func validateMimeType(mimeType string) error {
	typ, sub, ok := strings.Cut(normalizeMimeType(mimeType), "/")
	if !ok || typ == "" || sub == "" || strings.ContainsAny(typ+sub, " \t/") {
		return fmt.Errorf("%w: invalid mime type %q", reqbody.ErrInvalidArgument, mimeType)
	}

	return nil
}
