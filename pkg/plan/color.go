package plan

import (
	"regexp"
	"strings"
)

var hexColorRe = regexp.MustCompile(`^#[0-9A-Fa-f]{6}$`)

// ValidHexColor reports whether v is a strict "#RRGGBB" color.
func ValidHexColor(v string) bool {
	return hexColorRe.MatchString(strings.TrimSpace(v))
}

// NormalizeHexColor canonicalizes a user-supplied bar color: trims
// whitespace, inserts a missing "#" prefix, and uppercases the hex digits.
// Anything that still fails the strict 6-hex-digit pattern becomes the
// empty string, meaning no override. Invalid input is never an error.
func NormalizeHexColor(v string) string {
	s := strings.TrimSpace(v)
	if s == "" {
		return ""
	}
	if !strings.HasPrefix(s, "#") {
		s = "#" + s
	}
	s = strings.ToUpper(s)
	if !hexColorRe.MatchString(s) {
		return ""
	}
	return s
}
