package core

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/btcsuite/btcutil/base58"
	"github.com/google/uuid"
)

// newTabID returns a random, URL-safe id (base58 of a v4 UUID).
func newTabID() string {
	u := uuid.New()

	return base58.Encode(u[:])
}

// WorkspaceID derives a workspace id from its display name: lower-cased,
// whitespace runs replaced by a single hyphen.
func WorkspaceID(name string) string {
	return strings.Join(strings.Fields(strings.ToLower(name)), "-")
}

// capitalize upper-cases the first rune of s.
func capitalize(s string) string {
	r, size := utf8.DecodeRuneInString(s)
	if r == utf8.RuneError {
		return s
	}

	return string(unicode.ToUpper(r)) + s[size:]
}

// defaultIcon is the upper-cased first letter of name.
func defaultIcon(name string) string {
	r, _ := utf8.DecodeRuneInString(strings.TrimSpace(name))
	if r == utf8.RuneError {
		return ""
	}

	return string(unicode.ToUpper(r))
}
