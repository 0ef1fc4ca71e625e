// Package validator holds the field rules shared by the auth and user
// services. Rules live here rather than in HTTP handlers so the core
// raises the same input errors regardless of transport.
package validator

import (
	"net/mail"
	"strings"
	"unicode"
)

const (
	MinPasswordLen = 6
	MaxNameLen     = 50
	MinHandleLen   = 3
	MaxHandleLen   = 20
)

// ValidEmail reports whether addr parses as an RFC 5322 address.
func ValidEmail(addr string) bool {
	addr = strings.TrimSpace(addr)
	if addr == "" {
		return false
	}
	_, err := mail.ParseAddress(addr)
	return err == nil
}

// ValidName reports whether a first or last name is 1-50 characters.
func ValidName(name string) bool {
	n := len([]rune(name))
	return n >= 1 && n <= MaxNameLen
}

// ValidPassword reports whether a password meets the minimum length.
func ValidPassword(password string) bool {
	return len([]rune(password)) >= MinPasswordLen
}

// ValidHandle reports whether a caller-chosen handle is 3-20 characters
// of letters and digits.
func ValidHandle(handle string) bool {
	n := len([]rune(handle))
	if n < MinHandleLen || n > MaxHandleLen {
		return false
	}
	for _, r := range handle {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}
