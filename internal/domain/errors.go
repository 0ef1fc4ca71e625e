package domain

import (
	"errors"
	"fmt"
)

// The two error kinds every operation distinguishes. ErrInput covers
// malformed or structurally impossible requests; ErrAccess covers a
// resolved caller who lacks permission. Check with errors.Is.
var (
	ErrInput  = errors.New("input error")
	ErrAccess = errors.New("access error")
)

// Inputf wraps ErrInput with a formatted detail message.
func Inputf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrInput, fmt.Sprintf(format, args...))
}

// Accessf wraps ErrAccess with a formatted detail message.
func Accessf(format string, args ...any) error {
	return fmt.Errorf("%w: %s", ErrAccess, fmt.Sprintf(format, args...))
}
