// Package auth guards the API with the planner's shared access code.
// Single-user system: one code, carried in the x-access-code header.
package auth

import (
	"crypto/subtle"
	"strings"
)

// Header is the request header carrying the access code.
const Header = "x-access-code"

// Authorizer validates an access code presented by a request.
type Authorizer interface {
	Authorize(code string) error
}

// SharedCode authorizes against a single configured access code.
// Comparison is constant-time on the trimmed values.
type SharedCode struct {
	code string
}

func NewSharedCode(code string) *SharedCode {
	return &SharedCode{code: strings.TrimSpace(code)}
}

func (a *SharedCode) Authorize(code string) error {
	code = strings.TrimSpace(code)
	if code == "" {
		return ErrMissingAccessCode
	}
	if subtle.ConstantTimeCompare([]byte(code), []byte(a.code)) != 1 {
		return ErrInvalidAccessCode
	}
	return nil
}
