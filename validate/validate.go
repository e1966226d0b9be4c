// Package validate holds the pure credential-validation and sanitization
// functions of the authentication gateway. Nothing here performs I/O or keeps
// state; every function is total over its string input.
package validate

import (
	"regexp"
	"strings"
	"unicode"
)

// Error marks a failure as locally-recoverable malformed input. The message
// is corrective and specific, and is safe to show to the end user.
type Error struct {
	Field  string
	Reason string
}

func (e *Error) Error() string {
	return e.Reason
}

const (
	maxEmailLength    = 254
	minPasswordLength = 8
	// maxPasswordLength guards against hashing-cost amplification on the
	// provider side: a multi-kilobyte password is a cheap way to burn CPU.
	maxPasswordLength = 128
	minNameLength     = 2
	maxNameLength     = 50
)

// passwordSymbols is the punctuation set a password must draw at least one
// character from.
const passwordSymbols = `!@#$%^&*()_+-=[]{};':"\|,.<>/?`

var (
	// emailPattern accepts a simple local@domain.tld shape. It exists to
	// reject obviously malformed addresses before spending a provider round
	// trip, not to implement RFC 5322.
	emailPattern = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

	namePattern = regexp.MustCompile(`^[a-zA-Z\s'-]+$`)
)

// Email rejects addresses that do not match local@domain.tld or exceed 254
// characters.
func Email(s string) error {
	if s == "" {
		return &Error{Field: "email", Reason: "email is required"}
	}
	if len(s) > maxEmailLength {
		return &Error{Field: "email", Reason: "email is too long"}
	}
	if !emailPattern.MatchString(s) {
		return &Error{Field: "email", Reason: "please enter a valid email address"}
	}
	return nil
}

// Password checks the strength policy and fails closed with the first
// violated rule. Exactly one reason is reported per call; rules are checked
// in a fixed order and never aggregated.
func Password(s string) error {
	switch {
	case len(s) < minPasswordLength:
		return &Error{Field: "password", Reason: "password must be at least 8 characters long"}
	case len(s) > maxPasswordLength:
		return &Error{Field: "password", Reason: "password must be at most 128 characters long"}
	case !strings.ContainsFunc(s, unicode.IsLower):
		return &Error{Field: "password", Reason: "password must contain a lowercase letter"}
	case !strings.ContainsFunc(s, unicode.IsUpper):
		return &Error{Field: "password", Reason: "password must contain an uppercase letter"}
	case !strings.ContainsFunc(s, unicode.IsDigit):
		return &Error{Field: "password", Reason: "password must contain a number"}
	case !strings.ContainsAny(s, passwordSymbols):
		return &Error{Field: "password", Reason: "password must contain a special character"}
	}
	return nil
}

// Name restricts display names to 2–50 characters drawn from letters,
// spaces, hyphens, and apostrophes.
func Name(s string) error {
	if len(s) < minNameLength {
		return &Error{Field: "name", Reason: "name must be at least 2 characters long"}
	}
	if len(s) > maxNameLength {
		return &Error{Field: "name", Reason: "name must be at most 50 characters long"}
	}
	if !namePattern.MatchString(s) {
		return &Error{Field: "name", Reason: "name may only contain letters, spaces, hyphens, and apostrophes"}
	}
	return nil
}

// Sanitize trims surrounding whitespace and strips the two characters < and >.
// This is a narrowing transform against naive markup injection in fields that
// are later rendered as text; it is NOT an HTML-safety guarantee and does not
// replace output encoding at render time.
func Sanitize(s string) string {
	s = strings.TrimSpace(s)
	return strings.Map(func(r rune) rune {
		if r == '<' || r == '>' {
			return -1
		}
		return r
	}, s)
}
