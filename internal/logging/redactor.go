package logging

import (
	"strings"
)

const redactedValue = "[REDACTED]"

// Redactor replaces the values of sensitive log fields.
type Redactor struct {
	sensitiveKeys map[string]bool
}

// NewRedactor creates a Redactor that hides SRP secrets and credentials.
func NewRedactor() *Redactor {
	return &Redactor{
		sensitiveKeys: map[string]bool{
			// Credentials
			"password":    true,
			"x":           true,
			"private_key": true,

			// Ephemeral secrets
			"a":      true,
			"b":      true,
			"secret": true,

			// Session values
			"key":     true,
			"s":       true,
			"session": true,
			"proof":   true,
			"m1":      true,
			"m2":      true,

			// Stored registration values
			"verifier": true,
			"salt":     true,
		},
	}
}

// AddSensitiveKey adds a key to the redaction list.
func (r *Redactor) AddSensitiveKey(key string) {
	r.sensitiveKeys[strings.ToLower(key)] = true
}

// RemoveSensitiveKey removes a key from the redaction list.
func (r *Redactor) RemoveSensitiveKey(key string) {
	delete(r.sensitiveKeys, strings.ToLower(key))
}

// RedactFields returns a copy of fields with sensitive values replaced.
// Nested maps are redacted recursively.
func (r *Redactor) RedactFields(fields map[string]any) map[string]any {
	if fields == nil {
		return nil
	}

	redacted := make(map[string]any, len(fields))
	for k, v := range fields {
		switch {
		case r.isSensitiveKey(k):
			redacted[k] = redactedValue
		case isMap(v):
			redacted[k] = r.RedactFields(v.(map[string]any))
		default:
			redacted[k] = v
		}
	}
	return redacted
}

func isMap(v any) bool {
	_, ok := v.(map[string]any)
	return ok
}

// isSensitiveKey matches whole keys only, case-insensitively.
func (r *Redactor) isSensitiveKey(key string) bool {
	return r.sensitiveKeys[strings.ToLower(key)]
}
