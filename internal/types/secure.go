package types

import (
	"net/url"
	"strings"
)

// redactedPlaceholder is the string used to replace secret values in logs and serialization.
const redactedPlaceholder = "***REDACTED***"

// redactedJSON is the pre-computed JSON encoding of the redacted placeholder.
var redactedJSON = []byte(`"***REDACTED***"`)

// SecretString holds the service API key. It renders as a placeholder
// through fmt and encoding/json so the key never ends up in logs or
// config dumps; Unmask returns the raw value.
type SecretString string

// String returns a redacted placeholder instead of the raw value.
func (s SecretString) String() string {
	return redactedPlaceholder
}

// MarshalJSON returns the redacted placeholder as a JSON string.
func (s SecretString) MarshalJSON() ([]byte, error) {
	return redactedJSON, nil
}

// Unmask returns the raw plaintext value of the secret.
func (s SecretString) Unmask() string {
	return string(s)
}

// IsBlank reports whether the secret is empty or whitespace only.
func (s SecretString) IsBlank() bool {
	return strings.TrimSpace(string(s)) == ""
}

// Redact replaces every occurrence of the secret in text with the
// placeholder, in raw as well as path- and query-escaped form. Request URLs
// embed the key as an escaped path segment, so they go through here before
// being logged.
func (s SecretString) Redact(text string) string {
	if s.IsBlank() {
		return text
	}
	raw := string(s)
	for _, form := range []string{url.PathEscape(raw), url.QueryEscape(raw), raw} {
		text = strings.ReplaceAll(text, form, redactedPlaceholder)
	}
	return text
}
