// Package redact scrubs credentials and tenant tokens from strings before they
// are logged or echoed in error responses. Upstream error bodies and stored
// configuration blobs routinely carry api keys, so every log line that
// includes third-party text goes through String first.
package redact

import "regexp"

// Placeholders substituted for redacted values.
const (
	RedactionPlaceholder          = "[REDACTED]"
	RedactedCredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	RedactedKeyPlaceholder        = "[REDACTED_KEY]"
	RedactedJWTPlaceholder        = "[REDACTED_JWT]"
	RedactedEmailPlaceholder      = "[REDACTED_EMAIL]"
)

type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

// rules are applied in order. Replacements that keep a prefix use $1 so the
// surrounding key name survives for debugging.
var rules = []rule{
	// JWT-shaped tenant tokens
	{
		pattern:     regexp.MustCompile(`eyJ[a-zA-Z0-9_-]+\.eyJ[a-zA-Z0-9_-]+\.[a-zA-Z0-9_-]*`),
		replacement: RedactedJWTPlaceholder,
	},
	// api-key=..., x-api-key: ..., "apiKey":"..."
	{
		pattern:     regexp.MustCompile(`(?i)((?:x-)?api[_-]?key"?\s*[:=]\s*"?)[^"&\s,}]+`),
		replacement: "${1}" + RedactedKeyPlaceholder,
	},
	// okapi token headers
	{
		pattern:     regexp.MustCompile(`(?i)(x-okapi-token"?\s*[:=]\s*"?)[^"&\s,}]+`),
		replacement: "${1}" + RedactedCredentialPlaceholder,
	},
	// password=..., secret: ...
	{
		pattern:     regexp.MustCompile(`(?i)((?:password|passwd|secret)"?\s*[:=]\s*"?)[^"&\s,}]{3,}`),
		replacement: "${1}" + RedactedCredentialPlaceholder,
	},
	// userinfo in URLs
	{
		pattern:     regexp.MustCompile(`(?i)(https?://)[^/@\s]+@`),
		replacement: "${1}" + RedactedCredentialPlaceholder + "@",
	},
	{
		pattern:     regexp.MustCompile(`\b[A-Za-z0-9._%+-]+@[A-Za-z0-9.-]+\.[A-Za-z]{2,}\b`),
		replacement: RedactedEmailPlaceholder,
	},
}

// String redacts sensitive information from the input string.
func String(input string) string {
	if input == "" {
		return input
	}

	result := input
	for _, r := range rules {
		result = r.pattern.ReplaceAllString(result, r.replacement)
	}
	return result
}

// Error redacts sensitive information from an error's Error() output.
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}
