// Package redact scrubs credentials and internals from text before it is
// logged or returned to clients.
//
// Bearer tokens double as identities in this service, so they are treated
// as secrets everywhere: error text is passed through String or Error, and
// log lines carry Identity fingerprints instead of raw tokens.
package redact

import (
	"crypto/sha256"
	"encoding/hex"
	"regexp"
)

// Placeholders substituted for matched text.
const (
	CredentialPlaceholder = "[REDACTED_CREDENTIAL]"
	TokenPlaceholder      = "[REDACTED_TOKEN]"
	JWTPlaceholder        = "[REDACTED_JWT]"
	SQLPlaceholder        = "[REDACTED_SQL]"
	PathPlaceholder       = "[REDACTED_PATH]"
	HostPlaceholder       = "[REDACTED_HOST]"
)

// rule pairs a pattern with its replacement. Rules run in order, so
// broader patterns come after the specific ones they would otherwise eat.
type rule struct {
	pattern     *regexp.Regexp
	replacement string
}

var rules = []rule{
	// JWTs before the generic bearer rule so they keep their own placeholder.
	{regexp.MustCompile(`eyJ[A-Za-z0-9_-]+\.eyJ[A-Za-z0-9_-]+\.[A-Za-z0-9_-]+`), JWTPlaceholder},
	// Authorization header values: "Bearer tok123".
	{regexp.MustCompile(`(?i)\b(bearer|basic)(\s+)[^\s"',;\[]+`), "${1}${2}" + TokenPlaceholder},
	// user:password@ in connection strings.
	{regexp.MustCompile(`(?i)\b(postgres|postgresql|sqlite|file)://[^@\s/]+@`), "${1}://" + CredentialPlaceholder + "@"},
	// password=... in key/value DSNs and query strings.
	{regexp.MustCompile(`(?i)\b(password|passwd|pwd|secret|jwt_secret)(\s*[=:]\s*)['"]?[^'"&\s]+`), "${1}${2}" + CredentialPlaceholder},
	// SQL statements echoed back by drivers.
	{regexp.MustCompile(`(?i)\b(SELECT|INSERT|UPDATE|DELETE)\b[\s\S]*?\b(FROM|INTO|SET|WHERE)\b[^;\n]*`), SQLPlaceholder},
	// Absolute filesystem paths (SQLite database files, migration sources).
	{regexp.MustCompile(`(^|\s)(?:/[\w.-]+){2,}`), "${1}" + PathPlaceholder},
	// host:port pairs from dial errors.
	{regexp.MustCompile(`\b(?:[a-zA-Z0-9-]+\.)*[a-zA-Z0-9-]+:\d{2,5}\b`), HostPlaceholder},
}

// String redacts sensitive information from input.
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

// Error redacts sensitive information from err.Error().
func Error(err error) string {
	if err == nil {
		return ""
	}
	return String(err.Error())
}

// Identity returns a stable, non-reversible fingerprint of an identity so
// log lines can be correlated without exposing the bearer token.
func Identity(identity string) string {
	if identity == "" {
		return ""
	}
	sum := sha256.Sum256([]byte(identity))
	return "id:" + hex.EncodeToString(sum[:6])
}
