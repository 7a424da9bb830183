package obslog

import "regexp"

// Redaction patterns catch credential-shaped strings that could reach a
// log line: bearer tokens and key=value / key: value secrets (api_key,
// apikey, secret). Document content matches no pattern and passes through
// unchanged, and there are no PII patterns, since docmatch never logs
// end-user PII fields.
var (
	bearerTokenPattern = regexp.MustCompile(`[Bb]earer\s+[a-zA-Z0-9_\-\.]{15,}`)
	apiKeyPattern      = regexp.MustCompile(`(?i)(api_?key|secret)\s*[=:]\s*['"]?[a-zA-Z0-9_\-]{16,}['"]?`)
)

const redactedPlaceholder = "[REDACTED]"

// RedactSecrets replaces credential-shaped substrings in s with a
// placeholder, for use before a chunk of user-supplied text (a window,
// an LLM prompt, a config value) is written to a log field.
func RedactSecrets(s string) string {
	s = bearerTokenPattern.ReplaceAllString(s, redactedPlaceholder)
	s = apiKeyPattern.ReplaceAllString(s, redactedPlaceholder)
	return s
}
