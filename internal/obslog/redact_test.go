package obslog

import (
	"strings"
	"testing"
)

func TestRedactSecrets_BearerToken(t *testing.T) {
	in := "calling LLM with Bearer abcdefghijklmnopqrstuvwxyz"
	out := RedactSecrets(in)
	if strings.Contains(out, "abcdefghijklmnopqrstuvwxyz") {
		t.Errorf("bearer token leaked: %q", out)
	}
	if !strings.Contains(out, redactedPlaceholder) {
		t.Errorf("expected redaction placeholder in %q", out)
	}
}

func TestRedactSecrets_APIKey(t *testing.T) {
	in := `config had api_key="sk1234567890abcdef1234"`
	out := RedactSecrets(in)
	if strings.Contains(out, "sk1234567890abcdef1234") {
		t.Errorf("api key leaked: %q", out)
	}
}

func TestRedactSecrets_LeavesPlainTextAlone(t *testing.T) {
	in := "the quick brown fox jumps over the lazy dog"
	if RedactSecrets(in) != in {
		t.Errorf("expected plain text unchanged, got %q", RedactSecrets(in))
	}
}
