package review

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/fulmenhq/docmatch/internal/matcher"
)

func sampleResult() matcher.Result {
	return matcher.Result{
		Stats: matcher.MatchStats{
			Total:        2,
			ByConfidence: map[matcher.Confidence]int{matcher.ConfidenceExact: 1, matcher.ConfidenceSynthetic: 1},
			ByMethod:     map[matcher.Method]int{matcher.MethodExactMatch: 1, matcher.MethodInterpolation: 1},
		},
		Warnings: []string{"chunk 1 recovered via interpolation"},
	}
}

func TestRender_IncludesTotalAndWarnings(t *testing.T) {
	var buf bytes.Buffer
	if err := Render(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	out := buf.String()
	if !strings.Contains(out, "chunks matched: 2") {
		t.Errorf("missing total line: %q", out)
	}
	if !strings.Contains(out, "chunk 1 recovered via interpolation") {
		t.Errorf("missing warning line: %q", out)
	}
}

func TestRender_NoWarningsOmitsSection(t *testing.T) {
	var buf bytes.Buffer
	result := sampleResult()
	result.Warnings = nil
	if err := Render(&buf, result); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if strings.Contains(buf.String(), "warnings:") {
		t.Errorf("expected no warnings section: %q", buf.String())
	}
}

func TestRenderJSON_ProducesSchemaValidDocument(t *testing.T) {
	var buf bytes.Buffer
	if err := RenderJSON(&buf, sampleResult()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var decoded map[string]any
	if err := json.Unmarshal(buf.Bytes(), &decoded); err != nil {
		t.Fatalf("output is not valid JSON: %v", err)
	}
	if decoded["total_chunks"].(float64) != 2 {
		t.Errorf("total_chunks = %v, want 2", decoded["total_chunks"])
	}
}

func TestConsoleProgress_WritesFormattedLine(t *testing.T) {
	var buf bytes.Buffer
	fn := ConsoleProgress(&buf)
	fn(50, "layer2", "embedding window scan")
	if !strings.Contains(buf.String(), "[ 50%] layer2: embedding window scan") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}
