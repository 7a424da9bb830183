package textkit

import "testing"

func TestNormalize_Basic(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"already canonical", "hello world", "hello world"},
		{"mixed case", "Hello World", "hello world"},
		{"extra whitespace", "foo   bar\tbaz", "foo bar baz"},
		{"leading trailing space", "  hi  ", "hi"},
		{"drops punctuation", "Hi, there! (really?)", "hi there really"},
		{"empty", "", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.in)
			if got != tt.want {
				t.Errorf("Normalize(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestNormalize_NeverLonger(t *testing.T) {
	inputs := []string{"Hello, World!", "  spaced   out  ", "", "already lower"}
	for _, in := range inputs {
		if len(Normalize(in)) > len(in) {
			t.Errorf("Normalize(%q) grew in length", in)
		}
	}
}

func TestStripAccents(t *testing.T) {
	tests := []struct{ in, want string }{
		{"café", "cafe"},
		{"naïve", "naive"},
		{"Zürich", "Zurich"},
		{"plain", "plain"},
	}
	for _, tt := range tests {
		if got := StripAccents(tt.in); got != tt.want {
			t.Errorf("StripAccents(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizedIndexToOriginal_RoundTrip(t *testing.T) {
	original := "foo   bar\tbaz"
	normalized := Normalize(original)
	if normalized != "foo bar baz" {
		t.Fatalf("precondition failed: Normalize(%q) = %q", original, normalized)
	}

	// The normalized needle "bar" starts at rune index 4 in "foo bar baz".
	idx := 4
	byteOff := NormalizedIndexToOriginal(original, idx)
	if byteOff < 0 || byteOff > len(original) {
		t.Fatalf("NormalizedIndexToOriginal returned out-of-range offset %d", byteOff)
	}
	got := original[byteOff:]
	if got[:3] != "bar" {
		t.Errorf("back-projected offset %d points at %q, want it to start with \"bar\"", byteOff, got)
	}
}

func TestNormalizedIndexToOriginal_StartAndEnd(t *testing.T) {
	original := "Hello World"
	if got := NormalizedIndexToOriginal(original, 0); got != 0 {
		t.Errorf("index 0 should map to 0, got %d", got)
	}
	normLen := len([]rune(Normalize(original)))
	if got := NormalizedIndexToOriginal(original, normLen); got != len(original) {
		t.Errorf("index at normalized length should map to len(original)=%d, got %d", len(original), got)
	}
}
