package docmeta

import "testing"

func TestParseFrontmatter_ExtractsTitleAndStripsBlock(t *testing.T) {
	content := []byte("---\ntitle: My Doc\nsource_path: /tmp/a.pdf\n---\n# Body\n\ntext\n")
	body, meta, err := ParseFrontmatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if meta.Title != "My Doc" || meta.SourcePath != "/tmp/a.pdf" {
		t.Errorf("meta = %+v", meta)
	}
	if body != "# Body\n\ntext\n" {
		t.Errorf("body = %q", body)
	}
}

func TestParseFrontmatter_NoBlockReturnsUnchanged(t *testing.T) {
	content := []byte("# Just a doc\n")
	body, meta, err := ParseFrontmatter(content)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if body != string(content) {
		t.Errorf("body = %q, want unchanged", body)
	}
	if meta != (DocumentMeta{}) {
		t.Errorf("expected zero-value meta, got %+v", meta)
	}
}

func TestStripFrontmatter_LeavesMalformedBlockInPlace(t *testing.T) {
	content := []byte("---\ntitle: unterminated\nno closing delimiter\n")
	if got := StripFrontmatter(content); got != string(content) {
		t.Errorf("expected unchanged content for malformed frontmatter, got %q", got)
	}
}

func TestExtractHeadings_IgnoresFencedCodeBlocks(t *testing.T) {
	content := "# Title\n\n```\n# not a heading\n```\n\n## Section\n"
	headings := ExtractHeadings(content)
	if len(headings) != 2 {
		t.Fatalf("expected 2 headings, got %d: %+v", len(headings), headings)
	}
	if headings[0].Text != "Title" || headings[1].Text != "Section" {
		t.Errorf("unexpected headings: %+v", headings)
	}
}

func TestHeadingPathAt_ReturnsNestedStack(t *testing.T) {
	content := "# Book\n\n## Chapter One\n\ntext here\n\n## Chapter Two\n\nmore text\n"
	offset := len("# Book\n\n## Chapter One\n\ntext")
	path := HeadingPathAt(content, offset)
	if len(path) != 2 || path[0] != "Book" || path[1] != "Chapter One" {
		t.Errorf("path = %v, want [Book Chapter One]", path)
	}
}

func TestHeadingPathAt_PopsStackOnSiblingHeading(t *testing.T) {
	content := "# Book\n\n## Chapter One\n\n## Chapter Two\n\ntext\n"
	offset := len(content) - len("text\n")
	path := HeadingPathAt(content, offset)
	if len(path) != 2 || path[1] != "Chapter Two" {
		t.Errorf("path = %v, want [Book Chapter Two]", path)
	}
}
