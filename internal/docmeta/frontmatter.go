// Package docmeta reads the document-level sidecar metadata the vault
// exporter attaches to a matched run: a YAML frontmatter block at the top
// of the cleaned target markdown (title, source path), plus a heading
// outline used to derive each chunk's section context. It covers just two
// operations — frontmatter parsing and heading extraction — and drops
// Setext-header support, multi-document splitting, and benchmark-tuned
// fast paths (see DESIGN.md).
package docmeta

import (
	"bytes"
	"strings"

	"gopkg.in/yaml.v3"
)

const frontmatterDelimiter = "---"

// DocumentMeta is the frontmatter block docmatch understands.
type DocumentMeta struct {
	Title      string `yaml:"title"`
	SourcePath string `yaml:"source_path"`
}

// ParseFrontmatter extracts a leading YAML frontmatter block and returns
// the document body with the block removed, along with the parsed
// metadata. Content with no frontmatter is returned unchanged with a
// zero-value DocumentMeta.
func ParseFrontmatter(content []byte) (body string, meta DocumentMeta, err error) {
	if !hasFrontmatter(content) {
		return string(content), DocumentMeta{}, nil
	}
	yamlBlock, rest, found := extractFrontmatterBlock(content)
	if !found {
		return string(content), DocumentMeta{}, nil
	}
	if err := yaml.Unmarshal(yamlBlock, &meta); err != nil {
		return string(rest), DocumentMeta{}, err
	}
	return string(rest), meta, nil
}

// StripFrontmatter removes a leading frontmatter block, if present,
// without attempting to parse it. Malformed frontmatter is left in place
// rather than reported as an error.
func StripFrontmatter(content []byte) string {
	if !hasFrontmatter(content) {
		return string(content)
	}
	_, rest, found := extractFrontmatterBlock(content)
	if !found {
		return string(content)
	}
	return string(rest)
}

func hasFrontmatter(content []byte) bool {
	trimmed := bytes.TrimLeft(content, " \t\n")
	return bytes.HasPrefix(trimmed, []byte(frontmatterDelimiter))
}

func extractFrontmatterBlock(content []byte) (yamlBlock, body []byte, found bool) {
	lines := bytes.Split(content, []byte("\n"))
	start := 0
	for start < len(lines) && len(bytes.TrimSpace(lines[start])) == 0 {
		start++
	}
	if start >= len(lines) || !isDelimiter(lines[start]) {
		return nil, content, false
	}
	close := -1
	for i := start + 1; i < len(lines); i++ {
		if isDelimiter(lines[i]) {
			close = i
			break
		}
	}
	if close == -1 {
		return nil, content, false
	}
	yamlBlock = bytes.Join(lines[start+1:close], []byte("\n"))
	if close+1 < len(lines) {
		body = bytes.Join(lines[close+1:], []byte("\n"))
	}
	return yamlBlock, body, true
}

func isDelimiter(line []byte) bool {
	return strings.TrimSpace(string(line)) == frontmatterDelimiter
}
