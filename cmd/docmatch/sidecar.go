package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/fulmenhq/docmatch/internal/matcher"
)

// sidecarChunk is the on-disk JSON shape of one pre-cleanup chunk, used by
// test fixtures and any pipeline that already has chunks (PDF/EPUB
// extraction itself is a Non-goal of this module).
type sidecarChunk struct {
	Index         int      `json:"index"`
	Content       string   `json:"content"`
	PageStart     *int     `json:"page_start,omitempty"`
	PageEnd       *int     `json:"page_end,omitempty"`
	HeadingPath   []string `json:"heading_path,omitempty"`
	SectionMarker *string  `json:"section_marker,omitempty"`
}

func loadSidecarChunks(path string) ([]matcher.SourceChunk, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading chunks file %s: %w", path, err)
	}
	var raw []sidecarChunk
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing chunks file %s: %w", path, err)
	}
	chunks := make([]matcher.SourceChunk, len(raw))
	for i, c := range raw {
		chunks[i] = matcher.SourceChunk{
			Index:   c.Index,
			Content: c.Content,
			Meta: matcher.ChunkMeta{
				PageStart:     c.PageStart,
				PageEnd:       c.PageEnd,
				HeadingPath:   c.HeadingPath,
				SectionMarker: c.SectionMarker,
			},
		}
	}
	return chunks, nil
}
