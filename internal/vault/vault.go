// Package vault exports a completed match run as a single zip archive:
// a manifest, the cleaned target markdown, and one JSON file per matched
// chunk. There is no archive format selection (tar/tar.gz/gzip), checksum
// or symlink policy, or filesystem source-discovery step here — just the
// one concrete layout docmatch needs, a fixed in-memory bundle written
// straight to zip (see DESIGN.md).
package vault

import (
	"archive/zip"
	"compress/flate"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/fulmenhq/docmatch/internal/chunkhash"
	"github.com/fulmenhq/docmatch/internal/docmeta"
	"github.com/fulmenhq/docmatch/internal/docschema"
	"github.com/fulmenhq/docmatch/internal/matcher"
	"github.com/fulmenhq/docmatch/internal/telemetry"
	"github.com/fulmenhq/docmatch/internal/textkit"
)

// Manifest is the document-level record written as manifest.json.
type Manifest struct {
	DocumentID string             `json:"document_id"`
	Title      string             `json:"title,omitempty"`
	SourcePath string             `json:"source_path,omitempty"`
	ChunkCount int                `json:"chunk_count"`
	CreatedAt  string             `json:"created_at"`
	Stats      matcher.MatchStats `json:"stats"`
	Warnings   []string           `json:"warnings"`
}

// ChunkRecord is one matched chunk's on-disk representation under
// chunks/<chunkhash.ID>.json.
type ChunkRecord struct {
	ChunkIndex int                `json:"chunk_index"`
	Content    string             `json:"content"`
	Meta       matcher.ChunkMeta  `json:"meta"`
	Start      int                `json:"start"`
	End        int                `json:"end"`
	Confidence matcher.Confidence `json:"confidence"`
	Method     matcher.Method     `json:"method"`
	Similarity float64            `json:"similarity"`
}

// Bundle is everything Export needs to write a vault archive.
type Bundle struct {
	DocumentID string
	Title      string
	SourcePath string
	TargetMD   string
	Result     matcher.Result
	CreatedAt  time.Time
	Telemetry  *telemetry.System // optional; nil disables counter/histogram emission
}

// countingWriter tracks the number of bytes written to the underlying zip
// archive so Export can report its final size without a second pass.
type countingWriter struct {
	w io.Writer
	n int64
}

func (c *countingWriter) Write(p []byte) (int, error) {
	n, err := c.w.Write(p)
	c.n += int64(n)
	return n, err
}

// Export writes bundle as a zip archive to w.
func Export(w io.Writer, bundle Bundle) error {
	start := time.Now()
	tel := bundle.Telemetry
	cw := &countingWriter{w: w}

	zw := zip.NewWriter(cw)
	zw.RegisterCompressor(zip.Deflate, func(out io.Writer) (io.WriteCloser, error) {
		return flate.NewWriter(out, flate.DefaultCompression)
	})
	defer zw.Close()

	manifest := Manifest{
		DocumentID: bundle.DocumentID,
		Title:      bundle.Title,
		SourcePath: bundle.SourcePath,
		ChunkCount: len(bundle.Result.Matched),
		CreatedAt:  bundle.CreatedAt.UTC().Format(time.RFC3339),
		Stats:      bundle.Result.Stats,
		Warnings:   bundle.Result.Warnings,
	}
	if manifest.Warnings == nil {
		manifest.Warnings = []string{}
	}
	manifestJSON, err := json.Marshal(manifest)
	if err != nil {
		return fmt.Errorf("vault: marshaling manifest: %w", err)
	}
	diags, err := docschema.ValidateJSON(docschema.VaultManifest, manifestJSON)
	if err != nil {
		return fmt.Errorf("vault: validating manifest: %w", err)
	}
	if len(diags) > 0 {
		if tel != nil {
			tel.Counter(telemetry.SchemaValidationErrTotal, 1, map[string]string{"schema": string(docschema.VaultManifest)})
		}
		return fmt.Errorf("vault: manifest failed schema validation: %s at %s", diags[0].Message, diags[0].Pointer)
	}
	if err := writeJSON(zw, "manifest.json", manifest); err != nil {
		return fmt.Errorf("vault: writing manifest: %w", err)
	}

	targetEntry, err := zw.CreateHeader(&zip.FileHeader{Name: "target.md", Method: zip.Deflate})
	if err != nil {
		return fmt.Errorf("vault: creating target.md entry: %w", err)
	}
	if _, err := targetEntry.Write([]byte(bundle.TargetMD)); err != nil {
		return fmt.Errorf("vault: writing target.md: %w", err)
	}

	for _, m := range bundle.Result.Matched {
		id := chunkhash.New(m.Chunk.Index, m.Chunk.Content)
		meta := m.Chunk.Meta
		if len(meta.HeadingPath) == 0 && bundle.TargetMD != "" {
			byteOffset := textkit.ByteIndexFromUTF16(bundle.TargetMD, m.Start)
			meta.HeadingPath = docmeta.HeadingPathAt(bundle.TargetMD, byteOffset)
		}
		record := ChunkRecord{
			ChunkIndex: m.Chunk.Index,
			Content:    m.Chunk.Content,
			Meta:       meta,
			Start:      m.Start,
			End:        m.End,
			Confidence: m.Confidence,
			Method:     m.Method,
			Similarity: m.Similarity,
		}
		if err := writeJSON(zw, "chunks/"+id.FileName(), record); err != nil {
			return fmt.Errorf("vault: writing chunk %d: %w", m.Chunk.Index, err)
		}
	}

	if err := zw.Close(); err != nil {
		return fmt.Errorf("vault: finalizing archive: %w", err)
	}
	if tel != nil {
		tel.Counter(telemetry.VaultExportBytesTotal, float64(cw.n), nil)
		tel.Histogram(telemetry.VaultExportLatencyMS, time.Since(start), nil)
	}

	return nil
}

func writeJSON(zw *zip.Writer, name string, v any) error {
	entry, err := zw.CreateHeader(&zip.FileHeader{Name: name, Method: zip.Deflate})
	if err != nil {
		return err
	}
	enc := json.NewEncoder(entry)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
