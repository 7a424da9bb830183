// Package ingest discovers candidate source documents on disk ahead of
// the matcher cascade: an include/exclude glob walk, with no
// schema-validated request envelope, ignore-file matcher, or
// caching/worker-pool config beyond what this walk actually needs (see
// DESIGN.md).
package ingest

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// candidateExtensions are the document types Walk discovers by default:
// real PDF/EPUB sources, plus pre-chunked JSON sidecars used in tests and
// pipelines that skip PDF/EPUB parsing entirely (a Non-goal of this
// module — parsing those formats is left to a caller-supplied extractor).
var candidateExtensions = []string{"**/*.pdf", "**/*.epub", "**/*.json"}

// Query specifies what to discover under Root.
type Query struct {
	Root           string
	Include        []string
	Exclude        []string
	MaxDepth       int
	FollowSymlinks bool
	IncludeHidden  bool
}

// Document is one discovered file. Walk and Discover do not pair it with
// any other file.
type Document struct {
	AbsolutePath string
	RelativePath string
	SizeBytes    int64
}

// Discover walks Root matching Include globs (doublestar, so ** works),
// filtering out Exclude matches, hidden segments, symlinks, and anything
// deeper than MaxDepth (0 means unlimited). Every Include pattern is
// resolved relative to Root and rejected outright if it would escape Root
// via a leading ../ segment.
func Discover(ctx context.Context, q Query) ([]Document, error) {
	absRoot, err := filepath.Abs(q.Root)
	if err != nil {
		return nil, fmt.Errorf("ingest: resolving root %q: %w", q.Root, err)
	}

	seen := map[string]bool{}
	var docs []Document

	for _, pattern := range q.Include {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		if err := rejectEscapingPattern(pattern); err != nil {
			return nil, fmt.Errorf("ingest: include pattern %q: %w", pattern, err)
		}

		matches, err := doublestar.FilepathGlob(filepath.Join(absRoot, pattern))
		if err != nil {
			return nil, fmt.Errorf("ingest: glob %q: %w", pattern, err)
		}

		for _, match := range matches {
			select {
			case <-ctx.Done():
				return nil, ctx.Err()
			default:
			}
			if seen[match] {
				continue
			}

			info, err := os.Lstat(match)
			if err != nil || info.IsDir() {
				continue
			}
			if !q.FollowSymlinks && info.Mode()&os.ModeSymlink != 0 {
				continue
			}

			relPath, err := filepath.Rel(absRoot, match)
			if err != nil {
				continue
			}
			if q.MaxDepth > 0 && strings.Count(relPath, string(filepath.Separator))+1 > q.MaxDepth {
				continue
			}
			if !q.IncludeHidden && hasHiddenSegment(relPath) {
				continue
			}
			if excluded(relPath, q.Exclude) {
				continue
			}

			seen[match] = true
			docs = append(docs, Document{
				AbsolutePath: match,
				RelativePath: relPath,
				SizeBytes:    info.Size(),
			})
		}
	}

	return docs, nil
}

// Walk discovers candidate source documents (PDF, EPUB, JSON sidecar)
// under root, applying additional include/exclude doublestar glob
// patterns on top of the default extension set, and returns them sorted
// by relative path for deterministic pipeline ordering.
func Walk(ctx context.Context, root string, include, exclude []string) ([]Document, error) {
	patterns := append(append([]string{}, candidateExtensions...), include...)
	docs, err := Discover(ctx, Query{Root: root, Include: patterns, Exclude: exclude})
	if err != nil {
		return nil, err
	}
	sort.Slice(docs, func(i, j int) bool { return docs[i].RelativePath < docs[j].RelativePath })
	return docs, nil
}

func rejectEscapingPattern(pattern string) error {
	clean := filepath.ToSlash(filepath.Clean(pattern))
	if clean == ".." || strings.HasPrefix(clean, "../") || strings.HasPrefix(clean, "/") {
		return fmt.Errorf("pattern escapes root")
	}
	return nil
}

func hasHiddenSegment(relPath string) bool {
	for _, seg := range strings.Split(filepath.ToSlash(relPath), "/") {
		if strings.HasPrefix(seg, ".") && seg != "." && seg != ".." {
			return true
		}
	}
	return false
}

func excluded(relPath string, patterns []string) bool {
	slashed := filepath.ToSlash(relPath)
	for _, pattern := range patterns {
		if ok, _ := doublestar.Match(pattern, slashed); ok {
			return true
		}
	}
	return false
}
