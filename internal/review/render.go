package review

import (
	"encoding/json"
	"fmt"
	"io"
	"sort"

	"github.com/mattn/go-runewidth"

	"github.com/fulmenhq/docmatch/internal/docschema"
	"github.com/fulmenhq/docmatch/internal/matcher"
)

// Render writes a human-readable summary of result to w: total chunk
// count, a width-aligned table of counts per confidence and per method,
// and one line per warning.
func Render(w io.Writer, result matcher.Result) error {
	if _, err := fmt.Fprintf(w, "chunks matched: %d\n", result.Stats.Total); err != nil {
		return err
	}
	if result.Cancelled {
		if _, err := fmt.Fprintln(w, "run was cancelled; recovery completed via interpolation"); err != nil {
			return err
		}
	}

	if err := renderCountTable(w, "by confidence", confidenceRows(result.Stats.ByConfidence)); err != nil {
		return err
	}
	if err := renderCountTable(w, "by method", methodRows(result.Stats.ByMethod)); err != nil {
		return err
	}

	if len(result.Warnings) == 0 {
		return nil
	}
	if _, err := fmt.Fprintln(w, "warnings:"); err != nil {
		return err
	}
	for _, warn := range result.Warnings {
		if _, err := fmt.Fprintf(w, "  - %s\n", warn); err != nil {
			return err
		}
	}
	return nil
}

func confidenceRows(counts map[matcher.Confidence]int) [][2]string {
	var rows [][2]string
	for k, v := range counts {
		rows = append(rows, [2]string{string(k), fmt.Sprintf("%d", v)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

func methodRows(counts map[matcher.Method]int) [][2]string {
	var rows [][2]string
	for k, v := range counts {
		rows = append(rows, [2]string{string(k), fmt.Sprintf("%d", v)})
	}
	sort.Slice(rows, func(i, j int) bool { return rows[i][0] < rows[j][0] })
	return rows
}

func renderCountTable(w io.Writer, title string, rows [][2]string) error {
	if len(rows) == 0 {
		return nil
	}
	if _, err := fmt.Fprintf(w, "%s:\n", title); err != nil {
		return err
	}
	labelWidth := 0
	for _, row := range rows {
		if width := runewidth.StringWidth(row[0]); width > labelWidth {
			labelWidth = width
		}
	}
	for _, row := range rows {
		if _, err := fmt.Fprintf(w, "  %s  %s\n", runewidth.FillRight(row[0], labelWidth), row[1]); err != nil {
			return err
		}
	}
	return nil
}

// jsonReport mirrors internal/docschema's review_report schema.
type jsonReport struct {
	TotalChunks  int            `json:"total_chunks"`
	ByConfidence map[string]int `json:"by_confidence"`
	ByMethod     map[string]int `json:"by_method"`
	Cancelled    bool           `json:"cancelled"`
	Warnings     []string       `json:"warnings"`
}

// RenderJSON writes result as a JSON document validated against
// docschema.ReviewReport before being written to w.
func RenderJSON(w io.Writer, result matcher.Result) error {
	report := jsonReport{
		TotalChunks:  result.Stats.Total,
		ByConfidence: map[string]int{},
		ByMethod:     map[string]int{},
		Cancelled:    result.Cancelled,
		Warnings:     result.Warnings,
	}
	if report.Warnings == nil {
		report.Warnings = []string{}
	}
	for k, v := range result.Stats.ByConfidence {
		report.ByConfidence[string(k)] = v
	}
	for k, v := range result.Stats.ByMethod {
		report.ByMethod[string(k)] = v
	}

	data, err := json.Marshal(report)
	if err != nil {
		return fmt.Errorf("review: marshaling report: %w", err)
	}
	diags, err := docschema.ValidateJSON(docschema.ReviewReport, data)
	if err != nil {
		return fmt.Errorf("review: validating report: %w", err)
	}
	if len(diags) > 0 {
		return fmt.Errorf("review: report failed schema validation: %s at %s", diags[0].Message, diags[0].Pointer)
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(report)
}
