// Package review renders a completed matcher.Result as either a
// human-readable console summary or a schema-validated JSON document, and
// provides a ports.ProgressFunc that prints coarse progress to the CLI.
package review

import (
	"fmt"
	"io"

	"github.com/fulmenhq/docmatch/internal/ports"
)

// ConsoleProgress returns a ports.ProgressFunc that writes one line per
// call to w, e.g. "[ 30%] layer2: embedding window scan".
func ConsoleProgress(w io.Writer) ports.ProgressFunc {
	return func(percent int, stage, message string) {
		fmt.Fprintf(w, "[%3d%%] %s: %s\n", percent, stage, message)
	}
}
