package main

import (
	"context"
	"flag"
	"fmt"
	"strings"

	"github.com/fulmenhq/docmatch/internal/docerr"
	"github.com/fulmenhq/docmatch/internal/ingest"
	"github.com/fulmenhq/docmatch/internal/obslog"
	"github.com/fulmenhq/docmatch/internal/telemetry"
)

type stringList []string

func (s *stringList) String() string { return strings.Join(*s, ",") }
func (s *stringList) Set(v string) error {
	*s = append(*s, v)
	return nil
}

func runDiscover(args []string) error {
	fs := flag.NewFlagSet("discover", flag.ContinueOnError)
	root := fs.String("root", ".", "directory to search for candidate documents")
	var include, exclude stringList
	fs.Var(&include, "include", "additional doublestar include glob (repeatable)")
	fs.Var(&exclude, "exclude", "doublestar exclude glob (repeatable)")
	if err := fs.Parse(args); err != nil {
		return err
	}

	logger, err := obslog.NewCLI(docerr.NewCorrelationID())
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()
	tel := telemetry.NewSystem(telemetry.NewLoggerSink(logger))

	docs, err := ingest.Walk(context.Background(), *root, include, exclude)
	if err != nil {
		return fmt.Errorf("discover: %w", err)
	}
	tel.Counter(telemetry.IngestFilesDiscoveredTotal, float64(len(docs)), nil)
	for _, d := range docs {
		fmt.Println(d.RelativePath)
	}
	return nil
}
