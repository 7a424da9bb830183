package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/fulmenhq/docmatch/internal/adapters"
	"github.com/fulmenhq/docmatch/internal/config"
	"github.com/fulmenhq/docmatch/internal/docerr"
	"github.com/fulmenhq/docmatch/internal/docmeta"
	"github.com/fulmenhq/docmatch/internal/identity"
	"github.com/fulmenhq/docmatch/internal/matcher"
	"github.com/fulmenhq/docmatch/internal/obslog"
	"github.com/fulmenhq/docmatch/internal/review"
	"github.com/fulmenhq/docmatch/internal/shutdown"
	"github.com/fulmenhq/docmatch/internal/telemetry"
	"github.com/fulmenhq/docmatch/internal/textkit"
	"github.com/fulmenhq/docmatch/internal/vault"
)

func runMatch(args []string) error {
	fs := flag.NewFlagSet("match", flag.ContinueOnError)
	chunksPath := fs.String("chunks", "", "path to a JSON chunk sidecar (required)")
	targetPath := fs.String("target", "", "path to the cleaned target markdown file (required)")
	outPath := fs.String("out", "vault.zip", "path to write the vault export archive")
	docID := fs.String("document-id", "", "document identifier stamped into the vault manifest")
	format := fs.String("format", "text", "review summary format (text|json)")
	embedderURL := fs.String("embedder-url", "", "HTTP endpoint for the embedding adapter (Layer 2); omit to skip")
	llmURL := fs.String("llm-url", "", "HTTP endpoint for the LLM position adapter (Layer 3); omit to skip")
	configPath := fs.String("config", "", "path to a docmatch config.yaml override")
	algorithm := fs.String("algorithm", "levenshtein", "Layer 1 sliding-window similarity metric (levenshtein|damerau_osa|jaro_winkler)")
	quiet := fs.Bool("quiet", false, "suppress progress output")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *chunksPath == "" || *targetPath == "" {
		fs.Usage()
		return fmt.Errorf("--chunks and --target are required")
	}

	var cfg config.Config
	var err error
	if *configPath != "" {
		cfg, err = config.Load(*configPath)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}

	id := identity.Default()
	correlationID := docerr.NewCorrelationID()
	logger, err := obslog.NewCLI(correlationID)
	if err != nil {
		return fmt.Errorf("initializing logger: %w", err)
	}
	defer logger.Sync()
	logger.Info("starting match run", zap.String("binary", id.BinaryName), zap.String("correlation_id", correlationID))
	tel := telemetry.NewSystem(telemetry.NewLoggerSink(logger))

	chunks, err := loadSidecarChunks(*chunksPath)
	if err != nil {
		return err
	}
	rawTarget, err := os.ReadFile(*targetPath)
	if err != nil {
		return fmt.Errorf("reading target %s: %w", *targetPath, err)
	}
	targetBody, docMeta, err := docmeta.ParseFrontmatter(rawTarget)
	if err != nil {
		logger.Warn("frontmatter parse failed, using raw content", zap.Error(err))
		targetBody = string(rawTarget)
	}

	opts := matcher.Options{
		MaxWindows: cfg.Matcher.MaxWindows,
		LLMWindow:  cfg.Matcher.LLMWindowChars,
		Telemetry:  tel,
		Algorithm:  textkit.Algorithm(*algorithm),
	}
	if *embedderURL != "" {
		opts.Embedder = &adapters.HTTPEmbedder{Endpoint: *embedderURL, Timeout: cfg.Adapters.RequestTimeout}
	}
	if *llmURL != "" {
		opts.LLM = &adapters.HTTPLLMClient{Endpoint: *llmURL, Timeout: cfg.Adapters.RequestTimeout}
	}
	if !*quiet {
		opts.OnProgress = review.ConsoleProgress(os.Stderr)
	}

	ctx, stop := shutdown.Context(context.Background(), 3*time.Second)
	defer stop()

	result, err := matcher.BulletproofMatch(ctx, targetBody, chunks, opts)
	if err != nil {
		return fmt.Errorf("match failed: %w", err)
	}
	logger.Info("match run complete", zap.Int("total", result.Stats.Total), zap.Bool("cancelled", result.Cancelled))

	outFile, err := os.Create(*outPath)
	if err != nil {
		return fmt.Errorf("creating vault archive %s: %w", *outPath, err)
	}
	defer outFile.Close()

	documentID := *docID
	if documentID == "" {
		documentID = docMeta.SourcePath
	}
	bundle := vault.Bundle{
		DocumentID: documentID,
		Title:      docMeta.Title,
		SourcePath: *targetPath,
		TargetMD:   targetBody,
		Result:     result,
		CreatedAt:  time.Now(),
		Telemetry:  tel,
	}
	if err := vault.Export(outFile, bundle); err != nil {
		return fmt.Errorf("writing vault archive: %w", err)
	}

	switch strings.ToLower(*format) {
	case "json":
		return review.RenderJSON(os.Stdout, result)
	default:
		return review.Render(os.Stdout, result)
	}
}
