package telemetry

// Metric name constants for the matcher cascade and pipeline collaborators.
// This is ambient instrumentation, not a required behavior of any
// operation, so callers may ignore values entirely when no sink is wired.
const (
	MatcherLayerChunksTotal    = "matcher_layer_chunks_total"
	MatcherLayerLatencyMS      = "matcher_layer_latency_ms"
	MatcherSyntheticTotal      = "matcher_synthetic_total"
	IngestFilesDiscoveredTotal = "ingest_files_discovered_total"
	VaultExportBytesTotal      = "vault_export_bytes_total"
	VaultExportLatencyMS       = "vault_export_latency_ms"
	SchemaValidationErrTotal   = "schema_validation_errors_total"

	TagLayer      = "layer"
	TagMethod     = "method"
	TagConfidence = "confidence"
)
