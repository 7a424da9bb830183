package telemetry

import (
	"go.uber.org/zap"

	"github.com/fulmenhq/docmatch/internal/obslog"
)

// LoggerSink writes every MetricsEvent through an obslog.Logger as a
// structured debug entry. It is the CLI's default Sink: no separate
// metrics backend, just another field set on the same log stream the
// pipeline already writes.
type LoggerSink struct {
	logger *obslog.Logger
}

// NewLoggerSink wraps logger as a Sink.
func NewLoggerSink(logger *obslog.Logger) *LoggerSink {
	return &LoggerSink{logger: logger}
}

func (s *LoggerSink) Emit(event MetricsEvent) {
	fields := make([]zap.Field, 0, len(event.Tags)+4)
	fields = append(fields,
		zap.String("metric", event.Name),
		zap.String("metric_type", string(event.Type)),
		zap.Any("value", event.Value),
	)
	if event.Unit != "" {
		fields = append(fields, zap.String("unit", event.Unit))
	}
	for k, v := range event.Tags {
		fields = append(fields, zap.String("tag_"+k, v))
	}
	s.logger.Debug("metric", fields...)
}
