package parser

import (
	"errors"
	"log/slog"

	"github.com/prometheus/client_golang/prometheus"

	panerrors "pansyslog.io/internal/errors"
)

// ParserMetrics counts pipeline outcomes in a private Prometheus registry
type ParserMetrics struct {
	registry        *prometheus.Registry
	linesProcessed  prometheus.Counter
	linesSkipped    *prometheus.CounterVec
	recordsRendered *prometheus.CounterVec
	fieldsDropped   prometheus.Counter
}

func NewParserMetrics() *ParserMetrics {
	m := &ParserMetrics{
		registry: prometheus.NewRegistry(),
		linesProcessed: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pansyslog",
			Subsystem: "parser",
			Name:      "lines_processed_total",
			Help:      "Total number of input lines seen",
		}),
		linesSkipped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pansyslog",
			Subsystem: "parser",
			Name:      "lines_skipped_total",
			Help:      "Lines skipped because they could not be decoded or rendered",
		}, []string{"reason"}),
		recordsRendered: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "pansyslog",
			Subsystem: "parser",
			Name:      "records_rendered_total",
			Help:      "Records written to the output sink",
		}, []string{"log_type"}),
		fieldsDropped: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "pansyslog",
			Subsystem: "parser",
			Name:      "fields_dropped_total",
			Help:      "Values past the end of their schema that were discarded",
		}),
	}
	m.registry.MustRegister(m.linesProcessed, m.linesSkipped, m.recordsRendered, m.fieldsDropped)
	return m
}

func (m *ParserMetrics) skipped(err error) {
	m.linesSkipped.WithLabelValues(skipReason(err)).Inc()
}

// Report logs every non-zero series in the registry
func (m *ParserMetrics) Report(logger *slog.Logger) {
	families, err := m.registry.Gather()
	if err != nil {
		logger.Warn("gather parser metrics", "error", err)
		return
	}
	for _, mf := range families {
		for _, metric := range mf.GetMetric() {
			value := metric.GetCounter().GetValue()
			if value == 0 {
				continue
			}
			attrs := []any{"metric", mf.GetName(), "value", value}
			for _, lp := range metric.GetLabel() {
				attrs = append(attrs, lp.GetName(), lp.GetValue())
			}
			logger.Info("parser metric", attrs...)
		}
	}
}

func skipReason(err error) string {
	switch {
	case errors.Is(err, panerrors.ErrMalformedRecord):
		return "malformed"
	case errors.Is(err, panerrors.ErrUnsupportedLogType):
		return "unsupported_log_type"
	case errors.Is(err, panerrors.ErrFieldCount):
		return "field_count"
	case errors.Is(err, panerrors.ErrOutOfRange):
		return "out_of_range"
	case errors.Is(err, panerrors.ErrUndefinedField):
		return "undefined_field"
	default:
		return "other"
	}
}
