package api

import (
	"context"
	"net/http"
	"time"

	log "github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const (
	projectsRoute       = "/api/projects"
	projectsSpanName    = "board.projects.fetch"
	projectsEventName   = "projects.fetch"
	projectsEventDomain = "board"
	tracerName          = "project-board/api"
)

// projectsRequestMetrics collects per-request timings for the projects read
// path and emits them as one logrus observability event plus one span.
type projectsRequestMetrics struct {
	logger        *log.Logger
	span          trace.Span
	start         time.Time
	fetchDuration time.Duration
	statusFilter  string
	bytesReturned int
	errorStage    string
}

func newProjectsRequestMetrics(ctx context.Context, logger *log.Logger) (*projectsRequestMetrics, context.Context) {
	spanCtx, span := otel.Tracer(tracerName).Start(ctx, projectsSpanName)
	return &projectsRequestMetrics{
		logger: logger,
		span:   span,
		start:  time.Now(),
	}, spanCtx
}

func (m *projectsRequestMetrics) ObserveFetch(duration time.Duration) {
	if duration <= 0 {
		return
	}
	m.fetchDuration = duration
}

func (m *projectsRequestMetrics) SetStatusFilter(status string) {
	m.statusFilter = status
}

func (m *projectsRequestMetrics) SetBytesReturned(n int) {
	if n < 0 {
		n = 0
	}
	m.bytesReturned = n
}

func (m *projectsRequestMetrics) SetErrorStage(stage string) {
	if stage == "" {
		return
	}
	m.errorStage = stage
}

// Log emits the observability event and ends the span. It must be called
// exactly once per request.
func (m *projectsRequestMetrics) Log(status int, err error) {
	if m == nil || m.logger == nil {
		return
	}

	totalMs := durationToMillis(time.Since(m.start))
	attrs := map[string]any{
		"http.route":                  projectsRoute,
		"board.projects.total_ms":     totalMs,
		"board.projects.bytes":        m.bytesReturned,
		"board.projects.status_param": m.statusFilter,
	}
	if m.fetchDuration > 0 {
		attrs["board.projects.fetch_ms"] = durationToMillis(m.fetchDuration)
	}
	if m.errorStage != "" {
		attrs["board.projects.error_stage"] = m.errorStage
	}
	if err != nil {
		attrs["error.message"] = err.Error()
	}

	severityText, severityNumber := severityForStatus(status, err)

	fields := log.Fields{
		"event.name":      projectsEventName,
		"event.domain":    projectsEventDomain,
		"attributes":      attrs,
		"severity_text":   severityText,
		"severity_number": severityNumber,
	}

	if m.span != nil {
		spanAttrs := make([]attribute.KeyValue, 0, len(attrs)+4)
		spanAttrs = append(spanAttrs,
			attribute.String("http.route", projectsRoute),
			attribute.Int("http.status_code", status),
			attribute.Float64("board.projects.total_ms", totalMs),
			attribute.Int("board.projects.bytes", m.bytesReturned),
		)
		if m.statusFilter != "" {
			spanAttrs = append(spanAttrs, attribute.String("board.projects.status_param", m.statusFilter))
		}
		if m.errorStage != "" {
			spanAttrs = append(spanAttrs, attribute.String("board.projects.error_stage", m.errorStage))
		}
		m.span.SetAttributes(spanAttrs...)

		eventAttrs := []attribute.KeyValue{
			attribute.String("event.name", projectsEventName),
			attribute.String("event.domain", projectsEventDomain),
			attribute.String("severity_text", severityText),
			attribute.Float64("board.projects.total_ms", totalMs),
		}
		m.span.AddEvent("observability.event", trace.WithAttributes(eventAttrs...))

		if err != nil || status >= http.StatusInternalServerError {
			description := http.StatusText(status)
			if err != nil {
				description = err.Error()
			}
			m.span.SetStatus(codes.Error, description)
		} else {
			m.span.SetStatus(codes.Ok, "")
		}

		if sc := m.span.SpanContext(); sc.HasTraceID() {
			fields["trace_id"] = sc.TraceID().String()
		}
		m.span.End()
	}

	m.logger.WithFields(fields).Info("observability.event")
}

func severityForStatus(status int, err error) (string, int) {
	switch {
	case err != nil || status >= http.StatusInternalServerError:
		return "ERROR", 17
	case status >= http.StatusBadRequest:
		return "WARN", 13
	default:
		return "INFO", 9
	}
}

func durationToMillis(d time.Duration) float64 {
	if d <= 0 {
		return 0
	}
	return float64(d) / float64(time.Millisecond)
}
