// Package tracing provides an events.Emitter that turns ShipEngine calls into
// OpenTelemetry spans.
//
// One span covers one logical call. It starts on the first RequestSent
// event, gains a span event per attempt and per response, and ends on the
// response that completes the call or on the terminal Error event. A
// response is only treated as successful when the client marks it so, which
// keeps JSON-RPC errors sent with a 2xx status open until their Error event. Spans are keyed
// by request id, so retries of a call land on the same span.
package tracing

import (
	"context"
	"sync"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"github.com/shipengine/shipengine-go/events"
)

// InstrumentationName is the tracer name used for ShipEngine spans.
const InstrumentationName = "github.com/shipengine/shipengine-go"

// Emitter records ShipEngine calls as spans. It is safe for concurrent use.
type Emitter struct {
	tracer trace.Tracer

	mu    sync.Mutex
	spans map[string]trace.Span
}

var _ events.Emitter = (*Emitter)(nil)

// NewEmitter returns an Emitter using tp, or the global tracer provider when
// tp is nil.
func NewEmitter(tp trace.TracerProvider) *Emitter {
	if tp == nil {
		tp = otel.GetTracerProvider()
	}
	return &Emitter{
		tracer: tp.Tracer(InstrumentationName),
		spans:  make(map[string]trace.Span),
	}
}

// OnRequestSent implements events.Emitter.
func (t *Emitter) OnRequestSent(e events.RequestSent) {
	t.mu.Lock()
	span, ok := t.spans[e.RequestID]
	if !ok {
		_, span = t.tracer.Start(context.Background(), "shipengine.request",
			trace.WithSpanKind(trace.SpanKindClient),
			trace.WithTimestamp(e.Timestamp),
			trace.WithAttributes(
				attribute.String("shipengine.request_id", e.RequestID),
				attribute.String("url.full", e.URL),
				attribute.Int64("shipengine.timeout_ms", e.Timeout.Milliseconds()),
			),
		)
		t.spans[e.RequestID] = span
	}
	t.mu.Unlock()

	span.AddEvent("attempt", trace.WithTimestamp(e.Timestamp), trace.WithAttributes(
		attribute.Int("shipengine.retry_attempt", e.RetryAttempt),
	))
}

// OnResponseReceived implements events.Emitter.
func (t *Emitter) OnResponseReceived(e events.ResponseReceived) {
	span, ok := t.lookup(e.RequestID, e.Success)
	if !ok {
		return
	}

	span.AddEvent("response", trace.WithTimestamp(e.Timestamp), trace.WithAttributes(
		attribute.Int("http.response.status_code", e.StatusCode),
		attribute.Int64("shipengine.elapsed_ms", e.Elapsed.Milliseconds()),
	))
	if e.Success {
		span.SetAttributes(attribute.Int("http.response.status_code", e.StatusCode))
		span.SetStatus(codes.Ok, "")
		span.End(trace.WithTimestamp(e.Timestamp))
	}
}

// OnError implements events.Emitter.
func (t *Emitter) OnError(e events.Error) {
	span, ok := t.lookup(e.RequestID, true)
	if !ok {
		return
	}

	span.SetAttributes(
		attribute.String("shipengine.error.source", e.Source),
		attribute.String("shipengine.error.type", e.Type),
		attribute.String("shipengine.error.code", e.Code),
	)
	if e.StatusCode != 0 {
		span.SetAttributes(attribute.Int("http.response.status_code", e.StatusCode))
	}
	span.SetStatus(codes.Error, e.Message)
	span.End(trace.WithTimestamp(e.Timestamp))
}

// lookup returns the open span for requestID, removing it from the table
// when remove is true.
func (t *Emitter) lookup(requestID string, remove bool) (trace.Span, bool) {
	t.mu.Lock()
	defer t.mu.Unlock()
	span, ok := t.spans[requestID]
	if ok && remove {
		delete(t.spans, requestID)
	}
	return span, ok
}

// Open returns the number of spans that have started but not yet ended.
func (t *Emitter) Open() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.spans)
}
