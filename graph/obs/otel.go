package obs

import (
	"context"
	"fmt"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

// OTelEmitter implements Emitter by creating an OpenTelemetry span per
// event.
//
// Each event becomes a span with:
//   - Span name: event.Msg (e.g. "node_evaluated", "node_evaluation_failed")
//   - Attributes: graphID, nodeID, and all event.Meta fields
//   - Status: error if event.Meta["error"] is set
//
// Spans are point-in-time (started and ended immediately): graph evaluation
// is synchronous and single-threaded, so there is no concurrent span tree to
// track, only a linear sequence of named instants.
type OTelEmitter struct {
	tracer trace.Tracer
}

// NewOTelEmitter creates an OTelEmitter using the given tracer, e.g.
// otel.Tracer("shadergraph").
func NewOTelEmitter(tracer trace.Tracer) *OTelEmitter {
	return &OTelEmitter{tracer: tracer}
}

// Emit creates and immediately ends a span for the event.
func (o *OTelEmitter) Emit(event Event) {
	_, span := o.tracer.Start(context.Background(), event.Msg)
	defer span.End()
	o.annotate(span, event)
}

// EmitBatch creates one span per event, in order.
func (o *OTelEmitter) EmitBatch(ctx context.Context, events []Event) error {
	for _, event := range events {
		_, span := o.tracer.Start(ctx, event.Msg)
		o.annotate(span, event)
		span.End()
	}
	return nil
}

// Flush force-flushes the global tracer provider if it supports it.
func (o *OTelEmitter) Flush(ctx context.Context) error {
	tp := otel.GetTracerProvider()
	type flusher interface {
		ForceFlush(context.Context) error
	}
	if f, ok := tp.(flusher); ok {
		return f.ForceFlush(ctx)
	}
	return nil
}

func (o *OTelEmitter) annotate(span trace.Span, event Event) {
	span.SetAttributes(
		attribute.String("shadergraph.graph_id", event.GraphID),
		attribute.String("shadergraph.node_id", event.NodeID),
	)
	for key, value := range event.Meta {
		switch v := value.(type) {
		case string:
			span.SetAttributes(attribute.String(key, v))
		case int:
			span.SetAttributes(attribute.Int(key, v))
		case int64:
			span.SetAttributes(attribute.Int64(key, v))
		case float64:
			span.SetAttributes(attribute.Float64(key, v))
		case bool:
			span.SetAttributes(attribute.Bool(key, v))
		case time.Duration:
			span.SetAttributes(attribute.Int64(key, int64(v/time.Millisecond)))
		default:
			span.SetAttributes(attribute.String(key, fmt.Sprintf("%v", v)))
		}
	}
	if errMsg, ok := event.Meta["error"].(string); ok {
		span.SetStatus(codes.Error, errMsg)
		span.RecordError(fmt.Errorf("%s", errMsg))
	}
}
