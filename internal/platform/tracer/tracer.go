// Package tracer is a small tracing abstraction over OpenTelemetry.
//
// Services depend on Tracer and Span only; OTelTracer adapts the global
// OpenTelemetry provider and NoopTracer keeps tests free of exporters.
package tracer

import (
	"context"
	"time"
)

// Span represents an active trace span.
type Span interface {
	// End completes the span. A non-nil err marks it as failed.
	// End must be called exactly once, typically via defer.
	End(err error)
	SetAttributes(attrs ...Attribute)
	AddEvent(name string, attrs ...Attribute)
}

// Tracer creates spans. Implementations must be safe for concurrent use.
type Tracer interface {
	// Start creates a span; the returned context carries it to child operations.
	//
	//   ctx, span := t.Start(ctx, tracer.SpanContractSave,
	//       tracer.String(tracer.AttrBuilding, c.BuildingName),
	//   )
	//   defer func() { span.End(err) }()
	Start(ctx context.Context, name string, attrs ...Attribute) (context.Context, Span)
}

// Attribute is a key-value pair attached to spans.
type Attribute struct {
	Key   string
	Value any
}

func String(key, value string) Attribute {
	return Attribute{Key: key, Value: value}
}

func Bool(key string, value bool) Attribute {
	return Attribute{Key: key, Value: value}
}

func Int64(key string, value int64) Attribute {
	return Attribute{Key: key, Value: value}
}

func Float64(key string, value float64) Attribute {
	return Attribute{Key: key, Value: value}
}

// Duration creates an attribute in milliseconds.
func Duration(key string, value time.Duration) Attribute {
	return Attribute{Key: key, Value: value.Milliseconds()}
}

// Span names.
const (
	SpanContractSave      = "contract.save"
	SpanContractGet       = "contract.get"
	SpanDocumentAnalyze   = "participant.document.analyze"
	SpanParticipantSubmit = "participant.submit"
)

// Attribute keys.
const (
	AttrContractID    = "contract.id"
	AttrBuilding      = "contract.building"
	AttrRowsAffected  = "db.rows_affected"
	AttrUserType      = "participant.user_type"
	AttrImageBytes    = "document.bytes"
	AttrExtractedKeys = "document.extracted_fields"
)

// Event names.
const (
	EventNotificationRaised = "notification.raised"
)
