package tracer_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace/noop"

	"realty/internal/platform/tracer"
)

func TestNoopTracer(t *testing.T) {
	tr := tracer.NewNoop()
	ctx := context.Background()

	newCtx, span := tr.Start(ctx, tracer.SpanContractSave, tracer.String(tracer.AttrBuilding, "Edifício Aurora"))

	assert.Equal(t, ctx, newCtx)
	require.NotNil(t, span)
	span.SetAttributes(tracer.Int64(tracer.AttrContractID, 1))
	span.AddEvent(tracer.EventNotificationRaised)
	span.End(errors.New("insert failed"))
}

func TestOTelTracer_WithInjectedProvider(t *testing.T) {
	tr := tracer.NewOTel(tracer.WithOTelTracer(noop.NewTracerProvider().Tracer("test")))

	_, span := tr.Start(context.Background(), tracer.SpanDocumentAnalyze,
		tracer.Int64(tracer.AttrImageBytes, 2048),
		tracer.Bool("cached", false),
		tracer.Float64("ratio", 0.5),
	)
	require.NotNil(t, span)
	assert.NotPanics(t, func() {
		span.SetAttributes(tracer.Attribute{Key: tracer.AttrExtractedKeys, Value: []string{"name", "cpf"}})
		span.End(nil)
	})
}
