// Package telemetry traces level loads, level transitions and save store
// traffic with OpenTelemetry.
package telemetry

import (
	"context"
	"runtime"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/propagation"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

const serviceName = "tilecrawl"

// Span attribute keys shared by the game and save packages.
const (
	LevelID       = attribute.Key("tilecrawl.level.id")
	LevelFrom     = attribute.Key("tilecrawl.level.from")
	LevelTo       = attribute.Key("tilecrawl.level.to")
	LevelReplayed = attribute.Key("tilecrawl.level.replayed_tiles")
	SaveSlot      = attribute.Key("tilecrawl.save.slot")
	SaveStore     = attribute.Key("tilecrawl.save.store")
	Backend       = attribute.Key("tilecrawl.backend")
)

// Session describes the running game for the trace resource.
type Session struct {
	Version string
	Backend string // "ebiten" or "terminal"
	Store   string
	Slot    string
}

// Setup installs a global tracer provider exporting over OTLP HTTP. The
// endpoint comes from the OTEL_EXPORTER_OTLP_* environment variables.
// The returned function flushes and stops the exporter.
func Setup(ctx context.Context, s Session) (shutdown func(context.Context) error, err error) {
	exporter, err := otlptracehttp.New(ctx)
	if err != nil {
		return nil, err
	}

	res, err := resource.New(ctx,
		resource.WithHost(),
		resource.WithAttributes(sessionAttributes(s)...),
	)
	if err != nil {
		return nil, err
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)
	otel.SetTracerProvider(tp)
	otel.SetTextMapPropagator(propagation.TraceContext{})

	return tp.Shutdown, nil
}

func sessionAttributes(s Session) []attribute.KeyValue {
	version := s.Version
	if version == "" {
		version = "dev"
	}
	return []attribute.KeyValue{
		attribute.String("service.name", serviceName),
		attribute.String("service.version", version),
		attribute.String("process.runtime.version", runtime.Version()),
		Backend.String(s.Backend),
		SaveStore.String(s.Store),
		SaveSlot.String(s.Slot),
	}
}

// Tracer returns the tracer for one component, e.g. "game" or "save".
func Tracer(component string) trace.Tracer {
	return otel.GetTracerProvider().Tracer(serviceName + "/" + component)
}

// NoopTracer returns a tracer that records nothing.
func NoopTracer() trace.Tracer {
	return noop.NewTracerProvider().Tracer(serviceName + "/noop")
}

// Start opens a span named name with attrs. A nil tracer falls back to
// NoopTracer.
func Start(ctx context.Context, tracer trace.Tracer, name string, attrs ...attribute.KeyValue) (context.Context, trace.Span) {
	if tracer == nil {
		tracer = NoopTracer()
	}
	return tracer.Start(ctx, name, trace.WithAttributes(attrs...))
}

// Fail records err on span and marks it failed with msg.
func Fail(span trace.Span, err error, msg string) {
	span.RecordError(err)
	span.SetStatus(codes.Error, msg)
}
