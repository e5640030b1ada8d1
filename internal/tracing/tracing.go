package tracing

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/exporters/otlp/otlptrace/otlptracehttp"
	"go.opentelemetry.io/otel/sdk/resource"
	sdktrace "go.opentelemetry.io/otel/sdk/trace"
	semconv "go.opentelemetry.io/otel/semconv/v1.24.0"
	"go.opentelemetry.io/otel/trace"

	"github.com/cloud-ru/deposit-calculator-go/internal/buildinfo"
)

// Tracer устанавливается InitTracing
var Tracer trace.Tracer

// TracerFor возвращает Tracer после InitTracing, иначе трейсер глобального провайдера
func TracerFor(serviceName string) trace.Tracer {
	if Tracer != nil {
		return Tracer
	}
	return otel.Tracer(serviceName)
}

// InitTracing инициализирует OpenTelemetry трейсинг и возвращает функцию остановки
func InitTracing(serviceName, otelEndpoint string, log *logrus.Logger) (func(context.Context) error, error) {
	res, err := resource.New(context.Background(),
		resource.WithAttributes(
			semconv.ServiceNameKey.String(serviceName),
			semconv.ServiceVersionKey.String(buildinfo.Version),
		),
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create resource: %w", err)
	}

	var exporter sdktrace.SpanExporter

	if otelEndpoint != "" {
		// Используем OTLP HTTP экспортер
		exporter, err = otlptracehttp.New(context.Background(),
			otlptracehttp.WithEndpoint(otelEndpoint),
		)
		if err != nil {
			return nil, fmt.Errorf("failed to create OTLP exporter: %w", err)
		}
		log.WithField("endpoint", otelEndpoint).Info("OpenTelemetry настроен для OTLP экспорта")
	} else {
		// Без endpoint спаны никуда не отправляются
		log.Info("OpenTelemetry настроен (используйте OTEL_ENDPOINT для экспорта)")
		exporter = &noopExporter{}
	}

	tp := sdktrace.NewTracerProvider(
		sdktrace.WithBatcher(exporter),
		sdktrace.WithResource(res),
	)

	otel.SetTracerProvider(tp)
	Tracer = otel.Tracer(serviceName)

	return tp.Shutdown, nil
}

// noopExporter - пустой экспортер для локальной разработки
type noopExporter struct{}

func (e *noopExporter) ExportSpans(ctx context.Context, spans []sdktrace.ReadOnlySpan) error {
	return nil
}

func (e *noopExporter) Shutdown(ctx context.Context) error {
	return nil
}
