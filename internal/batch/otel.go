package batch

import (
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/hotmech/simulator/internal/batch"

func meter() metric.Meter {
	return otel.Meter(instrumentationName)
}
