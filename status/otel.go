package status

import (
	"context"
	"fmt"
	"sync/atomic"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/metric"
)

const instrumentationName = "github.com/lixenwraith/skybastion/status"

// Meter returns the global OTel meter for the registry (no-op if no SDK is installed)
func Meter() metric.Meter {
	return otel.Meter(instrumentationName)
}

// Export registers observable gauges over the registry
// One instrument per value kind; the registry key is carried in the "key" attribute
// Keys registered after Export are observed as well, the callback ranges at collection time
func Export(reg *Registry, m metric.Meter) (metric.Registration, error) {
	ints, err := m.Int64ObservableGauge(
		"skybastion.status.int",
		metric.WithDescription("Integer telemetry from the simulation registry"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating int gauge: %w", err)
	}

	bools, err := m.Int64ObservableGauge(
		"skybastion.status.bool",
		metric.WithDescription("Boolean telemetry from the simulation registry, 0 or 1"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating bool gauge: %w", err)
	}

	floats, err := m.Float64ObservableGauge(
		"skybastion.status.float",
		metric.WithDescription("Float telemetry from the simulation registry"),
	)
	if err != nil {
		return nil, fmt.Errorf("creating float gauge: %w", err)
	}

	reg2, err := m.RegisterCallback(
		func(_ context.Context, o metric.Observer) error {
			reg.Ints.Range(func(key string, v *atomic.Int64) {
				o.ObserveInt64(ints, v.Load(), metric.WithAttributes(attribute.String("key", key)))
			})
			reg.Bools.Range(func(key string, v *atomic.Bool) {
				o.ObserveInt64(bools, int64(boolValue(v.Load())), metric.WithAttributes(attribute.String("key", key)))
			})
			reg.Floats.Range(func(key string, v *Float) {
				o.ObserveFloat64(floats, v.Load(), metric.WithAttributes(attribute.String("key", key)))
			})
			return nil
		},
		ints, bools, floats,
	)
	if err != nil {
		return nil, fmt.Errorf("registering status callback: %w", err)
	}
	return reg2, nil
}
