package status

import "sync/atomic"

// Registry is the in-process telemetry sink of the simulation
// Systems cache cells at construction and write them from Update; Export and Snapshot read them
type Registry struct {
	Ints   *Set[atomic.Int64]
	Bools  *Set[atomic.Bool]
	Floats *Set[Float]
}

func NewRegistry() *Registry {
	return &Registry{
		Ints:   newSet[atomic.Int64](),
		Bools:  newSet[atomic.Bool](),
		Floats: newSet[Float](),
	}
}

// TotalCount returns the number of registered cells of every kind
func (r *Registry) TotalCount() int {
	return r.Ints.Len() + r.Bools.Len() + r.Floats.Len()
}

// Sample is one registry cell read as a float
type Sample struct {
	Key   string
	Value float64
}

// Snapshot reads every cell: integers first, then booleans as 0 or 1, then floats
func (r *Registry) Snapshot() []Sample {
	out := make([]Sample, 0, r.TotalCount())
	r.Ints.Range(func(key string, v *atomic.Int64) {
		out = append(out, Sample{Key: key, Value: float64(v.Load())})
	})
	r.Bools.Range(func(key string, v *atomic.Bool) {
		out = append(out, Sample{Key: key, Value: boolValue(v.Load())})
	})
	r.Floats.Range(func(key string, v *Float) {
		out = append(out, Sample{Key: key, Value: v.Load()})
	})
	return out
}

func boolValue(b bool) float64 {
	if b {
		return 1
	}
	return 0
}
