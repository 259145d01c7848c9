package encoder

import (
	"sync"
	"sync/atomic"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"github.com/turtacn/keysort/common/constants"
	"github.com/turtacn/keysort/common/log"
	"github.com/turtacn/keysort/common/types/enum"

	"go.uber.org/zap"
)

var unknownTableCounter = promauto.NewCounterVec(prometheus.CounterOpts{
	Namespace: constants.ProjectName,
	Name:      "unknown_table_mutations_total",
	Help:      "Number of mutations encoded against a table absent from the schema, by table name.",
}, []string{"table"})

// UnknownTableRegistry tracks, per unrecognized table name, how many
// mutations have fallen through the unknown-table encoding path. It is
// process-wide state: counters never expire and Reset is provided for
// test harnesses only.
type UnknownTableRegistry struct {
	counts         sync.Map // string -> *int64
	warnThreshold  int64
	metric         *prometheus.CounterVec
}

// NewUnknownTableRegistry returns a registry that logs a warning each
// time a table's count reaches a multiple of warnThreshold. A
// warnThreshold of 0 disables the threshold warning.
func NewUnknownTableRegistry(warnThreshold int64) *UnknownTableRegistry {
	return &UnknownTableRegistry{warnThreshold: warnThreshold, metric: unknownTableCounter}
}

// DefaultUnknownTableRegistry is the package-level registry used when
// no Option overrides it, shared across every MutationKeyEncoder that
// doesn't ask for its own isolated counters.
var DefaultUnknownTableRegistry = NewUnknownTableRegistry(constants.UnknownTableWarnLogThreshold)

// IncrementAndGet atomically increments name's counter, creating it at
// 1 if absent, and returns the new value.
func (r *UnknownTableRegistry) IncrementAndGet(name string) int64 {
	actual, _ := r.counts.LoadOrStore(name, new(int64))
	counter := actual.(*int64)
	n := atomic.AddInt64(counter, 1)

	r.metric.WithLabelValues(name).Inc()

	if r.warnThreshold > 0 && n%r.warnThreshold == 0 {
		log.GetLogger().Warn("table still unrecognized by schema",
			zap.String("component", enum.ComponentEncoder.String()),
			zap.String("table", name),
			zap.Int64("count", n))
	}
	return n
}

// Snapshot returns a point-in-time copy of every table's count.
func (r *UnknownTableRegistry) Snapshot() map[string]int64 {
	out := make(map[string]int64)
	r.counts.Range(func(key, value any) bool {
		out[key.(string)] = atomic.LoadInt64(value.(*int64))
		return true
	})
	return out
}

// Reset clears every counter. Test-only: production code has no
// teardown path for this registry.
func (r *UnknownTableRegistry) Reset() {
	r.counts.Range(func(key, _ any) bool {
		r.counts.Delete(key)
		return true
	})
}
