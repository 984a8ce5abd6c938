package metrics

import (
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests     uint64
	errorRequests     uint64
	rateLimited       uint64
	totalDurationMs   uint64
	calculations      uint64
	calculationRuns   uint64
	calculationTimeMs uint64
	employeesImported uint64
}

func New() *Collector {
	return &Collector{}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	if status == 429 {
		atomic.AddUint64(&c.rateLimited, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordCalculations counts one payroll run that produced count snapshots.
func (c *Collector) RecordCalculations(count int, duration time.Duration) {
	if count < 0 {
		count = 0
	}
	atomic.AddUint64(&c.calculationRuns, 1)
	atomic.AddUint64(&c.calculations, uint64(count))
	atomic.AddUint64(&c.calculationTimeMs, uint64(duration.Milliseconds()))
}

func (c *Collector) RecordImport(created int) {
	if created > 0 {
		atomic.AddUint64(&c.employeesImported, uint64(created))
	}
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	limited := atomic.LoadUint64(&c.rateLimited)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}
	return map[string]any{
		"requestsTotal":          total,
		"errorsTotal":            errs,
		"rateLimitedTotal":       limited,
		"avgDurationMs":          avg,
		"totalDurationMs":        totalMs,
		"calculationsTotal":      atomic.LoadUint64(&c.calculations),
		"calculationRunsTotal":   atomic.LoadUint64(&c.calculationRuns),
		"calculationDurationMs":  atomic.LoadUint64(&c.calculationTimeMs),
		"employeesImportedTotal": atomic.LoadUint64(&c.employeesImported),
	}
}
