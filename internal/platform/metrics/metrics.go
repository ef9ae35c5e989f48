package metrics

import (
	"sync"
	"sync/atomic"
	"time"
)

type Collector struct {
	totalRequests   uint64
	errorRequests   uint64
	totalDurationMs uint64
	rendered        uint64
	renderFailures  uint64

	mu     sync.Mutex
	byType map[string]uint64
}

func New() *Collector {
	return &Collector{byType: map[string]uint64{}}
}

func (c *Collector) Record(status int, duration time.Duration) {
	atomic.AddUint64(&c.totalRequests, 1)
	if status >= 500 {
		atomic.AddUint64(&c.errorRequests, 1)
	}
	atomic.AddUint64(&c.totalDurationMs, uint64(duration.Milliseconds()))
}

// RecordRender counts one PDF render attempt for docType.
func (c *Collector) RecordRender(docType string, ok bool) {
	if !ok {
		atomic.AddUint64(&c.renderFailures, 1)
		return
	}
	atomic.AddUint64(&c.rendered, 1)
	c.mu.Lock()
	c.byType[docType]++
	c.mu.Unlock()
}

func (c *Collector) Snapshot() map[string]any {
	total := atomic.LoadUint64(&c.totalRequests)
	errs := atomic.LoadUint64(&c.errorRequests)
	totalMs := atomic.LoadUint64(&c.totalDurationMs)
	avg := float64(0)
	if total > 0 {
		avg = float64(totalMs) / float64(total)
	}

	c.mu.Lock()
	byType := make(map[string]uint64, len(c.byType))
	for k, v := range c.byType {
		byType[k] = v
	}
	c.mu.Unlock()

	return map[string]any{
		"requestsTotal":       total,
		"errorsTotal":         errs,
		"avgDurationMs":       avg,
		"totalDurationMs":     totalMs,
		"documentsRendered":   atomic.LoadUint64(&c.rendered),
		"renderFailures":      atomic.LoadUint64(&c.renderFailures),
		"documentsRenderedBy": byType,
	}
}
