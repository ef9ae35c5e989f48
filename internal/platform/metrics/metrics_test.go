package metrics

import (
	"maps"
	"testing"
	"time"
)

func TestCollectorSnapshot(t *testing.T) {
	c := New()
	c.Record(200, 10*time.Millisecond)
	c.Record(502, 30*time.Millisecond)
	c.RecordRender("salary_slip", true)
	c.RecordRender("salary_slip", true)
	c.RecordRender("offer_letter", false)

	snap := c.Snapshot()
	if snap["requestsTotal"] != uint64(2) || snap["errorsTotal"] != uint64(1) {
		t.Fatalf("unexpected request counters: %v", snap)
	}
	if snap["avgDurationMs"] != float64(20) {
		t.Fatalf("expected avg 20ms, got %v", snap["avgDurationMs"])
	}
	if snap["documentsRendered"] != uint64(2) || snap["renderFailures"] != uint64(1) {
		t.Fatalf("unexpected render counters: %v", snap)
	}
	byType, ok := snap["documentsRenderedBy"].(map[string]uint64)
	if !ok || !maps.Equal(byType, map[string]uint64{"salary_slip": 2}) {
		t.Fatalf("unexpected per-type counts: %v", snap["documentsRenderedBy"])
	}
}
