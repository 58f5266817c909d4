package stats

import (
	"math/rand"
	"testing"
)

func TestLatencyHistogramBuckets(t *testing.T) {
	h := LatencyHistogram([]int64{0, 49, 50, 99, 100, 149, 150, 199, 200, 5000})
	want := []int{2, 2, 2, 2, 2}
	for i, b := range h {
		if b.Count != want[i] {
			t.Fatalf("bucket %s: expected %d, got %d", b.Label, want[i], b.Count)
		}
	}
	if h[4].Label != "200ms+" || h[0].Label != "0-50ms" {
		t.Fatalf("unexpected labels: %+v", h)
	}
}

func TestLatencyHistogramSumsToSamples(t *testing.T) {
	rnd := rand.New(rand.NewSource(11))
	for n := 0; n < 50; n++ {
		lat := make([]int64, n)
		for i := range lat {
			lat[i] = rnd.Int63n(400)
		}
		if got := LatencyHistogram(lat).Total(); got != n {
			t.Fatalf("expected %d samples, got %d", n, got)
		}
	}
}

func TestAverageLatency(t *testing.T) {
	if got := AverageLatency(nil); got != 0 {
		t.Fatalf("expected 0 for no samples, got %d", got)
	}
	if got := AverageLatency([]int64{100, 101}); got != 101 {
		t.Fatalf("expected 100.5 to round to 101, got %d", got)
	}
	if got := AverageLatency([]int64{90, 120, 150}); got != 120 {
		t.Fatalf("expected 120, got %d", got)
	}
}
