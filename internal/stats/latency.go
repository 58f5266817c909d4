package stats

import "math"

// Bucket counts latency samples in [Min, Max). Max of 0 means unbounded.
type Bucket struct {
	Label string
	Min   int64
	Max   int64
	Count int
}

// Histogram is an ordered set of latency buckets.
type Histogram []Bucket

// Total returns the number of samples across all buckets.
func (h Histogram) Total() int {
	n := 0
	for _, b := range h {
		n += b.Count
	}
	return n
}

var latencyBounds = []struct {
	label    string
	min, max int64
}{
	{"0-50ms", 0, 50},
	{"50-100ms", 50, 100},
	{"100-150ms", 100, 150},
	{"150-200ms", 150, 200},
	{"200ms+", 200, 0},
}

// LatencyHistogram partitions keystroke latencies into fixed 50ms buckets.
func LatencyHistogram(latencies []int64) Histogram {
	h := make(Histogram, len(latencyBounds))
	for i, b := range latencyBounds {
		h[i] = Bucket{Label: b.label, Min: b.min, Max: b.max}
	}
	for _, l := range latencies {
		switch {
		case l < 50:
			h[0].Count++
		case l < 100:
			h[1].Count++
		case l < 150:
			h[2].Count++
		case l < 200:
			h[3].Count++
		default:
			h[4].Count++
		}
	}
	return h
}

// AverageLatency returns the rounded mean latency in ms, 0 for no samples.
func AverageLatency(latencies []int64) int64 {
	if len(latencies) == 0 {
		return 0
	}
	var sum int64
	for _, l := range latencies {
		sum += l
	}
	return int64(math.Floor(float64(sum)/float64(len(latencies)) + 0.5))
}
