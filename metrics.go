package clashgo

import (
	"sync/atomic"
	"time"
)

// MetricsCollector defines an interface for collecting operational metrics.
// Implement this interface to integrate with monitoring systems like Prometheus.
//
// Example Prometheus integration:
//
//	type PrometheusCollector struct {
//	    requestCounter   *prometheus.CounterVec
//	    requestHistogram *prometheus.HistogramVec
//	}
//
//	func (p *PrometheusCollector) RecordRequest(endpoint string, duration time.Duration, err error) {
//	    p.requestCounter.WithLabelValues(endpoint).Inc()
//	    // ... record error state, duration, etc.
//	}
type MetricsCollector interface {
	// RecordRequest is called after each API request.
	// endpoint is the request path, duration the total time taken,
	// err is nil if successful.
	RecordRequest(endpoint string, duration time.Duration, err error)

	// RecordRetry is called when a throttled or unavailable response
	// triggers a retry.
	RecordRetry(endpoint string)

	// RecordRateLimitWait is called when the local limiter delayed a
	// request, with the time spent waiting.
	RecordRateLimitWait(duration time.Duration)

	// RecordCacheHit is called when a GET is served from the response cache.
	RecordCacheHit()

	// RecordCacheMiss is called when a GET misses the response cache.
	RecordCacheMiss()
}

// NoopMetricsCollector is a no-op implementation of MetricsCollector.
// Use this when metrics collection is not needed.
type NoopMetricsCollector struct{}

func (NoopMetricsCollector) RecordRequest(string, time.Duration, error) {}
func (NoopMetricsCollector) RecordRetry(string)                        {}
func (NoopMetricsCollector) RecordRateLimitWait(time.Duration)         {}
func (NoopMetricsCollector) RecordCacheHit()                           {}
func (NoopMetricsCollector) RecordCacheMiss()                          {}

// BasicMetricsCollector provides simple in-memory metrics collection.
// Useful for debugging and basic monitoring without external dependencies.
type BasicMetricsCollector struct {
	RequestCount       atomic.Int64
	RequestErrors      atomic.Int64
	RequestTotalNanos  atomic.Int64
	RetryCount         atomic.Int64
	RateLimitWaits     atomic.Int64
	RateLimitWaitNanos atomic.Int64
	CacheHits          atomic.Int64
	CacheMisses        atomic.Int64
}

// RecordRequest implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRequest(endpoint string, duration time.Duration, err error) {
	b.RequestCount.Add(1)
	b.RequestTotalNanos.Add(duration.Nanoseconds())
	if err != nil {
		b.RequestErrors.Add(1)
	}
}

// RecordRetry implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRetry(endpoint string) {
	b.RetryCount.Add(1)
}

// RecordRateLimitWait implements MetricsCollector.
func (b *BasicMetricsCollector) RecordRateLimitWait(duration time.Duration) {
	b.RateLimitWaits.Add(1)
	b.RateLimitWaitNanos.Add(duration.Nanoseconds())
}

// RecordCacheHit implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheHit() {
	b.CacheHits.Add(1)
}

// RecordCacheMiss implements MetricsCollector.
func (b *BasicMetricsCollector) RecordCacheMiss() {
	b.CacheMisses.Add(1)
}

// GetStats returns a snapshot of current metrics.
func (b *BasicMetricsCollector) GetStats() BasicMetricsStats {
	return BasicMetricsStats{
		RequestCount:    b.RequestCount.Load(),
		RequestErrors:   b.RequestErrors.Load(),
		RequestAvgNanos: b.getAvgRequestNanos(),
		RetryCount:      b.RetryCount.Load(),
		RateLimitWaits:  b.RateLimitWaits.Load(),
		CacheHits:       b.CacheHits.Load(),
		CacheMisses:     b.CacheMisses.Load(),
	}
}

func (b *BasicMetricsCollector) getAvgRequestNanos() int64 {
	count := b.RequestCount.Load()
	if count == 0 {
		return 0
	}
	return b.RequestTotalNanos.Load() / count
}

// BasicMetricsStats is a snapshot of BasicMetricsCollector state.
type BasicMetricsStats struct {
	RequestCount    int64
	RequestErrors   int64
	RequestAvgNanos int64
	RetryCount      int64
	RateLimitWaits  int64
	CacheHits       int64
	CacheMisses     int64
}
