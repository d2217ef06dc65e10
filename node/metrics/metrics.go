package metrics

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// metricsManager metrics manager
type metricsManager struct {
	sync.Mutex
	metrics  []IMetric
	interval time.Duration
}

// IMetric metric reader
type IMetric interface {
	Read()
}

// IMetricManager metric manager
type IMetricManager interface {
	Add(metrics ...IMetric)
	Listen(ctx context.Context, route, addr string) error
}

// Metrics creates metric instance. Registered readers are polled every
// interval until ctx is done.
func Metrics(ctx context.Context, interval time.Duration) IMetricManager {
	res := &metricsManager{
		interval: interval,
	}

	go res.collector(ctx)
	return res
}

func (m *metricsManager) Add(metrics ...IMetric) {
	m.Lock()
	m.metrics = append(m.metrics, metrics...)
	m.Unlock()
}

func (m *metricsManager) read() {
	m.Lock()
	readers := append([]IMetric(nil), m.metrics...)
	m.Unlock()

	for _, v := range readers {
		v.Read()
	}
}

func (m *metricsManager) collector(ctx context.Context) {
	ticker := time.NewTicker(m.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			m.read()
		}
	}
}

// Listen serves the prometheus handler on addr until ctx is done.
func (m *metricsManager) Listen(ctx context.Context, route, addr string) error {
	mux := http.NewServeMux()
	mux.Handle(route, promhttp.Handler())
	srv := &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	err := srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}
