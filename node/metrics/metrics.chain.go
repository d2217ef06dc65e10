package metrics

import (
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/rs/zerolog"
)

type statsProvider interface {
	NetName() string
	Stats() map[string]float64
}

type chainMetrics struct {
	sync.Mutex
	metricsByName map[string]prometheus.Gauge
	logger        zerolog.Logger
	registerer    prometheus.Registerer

	netName string
	chain   statsProvider
}

// MetricsOfChain exposes the stats of the chain as gauges named
// nipopow_chain_<stat>.
func MetricsOfChain(chain statsProvider, logger zerolog.Logger) IMetric {
	return metricsOfChain(chain, logger, prometheus.DefaultRegisterer)
}

func metricsOfChain(chain statsProvider, logger zerolog.Logger, registerer prometheus.Registerer) *chainMetrics {
	return &chainMetrics{
		chain:         chain,
		logger:        logger.With().Str("ctx", "metrics").Logger(),
		registerer:    registerer,
		netName:       chain.NetName(),
		metricsByName: make(map[string]prometheus.Gauge),
	}
}

func (s *chainMetrics) Read() {
	stats := s.chain.Stats()
	for name, value := range stats {
		s.updateGauge(prometheus.BuildFQName(namespace, "chain", name), value)
	}
}

func (s *chainMetrics) updateGauge(name string, value float64) {
	s.Lock()
	defer s.Unlock()

	m, ok := s.metricsByName[name]
	if !ok {
		m = prometheus.NewGauge(prometheus.GaugeOpts{
			Name: name,
			ConstLabels: map[string]string{
				"net_name": s.netName,
			},
		})
		err := s.registerer.Register(m)
		if err != nil {
			s.logger.Error().Err(err).Msg("can't register metric")
		}
		s.metricsByName[name] = m
	}
	m.Set(value)
}
