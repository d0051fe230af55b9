package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	ChainHeight = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "jab",
		Name:      "chain_height",
		Help:      "Index of the latest block in the chain.",
	})

	PeersConnected = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "jab",
		Name:      "peers_connected",
		Help:      "Number of connected P2P peers.",
	})

	MinersRegistered = prometheus.NewGauge(prometheus.GaugeOpts{
		Namespace: "jab",
		Name:      "miners_registered",
		Help:      "Number of miners currently in the roster, including the host.",
	})

	BlocksMined = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jab",
		Name:      "blocks_mined_total",
		Help:      "Total blocks mined by this host.",
	})

	TransactionsRejected = prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "jab",
		Name:      "transactions_rejected_total",
		Help:      "Transaction admission rejections by wire error code.",
	}, []string{"code"})

	TransactionsAccepted = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jab",
		Name:      "transactions_accepted_total",
		Help:      "Total transactions admitted into a new block.",
	})

	InvalidPayloadsReceived = prometheus.NewCounter(prometheus.CounterOpts{
		Namespace: "jab",
		Name:      "invalid_payloads_received_total",
		Help:      "Total inbound gossip payloads that failed to decode.",
	})
)

func init() {
	prometheus.MustRegister(
		ChainHeight,
		PeersConnected,
		MinersRegistered,
		BlocksMined,
		TransactionsRejected,
		TransactionsAccepted,
		InvalidPayloadsReceived,
	)
}

// Handler returns an HTTP handler for the /metrics endpoint.
func Handler() http.Handler {
	return promhttp.Handler()
}
