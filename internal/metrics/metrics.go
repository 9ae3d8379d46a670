package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the collectors exported on the HTTP /metrics endpoint.
type Metrics struct {
	ConnectedClients prometheus.Gauge
	LiveGames        prometheus.Gauge
	GamesFinished    *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	factory := promauto.With(reg)

	return &Metrics{
		ConnectedClients: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tictactoe_connected_clients",
			Help: "Number of currently connected clients.",
		}),
		LiveGames: factory.NewGauge(prometheus.GaugeOpts{
			Name: "tictactoe_live_games",
			Help: "Number of games currently in queue or playing.",
		}),
		GamesFinished: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "tictactoe_games_finished_total",
			Help: "Finished games partitioned by end reason.",
		}, []string{"reason"}),
	}
}
