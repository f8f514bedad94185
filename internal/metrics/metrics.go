package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	WSConnections = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "marketplace_ws_connections",
		Help: "Currently connected websocket clients.",
	})

	MessagesSent = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_chat_messages_sent_total",
		Help: "Chat messages durably appended.",
	})

	BroadcastsDropped = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_chat_broadcasts_dropped_total",
		Help: "Real-time pushes skipped because the target had no live connection.",
	})

	OrdersPaid = promauto.NewCounter(prometheus.CounterOpts{
		Name: "marketplace_orders_paid_total",
		Help: "Orders moved to the paid state.",
	})
)

// Handler exposes the default registry for the /metrics route.
func Handler() http.Handler {
	return promhttp.Handler()
}
