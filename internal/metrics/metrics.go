package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics collects room activity for prometheus
// It implements room.Observer
type Metrics struct {
	activeRooms      prometheus.Gauge
	connectedClients prometheus.Gauge
	handsDealt       prometheus.Counter
	actionsApplied   *prometheus.CounterVec
	actionsDropped   *prometheus.CounterVec
}

// New creates the collectors and registers them with reg
func New(namespace string, reg prometheus.Registerer) (*Metrics, error) {
	m := &Metrics{
		activeRooms: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "active_rooms",
			Help:      "Number of rooms with a running dealer",
		}),
		connectedClients: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "connected_clients",
			Help:      "Number of connected websocket clients",
		}),
		handsDealt: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "hands_dealt_total",
			Help:      "Total number of hands dealt",
		}),
		actionsApplied: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_applied_total",
			Help:      "Betting actions applied to a hand",
		}, []string{"action"}),
		actionsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "actions_dropped_total",
			Help:      "Requests that were dropped without changing a room",
		}, []string{"reason"}),
	}

	for _, c := range []prometheus.Collector{
		m.activeRooms,
		m.connectedClients,
		m.handsDealt,
		m.actionsApplied,
		m.actionsDropped,
	} {
		if err := reg.Register(c); err != nil {
			return nil, err
		}
	}

	return m, nil
}

// RoomOpened is called when a dealer starts its shift
func (m *Metrics) RoomOpened() {
	m.activeRooms.Inc()
}

// RoomClosed is called when a room is retired or the server shuts down
func (m *Metrics) RoomClosed() {
	m.activeRooms.Dec()
}

// ClientConnected is called when a websocket connects
func (m *Metrics) ClientConnected() {
	m.connectedClients.Inc()
}

// ClientDisconnected is called when a websocket goes away
func (m *Metrics) ClientDisconnected() {
	m.connectedClients.Dec()
}

// HandDealt counts every hand a room starts
func (m *Metrics) HandDealt() {
	m.handsDealt.Inc()
}

// ActionApplied counts a betting action by name
func (m *Metrics) ActionApplied(action string) {
	m.actionsApplied.WithLabelValues(action).Inc()
}

// ActionDropped counts a dropped request by reason
func (m *Metrics) ActionDropped(reason string) {
	m.actionsDropped.WithLabelValues(reason).Inc()
}
