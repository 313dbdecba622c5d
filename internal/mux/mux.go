package mux

import (
	"net/http"

	gmux "github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"holdem-server/pkg/room"
)

// Mux handles HTTP requests
type Mux struct {
	*gmux.Router
	version string
	pitBoss *room.PitBoss
	logger  logrus.FieldLogger
}

// NewMux returns a new HTTP mux
// gatherer backs /metrics, the endpoint is left out when it is nil
func NewMux(version string, pitBoss *room.PitBoss, gatherer prometheus.Gatherer, logger logrus.FieldLogger) *Mux {
	this := &Mux{
		Router:  gmux.NewRouter(),
		version: version,
		pitBoss: pitBoss,
		logger:  logger,
	}

	r := this.Router
	r.NotFoundHandler = notFound()
	r.MethodNotAllowedHandler = methodNotAllowed()

	r.Methods(http.MethodGet).Path("/health").Handler(this.getHealth())
	r.Methods(http.MethodGet).Path("/rooms").Handler(this.getRooms())
	r.Methods(http.MethodGet).Path("/ws").Handler(this.getWS())

	if gatherer != nil {
		r.Methods(http.MethodGet).Path("/metrics").Handler(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{}))
	}

	return this
}

func (m *Mux) getRooms() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, m.pitBoss.Rooms())
	}
}
