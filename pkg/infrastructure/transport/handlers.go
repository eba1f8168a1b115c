package transport

import (
	"conditionalert/pkg/domain/model"
	"conditionalert/pkg/domain/service"
	"conditionalert/pkg/infrastructure/metrics"
	"context"
	"encoding/json"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	log "github.com/sirupsen/logrus"
	"net/http"
	"time"
)

const (
	maxEventSize  = 1 << 20
	metricsSource = "http"
)

// ReadinessCheck reports whether the service can handle events.
type ReadinessCheck func(r *http.Request) error

type Handler struct {
	alertHandler service.ConditionAlertHandler
	ready        ReadinessCheck
}

func Router(alertHandler service.ConditionAlertHandler, ready ReadinessCheck) http.Handler {
	handler := &Handler{alertHandler: alertHandler, ready: ready}

	r := mux.NewRouter()
	s := r.PathPrefix("/api/v1").Subrouter()
	s.HandleFunc("/change-events", handler.changeEvent).Methods(http.MethodPost)

	r.Handle("/metrics", promhttp.Handler()).Methods(http.MethodGet)
	r.HandleFunc("/live", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) }).Methods(http.MethodGet)
	r.HandleFunc("/ready", handler.readiness).Methods(http.MethodGet)

	return logMiddleware(r)
}

func (h *Handler) changeEvent(w http.ResponseWriter, r *http.Request) {
	var event model.ChangeEvent
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxEventSize)).Decode(&event); err != nil {
		metrics.ChangeEventsMalformed.WithLabelValues(metricsSource).Inc()
		http.Error(w, "invalid change event: "+err.Error(), http.StatusBadRequest)
		return
	}
	metrics.ChangeEventsReceived.WithLabelValues(metricsSource).Inc()

	// the alert outlives a caller that gives up after the count
	start := time.Now()
	err := h.alertHandler.Handle(context.WithoutCancel(r.Context()), event)
	metrics.HandleDuration.WithLabelValues(metricsSource).Observe(time.Since(start).Seconds())
	if err != nil {
		log.WithError(err).WithField("operationType", event.OperationType).Error("failed to handle change event")
		http.Error(w, err.Error(), http.StatusBadGateway)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) readiness(w http.ResponseWriter, r *http.Request) {
	if h.ready != nil {
		if err := h.ready(r); err != nil {
			log.WithError(err).Warn("readiness check failed")
			http.Error(w, err.Error(), http.StatusServiceUnavailable)
			return
		}
	}
	w.WriteHeader(http.StatusOK)
}

func logMiddleware(h http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.WithFields(log.Fields{
			"method":     r.Method,
			"url":        r.URL,
			"remoteAddr": r.RemoteAddr,
			"userAgent":  r.UserAgent(),
		}).Info("got a new request")
		h.ServeHTTP(w, r)
	})
}
