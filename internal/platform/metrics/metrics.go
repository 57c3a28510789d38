package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics holds the domain Prometheus collectors.
type Metrics struct {
	ParticipantsRegistered *prometheus.CounterVec
	DocumentsProcessed     *prometheus.CounterVec
	ContractsSaved         prometheus.Counter
	ContractSaveFailures   *prometheus.CounterVec
	ContractSaveLatency    prometheus.Histogram
	NotificationsSent      *prometheus.CounterVec
}

// New registers the collectors with reg. A nil reg uses the default registerer.
func New(reg prometheus.Registerer) *Metrics {
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	factory := promauto.With(reg)
	return &Metrics{
		ParticipantsRegistered: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "realty_participants_registered_total",
			Help: "Participants submitted through the registration form, labeled by user type",
		}, []string{"user_type"}),
		DocumentsProcessed: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "realty_documents_processed_total",
			Help: "Document images sent for analysis, labeled by outcome",
		}, []string{"outcome"}),
		ContractsSaved: factory.NewCounter(prometheus.CounterOpts{
			Name: "realty_contracts_saved_total",
			Help: "Contracts inserted into the store",
		}),
		ContractSaveFailures: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "realty_contract_save_failures_total",
			Help: "Failed contract saves, labeled by error code",
		}, []string{"code"}),
		ContractSaveLatency: factory.NewHistogram(prometheus.HistogramOpts{
			Name:    "realty_contract_save_latency_seconds",
			Help:    "Latency of contract inserts in seconds",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}),
		NotificationsSent: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "realty_notifications_total",
			Help: "User notifications raised, labeled by variant",
		}, []string{"variant"}),
	}
}

func (m *Metrics) IncParticipantRegistered(userType string) {
	if m == nil {
		return
	}
	m.ParticipantsRegistered.WithLabelValues(userType).Inc()
}

func (m *Metrics) IncDocumentProcessed(outcome string) {
	if m == nil {
		return
	}
	m.DocumentsProcessed.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveContractSaved(durationSeconds float64) {
	if m == nil {
		return
	}
	m.ContractsSaved.Inc()
	m.ContractSaveLatency.Observe(durationSeconds)
}

func (m *Metrics) IncContractSaveFailure(code string) {
	if m == nil {
		return
	}
	m.ContractSaveFailures.WithLabelValues(code).Inc()
}

func (m *Metrics) IncNotification(variant string) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(variant).Inc()
}
