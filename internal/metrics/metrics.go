package metrics

import "github.com/prometheus/client_golang/prometheus"

// Metrics счётчики бота
type Metrics struct {
	storeRequests *prometheus.CounterVec
	slotConflicts prometheus.Counter
	agendaAnomaly prometheus.Counter
	agendaCache   *prometheus.CounterVec
	updates       *prometheus.CounterVec
}

func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		storeRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cabinet_desk",
			Name:      "store_requests_total",
			Help:      "Total requests to office REST services",
		}, []string{"service", "method", "status"}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cabinet_desk",
			Name:      "slot_conflicts_total",
			Help:      "Bookings rejected because the slot was taken",
		}),
		agendaAnomaly: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "cabinet_desk",
			Name:      "agenda_anomalies_total",
			Help:      "Duplicate appointments found on the same slot",
		}),
		agendaCache: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cabinet_desk",
			Name:      "agenda_cache_total",
			Help:      "Day agenda cache lookups",
		}, []string{"result"}),
		updates: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "cabinet_desk",
			Name:      "telegram_updates_total",
			Help:      "Telegram updates received by kind",
		}, []string{"kind"}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.storeRequests, m.slotConflicts, m.agendaAnomaly, m.agendaCache, m.updates)
	return m
}

// ObserveStoreRequest status - HTTP код или "error" при сбое транспорта
func (m *Metrics) ObserveStoreRequest(service, method, status string) {
	if m == nil {
		return
	}
	m.storeRequests.WithLabelValues(service, method, status).Inc()
}

func (m *Metrics) ObserveSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}

func (m *Metrics) ObserveAgendaAnomalies(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.agendaAnomaly.Add(float64(n))
}

// ObserveAgendaCache result: hit, miss, error
func (m *Metrics) ObserveAgendaCache(result string) {
	if m == nil {
		return
	}
	m.agendaCache.WithLabelValues(result).Inc()
}

// ObserveUpdate kind: command, callback, text, other
func (m *Metrics) ObserveUpdate(kind string) {
	if m == nil {
		return
	}
	m.updates.WithLabelValues(kind).Inc()
}
