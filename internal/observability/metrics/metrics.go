package metrics

import "github.com/prometheus/client_golang/prometheus"

// SchedulingMetrics exposes counters/histograms for slot resolution and
// booking flows.
type SchedulingMetrics struct {
	slotQueries     *prometheus.CounterVec
	slotsReturned   *prometheus.HistogramVec
	bookingsCreated *prometheus.CounterVec
	slotConflicts   prometheus.Counter
}

func NewSchedulingMetrics(reg prometheus.Registerer) *SchedulingMetrics {
	m := &SchedulingMetrics{
		slotQueries: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "getsettime",
			Subsystem: "scheduling",
			Name:      "slot_queries_total",
			Help:      "Total slot list computations",
		}, []string{"surface"}),
		slotsReturned: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "getsettime",
			Subsystem: "scheduling",
			Name:      "slots_returned",
			Help:      "Open slots returned per query",
			Buckets:   []float64{0, 1, 2, 5, 10, 20, 50},
		}, []string{"surface"}),
		bookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "getsettime",
			Subsystem: "bookings",
			Name:      "created_total",
			Help:      "Total bookings created",
		}, []string{"status"}),
		slotConflicts: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: "getsettime",
			Subsystem: "bookings",
			Name:      "slot_conflicts_total",
			Help:      "Booking attempts rejected because the slot was no longer open",
		}),
	}
	if reg == nil {
		reg = prometheus.DefaultRegisterer
	}
	reg.MustRegister(m.slotQueries, m.slotsReturned, m.bookingsCreated, m.slotConflicts)
	return m
}

func (m *SchedulingMetrics) ObserveSlotQuery(surface string, openSlots int) {
	if m == nil {
		return
	}
	m.slotQueries.WithLabelValues(surface).Inc()
	m.slotsReturned.WithLabelValues(surface).Observe(float64(openSlots))
}

func (m *SchedulingMetrics) ObserveBookingCreated(status string) {
	if m == nil {
		return
	}
	m.bookingsCreated.WithLabelValues(status).Inc()
}

func (m *SchedulingMetrics) ObserveSlotConflict() {
	if m == nil {
		return
	}
	m.slotConflicts.Inc()
}
