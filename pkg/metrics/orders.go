package metrics

import "github.com/prometheus/client_golang/prometheus"

// Order sources used as the "source" label.
const (
	SourceAPI      = "api"
	SourceForm     = "form"
	SourceCheckout = "checkout"
)

// OrderMetrics counts order lifecycle operations.
type OrderMetrics struct {
	created       *prometheus.CounterVec
	statusChanged *prometheus.CounterVec
	deleted       prometheus.Counter
}

// NewOrderMetrics registers the order metrics on the provided registerer.
func NewOrderMetrics(reg prometheus.Registerer) *OrderMetrics {
	if reg == nil {
		return &OrderMetrics{}
	}
	created := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "orders_created_total",
		Help: "Orders persisted, by submission source.",
	}, []string{"source"})
	statusChanged := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "order_status_changes_total",
		Help: "Order status updates, by new status.",
	}, []string{"status"})
	deleted := prometheus.NewCounter(prometheus.CounterOpts{
		Name: "orders_deleted_total",
		Help: "Orders deleted.",
	})
	reg.MustRegister(created, statusChanged, deleted)
	return &OrderMetrics{created: created, statusChanged: statusChanged, deleted: deleted}
}

// IncCreated counts one created order.
func (m *OrderMetrics) IncCreated(source string) {
	if m == nil || m.created == nil {
		return
	}
	m.created.WithLabelValues(normalizeLabel(source)).Inc()
}

// IncStatusChanged counts one status update. Status is free text, so the
// label is bucketed to "other" when it is not a known stage.
func (m *OrderMetrics) IncStatusChanged(status string, known bool) {
	if m == nil || m.statusChanged == nil {
		return
	}
	if !known {
		status = "other"
	}
	m.statusChanged.WithLabelValues(normalizeLabel(status)).Inc()
}

// IncDeleted counts one deleted order.
func (m *OrderMetrics) IncDeleted() {
	if m == nil || m.deleted == nil {
		return
	}
	m.deleted.Inc()
}
