// README: Prometheus collectors on a private registry.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

type Metrics struct {
	Registry *prometheus.Registry

	OrdersSubmitted prometheus.Counter
	WaiterCalls     prometheus.Counter
	OrdersClaimed   prometheus.Counter
	OrdersHidden    prometheus.Counter
	OrdersRemoved   prometheus.Counter
	StatsRecorded   prometheus.Counter
	BarActiveOrders prometheus.Gauge
}

func New() *Metrics {
	registry := prometheus.NewRegistry()

	m := &Metrics{
		Registry: registry,
		OrdersSubmitted: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bestellapp_orders_submitted_total",
			Help: "Guest orders submitted from table clients",
		}),
		WaiterCalls: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bestellapp_waiter_calls_total",
			Help: "Waiter call requests submitted from table clients",
		}),
		OrdersClaimed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bestellapp_orders_claimed_total",
			Help: "Orders claimed by a waiter",
		}),
		OrdersHidden: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bestellapp_orders_hidden_total",
			Help: "Orders soft-completed from the bar view",
		}),
		OrdersRemoved: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bestellapp_orders_removed_total",
			Help: "Orders permanently removed",
		}),
		StatsRecorded: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "bestellapp_stats_recorded_total",
			Help: "Orders folded into the revenue statistics",
		}),
		BarActiveOrders: prometheus.NewGauge(prometheus.GaugeOpts{
			Name: "bestellapp_bar_active_orders",
			Help: "Orders currently visible on the bar dashboard",
		}),
	}

	registry.MustRegister(
		m.OrdersSubmitted,
		m.WaiterCalls,
		m.OrdersClaimed,
		m.OrdersHidden,
		m.OrdersRemoved,
		m.StatsRecorded,
		m.BarActiveOrders,
	)
	return m
}
