package notify

import "github.com/prometheus/client_golang/prometheus"

// Metrics tracks notification queue activity.
type Metrics struct {
	Enqueued      prometheus.Counter
	EnqueueFailed prometheus.Counter
	Delivered     prometheus.Counter
	Failed        prometheus.Counter
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		Enqueued: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "account_notifications_enqueued_total",
			Help: "Login notification jobs accepted by the queue.",
		}),
		EnqueueFailed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "account_notifications_enqueue_failed_total",
			Help: "Login notification jobs the broker refused.",
		}),
		Delivered: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "account_notifications_delivered_total",
			Help: "Login notification emails delivered.",
		}),
		Failed: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "account_notifications_failed_total",
			Help: "Login notification emails that exhausted all delivery attempts.",
		}),
	}

	reg.MustRegister(m.Enqueued, m.EnqueueFailed, m.Delivered, m.Failed)
	return m
}
