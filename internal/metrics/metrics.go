// Package metrics defines the domain Prometheus metrics of the bughunt service.
// HTTP request metrics live with the transport.
package metrics

import (
	"github.com/YusovID/bughunt-service/internal/domain"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "bughunt"

// BugTransitionsTotal counts committed lifecycle commands.
// Label:
//   - transition: "submit", "approve", "reject", "resolve" or "comment"
var BugTransitionsTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "bug_transitions_total",
		Help:      "Total number of committed bug report transitions.",
	},
	[]string{"transition"},
)

// XPAwardedTotal sums the XP frozen on approval, by the bug's final severity.
var XPAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "xp_awarded_total",
		Help:      "Total XP awarded to testers on bug approval.",
	},
	[]string{"severity"},
)

var BadgesAwardedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "badges_awarded_total",
		Help:      "Total number of achievements awarded.",
	},
	[]string{"achievement"},
)

// NotificationsRelayedTotal counts outbox deliveries.
// Label:
//   - result: "published" or "failed"
var NotificationsRelayedTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "notifications_relayed_total",
		Help:      "Total number of outbox notifications handed to the publisher.",
	},
	[]string{"result"},
)

// Recorder feeds service events into the package-level collectors.
type Recorder struct{}

func NewRecorder() Recorder {
	return Recorder{}
}

func (Recorder) BugTransition(transition string) {
	BugTransitionsTotal.WithLabelValues(transition).Inc()
}

func (Recorder) XPAwarded(severity domain.Severity, xp int) {
	XPAwardedTotal.WithLabelValues(string(severity)).Add(float64(xp))
}

func (Recorder) BadgeAwarded(achievementID string) {
	BadgesAwardedTotal.WithLabelValues(achievementID).Inc()
}

func (Recorder) NotificationRelayed(ok bool) {
	result := "published"
	if !ok {
		result = "failed"
	}

	NotificationsRelayedTotal.WithLabelValues(result).Inc()
}
