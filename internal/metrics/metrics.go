// Package metrics defines and registers all custom Prometheus metrics
// for the flockr backend. It is the single source of truth for metric
// names, labels, and help strings.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

const namespace = "flockr"

// MessagesSentTotal counts messages appended to channel logs.
// Label:
//   - kind: "direct" for ordinary sends, "composite" for standup flushes
var MessagesSentTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "messages_sent_total",
		Help:      "Total number of messages appended to channel logs.",
	},
	[]string{"kind"},
)

// StandupsStartedTotal counts standup windows opened.
var StandupsStartedTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standups_started_total",
		Help:      "Total number of standup windows started.",
	},
)

// StandupFlushesTotal counts flush outcomes.
// Label:
//   - result: "flushed" (composite appended), "empty" (no contributions),
//     "error" (append failed; the channel still returned to idle)
var StandupFlushesTotal = promauto.NewCounterVec(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standup_flushes_total",
		Help:      "Total number of standup flushes, labelled by result.",
	},
	[]string{"result"},
)

// StandupsActive tracks the number of channels currently in an active
// standup window.
var StandupsActive = promauto.NewGauge(
	prometheus.GaugeOpts{
		Namespace: namespace,
		Name:      "standups_active",
		Help:      "Number of channels with a standup window currently open.",
	},
)

// StandupContributionsTotal counts lines buffered into standups.
var StandupContributionsTotal = promauto.NewCounter(
	prometheus.CounterOpts{
		Namespace: namespace,
		Name:      "standup_contributions_total",
		Help:      "Total number of lines buffered into standup windows.",
	},
)
