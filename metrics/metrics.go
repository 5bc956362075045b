// Package metrics exposes counters for inbound/outbound FIX message counts,
// JSON parse errors, heartbeats sent, and reconnect attempts. The
// dispatcher and session increment all of them except ParseErrors, which
// no package increments. The core parsing algorithms stay
// allocation-light and side-effect free, so nothing in jsonparser, fix, or
// encoding imports this package.
package metrics

import "github.com/prometheus/client_golang/prometheus"

// Registry bundles the counters a single FIX session exercises. Each
// instance should be registered against its own prometheus.Registerer so
// multiple sessions in one process don't collide on metric names.
type Registry struct {
	InboundMessages  *prometheus.CounterVec
	OutboundMessages *prometheus.CounterVec
	ParseErrors      prometheus.Counter
	HeartbeatsSent   prometheus.Counter
	Reconnects       prometheus.Counter
}

// NewRegistry builds a Registry and registers all of its collectors
// against reg.
func NewRegistry(reg prometheus.Registerer) *Registry {
	r := &Registry{
		InboundMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fix_inbound_messages_total",
			Help: "Inbound FIX messages accepted by the dispatcher, by MsgType.",
		}, []string{"msg_type"}),
		OutboundMessages: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "fix_outbound_messages_total",
			Help: "Outbound FIX messages sent by the session, by MsgType.",
		}, []string{"msg_type"}),
		ParseErrors: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fix_json_parse_errors_total",
			Help: "Malformed JSON payloads rejected by the streaming parser.",
		}),
		HeartbeatsSent: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fix_heartbeats_sent_total",
			Help: "Heartbeat[0] messages sent by the session, including replies to TestRequest.",
		}),
		Reconnects: prometheus.NewCounter(prometheus.CounterOpts{
			Name: "fix_reconnects_total",
			Help: "Reconnect attempts initiated after a transport failure.",
		}),
	}
	reg.MustRegister(r.InboundMessages, r.OutboundMessages, r.ParseErrors, r.HeartbeatsSent, r.Reconnects)
	return r
}

// NewNoop returns a Registry registered against a fresh, unexported
// registry — useful in tests and command-line tools that don't expose a
// /metrics endpoint but still want the counters wired.
func NewNoop() *Registry {
	return NewRegistry(prometheus.NewRegistry())
}
