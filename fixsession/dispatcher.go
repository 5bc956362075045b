// Package fixsession implements the FIX dispatcher (component G) and the
// session state machine (component H): sequence-checked message routing,
// and connect/handshake/heartbeat/reconnect behaviour driven entirely off
// transport callbacks and a Scheduler, with no internal locks.
package fixsession

import (
	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
	"prime-fix-engine-go/logging"
	"prime-fix-engine-go/metrics"
)

// MessageListener observes one inbound frame.
type MessageListener func(msg *fix.MessageView)

// Dispatcher holds a MsgType → listener map plus an all-messages listener
// and an unhandled listener, and enforces inbound sequence-number
// continuity before a frame ever reaches application code.
type Dispatcher struct {
	listeners   map[string]MessageListener
	allMessages MessageListener
	unhandled   MessageListener

	log *logging.Logger
	met *metrics.Registry

	logon         bool
	inboundSeq    int64
	lastInboundNs int64
}

// NewDispatcher creates a Dispatcher with inbound_seq starting at 1.
func NewDispatcher(log *logging.Logger, met *metrics.Registry) *Dispatcher {
	return &Dispatcher{
		listeners:  make(map[string]MessageListener),
		log:        log,
		met:        met,
		inboundSeq: 1,
	}
}

// On registers the listener invoked for an exact MsgType match.
func (d *Dispatcher) On(msgType string, l MessageListener) { d.listeners[msgType] = l }

// OnAllMessages registers the listener invoked for every accepted frame,
// before the per-type listener.
func (d *Dispatcher) OnAllMessages(l MessageListener) { d.allMessages = l }

// OnUnhandled registers the listener invoked when no per-type listener is
// registered for an otherwise-accepted frame's MsgType.
func (d *Dispatcher) OnUnhandled(l MessageListener) { d.unhandled = l }

// InboundSeq returns the next MsgSeqNum the dispatcher expects.
func (d *Dispatcher) InboundSeq() int64 { return d.inboundSeq }

// LastInboundNs returns the timestamp recorded by the most recent Dispatch
// call, 0 if none has run since the last Logoff.
func (d *Dispatcher) LastInboundNs() int64 { return d.lastInboundNs }

// IsLoggedOn reports whether the dispatcher is past the initial Logon
// exchange.
func (d *Dispatcher) IsLoggedOn() bool { return d.logon }

// Logon marks the dispatcher as past the initial handshake: subsequent
// frames are sequence-checked strictly rather than gated on MsgType A.
func (d *Dispatcher) Logon() { d.logon = true }

// Logoff sets logon back to false, zeroes last_inbound_ns, and optionally
// resets inbound_seq to 1.
func (d *Dispatcher) Logoff(resetInbound bool) {
	d.logon = false
	d.lastInboundNs = 0
	if resetInbound {
		d.inboundSeq = 1
	}
}

// Dispatch routes one inbound frame, recording nowNs as last_inbound_ns,
// validating MsgSeqNum continuity, and invoking the all-messages listener
// followed by the per-type listener. Returns false on any rejection: a
// missing/stale MsgSeqNum, a seqnum mismatch while logged on, a non-Logon
// first frame, or an unhandled MsgType.
func (d *Dispatcher) Dispatch(msg *fix.MessageView, nowNs int64) bool {
	d.lastInboundNs = nowNs

	seq := msg.AsInteger(constants.TagMsgSeqNum)
	if seq < 0 || seq < d.inboundSeq {
		d.log.Warnf(nowNs, "dispatcher: missing or stale MsgSeqNum %d, expected >= %d", seq, d.inboundSeq)
		return false
	}

	msgType := msgTypeOf(msg)

	if d.logon {
		if seq != d.inboundSeq {
			d.log.Warnf(nowNs, "dispatcher: MsgSeqNum %d does not match expected %d", seq, d.inboundSeq)
			return false
		}
		d.inboundSeq++
		d.recordInbound(msgType)
		if d.allMessages != nil {
			d.allMessages(msg)
		}
		l, found := d.listeners[msgType]
		if !found {
			if d.unhandled != nil {
				d.unhandled(msg)
			}
			d.log.Warnf(nowNs, "dispatcher: unhandled MsgType %q", msgType)
			return false
		}
		l(msg)
		return true
	}

	if msgType != constants.MsgTypeLogon {
		d.log.Warnf(nowNs, "dispatcher: expected Logon(A) before logon, got MsgType %q", msgType)
		return false
	}
	if seq == d.inboundSeq {
		d.inboundSeq++
	}
	d.recordInbound(msgType)
	if d.allMessages != nil {
		d.allMessages(msg)
	}
	if l, found := d.listeners[msgType]; found {
		l(msg)
	}
	return true
}

func (d *Dispatcher) recordInbound(msgType string) {
	if d.met != nil {
		d.met.InboundMessages.WithLabelValues(msgType).Inc()
	}
}

func msgTypeOf(msg *fix.MessageView) string {
	i := msg.Get(constants.TagMsgType)
	if i < 0 {
		return ""
	}
	return string(msg.ValueAt(i))
}
