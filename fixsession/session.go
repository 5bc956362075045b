package fixsession

import (
	"fmt"
	"time"

	"prime-fix-engine-go/config"
	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
	"prime-fix-engine-go/logging"
	"prime-fix-engine-go/metrics"
	"prime-fix-engine-go/transport"
)

const (
	defaultBufferSize = 8192

	taskConnectTimeout = "connect_timeout"
	taskHeartbeat      = "heartbeat"
	taskReconnect      = "reconnect"
)

// State is a node of the session's connection lifecycle
// (IDLE → CONNECTING → HANDSHAKING → LOGGED_IN ⇄ DISCONNECTING → IDLE).
type State int

const (
	StateIdle State = iota
	StateConnecting
	StateHandshaking
	StateLoggedIn
	StateDisconnecting
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "IDLE"
	case StateConnecting:
		return "CONNECTING"
	case StateHandshaking:
		return "HANDSHAKING"
	case StateLoggedIn:
		return "LOGGED_IN"
	case StateDisconnecting:
		return "DISCONNECTING"
	default:
		return "UNKNOWN"
	}
}

// Session drives one FIX connection end to end: dialing, the Logon
// handshake, heartbeat liveness, gap-fill resend handling, and reconnect,
// entirely off transport callbacks and a Scheduler. It owns no internal
// locks — every method here runs on the single event-loop goroutine the
// transport and scheduler callbacks are delivered on.
type Session struct {
	cfg   *config.FixSessionConfig
	fixCfg fix.SessionConfig
	tr    transport.Transport
	disp  *Dispatcher
	writer *fix.Writer
	parser *fix.Parser
	sched *Scheduler
	clock Clock
	log   *logging.Logger
	met   *metrics.Registry

	state               State
	address             string
	outboundSeq         int64
	lastOutboundNs      int64
	heartbeatIntervalNs int64

	sendBuf []byte
	recvBuf []byte
	recvLen int

	onConnected func()
	onLogout    func(reason string)
	onFailure   func(reason string, err error)
}

// NewSession builds a Session bound to cfg and tr, using clock for all
// timing decisions and scheduling.
func NewSession(cfg *config.FixSessionConfig, tr transport.Transport, log *logging.Logger, met *metrics.Registry, clock Clock) *Session {
	fixCfg := fix.SessionConfig{
		BeginString:  string(cfg.FixVersion),
		SenderCompID: cfg.SenderCompID,
		TargetCompID: cfg.TargetCompID,
	}
	s := &Session{
		cfg:                 cfg,
		fixCfg:              fixCfg,
		tr:                  tr,
		disp:                NewDispatcher(log, met),
		writer:              fix.NewWriter(),
		parser:              fix.NewParser(fixCfg),
		sched:               NewScheduler(clock),
		clock:               clock,
		log:                 log,
		met:                 met,
		state:               StateIdle,
		outboundSeq:         1,
		heartbeatIntervalNs: cfg.HeartbeatInterval().Nanoseconds(),
		sendBuf:             make([]byte, defaultBufferSize),
		recvBuf:             make([]byte, defaultBufferSize),
	}
	s.disp.On(constants.MsgTypeLogon, s.onInboundLogon)
	s.disp.On(constants.MsgTypeTestRequest, s.onInboundTestRequest)
	s.disp.On(constants.MsgTypeResendRequest, s.onInboundResendRequest)
	s.disp.On(constants.MsgTypeSequenceReset, s.onInboundSequenceReset)
	s.disp.On(constants.MsgTypeLogout, s.onInboundLogout)
	return s
}

// State returns the session's current lifecycle state.
func (s *Session) State() State { return s.state }

// SetConnectedListener installs the callback fired instead of an
// automatic Logon send once the transport handshake completes.
func (s *Session) SetConnectedListener(f func()) { s.onConnected = f }

// SetLogoutListener installs the callback fired when an inbound Logout is
// delivered.
func (s *Session) SetLogoutListener(f func(reason string)) { s.onLogout = f }

// SetFailureListener installs the callback fired on transport failure,
// connect timeout, or an internal liveness failure.
func (s *Session) SetFailureListener(f func(reason string, err error)) { s.onFailure = f }

// Connect dials address. Valid only from IDLE; cancels any outstanding
// reconnect task, arms the connect timeout, and starts the transport.
func (s *Session) Connect(address string) error {
	if s.state != StateIdle {
		return fmt.Errorf("fixsession: connect called in state %s, want IDLE", s.state)
	}
	s.address = address
	s.sched.Cancel(taskReconnect)
	s.sched.ScheduleIn(s.cfg.ConnectTimeout(), taskConnectTimeout, s.onConnectTimeout)

	s.tr.SetListener(transport.Listener{
		OnConnect:           s.onTransportConnected,
		OnHandshakeComplete: s.onTransportHandshakeComplete,
		OnRead:              s.onTransportReadable,
		OnFailure:           s.onTransportFailure,
	})
	s.state = StateConnecting
	if err := s.tr.Connect(address); err != nil {
		s.failAndMaybeReconnect("connect failed", err)
		return err
	}
	return nil
}

// Close tears the session down unconditionally: cancels heartbeat and
// connect-timeout tasks and closes the transport, without scheduling a
// reconnect.
func (s *Session) Close() {
	s.sched.Cancel(taskHeartbeat)
	s.sched.Cancel(taskConnectTimeout)
	s.sched.Cancel(taskReconnect)
	s.tr.Close()
	s.state = StateIdle
}

func (s *Session) onTransportConnected() {
	if s.state != StateConnecting {
		return
	}
	s.log.Infof(s.clock.NowNs(), "fixsession: transport connected, awaiting handshake")
}

func (s *Session) onTransportHandshakeComplete() {
	if s.state != StateConnecting {
		return
	}
	if s.cfg.ResetSeqNum {
		s.outboundSeq = 1
	}
	s.disp.Logoff(s.cfg.ResetSeqNum)
	s.state = StateHandshaking

	if s.onConnected == nil {
		s.sendLogon()
	} else {
		s.onConnected()
	}
}

func (s *Session) onTransportReadable() {
	n, err := s.tr.Read(s.recvBuf, s.recvLen, len(s.recvBuf)-s.recvLen)
	if err != nil {
		s.failAndMaybeReconnect("transport read failed", err)
		return
	}
	s.recvLen += n

	for {
		view, consumed, err := s.parser.Parse(s.recvBuf, 0, s.recvLen)
		if err != nil {
			s.failAndMaybeReconnect("FIX frame malformed", err)
			return
		}
		if consumed == 0 {
			break
		}
		s.disp.Dispatch(view, s.clock.NowNs())
		remaining := s.recvLen - consumed
		copy(s.recvBuf[0:], s.recvBuf[consumed:s.recvLen])
		s.recvLen = remaining
	}
}

func (s *Session) onTransportFailure(reason string, err error) {
	s.failAndMaybeReconnect(reason, err)
}

func (s *Session) onConnectTimeout() {
	s.failAndMaybeReconnect("connect timeout", nil)
}

// failAndMaybeReconnect implements the "transport failure / connect_timeout
// / close()" row: cancel heartbeat and connect-timeout tasks, log, close
// the transport, optionally schedule a reconnect, and move to IDLE.
func (s *Session) failAndMaybeReconnect(reason string, err error) {
	s.sched.Cancel(taskHeartbeat)
	s.sched.Cancel(taskConnectTimeout)
	s.log.Errorf(s.clock.NowNs(), "fixsession: %s: %v", reason, err)
	s.tr.Close()
	s.state = StateIdle
	if s.cfg.ReconnectEnabled {
		if s.met != nil {
			s.met.Reconnects.Inc()
		}
		s.sched.ScheduleIn(s.cfg.ReconnectTimeout(), taskReconnect, s.onReconnectTick)
	}
	if s.onFailure != nil {
		s.onFailure(reason, err)
	}
}

func (s *Session) onReconnectTick() {
	if s.state != StateIdle {
		return
	}
	s.Connect(s.address)
}

func (s *Session) onInboundLogon(msg *fix.MessageView) {
	if s.state != StateHandshaking {
		s.log.Warnf(s.clock.NowNs(), "fixsession: unexpected Logon in state %s", s.state)
		return
	}

	counterpartySeq := msg.AsInteger(constants.TagMsgSeqNum)
	if counterpartySeq > s.disp.InboundSeq() {
		s.sendResendRequest(s.disp.InboundSeq(), counterpartySeq-1)
	}

	hb := msg.AsInteger(constants.TagHeartBtInt)
	if hb > 0 {
		s.heartbeatIntervalNs = hb * int64(time.Second)
	}

	tick := time.Duration(s.heartbeatIntervalNs) / 2
	if tick < time.Second {
		tick = time.Second
	}
	s.sched.ScheduleEvery(tick, taskHeartbeat, s.onHeartbeatTick)
	s.sched.Cancel(taskConnectTimeout)
	s.disp.Logon()
	s.state = StateLoggedIn
}

func (s *Session) onInboundTestRequest(msg *fix.MessageView) {
	i := msg.Get(constants.TagTestReqID)
	var testReqID string
	if i >= 0 {
		testReqID = string(msg.ValueAt(i))
	}
	s.sendHeartbeat(testReqID)
}

func (s *Session) onInboundResendRequest(msg *fix.MessageView) {
	endSeqNo := msg.AsInteger(constants.TagEndSeqNo)
	newSeqNo := s.outboundSeq
	if endSeqNo > 0 {
		newSeqNo = endSeqNo
	}
	s.sendSequenceReset(newSeqNo + 1)
}

func (s *Session) onInboundSequenceReset(msg *fix.MessageView) {
	newSeqNo := msg.AsInteger(constants.TagNewSeqNo)
	if newSeqNo > 0 {
		s.disp.inboundSeq = newSeqNo
	}
}

func (s *Session) onInboundLogout(msg *fix.MessageView) {
	reason := ""
	if i := msg.Get(constants.TagText); i >= 0 {
		reason = string(msg.ValueAt(i))
	}
	if s.onLogout != nil {
		s.onLogout(reason)
	}
	s.state = StateDisconnecting
	s.failAndMaybeReconnect("received Logout: "+reason, nil)
}

func (s *Session) onHeartbeatTick() {
	if s.state != StateLoggedIn {
		return
	}
	now := s.clock.NowNs()
	hb := s.heartbeatIntervalNs

	if now > s.lastOutboundNs+hb/2 {
		s.sendHeartbeat("")
	}
	if now > s.disp.LastInboundNs()+2*hb {
		s.failAndMaybeReconnect("no message received", nil)
		return
	}
	if s.cfg.SendTestRequests && now > s.disp.LastInboundNs()+hb {
		s.sendTestRequest()
	}
}

func (s *Session) sendLogon() {
	s.writeMessage(constants.MsgTypeLogon, func(w *fix.Writer) {
		w.PutInteger(constants.TagHeartBtInt, int64(s.cfg.HeartbeatIntervalSeconds))
		w.PutEnum(constants.TagEncryptMethod, constants.EncryptMethodNone)
	})
}

func (s *Session) sendHeartbeat(testReqID string) {
	s.writeMessage(constants.MsgTypeHeartbeat, func(w *fix.Writer) {
		if testReqID != "" {
			w.PutASCIIString(constants.TagTestReqID, testReqID)
		}
	})
	if s.met != nil {
		s.met.HeartbeatsSent.Inc()
	}
}

func (s *Session) sendTestRequest() {
	testReqID := fmt.Sprintf("%d", s.clock.NowNs())
	s.writeMessage(constants.MsgTypeTestRequest, func(w *fix.Writer) {
		w.PutASCIIString(constants.TagTestReqID, testReqID)
	})
}

func (s *Session) sendResendRequest(beginSeqNo, endSeqNo int64) {
	s.writeMessage(constants.MsgTypeResendRequest, func(w *fix.Writer) {
		w.PutInteger(constants.TagBeginSeqNo, beginSeqNo)
		w.PutInteger(constants.TagEndSeqNo, endSeqNo)
	})
}

func (s *Session) sendSequenceReset(newSeqNo int64) {
	s.writeMessage(constants.MsgTypeSequenceReset, func(w *fix.Writer) {
		w.PutASCIICharacter(constants.TagGapFillFlag, 'Y')
		w.PutInteger(constants.TagNewSeqNo, newSeqNo)
	})
}

// On registers the listener invoked for inbound application-level
// messages of an exact MsgType, alongside the session's own admin-message
// listeners (Logon/Heartbeat/TestRequest/ResendRequest/SequenceReset/Logout
// remain reserved and cannot be overridden this way).
func (s *Session) On(msgType string, l MessageListener) {
	switch msgType {
	case constants.MsgTypeLogon, constants.MsgTypeHeartbeat, constants.MsgTypeTestRequest,
		constants.MsgTypeResendRequest, constants.MsgTypeSequenceReset, constants.MsgTypeLogout:
		return
	}
	s.disp.On(msgType, l)
}

// OnUnhandled registers the listener invoked for an accepted frame whose
// MsgType has no registered listener.
func (s *Session) OnUnhandled(l MessageListener) { s.disp.OnUnhandled(l) }

// SendApp sends an application-level message (new order, cancel, quote
// request, market data request, ...) through the same sequencing,
// transport write, and metrics path used for session-level admin
// messages. fields must not call w.Start; the header is already built.
func (s *Session) SendApp(msgType string, fields func(w *fix.Writer)) error {
	if s.state != StateLoggedIn {
		return fmt.Errorf("fixsession: SendApp called in state %s, want LOGGED_IN", s.state)
	}
	s.writeMessage(msgType, fields)
	return nil
}

// writeMessage builds one outbound frame via fields, using the next
// outbound sequence number, and writes it to the transport, also
// recording last_outbound_ns and bumping the metric for this MsgType.
func (s *Session) writeMessage(msgType string, fields func(w *fix.Writer)) {
	now := s.clock.NowNs()
	s.writer.Start(s.sendBuf, 0, s.fixCfg, msgType, s.outboundSeq, now)
	fields(s.writer)
	s.writer.Send(func(buf []byte, off, length int) {
		s.tr.Write(buf, off, length)
	})
	s.outboundSeq++
	s.lastOutboundNs = now
	if s.met != nil {
		s.met.OutboundMessages.WithLabelValues(msgType).Inc()
	}
}
