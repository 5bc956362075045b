package fixsession

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"prime-fix-engine-go/config"
	"prime-fix-engine-go/constants"
	"prime-fix-engine-go/fix"
	"prime-fix-engine-go/logging"
	"prime-fix-engine-go/metrics"
	"prime-fix-engine-go/transport"
)

func testConfig() *config.FixSessionConfig {
	return &config.FixSessionConfig{
		FixVersion:               config.FIX42,
		SenderCompID:             "CLIENT",
		TargetCompID:             "PRIME",
		HeartbeatIntervalSeconds: 30,
		ResetSeqNum:              true,
		ConnectTimeoutNs:         int64(5 * time.Second),
		ReconnectTimeoutNs:       int64(5 * time.Second),
	}
}

func newTestSession(t *testing.T, tr transport.Transport, clock Clock) *Session {
	t.Helper()
	log := logging.NewFactory().For("test-session")
	met := metrics.NewNoop()
	return NewSession(testConfig(), tr, log, met, clock)
}

func TestDispatcherRejectsStaleSeq(t *testing.T) {
	d := NewDispatcher(logging.NewFactory().For("d"), metrics.NewNoop())
	buf := make([]byte, 256)
	w := fix.NewWriter()
	fixCfg := fix.SessionConfig{BeginString: "FIX.4.2", SenderCompID: "PRIME", TargetCompID: "CLIENT"}
	w.Start(buf, 0, fixCfg, constants.MsgTypeLogon, 1, 0)
	var frame []byte
	w.Send(func(b []byte, off, length int) { frame = append([]byte(nil), b[off:off+length]...) })

	p := fix.NewParser(fix.SessionConfig{BeginString: "FIX.4.2", SenderCompID: "CLIENT", TargetCompID: "PRIME"})
	view, consumed, err := p.Parse(frame, 0, len(frame))
	require.NoError(t, err)
	require.Greater(t, consumed, 0)

	ok := d.Dispatch(view, 100)
	require.True(t, ok)
	require.Equal(t, int64(2), d.InboundSeq())

	ok = d.Dispatch(view, 200)
	require.False(t, ok)
}

// serverRig drains a transport's inbound bytes into parsed frames and lets
// the test write raw FIX frames back, standing in for the counterparty
// side of the handshake without a real socket.
type serverRig struct {
	tr     *transport.TCPTransport
	cfg    fix.SessionConfig
	parser *fix.Parser
	buf    []byte
	frames chan *fix.MessageView
	seq    int64
}

func newServerRig(tr *transport.TCPTransport) *serverRig {
	r := &serverRig{
		tr:     tr,
		cfg:    fix.SessionConfig{BeginString: "FIX.4.2", SenderCompID: "PRIME", TargetCompID: "CLIENT"},
		frames: make(chan *fix.MessageView, 8),
		seq:    1,
	}
	r.parser = fix.NewParser(r.cfg)
	tr.SetListener(transport.Listener{OnRead: r.drain})
	tr.Connect("ignored")
	return r
}

func (r *serverRig) drain() {
	tmp := make([]byte, 4096)
	n, _ := r.tr.Read(tmp, 0, len(tmp))
	r.buf = append(r.buf, tmp[:n]...)
	for {
		view, consumed, err := r.parser.Parse(r.buf, 0, len(r.buf))
		if err != nil || consumed == 0 {
			break
		}
		r.frames <- view
		r.buf = append([]byte(nil), r.buf[consumed:]...)
	}
}

func (r *serverRig) send(msgType string, nowNs int64, fields func(w *fix.Writer)) {
	serverCfg := fix.SessionConfig{BeginString: "FIX.4.2", SenderCompID: "PRIME", TargetCompID: "CLIENT"}
	w := fix.NewWriter()
	buf := make([]byte, 4096)
	w.Start(buf, 0, serverCfg, msgType, r.seq, nowNs)
	if fields != nil {
		fields(w)
	}
	w.Send(func(b []byte, off, length int) { r.tr.Write(b, off, length) })
	r.seq++
}

func waitFrame(t *testing.T, ch chan *fix.MessageView) *fix.MessageView {
	t.Helper()
	select {
	case v := <-ch:
		return v
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for frame")
		return nil
	}
}

func TestSessionHandshakeReachesLoggedIn(t *testing.T) {
	clock := NewFakeClock(0)
	clientTr, serverTr := transport.NewPipeTransportPair()
	defer clientTr.Close()
	defer serverTr.Close()

	rig := newServerRig(serverTr)
	s := newTestSession(t, clientTr, clock)

	require.NoError(t, s.Connect("ignored"))
	require.Equal(t, StateHandshaking, s.State())

	logonFrame := waitFrame(t, rig.frames)
	require.Equal(t, constants.MsgTypeLogon, string(logonFrame.ValueAt(logonFrame.Get(constants.TagMsgType))))

	rig.send(constants.MsgTypeLogon, clock.NowNs(), func(w *fix.Writer) {
		w.PutInteger(constants.TagHeartBtInt, 30)
	})

	require.Eventually(t, func() bool { return s.State() == StateLoggedIn }, time.Second, time.Millisecond)
	require.True(t, s.disp.IsLoggedOn())
}

func TestSessionRespondsToTestRequestWithHeartbeat(t *testing.T) {
	clock := NewFakeClock(0)
	clientTr, serverTr := transport.NewPipeTransportPair()
	defer clientTr.Close()
	defer serverTr.Close()

	rig := newServerRig(serverTr)
	s := newTestSession(t, clientTr, clock)
	require.NoError(t, s.Connect("ignored"))
	waitFrame(t, rig.frames) // Logon

	rig.send(constants.MsgTypeLogon, clock.NowNs(), func(w *fix.Writer) {
		w.PutInteger(constants.TagHeartBtInt, 30)
	})
	require.Eventually(t, func() bool { return s.State() == StateLoggedIn }, time.Second, time.Millisecond)

	rig.send(constants.MsgTypeTestRequest, clock.NowNs(), func(w *fix.Writer) {
		w.PutASCIIString(constants.TagTestReqID, "ping-1")
	})

	hb := waitFrame(t, rig.frames)
	require.Equal(t, constants.MsgTypeHeartbeat, string(hb.ValueAt(hb.Get(constants.TagMsgType))))
	require.Equal(t, "ping-1", string(hb.ValueAt(hb.Get(constants.TagTestReqID))))
}

func TestFakeClockFiresTimersInDeadlineOrder(t *testing.T) {
	clock := NewFakeClock(0)
	var order []int
	clock.AfterFunc(30*time.Millisecond, func() { order = append(order, 2) })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	clock.AfterFunc(10*time.Millisecond, func() { order = append(order, 1) })
	clock.Advance(50 * time.Millisecond)
	require.Equal(t, []int{1, 1, 2}, order)
}

func TestSchedulerCancelStopsScheduledTask(t *testing.T) {
	clock := NewFakeClock(0)
	sched := NewScheduler(clock)
	fired := false
	sched.ScheduleIn(10*time.Millisecond, "task", func() { fired = true })
	sched.Cancel("task")
	clock.Advance(20 * time.Millisecond)
	require.False(t, fired)
}
