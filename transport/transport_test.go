package transport

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestPipeTransportRoundTrip(t *testing.T) {
	a, b := NewPipeTransportPair()
	defer a.Close()
	defer b.Close()

	readCh := make(chan struct{}, 1)
	b.SetListener(Listener{OnRead: func() { readCh <- struct{}{} }})
	a.SetListener(Listener{})
	require.NoError(t, a.Connect("ignored"))
	require.NoError(t, b.Connect("ignored"))

	require.True(t, a.IsConnected())
	require.True(t, b.IsHandshakeComplete())

	n, err := a.Write([]byte("hello"), 0, 5)
	require.NoError(t, err)
	require.Equal(t, 5, n)

	select {
	case <-readCh:
	case <-time.After(time.Second):
		t.Fatal("timed out waiting for OnRead")
	}

	dst := make([]byte, 16)
	n, err = b.Read(dst, 0, len(dst))
	require.NoError(t, err)
	require.Equal(t, "hello", string(dst[:n]))
}

func TestCloseMarksDisconnected(t *testing.T) {
	a, b := NewPipeTransportPair()
	defer b.Close()
	require.NoError(t, a.Close())
	require.False(t, a.IsConnected())
}
