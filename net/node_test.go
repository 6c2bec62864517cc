package net

import (
	"context"
	"encoding/binary"
	"log/slog"
	"net"
	"sync"
	"testing"
	"time"

	"github.com/mama165/sdk-go/logs"
	"github.com/stretchr/testify/require"

	"p2p-chat/common"
	"p2p-chat/core"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

type displayed struct {
	label string
	text  string
}

// recorder is a Display keeping every line it was given
type recorder struct {
	mu    sync.Mutex
	lines []displayed
}

func (r *recorder) Display(label, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.lines = append(r.lines, displayed{label, text})
}

func (r *recorder) count(label, text string) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	n := 0
	for _, l := range r.lines {
		if l.label == label && (text == "" || l.text == text) {
			n++
		}
	}
	return n
}

func startNode(t *testing.T, username string, transport Transport) (*Node, *recorder) {
	t.Helper()
	req := require.New(t)
	rec := &recorder{}
	node, err := NewNode(username, rec,
		WithLogger(logs.GetLoggerFromLevel(slog.LevelDebug)),
		WithTransport(transport),
	)
	req.NoError(err)

	port, err := node.Listen("127.0.0.1:0")
	req.NoError(err)
	req.NotZero(port)

	ctx, cancel := context.WithCancel(context.Background())
	served := make(chan error, 1)
	go func() { served <- node.Serve(ctx) }()
	t.Cleanup(func() {
		cancel()
		node.Shutdown()
		req.NoError(<-served)
	})
	return node, rec
}

func tcp() Transport {
	return TCPTransport{DialTimeout: time.Second}
}

func TestNode_Flood_Chain(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()

	// Given a chain A - B - C
	a, recA := startNode(t, "alice", tcp())
	b, recB := startNode(t, "bob", tcp())
	c, recC := startNode(t, "carol", tcp())

	_, err := a.Connect(ctx, b.Addr().String())
	req.NoError(err)
	_, err = c.Connect(ctx, b.Addr().String())
	req.NoError(err)
	req.Eventually(func() bool {
		return a.Peers().Len() == 1 && b.Peers().Len() == 2 && c.Peers().Len() == 1
	}, waitFor, tick)

	// When A sends a message to its peers
	sent, err := a.Peers().Broadcast(core.NewMessage("alice", "hello mesh").Encode(), nil)
	req.NoError(err)
	req.Equal(1, sent)

	// Then B displays it directly and C through B's relay
	req.Eventually(func() bool { return recB.count("alice", "hello mesh") == 1 }, waitFor, tick)
	req.Eventually(func() bool { return recC.count("alice", "hello mesh") == 1 }, waitFor, tick)

	// And A never gets its own message back
	time.Sleep(100 * time.Millisecond)
	req.Zero(recA.count("alice", ""))
	req.Equal(1, recC.count("alice", "hello mesh"))
}

func TestNode_Disconnection(t *testing.T) {
	req := require.New(t)
	ctx := context.Background()
	a, _ := startNode(t, "alice", tcp())
	b, recB := startNode(t, "bob", tcp())

	// Given A connected to B
	_, err := a.Connect(ctx, b.Addr().String())
	req.NoError(err)
	req.Eventually(func() bool { return b.Peers().Len() == 1 }, waitFor, tick)
	req.Equal(1, recB.count(common.LabelConnected, ""))

	// When A goes away
	a.Shutdown()

	// Then B removes it once and reports the disconnection
	req.Eventually(func() bool { return recB.count(common.LabelDisconnected, "") == 1 }, waitFor, tick)
	req.Zero(b.Peers().Len())

	// And later broadcasts no longer address it
	sent, err := b.Peers().Broadcast(core.NewMessage("bob", "anyone?").Encode(), nil)
	req.NoError(err)
	req.Zero(sent)

	time.Sleep(50 * time.Millisecond)
	req.Equal(1, recB.count(common.LabelDisconnected, ""))
}

func TestNode_OversizedFrame_DropsPeer(t *testing.T) {
	req := require.New(t)
	b, recB := startNode(t, "bob", tcp())

	conn, err := net.Dial("tcp", b.Addr().String())
	req.NoError(err)
	defer conn.Close()
	req.Eventually(func() bool { return b.Peers().Len() == 1 }, waitFor, tick)

	// When the peer declares a frame above the limit
	var header [8]byte
	binary.LittleEndian.PutUint64(header[:], core.MaxMessageSize+1)
	_, err = conn.Write(header[:])
	req.NoError(err)

	// Then its session ends and it is unregistered
	req.Eventually(func() bool { return recB.count(common.LabelDisconnected, "") == 1 }, waitFor, tick)
	req.Zero(b.Peers().Len())
}

func TestNode_MalformedMessage_SessionContinues(t *testing.T) {
	req := require.New(t)
	b, recB := startNode(t, "bob", tcp())

	conn, err := net.Dial("tcp", b.Addr().String())
	req.NoError(err)
	defer conn.Close()

	// When a payload without sender arrives, followed by a valid one
	req.NoError(core.WriteFrame(conn, []byte("no sender here")))
	req.NoError(core.WriteFrame(conn, []byte("eve:still talking")))

	// Then a warning is shown and the next message is still displayed
	req.Eventually(func() bool { return recB.count("eve", "still talking") == 1 }, waitFor, tick)
	req.Equal(1, recB.count(common.LabelWarning, ""))
	req.Equal(1, b.Peers().Len())
	req.Zero(recB.count(common.LabelDisconnected, ""))
}

func TestNode_Relay_ToOtherPeers(t *testing.T) {
	req := require.New(t)
	b, _ := startNode(t, "bob", tcp())

	sender, err := net.Dial("tcp", b.Addr().String())
	req.NoError(err)
	defer sender.Close()
	receiver, err := net.Dial("tcp", b.Addr().String())
	req.NoError(err)
	defer receiver.Close()
	req.Eventually(func() bool { return b.Peers().Len() == 2 }, waitFor, tick)

	req.NoError(core.WriteFrame(sender, []byte("dave:pass it on")))

	req.NoError(receiver.SetReadDeadline(time.Now().Add(waitFor)))
	payload, err := core.ReadFrame(receiver)
	req.NoError(err)
	req.Equal("dave:pass it on", string(payload))
}

func TestNode_Connect_Unreachable(t *testing.T) {
	req := require.New(t)
	a, _ := startNode(t, "alice", tcp())

	ln, err := net.Listen("tcp", "127.0.0.1:0")
	req.NoError(err)
	addr := ln.Addr().String()
	req.NoError(ln.Close())

	_, err = a.Connect(context.Background(), addr)

	req.ErrorIs(err, core.ErrIO)
	req.Zero(a.Peers().Len())
}

func TestNode_Serve_WithoutListen(t *testing.T) {
	req := require.New(t)
	node, err := NewNode("alice", &recorder{})
	req.NoError(err)

	req.ErrorIs(node.Serve(context.Background()), ErrNotListening)
}

func TestNewNode_InvalidUsername(t *testing.T) {
	req := require.New(t)

	_, err := NewNode("ali:ce", &recorder{})
	req.Error(err)

	_, err = NewNode("", &recorder{})
	req.Error(err)

	_, err = NewNode("alice", nil)
	req.Error(err)
}
