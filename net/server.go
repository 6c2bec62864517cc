package net

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"sync"
	"sync/atomic"

	"p2p-chat/common"
	"p2p-chat/core"
)

// ErrNotListening - Serve was called before Listen
var ErrNotListening = errors.New("net.Node: listener not open")

// Node is one chat process: it accepts inbound peers, dials outbound ones and owns their sessions
type Node struct {
	username  string
	transport Transport
	peers     *core.PeerList
	display   common.Display
	log       *slog.Logger

	mu       sync.Mutex
	listener net.Listener
	closed   atomic.Bool
	sessions sync.WaitGroup
}

type nodeOption func(n *Node) error

// WithTransport replaces the default TCP transport
func WithTransport(t Transport) nodeOption {
	return func(n *Node) error {
		if t == nil {
			return errors.New("net.WithTransport: nil transport")
		}
		n.transport = t
		return nil
	}
}

// WithLogger attaches a structured logger; logging is discarded otherwise
func WithLogger(log *slog.Logger) nodeOption {
	return func(n *Node) error {
		if log == nil {
			return errors.New("net.WithLogger: nil logger")
		}
		n.log = log
		return nil
	}
}

// NewNode builds a node for the given local username
func NewNode(username string, display common.Display, options ...nodeOption) (*Node, error) {
	if !core.ValidUsername(username) {
		return nil, fmt.Errorf("net.NewNode: invalid username %q", username)
	}
	if display == nil {
		return nil, errors.New("net.NewNode: nil display")
	}
	n := &Node{
		username:  username,
		transport: TCPTransport{DialTimeout: DefaultDialTimeout},
		peers:     core.NewPeerList(),
		display:   display,
		log:       slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, option := range options {
		if option == nil {
			continue
		}
		if err := option(n); err != nil {
			return nil, err
		}
	}
	return n, nil
}

// Username returns the local identity
func (n *Node) Username() string {
	return n.username
}

// Peers returns the list of connected peers
func (n *Node) Peers() *core.PeerList {
	return n.peers
}

// Listen opens the listening socket and returns the port actually bound
func (n *Node) Listen(addr string) (int, error) {
	listener, err := n.transport.Listen(addr)
	if err != nil {
		return 0, fmt.Errorf("net.Node: listen on %s: %w", addr, err)
	}

	n.mu.Lock()
	n.listener = listener
	n.mu.Unlock()

	port := 0
	if tcpAddr, ok := listener.Addr().(*net.TCPAddr); ok {
		port = tcpAddr.Port
	}
	n.log.Info("Listening", "addr", listener.Addr().String(), "port", port)
	return port, nil
}

// Addr returns the listening address, nil before Listen
func (n *Node) Addr() net.Addr {
	n.mu.Lock()
	defer n.mu.Unlock()
	if n.listener == nil {
		return nil
	}
	return n.listener.Addr()
}

// Serve accepts inbound peers until ctx is cancelled. Any other accept failure is returned
// and is meant to stop the process.
func (n *Node) Serve(ctx context.Context) error {
	n.mu.Lock()
	listener := n.listener
	n.mu.Unlock()
	if listener == nil {
		return ErrNotListening
	}

	stop := context.AfterFunc(ctx, func() { listener.Close() })
	defer stop()

	for {
		conn, err := listener.Accept()
		if err != nil {
			if ctx.Err() != nil || n.closed.Load() {
				return nil
			}
			return fmt.Errorf("net.Node: accept failed: %w", err)
		}
		n.startSession(conn, "inbound")
	}
}

// startSession registers conn and runs its session in the background
func (n *Node) startSession(conn net.Conn, direction string) *core.Peer {
	peer := n.peers.AddPeer(conn)
	n.log.Info("Peer connected", "peer", peer.ID, "addr", peer.Addr, "direction", direction)
	n.display.Display(common.LabelConnected, peer.Addr)

	session := NewSession(peer, n.peers, n.display, n.log)
	n.sessions.Add(1)
	go func() {
		defer n.sessions.Done()
		session.Run()
	}()
	return peer
}

// Close stops accepting and drops every peer without waiting for the sessions
func (n *Node) Close() {
	n.closed.Store(true)
	n.mu.Lock()
	if n.listener != nil {
		n.listener.Close()
	}
	n.mu.Unlock()
	n.peers.Close()
}

// Shutdown closes the node and waits until every session has terminated
func (n *Node) Shutdown() {
	n.Close()
	n.sessions.Wait()
}
