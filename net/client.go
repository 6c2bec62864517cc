package net

import (
	"context"
	"fmt"
	"net"
	"time"

	"p2p-chat/core"
)

// DefaultDialTimeout bounds how long connecting to a seed peer may take
const DefaultDialTimeout = 5 * time.Second

// Transport opens the listening socket and outbound connections of a node
type Transport interface {
	Listen(addr string) (net.Listener, error)
	Dial(ctx context.Context, addr string) (net.Conn, error)
}

// TCPTransport carries frames directly over TCP
type TCPTransport struct {
	DialTimeout time.Duration
}

// Listen opens a TCP listener; port 0 lets the OS choose
func (t TCPTransport) Listen(addr string) (net.Listener, error) {
	return net.Listen("tcp", addr)
}

// Dial connects to a remote node over TCP
func (t TCPTransport) Dial(ctx context.Context, addr string) (net.Conn, error) {
	dialer := net.Dialer{Timeout: t.DialTimeout}
	return dialer.DialContext(ctx, "tcp", addr)
}

// Connect dials a remote node and starts a session for the new connection
func (n *Node) Connect(ctx context.Context, remoteAddr string) (*core.Peer, error) {
	n.log.Info("Connecting to peer", "addr", remoteAddr)

	conn, err := n.transport.Dial(ctx, remoteAddr)
	if err != nil {
		return nil, fmt.Errorf("%w: connecting to %s: %w", core.ErrIO, remoteAddr, err)
	}

	return n.startSession(conn, "outbound"), nil
}
