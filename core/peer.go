package core

import (
	"errors"
	"fmt"
	"net"
	"sync"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

// Peer represents a connected node
type Peer struct {
	ID          uuid.UUID
	Addr        string
	ConnectedAt time.Time

	conn      net.Conn
	sendMu    sync.Mutex
	closed    atomic.Bool
	closeOnce sync.Once
}

// NewPeer wraps an established connection
func NewPeer(conn net.Conn) *Peer {
	addr := ""
	if remote := conn.RemoteAddr(); remote != nil {
		addr = remote.String()
	}
	return &Peer{
		ID:          uuid.New(),
		Addr:        addr,
		ConnectedAt: time.Now().UTC(),
		conn:        conn,
	}
}

// Send writes one frame to the peer. Sends to the same peer are serialized so frames never interleave.
func (p *Peer) Send(payload []byte) error {
	if p.closed.Load() {
		return ErrPeerClosed
	}
	p.sendMu.Lock()
	defer p.sendMu.Unlock()
	return WriteFrame(p.conn, payload)
}

// Receive blocks until the next frame from the peer arrives.
// Only the session owning the peer may call it.
func (p *Peer) Receive() ([]byte, error) {
	return ReadFrame(p.conn)
}

// Close releases the connection. Safe to call more than once.
func (p *Peer) Close() error {
	var err error
	p.closeOnce.Do(func() {
		p.closed.Store(true)
		err = p.conn.Close()
	})
	return err
}

// String identifies the peer in logs and display lines
func (p *Peer) String() string {
	return fmt.Sprintf("%s (%s)", p.Addr, p.ID.String()[:8])
}

// PeerList keeps the connected peers in arrival order
type PeerList struct {
	mu    sync.Mutex
	peers []*Peer
}

// NewPeerList creates an empty peer list
func NewPeerList() *PeerList {
	return &PeerList{}
}

// AddPeer registers conn and returns the handle used to remove it later
func (pl *PeerList) AddPeer(conn net.Conn) *Peer {
	peer := NewPeer(conn)
	pl.mu.Lock()
	defer pl.mu.Unlock()
	pl.peers = append(pl.peers, peer)
	return peer
}

// RemovePeer unregisters peer and compacts the list
func (pl *PeerList) RemovePeer(peer *Peer) error {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	if !lo.Contains(pl.peers, peer) {
		return fmt.Errorf("%w: %s", ErrPeerNotFound, peer)
	}
	pl.peers = lo.Without(pl.peers, peer)
	return nil
}

// GetActivePeers returns a copy of the registered peers
func (pl *PeerList) GetActivePeers() []*Peer {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return append([]*Peer(nil), pl.peers...)
}

// Len returns the number of registered peers
func (pl *PeerList) Len() int {
	pl.mu.Lock()
	defer pl.mu.Unlock()
	return len(pl.peers)
}

// Broadcast sends payload to every registered peer except the given one (nil excludes nobody).
// The recipients are snapshotted under the lock and sent to outside it; failures are
// best effort and reported together, the returned count is the number of successful sends.
func (pl *PeerList) Broadcast(payload []byte, except *Peer) (int, error) {
	pl.mu.Lock()
	recipients := lo.Filter(pl.peers, func(p *Peer, _ int) bool {
		return p != except
	})
	pl.mu.Unlock()

	sent := 0
	var errs []error
	for _, peer := range recipients {
		if err := peer.Send(payload); err != nil {
			errs = append(errs, fmt.Errorf("sending to %s: %w", peer, err))
			continue
		}
		sent++
	}
	return sent, errors.Join(errs...)
}

// Close closes every peer connection and empties the list
func (pl *PeerList) Close() {
	pl.mu.Lock()
	peers := pl.peers
	pl.peers = nil
	pl.mu.Unlock()

	for _, peer := range peers {
		peer.Close()
	}
}
