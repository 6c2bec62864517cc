package net

import (
	"errors"
	"fmt"
	"io"
	"log/slog"

	"p2p-chat/common"
	"p2p-chat/core"
)

// Session serves one connected peer: every frame received is relayed to the other peers
// and shown locally. It ends on the first read error.
type Session struct {
	peer    *core.Peer
	peers   *core.PeerList
	display common.Display
	log     *slog.Logger
}

// NewSession binds a registered peer to the list it must relay to
func NewSession(peer *core.Peer, peers *core.PeerList, display common.Display, log *slog.Logger) *Session {
	return &Session{
		peer:    peer,
		peers:   peers,
		display: display,
		log:     log.With("peer", peer.ID.String(), "addr", peer.Addr),
	}
}

// Run blocks until the peer disconnects or violates the framing
func (s *Session) Run() {
	for {
		payload, err := s.peer.Receive()
		if err != nil {
			s.terminate(err)
			return
		}

		if _, err := s.peers.Broadcast(payload, s.peer); err != nil {
			s.log.Warn("Relay incomplete", "error", err)
		}

		msg, err := core.ParseMessage(payload)
		if err != nil {
			s.log.Warn("Malformed message", "error", err)
			s.display.Display(common.LabelWarning, fmt.Sprintf("malformed message from %s", s.peer.Addr))
			continue
		}
		s.display.Display(msg.From, msg.Text)
	}
}

// terminate unregisters the peer before its connection is released
func (s *Session) terminate(cause error) {
	switch {
	case errors.Is(cause, io.EOF):
		s.log.Info("Peer closed the connection")
	case errors.Is(cause, core.ErrFrameTooLarge):
		s.log.Warn("Protocol violation, dropping peer", "error", cause)
	default:
		s.log.Warn("Connection lost", "error", cause)
	}

	if err := s.peers.RemovePeer(s.peer); err != nil {
		s.log.Debug("Peer already removed", "error", err)
	}
	s.peer.Close()
	s.display.Display(common.LabelDisconnected, s.peer.Addr)
}
