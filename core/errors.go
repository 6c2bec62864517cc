package core

import "errors"

var (
	// ErrIO wraps every read or write failure on a peer connection, including a clean close by the peer.
	ErrIO = errors.New("core: connection i/o failure")

	// ErrFrameTooLarge - the declared or requested frame length exceeds MaxMessageSize.
	ErrFrameTooLarge = errors.New("core: frame exceeds maximum message size")

	// ErrMissingDelimiter - a chat payload has no "username:" prefix.
	ErrMissingDelimiter = errors.New("core: message has no sender delimiter")

	// ErrPeerNotFound - the peer is not (or no longer) in the list.
	ErrPeerNotFound = errors.New("core: peer not registered")

	// ErrPeerClosed - send attempted on a peer whose connection was already closed.
	ErrPeerClosed = errors.New("core: peer connection closed")
)
