//go:generate go run go.uber.org/mock/mockgen -source=types.go -destination=../mocks/mock_types.go -package=mocks
package common

import "p2p-chat/core"

// Display labels shared by the node and the terminal
const (
	LabelInfo         = "INFO"
	LabelWarning      = "WARNING"
	LabelError        = "ERROR"
	LabelConnected    = "CONNECTED"
	LabelDisconnected = "DISCONNECTED"
)

// Display renders one line for the operator: a label (status tag or sender name) and its text.
// Implementations must accept calls from any goroutine.
type Display interface {
	Display(label, text string)
}

// PeerSet is the part of the peer list used to fan messages out
type PeerSet interface {
	Broadcast(payload []byte, except *core.Peer) (int, error)
	GetActivePeers() []*core.Peer
}
