package cli

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/olekukonko/tablewriter"

	"p2p-chat/common"
	"p2p-chat/core"
)

const (
	cmdQuit      = ":quit"
	cmdQuitShort = ":q"
	cmdPeers     = ":peers"
	cmdHelp      = ":help"
)

// Dispatcher handles the lines typed locally: control commands, or chat messages
// sent to every connected peer.
type Dispatcher struct {
	username string
	peers    common.PeerSet
	display  common.Display
	quit     func()
	log      *slog.Logger
}

// NewDispatcher builds the dispatcher for username; quit is called once the user asks to leave
func NewDispatcher(username string, peers common.PeerSet, display common.Display, quit func(), log *slog.Logger) *Dispatcher {
	return &Dispatcher{
		username: username,
		peers:    peers,
		display:  display,
		quit:     quit,
		log:      log,
	}
}

// Run consumes lines until the channel closes, ctx is cancelled or a quit command is typed.
// It is the only consumer of the UI's input.
func (d *Dispatcher) Run(ctx context.Context, lines <-chan string) {
	for {
		select {
		case <-ctx.Done():
			return
		case line, ok := <-lines:
			if !ok {
				return
			}
			if stop := d.HandleInput(line); stop {
				return
			}
		}
	}
}

// HandleInput processes one typed line and reports whether the dispatcher must stop
func (d *Dispatcher) HandleInput(text string) bool {
	switch {
	case text == cmdQuit || text == cmdQuitShort:
		d.log.Info("Quit requested")
		d.quit()
		return true

	case text == cmdHelp:
		d.ShowHelp()

	case text == cmdPeers:
		d.ShowPeers()

	case strings.TrimSpace(text) == "":
		// nothing to send

	default:
		d.send(text)
	}
	return false
}

// send broadcasts text to every peer then echoes it locally
func (d *Dispatcher) send(text string) {
	if len(text) > core.MaxMessageSize {
		d.display.Display(common.LabelWarning,
			fmt.Sprintf("message not sent: longer than %d bytes", core.MaxMessageSize))
		return
	}

	payload := core.NewMessage(d.username, text).Encode()
	if len(payload) > core.MaxMessageSize {
		d.display.Display(common.LabelWarning,
			fmt.Sprintf("message not sent: with your name it exceeds %d bytes", core.MaxMessageSize))
		return
	}

	sent, err := d.peers.Broadcast(payload, nil)
	if err != nil {
		d.log.Warn("Broadcast incomplete", "sent", sent, "error", err)
	}
	d.log.Debug("Message sent", "peers", sent, "bytes", len(payload))
	d.display.Display(d.username, text)
}

// ShowHelp lists the available commands
func (d *Dispatcher) ShowHelp() {
	d.display.Display(common.LabelInfo, "Available commands:")
	d.display.Display(common.LabelInfo, "  :peers       - list connected peers")
	d.display.Display(common.LabelInfo, "  :help        - show this help")
	d.display.Display(common.LabelInfo, "  :quit or :q  - leave the chat")
	d.display.Display(common.LabelInfo, "Anything else is sent to every connected peer.")
}

// ShowPeers renders the connected peers as a table
func (d *Dispatcher) ShowPeers() {
	peers := d.peers.GetActivePeers()
	if len(peers) == 0 {
		d.display.Display(common.LabelInfo, "no peer connected")
		return
	}

	var buf bytes.Buffer
	table := tablewriter.NewWriter(&buf)
	table.SetHeader([]string{"ID", "Address", "Connected at"})
	table.SetHeaderAlignment(tablewriter.ALIGN_LEFT)
	table.SetAlignment(tablewriter.ALIGN_LEFT)
	for _, p := range peers {
		table.Append([]string{p.ID.String(), p.Addr, p.ConnectedAt.Format("15:04:05")})
	}
	table.Render()

	for _, line := range strings.Split(strings.TrimRight(buf.String(), "\n"), "\n") {
		d.display.Display(common.LabelInfo, line)
	}
}
