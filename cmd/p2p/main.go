// Command p2p runs one node of the flooded peer-to-peer chat.
//
//	p2p <username> [<peer-host> <peer-port>]
//
// The node listens on a port chosen by the OS (printed at startup), optionally
// connects to one seed peer, sends every typed line to all connected peers and
// relays every received line to the others. Type :quit or :q to leave.
package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"os"
	"os/signal"
	"path/filepath"
	"strconv"
	"syscall"

	env "github.com/Netflix/go-env"
	"github.com/joho/godotenv"

	"p2p-chat/cli"
	"p2p-chat/common"
	chatnet "p2p-chat/net"
)

func main() {
	if err := run(os.Args); err != nil {
		if errors.Is(err, ErrUsage) {
			fmt.Fprintf(os.Stderr, "%v\nUsage: %s <username> [<peer> <port number>]\n",
				err, filepath.Base(os.Args[0]))
		} else {
			fmt.Fprintf(os.Stderr, "Fatal error: %v\n", err)
		}
		os.Exit(1)
	}
}

// run wires the node, the dispatcher and the terminal, then blocks in the UI loop
func run(argv []string) error {
	// 1. Arguments, before any networking
	args, err := parseArgs(argv)
	if err != nil {
		return err
	}

	// 2. Configuration
	_ = godotenv.Load()
	var config Config
	if _, err := env.UnmarshalFromEnviron(&config); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	if err := config.Validate(); err != nil {
		return fmt.Errorf("config error: %w", err)
	}
	uiConfig, err := cli.LoadConfig()
	if err != nil {
		return fmt.Errorf("config error: %w", err)
	}

	// 3. Terminal & logger
	terminal, err := cli.NewTerminal(args.Username, uiConfig)
	if err != nil {
		return err
	}
	defer terminal.Exit()

	log, closeLog, err := newLogger(config, terminal.Stderr())
	if err != nil {
		return err
	}
	defer closeLog()

	// 4. Node & listening socket
	node, err := chatnet.NewNode(args.Username, terminal,
		chatnet.WithLogger(log),
		chatnet.WithTransport(newTransport(config)),
	)
	if err != nil {
		return err
	}
	defer node.Close()

	port, err := node.Listen(net.JoinHostPort(config.ListenHost, "0"))
	if err != nil {
		return err
	}
	terminal.Display(common.LabelInfo, fmt.Sprintf("Server running on port number: %d", port))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// 5. Optional seed peer
	if args.HasPeer() {
		addr := net.JoinHostPort(args.PeerHost, strconv.Itoa(args.PeerPort))
		if _, err := node.Connect(ctx, addr); err != nil {
			return fmt.Errorf("failed to connect: %w", err)
		}
	}

	// 6. Acceptor; a listener failure ends the process
	errChan := make(chan error, 1)
	go func() {
		if err := node.Serve(ctx); err != nil {
			errChan <- err
			terminal.Exit()
		}
	}()
	go func() {
		<-ctx.Done()
		terminal.Exit()
	}()

	// 7. Local input, then hand over to the UI loop
	dispatcher := cli.NewDispatcher(args.Username, node.Peers(), terminal, terminal.Exit, log)
	go dispatcher.Run(ctx, terminal.Lines())

	runErr := terminal.Run()
	log.Info("Leaving chat")
	stop()

	select {
	case err := <-errChan:
		return err
	default:
	}
	return runErr
}

// newLogger writes to LOG_FILE when set, otherwise to fallback
func newLogger(config Config, fallback io.Writer) (*slog.Logger, func(), error) {
	level, err := config.Level()
	if err != nil {
		return nil, nil, err
	}

	out, closer := fallback, func() {}
	if config.LogFile != "" {
		f, err := os.OpenFile(config.LogFile, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
		if err != nil {
			return nil, nil, fmt.Errorf("opening log file: %w", err)
		}
		out, closer = f, func() { _ = f.Close() }
	}
	return slog.New(slog.NewTextHandler(out, &slog.HandlerOptions{Level: level})), closer, nil
}

func newTransport(config Config) chatnet.Transport {
	if config.Transport == "ws" {
		return chatnet.WebSocketTransport{Path: config.WebSocketPath, DialTimeout: config.DialTimeout}
	}
	return chatnet.TCPTransport{DialTimeout: config.DialTimeout}
}
