package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/chzyer/readline"
	"github.com/fatih/color"
	"golang.org/x/term"

	"p2p-chat/common"
)

// Terminal is the interactive UI: it prints display lines above the prompt and
// hands every typed line to a single consumer through Lines.
type Terminal struct {
	rl       *readline.Instance
	username string
	lines    chan string

	once sync.Once
	done chan struct{}
}

// NewTerminal opens the terminal on the process stdin/stdout
func NewTerminal(username string, cfg Config) (*Terminal, error) {
	return newTerminal(username, cfg, &readline.Config{
		FuncIsTerminal: func() bool { return term.IsTerminal(int(os.Stdin.Fd())) },
	})
}

func newTerminal(username string, cfg Config, rlCfg *readline.Config) (*Terminal, error) {
	if cfg.NoColor || !term.IsTerminal(int(os.Stdout.Fd())) {
		color.NoColor = true
	}

	rlCfg.Prompt = color.GreenString("%s> ", username)
	rlCfg.HistoryFile = cfg.HistoryFile
	rlCfg.AutoComplete = readline.NewPrefixCompleter(
		readline.PcItem(cmdHelp),
		readline.PcItem(cmdPeers),
		readline.PcItem(cmdQuit),
		readline.PcItem(cmdQuitShort),
	)
	rlCfg.InterruptPrompt = "^C"
	rlCfg.EOFPrompt = cmdQuit

	rl, err := readline.NewEx(rlCfg)
	if err != nil {
		return nil, fmt.Errorf("cli.NewTerminal: %w", err)
	}
	return &Terminal{
		rl:       rl,
		username: username,
		lines:    make(chan string, 16),
		done:     make(chan struct{}),
	}, nil
}

// Lines delivers typed lines; it is closed when Run returns
func (t *Terminal) Lines() <-chan string {
	return t.lines
}

// Run reads input until Exit is called or stdin ends
func (t *Terminal) Run() error {
	defer close(t.lines)
	for {
		line, err := t.rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			if line == "" {
				t.Exit()
				return nil
			}
			continue
		case errors.Is(err, io.EOF):
			return nil
		case err != nil:
			if t.exited() {
				return nil
			}
			return err
		}

		select {
		case t.lines <- line:
		case <-t.done:
			return nil
		}
	}
}

// Exit stops Run; later display lines are dropped
func (t *Terminal) Exit() {
	t.once.Do(func() {
		close(t.done)
		t.rl.Close()
	})
}

func (t *Terminal) exited() bool {
	select {
	case <-t.done:
		return true
	default:
		return false
	}
}

// Display prints one line without breaking the prompt being typed
func (t *Terminal) Display(label, text string) {
	if t.exited() {
		return
	}
	fmt.Fprintf(t.rl.Stdout(), "%s %s\n", t.paint(label), text)
}

// Stderr is where logs go when no log file is configured
func (t *Terminal) Stderr() io.Writer {
	return t.rl.Stderr()
}

func (t *Terminal) paint(label string) string {
	switch label {
	case common.LabelInfo:
		return color.MagentaString("[%s]", label)
	case common.LabelConnected:
		return color.GreenString("[%s]", label)
	case common.LabelDisconnected, common.LabelWarning:
		return color.YellowString("[%s]", label)
	case common.LabelError:
		return color.RedString("[%s]", label)
	case t.username:
		return color.GreenString("%s:", label)
	default:
		return color.CyanString("%s:", label)
	}
}
