// Package shell implements the interactive console for playing, probing,
// shuffling, solving, and saving games.
package shell

import (
	"errors"
	"io"
	"os"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/JimZhouZZY/klotski-sub001/board"
	"github.com/JimZhouZZY/klotski-sub001/config"
	"github.com/JimZhouZZY/klotski-sub001/game"
	"github.com/JimZhouZZY/klotski-sub001/stores"
)

var (
	errNoData            = errors.New("no command entered")
	errWrongOptionSyntax = errors.New("option missing a value")
)

type shellcmd struct {
	cmd     string
	args    []string
	options map[string]string
}

// extractFields splits a command line into command, positional args, and
// -key value options, honoring shell quoting.
func extractFields(line string) (*shellcmd, error) {
	fields, err := shellquote.Split(line)
	if err != nil {
		return nil, err
	}
	if len(fields) == 0 {
		return nil, errNoData
	}
	cmd := &shellcmd{cmd: fields[0], options: map[string]string{}}
	i := 1
	for i < len(fields) {
		if strings.HasPrefix(fields[i], "-") {
			if i+1 >= len(fields) {
				return nil, errWrongOptionSyntax
			}
			cmd.options[strings.TrimPrefix(fields[i], "-")] = fields[i+1]
			i += 2
		} else {
			cmd.args = append(cmd.args, fields[i])
			i++
		}
	}
	return cmd, nil
}

type Response struct {
	message string
}

func msg(message string) *Response {
	return &Response{message: message}
}

// ShellController drives the readline loop and owns the current game.
type ShellController struct {
	l       *readline.Instance
	cfg     *config.Config
	version string

	game  *game.Game
	store *stores.SaveStore
}

func filterInput(r rune) (rune, bool) {
	switch r {
	// block CtrlZ feature
	case readline.CharCtrlZ:
		return r, false
	}
	return r, true
}

func showMessage(msg string, w io.Writer) {
	io.WriteString(w, msg)
	io.WriteString(w, "\n")
}

// NewShellController creates a controller with a fresh game on the
// configured default variant.
func NewShellController(cfg *config.Config, version string) *ShellController {
	sc := &ShellController{cfg: cfg, version: version}

	v, err := board.VariantByName(cfg.GetString("default-variant"))
	if err != nil {
		log.Warn().Err(err).Msg("unknown default variant, using classic")
		v = board.ClassicVariant()
	}
	sc.game, err = game.NewVariant(v.ID)
	if err != nil {
		panic(err)
	}

	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mklotski>\033[0m ",
		HistoryFile:     filepath.Join(os.TempDir(), "klotski-readline.tmp"),
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",

		HistorySearchFold:   true,
		AutoComplete:        NewShellCompleter(sc),
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}
	sc.l = l
	return sc
}

func (sc *ShellController) showMessage(m string) {
	showMessage(m, sc.l.Stdout())
}

func (sc *ShellController) showError(err error) {
	showMessage("Error: "+err.Error(), sc.l.Stderr())
}

// Execute runs a single command line and returns.
func (sc *ShellController) Execute(sig chan os.Signal, line string) {
	defer sc.cleanup()
	if err := sc.handle(line, sig); err != nil {
		sc.showError(err)
	}
}

// Loop reads and executes commands until interrupt or EOF.
func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.cleanup()

	for {
		line, err := sc.l.Readline()
		if err == readline.ErrInterrupt {
			if len(line) == 0 {
				sig <- syscall.SIGINT
				break
			}
			continue
		} else if err == io.EOF {
			sig <- syscall.SIGINT
			break
		}
		line = strings.TrimSpace(line)
		if line == "exit" || line == "quit" {
			sig <- syscall.SIGINT
			break
		}
		if err := sc.handle(line, sig); err != nil {
			sc.showError(err)
		}
	}
	log.Debug().Msg("exiting readline loop...")
}

func (sc *ShellController) handle(line string, sig chan os.Signal) error {
	cmd, err := extractFields(line)
	if errors.Is(err, errNoData) {
		return nil
	}
	if err != nil {
		return err
	}
	resp, err := sc.executeCommand(cmd, sig)
	if err != nil {
		return err
	}
	if resp != nil && resp.message != "" {
		sc.showMessage(resp.message)
	}
	return nil
}

func (sc *ShellController) cleanup() {
	if sc.store != nil {
		if err := sc.store.Close(); err != nil {
			log.Err(err).Msg("closing save store")
		}
		sc.store = nil
	}
	sc.l.Close()
}

// saveStore lazily opens the configured save database.
func (sc *ShellController) saveStore() (*stores.SaveStore, error) {
	if sc.store != nil {
		return sc.store, nil
	}
	st, err := stores.Open(sc.cfg.GetString("save-db-path"))
	if err != nil {
		return nil, err
	}
	sc.store = st
	return st, nil
}
