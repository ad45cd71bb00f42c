// Package shell is the interactive REPL for playing draughts against the
// engine and poking at its internals.
package shell

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"syscall"

	"github.com/chzyer/readline"
	"github.com/kballard/go-shellquote"
	"github.com/rs/zerolog/log"

	"github.com/GhislainBO/dames-backend-web-sub001/ai/bot"
	"github.com/GhislainBO/dames-backend-web-sub001/automatic"
	"github.com/GhislainBO/dames-backend-web-sub001/config"
	"github.com/GhislainBO/dames-backend-web-sub001/game"
)

var errNoData = errors.New("no data in line")

// parseLine splits an input line into a command and its arguments,
// honoring shell quoting.
func parseLine(line string) (string, []string, error) {
	line = strings.TrimSpace(line)
	if line == "" {
		return "", nil, errNoData
	}
	fields, err := shellquote.Split(line)
	if err != nil {
		return "", nil, err
	}
	return fields[0], fields[1:], nil
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

// ShellController holds the REPL state: one game, one bot.
type ShellController struct {
	l   *readline.Instance
	cfg *config.Config

	game *game.Game
	bot  *bot.Bot
}

func completer() *readline.PrefixCompleter {
	levels := make([]readline.PrefixCompleterInterface, 0, len(bot.Levels()))
	for _, lvl := range bot.Levels() {
		levels = append(levels, readline.PcItem(string(lvl)))
	}
	return readline.NewPrefixCompleter(
		readline.PcItem("new"),
		readline.PcItem("show"),
		readline.PcItem("moves"),
		readline.PcItem("play"),
		readline.PcItem("ai"),
		readline.PcItem("level", levels...),
		readline.PcItem("export"),
		readline.PcItem("import"),
		readline.PcItem("resign"),
		readline.PcItem("draw"),
		readline.PcItem("ttinfo"),
		readline.PcItem("ttclear"),
		readline.PcItem("selfplay", levels...),
		readline.PcItem("help"),
		readline.PcItem("exit"),
	)
}

func NewShellController(cfg *config.Config) *ShellController {
	l, err := readline.NewEx(&readline.Config{
		Prompt:          "\033[31mdames>\033[0m ",
		HistoryFile:     "/tmp/dames-readline.tmp",
		EOFPrompt:       "exit",
		InterruptPrompt: "^C",
		AutoComplete:    completer(),

		HistorySearchFold:   true,
		FuncFilterInputRune: filterInput,
	})
	if err != nil {
		panic(err)
	}

	level := bot.Level(cfg.DefaultLevel)
	b, err := bot.New(level)
	if err != nil {
		log.Warn().Str("level", cfg.DefaultLevel).Msg("unknown configured level, using medium")
		b, _ = bot.New(bot.Medium)
	}
	if cfg.TTFractionOfMemory > 0 {
		b.Solver().TT().Reset(cfg.TTFractionOfMemory)
	}
	return &ShellController{l: l, cfg: cfg, game: game.NewGame(), bot: b}
}

func (sc *ShellController) out() io.Writer {
	return sc.l.Stdout()
}

func (sc *ShellController) Loop(sig chan os.Signal) {
	defer sc.l.Close()

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
		cmd, args, err := parseLine(line)
		if err == errNoData {
			continue
		}
		if err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
			continue
		}
		if cmd == "exit" || cmd == "quit" {
			sig <- syscall.SIGINT
			break
		}
		if err := sc.execute(cmd, args); err != nil {
			showMessage("error: "+err.Error(), sc.l.Stderr())
		}
	}
	log.Debug().Msgf("Exiting readline loop...")
}

func (sc *ShellController) execute(cmd string, args []string) error {
	switch cmd {
	case "new":
		sc.game = game.NewGame()
		showMessage(sc.game.ToDisplayText(), sc.out())
	case "show":
		showMessage(sc.game.ToDisplayText(), sc.out())
	case "moves":
		return sc.showMoves()
	case "play":
		return sc.play(args)
	case "ai":
		return sc.aiMove(args)
	case "level":
		return sc.setLevel(args)
	case "export":
		showMessage(sc.game.Export(), sc.out())
	case "import":
		return sc.importPosition(args)
	case "resign":
		if err := sc.game.Resign(sc.game.OnTurn()); err != nil {
			return err
		}
		showMessage(sc.game.ToDisplayText(), sc.out())
	case "draw":
		if err := sc.game.DeclareDraw(); err != nil {
			return err
		}
		showMessage(sc.game.ToDisplayText(), sc.out())
	case "ttinfo":
		sc.ttInfo()
	case "ttclear":
		sc.bot.Solver().TT().Clear()
		showMessage("transposition table cleared", sc.out())
	case "selfplay":
		return sc.selfplay(args)
	case "help":
		sc.usage()
	default:
		return fmt.Errorf("unknown command %q, try help", cmd)
	}
	return nil
}

func (sc *ShellController) showMoves() error {
	moves := sc.game.LegalMoves()
	if len(moves) == 0 {
		showMessage("no legal moves: "+sc.game.Result().String(), sc.out())
		return nil
	}
	descs := make([]string, len(moves))
	for i, m := range moves {
		descs[i] = m.ShortDescription()
	}
	showMessage(strings.Join(descs, "  "), sc.out())
	return nil
}

func (sc *ShellController) play(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: play <notation>, e.g. play 32-28 or play 28x17")
	}
	applied, err := sc.game.ApplyNotation(args[0])
	if err != nil {
		return err
	}
	showMessage("played "+applied.ShortDescription(), sc.out())
	showMessage(sc.game.ToDisplayText(), sc.out())
	return nil
}

func (sc *ShellController) aiMove(args []string) error {
	if len(args) > 0 {
		if err := sc.setLevel(args); err != nil {
			return err
		}
	}
	choice, err := sc.bot.ChooseMove(context.Background(), sc.game)
	if err != nil {
		return err
	}
	if _, err := sc.game.ApplyMove(choice.Move); err != nil {
		return err
	}
	showMessage(fmt.Sprintf("%s plays %s (score %d, %d nodes, %s)",
		sc.bot.Level(), choice.Move.ShortDescription(), choice.Score,
		choice.Nodes, choice.Elapsed), sc.out())
	showMessage(sc.game.ToDisplayText(), sc.out())
	return nil
}

func (sc *ShellController) setLevel(args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("usage: level <%s>", levelList())
	}
	b, err := bot.New(bot.Level(args[0]))
	if err != nil {
		return err
	}
	if sc.cfg.TTFractionOfMemory > 0 {
		b.Solver().TT().Reset(sc.cfg.TTFractionOfMemory)
	}
	sc.bot = b
	showMessage("difficulty set to "+args[0], sc.out())
	return nil
}

func (sc *ShellController) importPosition(args []string) error {
	if len(args) != 3 {
		return fmt.Errorf("usage: import <board> <W|B> <clock>")
	}
	if err := sc.game.Import(strings.Join(args, " ")); err != nil {
		return err
	}
	showMessage(sc.game.ToDisplayText(), sc.out())
	return nil
}

func (sc *ShellController) ttInfo() {
	tt := sc.bot.Solver().TT()
	stats := tt.Stats()
	showMessage(fmt.Sprintf("size %d, occupancy %d, lookups %d, hits %d, collisions %d",
		tt.Size(), tt.Occupancy(), stats.Lookups, stats.Hits, stats.Collisions), sc.out())
}

func (sc *ShellController) selfplay(args []string) error {
	white := bot.Level(sc.cfg.DefaultLevel)
	black := white
	if len(args) >= 1 {
		white = bot.Level(args[0])
	}
	if len(args) >= 2 {
		black = bot.Level(args[1])
	}
	showMessage(fmt.Sprintf("playing %d games, %s vs %s...",
		sc.cfg.SelfplayGames, white, black), sc.out())
	stats, err := automatic.CompareBots(context.Background(), white, black,
		sc.cfg.SelfplayGames, sc.cfg.SelfplayConcurrency)
	if err != nil {
		return err
	}
	showMessage(stats.String(), sc.out())
	return nil
}

func levelList() string {
	parts := make([]string, len(bot.Levels()))
	for i, lvl := range bot.Levels() {
		parts[i] = string(lvl)
	}
	return strings.Join(parts, "|")
}

func (sc *ShellController) usage() {
	showMessage(`commands:
  new                      start a new game
  show                     display the board
  moves                    list legal moves for the side on turn
  play <notation>          play a move, e.g. play 32-28 or play 28x17
  ai [level]               let the bot play the side on turn
  level <`+levelList()+`>  set bot difficulty
  export                   print the position encoding
  import <board> <W|B> <n> load a position encoding
  resign                   resign for the side on turn
  draw                     declare a draw by agreement
  ttinfo                   transposition table diagnostics
  ttclear                  clear the transposition table
  selfplay [white] [black] run a bot-vs-bot series
  help                     this message
  exit                     leave the shell`, sc.out())
}
