package shell

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/samber/lo"

	"github.com/JimZhouZZY/klotski-sub001/automatic"
	"github.com/JimZhouZZY/klotski-sub001/board"
	"github.com/JimZhouZZY/klotski-sub001/move"
	"github.com/JimZhouZZY/klotski-sub001/solver"
	"github.com/JimZhouZZY/klotski-sub001/stores"
)

const helpText = `Commands:
  show                                 display the current board
  moves                                list every piece with legal moves
  moves <row> <col>                    list legal moves for one piece
  move <row> <col>                     move the piece there (if unambiguous)
  move <fr> <fc> <tr> <tc>             direct move
  restart [variant]                    reset to a starting layout
  variants                             list starting layouts
  shuffle [seed]                       scramble with a random walk
  solve                                find a shortest solution
  hint                                 show the next best move
  save <slot> / load <slot> / saves    snapshot persistence
  delete <slot>                        drop a saved snapshot
  batch -n <count> [-solve true]       run seeded shuffle batches
  help / exit`

func (sc *ShellController) executeCommand(cmd *shellcmd, sig chan os.Signal) (*Response, error) {
	switch cmd.cmd {
	case "show":
		return msg(sc.game.String()), nil
	case "moves":
		return sc.moves(cmd)
	case "move":
		return sc.move(cmd)
	case "restart":
		return sc.restart(cmd)
	case "variants":
		return sc.variants()
	case "shuffle":
		return sc.shuffle(cmd)
	case "solve":
		return sc.solve()
	case "hint":
		return sc.hint()
	case "save":
		return sc.save(cmd)
	case "load":
		return sc.load(cmd)
	case "saves":
		return sc.listSaves()
	case "delete":
		return sc.deleteSave(cmd)
	case "batch":
		return sc.batch(cmd)
	case "help":
		return msg(helpText), nil
	default:
		return nil, fmt.Errorf("unknown command %q; try `help`", cmd.cmd)
	}
}

func parseCoord(rowStr, colStr string) (move.Coord, error) {
	row, err := strconv.Atoi(rowStr)
	if err != nil {
		return move.Coord{}, fmt.Errorf("bad row %q", rowStr)
	}
	col, err := strconv.Atoi(colStr)
	if err != nil {
		return move.Coord{}, fmt.Errorf("bad column %q", colStr)
	}
	return move.Coord{Row: row, Col: col}, nil
}

func formatDests(dests []move.Coord) string {
	return strings.Join(lo.Map(dests, func(d move.Coord, _ int) string {
		return "  -> " + d.String()
	}), "\n")
}

func (sc *ShellController) moves(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) == 2 {
		pos, err := parseCoord(cmd.args[0], cmd.args[1])
		if err != nil {
			return nil, err
		}
		dests := sc.game.LegalMovesForPiece(pos)
		if dests == nil {
			return msg(fmt.Sprintf("No movable piece at %v", pos)), nil
		}
		if len(dests) == 0 {
			return msg(fmt.Sprintf("Piece at %v is stuck", pos)), nil
		}
		return msg(fmt.Sprintf("Piece at %v can move to:\n%s", pos, formatDests(dests))), nil
	}
	if len(cmd.args) != 0 {
		return nil, errors.New("usage: moves [row col]")
	}

	var sb strings.Builder
	any := false
	for _, p := range sc.game.Pieces() {
		if p.OffBoard() {
			continue
		}
		dests := sc.game.LegalMovesForPiece(p.Pos)
		if len(dests) == 0 {
			continue
		}
		any = true
		fmt.Fprintf(&sb, "%s at %v can move to:\n%s\n", p.Name, p.Pos, formatDests(dests))
	}
	if !any {
		return msg("No pieces have legal moves."), nil
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) move(cmd *shellcmd) (*Response, error) {
	switch len(cmd.args) {
	case 2:
		pos, err := parseCoord(cmd.args[0], cmd.args[1])
		if err != nil {
			return nil, err
		}
		dests := sc.game.LegalMovesForPiece(pos)
		if dests == nil {
			return msg(fmt.Sprintf("No movable piece at %v", pos)), nil
		}
		switch len(dests) {
		case 0:
			return msg(fmt.Sprintf("No legal moves for piece at %v", pos)), nil
		case 1:
			sc.game.ApplyAction(pos, dests[0])
			return sc.afterMove(pos, dests[0]), nil
		default:
			return msg(fmt.Sprintf(
				"Multiple moves possible for piece at %v:\n%s\nUse `move fr fc tr tc`",
				pos, formatDests(dests))), nil
		}
	case 4:
		from, err := parseCoord(cmd.args[0], cmd.args[1])
		if err != nil {
			return nil, err
		}
		to, err := parseCoord(cmd.args[2], cmd.args[3])
		if err != nil {
			return nil, err
		}
		if p := sc.game.Board().PieceAt(from); p != nil && p.ID == sc.game.BlockedID() {
			return msg(fmt.Sprintf("%s is blocked in this level", p.Name)), nil
		}
		if !sc.game.ApplyAction(from, to) {
			return msg("Invalid move."), nil
		}
		return sc.afterMove(from, to), nil
	default:
		return nil, errors.New("usage: move <row> <col> [toRow toCol]")
	}
}

func (sc *ShellController) afterMove(from, to move.Coord) *Response {
	out := fmt.Sprintf("Moved piece from %v to %v\n%s", from, to, sc.game.String())
	if sc.game.IsTerminal() {
		out += fmt.Sprintf("\nCongratulations! You won in %d moves!\nType `restart` to play again.",
			sc.game.MoveCount())
	}
	return msg(out)
}

func (sc *ShellController) restart(cmd *shellcmd) (*Response, error) {
	v := sc.game.Variant()
	if len(cmd.args) == 1 {
		var err error
		v, err = board.VariantByName(cmd.args[0])
		if err != nil {
			return nil, err
		}
	}
	if err := sc.game.Reset(v.ID); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Game restarted (%s). Current board:\n%s", v.Name, sc.game.String())), nil
}

func (sc *ShellController) variants() (*Response, error) {
	lines := lo.Map(board.Variants(), func(v board.Variant, _ int) string {
		blocked := "none"
		if v.BlockedID != board.UnsetBlockedID {
			blocked = board.Catalogue[v.BlockedID].Name
		}
		return fmt.Sprintf("  %d  %-12s blocked: %s", v.ID, v.Name, blocked)
	})
	return msg("Variants:\n" + strings.Join(lines, "\n")), nil
}

func (sc *ShellController) shuffle(cmd *shellcmd) (*Response, error) {
	seed := uint64(time.Now().UnixNano())
	if len(cmd.args) == 1 {
		s, err := strconv.ParseUint(cmd.args[0], 10, 64)
		if err != nil {
			return nil, fmt.Errorf("bad seed %q", cmd.args[0])
		}
		seed = s
	}
	applied := sc.game.RandomShuffle(seed)
	return msg(fmt.Sprintf("Shuffled %d moves (seed %d):\n%s", applied, seed, sc.game.String())), nil
}

func (sc *ShellController) solve() (*Response, error) {
	res, err := solver.Solve(sc.game, sc.game.BlockedID())
	if err != nil {
		return nil, err
	}
	if len(res.Steps) == 0 {
		return msg("Already solved!"), nil
	}
	var sb strings.Builder
	fmt.Fprintf(&sb, "Solution (in %d moves, %d states examined, %v):\n",
		len(res.Steps), res.StatesExamined, res.Elapsed.Round(time.Millisecond))
	for i, step := range res.Steps {
		fmt.Fprintf(&sb, "%3d. %s\n", i+1, step)
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}

func (sc *ShellController) hint() (*Response, error) {
	step, err := solver.Hint(sc.game, sc.game.BlockedID())
	if err != nil {
		return nil, err
	}
	return msg("Hint: " + step.String()), nil
}

func (sc *ShellController) save(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: save <slot>")
	}
	st, err := sc.saveStore()
	if err != nil {
		return nil, err
	}
	sv := &stores.SavedGame{
		Slot:      cmd.args[0],
		VariantID: sc.game.Variant().ID,
		Board:     sc.game.String(),
		MoveCount: sc.game.MoveCount(),
	}
	if err := st.Save(context.Background(), sv); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Saved to slot %q", sv.Slot)), nil
}

func (sc *ShellController) load(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: load <slot>")
	}
	st, err := sc.saveStore()
	if err != nil {
		return nil, err
	}
	sv, err := st.Load(context.Background(), cmd.args[0])
	if err != nil {
		return nil, err
	}
	if err := sc.game.Restore(sv.VariantID, sv.Board, sv.MoveCount); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Loaded slot %q (%d moves in):\n%s",
		sv.Slot, sv.MoveCount, sc.game.String())), nil
}

func (sc *ShellController) listSaves() (*Response, error) {
	st, err := sc.saveStore()
	if err != nil {
		return nil, err
	}
	saves, err := st.List(context.Background())
	if err != nil {
		return nil, err
	}
	if len(saves) == 0 {
		return msg("No saves."), nil
	}
	lines := lo.Map(saves, func(sv stores.SavedGame, _ int) string {
		return fmt.Sprintf("  %-16s variant %d, %d moves, %s",
			sv.Slot, sv.VariantID, sv.MoveCount, sv.CreatedAt.Format(time.RFC3339))
	})
	return msg("Saves:\n" + strings.Join(lines, "\n")), nil
}

func (sc *ShellController) deleteSave(cmd *shellcmd) (*Response, error) {
	if len(cmd.args) != 1 {
		return nil, errors.New("usage: delete <slot>")
	}
	st, err := sc.saveStore()
	if err != nil {
		return nil, err
	}
	if err := st.Delete(context.Background(), cmd.args[0]); err != nil {
		return nil, err
	}
	return msg(fmt.Sprintf("Deleted slot %q", cmd.args[0])), nil
}

func (sc *ShellController) batch(cmd *shellcmd) (*Response, error) {
	n := 10
	if v, ok := cmd.options["n"]; ok {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 1 {
			return nil, fmt.Errorf("bad batch size %q", v)
		}
		n = parsed
	}
	solveEach := strings.ToLower(cmd.options["solve"]) == "true"

	var seeds [][32]byte
	var err error
	if path, ok := cmd.options["seedfile"]; ok {
		seeds, err = automatic.LoadSeeds(path)
	} else {
		seeds, err = automatic.GenerateSeeds(n)
	}
	if err != nil {
		return nil, err
	}

	results, err := automatic.RunShuffles(context.Background(),
		sc.game.Variant().ID, seeds, sc.cfg.GetInt("auto-workers"), solveEach)
	if err != nil {
		return nil, err
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Ran %d shuffles on %s:\n", len(results), sc.game.Variant().Name)
	for i, r := range results {
		if r.SolutionLen >= 0 {
			fmt.Fprintf(&sb, "  #%d: %d moves applied, solvable in %d\n",
				i, r.MovesApplied, r.SolutionLen)
		} else if solveEach {
			fmt.Fprintf(&sb, "  #%d: %d moves applied, not solvable\n", i, r.MovesApplied)
		} else {
			fmt.Fprintf(&sb, "  #%d: %d moves applied\n", i, r.MovesApplied)
		}
	}
	return msg(strings.TrimRight(sb.String(), "\n")), nil
}
