// Package solver finds shortest solutions with a breadth-first search over
// board positions. States are deduplicated by their canonical cell grid,
// so positions that differ only by swapping same-shape, same-abbreviation
// pieces count as one state.
package solver

import (
	"errors"
	"fmt"
	"time"

	"github.com/cespare/xxhash"
	"github.com/pbnjay/memory"
	"github.com/rs/zerolog/log"
	"github.com/samber/lo"

	"github.com/JimZhouZZY/klotski-sub001/board"
	"github.com/JimZhouZZY/klotski-sub001/game"
	"github.com/JimZhouZZY/klotski-sub001/move"
)

var (
	// ErrNoSolution means the search space was exhausted without reaching
	// a terminal position.
	ErrNoSolution = errors.New("no solution exists")
	// ErrStateBudget means the search hit its memory-derived state cap.
	ErrStateBudget = errors.New("state budget exhausted")
)

// A Step is one move of a solution, described by the piece that makes it.
// From and To are the piece's top-left cell before and after the step.
type Step struct {
	PieceID   int
	PieceName string
	From      move.Coord
	To        move.Coord
}

func (s Step) String() string {
	return fmt.Sprintf("Move %s from %v to %v", s.PieceName, s.From, s.To)
}

// Result is a found solution plus search statistics.
type Result struct {
	Steps          []Step
	StatesExamined int
	UniqueStates   int
	Elapsed        time.Duration
}

type node struct {
	pos     [board.NumPieces]move.Coord
	parent  int32
	pieceID int8
	from    move.Coord
	to      move.Coord
}

// Solve searches from g's current position for a shortest sequence of
// single-step moves that brings the primary piece to the exit cell. The
// piece with id blockedID (if any) is never used as a move source. g is
// not mutated. A position that is already terminal yields zero steps.
func Solve(g *game.Game, blockedID int) (*Result, error) {
	start := time.Now()

	scratch := g.Clone()
	maxStates := stateBudget()

	root := node{pos: g.Positions(), parent: -1, pieceID: -1}
	nodes := []node{root}
	visited := map[uint64]struct{}{gridKey(scratch.Board(), &root.pos): {}}
	examined := 0

	for head := 0; head < len(nodes); head++ {
		cur := nodes[head]
		examined++
		if err := scratch.SetPositions(cur.pos[:]); err != nil {
			return nil, err
		}
		if scratch.IsTerminal() {
			res := reconstruct(nodes, head)
			res.StatesExamined = examined
			res.UniqueStates = len(visited)
			res.Elapsed = time.Since(start)
			log.Debug().
				Int("moves", len(res.Steps)).
				Int("examined", res.StatesExamined).
				Int("unique", res.UniqueStates).
				Dur("elapsed", res.Elapsed).
				Msg("solved")
			return res, nil
		}

		for i := 0; i < board.NumPieces; i++ {
			p := scratch.Piece(i)
			if p.ID == blockedID || p.OffBoard() {
				continue
			}
			from := p.Pos
			for _, d := range move.Directions {
				to := from.Add(d)
				if !scratch.IsLegalMove(from, to) {
					continue
				}
				next := cur.pos
				next[i] = to
				key := gridKey(scratch.Board(), &next)
				if _, seen := visited[key]; seen {
					continue
				}
				if len(nodes) >= maxStates {
					return nil, fmt.Errorf("%w after %d states", ErrStateBudget, len(nodes))
				}
				visited[key] = struct{}{}
				nodes = append(nodes, node{
					pos:     next,
					parent:  int32(head),
					pieceID: int8(i),
					from:    from,
					to:      to,
				})
			}
		}
	}

	log.Debug().
		Int("examined", examined).
		Int("unique", len(visited)).
		Dur("elapsed", time.Since(start)).
		Msg("search space exhausted")
	return nil, ErrNoSolution
}

// Hint returns the first step of a shortest solution from g's position.
func Hint(g *game.Game, blockedID int) (*Step, error) {
	res, err := Solve(g, blockedID)
	if err != nil {
		return nil, err
	}
	if len(res.Steps) == 0 {
		return nil, errors.New("already solved")
	}
	return &res.Steps[0], nil
}

func reconstruct(nodes []node, head int) *Result {
	var steps []Step
	for i := head; nodes[i].parent >= 0; i = int(nodes[i].parent) {
		n := nodes[i]
		steps = append(steps, Step{
			PieceID:   int(n.pieceID),
			PieceName: board.Catalogue[n.pieceID].Name,
			From:      n.from,
			To:        n.to,
		})
	}
	return &Result{Steps: lo.Reverse(steps)}
}

// gridKey hashes the canonical cell grid of a candidate position.
func gridKey(b *board.Board, pos *[board.NumPieces]move.Coord) uint64 {
	var grid [board.Height * board.Width]byte
	for i := range grid {
		grid[i] = '.'
	}
	for i := 0; i < board.NumPieces; i++ {
		p := b.Piece(i)
		for r := 0; r < p.Height; r++ {
			for c := 0; c < p.Width; c++ {
				rr, cc := pos[i].Row+r, pos[i].Col+c
				if rr >= 0 && rr < board.Height && cc >= 0 && cc < board.Width {
					grid[rr*board.Width+cc] = p.Abbrev
				}
			}
		}
	}
	return xxhash.Sum64(grid[:])
}

// stateBudget caps the number of stored states at a small fraction of
// system memory. The full Klotski graph is ~25k unique grids, so the
// floor is generous.
func stateBudget() int {
	const approxNodeSize = 200 // node struct plus visited-set overhead
	budget := int(memory.TotalMemory() / 64 / approxNodeSize)
	if budget > 1<<22 {
		budget = 1 << 22
	}
	if budget < 1<<16 {
		budget = 1 << 16
	}
	return budget
}
