// Package game encapsulates the rules of the sliding-block puzzle: move
// legality, move application, terminal detection, and the scramble walk.
// A Game owns one mutable board; it provides no internal locking, so
// concurrent callers must keep a single-writer discipline.
package game

import (
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/JimZhouZZY/klotski-sub001/board"
	"github.com/JimZhouZZY/klotski-sub001/gridtext"
	"github.com/JimZhouZZY/klotski-sub001/move"
)

// WinCell is the exit: the game is won when the primary piece's top-left
// cell lands here exactly.
var WinCell = move.Coord{Row: 3, Col: 1}

// Game is one puzzle instance.
type Game struct {
	board     *board.Board
	variant   *board.Variant
	blockedID int
	moveCount int
}

// New creates a game with the classic ten-piece layout.
func New() *Game {
	g := &Game{}
	g.reset(board.ClassicVariant())
	return g
}

// NewVariant creates a game laid out per the named variant id.
func NewVariant(variantID int) (*Game, error) {
	v, err := board.VariantByID(variantID)
	if err != nil {
		return nil, err
	}
	g := &Game{}
	g.reset(v)
	return g, nil
}

// Reset re-initializes the game to the named variant's starting layout
// and zeroes the move counter.
func (g *Game) Reset(variantID int) error {
	v, err := board.VariantByID(variantID)
	if err != nil {
		return err
	}
	g.reset(v)
	return nil
}

func (g *Game) reset(v *board.Variant) {
	if g.board == nil {
		g.board = board.New(v)
	} else {
		g.board.Reset(v)
	}
	g.variant = v
	g.blockedID = v.BlockedID
	g.moveCount = 0
}

// Variant returns the variant the game was last reset to.
func (g *Game) Variant() *board.Variant {
	return g.variant
}

// BlockedID returns the id of the blocked piece, or
// board.UnsetBlockedID when no piece is blocked.
func (g *Game) BlockedID() int {
	return g.blockedID
}

// Board exposes the underlying board for read access and serialization.
func (g *Game) Board() *board.Board {
	return g.board
}

// MoveCount returns the number of single-step moves applied since the
// last reset or restore.
func (g *Game) MoveCount() int {
	return g.moveCount
}

// Piece returns the piece record in slot i.
func (g *Game) Piece(i int) *board.Piece {
	return g.board.Piece(i)
}

// Pieces returns a read-only snapshot of all piece records.
func (g *Game) Pieces() []board.Piece {
	return g.board.Pieces()
}

// IsLegalMove reports whether translating the piece occupying from by one
// step toward to keeps it in bounds and collision-free. from may be any
// occupied cell of the piece, not just its top-left corner.
func (g *Game) IsLegalMove(from, to move.Coord) bool {
	if !board.InBounds(from) || !board.InBounds(to) {
		return false
	}
	p := g.board.PieceAt(from)
	if p == nil {
		return false
	}
	d := from.Delta(to)
	if !d.IsStep() {
		return false
	}
	dest := p.Pos.Add(d)
	if dest.Row < 0 || dest.Row+p.Height > board.Height ||
		dest.Col < 0 || dest.Col+p.Width > board.Width {
		return false
	}
	for i := 0; i < board.NumPieces; i++ {
		other := g.board.Piece(i)
		if other != p && board.Overlaps(other, dest, p.Width, p.Height) {
			return false
		}
	}
	return true
}

// ApplyAction moves the piece occupying from by the delta to-from and
// increments the move counter. An illegal move is a no-op, never an
// error: callers probe with arbitrary coordinates as a matter of course.
// The return value reports whether a move was actually applied.
func (g *Game) ApplyAction(from, to move.Coord) bool {
	if !g.IsLegalMove(from, to) {
		return false
	}
	p := g.board.PieceAt(from)
	p.Pos = p.Pos.Add(from.Delta(to))
	g.moveCount++
	return true
}

// LegalMovesForPiece returns the single-step destinations available to
// the piece occupying pos. It returns nil (not an empty slice) when pos
// holds no piece, the piece is off the board, or the piece is blocked;
// a piece that is present but stuck yields an empty non-nil slice.
// Callers distinguish the three outcomes.
func (g *Game) LegalMovesForPiece(pos move.Coord) []move.Coord {
	p := g.board.PieceAt(pos)
	if p == nil || p.OffBoard() {
		return nil
	}
	if p.ID == g.blockedID {
		return nil
	}
	dests := make([]move.Coord, 0, 4)
	for _, d := range move.Directions {
		to := pos.Add(d)
		if g.IsLegalMove(pos, to) {
			dests = append(dests, to)
		}
	}
	return dests
}

// LegalMovesByDirection returns at most one candidate move per piece for
// the single delta d, using each piece's top-left cell as the source.
// It does not consult the blocked id; only the per-piece query does.
func (g *Game) LegalMovesByDirection(d move.Coord) []move.Move {
	var moves []move.Move
	for i := 0; i < board.NumPieces; i++ {
		from := g.board.Piece(i).Pos
		to := from.Add(d)
		if g.IsLegalMove(from, to) {
			moves = append(moves, move.Move{From: from, To: to})
		}
	}
	return moves
}

// LegalMoves returns every legal single-step move on the board: the union
// over all pieces and all four directions. Like LegalMovesByDirection it
// ignores the blocked id, which also means the shuffle walk may move a
// blocked piece.
func (g *Game) LegalMoves() []move.Move {
	var moves []move.Move
	for i := 0; i < board.NumPieces; i++ {
		from := g.board.Piece(i).Pos
		for _, d := range move.Directions {
			to := from.Add(d)
			if g.IsLegalMove(from, to) {
				moves = append(moves, move.Move{From: from, To: to})
			}
		}
	}
	return moves
}

// IsTerminal reports whether the primary piece's top-left corner sits
// exactly on the exit cell. The blocked id has no bearing on this.
func (g *Game) IsTerminal() bool {
	p := g.board.PieceAtCorner(WinCell)
	return p != nil && p.ID == board.PrimaryID
}

// SetPieces replaces every piece record wholesale. The replacement must
// have exactly one non-nil entry per slot; on any violation nothing is
// applied. This is a contract error path, not a gameplay one.
func (g *Game) SetPieces(newPieces []*board.Piece) error {
	if len(newPieces) != board.NumPieces {
		return fmt.Errorf("invalid pieces slice: expected %d entries, got %d",
			board.NumPieces, len(newPieces))
	}
	for i, p := range newPieces {
		if p == nil {
			return fmt.Errorf("invalid pieces slice: entry %d is nil", i)
		}
	}
	for i, p := range newPieces {
		*g.board.Piece(i) = *p
	}
	return nil
}

// SetPositions bulk-overwrites piece positions without legality checks.
// It exists for trusted callers (solver, deserialization) that validate
// on their own.
func (g *Game) SetPositions(pos []move.Coord) error {
	return g.board.SetPositions(pos)
}

// Positions returns the current top-left coordinate of every piece.
func (g *Game) Positions() [board.NumPieces]move.Coord {
	return g.board.Positions()
}

// Clone returns an independent copy of the game.
func (g *Game) Clone() *Game {
	return &Game{
		board:     g.board.Copy(),
		variant:   g.variant,
		blockedID: g.blockedID,
		moveCount: g.moveCount,
	}
}

// String renders the board in the canonical text format.
func (g *Game) String() string {
	return gridtext.Render(g.board)
}

// FromString maps a serialized snapshot onto this game's pieces. Piece
// identities are never created or destroyed; only positions change, and
// only when the whole snapshot parses cleanly.
func (g *Game) FromString(text string) error {
	return gridtext.Apply(g.board, text)
}

// Restore resets the game to the given variant, applies a serialized
// snapshot, and restores the saved move counter. Used by save/load.
func (g *Game) Restore(variantID int, boardText string, moveCount int) error {
	v, err := board.VariantByID(variantID)
	if err != nil {
		return err
	}
	scratch := board.New(v)
	if err := gridtext.Apply(scratch, boardText); err != nil {
		return fmt.Errorf("restoring snapshot: %w", err)
	}
	g.reset(v)
	pos := scratch.Positions()
	if err := g.board.SetPositions(pos[:]); err != nil {
		return err
	}
	g.moveCount = moveCount
	log.Debug().Int("variant", variantID).Int("moves", moveCount).
		Msg("restored game from snapshot")
	return nil
}
