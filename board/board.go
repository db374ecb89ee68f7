// Package board models the Klotski board: a fixed 4x5 grid holding ten
// rectangular pieces with stable ids. Piece identity (id, name,
// abbreviation, shape) never changes after creation; only positions do.
package board

import (
	"fmt"

	"github.com/JimZhouZZY/klotski-sub001/move"
)

const (
	// Width and Height are the board dimensions in cells.
	Width  = 4
	Height = 5

	// NumPieces is the number of piece slots. Every variant fills all ten;
	// a piece absent from a layout sits at the off-board sentinel instead.
	NumPieces = 10

	// PrimaryID is the slot of the piece whose arrival at the exit cell
	// decides the game.
	PrimaryID = 0
)

// Sentinel is the position of a piece that is not on the board.
var Sentinel = move.Coord{Row: -1, Col: -1}

// A Piece is a rectangular block. Pos is the grid coordinate of its
// top-left cell; the piece occupies the rectangle
// [Pos.Row, Pos.Row+Height) x [Pos.Col, Pos.Col+Width).
type Piece struct {
	ID     int
	Name   string
	Abbrev byte
	Width  int
	Height int
	Pos    move.Coord
}

func (p *Piece) String() string {
	return fmt.Sprintf("%s (ID: %d, Position: [%d,%d], Size: %dx%d)",
		p.Name, p.ID, p.Pos.Row, p.Pos.Col, p.Width, p.Height)
}

// OffBoard reports whether the piece sits at the off-board sentinel.
func (p *Piece) OffBoard() bool {
	return p.Pos.Row < 0 || p.Pos.Col < 0
}

// Occupies reports whether the piece's rectangle contains the cell c.
func (p *Piece) Occupies(c move.Coord) bool {
	return c.Row >= p.Pos.Row && c.Row < p.Pos.Row+p.Height &&
		c.Col >= p.Pos.Col && c.Col < p.Pos.Col+p.Width
}

// Overlaps reports whether a w x h rectangle placed at pos intersects p's
// rectangle. Two rectangles are disjoint only when one lies strictly to
// the side of the other on some axis.
func Overlaps(p *Piece, pos move.Coord, w, h int) bool {
	return !(pos.Row >= p.Pos.Row+p.Height ||
		pos.Row+h <= p.Pos.Row ||
		pos.Col >= p.Pos.Col+p.Width ||
		pos.Col+w <= p.Pos.Col)
}

// InBounds reports whether c is a cell of the board.
func InBounds(c move.Coord) bool {
	return c.Row >= 0 && c.Row < Height && c.Col >= 0 && c.Col < Width
}

// A Board is a fixed arena of the ten piece records. Pieces are addressed
// by slot index, which equals the piece id in every defined variant.
type Board struct {
	pieces [NumPieces]Piece
}

// New creates a board laid out per the given variant.
func New(v *Variant) *Board {
	b := &Board{}
	b.Reset(v)
	return b
}

// Reset rebuilds every piece record from the catalogue and the variant's
// layout.
func (b *Board) Reset(v *Variant) {
	for i := 0; i < NumPieces; i++ {
		shape := Catalogue[i]
		b.pieces[i] = Piece{
			ID:     i,
			Name:   shape.Name,
			Abbrev: shape.Abbrev,
			Width:  shape.Width,
			Height: shape.Height,
			Pos:    v.Layout[i],
		}
	}
}

// Piece returns a pointer into the arena; mutating its Pos moves the piece.
func (b *Board) Piece(i int) *Piece {
	return &b.pieces[i]
}

// Pieces returns a value-copy snapshot of all piece records.
func (b *Board) Pieces() []Piece {
	snapshot := make([]Piece, NumPieces)
	copy(snapshot, b.pieces[:])
	return snapshot
}

// PieceAt returns the piece whose rectangle contains c, or nil. Pieces
// never legitimately overlap, so the first match in slot order is the
// only match in any valid state.
func (b *Board) PieceAt(c move.Coord) *Piece {
	for i := range b.pieces {
		if b.pieces[i].Occupies(c) {
			return &b.pieces[i]
		}
	}
	return nil
}

// PieceAtCorner returns the piece whose top-left cell is exactly c, or
// nil. Used for win detection, not hit-testing.
func (b *Board) PieceAtCorner(c move.Coord) *Piece {
	for i := range b.pieces {
		if b.pieces[i].Pos == c {
			return &b.pieces[i]
		}
	}
	return nil
}

// Positions returns the current top-left coordinates of all pieces.
func (b *Board) Positions() [NumPieces]move.Coord {
	var pos [NumPieces]move.Coord
	for i := range b.pieces {
		pos[i] = b.pieces[i].Pos
	}
	return pos
}

// SetPositions overwrites every piece's position at once. It is the bulk
// counterpart of moving pieces one by one and performs no legality checks;
// callers own validation.
func (b *Board) SetPositions(pos []move.Coord) error {
	if len(pos) != NumPieces {
		return fmt.Errorf("expected %d positions, got %d", NumPieces, len(pos))
	}
	for i := range pos {
		b.pieces[i].Pos = pos[i]
	}
	return nil
}

// Copy returns an independent copy of the board.
func (b *Board) Copy() *Board {
	nb := &Board{}
	nb.pieces = b.pieces
	return nb
}
