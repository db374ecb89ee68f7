// Package gridtext reads and writes the canonical text form of a board:
// five rows of four space-separated characters, '.' for empty cells and a
// piece's abbreviation for occupied ones. The format is shared with
// network peers and save files that predate this implementation, so the
// rendered output must stay byte-identical to the legacy encoder.
package gridtext

import (
	"errors"
	"fmt"
	"strings"

	"github.com/JimZhouZZY/klotski-sub001/board"
	"github.com/JimZhouZZY/klotski-sub001/move"
)

// Empty marks an unoccupied cell.
const Empty byte = '.'

var (
	// ErrDimensions means the text does not have Height rows of Width cells.
	ErrDimensions = errors.New("gridtext: wrong board dimensions")
	// ErrUnplaced means no region of the text could account for some piece.
	ErrUnplaced = errors.New("gridtext: piece could not be placed")
)

// Render writes the board as Height rows of Width cells, each cell
// followed by a single space and each row by a newline. Off-board pieces
// are simply absent from the text.
func Render(b *board.Board) string {
	var grid [board.Height][board.Width]byte
	for r := range grid {
		for c := range grid[r] {
			grid[r][c] = Empty
		}
	}
	for i := 0; i < board.NumPieces; i++ {
		p := b.Piece(i)
		for r := 0; r < p.Height; r++ {
			for c := 0; c < p.Width; c++ {
				rr, cc := p.Pos.Row+r, p.Pos.Col+c
				if rr >= 0 && rr < board.Height && cc >= 0 && cc < board.Width {
					grid[rr][cc] = p.Abbrev
				}
			}
		}
	}

	var sb strings.Builder
	sb.Grow(board.Height * (board.Width*2 + 1))
	for r := 0; r < board.Height; r++ {
		for c := 0; c < board.Width; c++ {
			sb.WriteByte(grid[r][c])
			sb.WriteByte(' ')
		}
		sb.WriteByte('\n')
	}
	return sb.String()
}

// Apply parses text and maps the cells back onto b's pieces. Matching is
// greedy first-fit: scanning top-left to bottom-right, each occupied cell
// is claimed by the first unplaced piece in slot order whose abbreviation
// matches and whose full rectangle, anchored at that cell, covers cells
// bearing the same character. Same-abbreviation pieces of equal shape are
// therefore interchangeable, which downstream consumers must (and do)
// tolerate. This mirrors the legacy reconstruction exactly.
//
// Pieces that were off the board before the call may legitimately stay
// unplaced; any other unplaced piece is an error. The board is mutated
// only when the whole text maps cleanly.
func Apply(b *board.Board, text string) error {
	rows := strings.Split(strings.TrimSpace(text), "\n")
	if len(rows) != board.Height {
		return fmt.Errorf("%w: expected %d rows, got %d",
			ErrDimensions, board.Height, len(rows))
	}
	var grid [board.Height][board.Width]byte
	for r, row := range rows {
		cells := strings.Fields(row)
		if len(cells) != board.Width {
			return fmt.Errorf("%w: row %d has %d columns, expected %d",
				ErrDimensions, r, len(cells), board.Width)
		}
		for c, cell := range cells {
			grid[r][c] = cell[0]
		}
	}

	var mayStayOff [board.NumPieces]bool
	for i := 0; i < board.NumPieces; i++ {
		mayStayOff[i] = b.Piece(i).OffBoard()
	}

	var placed [board.NumPieces]bool
	var pos [board.NumPieces]move.Coord
	for i := range pos {
		pos[i] = board.Sentinel
	}

	for r := 0; r < board.Height; r++ {
		for c := 0; c < board.Width; c++ {
			cell := grid[r][c]
			if cell == Empty {
				continue
			}
			for i := 0; i < board.NumPieces; i++ {
				p := b.Piece(i)
				if placed[i] || p.Abbrev != cell {
					continue
				}
				if !fits(&grid, r, c, p.Width, p.Height, cell) {
					continue
				}
				pos[i] = move.Coord{Row: r, Col: c}
				placed[i] = true
				// Consume the claimed rectangle.
				for rr := r; rr < r+p.Height; rr++ {
					for cc := c; cc < c+p.Width; cc++ {
						grid[rr][cc] = Empty
					}
				}
				break
			}
		}
	}

	for i := 0; i < board.NumPieces; i++ {
		if !placed[i] && !mayStayOff[i] {
			return fmt.Errorf("%w: %s", ErrUnplaced, b.Piece(i).Name)
		}
	}
	return b.SetPositions(pos[:])
}

func fits(grid *[board.Height][board.Width]byte, r, c, w, h int, cell byte) bool {
	for rr := r; rr < r+h; rr++ {
		for cc := c; cc < c+w; cc++ {
			if rr >= board.Height || cc >= board.Width || grid[rr][cc] != cell {
				return false
			}
		}
	}
	return true
}
