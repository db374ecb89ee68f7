// Package move defines the coordinate and move value types shared by the
// board, game, and solver packages.
package move

import "fmt"

// Coord is a cell on the board, row-major from the top-left corner.
type Coord struct {
	Row int
	Col int
}

func (c Coord) String() string {
	return fmt.Sprintf("(%d,%d)", c.Row, c.Col)
}

// Add returns c translated by the delta d.
func (c Coord) Add(d Coord) Coord {
	return Coord{Row: c.Row + d.Row, Col: c.Col + d.Col}
}

// Delta returns the translation that takes c to o.
func (c Coord) Delta(o Coord) Coord {
	return Coord{Row: o.Row - c.Row, Col: o.Col - c.Col}
}

// IsStep reports whether the delta c is exactly one orthogonal step.
func (c Coord) IsStep() bool {
	return (abs(c.Row) == 1 && c.Col == 0) || (abs(c.Col) == 1 && c.Row == 0)
}

// A Move translates whichever piece occupies From one step toward To.
// From does not have to be the piece's top-left cell; any occupied cell
// works, and the piece moves by the same delta.
type Move struct {
	From Coord
	To   Coord
}

func (m Move) String() string {
	return fmt.Sprintf("%v -> %v", m.From, m.To)
}

// Directions holds the four orthogonal single-step deltas in the order the
// engine enumerates them: up, down, left, right.
var Directions = [4]Coord{{-1, 0}, {1, 0}, {0, -1}, {0, 1}}

func abs(n int) int {
	if n < 0 {
		return -n
	}
	return n
}
