package solver

import (
	"errors"
	"testing"

	"github.com/matryer/is"

	"github.com/JimZhouZZY/klotski-sub001/board"
	"github.com/JimZhouZZY/klotski-sub001/game"
	"github.com/JimZhouZZY/klotski-sub001/move"
)

// oneStepFromWin puts Cao Cao at (2,1) with the two cells below it free,
// so the single move down wins.
func oneStepFromWin(t *testing.T) *game.Game {
	t.Helper()
	g := game.New()
	pos := []move.Coord{
		{Row: 2, Col: 1},                   // Cao Cao
		{Row: 0, Col: 1},                   // Guan Yu
		{Row: 0, Col: 0}, {Row: 0, Col: 3}, // Generals 1, 2
		{Row: 2, Col: 0}, {Row: 2, Col: 3}, // Generals 3, 4
		{Row: 4, Col: 0}, {Row: 1, Col: 1}, // Soldiers 1, 2
		{Row: 1, Col: 2}, {Row: 4, Col: 3}, // Soldiers 3, 4
	}
	if err := g.SetPositions(pos); err != nil {
		t.Fatal(err)
	}
	return g
}

func TestSolveOneStep(t *testing.T) {
	is := is.New(t)
	g := oneStepFromWin(t)

	res, err := Solve(g, board.UnsetBlockedID)
	is.NoErr(err)
	is.Equal(len(res.Steps), 1)
	is.Equal(res.Steps[0].PieceID, 0)
	is.Equal(res.Steps[0].From, move.Coord{Row: 2, Col: 1})
	is.Equal(res.Steps[0].To, move.Coord{Row: 3, Col: 1})
	is.True(res.UniqueStates >= 1)
}

func TestSolveAlreadyTerminal(t *testing.T) {
	is := is.New(t)
	g := oneStepFromWin(t)
	is.True(g.ApplyAction(move.Coord{Row: 2, Col: 1}, move.Coord{Row: 3, Col: 1}))
	is.True(g.IsTerminal())

	res, err := Solve(g, board.UnsetBlockedID)
	is.NoErr(err)
	is.Equal(len(res.Steps), 0)
}

func TestSolveDoesNotMutate(t *testing.T) {
	is := is.New(t)
	g := oneStepFromWin(t)
	before := g.String()

	_, err := Solve(g, board.UnsetBlockedID)
	is.NoErr(err)
	is.Equal(g.String(), before)
	is.Equal(g.MoveCount(), 0)
}

func TestSolveClassic(t *testing.T) {
	is := is.New(t)
	g := game.New()

	res, err := Solve(g, g.BlockedID())
	is.NoErr(err)
	is.True(len(res.Steps) > 0)

	// Every step must replay as a legal move on a fresh game, and the
	// final position must be a win.
	replay := game.New()
	for _, step := range res.Steps {
		p := replay.Board().PieceAt(step.From)
		is.True(p != nil)
		is.Equal(p.ID, step.PieceID)
		is.True(replay.ApplyAction(step.From, step.To))
	}
	is.True(replay.IsTerminal())
}

func TestSolveDeterministic(t *testing.T) {
	is := is.New(t)
	a, err := Solve(game.New(), board.UnsetBlockedID)
	is.NoErr(err)
	b, err := Solve(game.New(), board.UnsetBlockedID)
	is.NoErr(err)
	is.Equal(a.Steps, b.Steps)
}

func TestSolveHonorsBlockedPiece(t *testing.T) {
	is := is.New(t)

	// Blocking a bystander soldier leaves the one-step win intact, and no
	// step may ever use it.
	g := oneStepFromWin(t)
	res, err := Solve(g, 6)
	is.NoErr(err)
	is.Equal(len(res.Steps), 1)
	for _, step := range res.Steps {
		is.True(step.PieceID != 6)
	}

	// Blocking the primary piece makes the position hopeless.
	_, err = Solve(g, 0)
	is.True(errors.Is(err, ErrNoSolution))
}

func TestSolveShuffled(t *testing.T) {
	is := is.New(t)
	g := game.New()
	g.RandomShuffle(99)

	// Shuffles walk the legal-move graph, so the scramble is always
	// solvable when nothing is blocked.
	res, err := Solve(g, board.UnsetBlockedID)
	is.NoErr(err)

	replay := g.Clone()
	for _, step := range res.Steps {
		is.True(replay.ApplyAction(step.From, step.To))
	}
	is.True(replay.IsTerminal())
}

func TestHint(t *testing.T) {
	is := is.New(t)
	g := oneStepFromWin(t)

	step, err := Hint(g, board.UnsetBlockedID)
	is.NoErr(err)
	is.Equal(step.PieceID, 0)
	is.Equal(step.To, move.Coord{Row: 3, Col: 1})

	is.True(g.ApplyAction(step.From, step.To))
	_, err = Hint(g, board.UnsetBlockedID)
	is.True(err != nil)
}

func TestGridKeyCollapsesSameShapePieces(t *testing.T) {
	is := is.New(t)
	b := board.New(board.ClassicVariant())
	pos := b.Positions()

	key1 := gridKey(b, &pos)
	pos[6], pos[7] = pos[7], pos[6] // swap two soldiers
	key2 := gridKey(b, &pos)
	is.Equal(key1, key2)

	pos2 := pos
	pos2[0] = move.Coord{Row: 1, Col: 1}
	is.True(gridKey(b, &pos2) != key1)
}

func TestStateBudgetBounds(t *testing.T) {
	is := is.New(t)
	budget := stateBudget()
	is.True(budget >= 1<<16)
	is.True(budget <= 1<<22)
}
