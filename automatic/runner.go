package automatic

import (
	"context"
	"errors"
	"runtime"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/JimZhouZZY/klotski-sub001/game"
	"github.com/JimZhouZZY/klotski-sub001/solver"
)

// A JobResult records one shuffle (and optional solve) run.
type JobResult struct {
	Seed         [32]byte
	VariantID    int
	MovesApplied int
	Board        string
	// Solvable is meaningful only when solving was requested. An enhanced
	// variant can scramble into a position the blocked-piece solver cannot
	// undo, because the shuffle walk ignores the blocked id.
	Solvable    bool
	SolutionLen int
}

// RunShuffles shuffles one fresh game per seed, optionally solving each
// scrambled position, spreading the work over at most workers goroutines.
// Results are returned in seed order.
func RunShuffles(ctx context.Context, variantID int, seeds [][32]byte, workers int, solve bool) ([]JobResult, error) {
	if workers < 1 {
		workers = runtime.NumCPU()
	}
	results := make([]JobResult, len(seeds))

	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(workers)
	for i, seed := range seeds {
		i, seed := i, seed
		eg.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}
			g, err := game.NewVariant(variantID)
			if err != nil {
				return err
			}
			applied := g.RandomShuffleSeed(seed)
			res := JobResult{
				Seed:         seed,
				VariantID:    variantID,
				MovesApplied: applied,
				Board:        g.String(),
				SolutionLen:  -1,
			}
			if solve {
				sol, err := solver.Solve(g, g.BlockedID())
				switch {
				case err == nil:
					res.Solvable = true
					res.SolutionLen = len(sol.Steps)
				case errors.Is(err, solver.ErrNoSolution) || errors.Is(err, solver.ErrStateBudget):
					log.Warn().Int("job", i).Err(err).Msg("scramble not solvable")
				default:
					return err
				}
			}
			results[i] = res
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}
