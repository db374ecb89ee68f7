package game

import (
	"encoding/binary"

	"github.com/rs/zerolog/log"
	"lukechampine.com/frand"
)

// ShuffleSteps caps the scramble walk.
const ShuffleSteps = 100

// RandomShuffle scrambles the board with a deterministic seeded random
// walk over the legal-move graph: up to ShuffleSteps times, pick one of
// the currently legal moves uniformly and apply it, stopping early when
// none remain. Because every intermediate position is reached by a legal
// move, the result is always solvable back to the starting layout.
// It returns the number of moves applied.
func (g *Game) RandomShuffle(seed uint64) int {
	var s [32]byte
	binary.LittleEndian.PutUint64(s[:8], seed)
	return g.RandomShuffleSeed(s)
}

// RandomShuffleSeed is RandomShuffle with a full 32-byte seed, as stored
// in the automatic package's seed files.
func (g *Game) RandomShuffleSeed(seed [32]byte) int {
	rng := frand.NewCustom(seed[:], 1024, 12)

	applied := 0
	for i := 0; i < ShuffleSteps; i++ {
		legal := g.LegalMoves()
		if len(legal) == 0 {
			break
		}
		m := legal[rng.Intn(len(legal))]
		if g.ApplyAction(m.From, m.To) {
			applied++
		}
	}
	log.Debug().Int("applied", applied).Msg("shuffled board")
	return applied
}
