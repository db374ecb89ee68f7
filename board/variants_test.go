package board

import (
	"testing"

	"github.com/matryer/is"

	"github.com/JimZhouZZY/klotski-sub001/move"
)

func TestVariantTableIntegrity(t *testing.T) {
	is := is.New(t)
	vs := Variants()
	is.True(len(vs) >= 6)

	seenIDs := map[int]bool{}
	seenNames := map[string]bool{}
	for _, v := range vs {
		is.True(!seenIDs[v.ID])
		is.True(!seenNames[v.Name])
		seenIDs[v.ID] = true
		seenNames[v.Name] = true

		// Cao Cao is always on the board, and never starts on the exit.
		is.True(v.Layout[PrimaryID] != Sentinel)
		is.True(v.Layout[PrimaryID] != (move.Coord{Row: 3, Col: 1}))

		// A blocked id names a real slot that is on the board.
		if v.BlockedID != UnsetBlockedID {
			is.True(v.BlockedID >= 0 && v.BlockedID < NumPieces)
			is.True(v.Layout[v.BlockedID] != Sentinel)
		}

		// No two on-board pieces overlap in the starting layout.
		b := New(&v)
		for i := 0; i < NumPieces; i++ {
			pi := b.Piece(i)
			if pi.OffBoard() {
				continue
			}
			is.True(InBounds(pi.Pos))
			is.True(InBounds(move.Coord{
				Row: pi.Pos.Row + pi.Height - 1,
				Col: pi.Pos.Col + pi.Width - 1,
			}))
			for j := i + 1; j < NumPieces; j++ {
				pj := b.Piece(j)
				if pj.OffBoard() {
					continue
				}
				is.True(!Overlaps(pi, pj.Pos, pj.Width, pj.Height))
			}
		}
	}
}

func TestClassicVariant(t *testing.T) {
	is := is.New(t)
	v := ClassicVariant()
	is.Equal(v.ID, 0)
	is.Equal(v.Name, "classic")
	is.Equal(v.BlockedID, UnsetBlockedID)
	for i := range v.Layout {
		is.True(v.Layout[i] != Sentinel)
	}
}

func TestVariantLookups(t *testing.T) {
	is := is.New(t)

	v, err := VariantByID(1)
	is.NoErr(err)
	is.Equal(v.Name, "enhanced-1")

	v, err = VariantByName("classic")
	is.NoErr(err)
	is.Equal(v.ID, 0)

	// Numeric strings fall back to id lookup.
	v, err = VariantByName("2")
	is.NoErr(err)
	is.Equal(v.Name, "enhanced-2")

	_, err = VariantByID(99)
	is.True(err != nil)
	_, err = VariantByName("bogus")
	is.True(err != nil)
}

func TestParseVariantsRejectsBadTables(t *testing.T) {
	is := is.New(t)

	_, err := parseVariants([]byte("variants: []"))
	is.True(err != nil)

	short := []byte(`
variants:
  - id: 0
    name: short
    blocked: -1
    positions:
      - [0, 1]
`)
	_, err = parseVariants(short)
	is.True(err != nil)

	_, err = parseVariants([]byte("not yaml: ["))
	is.True(err != nil)
}

func TestEnhancedVariantsDropGeneralFour(t *testing.T) {
	is := is.New(t)
	for id := 1; id <= 5; id++ {
		v, err := VariantByID(id)
		is.NoErr(err)
		is.Equal(v.Layout[5], Sentinel)
	}
}
