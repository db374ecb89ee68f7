package stores

import (
	"context"
	"errors"
	"path/filepath"
	"testing"
	"time"

	"github.com/matryer/is"
)

const boardText = "G C C G \n" +
	"G C C G \n" +
	"G . . G \n" +
	"G Y Y G \n" +
	"S S S S \n"

func newTestStore(t *testing.T) *SaveStore {
	t.Helper()
	s, err := Open(filepath.Join(t.TempDir(), "saves.db"))
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestSaveAndLoad(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)
	ctx := context.Background()

	sv := &SavedGame{Slot: "slot1", VariantID: 0, Board: boardText, MoveCount: 12}
	is.NoErr(s.Save(ctx, sv))

	got, err := s.Load(ctx, "slot1")
	is.NoErr(err)
	is.Equal(got.Slot, "slot1")
	is.Equal(got.VariantID, 0)
	is.Equal(got.Board, boardText)
	is.Equal(got.MoveCount, 12)
	is.True(!got.CreatedAt.IsZero())
}

func TestSaveOverwritesSlot(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)
	ctx := context.Background()

	is.NoErr(s.Save(ctx, &SavedGame{Slot: "a", VariantID: 0, Board: boardText, MoveCount: 1}))
	is.NoErr(s.Save(ctx, &SavedGame{Slot: "a", VariantID: 2, Board: boardText, MoveCount: 7}))

	got, err := s.Load(ctx, "a")
	is.NoErr(err)
	is.Equal(got.VariantID, 2)
	is.Equal(got.MoveCount, 7)

	saves, err := s.List(ctx)
	is.NoErr(err)
	is.Equal(len(saves), 1)
}

func TestLoadMissingSlot(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)

	_, err := s.Load(context.Background(), "nope")
	is.True(errors.Is(err, ErrNoSuchSave))
}

func TestListNewestFirst(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)
	is.NoErr(s.Save(ctx, &SavedGame{Slot: "old", Board: boardText, CreatedAt: base}))
	is.NoErr(s.Save(ctx, &SavedGame{Slot: "new", Board: boardText, CreatedAt: base.Add(time.Hour)}))

	saves, err := s.List(ctx)
	is.NoErr(err)
	is.Equal(len(saves), 2)
	is.Equal(saves[0].Slot, "new")
	is.Equal(saves[1].Slot, "old")
}

func TestDelete(t *testing.T) {
	is := is.New(t)
	s := newTestStore(t)
	ctx := context.Background()

	is.NoErr(s.Save(ctx, &SavedGame{Slot: "gone", Board: boardText}))
	is.NoErr(s.Delete(ctx, "gone"))

	_, err := s.Load(ctx, "gone")
	is.True(errors.Is(err, ErrNoSuchSave))

	is.True(errors.Is(s.Delete(ctx, "gone"), ErrNoSuchSave))
}

func TestOpenIsIdempotent(t *testing.T) {
	is := is.New(t)
	path := filepath.Join(t.TempDir(), "saves.db")

	s, err := Open(path)
	is.NoErr(err)
	is.NoErr(s.Save(context.Background(), &SavedGame{Slot: "x", Board: boardText}))
	is.NoErr(s.Close())

	// Reopening migrates harmlessly and sees the old rows.
	s2, err := Open(path)
	is.NoErr(err)
	defer s2.Close()
	got, err := s2.Load(context.Background(), "x")
	is.NoErr(err)
	is.Equal(got.Board, boardText)
}
