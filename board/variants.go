package board

import (
	_ "embed"
	"fmt"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/JimZhouZZY/klotski-sub001/move"
)

// Shape is the immutable identity shared by a piece slot across all
// variants. The abbreviation is shared within a class (all soldiers are
// 'S') and only disambiguates serialization; identity is always the id.
type Shape struct {
	Name   string
	Abbrev byte
	Width  int
	Height int
}

// Catalogue lists the ten piece slots. Slot 0 is Cao Cao, the primary
// 2x2 piece.
var Catalogue = [NumPieces]Shape{
	{"Cao Cao", 'C', 2, 2},
	{"Guan Yu", 'Y', 2, 1},
	{"General 1", 'G', 1, 2},
	{"General 2", 'G', 1, 2},
	{"General 3", 'G', 1, 2},
	{"General 4", 'G', 1, 2},
	{"Soldier 1", 'S', 1, 1},
	{"Soldier 2", 'S', 1, 1},
	{"Soldier 3", 'S', 1, 1},
	{"Soldier 4", 'S', 1, 1},
}

// UnsetBlockedID is the sentinel meaning no piece is blocked.
const UnsetBlockedID = -1

// A Variant is a named starting layout plus an optional blocked piece:
// the blocked piece occupies space and collides normally but is refused
// as a move source by the interactive per-piece query.
type Variant struct {
	ID        int
	Name      string
	BlockedID int
	Layout    [NumPieces]move.Coord
}

//go:embed variants.yaml
var variantsYAML []byte

type variantsFile struct {
	Variants []struct {
		ID        int      `yaml:"id"`
		Name      string   `yaml:"name"`
		Blocked   int      `yaml:"blocked"`
		Positions [][2]int `yaml:"positions"`
	} `yaml:"variants"`
}

var variants []Variant

func init() {
	vs, err := parseVariants(variantsYAML)
	if err != nil {
		panic("bad embedded variant table: " + err.Error())
	}
	variants = vs
}

func parseVariants(raw []byte) ([]Variant, error) {
	var f variantsFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, err
	}
	if len(f.Variants) == 0 {
		return nil, fmt.Errorf("no variants defined")
	}
	vs := make([]Variant, 0, len(f.Variants))
	for _, fv := range f.Variants {
		if len(fv.Positions) != NumPieces {
			return nil, fmt.Errorf("variant %q: expected %d positions, got %d",
				fv.Name, NumPieces, len(fv.Positions))
		}
		v := Variant{ID: fv.ID, Name: fv.Name, BlockedID: fv.Blocked}
		for i, p := range fv.Positions {
			v.Layout[i] = move.Coord{Row: p[0], Col: p[1]}
		}
		vs = append(vs, v)
	}
	return vs, nil
}

// Variants returns all defined variants in declaration order.
func Variants() []Variant {
	out := make([]Variant, len(variants))
	copy(out, variants)
	return out
}

// VariantByID looks a variant up by its numeric id.
func VariantByID(id int) (*Variant, error) {
	for i := range variants {
		if variants[i].ID == id {
			return &variants[i], nil
		}
	}
	return nil, fmt.Errorf("no variant with id %d", id)
}

// VariantByName looks a variant up by name; a numeric string falls back
// to an id lookup, so menu selectors can pass either.
func VariantByName(name string) (*Variant, error) {
	for i := range variants {
		if variants[i].Name == name {
			return &variants[i], nil
		}
	}
	if id, err := strconv.Atoi(name); err == nil {
		return VariantByID(id)
	}
	return nil, fmt.Errorf("no variant named %q", name)
}

// ClassicVariant returns the default ten-piece layout.
func ClassicVariant() *Variant {
	return &variants[0]
}
