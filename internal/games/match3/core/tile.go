package core

import (
	"fmt"
	"strings"
)

// Kind is the base color of a tile.
type Kind uint8

// Base palette. KindWild is carried by rainbow tiles, which match any color.
const (
	KindRed Kind = iota
	KindGreen
	KindBlue
	KindYellow
	KindPurple
	KindCyan
	KindWild
)

// MaxPalette is the number of base colors available.
const MaxPalette = int(KindWild)

var kindNames = [...]string{"red", "green", "blue", "yellow", "purple", "cyan", "rainbow"}

// kindChars is the single-letter form used by Parse and String.
var kindChars = [...]rune{'R', 'G', 'B', 'Y', 'P', 'C', '*'}

func (k Kind) String() string {
	if int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("kind(%d)", k)
}

// Char returns the board letter for the kind.
func (k Kind) Char() rune {
	if int(k) < len(kindChars) {
		return kindChars[k]
	}
	return '?'
}

// IsWild reports whether the kind matches any color.
func (k Kind) IsWild() bool {
	return k == KindWild
}

// ParseKind accepts a color name ("red") or board letter ("R").
func ParseKind(s string) (Kind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range kindNames {
		if s == name || s == strings.ToLower(string(kindChars[i])) {
			return Kind(i), nil
		}
	}
	return 0, fmt.Errorf("core: unknown tile kind %q", s)
}

// Palette returns the first n base kinds, clamped to [1, MaxPalette].
func Palette(n int) []Kind {
	if n < 1 {
		n = 1
	}
	if n > MaxPalette {
		n = MaxPalette
	}
	kinds := make([]Kind, n)
	for i := range kinds {
		kinds[i] = Kind(i)
	}
	return kinds
}

// Special is the area-clearing variant of a tile.
type Special uint8

const (
	SpecialNone Special = iota
	SpecialStripedH
	SpecialStripedV
	SpecialWrapped
	SpecialBomb
	SpecialRainbow
)

var specialNames = [...]string{"none", "striped-h", "striped-v", "wrapped", "bomb", "rainbow"}

func (s Special) String() string {
	if int(s) < len(specialNames) {
		return specialNames[s]
	}
	return fmt.Sprintf("special(%d)", s)
}

// specialMarks follow a kind letter in the Parse and String board form.
var specialMarks = [...]rune{0, '-', '|', '+', '#', 0}

func (s Special) mark() rune {
	if int(s) < len(specialMarks) {
		return specialMarks[s]
	}
	return 0
}

func specialForMark(m rune) (Special, bool) {
	for i, r := range specialMarks {
		if r != 0 && r == m {
			return Special(i), true
		}
	}
	return SpecialNone, false
}

// ParseSpecial converts a special name back to its value.
func ParseSpecial(s string) (Special, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	for i, name := range specialNames {
		if s == name {
			return Special(i), nil
		}
	}
	return 0, fmt.Errorf("core: unknown special %q", s)
}

// Tile occupies one board cell. Pos mirrors the cell the tile sits in and is
// maintained by the Grid.
type Tile struct {
	Kind    Kind
	Special Special
	Pos     Coord
}

// NewTile returns a plain tile of the given kind.
func NewTile(k Kind) Tile {
	return Tile{Kind: k}
}

// NewSpecial returns a special tile. Rainbow tiles always carry KindWild.
func NewSpecial(k Kind, s Special) Tile {
	if s == SpecialRainbow {
		k = KindWild
	}
	return Tile{Kind: k, Special: s}
}

// IsSpecial reports whether the tile has an area effect or is a rainbow.
func (t Tile) IsSpecial() bool {
	return t.Special != SpecialNone
}

func (t Tile) String() string {
	if t.Special == SpecialNone {
		return t.Kind.String()
	}
	if t.Special == SpecialRainbow {
		return "rainbow"
	}
	return t.Kind.String() + "/" + t.Special.String()
}
