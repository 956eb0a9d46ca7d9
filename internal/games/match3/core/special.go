package core

// SpecialCreator decides which special tile, if any, a matched group leaves
// behind at its anchor.
type SpecialCreator struct {
	rules Rules
	rng   Rand
}

// NewSpecialCreator returns a creator using rules and rng.
func NewSpecialCreator(rules Rules, rng Rand) *SpecialCreator {
	return &SpecialCreator{rules: rules, rng: rng}
}

// Decide applies the creation rules in priority order; the first that
// applies wins. Only plain 3-runs consume randomness.
func (sc *SpecialCreator) Decide(g Group) Special {
	size := g.Size()
	switch {
	case sc.rules.RainbowSize > 0 && g.Longest >= sc.rules.RainbowSize:
		return SpecialRainbow
	case size >= 5:
		return SpecialBomb
	case size == 4:
		if g.Horizontal {
			return SpecialStripedH
		}
		return SpecialStripedV
	case g.Shaped():
		return SpecialWrapped
	case size == 3:
		if sc.rng != nil && sc.rules.WrappedChance > 0 && sc.rng.Float64() < sc.rules.WrappedChance {
			return SpecialWrapped
		}
	}
	return SpecialNone
}

// Create returns the tile placed at the group's anchor, or false when the
// group produces nothing. The tile keeps the group's color.
func (sc *SpecialCreator) Create(g Group) (Tile, Coord, bool) {
	if g.Size() == 0 {
		return Tile{}, Coord{}, false
	}
	s := sc.Decide(g)
	if s == SpecialNone {
		return Tile{}, Coord{}, false
	}
	if g.Kind.IsWild() && s != SpecialRainbow {
		return Tile{}, Coord{}, false
	}
	return NewSpecial(g.Kind, s), g.Anchor(), true
}
