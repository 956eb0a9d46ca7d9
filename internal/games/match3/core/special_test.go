package core_test

import (
	"testing"

	"github.com/vovakirdan/tui-match3/internal/games/match3/core"
)

func straight(o core.Orientation, n int) core.Group {
	grp := core.Group{Kind: core.KindRed, Longest: n}
	for i := 0; i < n; i++ {
		if o == core.Horizontal {
			grp.Coords = append(grp.Coords, core.C(2, 1+i))
			grp.Horizontal = true
		} else {
			grp.Coords = append(grp.Coords, core.C(1+i, 2))
			grp.Vertical = true
		}
	}
	return grp
}

func TestSpecialCreatorDecide(t *testing.T) {
	shaped3 := core.Group{
		Kind:       core.KindRed,
		Coords:     []core.Coord{core.C(0, 0), core.C(0, 1), core.C(1, 0)},
		Horizontal: true,
		Vertical:   true,
		Longest:    2,
	}
	lShape := core.Group{
		Kind:       core.KindRed,
		Coords:     []core.Coord{core.C(0, 0), core.C(0, 1), core.C(0, 2), core.C(1, 0), core.C(2, 0)},
		Horizontal: true,
		Vertical:   true,
		Longest:    3,
	}

	tests := []struct {
		name    string
		group   core.Group
		roll    float64
		rainbow int
		want    core.Special
	}{
		{"three without luck", straight(core.Horizontal, 3), 0.5, 0, core.SpecialNone},
		{"three with luck", straight(core.Horizontal, 3), 0.05, 0, core.SpecialWrapped},
		{"four horizontal", straight(core.Horizontal, 4), 0.5, 0, core.SpecialStripedH},
		{"four vertical", straight(core.Vertical, 4), 0.5, 0, core.SpecialStripedV},
		{"five straight", straight(core.Horizontal, 5), 0.5, 0, core.SpecialBomb},
		{"L shape of five is a bomb", lShape, 0.5, 0, core.SpecialBomb},
		{"shaped group below five", shaped3, 0.5, 0, core.SpecialWrapped},
		{"rainbow before bomb", straight(core.Vertical, 5), 0.5, 5, core.SpecialRainbow},
		{"rainbow threshold not reached", straight(core.Vertical, 5), 0.5, 6, core.SpecialBomb},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rules := core.DefaultRules()
			rules.RainbowSize = tt.rainbow
			sc := core.NewSpecialCreator(rules, constRand{f: tt.roll})
			if got := sc.Decide(tt.group); got != tt.want {
				t.Errorf("Decide() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestSpecialCreatorAnchor(t *testing.T) {
	sc := core.NewSpecialCreator(core.DefaultRules(), constRand{f: 0.9})

	tile, anchor, ok := sc.Create(straight(core.Horizontal, 4))
	if !ok {
		t.Fatal("four in a row should create a special")
	}
	// Columns 1..4: the middle of the list is index 2, column 3.
	if anchor != core.C(2, 3) {
		t.Errorf("anchor = %v, want (2,3)", anchor)
	}
	if tile.Kind != core.KindRed || tile.Special != core.SpecialStripedH {
		t.Errorf("tile = %v, want red/striped-h", tile)
	}

	if _, _, ok := sc.Create(straight(core.Horizontal, 3)); ok {
		t.Error("unlucky three should create nothing")
	}
}

func TestSpecialCreatorWrappedChanceIsConfigurable(t *testing.T) {
	rules := core.DefaultRules()
	rules.WrappedChance = 0
	sc := core.NewSpecialCreator(rules, constRand{f: 0})
	if got := sc.Decide(straight(core.Horizontal, 3)); got != core.SpecialNone {
		t.Errorf("zero chance produced %v", got)
	}

	rules.WrappedChance = 1
	sc = core.NewSpecialCreator(rules, constRand{f: 0.999})
	if got := sc.Decide(straight(core.Horizontal, 3)); got != core.SpecialWrapped {
		t.Errorf("certain chance produced %v", got)
	}
}
