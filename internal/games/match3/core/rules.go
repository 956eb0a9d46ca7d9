package core

// Rand is the random source consumed by the engine. *math/rand.Rand
// satisfies it; tests substitute scripted sources.
type Rand interface {
	Intn(n int) int
	Float64() float64
}

// PointTable assigns a score value to each tile variant when it is removed.
type PointTable struct {
	Normal  int `yaml:"normal"`
	Striped int `yaml:"striped"`
	Wrapped int `yaml:"wrapped"`
	Bomb    int `yaml:"bomb"`
	Rainbow int `yaml:"rainbow"`
}

// For returns the point value of a removed tile with the given special.
func (p PointTable) For(s Special) int {
	switch s {
	case SpecialStripedH, SpecialStripedV:
		return p.Striped
	case SpecialWrapped:
		return p.Wrapped
	case SpecialBomb:
		return p.Bomb
	case SpecialRainbow:
		return p.Rainbow
	default:
		return p.Normal
	}
}

// Rules holds every tunable of the board engine.
type Rules struct {
	// Palette is the number of base colors dealt onto the board (3..6).
	Palette int
	// WrappedChance is the probability that a plain 3-run spawns a wrapped tile.
	WrappedChance float64
	// RainbowSize, when positive, turns straight runs at least this long into
	// rainbow tiles ahead of the bomb rule. Zero disables rainbow creation.
	RainbowSize int
	// Points is the per-tile score table.
	Points PointTable
	// MaxCascades bounds the number of cycles one resolution may take.
	MaxCascades int
	// ReshuffleAttempts is the number of random redraws before the greedy fallback.
	ReshuffleAttempts int
	// FillAttempts bounds regeneration of a fresh board before the greedy fallback.
	FillAttempts int
}

// DefaultRules returns the stock tuning.
func DefaultRules() Rules {
	return Rules{
		Palette:       MaxPalette,
		WrappedChance: 0.10,
		Points: PointTable{
			Normal:  10,
			Striped: 30,
			Wrapped: 60,
			Bomb:    100,
			Rainbow: 200,
		},
		MaxCascades:       100,
		ReshuffleAttempts: 10,
		FillAttempts:      1000,
	}
}

// Normalize clamps out-of-range values to workable ones.
func (r Rules) Normalize() Rules {
	def := DefaultRules()
	if r.Palette < 3 {
		r.Palette = 3
	}
	if r.Palette > MaxPalette {
		r.Palette = MaxPalette
	}
	if r.WrappedChance < 0 {
		r.WrappedChance = 0
	}
	if r.WrappedChance > 1 {
		r.WrappedChance = 1
	}
	if r.RainbowSize < 0 {
		r.RainbowSize = 0
	}
	if r.MaxCascades <= 0 {
		r.MaxCascades = def.MaxCascades
	}
	if r.ReshuffleAttempts <= 0 {
		r.ReshuffleAttempts = def.ReshuffleAttempts
	}
	if r.FillAttempts <= 0 {
		r.FillAttempts = def.FillAttempts
	}
	return r
}
