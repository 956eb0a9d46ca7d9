package core

// Orientation is the axis of a straight run.
type Orientation uint8

const (
	Horizontal Orientation = iota
	Vertical
)

func (o Orientation) String() string {
	if o == Vertical {
		return "vertical"
	}
	return "horizontal"
}

// Run is a maximal straight line of three or more compatible tiles.
// Kind is the run's color, or KindWild when every tile is a rainbow.
type Run struct {
	Kind        Kind
	Orientation Orientation
	Coords      []Coord
}

// Len returns the run length.
func (r Run) Len() int {
	return len(r.Coords)
}

// FindRuns returns all maximal horizontal runs followed by all maximal
// vertical runs, each in scan order.
func FindRuns(g *Grid) []Run {
	var runs []Run
	for r := 0; r < g.Rows; r++ {
		runs = scanLine(g, runs, Horizontal, g.Cols, func(i int) Coord { return C(r, i) })
	}
	for c := 0; c < g.Cols; c++ {
		runs = scanLine(g, runs, Vertical, g.Rows, func(i int) Coord { return C(i, c) })
	}
	return runs
}

// scanLine extracts runs from one row or column. A run that stops on a
// conflicting color restarts from its trailing rainbow tiles, since those
// may also extend the next color.
func scanLine(g *Grid, runs []Run, o Orientation, n int, at func(int) Coord) []Run {
	i := 0
	for i < n {
		t := g.at(at(i))
		if t == nil {
			i++
			continue
		}
		color := KindWild
		j := i
		conflict := false
		for j < n {
			cur := g.at(at(j))
			if cur == nil {
				break
			}
			if !cur.Kind.IsWild() {
				if color == KindWild {
					color = cur.Kind
				} else if cur.Kind != color {
					conflict = true
					break
				}
			}
			j++
		}
		if j-i >= 3 {
			run := Run{Kind: color, Orientation: o, Coords: make([]Coord, 0, j-i)}
			for k := i; k < j; k++ {
				run.Coords = append(run.Coords, at(k))
			}
			runs = append(runs, run)
		}
		next := j
		if conflict {
			for next-1 > i && g.at(at(next-1)).Kind.IsWild() {
				next--
			}
		}
		if next == i {
			next = i + 1
		}
		i = next
	}
	return runs
}

// Group is a set of same-colored runs that touch, such as the two arms of
// an L or T shape. Coords are unique and row-major.
type Group struct {
	Kind       Kind
	Coords     []Coord
	Horizontal bool
	Vertical   bool
	// Longest is the length of the longest straight run in the group.
	Longest int
}

// Size returns the number of distinct cells in the group.
func (g Group) Size() int {
	return len(g.Coords)
}

// Shaped reports whether the group joins a horizontal and a vertical run.
func (g Group) Shaped() bool {
	return g.Horizontal && g.Vertical
}

// Anchor is the middle element of the group's coordinate list, where a
// created special is placed.
func (g Group) Anchor() Coord {
	return g.Coords[len(g.Coords)/2]
}

// Groups merges runs of the same color that share at least one cell.
func Groups(runs []Run) []Group {
	parent := make([]int, len(runs))
	for i := range parent {
		parent[i] = i
	}
	find := func(i int) int {
		for parent[i] != i {
			parent[i] = parent[parent[i]]
			i = parent[i]
		}
		return i
	}

	owner := make(map[Coord][]int)
	for i, r := range runs {
		for _, c := range r.Coords {
			for _, j := range owner[c] {
				if runs[j].Kind == r.Kind {
					if a, b := find(i), find(j); a != b {
						if a < b {
							parent[b] = a
						} else {
							parent[a] = b
						}
					}
				}
			}
			owner[c] = append(owner[c], i)
		}
	}

	index := make(map[int]int)
	var groups []Group
	for i, r := range runs {
		root := find(i)
		gi, ok := index[root]
		if !ok {
			gi = len(groups)
			index[root] = gi
			groups = append(groups, Group{Kind: r.Kind})
		}
		grp := &groups[gi]
		if r.Orientation == Horizontal {
			grp.Horizontal = true
		} else {
			grp.Vertical = true
		}
		if r.Len() > grp.Longest {
			grp.Longest = r.Len()
		}
		grp.Coords = append(grp.Coords, r.Coords...)
	}
	for i := range groups {
		groups[i].Coords = uniqueCoords(groups[i].Coords)
	}
	return groups
}

func uniqueCoords(cs []Coord) []Coord {
	sortCoords(cs)
	out := make([]Coord, 0, len(cs))
	for _, c := range cs {
		if n := len(out); n > 0 && out[n-1] == c {
			continue
		}
		out = append(out, c)
	}
	return out
}
