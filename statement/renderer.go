package statement

// MaxLevel is the deepest level rendered. Roots are level 0.
const MaxLevel = 1

// Line is one rendered row of the statement.
type Line struct {
	ID       string
	Name     string
	Amount   string
	Level    int
	Negative bool
}

// Root reports whether the line is a root header.
func (l Line) Root() bool {
	return l.Level == 0
}

type memoEntry struct {
	node  Node
	level int
	lines []Line
}

// Renderer turns statement nodes into lines. It keeps the lines of every
// node it rendered and hands them back unchanged while the node's id,
// balance, level and children are unchanged.
type Renderer struct {
	memo   map[string]memoEntry
	hits   int
	misses int
}

// NewRenderer returns an empty renderer.
func NewRenderer() *Renderer {
	return &Renderer{memo: make(map[string]memoEntry)}
}

// Render renders each root and its direct children. Grandchildren are never
// rendered.
func (r *Renderer) Render(roots []Node) []Line {
	var lines []Line
	seen := make(map[string]struct{}, len(roots))
	for _, n := range roots {
		lines = append(lines, r.renderNode(n, 0, seen)...)
	}

	for id := range r.memo {
		if _, ok := seen[id]; !ok {
			delete(r.memo, id)
		}
	}

	return lines
}

// Stats returns how many nodes were reused and how many were rendered.
func (r *Renderer) Stats() (hits, misses int) {
	return r.hits, r.misses
}

func (r *Renderer) renderNode(n Node, level int, seen map[string]struct{}) []Line {
	seen[n.ID] = struct{}{}

	if prev, ok := r.memo[n.ID]; ok && unchanged(prev, n, level) {
		r.hits++
		if level < MaxLevel {
			for _, c := range n.Children {
				seen[c.ID] = struct{}{}
			}
		}
		return prev.lines
	}
	r.misses++

	lines := []Line{{
		ID:       n.ID,
		Name:     n.Name,
		Amount:   FormatBalance(n.Balance, n.BalanceType),
		Level:    level,
		Negative: n.Balance.IsNegative(),
	}}

	if level < MaxLevel {
		for _, c := range n.Children {
			lines = append(lines, r.renderNode(c, level+1, seen)...)
		}
	}

	r.memo[n.ID] = memoEntry{node: n, level: level, lines: lines}
	return lines
}

func unchanged(prev memoEntry, n Node, level int) bool {
	return prev.level == level &&
		prev.node.Balance.Equal(n.Balance) &&
		Equal(prev.node, n)
}
