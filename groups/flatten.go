package groups

import "strings"

const indent = "  "

// FlatGroup is one row of a flattened forest.
type FlatGroup struct {
	Group
	Level       int    `json:"level"`
	DisplayName string `json:"displayName"`
}

// Flatten walks the forest depth first, parents before children, and returns
// every node. DisplayName is the name indented two spaces per level.
func Flatten(roots []*Node) []FlatGroup {
	out := make([]FlatGroup, 0, count(roots))
	var walk func(nodes []*Node, level int)
	walk = func(nodes []*Node, level int) {
		for _, n := range nodes {
			out = append(out, FlatGroup{
				Group:       n.Group,
				Level:       level,
				DisplayName: strings.Repeat(indent, level) + n.Name,
			})
			walk(n.Children, level+1)
		}
	}
	walk(roots, 0)
	return out
}

// BuildFlat is Build followed by Flatten.
func BuildFlat(groups []Group, opts ...BuildOption) ([]FlatGroup, error) {
	roots, err := Build(groups, opts...)
	if err != nil {
		return nil, err
	}
	return Flatten(roots), nil
}

func count(nodes []*Node) int {
	n := len(nodes)
	for _, c := range nodes {
		n += count(c.Children)
	}
	return n
}
