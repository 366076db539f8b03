package groups

import (
	"fmt"
	"strings"
)

// Build arranges groups into a forest. Roots and children keep the relative
// order they had in the input slice.
func Build(groups []Group, opts ...BuildOption) ([]*Node, error) {
	o := buildOptions{unresolved: PromoteToRoot}
	for _, opt := range opts {
		opt(&o)
	}

	byID := make(map[string]*Node, len(groups))
	for _, g := range groups {
		if _, exists := byID[g.ID]; exists {
			return nil, fmt.Errorf("%w: %q", ErrDuplicateID, g.ID)
		}
		byID[g.ID] = &Node{Group: g, Children: []*Node{}}
	}

	if err := checkCycles(groups, byID); err != nil {
		return nil, err
	}

	roots := make([]*Node, 0)
	for _, g := range groups {
		node := byID[g.ID]
		parentID := g.ParentID()
		if parentID == "" {
			roots = append(roots, node)
			continue
		}

		parent, ok := byID[parentID]
		if !ok {
			if o.unresolved == RejectUnresolved {
				return nil, fmt.Errorf("%w: group %q references %q", ErrUnresolvedParent, g.ID, parentID)
			}
			roots = append(roots, node)
			continue
		}

		parent.Children = append(parent.Children, node)
	}

	return roots, nil
}

const (
	unvisited = iota
	visiting
	done
)

// checkCycles walks every parent chain once. A chain that runs back into a
// node still being visited is a cycle.
func checkCycles(groups []Group, byID map[string]*Node) error {
	state := make(map[string]int, len(groups))

	for _, g := range groups {
		var path []string
		cur := g.ID
		for {
			if state[cur] == done {
				break
			}
			if state[cur] == visiting {
				return fmt.Errorf("%w: %s", ErrCycle, cycleChain(path, cur))
			}
			state[cur] = visiting
			path = append(path, cur)

			parentID := byID[cur].ParentID()
			if _, ok := byID[parentID]; parentID == "" || !ok {
				break
			}
			cur = parentID
		}

		for _, id := range path {
			state[id] = done
		}
	}

	return nil
}

func cycleChain(path []string, start string) string {
	for i, id := range path {
		if id == start {
			return strings.Join(append(path[i:len(path):len(path)], start), " -> ")
		}
	}
	return start
}
