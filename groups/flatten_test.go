package groups

import (
	"testing"

	"github.com/carlmjohnson/be"
)

func TestFlattenOrder(t *testing.T) {
	d := &Node{Group: Group{ID: "D", Name: "D"}}
	b := &Node{Group: Group{ID: "B", Name: "B"}, Children: []*Node{d}}
	c := &Node{Group: Group{ID: "C", Name: "C"}}
	a := &Node{Group: Group{ID: "A", Name: "A"}, Children: []*Node{b, c}}

	flat := Flatten([]*Node{a})

	got := make([]string, len(flat))
	for i, f := range flat {
		got[i] = f.ID
	}
	be.AllEqual(t, []string{"A", "B", "D", "C"}, got)
	be.Equal(t, "    D", flat[2].DisplayName)
}

func TestFlattenLevelsMatchAncestorCount(t *testing.T) {
	input := []Group{
		{ID: "1", Name: "Assets"},
		{ID: "2", Name: "Current Assets", ParentGroup: parent("1")},
		{ID: "3", Name: "Cash", ParentGroup: parent("2")},
		{ID: "4", Name: "Counter Cash", ParentGroup: parent("3")},
		{ID: "5", Name: "Fixed Assets", ParentGroup: parent("1")},
		{ID: "6", Name: "Income"},
	}

	flat, err := BuildFlat(input)
	be.NilErr(t, err)
	be.Equal(t, len(input), len(flat))

	byID := make(map[string]Group, len(input))
	for _, g := range input {
		byID[g.ID] = g
	}

	for _, f := range flat {
		ancestors := 0
		for p := byID[f.ID].ParentID(); p != ""; p = byID[p].ParentID() {
			ancestors++
		}
		be.Equal(t, ancestors, f.Level)
	}
}

func TestFlattenDoesNotMutate(t *testing.T) {
	child := &Node{Group: Group{ID: "2", Name: "Sales"}}
	root := &Node{Group: Group{ID: "1", Name: "Income"}, Children: []*Node{child}}

	_ = Flatten([]*Node{root})

	be.Equal(t, "Sales", child.Name)
	be.Equal(t, 1, len(root.Children))
}
