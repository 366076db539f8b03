package groups

import (
	"errors"
	"testing"

	"github.com/carlmjohnson/be"
)

func parent(id string) *ParentRef {
	return &ParentRef{ID: id}
}

func ids(nodes []*Node) []string {
	out := make([]string, len(nodes))
	for i, n := range nodes {
		out[i] = n.ID
	}
	return out
}

func TestBuildScenario(t *testing.T) {
	input := []Group{
		{ID: "1", Name: "Income"},
		{ID: "2", Name: "Sales", ParentGroup: parent("1")},
		{ID: "3", Name: "Rent", ParentGroup: parent("99")},
	}

	roots, err := Build(input)
	be.NilErr(t, err)

	be.AllEqual(t, []string{"1", "3"}, ids(roots))
	be.AllEqual(t, []string{"2"}, ids(roots[0].Children))
	be.Equal(t, 0, len(roots[1].Children))

	flat := Flatten(roots)
	be.Equal(t, 3, len(flat))
	be.Equal(t, "Income", flat[0].Name)
	be.Equal(t, 0, flat[0].Level)
	be.Equal(t, "Sales", flat[1].Name)
	be.Equal(t, 1, flat[1].Level)
	be.Equal(t, "  Sales", flat[1].DisplayName)
	be.Equal(t, "Rent", flat[2].Name)
	be.Equal(t, 0, flat[2].Level)
}

func TestBuildKeepsSiblingOrder(t *testing.T) {
	input := []Group{
		{ID: "c", Name: "C", ParentGroup: parent("root")},
		{ID: "root", Name: "Root"},
		{ID: "a", Name: "A", ParentGroup: parent("root")},
		{ID: "b", Name: "B", ParentGroup: parent("root")},
	}

	roots, err := Build(input)
	be.NilErr(t, err)
	be.AllEqual(t, []string{"root"}, ids(roots))
	be.AllEqual(t, []string{"c", "a", "b"}, ids(roots[0].Children))
}

func TestBuildIsRepeatable(t *testing.T) {
	input := []Group{
		{ID: "1", Name: "Assets"},
		{ID: "2", Name: "Cash", ParentGroup: parent("1")},
		{ID: "3", Name: "Bank", ParentGroup: parent("1")},
		{ID: "4", Name: "Petty Cash", ParentGroup: parent("2")},
		{ID: "5", Name: "Liabilities"},
	}

	first, err := Build(input)
	be.NilErr(t, err)
	second, err := Build(input)
	be.NilErr(t, err)

	be.AllEqual(t, Flatten(first), Flatten(second))
}

func TestBuildUnresolvedParentPolicy(t *testing.T) {
	input := []Group{
		{ID: "1", Name: "Expenses"},
		{ID: "2", Name: "Orphan", ParentGroup: parent("missing")},
	}

	roots, err := Build(input, WithUnresolvedParent(PromoteToRoot))
	be.NilErr(t, err)
	be.AllEqual(t, []string{"1", "2"}, ids(roots))

	_, err = Build(input, WithUnresolvedParent(RejectUnresolved))
	be.True(t, errors.Is(err, ErrUnresolvedParent))
}

func TestBuildDuplicateID(t *testing.T) {
	_, err := Build([]Group{{ID: "1", Name: "A"}, {ID: "1", Name: "B"}})
	be.True(t, errors.Is(err, ErrDuplicateID))
}

func TestBuildDetectsCycles(t *testing.T) {
	tests := []struct {
		name  string
		input []Group
	}{
		{
			name:  "self reference",
			input: []Group{{ID: "1", Name: "Loop", ParentGroup: parent("1")}},
		},
		{
			name: "two node loop",
			input: []Group{
				{ID: "1", Name: "A", ParentGroup: parent("2")},
				{ID: "2", Name: "B", ParentGroup: parent("1")},
			},
		},
		{
			name: "loop below a valid root",
			input: []Group{
				{ID: "root", Name: "Root"},
				{ID: "x", Name: "X", ParentGroup: parent("z")},
				{ID: "y", Name: "Y", ParentGroup: parent("x")},
				{ID: "z", Name: "Z", ParentGroup: parent("y")},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Build(tt.input)
			be.True(t, errors.Is(err, ErrCycle))
		})
	}
}

func TestBuildEmpty(t *testing.T) {
	roots, err := Build(nil)
	be.NilErr(t, err)
	be.Equal(t, 0, len(roots))
	be.Equal(t, 0, len(Flatten(roots)))
}

func TestParsePolicy(t *testing.T) {
	p, err := ParsePolicy("")
	be.NilErr(t, err)
	be.Equal(t, PromoteToRoot, p)

	p, err = ParsePolicy("error")
	be.NilErr(t, err)
	be.Equal(t, RejectUnresolved, p)

	_, err = ParsePolicy("bogus")
	be.Nonzero(t, err)
}
