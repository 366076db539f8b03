// Package groups turns the flat list of accounting groups returned by the
// backend into a forest, and flattens that forest into an indented list for
// selection menus.
package groups

import (
	"errors"
	"fmt"
	"strings"
)

var (
	// ErrDuplicateID is returned when two groups share the same id.
	ErrDuplicateID = errors.New("duplicate group id")
	// ErrUnresolvedParent is returned under RejectUnresolved when a parent id
	// does not exist in the input.
	ErrUnresolvedParent = errors.New("unresolved parent group")
	// ErrCycle is returned when the parent references form a loop.
	ErrCycle = errors.New("cyclic parent group reference")
)

// ParentRef is the wire shape of a parent reference.
type ParentRef struct {
	ID string `json:"id"`
}

// Group is an accounting classification node as returned by GET /group.
type Group struct {
	ID          string     `json:"id"`
	Name        string     `json:"name"`
	Type        string     `json:"type,omitempty"`
	ParentGroup *ParentRef `json:"parentGroup,omitempty"`
}

// ParentID returns the referenced parent id, or "" for a root group.
func (g Group) ParentID() string {
	if g.ParentGroup == nil {
		return ""
	}
	return g.ParentGroup.ID
}

// Node is a group placed in the forest.
type Node struct {
	Group
	Children []*Node
}

// UnresolvedParentPolicy decides what happens to a group whose parent id is
// not present in the input.
type UnresolvedParentPolicy int

const (
	// PromoteToRoot silently turns the group into a root.
	PromoteToRoot UnresolvedParentPolicy = iota
	// RejectUnresolved fails the build with ErrUnresolvedParent.
	RejectUnresolved
)

func (p UnresolvedParentPolicy) String() string {
	switch p {
	case PromoteToRoot:
		return "promoteToRoot"
	case RejectUnresolved:
		return "error"
	}
	return "unknown"
}

// ParsePolicy maps a configuration string onto a policy.
func ParsePolicy(s string) (UnresolvedParentPolicy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "promotetoroot", "promote":
		return PromoteToRoot, nil
	case "error", "reject":
		return RejectUnresolved, nil
	}
	return PromoteToRoot, fmt.Errorf("unknown unresolved parent policy %q", s)
}

type buildOptions struct {
	unresolved UnresolvedParentPolicy
}

// BuildOption configures Build.
type BuildOption func(*buildOptions)

// WithUnresolvedParent sets the policy for parent ids missing from the input.
func WithUnresolvedParent(p UnresolvedParentPolicy) BuildOption {
	return func(o *buildOptions) {
		o.unresolved = p
	}
}
