package main

import (
	"context"
	"testing"

	"github.com/carlmjohnson/be"
)

func TestViewScope(t *testing.T) {
	s := newViewScope(context.Background())

	ctx1, gen1 := s.open()
	be.Equal(t, 1, gen1)
	be.True(t, s.current(gen1))

	childCtx, childGen := s.child()
	be.Equal(t, gen1, childGen)
	be.Equal(t, ctx1, childCtx)

	ctx2, gen2 := s.open()
	be.Equal(t, 2, gen2)
	be.False(t, s.current(gen1))
	be.True(t, s.current(gen2))

	// opening a view cancels the previous one
	be.Equal(t, context.Canceled, ctx1.Err())
	be.NilErr(t, ctx2.Err())

	s.close()
	be.Equal(t, context.Canceled, ctx2.Err())
	s.close()
}

func TestViewScopeFollowsParent(t *testing.T) {
	parent, cancel := context.WithCancel(context.Background())
	s := newViewScope(parent)

	ctx, _ := s.open()
	cancel()
	be.Equal(t, context.Canceled, ctx.Err())
}
