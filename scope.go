package main

import (
	"context"
)

// viewScope owns the context of the open view. Opening a view cancels the
// previous one and bumps the generation; responses tagged with an older
// generation are stale and dropped.
type viewScope struct {
	parent context.Context
	ctx    context.Context
	cancel context.CancelFunc
	gen    int
}

func newViewScope(parent context.Context) *viewScope {
	return &viewScope{parent: parent, ctx: parent}
}

// open cancels in-flight work of the previous view and returns the context
// and generation of the new one.
func (s *viewScope) open() (context.Context, int) {
	s.close()
	s.gen++
	s.ctx, s.cancel = context.WithCancel(s.parent)
	return s.ctx, s.gen
}

// child returns the open view's context without starting a new generation,
// for follow-up requests such as the next page.
func (s *viewScope) child() (context.Context, int) {
	return s.ctx, s.gen
}

func (s *viewScope) close() {
	if s.cancel != nil {
		s.cancel()
		s.cancel = nil
	}
}

// current reports whether a response of generation gen belongs to the open
// view.
func (s *viewScope) current(gen int) bool {
	return gen == s.gen
}
