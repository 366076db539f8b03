package main

import (
	"slices"
	"strings"
)

// loadingState is a map of keys to boolean values
// to determine if a key is in a loading state
type loadingState map[string]bool

func newLoadingState(keys ...string) loadingState {
	l := make(loadingState, len(keys))
	for _, k := range keys {
		l[k] = false
	}
	return l
}

// set sets the key in the loading state
func (l loadingState) set(key string) {
	l[key] = true
}

// unset unsets the key in the loading state
func (l loadingState) unset(key string) {
	l[key] = false
}

// reset replaces the tracked keys, all pending.
func (l loadingState) reset(keys ...string) {
	clear(l)
	for _, k := range keys {
		l[k] = false
	}
}

// allLoaded returns true if all keys are loaded
func (l loadingState) allLoaded() (bool, string) {
	for k, v := range l {
		if !v {
			return false, k
		}
	}

	return true, ""
}

// pending lists the keys still loading, sorted.
func (l loadingState) pending() []string {
	var keys []string
	for k, v := range l {
		if !v {
			keys = append(keys, k)
		}
	}
	slices.Sort(keys)
	return keys
}

// describe renders the spinner caption.
func (l loadingState) describe() string {
	p := l.pending()
	if len(p) == 0 {
		return "Loading data..."
	}
	return "Loading " + strings.Join(p, ", ") + "..."
}
