// Package auth resolves the bearer token attached to backend requests.
//
// Tokens are looked up through a TokenProvider chain: cookies first, then a
// persistent key/value store. Each source checks the keys "token",
// "accessToken" and "jwt" in that order.
package auth

import (
	"context"
	"errors"
	"strings"
)

// ErrNoToken is returned when no source holds a token.
var ErrNoToken = errors.New("no auth token found")

// TokenKeys are the cookie and store keys checked, in order of precedence.
var TokenKeys = []string{"token", "accessToken", "jwt"}

// TokenProvider returns the token for the next outgoing request.
type TokenProvider interface {
	Token(ctx context.Context) (string, error)
}

// TokenFunc adapts a function to TokenProvider.
type TokenFunc func(ctx context.Context) (string, error)

func (f TokenFunc) Token(ctx context.Context) (string, error) {
	return f(ctx)
}

// Static always returns the same token. An empty Static yields ErrNoToken.
type Static string

func (s Static) Token(context.Context) (string, error) {
	if strings.TrimSpace(string(s)) == "" {
		return "", ErrNoToken
	}
	return string(s), nil
}

// Chain asks each provider in turn and returns the first token found.
// ErrNoToken from a provider moves on to the next one; any other error stops
// the chain.
type Chain []TokenProvider

func (c Chain) Token(ctx context.Context) (string, error) {
	for _, p := range c {
		if p == nil {
			continue
		}
		tok, err := p.Token(ctx)
		if errors.Is(err, ErrNoToken) {
			continue
		}
		if err != nil {
			return "", err
		}
		return tok, nil
	}
	return "", ErrNoToken
}
