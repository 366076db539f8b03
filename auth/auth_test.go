package auth

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/carlmjohnson/be"
)

func TestCookieSourcePrecedence(t *testing.T) {
	tests := []struct {
		name    string
		header  string
		want    string
		wantErr error
	}{
		{name: "token wins", header: "jwt=j; accessToken=a; token=t", want: "t"},
		{name: "accessToken before jwt", header: "jwt=j; accessToken=a", want: "a"},
		{name: "jwt only", header: "jwt=j", want: "j"},
		{name: "unrelated cookies", header: "session=s", wantErr: ErrNoToken},
		{name: "empty", header: "", wantErr: ErrNoToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			src, err := NewCookieSource("https://books.example.com/api", tt.header)
			be.NilErr(t, err)

			got, err := src.Token(context.Background())
			if tt.wantErr != nil {
				be.True(t, errors.Is(err, tt.wantErr))
				return
			}
			be.NilErr(t, err)
			be.Equal(t, tt.want, got)
		})
	}
}

func TestFileStoreRoundTrip(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "nested", "tokens.toml"))

	_, err := store.Token(context.Background())
	be.True(t, errors.Is(err, ErrNoToken))

	be.NilErr(t, store.Set("jwt", "from-jwt"))
	got, err := store.Token(context.Background())
	be.NilErr(t, err)
	be.Equal(t, "from-jwt", got)

	be.NilErr(t, store.Set("token", "from-token"))
	got, err = store.Token(context.Background())
	be.NilErr(t, err)
	be.Equal(t, "from-token", got)

	v, ok, err := store.Get("jwt")
	be.NilErr(t, err)
	be.True(t, ok)
	be.Equal(t, "from-jwt", v)

	be.NilErr(t, store.Delete("token"))
	got, err = store.Token(context.Background())
	be.NilErr(t, err)
	be.Equal(t, "from-jwt", got)
}

func TestChainCookiesBeforeStore(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "tokens.toml"))
	be.NilErr(t, store.Set("token", "stored"))

	cookies, err := NewCookieSource("https://books.example.com", "accessToken=cookie")
	be.NilErr(t, err)

	got, err := Chain{cookies, store}.Token(context.Background())
	be.NilErr(t, err)
	be.Equal(t, "cookie", got)

	empty, err := NewCookieSource("https://books.example.com", "")
	be.NilErr(t, err)

	got, err = Chain{empty, store}.Token(context.Background())
	be.NilErr(t, err)
	be.Equal(t, "stored", got)
}

func TestChainStopsOnHardError(t *testing.T) {
	boom := errors.New("boom")
	chain := Chain{
		Static(""),
		TokenFunc(func(context.Context) (string, error) { return "", boom }),
		Static("never"),
	}

	_, err := chain.Token(context.Background())
	be.True(t, errors.Is(err, boom))
}

func TestChainEmpty(t *testing.T) {
	_, err := Chain{}.Token(context.Background())
	be.True(t, errors.Is(err, ErrNoToken))
}
