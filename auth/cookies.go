package auth

import (
	"context"
	"fmt"
	"net/http"
	"net/http/cookiejar"
	"net/url"

	"golang.org/x/net/publicsuffix"
)

// CookieSource reads the token from the cookies held for the backend origin.
type CookieSource struct {
	jar    http.CookieJar
	origin *url.URL
}

// NewCookieSource creates a cookie jar for origin and seeds it with the
// cookies in header, written as a Cookie header value
// ("token=abc; jwt=def"). An empty header gives an empty jar.
func NewCookieSource(origin, header string) (*CookieSource, error) {
	u, err := url.Parse(origin)
	if err != nil {
		return nil, fmt.Errorf("parsing cookie origin: %w", err)
	}

	jar, err := cookiejar.New(&cookiejar.Options{PublicSuffixList: publicsuffix.List})
	if err != nil {
		return nil, fmt.Errorf("creating cookie jar: %w", err)
	}

	if header != "" {
		cookies, err := http.ParseCookie(header)
		if err != nil {
			return nil, fmt.Errorf("parsing cookies: %w", err)
		}
		for _, c := range cookies {
			c.Path = "/"
		}
		jar.SetCookies(u, cookies)
	}

	return &CookieSource{jar: jar, origin: u}, nil
}

// Jar exposes the underlying jar so the HTTP client can share it.
func (s *CookieSource) Jar() http.CookieJar {
	return s.jar
}

func (s *CookieSource) Token(context.Context) (string, error) {
	values := make(map[string]string)
	for _, c := range s.jar.Cookies(s.origin) {
		values[c.Name] = c.Value
	}
	for _, k := range TokenKeys {
		if v := values[k]; v != "" {
			return v, nil
		}
	}
	return "", ErrNoToken
}
