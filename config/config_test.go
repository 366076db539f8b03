package config

import (
	"strings"
	"testing"

	"github.com/carlmjohnson/be"
)

func TestMaskSensitiveValue(t *testing.T) {
	tests := []struct {
		name     string
		value    string
		expected string
	}{
		{
			name:     "mask token",
			value:    "abc123def456",
			expected: "abc1********",
		},
		{
			name:     "mask short token",
			value:    "abc",
			expected: "***",
		},
		{
			name:     "empty token",
			value:    "",
			expected: "(not set)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result := maskSensitiveValue(tt.value)
			be.Equal(t, tt.expected, result)
		})
	}
}

func TestRows(t *testing.T) {
	rows := Rows(Config{
		Debug:                true,
		BaseURL:              "https://books.example.in",
		Token:                "eyJhbGciOi",
		Cookies:              "token=secret",
		FiscalYearStartMonth: 4,
		PageSize:             50,
		UnresolvedParent:     "promote",
	})

	values := make(map[string]string, len(rows))
	for _, r := range rows {
		be.Equal(t, 3, len(r))
		values[r[0]] = r[1]
	}

	be.Equal(t, "true", values["Debug"])
	be.Equal(t, "https://books.example.in", values["Base URL"])
	be.Equal(t, "eyJh******", values["Token"])
	be.Equal(t, "toke********", values["Cookies"])
	be.Equal(t, "(not set)", values["Token Store"])
	be.Equal(t, "4", values["Fiscal Year Start"])
	be.Equal(t, "50", values["Page Size"])
}

func TestSetConfig(t *testing.T) {
	m := New("#ffd644")
	m.SetConfig(Config{Token: "test-token-123456"})

	be.Equal(t, len(Rows(Config{})), len(m.configTable.Rows()))
	be.Equal(t, "test"+strings.Repeat("*", 13), m.configTable.Rows()[2][1])
}
