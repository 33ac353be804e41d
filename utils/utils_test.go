package utils

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPageID(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"https://www.linkedin.com/company/deepsolv", "deepsolv"},
		{"https://www.linkedin.com/company/deepsolv/", "deepsolv"},
		{"linkedin.com/company/Acme-Corp", "acme-corp"},
		{"https://www.linkedin.com/in/aldrin-thomas/", "aldrin-thomas"},
		{"deepsolv", "deepsolv"},
		{"DeepSolv", "deepsolv"},
		{"https://example.com/company-ish/page", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			require.Equal(t, tt.want, ExtractPageID(tt.input))
		})
	}
}

func TestValidateURL(t *testing.T) {
	valid := []string{
		"https://www.linkedin.com/company/deepsolv",
		"linkedin.com/in/aldrin-thomas",
		"deepsolv",
		"acme-corp",
	}
	for _, u := range valid {
		require.True(t, ValidateURL(u), u)
	}

	invalid := []string{
		"",
		"https://example.com/company/foo",
		"not a url at all",
	}
	for _, u := range invalid {
		require.False(t, ValidateURL(u), u)
	}
}

func TestCleanText(t *testing.T) {
	require.Equal(t, "a b c", CleanText("  a\n\tb   c  "))
	require.Equal(t, "", CleanText(""))
}

func TestFormatNumber(t *testing.T) {
	tests := []struct {
		in   int
		want string
	}{
		{0, "0"},
		{-5, "0"},
		{999, "999"},
		{1500, "1.5K"},
		{1200000, "1.2M"},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, FormatNumber(tt.in))
	}
}
