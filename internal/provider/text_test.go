// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"strings"
	"testing"
	"unicode/utf8"

	"github.com/stretchr/testify/assert"
)

func TestCleanMarkup(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"<b>bold</b> text", "bold text"},
		{`<span class="search_word">AI</span> 반도체`, "AI 반도체"},
		{"line&amp;#xD;break", "linebreak"},
		{"R&amp;D", "R&D"},
		{"&lt;tag&gt;", "<tag>"},
		{"  padded  ", "padded"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := CleanMarkup(tt.in); got != tt.want {
			t.Errorf("CleanMarkup(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestTruncate(t *testing.T) {
	long := strings.Repeat("가", ListBudget+50)
	got := Truncate(long, ListBudget)
	assert.Equal(t, ListBudget+len(ellipsis), utf8.RuneCountInString(got))
	assert.True(t, strings.HasSuffix(got, "..."))

	exact := strings.Repeat("a", ListBudget)
	assert.Equal(t, exact, Truncate(exact, ListBudget), "text at the budget is unchanged")
	assert.Equal(t, "short", Truncate("short", DetailBudget))
}

func TestClipAtOrUnderBudgetOnlyStripsMarkup(t *testing.T) {
	in := "<p>연구 <b>초록</b></p>"
	assert.Equal(t, CleanMarkup(in), Clip(in, ListBudget))
}

func TestFormatEok(t *testing.T) {
	tests := []struct {
		in, want string
	}{
		{"150000000", "1.5억원"},
		{"100000000", "1.0억원"},
		{"1234500000000", "12,345.0억원"},
		{"49999999", "0.5억원"},
		{"0", "0.0억원"},
		{"미정", "미정"},
		{"1.5e8", "1.5e8"},
		{"", ""},
	}
	for _, tt := range tests {
		if got := FormatEok(tt.in); got != tt.want {
			t.Errorf("FormatEok(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFormatWon(t *testing.T) {
	assert.Equal(t, "1,234,567원", FormatWon("1234567"))
	assert.Equal(t, "N/A", FormatWon("N/A"))
}

func TestFirstNonEmpty(t *testing.T) {
	assert.Equal(t, "b", FirstNonEmpty("", "  ", "b", "c"))
	assert.Equal(t, "", FirstNonEmpty())
}

func TestField(t *testing.T) {
	var b strings.Builder
	Field(&b, "   - ", "저자", "홍길동")
	Field(&b, "   - ", "DOI", "  ")
	assert.Equal(t, "   - 저자: 홍길동\n", b.String())
}

func TestPageSize(t *testing.T) {
	assert.Equal(t, 10, PageSize(0, 10))
	assert.Equal(t, 100, PageSize(500, 10))
	assert.Equal(t, 7, PageSize(7, 10))
}
