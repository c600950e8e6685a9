// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package provider

import (
	"regexp"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/dustin/go-humanize"
)

// Character budgets for free-text fields.
const (
	ListBudget         = 300
	DetailBudget       = 500
	RelatedTitleBudget = 200
)

// WonPerEok is the number of won in one 억 (10^8), the unit funding figures
// are displayed in.
const WonPerEok = 100_000_000

const ellipsis = "..."

var tagPattern = regexp.MustCompile(`<[^>]+>`)

// entityReplacer unescapes the entities the providers leave in text fields.
// The double-escaped carriage return is listed before &amp; so it wins.
var entityReplacer = strings.NewReplacer(
	"&amp;#xD;", "",
	"&#xD;", "",
	"&lt;", "<",
	"&gt;", ">",
	"&quot;", `"`,
	"&#39;", "'",
	"&nbsp;", " ",
	"&amp;", "&",
)

// FirstNonEmpty returns the first value that is not blank.
func FirstNonEmpty(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

// CleanMarkup strips markup tags, unescapes a fixed set of entities and trims.
func CleanMarkup(s string) string {
	if s == "" {
		return ""
	}
	return strings.TrimSpace(entityReplacer.Replace(tagPattern.ReplaceAllString(s, "")))
}

// Truncate shortens s to n characters followed by "..." when it is longer
// than n characters. Shorter text is returned unchanged.
func Truncate(s string, n int) string {
	if n <= 0 || utf8.RuneCountInString(s) <= n {
		return s
	}
	runes := []rune(s)
	return string(runes[:n]) + ellipsis
}

// Snippet is Truncate without the ellipsis, for diagnostics.
func Snippet(s string, n int) string {
	if utf8.RuneCountInString(s) <= n {
		return s
	}
	return string([]rune(s)[:n])
}

// Clip cleans markup and truncates to the budget.
func Clip(s string, budget int) string {
	return Truncate(CleanMarkup(s), budget)
}

// Comma groups an integer with thousands separators.
func Comma(n int) string {
	return humanize.Comma(int64(n))
}

// parseDigits returns s as an integer if it consists only of ASCII digits.
func parseDigits(s string) (int64, bool) {
	s = strings.TrimSpace(s)
	if s == "" {
		return 0, false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return 0, false
		}
	}
	n, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, false
	}
	return n, true
}

// FormatEok renders a won amount in 억원 with one decimal place and grouped
// thousands. Anything that is not a plain digit string is returned as is.
func FormatEok(s string) string {
	n, ok := parseDigits(s)
	if !ok {
		return s
	}
	const tenth = WonPerEok / 10
	tenths := (n + tenth/2) / tenth
	return humanize.Comma(tenths/10) + "." + strconv.FormatInt(tenths%10, 10) + "억원"
}

// FormatWon renders a won amount with grouped thousands. Anything that is
// not a plain digit string is returned as is.
func FormatWon(s string) string {
	n, ok := parseDigits(s)
	if !ok {
		return s
	}
	return humanize.Comma(n) + "원"
}

// Field appends "<prefix><label>: <value>\n" to b unless value is blank.
func Field(b *strings.Builder, prefix, label, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	b.WriteString(prefix)
	b.WriteString(label)
	b.WriteString(": ")
	b.WriteString(value)
	b.WriteByte('\n')
}
