// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataon

import (
	"fmt"
	"strings"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// Result kinds understood by Formatter.
const (
	KindDataset       = "research_data"
	KindDatasetDetail = "research_data_detail"
)

const (
	bullet       = "  - "
	listSubjects = 5
)

// flatten folds line breaks, including the escaped form some records carry,
// into spaces.
var flatten = strings.NewReplacer("\\r\\n", " ", "\r\n", " ", "\n", " ")

// Formatter renders datasets as markdown text.
type Formatter struct{}

// FormatSearchResults renders the dataset list.
func (Formatter) FormatSearchResults(records []Dataset, query string, total int, kind string) string {
	if kind != KindDataset {
		return "지원되지 않는 결과 타입: " + kind
	}

	var b strings.Builder
	b.WriteString("**DataON 연구데이터 검색 결과**\n")
	fmt.Fprintf(&b, "검색어: '%s' | 총 %s건 중 %d건 표시\n", query, provider.Comma(total), len(records))

	for i, d := range records {
		fmt.Fprintf(&b, "\n**[%d] %s**\n", i+1, orDefault(provider.CleanMarkup(d.Title.Join()), "제목 없음"))
		fmt.Fprintf(&b, "%s**svcId**: %s\n", bullet, orDefault(d.SvcID.Join(), "ID 없음"))
		provider.Field(&b, bullet, "**작성자**", d.Creators.Join())
		provider.Field(&b, bullet, "**발행기관**", d.Publishers.Join())
		provider.Field(&b, bullet, "**날짜**", d.Date.Join())
		provider.Field(&b, bullet, "**타입**", d.Type.Join())
		provider.Field(&b, bullet, "**주제어**", d.Subjects.Head(listSubjects).Join())
		provider.Field(&b, bullet, "**설명**", provider.Clip(flatten.Replace(d.Description.Join()), provider.ListBudget))
		provider.Field(&b, bullet, "**DOI**", d.DOI.Join())
		provider.Field(&b, bullet, "**데이터 링크**", d.LandingPage.Join())
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatDetailResult renders one dataset's metadata.
func (Formatter) FormatDetailResult(d Dataset, identifier, kind string) string {
	if kind != KindDatasetDetail {
		return "지원되지 않는 결과 타입: " + kind
	}

	var b strings.Builder
	b.WriteString("**DataON 연구데이터 상세정보**\n\n")
	fmt.Fprintf(&b, "**제목**: %s\n", orDefault(provider.CleanMarkup(d.Title.Join()), "제목 없음"))
	fmt.Fprintf(&b, "**svcId**: %s\n\n", orDefault(d.SvcID.Join(), identifier))

	b.WriteString("📋 **메타데이터**\n")
	provider.Field(&b, bullet, "**작성자**", d.Creators.Join())
	provider.Field(&b, bullet, "**기여자**", d.Contributor.Join())
	provider.Field(&b, bullet, "**발행기관**", d.Publishers.Join())
	provider.Field(&b, bullet, "**날짜**", d.Date.Join())
	provider.Field(&b, bullet, "**타입**", d.Type.Join())
	provider.Field(&b, bullet, "**포맷**", d.Formats.Join())
	provider.Field(&b, bullet, "**언어**", d.Language.Join())
	provider.Field(&b, bullet, "**범위**", d.Coverage.Join())
	provider.Field(&b, bullet, "**권리**", d.Rights.Join())
	provider.Field(&b, bullet, "**플랫폼**", d.Platform.Join())

	if s := d.Subjects.Join(); s != "" {
		fmt.Fprintf(&b, "\n🏷️ **주제어**: %s\n", s)
	}
	if desc := provider.Clip(flatten.Replace(d.Description.Join()), provider.DetailBudget); desc != "" {
		fmt.Fprintf(&b, "\n📝 **설명**:\n%s\n", desc)
	}
	if r := d.Relations.Join(); r != "" {
		fmt.Fprintf(&b, "\n🔗 **관련 정보**: %s\n", r)
	}
	if doi := d.DOI.Join(); doi != "" {
		fmt.Fprintf(&b, "\n🆔 **식별자**: %s\n", doi)
	}
	if link := d.LandingPage.Join(); link != "" {
		fmt.Fprintf(&b, "\n🔗 **데이터 링크**: %s\n", link)
	}
	return strings.TrimRight(b.String(), "\n")
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
