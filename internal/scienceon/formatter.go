// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scienceon

import (
	"fmt"
	"strings"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// maxCitations caps the citation list.
const maxCitations = 10

const bullet = "  - "

// Formatter renders ScienceON records as markdown text.
type Formatter struct{}

// FormatSearchResults renders a result list with a count header.
func (Formatter) FormatSearchResults(records []Record, query string, total int, kind Kind) string {
	var entries []string
	var footer string
	switch kind {
	case KindArticle:
		for _, r := range records {
			entries = append(entries, articleEntry(r.Article()))
		}
		footer = "\n💡 특정 논문의 상세정보를 원하면 CN번호를 이용해 논문 상세보기를 사용하세요."
	case KindPatent:
		for _, r := range records {
			entries = append(entries, patentEntry(r.Patent()))
		}
		footer = "\n💡 특정 특허의 상세정보나 인용정보를 원하면 CN번호를 이용해 특허 상세보기를 사용하세요."
	case KindReport:
		for _, r := range records {
			entries = append(entries, reportEntry(r.Report()))
		}
		footer = "\n💡 특정 보고서의 상세정보를 원하면 CN번호를 이용해 보고서 상세보기를 사용하세요."
	default:
		return "지원되지 않는 결과 타입: " + string(kind)
	}

	return fmt.Sprintf("**'%s' %s 검색 결과** (총 %s건 중 %d건 표시):\n\n", query, kind.Label(), provider.Comma(total), len(entries)) +
		strings.Join(entries, "\n") + footer
}

func articleEntry(a Article) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", orDefault(provider.CleanMarkup(a.Title), "제목 없음"))
	provider.Field(&b, bullet, "저자", a.Author)
	provider.Field(&b, bullet, "연도", a.PubYear)
	provider.Field(&b, bullet, "📖 저널", a.Journal)
	provider.Field(&b, bullet, "🔗 논문번호(CN)", a.CN)
	provider.Field(&b, bullet, "📝 초록", provider.Clip(a.Abstract, provider.ListBudget))
	return b.String()
}

func patentEntry(p Patent) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", orDefault(provider.CleanMarkup(p.Title), "특허제목 없음"))
	provider.Field(&b, bullet, "출원인", p.Applicants)
	provider.Field(&b, bullet, "출원일", p.ApplDate)
	provider.Field(&b, bullet, "📰 공개일", p.PublDate)
	provider.Field(&b, bullet, "특허상태", p.Status)
	provider.Field(&b, bullet, "IPC분류", p.IPC)
	provider.Field(&b, bullet, "🔗 특허번호(CN)", p.CN)
	provider.Field(&b, bullet, "📝 초록", provider.Clip(p.Abstract, provider.ListBudget))
	return b.String()
}

func reportEntry(r Report) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**%s**\n", orDefault(provider.CleanMarkup(r.Title), "보고서제목 없음"))
	provider.Field(&b, bullet, "저자", r.Author)
	provider.Field(&b, bullet, "발행연도", r.PubYear)
	provider.Field(&b, bullet, "🏢 발행기관", r.Publisher)
	provider.Field(&b, bullet, "🔗 보고서번호(CN)", r.CN)
	provider.Field(&b, bullet, "📝 초록", provider.Clip(r.Abstract, provider.ListBudget))
	return b.String()
}

// FormatDetailResult renders one record in full.
func (Formatter) FormatDetailResult(r Record, cn string, kind Kind) string {
	switch kind {
	case KindArticle:
		return articleDetail(r.Article(), cn)
	case KindPatent:
		return patentDetail(r.Patent(), cn)
	case KindReport:
		return reportDetail(r.Report(), cn)
	}
	return "지원되지 않는 결과 타입: " + string(kind)
}

func articleDetail(a Article, cn string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**논문 상세정보 (CN: %s)**\n\n", cn)
	fmt.Fprintf(&b, "**제목**: %s\n", orDefault(provider.CleanMarkup(a.Title), "제목 없음"))
	provider.Field(&b, "", "👤 **저자**", a.Author)
	provider.Field(&b, "", "📅 **연도**", a.PubYear)
	provider.Field(&b, "", "📖 **저널**", a.Journal)
	provider.Field(&b, "", "🔗 **DOI**", a.DOI)
	provider.Field(&b, bullet, "**키워드**", a.Keyword)
	abstractBlock(&b, a.Abstract)
	provider.Field(&b, bullet, "**원문 URL**", a.FulltextURL)
	provider.Field(&b, bullet, "**ScienceON 링크**", a.ContentURL)
	relatedBlock(&b, "**유사 논문**", a.SimilarTitle)
	relatedBlock(&b, "**인용 논문**", a.CitingTitle)
	relatedBlock(&b, "**참고 논문**", a.CitedTitle)
	return b.String()
}

func patentDetail(p Patent, cn string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**특허 상세정보 (CN: %s)**\n\n", cn)
	fmt.Fprintf(&b, "**특허제목**: %s\n", orDefault(provider.CleanMarkup(p.Title), "특허제목 없음"))
	provider.Field(&b, "", "👥 **출원인**", p.Applicants)
	provider.Field(&b, "", "📅 **출원일**", p.ApplDate)
	provider.Field(&b, "", "📰 **공개일**", p.PublDate)
	provider.Field(&b, "", "**특허상태**", p.Status)
	provider.Field(&b, "", "🏷️ **IPC분류**", p.IPC)
	provider.Field(&b, bullet, "**국가**", p.Nation)
	abstractBlock(&b, p.Abstract)
	provider.Field(&b, bullet, "**ScienceON 링크**", p.ContentURL)
	relatedBlock(&b, "**유사 특허**", p.SimilarTitle)
	relatedBlock(&b, "**인용 특허**", p.CitingTitle)
	return b.String()
}

func reportDetail(r Report, cn string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "**보고서 상세정보 (CN: %s)**\n\n", cn)
	fmt.Fprintf(&b, "**제목**: %s\n", orDefault(provider.CleanMarkup(r.Title), "보고서제목 없음"))
	provider.Field(&b, "", "👤 **저자**", r.Author)
	provider.Field(&b, "", "📅 **발행연도**", r.PubYear)
	provider.Field(&b, "", "🏢 **발행기관**", r.Publisher)
	provider.Field(&b, bullet, "**키워드**", r.Keyword)
	abstractBlock(&b, r.Abstract)
	provider.Field(&b, bullet, "**원문 URL**", r.FulltextURL)
	provider.Field(&b, bullet, "**ScienceON 링크**", r.ContentURL)
	relatedBlock(&b, "**인용 논문**", r.CitedPaper)
	relatedBlock(&b, "**인용 특허**", r.CitedPatent)
	relatedBlock(&b, "**인용 보고서**", r.CitedReport)
	return b.String()
}

func abstractBlock(b *strings.Builder, abstract string) {
	text := provider.Clip(abstract, provider.DetailBudget)
	if text == "" {
		return
	}
	fmt.Fprintf(b, "\n📝 **초록**:\n%s\n\n", text)
}

func relatedBlock(b *strings.Builder, label, titles string) {
	provider.Field(b, bullet, label, provider.Truncate(strings.TrimSpace(titles), provider.RelatedTitleBudget))
}

// FormatCitations renders the patents linked to cn, at most maxCitations.
func (Formatter) FormatCitations(records []Record, cn string) string {
	if len(records) == 0 {
		return fmt.Sprintf("CN번호 '%s'에 대한 인용/피인용 정보가 없습니다.", cn)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**특허 인용/피인용 정보 (CN: %s)**\n\n", cn)
	shown := records
	if len(shown) > maxCitations {
		shown = shown[:maxCitations]
	}
	entries := make([]string, 0, len(shown))
	for _, r := range shown {
		p := r.Patent()
		var e strings.Builder
		fmt.Fprintf(&e, "**%s**\n", orDefault(provider.CleanMarkup(p.Title), "특허제목 없음"))
		provider.Field(&e, bullet, "출원인", p.Applicants)
		provider.Field(&e, bullet, "출원일", p.ApplDate)
		provider.Field(&e, bullet, "특허상태", p.Status)
		provider.Field(&e, bullet, "CN", p.CN)
		entries = append(entries, e.String())
	}
	b.WriteString(strings.Join(entries, "\n"))
	if len(records) > maxCitations {
		fmt.Fprintf(&b, "\n총 %d건 중 %d건만 표시되었습니다.", len(records), maxCitations)
	}
	return b.String()
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
