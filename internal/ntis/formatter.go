// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ntis

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

const bullet = "  - "

// queryEcho bounds how much of a classification abstract is echoed back.
const queryEcho = 100

var sectionNames = map[string]string{
	SectionHealthWelfare: "보건복지부",
	SectionIndustryTrade: "산업통상자원부",
}

// Formatter renders NTIS result sets as markdown text.
type Formatter struct{}

// FormatSearchResults renders rs as the list view for kind. For related
// content, query is unused and the collection heading is taken from kind.
func (f Formatter) FormatSearchResults(rs *ResultSet, query string, kind Kind) string {
	switch {
	case kind == KindProject:
		return f.projects(rs.Projects, query, rs.Total)
	case kind == KindRecommendation:
		return f.recommendations(rs.Projects, query, rs.Total)
	case kind.classification():
		return f.classifications(rs.Classifications, query, rs.Total, schemeOf(kind))
	case kind.related():
		return f.related(rs.Related, rs.Total, collectionOf(kind))
	}
	return "지원되지 않는 결과 타입: " + string(kind)
}

func (Formatter) projects(projects []Project, query string, total int) string {
	entries := make([]string, 0, len(projects))
	for _, p := range projects {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**\n", orDefault(provider.CleanMarkup(p.TitleKorean), "과제명 없음"))
		provider.Field(&b, bullet, "영문명", p.TitleEnglish)
		provider.Field(&b, bullet, "👤 연구책임자", p.Manager)
		provider.Field(&b, bullet, "연구기관", p.ResearchAgency)
		provider.Field(&b, bullet, "관리기관", p.OrderAgency)
		provider.Field(&b, bullet, "기준년도", p.ProjectYear)
		if p.PeriodStart != "" && p.PeriodEnd != "" {
			provider.Field(&b, bullet, "연구기간", p.PeriodStart+" ~ "+p.PeriodEnd)
		}
		if p.TotalStart != "" && p.TotalEnd != "" {
			provider.Field(&b, bullet, "총 연구기간", firstToken(p.TotalStart)+" ~ "+firstToken(p.TotalEnd))
		}
		provider.Field(&b, bullet, "사업명", p.BudgetProject)
		provider.Field(&b, bullet, "부처", p.Ministry)
		provider.Field(&b, bullet, "정부지원금", provider.FormatEok(p.GovernmentFunds))
		provider.Field(&b, bullet, "총 연구비", provider.FormatEok(p.TotalFunds))
		provider.Field(&b, bullet, "👥 참여연구원", researchers(p))
		provider.Field(&b, bullet, "**연구목표**", provider.Clip(p.Goal.Preferred(), provider.ListBudget))
		provider.Field(&b, bullet, "📝 **연구내용**", provider.Clip(p.Abstract.Preferred(), provider.ListBudget))
		provider.Field(&b, bullet, "**기대효과**", provider.Clip(p.Effect.Preferred(), provider.ListBudget))
		provider.Field(&b, bullet, "**한글키워드**", provider.CleanMarkup(p.KeywordKorean))
		provider.Field(&b, bullet, "**영문키워드**", provider.CleanMarkup(p.KeywordEnglish))
		provider.Field(&b, bullet, "🔗 **과제번호**", p.ProjectNumber)
		entries = append(entries, b.String())
	}

	return fmt.Sprintf("**'%s' 국가R&D 과제 검색 결과** (총 %s건 중 %d건 표시):\n\n", query, provider.Comma(total), len(entries)) +
		strings.Join(entries, "\n") +
		"\n💡 과제번호로 상세정보나 연관콘텐츠(논문, 특허, 보고서)를 조회할 수 있습니다."
}

// researchers renders the head count with the gender split when both counts
// are numeric.
func researchers(p Project) string {
	men, menOK := atoi(p.ManCount)
	women, womenOK := atoi(p.WomanCount)
	if men+women <= 0 {
		return ""
	}
	s := strconv.Itoa(men+women) + "명"
	if menOK && womenOK {
		s += fmt.Sprintf(" (남:%d, 여:%d)", men, women)
	}
	return s
}

func (Formatter) recommendations(projects []Project, query string, total int) string {
	entries := make([]string, 0, len(projects))
	for _, p := range projects {
		var b strings.Builder
		fmt.Fprintf(&b, "**%s**\n", orDefault(provider.CleanMarkup(p.Title), "제목 없음"))
		provider.Field(&b, bullet, "콘텐츠유형", "국가R&D 과제")
		provider.Field(&b, bullet, "저자/연구자", p.ResearchManager)
		provider.Field(&b, bullet, "기관", p.InstName)
		provider.Field(&b, bullet, "과제기간", p.PjtPeriod)
		provider.Field(&b, bullet, "ID", p.PjtID)
		entries = append(entries, b.String())
	}
	return fmt.Sprintf("**'%s' 연관콘텐츠 추천 결과** (총 %s건 중 %d건 표시):\n\n", query, provider.Comma(total), len(entries)) +
		strings.Join(entries, "\n")
}

func (Formatter) classifications(items []Classification, query string, total int, scheme Scheme) string {
	entries := make([]string, 0, len(items))
	for _, c := range items {
		var b strings.Builder
		switch c.Section {
		case SectionDisease:
			fmt.Fprintf(&b, "**%s** (%s)\n", c.DiseaseName, c.DiseaseCode)
			provider.Field(&b, bullet, "매칭점수", c.Score)
			provider.Field(&b, bullet, "분류", "질병분류 (MOHWD)")
		case SectionIndustry:
			switch {
			case c.Name != "" || c.Code != "":
				fmt.Fprintf(&b, "**%s** (%s)\n", orDefault(c.Name, "산업기술분류"), c.Code)
			default:
				var pairs []string
				for _, a := range c.Attributes {
					if strings.HasSuffix(a.Key, "_weight") {
						continue
					}
					pairs = append(pairs, a.Key+":"+a.Value)
					if len(pairs) == 3 {
						break
					}
				}
				fmt.Fprintf(&b, "**산업기술분류** (%s)\n", strings.Join(pairs, ", "))
			}
			provider.Field(&b, bullet, "매칭점수", c.Score)
			provider.Field(&b, bullet, "분류", "산업기술분류 (INDUSTRY)")
		default:
			code := provider.FirstNonEmpty(c.SmallCode, c.MediumCode, c.LargeCode)
			name := provider.FirstNonEmpty(c.SmallName, c.MediumName, c.LargeName)
			fmt.Fprintf(&b, "**%s** (%s)\n", name, code)
			provider.Field(&b, bullet, "매칭점수", c.Score)
			provider.Field(&b, bullet, "분류체계", classTrail(c))
			if c.Section != "" {
				provider.Field(&b, bullet, "분류", orDefault(sectionNames[c.Section], c.Section)+" ("+c.Section+")")
			}
		}
		entries = append(entries, b.String())
	}

	return fmt.Sprintf("**%s 추천 결과** (총 %s건 추천):\n\n입력 초록: %s\n\n", scheme.Name(), provider.Comma(total), provider.Truncate(query, queryEcho)) +
		strings.Join(entries, "\n")
}

// classTrail renders "large > medium > small" when more than one level is
// distinct; a level whose code repeats its parent's is skipped.
func classTrail(c Classification) string {
	var levels []string
	if c.LargeName != "" && c.LargeCode != "" {
		levels = append(levels, c.LargeName+"("+c.LargeCode+")")
	}
	if c.MediumName != "" && c.MediumCode != "" && c.MediumCode != c.LargeCode {
		levels = append(levels, c.MediumName+"("+c.MediumCode+")")
	}
	if c.SmallName != "" && c.SmallCode != "" && c.SmallCode != c.MediumCode {
		levels = append(levels, c.SmallName+"("+c.SmallCode+")")
	}
	if len(levels) < 2 {
		return ""
	}
	return strings.Join(levels, " > ")
}

func (Formatter) related(items []RelatedContent, total int, collection Collection) string {
	if len(items) == 0 {
		return "관련 콘텐츠가 없습니다."
	}
	entries := make([]string, 0, len(items))
	for _, rc := range items {
		var b strings.Builder
		fmt.Fprintf(&b, "* **%s**\n", orDefault(provider.Clip(rc.Title, provider.RelatedTitleBudget), "제목 없음"))
		provider.Field(&b, bullet, "ID", rc.ID)
		if rc.Rank != 0 {
			provider.Field(&b, bullet, "순위", strconv.Itoa(rc.Rank))
		}
		if rc.Similarity != 0 {
			provider.Field(&b, bullet, "유사도", fmt.Sprintf("%.3f", rc.Similarity))
		}
		provider.Field(&b, bullet, "생성일", rc.CreatedAt)
		entries = append(entries, b.String())
	}
	return fmt.Sprintf("## %s (%s건)\n\n", collection.Section(), provider.Comma(total)) + strings.Join(entries, "\n")
}

// FormatDetailResult renders one project in full using its flat aliases.
func (Formatter) FormatDetailResult(p Project, identifier string, kind Kind) string {
	if kind != KindProject {
		return "지원되지 않는 결과 타입: " + string(kind)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "**R&D 과제 상세정보 (과제번호: %s)**\n\n", identifier)
	fmt.Fprintf(&b, "**과제명**: %s\n", orDefault(provider.CleanMarkup(p.PjtName), "과제명 없음"))
	provider.Field(&b, "", "**영문 과제명**", p.TitleEnglish)
	provider.Field(&b, "", "🏢 **수행기관**", p.InstName)
	provider.Field(&b, "", "**관리기관**", p.OrderAgency)
	provider.Field(&b, "", "📅 **과제기간**", p.PjtPeriod)
	provider.Field(&b, "", "**연구분야**", p.ResearchArea)
	provider.Field(&b, "", "👤 **연구책임자**", p.ResearchManager)
	provider.Field(&b, "", "**부처**", p.Ministry)
	provider.Field(&b, "", "**사업명**", p.BudgetProject)
	provider.Field(&b, "", "💰 **총 연구비**", p.TotalExpense)
	provider.Field(&b, "", "💵 **정부지원금**", p.GovtExpense)
	provider.Field(&b, bullet, "**키워드**", p.KeywordText)
	if p.Summary != "" {
		fmt.Fprintf(&b, "\n📝 **과제요약**:\n%s\n", p.Summary)
	}
	if abstract := provider.Clip(p.Abstract.Full, provider.DetailBudget); abstract != "" {
		fmt.Fprintf(&b, "\n📝 **연구내용**:\n%s\n", abstract)
	}
	if effect := provider.Clip(p.Effect.Full, provider.DetailBudget); effect != "" {
		fmt.Fprintf(&b, "\n**기대효과**:\n%s\n", effect)
	}
	return b.String()
}

func firstToken(s string) string {
	if f := strings.Fields(s); len(f) > 0 {
		return f[0]
	}
	return s
}

func atoi(s string) (int, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return n, true
}

func orDefault(s, def string) string {
	if strings.TrimSpace(s) == "" {
		return def
	}
	return s
}
