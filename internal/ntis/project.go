// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ntis

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/xmltree"
)

// Passage is a long text field delivered in full and as a highlighted teaser.
type Passage struct {
	Full   string
	Teaser string
}

// Preferred returns the teaser when present, otherwise the full text.
func (p Passage) Preferred() string { return provider.FirstNonEmpty(p.Teaser, p.Full) }

// Project is one HIT of a project or recommendation search.
type Project struct {
	ProjectNumber   string
	TitleKorean     string
	TitleEnglish    string
	Manager         string
	Researchers     string
	ManCount        string
	WomanCount      string
	ResearchAgency  string
	OrderAgency     string
	BudgetProject   string
	Ministry        string
	ProjectYear     string
	PeriodStart     string
	PeriodEnd       string
	TotalStart      string
	TotalEnd        string
	GovernmentFunds string
	TotalFunds      string
	Goal            Passage
	Abstract        Passage
	Effect          Passage
	KeywordKorean   string
	KeywordEnglish  string

	// Legacy flat aliases. PjtID feeds related-content lookups.
	PjtNo           string
	PjtID           string
	PjtName         string
	Title           string
	ResearchManager string
	InstName        string
	PjtPeriod       string
	ResearchArea    string
	TotalExpense    string
	GovtExpense     string
	Summary         string
	KeywordText     string
}

// parseProjects reads a <RESULT> document with TOTALHITS and RESULTSET/HIT.
func parseProjects(body []byte) (*ResultSet, error) {
	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, provider.Parse(provider.NTIS, err, body)
	}

	totalText, ok := root.FindText("TOTALHITS")
	if !ok {
		return nil, provider.Parse(provider.NTIS, errors.New("TOTALHITS를 찾을 수 없습니다"), body)
	}
	resultSet := root.Find("RESULTSET")
	if resultSet == nil {
		return nil, provider.Parse(provider.NTIS, errors.New("RESULTSET을 찾을 수 없습니다"), body)
	}

	rs := &ResultSet{}
	rs.Total, _ = strconv.Atoi(totalText)
	for _, hit := range resultSet.Children {
		if hit.Name() != "HIT" {
			continue
		}
		rs.Projects = append(rs.Projects, projectFromHit(hit))
	}
	return rs, nil
}

// path returns the text at a descendant path such as "ProjectTitle/Korean".
// The first segment is searched at any depth, the rest as direct children.
func path(n *xmltree.Node, p string) string {
	segs := strings.Split(p, "/")
	cur := n.Find(segs[0])
	for _, s := range segs[1:] {
		if cur == nil {
			return ""
		}
		cur = cur.Child(s)
	}
	if cur == nil {
		return ""
	}
	return cur.Value()
}

func projectFromHit(hit *xmltree.Node) Project {
	p := Project{
		ProjectNumber:   path(hit, "ProjectNumber"),
		TitleKorean:     path(hit, "ProjectTitle/Korean"),
		TitleEnglish:    path(hit, "ProjectTitle/English"),
		Manager:         path(hit, "Manager/Name"),
		Researchers:     path(hit, "Researchers/Name"),
		ManCount:        path(hit, "Researchers/ManCount"),
		WomanCount:      path(hit, "Researchers/WomanCount"),
		ResearchAgency:  path(hit, "ResearchAgency/Name"),
		OrderAgency:     path(hit, "OrderAgency/Name"),
		BudgetProject:   path(hit, "BudgetProject/Name"),
		Ministry:        path(hit, "Ministry/Name"),
		ProjectYear:     path(hit, "ProjectYear"),
		PeriodStart:     path(hit, "ProjectPeriod/Start"),
		PeriodEnd:       path(hit, "ProjectPeriod/End"),
		TotalStart:      path(hit, "ProjectPeriod/TotalStart"),
		TotalEnd:        path(hit, "ProjectPeriod/TotalEnd"),
		GovernmentFunds: path(hit, "GovernmentFunds"),
		TotalFunds:      path(hit, "TotalFunds"),
		Goal:            Passage{Full: path(hit, "Goal/Full"), Teaser: path(hit, "Goal/Teaser")},
		Abstract:        Passage{Full: path(hit, "Abstract/Full"), Teaser: path(hit, "Abstract/Teaser")},
		Effect:          Passage{Full: path(hit, "Effect/Full"), Teaser: path(hit, "Effect/Teaser")},
		KeywordKorean:   path(hit, "Keyword/Korean"),
		KeywordEnglish:  path(hit, "Keyword/English"),
	}

	for _, sc := range hit.FindAll("ScienceClass") {
		if sc.Attr("type") == "new" && sc.Attr("sequence") == "1" {
			if large := sc.Child("Large"); large != nil {
				p.ResearchArea = large.Value()
			}
			break
		}
	}

	p.PjtNo = p.ProjectNumber
	p.PjtID = p.ProjectNumber
	p.PjtName = p.TitleKorean
	p.Title = p.TitleKorean
	p.ResearchManager = p.Manager
	p.InstName = p.ResearchAgency
	if len(p.PeriodStart) >= 4 && len(p.PeriodEnd) >= 4 {
		p.PjtPeriod = p.PeriodStart[:4] + "~" + p.PeriodEnd[:4]
	}
	if p.TotalFunds != "" {
		p.TotalExpense = provider.FormatWon(p.TotalFunds)
	}
	if p.GovernmentFunds != "" {
		p.GovtExpense = provider.FormatWon(p.GovernmentFunds)
	}
	p.Summary = provider.Clip(p.Goal.Full, provider.DetailBudget)
	p.KeywordText = provider.CleanMarkup(p.KeywordKorean)
	return p
}
