// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ntis

import (
	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// RelatedContent is one item linked to a project. Type is project, paper,
// patent, researchreport or unknown.
type RelatedContent struct {
	ID         string
	Title      string
	Type       string
	Similarity float64
	Rank       int
	CreatedAt  string
}

// RelatedSource is the project a related-content response describes.
type RelatedSource struct {
	ProjectID string
	Title     string
}

// resultTitleKeys maps the title key of a result item to its type.
var resultTitleKeys = []struct {
	key, typ string
}{
	{"PAPER_NM", "paper"},
	{"IPR_INVENTION_NM", "patent"},
	{"KOR_RPT_TITLE_NM", "researchreport"},
}

// parseRelated reads a ConnectionContent JSON document. exist=false yields an
// empty result; each item is classified by which identifying keys it carries.
func parseRelated(body []byte) (*ResultSet, error) {
	if !gjson.ValidBytes(body) {
		return nil, provider.Parse(provider.NTIS, errors.New("invalid JSON"), body)
	}
	doc := gjson.ParseBytes(body)
	if !doc.IsObject() {
		return nil, provider.Parse(provider.NTIS, errors.New("expected a JSON object"), body)
	}

	rs := &ResultSet{}
	if !doc.Get("exist").Bool() {
		return rs, nil
	}

	rs.Source = RelatedSource{
		ProjectID: doc.Get("PJT_ID").String(),
		Title:     doc.Get("KOR_PJT_NM").String(),
	}
	doc.Get("items").ForEach(func(_, item gjson.Result) bool {
		rs.Related = append(rs.Related, relatedItem(item))
		return true
	})
	rs.Total = len(rs.Related)
	return rs, nil
}

func relatedItem(item gjson.Result) RelatedContent {
	rc := RelatedContent{
		Similarity: item.Get("similarity_score").Float(),
		Rank:       int(item.Get("rank").Int()),
		CreatedAt:  item.Get("creat_dt").String(),
	}

	switch {
	case item.Get("PJT_ID").Exists():
		rc.ID = item.Get("PJT_ID").String()
		rc.Title = item.Get("KOR_PJT_NM").String()
		rc.Type = "project"
	case item.Get("RST_ID").Exists():
		rc.ID = item.Get("RST_ID").String()
		for _, tk := range resultTitleKeys {
			if v := item.Get(tk.key); v.Exists() {
				rc.Title = v.String()
				rc.Type = tk.typ
				break
			}
		}
		if rc.Type == "" {
			rc.Type = "unknown"
		}
	default:
		rc.ID = item.Raw
		rc.Title = item.Raw
		rc.Type = "unknown"
	}
	return rc
}
