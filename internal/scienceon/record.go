// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scienceon

import (
	"strconv"

	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/xmltree"
)

// Record maps each item's metaCode to its text.
type Record map[string]string

// get returns the first non-blank value among keys.
func (r Record) get(keys ...string) string {
	values := make([]string, len(keys))
	for i, k := range keys {
		values[i] = r[k]
	}
	return provider.FirstNonEmpty(values...)
}

// Article is a literature record with aliases resolved.
type Article struct {
	CN           string
	Title        string
	Author       string
	PubYear      string
	Journal      string
	Abstract     string
	DOI          string
	Keyword      string
	FulltextURL  string
	ContentURL   string
	SimilarTitle string
	CitingTitle  string
	CitedTitle   string
}

// Article resolves r as a literature record.
func (r Record) Article() Article {
	return Article{
		CN:           r.get("CN"),
		Title:        r.get("Title", "TI"),
		Author:       r.get("Author", "AU"),
		PubYear:      r.get("Pubyear", "PY"),
		Journal:      r.get("JournalName", "SO"),
		Abstract:     r.get("Abstract", "AB"),
		DOI:          r.get("DOI"),
		Keyword:      r.get("Keyword", "KW"),
		FulltextURL:  r.get("FulltextURL"),
		ContentURL:   r.get("ContentURL"),
		SimilarTitle: r.get("SimilarTitle"),
		CitingTitle:  r.get("CitingTitle"),
		CitedTitle:   r.get("CitedTitle"),
	}
}

// Patent is a patent record with aliases resolved.
type Patent struct {
	CN           string
	Title        string
	Applicants   string
	ApplDate     string
	PublDate     string
	Abstract     string
	Status       string
	IPC          string
	Nation       string
	ContentURL   string
	SimilarTitle string
	CitingTitle  string
}

// Patent resolves r as a patent record.
func (r Record) Patent() Patent {
	return Patent{
		CN:           r.get("CN"),
		Title:        r.get("Title", "TI"),
		Applicants:   r.get("Applicants", "AP"),
		ApplDate:     r.get("ApplDate", "AD"),
		PublDate:     r.get("PublDate", "PD"),
		Abstract:     r.get("Abstract", "AB"),
		Status:       r.get("PatentStatus"),
		IPC:          r.get("IPC"),
		Nation:       r.get("Nation"),
		ContentURL:   r.get("ContentURL"),
		SimilarTitle: r.get("SimilarTitle"),
		CitingTitle:  r.get("CitingTitle"),
	}
}

// Report is a research report record with aliases resolved.
type Report struct {
	CN          string
	Title       string
	Author      string
	PubYear     string
	Publisher   string
	Abstract    string
	Keyword     string
	FulltextURL string
	ContentURL  string
	CitedPaper  string
	CitedPatent string
	CitedReport string
}

// Report resolves r as a report record.
func (r Record) Report() Report {
	return Report{
		CN:          r.get("CN"),
		Title:       r.get("Title", "TI"),
		Author:      r.get("Author", "AU"),
		PubYear:     r.get("Pubyear", "PY"),
		Publisher:   r.get("Publisher", "PB"),
		Abstract:    r.get("Abstract", "AB"),
		Keyword:     r.get("Keyword", "KW"),
		FulltextURL: r.get("FulltextURL"),
		ContentURL:  r.get("ContentURL"),
		CitedPaper:  r.get("CitedPaperinfo"),
		CitedPatent: r.get("CitedPatentinfo"),
		CitedReport: r.get("CitedReportinfo"),
	}
}

// parseResponse decodes a gateway document. A statusCode other than 200 is
// an upstream error; records are read from every <record> in the document.
func parseResponse(body []byte) (*ResultSet, error) {
	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, provider.Parse(provider.ScienceON, err, body)
	}

	if status, ok := root.FindText("statusCode"); ok && status != "200" {
		code, _ := root.FindText("errorCode")
		msg, _ := root.FindText("errorMessage")
		if msg == "" {
			msg = "알 수 없는 오류 (statusCode " + status + ")"
		}
		return nil, provider.Upstream(provider.ScienceON, code, msg)
	}

	rs := &ResultSet{}
	if total, ok := root.FindText("TotalCount"); ok {
		rs.Total, _ = strconv.Atoi(total)
	}
	for _, rec := range root.FindAll("record") {
		r := Record{}
		for _, item := range rec.Children {
			if item.Name() != "item" {
				continue
			}
			r[item.Attr("metaCode")] = item.Value()
		}
		rs.Records = append(rs.Records, r)
	}
	return rs, nil
}
