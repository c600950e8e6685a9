// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ntis

import (
	"strings"

	"github.com/cockroachdb/errors"

	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/xmltree"
)

// Sections of a TYPE 4 (health) classification response, plus the synthetic
// section assigned to industry results.
const (
	SectionHealthWelfare = "MOHWR"
	SectionDisease       = "MOHWD"
	SectionIndustryTrade = "MOTIE"
	SectionIndustry      = "INDUSTRY"
)

// Classification is one recommended code with its matching score.
type Classification struct {
	Section string

	LargeCode  string
	LargeName  string
	MediumCode string
	MediumName string
	SmallCode  string
	SmallName  string

	DiseaseCode string
	DiseaseName string

	// Name and Code are the headline picked from an industry item's
	// attributes; Attributes keeps every non-empty one with lower-case keys.
	Name       string
	Code       string
	Attributes []Attribute

	Score string
}

// Attribute is a raw key/value pair from an industry classification item.
type Attribute struct {
	Key   string
	Value string
}

// parseClassifications reads a STATUS/RESULT document. The RESULT TYPE
// attribute selects the item layout.
func parseClassifications(body []byte) (*ResultSet, error) {
	root, err := xmltree.Parse(body)
	if err != nil {
		return nil, provider.Parse(provider.NTIS, err, body)
	}

	if status := root.Child("STATUS"); status != nil {
		if code := status.Child("ResultCode"); code != nil && code.Value() != "0" {
			msg := "알 수 없는 오류"
			if m := status.Child("ResultMsg"); m != nil && m.Value() != "" {
				msg = m.Value()
			}
			return nil, provider.Upstream(provider.NTIS, code.Value(), msg)
		}
	}

	result := root.Child("RESULT")
	if result == nil {
		return nil, provider.Parse(provider.NTIS, errors.New("RESULT 요소를 찾을 수 없습니다"), body)
	}

	var out []Classification
	switch result.Attr("TYPE") {
	case "4":
		for _, section := range result.Children {
			for _, item := range section.Children {
				out = append(out, healthItem(item, section.Name()))
			}
		}
	case "6":
		for _, item := range result.Children {
			out = append(out, industryItem(item))
		}
	default:
		for _, item := range result.Children {
			c := hierarchy(item)
			c.Score = provider.FirstNonEmpty(item.Attr("SCLS_WEIGHT"), item.Attr("MCLS_WEIGHT"), item.Attr("DCLS_WEIGHT"))
			out = append(out, c)
		}
	}

	return &ResultSet{Total: len(out), Classifications: out}, nil
}

func hierarchy(item *xmltree.Node) Classification {
	return Classification{
		LargeCode:  item.Attr("LCLS_CD"),
		LargeName:  item.Attr("LCLS_NM"),
		MediumCode: item.Attr("MCLS_CD"),
		MediumName: item.Attr("MCLS_NM"),
		SmallCode:  item.Attr("SCLS_CD"),
		SmallName:  item.Attr("SCLS_NM"),
	}
}

func healthItem(item *xmltree.Node, section string) Classification {
	var c Classification
	switch section {
	case SectionHealthWelfare:
		c = hierarchy(item)
		c.SmallCode, c.SmallName = "", ""
		c.Score = item.Attr("MCLS_WEIGHT")
	case SectionDisease:
		c.DiseaseCode = item.Attr("DCLS_CD")
		c.DiseaseName = item.Attr("DCLS_NM")
		c.Score = item.Attr("DCLS_WEIGHT")
	case SectionIndustryTrade:
		c = hierarchy(item)
		c.Score = item.Attr("SCLS_WEIGHT")
	default:
		c = hierarchy(item)
		c.Score = provider.FirstNonEmpty(item.Attr("SCLS_WEIGHT"), item.Attr("MCLS_WEIGHT"), item.Attr("LCLS_WEIGHT"))
	}
	c.Section = section
	return c
}

func industryItem(item *xmltree.Node) Classification {
	c := hierarchy(item)
	c.Section = SectionIndustry
	for _, a := range item.Attrs {
		if strings.TrimSpace(a.Value) == "" {
			continue
		}
		c.Attributes = append(c.Attributes, Attribute{Key: strings.ToLower(a.Name.Local), Value: a.Value})
	}
	c.Score = provider.FirstNonEmpty(item.Attr("SCLS_WEIGHT"), item.Attr("MCLS_WEIGHT"), item.Attr("LCLS_WEIGHT"))
	c.Name = pickAttr(c.Attributes, []string{"scls_nm", "mcls_nm", "lcls_nm"}, "_nm", "name")
	c.Code = pickAttr(c.Attributes, []string{"scls_cd", "mcls_cd", "lcls_cd"}, "_cd", "code")
	return c
}

// pickAttr returns the first preferred key present, then the first key that
// ends with suffix or contains word.
func pickAttr(attrs []Attribute, preferred []string, suffix, word string) string {
	values := make(map[string]string, len(attrs))
	for _, a := range attrs {
		values[a.Key] = a.Value
	}
	for _, k := range preferred {
		if v := values[k]; v != "" {
			return v
		}
	}
	for _, a := range attrs {
		if strings.HasSuffix(a.Key, suffix) || strings.Contains(a.Key, word) {
			return a.Value
		}
	}
	return ""
}
