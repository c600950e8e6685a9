// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ntis

import (
	"strings"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// Kind tags a result set with the shape of its records.
type Kind string

const (
	KindProject                Kind = "project"
	KindRecommendation         Kind = "recommendation"
	KindClassificationStandard Kind = "classification_standard"
	KindClassificationHealth   Kind = "classification_health"
	KindClassificationIndustry Kind = "classification_industry"
	KindRelatedProject         Kind = "related_project"
	KindRelatedPaper           Kind = "related_paper"
	KindRelatedPatent          Kind = "related_patent"
	KindRelatedReport          Kind = "related_researchreport"
)

func (k Kind) classification() bool { return strings.HasPrefix(string(k), "classification_") }
func (k Kind) related() bool        { return strings.HasPrefix(string(k), "related_") }

// Scheme is a classification system.
type Scheme string

const (
	SchemeStandard Scheme = "standard"
	SchemeHealth   Scheme = "health"
	SchemeIndustry Scheme = "industry"
)

// ParseScheme validates a classification_type argument. Empty selects standard.
func ParseScheme(s string) (Scheme, error) {
	switch Scheme(s) {
	case "", SchemeStandard:
		return SchemeStandard, nil
	case SchemeHealth, SchemeIndustry:
		return Scheme(s), nil
	}
	return "", provider.Invalid("지원하지 않는 분류 타입입니다. 사용 가능한 타입: standard, health, industry")
}

// Name is the Korean name of the classification system.
func (s Scheme) Name() string {
	switch s {
	case SchemeHealth:
		return "보건의료기술분류"
	case SchemeIndustry:
		return "산업기술분류"
	}
	return "과학기술표준분류"
}

func (s Scheme) collection(detailed bool) string {
	var c string
	switch s {
	case SchemeHealth:
		c = "rcmnhtcls"
	case SchemeIndustry:
		c = "rcmnitcls"
	default:
		c = "rcmncls"
	}
	if detailed {
		c += "dtl"
	}
	return c
}

func (s Scheme) kind() Kind {
	switch s {
	case SchemeHealth:
		return KindClassificationHealth
	case SchemeIndustry:
		return KindClassificationIndustry
	}
	return KindClassificationStandard
}

func schemeOf(k Kind) Scheme {
	switch k {
	case KindClassificationHealth:
		return SchemeHealth
	case KindClassificationIndustry:
		return SchemeIndustry
	}
	return SchemeStandard
}

// Collection is a related-content category.
type Collection string

const (
	CollectionProject Collection = "project"
	CollectionPaper   Collection = "paper"
	CollectionPatent  Collection = "patent"
	CollectionReport  Collection = "researchreport"
)

// Collections lists the related-content categories in display order.
var Collections = []Collection{CollectionProject, CollectionPaper, CollectionPatent, CollectionReport}

// Section is the Korean heading for the collection.
func (c Collection) Section() string {
	switch c {
	case CollectionProject:
		return "관련 과제"
	case CollectionPaper:
		return "관련 논문"
	case CollectionPatent:
		return "관련 특허"
	case CollectionReport:
		return "관련 연구보고서"
	}
	return "관련 콘텐츠"
}

func (c Collection) kind() Kind { return Kind("related_" + string(c)) }

func collectionOf(k Kind) Collection {
	return Collection(strings.TrimPrefix(string(k), "related_"))
}
