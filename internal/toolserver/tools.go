// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package toolserver

import (
	"context"
	"strings"

	"github.com/pdiddy/kisti-mcp/internal/dataon"
	"github.com/pdiddy/kisti-mcp/internal/ntis"
	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/internal/scienceon"
)

const (
	defaultMaxResults = 10
	defaultSortArr    = "desc"
)

type searchInput struct {
	Query      string `json:"query" jsonschema:"검색 키워드"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"최대 결과 수 (기본값 10, 최대 100)"`
}

type cnInput struct {
	CN string `json:"cn" jsonschema:"검색 결과에서 얻은 CN번호"`
}

type projectNumberInput struct {
	ProjectNumber string `json:"project_number" jsonschema:"NTIS 과제번호"`
}

type classificationInput struct {
	Query              string `json:"query,omitempty" jsonschema:"연구과제 초록 또는 연구내용 (일반 추천, 최소 128바이트)"`
	ClassificationType string `json:"classification_type,omitempty" jsonschema:"분류 타입: standard(과학기술표준분류, 기본값), health(보건의료기술분류), industry(산업기술분류)"`
	MaxResults         int    `json:"max_results,omitempty" jsonschema:"최대 결과 수 (기본값 10)"`
	ResearchGoal       string `json:"research_goal,omitempty" jsonschema:"연구 개발 목표 (항목별 세부 추천)"`
	ResearchContent    string `json:"research_content,omitempty" jsonschema:"연구 개발 내용 (항목별 세부 추천)"`
	ExpectedEffect     string `json:"expected_effect,omitempty" jsonschema:"연구성과의 응용 분야 및 활용 범위 (항목별 세부 추천)"`
	KoreanKeywords     string `json:"korean_keywords,omitempty" jsonschema:"국문 핵심어 (항목별 세부 추천)"`
	EnglishKeywords    string `json:"english_keywords,omitempty" jsonschema:"영문 핵심어 (항목별 세부 추천)"`
}

type relatedByIDInput struct {
	PjtID      string `json:"pjt_id" jsonschema:"과제 고유번호(pjtId)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"분류별 최대 결과 수 (기본값 15)"`
}

type relatedByNameInput struct {
	ProjectName string `json:"project_name" jsonschema:"찾을 과제명"`
	MaxResults  int    `json:"max_results,omitempty" jsonschema:"분류별 최대 결과 수 (기본값 15)"`
}

type datasetSearchInput struct {
	Query      string `json:"query" jsonschema:"검색할 키워드 (연구자명, 연구주제, 데이터명 등)"`
	MaxResults int    `json:"max_results,omitempty" jsonschema:"최대 결과 수 (기본값 10, 최대 100)"`
	FromPos    int    `json:"from_pos,omitempty" jsonschema:"시작 위치 (기본값 0)"`
	SortCon    string `json:"sort_con,omitempty" jsonschema:"정렬 조건 (예: date, title). 비우면 관련도순"`
	SortArr    string `json:"sort_arr,omitempty" jsonschema:"정렬 방향 asc 또는 desc (기본값 desc)"`
}

type svcIDInput struct {
	SvcID string `json:"svc_id" jsonschema:"연구데이터 검색 결과에서 얻은 svcId"`
}

func registerScienceON(s *Server, svc *scienceon.Service, maxResults int) {
	def := orDefault(maxResults, defaultMaxResults)

	addTool(s, "search_scienceon_papers",
		"KISTI ScienceON에서 논문 목록을 검색합니다. 키워드로 여러 논문을 검색하여 목록을 반환합니다.",
		func(ctx context.Context, in searchInput) string {
			return svc.SearchArticles(ctx, in.Query, orDefault(in.MaxResults, def))
		})
	addTool(s, "search_scienceon_paper_details",
		"KISTI ScienceON에서 특정 논문의 상세 정보를 조회합니다. 논문 검색에서 얻은 CN번호를 사용합니다.",
		func(ctx context.Context, in cnInput) string { return svc.ArticleDetails(ctx, in.CN) })
	addTool(s, "search_scienceon_patents",
		"KISTI ScienceON에서 특허 목록을 검색합니다. 키워드로 여러 특허를 검색하여 목록을 반환합니다.",
		func(ctx context.Context, in searchInput) string {
			return svc.SearchPatents(ctx, in.Query, orDefault(in.MaxResults, def))
		})
	addTool(s, "search_scienceon_patent_details",
		"KISTI ScienceON에서 특정 특허의 상세 정보를 조회합니다. 특허 검색에서 얻은 CN번호를 사용합니다.",
		func(ctx context.Context, in cnInput) string { return svc.PatentDetails(ctx, in.CN) })
	addTool(s, "search_scienceon_patent_citations",
		"KISTI ScienceON에서 특정 특허의 인용/피인용 정보를 조회합니다. 특허 검색에서 얻은 CN번호를 사용합니다.",
		func(ctx context.Context, in cnInput) string { return svc.PatentCitations(ctx, in.CN) })
	addTool(s, "search_scienceon_reports",
		"KISTI ScienceON에서 R&D 보고서 목록을 검색합니다. 키워드로 여러 보고서를 검색하여 목록을 반환합니다.",
		func(ctx context.Context, in searchInput) string {
			return svc.SearchReports(ctx, in.Query, orDefault(in.MaxResults, def))
		})
	addTool(s, "search_scienceon_report_details",
		"KISTI ScienceON에서 특정 R&D 보고서의 상세 정보를 조회합니다. 보고서 검색에서 얻은 CN번호를 사용합니다.",
		func(ctx context.Context, in cnInput) string { return svc.ReportDetails(ctx, in.CN) })
}

func registerNTIS(s *Server, svc *ntis.Service, maxResults int) {
	def := orDefault(maxResults, defaultMaxResults)

	addTool(s, "search_ntis_rnd_projects",
		"NTIS에서 국가R&D 과제를 검색합니다. 키워드로 연구과제를 검색하여 목록을 반환합니다.",
		func(ctx context.Context, in searchInput) string {
			return svc.SearchProjects(ctx, in.Query, orDefault(in.MaxResults, def))
		})
	addTool(s, "search_ntis_project_details",
		"NTIS 과제번호로 국가R&D 과제의 상세 정보를 조회합니다.",
		func(ctx context.Context, in projectNumberInput) string { return svc.ProjectDetails(ctx, in.ProjectNumber) })
	addTool(s, "search_ntis_science_tech_classifications",
		"NTIS 분류 추천 서비스로 연구과제 초록에 적합한 분류코드를 매칭점수와 함께 추천합니다. "+
			"query만 주면 일반 추천, research_goal 등 세부 항목을 하나라도 주면 항목별 세부 추천을 수행합니다.",
		func(ctx context.Context, in classificationInput) string {
			return classify(ctx, svc, in, def)
		})
	addTool(s, "search_ntis_recommendations",
		"NTIS에서 키워드와 연관된 콘텐츠를 추천합니다.",
		func(ctx context.Context, in searchInput) string {
			return svc.SearchRecommendations(ctx, in.Query, orDefault(in.MaxResults, def))
		})
	addTool(s, "search_ntis_related_content_recommendations",
		"NTIS 과제 고유번호(pjtId)와 연관된 관련 과제, 논문, 특허, 연구보고서를 추천합니다.",
		func(ctx context.Context, in relatedByIDInput) string {
			return svc.RelatedContentByID(ctx, in.PjtID, orDefault(in.MaxResults, ntis.DefaultRelatedResults))
		})
	addTool(s, "search_ntis_related_content_by_name",
		"과제명으로 NTIS 과제를 찾은 뒤 가장 관련도가 높은 과제의 연관 콘텐츠를 추천합니다.",
		func(ctx context.Context, in relatedByNameInput) string {
			return svc.RelatedContentByName(ctx, in.ProjectName, orDefault(in.MaxResults, ntis.DefaultRelatedResults))
		})
}

// classify picks the itemised mode when any proposal field is set and the
// single-abstract mode otherwise.
// A disabled NTIS provider is reported before any argument is checked.
func classify(ctx context.Context, svc *ntis.Service, in classificationInput, def int) string {
	if err := svc.API.Ready(); err != nil {
		return provider.Render(err)
	}
	scheme, err := ntis.ParseScheme(in.ClassificationType)
	if err != nil {
		return provider.Render(err)
	}
	maxResults := orDefault(in.MaxResults, def)

	detailed := ntis.DetailedClassificationQuery{
		Goal:            in.ResearchGoal,
		Content:         in.ResearchContent,
		Effect:          in.ExpectedEffect,
		KoreanKeywords:  in.KoreanKeywords,
		EnglishKeywords: in.EnglishKeywords,
		Scheme:          scheme,
	}
	if !detailed.Empty() {
		return svc.RecommendClassificationsDetailed(ctx, detailed, maxResults)
	}
	if strings.TrimSpace(in.Query) == "" {
		return provider.Render(provider.Invalid("일반 추천 모드에서는 query 파라미터가 필요합니다."))
	}
	return svc.RecommendClassifications(ctx, in.Query, scheme, maxResults)
}

func registerDataON(s *Server, svc *dataon.Service, maxResults int) {
	def := orDefault(maxResults, defaultMaxResults)

	addTool(s, "search_dataon_research_data",
		"KISTI DataON에서 연구데이터를 검색합니다. 키워드로 공개된 연구데이터를 검색하여 목록을 반환합니다.",
		func(ctx context.Context, in datasetSearchInput) string {
			sortArr := in.SortArr
			if sortArr == "" {
				sortArr = defaultSortArr
			}
			return svc.SearchDatasets(ctx, dataon.Query{
				Text:          in.Query,
				From:          in.FromPos,
				MaxResults:    orDefault(in.MaxResults, def),
				SortField:     in.SortCon,
				SortDirection: sortArr,
			})
		})
	addTool(s, "search_dataon_research_data_details",
		"KISTI DataON에서 특정 연구데이터의 상세 메타데이터를 조회합니다. 연구데이터 검색에서 얻은 svcId를 사용합니다.",
		func(ctx context.Context, in svcIDInput) string { return svc.DatasetDetails(ctx, in.SvcID) })
}
