// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ntis

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// Minimum input sizes, in bytes, for classification recommendation.
const (
	MinAbstractBytes = 128
	MinDetailedBytes = 300
)

// Default page sizes.
const (
	DefaultRelatedResults = 15
	nameLookupResults     = 5
)

// Service runs each NTIS operation end to end and always answers with text.
type Service struct {
	API       API
	Formatter Formatter
}

// NewService returns a Service over api.
func NewService(api API) *Service {
	return &Service{API: api}
}

// SearchProjects searches national R&D projects by keyword.
func (s *Service) SearchProjects(ctx context.Context, query string, maxResults int) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if query == "" {
		return provider.Render(provider.Invalid("검색어를 입력해주세요."))
	}
	rs, err := s.run(ctx, ProjectQuery{Text: query, MaxResults: maxResults})
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Projects) == 0 {
		return fmt.Sprintf("'%s'에 대한 국가R&D 과제 검색 결과가 없습니다.", query)
	}
	rs.Projects = limit(rs.Projects, provider.PageSize(maxResults, defaultPageSize))
	return s.Formatter.FormatSearchResults(rs, query, KindProject)
}

// ProjectDetails looks a project up by its number. A hit whose number
// matches exactly is preferred over the first hit.
func (s *Service) ProjectDetails(ctx context.Context, number string) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	number = strings.TrimSpace(number)
	if number == "" {
		return provider.Render(provider.Invalid("과제번호를 입력해주세요."))
	}
	rs, err := s.run(ctx, ProjectQuery{Text: number, MaxResults: defaultPageSize})
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Projects) == 0 {
		return provider.Render(provider.NotFound(provider.NTIS, fmt.Sprintf("과제번호 '%s'에 해당하는 과제를 찾을 수 없습니다.", number)))
	}
	match := rs.Projects[0]
	for _, p := range rs.Projects {
		if p.ProjectNumber == number {
			match = p
			break
		}
	}
	return s.Formatter.FormatDetailResult(match, provider.FirstNonEmpty(match.PjtNo, number), KindProject)
}

// RecommendClassifications recommends codes for a single research abstract.
func (s *Service) RecommendClassifications(ctx context.Context, abstract string, scheme Scheme, maxResults int) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if len(abstract) < MinAbstractBytes {
		return provider.Render(provider.Invalid(fmt.Sprintf(
			"분류 추천을 위해서는 최소 %d바이트 이상의 연구 초록이 필요합니다. 더 자세한 내용을 입력해주세요. (현재 %d바이트)",
			MinAbstractBytes, len(abstract))))
	}
	rs, err := s.run(ctx, ClassificationQuery{Abstract: abstract, Scheme: scheme})
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Classifications) == 0 {
		return fmt.Sprintf("'%s'에 대한 %s 추천 결과가 없습니다.", provider.Truncate(abstract, 50), scheme.Name())
	}
	rs.Classifications = limit(rs.Classifications, maxResults)
	return s.Formatter.FormatSearchResults(rs, abstract, rs.Kind)
}

// RecommendClassificationsDetailed recommends codes from the itemised
// proposal fields in q.
func (s *Service) RecommendClassificationsDetailed(ctx context.Context, q DetailedClassificationQuery, maxResults int) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if n := len(q.Text()); n < MinDetailedBytes {
		return provider.Render(provider.Invalid(fmt.Sprintf(
			"항목별 세부 추천을 위해서는 전체 내용이 최소 %d바이트 이상이어야 합니다. 더 자세한 내용을 입력해주세요. (현재 %d바이트)",
			MinDetailedBytes, n)))
	}
	rs, err := s.run(ctx, q)
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Classifications) == 0 {
		return fmt.Sprintf("제출된 항목별 정보에 대한 %s 추천 결과가 없습니다.", q.Scheme.Name())
	}
	rs.Classifications = limit(rs.Classifications, maxResults)
	return s.Formatter.FormatSearchResults(rs, "항목별 세부 추천", rs.Kind)
}

// SearchRecommendations lists content NTIS recommends for a keyword.
func (s *Service) SearchRecommendations(ctx context.Context, query string, maxResults int) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if query == "" {
		return provider.Render(provider.Invalid("검색어를 입력해주세요."))
	}
	rs, err := s.run(ctx, RecommendationQuery{Text: query, MaxResults: maxResults})
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Projects) == 0 {
		return fmt.Sprintf("'%s'에 대한 연관콘텐츠 추천 결과가 없습니다.", query)
	}
	rs.Projects = limit(rs.Projects, provider.PageSize(maxResults, defaultPageSize))
	return s.Formatter.FormatSearchResults(rs, query, KindRecommendation)
}

// RelatedContentByID lists projects, papers, patents and reports linked to
// projectID, one request per collection in that order.
func (s *Service) RelatedContentByID(ctx context.Context, projectID string, maxResults int) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	projectID = strings.TrimSpace(projectID)
	if projectID == "" {
		return provider.Render(provider.Invalid("과제 고유번호(pjtId)가 필요합니다."))
	}
	if err := s.API.GetToken(ctx); err != nil {
		return s.fail(ctx, err)
	}

	header := fmt.Sprintf("**과제 ID:** %s\n\n", projectID)
	body, found, failed := s.fanOut(ctx, projectID, maxResults)
	if found == 0 && failed == "" {
		return fmt.Sprintf("과제 ID '%s'에 대한 연관콘텐츠를 찾을 수 없습니다.", projectID)
	}
	return header + failed + body
}

// RelatedContentByName finds the project best matching name, then lists its
// related content. The first search hit is taken as the project.
func (s *Service) RelatedContentByName(ctx context.Context, name string, maxResults int) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return provider.Render(provider.Invalid("과제명을 입력해주세요."))
	}
	rs, err := s.run(ctx, ProjectQuery{Text: name, MaxResults: nameLookupResults})
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Projects) == 0 {
		return fmt.Sprintf("'%s'와 관련된 R&D 과제를 찾을 수 없습니다. 정확한 과제명을 입력해주세요.", name)
	}

	target := rs.Projects[0]
	if target.PjtID == "" {
		return provider.Render(provider.NotFound(provider.NTIS, "선택된 과제의 고유번호(pjtId)를 찾을 수 없습니다."))
	}
	zerolog.Ctx(ctx).Debug().Str("pjt_id", target.PjtID).Msg("selected project for related content")

	header := fmt.Sprintf("**선택된 과제:** %s\n**과제 ID:** %s\n\n", provider.CleanMarkup(target.Title), target.PjtID)
	body, found, failed := s.fanOut(ctx, target.PjtID, maxResults)
	if found == 0 && failed == "" {
		return header + fmt.Sprintf("과제 '%s' (ID: %s)에 대한 연관콘텐츠가 없습니다.", provider.CleanMarkup(target.Title), target.PjtID)
	}
	return header + failed + body
}

// fanOut queries every collection sequentially. A failed collection becomes
// an inline error line and does not stop the others.
func (s *Service) fanOut(ctx context.Context, projectID string, maxResults int) (body string, found int, failed string) {
	if maxResults <= 0 {
		maxResults = DefaultRelatedResults
	}
	var sections []string
	var errLines strings.Builder
	for _, col := range Collections {
		rs, err := s.API.Search(ctx, RelatedContentQuery{ProjectID: projectID, Collection: col})
		if err != nil {
			zerolog.Ctx(ctx).Warn().Err(err).Str("collection", string(col)).Msg("related content lookup failed")
			fmt.Fprintf(&errLines, "* %s 검색 중 오류: %s\n", col.Section(), strings.TrimPrefix(provider.Render(err), provider.FailurePrefix))
			continue
		}
		if len(rs.Related) == 0 {
			sections = append(sections, "## "+col.Section()+"\n관련 콘텐츠가 없습니다.\n")
			continue
		}
		found++
		rs.Related = limit(rs.Related, maxResults)
		sections = append(sections, s.Formatter.FormatSearchResults(rs, "", rs.Kind))
	}
	if errLines.Len() > 0 {
		errLines.WriteByte('\n')
	}
	return strings.Join(sections, "\n"), found, errLines.String()
}

func (s *Service) run(ctx context.Context, q Query) (*ResultSet, error) {
	if err := s.API.GetToken(ctx); err != nil {
		return nil, err
	}
	return s.API.Search(ctx, q)
}

func (s *Service) fail(ctx context.Context, err error) string {
	zerolog.Ctx(ctx).Warn().Err(err).Str("kind", provider.KindOf(err).String()).Msg("ntis request failed")
	return provider.Render(err)
}

func limit[T any](items []T, n int) []T {
	if n > 0 && len(items) > n {
		return items[:n]
	}
	return items
}
