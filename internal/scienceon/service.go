// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package scienceon

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// Service runs token, request and formatting for each ScienceON operation
// and always answers with text.
type Service struct {
	API       API
	Formatter Formatter
}

// NewService returns a Service over api.
func NewService(api API) *Service {
	return &Service{API: api}
}

// SearchArticles searches literature.
func (s *Service) SearchArticles(ctx context.Context, query string, maxResults int) string {
	return s.search(ctx, KindArticle, query, maxResults)
}

// SearchPatents searches patents.
func (s *Service) SearchPatents(ctx context.Context, query string, maxResults int) string {
	return s.search(ctx, KindPatent, query, maxResults)
}

// SearchReports searches research reports.
func (s *Service) SearchReports(ctx context.Context, query string, maxResults int) string {
	return s.search(ctx, KindReport, query, maxResults)
}

// ArticleDetails shows one article.
func (s *Service) ArticleDetails(ctx context.Context, cn string) string {
	return s.details(ctx, KindArticle, cn)
}

// PatentDetails shows one patent.
func (s *Service) PatentDetails(ctx context.Context, cn string) string {
	return s.details(ctx, KindPatent, cn)
}

// ReportDetails shows one report.
func (s *Service) ReportDetails(ctx context.Context, cn string) string {
	return s.details(ctx, KindReport, cn)
}

// PatentCitations lists patents citing or cited by cn.
func (s *Service) PatentCitations(ctx context.Context, cn string) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if cn == "" {
		return provider.Render(provider.Invalid("CN번호를 입력해주세요."))
	}
	if err := s.API.GetToken(ctx); err != nil {
		return s.fail(ctx, err)
	}
	rs, err := s.API.Citations(ctx, cn)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.Formatter.FormatCitations(rs.Records, cn)
}

func (s *Service) search(ctx context.Context, kind Kind, query string, maxResults int) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if query == "" {
		return provider.Render(provider.Invalid("검색어를 입력해주세요."))
	}
	if err := s.API.GetToken(ctx); err != nil {
		return s.fail(ctx, err)
	}
	rs, err := s.API.Search(ctx, Query{Kind: kind, Text: query, MaxResults: maxResults})
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Records) == 0 {
		return fmt.Sprintf("'%s'에 대한 %s 검색 결과가 없습니다.", query, kind.Label())
	}

	records := rs.Records
	if n := provider.PageSize(maxResults, 10); len(records) > n {
		records = records[:n]
	}
	return s.Formatter.FormatSearchResults(records, query, rs.Total, kind)
}

func (s *Service) details(ctx context.Context, kind Kind, cn string) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if cn == "" {
		return provider.Render(provider.Invalid("CN번호를 입력해주세요."))
	}
	if err := s.API.GetToken(ctx); err != nil {
		return s.fail(ctx, err)
	}
	rs, err := s.API.Details(ctx, kind, cn)
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Records) == 0 {
		return provider.Render(provider.NotFound(provider.ScienceON,
			fmt.Sprintf("CN번호 '%s'에 해당하는 %s을(를) 찾을 수 없습니다.", cn, kind.Label())))
	}
	return s.Formatter.FormatDetailResult(rs.Records[0], cn, kind)
}

func (s *Service) fail(ctx context.Context, err error) string {
	zerolog.Ctx(ctx).Warn().Err(err).Str("kind", provider.KindOf(err).String()).Msg("scienceon request failed")
	return provider.Render(err)
}
