// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataon

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

// Service runs DataON operations and always answers with text.
type Service struct {
	API       API
	Formatter Formatter
}

// NewService returns a Service over api.
func NewService(api API) *Service {
	return &Service{API: api}
}

// SearchDatasets lists datasets matching q.Text.
func (s *Service) SearchDatasets(ctx context.Context, q Query) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	if strings.TrimSpace(q.Text) == "" {
		return provider.Render(provider.Invalid("검색어를 입력해주세요."))
	}
	if err := s.API.GetToken(ctx); err != nil {
		return s.fail(ctx, err)
	}
	rs, err := s.API.Search(ctx, q)
	if err != nil {
		return s.fail(ctx, err)
	}
	if len(rs.Records) == 0 {
		return fmt.Sprintf("'%s'에 대한 연구데이터 검색 결과가 없습니다.", q.Text)
	}
	records := rs.Records
	if n := provider.PageSize(q.MaxResults, defaultPageSize); len(records) > n {
		records = records[:n]
	}
	return s.Formatter.FormatSearchResults(records, q.Text, rs.Total, KindDataset)
}

// DatasetDetails returns the metadata of one dataset.
func (s *Service) DatasetDetails(ctx context.Context, svcID string) string {
	if err := s.API.Ready(); err != nil {
		return s.fail(ctx, err)
	}
	svcID = strings.TrimSpace(svcID)
	if svcID == "" {
		return provider.Render(provider.Invalid("svcId를 입력해주세요."))
	}
	if err := s.API.GetToken(ctx); err != nil {
		return s.fail(ctx, err)
	}
	d, err := s.API.Details(ctx, svcID)
	if err != nil {
		return s.fail(ctx, err)
	}
	return s.Formatter.FormatDetailResult(*d, svcID, KindDatasetDetail)
}

func (s *Service) fail(ctx context.Context, err error) string {
	zerolog.Ctx(ctx).Warn().Err(err).Str("kind", provider.KindOf(err).String()).Msg("dataon request failed")
	return provider.Render(err)
}
