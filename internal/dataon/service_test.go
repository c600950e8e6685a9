// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataon

import (
	"context"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/pdiddy/kisti-mcp/internal/provider"
)

func TestService_SearchDatasets(t *testing.T) {
	_, ts := newCatalog(t, searchJSON)
	svc := NewService(NewClient(ts.URL, testHTTP(), testCreds))

	got := svc.SearchDatasets(context.Background(), Query{Text: "기후변화", MaxResults: 1})

	assert.False(t, provider.IsFailure(got))
	assert.Contains(t, got, "총 2,048건 중 1건 표시")
	assert.Contains(t, got, "기후변화 관측 자료")
	assert.NotContains(t, got, "[2]")
}

func TestService_SearchDatasetsEmpty(t *testing.T) {
	_, ts := newCatalog(t, `{"response": {"status": "success", "total count": 0}, "records": []}`)
	svc := NewService(NewClient(ts.URL, testHTTP(), testCreds))

	got := svc.SearchDatasets(context.Background(), Query{Text: "없는 데이터"})
	assert.Equal(t, "'없는 데이터'에 대한 연구데이터 검색 결과가 없습니다.", got)
}

func TestService_DatasetDetails(t *testing.T) {
	_, ts := newCatalog(t, detailJSON)
	svc := NewService(NewClient(ts.URL, testHTTP(), testCreds))

	got := svc.DatasetDetails(context.Background(), "KISTI-OAK-0001")
	assert.Contains(t, got, "**작성자**: 이승우, 박지민, 김하늘")
	assert.Contains(t, got, "**발행기관**: KISTI, 기상청")
}

func TestService_DatasetDetailsNotFound(t *testing.T) {
	_, ts := newCatalog(t, `{"response": {"status": "success"}, "records": []}`)
	svc := NewService(NewClient(ts.URL, testHTTP(), testCreds))

	got := svc.DatasetDetails(context.Background(), "nope")
	assert.Equal(t, "🚨 해당 svcId의 데이터를 찾을 수 없습니다", got)
}

func TestService_Disabled(t *testing.T) {
	cat, ts := newCatalog(t, searchJSON)
	svc := NewService(NewClient(ts.URL, testHTTP(), Credentials{}))
	ctx := context.Background()

	for _, got := range []string{
		svc.SearchDatasets(ctx, Query{Text: "q"}),
		svc.DatasetDetails(ctx, "id"),
		svc.SearchDatasets(ctx, Query{Text: " "}),
		svc.DatasetDetails(ctx, ""),
	} {
		assert.True(t, provider.IsFailure(got))
		assert.Contains(t, got, "DataON_ResearchData_API_KEY, DataON_ResearchDataMetadata_API_KEY")
	}
	assert.Equal(t, int32(0), atomic.LoadInt32(&cat.calls))
}

func TestService_RejectsEmptyInput(t *testing.T) {
	cat, ts := newCatalog(t, searchJSON)
	svc := NewService(NewClient(ts.URL, testHTTP(), testCreds))

	assert.True(t, provider.IsFailure(svc.SearchDatasets(context.Background(), Query{Text: "  "})))
	assert.True(t, provider.IsFailure(svc.DatasetDetails(context.Background(), "")))
	assert.Equal(t, int32(0), atomic.LoadInt32(&cat.calls))
}
