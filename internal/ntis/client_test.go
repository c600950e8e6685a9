// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package ntis

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/kisti-mcp/internal/provider"
	"github.com/pdiddy/kisti-mcp/pkg/types"
)

const projectXML = `<?xml version="1.0" encoding="UTF-8"?>
<RESULT>
  <TOTALHITS>1</TOTALHITS>
  <RESULTSET>
    <HIT>
      <ProjectNumber>1711000001</ProjectNumber>
      <ProjectTitle>
        <Korean><![CDATA[차세대 <span class="hl">배터리</span> 소재 개발]]></Korean>
        <English>Next generation battery materials</English>
      </ProjectTitle>
      <Manager><Name>홍길동</Name></Manager>
      <Researchers><Name>김철수;이영희</Name><ManCount>3</ManCount><WomanCount>2</WomanCount></Researchers>
      <ResearchAgency><Name>한국과학기술연구원</Name></ResearchAgency>
      <OrderAgency><Name>한국연구재단</Name></OrderAgency>
      <Ministry><Name>과학기술정보통신부</Name></Ministry>
      <ProjectYear>2024</ProjectYear>
      <ProjectPeriod>
        <Start>20240101</Start><End>20241231</End>
        <TotalStart>20220101 00:00</TotalStart><TotalEnd>20261231 00:00</TotalEnd>
      </ProjectPeriod>
      <GovernmentFunds>150000000</GovernmentFunds>
      <TotalFunds>1234500000000</TotalFunds>
      <Goal><Full>고용량 전극 소재 확보</Full></Goal>
      <Abstract><Full>전체 초록</Full><Teaser>요약 초록</Teaser></Abstract>
      <Keyword><Korean>배터리, 전극</Korean><English>battery</English></Keyword>
      <ScienceClass type="old" sequence="1"><Large>구분류</Large></ScienceClass>
      <ScienceClass type="new" sequence="1"><Large>에너지</Large></ScienceClass>
    </HIT>
  </RESULTSET>
</RESULT>`

const emptyProjectXML = `<RESULT><TOTALHITS>0</TOTALHITS><RESULTSET></RESULTSET></RESULT>`

const standardClassXML = `<RESULTS>
  <STATUS><ResultCode>0</ResultCode></STATUS>
  <RESULT TYPE="1">
    <ITEM LCLS_CD="EE" LCLS_NM="전기/전자" MCLS_CD="EE11" MCLS_NM="반도체소자" SCLS_CD="EE1101" SCLS_NM="메모리" SCLS_WEIGHT="0.91"/>
    <ITEM LCLS_CD="ND" LCLS_NM="나노" MCLS_CD="ND" MCLS_NM="나노" MCLS_WEIGHT="0.40"/>
  </RESULT>
</RESULTS>`

const healthClassXML = `<RESULTS>
  <STATUS><ResultCode>0</ResultCode></STATUS>
  <RESULT TYPE="4">
    <MOHWR><ITEM LCLS_CD="A" LCLS_NM="보건" MCLS_CD="A01" MCLS_NM="의약" SCLS_CD="A0101" MCLS_WEIGHT="0.7"/></MOHWR>
    <MOHWD><ITEM DCLS_CD="C50" DCLS_NM="유방암" DCLS_WEIGHT="0.6"/></MOHWD>
  </RESULT>
</RESULTS>`

const industryClassXML = `<RESULTS>
  <STATUS><ResultCode>0</ResultCode></STATUS>
  <RESULT TYPE="6">
    <ITEM ITECH_CD="10042" ITECH_NM="이차전지" EMPTY="" SCLS_WEIGHT="0.8"/>
  </RESULT>
</RESULTS>`

const relatedJSON = `{
  "exist": true,
  "PJT_ID": "1711000001",
  "KOR_PJT_NM": "차세대 배터리 소재 개발",
  "items": [
    {"RST_ID": "P1", "PAPER_NM": "전극 소재 연구", "similarity_score": 0.8734, "rank": 1, "creat_dt": "2024-05-01"},
    {"RST_ID": "R1", "KOR_RPT_TITLE_NM": "최종보고서", "rank": 2},
    {"PJT_ID": "1711000002", "KOR_PJT_NM": "후속 과제"},
    {"RST_ID": "X1"}
  ]
}`

var testCreds = Credentials{APIKey: "ntis-key"}

func testHTTP() types.HTTPConfig {
	return types.HTTPConfig{Timeout: 5 * time.Second, UserAgent: "kisti-mcp/test"}
}

// registry is a fake NTIS server. Bodies are keyed by request path; related
// content is further keyed by collection.
type registry struct {
	calls   int32
	bodies  map[string]string
	related map[Collection]string
	status  map[Collection]int

	mu      sync.Mutex
	queries []url.Values
}

func newRegistry(t *testing.T, bodies map[string]string) (*registry, *httptest.Server) {
	t.Helper()
	reg := &registry{bodies: bodies, related: map[Collection]string{}, status: map[Collection]int{}}
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&reg.calls, 1)
		q := r.URL.Query()
		reg.mu.Lock()
		reg.queries = append(reg.queries, q)
		reg.mu.Unlock()

		if r.URL.Path == connectionPath {
			col := Collection(q.Get("collection"))
			if code := reg.status[col]; code != 0 {
				w.WriteHeader(code)
				w.Write([]byte("server exploded"))
				return
			}
			body, ok := reg.related[col]
			if !ok {
				body = `{"exist": false}`
			}
			w.Write([]byte(body))
			return
		}
		body, ok := reg.bodies[r.URL.Path]
		if !ok {
			http.NotFound(w, r)
			return
		}
		w.Write([]byte(body))
	}))
	t.Cleanup(ts.Close)
	return reg, ts
}

func (r *registry) lastQuery() url.Values {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.queries) == 0 {
		return nil
	}
	return r.queries[len(r.queries)-1]
}

func TestClient_ProjectSearch(t *testing.T) {
	reg, ts := newRegistry(t, map[string]string{projectPath: projectXML})
	c := NewClient(ts.URL, testHTTP(), testCreds)

	rs, err := c.Search(context.Background(), ProjectQuery{Text: "배터리", MaxResults: 500})
	require.NoError(t, err)

	q := reg.lastQuery()
	assert.Equal(t, "ntis-key", q.Get("apprvKey"))
	assert.Equal(t, "배터리", q.Get("SRWR"))
	assert.Equal(t, "project", q.Get("collection"))
	assert.Equal(t, "100", q.Get("displayCnt"))
	assert.Equal(t, "1", q.Get("startPosition"))

	assert.Equal(t, KindProject, rs.Kind)
	assert.Equal(t, 1, rs.Total)
	require.Len(t, rs.Projects, 1)

	p := rs.Projects[0]
	assert.Equal(t, "1711000001", p.ProjectNumber)
	assert.Equal(t, "1711000001", p.PjtID)
	assert.Equal(t, "Next generation battery materials", p.TitleEnglish)
	assert.Equal(t, "에너지", p.ResearchArea)
	assert.Equal(t, "2024~2024", p.PjtPeriod)
	assert.Equal(t, "1,234,500,000,000원", p.TotalExpense)
	assert.Equal(t, "요약 초록", p.Abstract.Preferred())
	assert.Equal(t, "고용량 전극 소재 확보", p.Goal.Preferred())
}

func TestClient_ClassificationLayouts(t *testing.T) {
	tests := []struct {
		name   string
		body   string
		scheme Scheme
		check  func(t *testing.T, items []Classification)
	}{
		{
			name:   "standard hierarchy",
			body:   standardClassXML,
			scheme: SchemeStandard,
			check: func(t *testing.T, items []Classification) {
				require.Len(t, items, 2)
				assert.Equal(t, "EE1101", items[0].SmallCode)
				assert.Equal(t, "0.91", items[0].Score)
				assert.Equal(t, "0.40", items[1].Score)
			},
		},
		{
			name:   "health sections",
			body:   healthClassXML,
			scheme: SchemeHealth,
			check: func(t *testing.T, items []Classification) {
				require.Len(t, items, 2)
				assert.Equal(t, SectionHealthWelfare, items[0].Section)
				assert.Empty(t, items[0].SmallCode)
				assert.Equal(t, "0.7", items[0].Score)
				assert.Equal(t, SectionDisease, items[1].Section)
				assert.Equal(t, "유방암", items[1].DiseaseName)
			},
		},
		{
			name:   "industry attributes",
			body:   industryClassXML,
			scheme: SchemeIndustry,
			check: func(t *testing.T, items []Classification) {
				require.Len(t, items, 1)
				assert.Equal(t, SectionIndustry, items[0].Section)
				assert.Equal(t, "이차전지", items[0].Name)
				assert.Equal(t, "10042", items[0].Code)
				for _, a := range items[0].Attributes {
					assert.NotEqual(t, "empty", a.Key)
				}
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, ts := newRegistry(t, map[string]string{classifyPath: tt.body})
			c := NewClient(ts.URL, testHTTP(), testCreds)

			rs, err := c.Search(context.Background(), ClassificationQuery{Abstract: "초록", Scheme: tt.scheme})
			require.NoError(t, err)
			assert.Equal(t, tt.scheme.kind(), rs.Kind)
			assert.Equal(t, tt.scheme.collection(false), reg.lastQuery().Get("collection"))
			tt.check(t, rs.Classifications)
		})
	}
}

func TestClient_DetailedClassificationCollection(t *testing.T) {
	reg, ts := newRegistry(t, map[string]string{classifyPath: standardClassXML})
	c := NewClient(ts.URL, testHTTP(), testCreds)

	_, err := c.Search(context.Background(), DetailedClassificationQuery{Goal: "목표", KoreanKeywords: "키워드", Scheme: SchemeHealth})
	require.NoError(t, err)

	q := reg.lastQuery()
	assert.Equal(t, "rcmnhtclsdtl", q.Get("collection"))
	assert.Equal(t, "목표", q.Get("rschGoalAbstract"))
	assert.Equal(t, "키워드", q.Get("korKywd"))
}

func TestClient_ClassificationUpstreamError(t *testing.T) {
	_, ts := newRegistry(t, map[string]string{
		classifyPath: `<RESULTS><STATUS><ResultCode>E01</ResultCode><ResultMsg>인증키 오류</ResultMsg></STATUS></RESULTS>`,
	})
	c := NewClient(ts.URL, testHTTP(), testCreds)

	_, err := c.Search(context.Background(), ClassificationQuery{Abstract: "x"})
	require.Error(t, err)
	assert.Equal(t, provider.KindUpstream, provider.KindOf(err))
	assert.Contains(t, provider.Render(err), "인증키 오류")
	assert.Contains(t, provider.Render(err), "E01")
}

func TestClient_MalformedResponses(t *testing.T) {
	tests := []struct {
		name string
		path string
		body string
		q    Query
	}{
		{"project not xml", projectPath, "not xml", ProjectQuery{Text: "q"}},
		{"project missing totals", projectPath, "<RESULT><RESULTSET/></RESULT>", ProjectQuery{Text: "q"}},
		{"classification missing result", classifyPath, "<RESULTS><STATUS><ResultCode>0</ResultCode></STATUS></RESULTS>", ClassificationQuery{Abstract: "q"}},
		{"related not json", connectionPath, "<html>", RelatedContentQuery{ProjectID: "1", Collection: CollectionPaper}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reg, ts := newRegistry(t, map[string]string{tt.path: tt.body})
			reg.related[CollectionPaper] = tt.body
			c := NewClient(ts.URL, testHTTP(), testCreds)

			_, err := c.Search(context.Background(), tt.q)
			require.Error(t, err)
			assert.Equal(t, provider.KindParse, provider.KindOf(err))
		})
	}
}

func TestClient_RelatedContent(t *testing.T) {
	reg, ts := newRegistry(t, nil)
	reg.related[CollectionPaper] = relatedJSON
	c := NewClient(ts.URL, testHTTP(), testCreds)

	rs, err := c.Search(context.Background(), RelatedContentQuery{ProjectID: "1711000001", Collection: CollectionPaper})
	require.NoError(t, err)

	assert.Equal(t, "1711000001", reg.lastQuery().Get("pjtId"))
	assert.Equal(t, KindRelatedPaper, rs.Kind)
	assert.Equal(t, "차세대 배터리 소재 개발", rs.Source.Title)
	require.Len(t, rs.Related, 4)

	want := []struct{ id, typ string }{
		{"P1", "paper"},
		{"R1", "researchreport"},
		{"1711000002", "project"},
		{"X1", "unknown"},
	}
	for i, w := range want {
		if rs.Related[i].ID != w.id || rs.Related[i].Type != w.typ {
			t.Errorf("item %d = (%s, %s), want (%s, %s)", i, rs.Related[i].ID, rs.Related[i].Type, w.id, w.typ)
		}
	}
	assert.InDelta(t, 0.8734, rs.Related[0].Similarity, 1e-9)
}

func TestClient_RelatedContentNotExisting(t *testing.T) {
	_, ts := newRegistry(t, nil)
	c := NewClient(ts.URL, testHTTP(), testCreds)

	rs, err := c.Search(context.Background(), RelatedContentQuery{ProjectID: "1", Collection: CollectionPatent})
	require.NoError(t, err)
	assert.Empty(t, rs.Related)
}

func TestClient_HTTPStatus(t *testing.T) {
	_, ts := newRegistry(t, nil)
	c := NewClient(ts.URL, testHTTP(), testCreds)

	_, err := c.Search(context.Background(), ProjectQuery{Text: "q"})
	require.Error(t, err)
	assert.Equal(t, provider.KindUpstream, provider.KindOf(err))
	assert.Contains(t, provider.Render(err), "404")
}

func TestClient_DisabledMakesNoRequest(t *testing.T) {
	reg, ts := newRegistry(t, map[string]string{projectPath: projectXML})
	c := NewClient(ts.URL, testHTTP(), Credentials{})

	require.Error(t, c.Ready())
	_, err := c.Search(context.Background(), ProjectQuery{Text: "q"})
	require.Error(t, err)
	assert.Equal(t, provider.KindServiceUnavailable, provider.KindOf(err))
	assert.Contains(t, provider.Render(err), "NTIS_API_KEY")
	assert.Equal(t, int32(0), atomic.LoadInt32(&reg.calls))
}

func TestParseScheme(t *testing.T) {
	tests := []struct {
		in      string
		want    Scheme
		wantErr bool
	}{
		{"", SchemeStandard, false},
		{"standard", SchemeStandard, false},
		{"health", SchemeHealth, false},
		{"industry", SchemeIndustry, false},
		{"medical", "", true},
	}
	for _, tt := range tests {
		got, err := ParseScheme(tt.in)
		if (err != nil) != tt.wantErr {
			t.Errorf("ParseScheme(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			continue
		}
		if got != tt.want {
			t.Errorf("ParseScheme(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
