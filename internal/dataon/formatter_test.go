// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package dataon

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFormatSearchResults(t *testing.T) {
	records := []Dataset{{
		SvcID:       Strings{"KISTI-OAK-0001"},
		Title:       Strings{"기후 <b>관측</b>"},
		Creators:    Strings{"이승우", "박지민"},
		Subjects:    Strings{"a", "b", "c", "d", "e", "f"},
		Description: Strings{"첫 줄\\r\\n둘째 줄 " + strings.Repeat("가", 400)},
	}, {}}
	got := Formatter{}.FormatSearchResults(records, "기후", 2048, KindDataset)

	assert.Contains(t, got, "검색어: '기후' | 총 2,048건 중 2건 표시")
	assert.Contains(t, got, "**[1] 기후 관측**")
	assert.Contains(t, got, "**작성자**: 이승우, 박지민")
	assert.Contains(t, got, "**주제어**: a, b, c, d, e\n")
	assert.Contains(t, got, "첫 줄 둘째 줄")
	assert.Contains(t, got, "...")
	assert.NotContains(t, got, "**발행기관**", "blank fields are omitted")
	assert.Contains(t, got, "**[2] 제목 없음**")
	assert.Contains(t, got, "**svcId**: ID 없음")
}

func TestFormatDetailJoinsListsInOrder(t *testing.T) {
	d := Dataset{
		Title:       Strings{"기후변화 관측 자료"},
		Creators:    Strings{"이승우", "박지민", "김하늘"},
		Publishers:  Strings{"KISTI", "기상청"},
		Formats:     Strings{"csv", "xlsx"},
		Subjects:    Strings{"a", "b", "c", "d", "e", "f"},
		Description: Strings{strings.Repeat("나", 600)},
	}
	got := Formatter{}.FormatDetailResult(d, "KISTI-OAK-0001", KindDatasetDetail)

	assert.Contains(t, got, "**svcId**: KISTI-OAK-0001")
	assert.Contains(t, got, "**작성자**: 이승우, 박지민, 김하늘")
	assert.Contains(t, got, "**발행기관**: KISTI, 기상청")
	assert.Contains(t, got, "**포맷**: csv, xlsx")
	assert.Contains(t, got, "**주제어**: a, b, c, d, e, f")
	assert.Contains(t, got, strings.Repeat("나", 500)+"...")
	assert.NotContains(t, got, "**기여자**")
	assert.NotContains(t, got, "식별자")
}

func TestFormatUnsupportedKind(t *testing.T) {
	assert.Equal(t, "지원되지 않는 결과 타입: paper", Formatter{}.FormatSearchResults(nil, "q", 0, "paper"))
	assert.Equal(t, "지원되지 않는 결과 타입: paper", Formatter{}.FormatDetailResult(Dataset{}, "id", "paper"))
}
