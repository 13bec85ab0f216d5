package memotext

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestTitle(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    string
	}{
		{"empty", "", UntitledTitle},
		{"blank lines", "\n  \n", UntitledTitle},
		{"plain", "장보기\n우유", "장보기"},
		{"heading", "# 여행 계획\n- 숙소", "여행 계획"},
		{"emphasis", "**중요** 메모", "중요 메모"},
		{"skips leading blank", "\n\n  회의록  ", "회의록"},
		{"code span", "`go test` 실행", "go test 실행"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Title(tt.content))
		})
	}
}

func TestPreview(t *testing.T) {
	assert.Equal(t, EmptyPreview, Preview(""))
	assert.Equal(t, EmptyPreview, Preview("제목만"))
	assert.Equal(t, "우유 계란", Preview("장보기\n- 우유\n- 계란\n- 빵"))
	assert.Equal(t, "둘째", Preview("첫째\n\n둘째\n셋째"))
}

func TestFormatDate(t *testing.T) {
	now := time.Date(2025, 10, 20, 18, 30, 0, 0, time.UTC)

	assert.Equal(t, "09:05", FormatDate(time.Date(2025, 10, 20, 9, 5, 0, 0, time.UTC), now))
	assert.Equal(t, "3일 전", FormatDate(now.Add(-3*24*time.Hour), now))
	assert.Equal(t, "10월 1일", FormatDate(time.Date(2025, 10, 1, 12, 0, 0, 0, time.UTC), now))
}
