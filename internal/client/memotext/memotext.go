// Package memotext derives display text from memo content: a title, a short
// preview and a relative timestamp. Content is treated as markdown and
// rendered to plain text with goldmark.
package memotext

import (
	"fmt"
	"strings"
	"time"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/ast"
	"github.com/yuin/goldmark/text"
)

const (
	UntitledTitle = "제목 없음"
	EmptyPreview  = "내용 없음"
)

var md = goldmark.New()

// Plain renders one line of markdown to plain text.
func Plain(line string) string {
	source := []byte(line)
	node := md.Parser().Parse(text.NewReader(source))

	var b strings.Builder
	_ = ast.Walk(node, func(n ast.Node, entering bool) (ast.WalkStatus, error) {
		if !entering {
			return ast.WalkContinue, nil
		}
		switch t := n.(type) {
		case *ast.Text:
			b.Write(t.Segment.Value(source))
			if t.SoftLineBreak() || t.HardLineBreak() {
				b.WriteByte(' ')
			}
		case *ast.String:
			b.Write(t.Value)
		case *ast.AutoLink:
			b.Write(t.Label(source))
		}
		return ast.WalkContinue, nil
	})

	return strings.TrimSpace(b.String())
}

func splitLines(content string) []string {
	return strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n")
}

// titleIndex returns the index of the first line with visible text, or -1.
func titleIndex(lines []string) (int, string) {
	for i, l := range lines {
		if p := Plain(l); p != "" {
			return i, p
		}
	}
	return -1, ""
}

// Title is the first non-empty line as plain text.
func Title(content string) string {
	if _, t := titleIndex(splitLines(content)); t != "" {
		return t
	}
	return UntitledTitle
}

// Preview joins the two lines following the title.
func Preview(content string) string {
	lines := splitLines(content)
	i, _ := titleIndex(lines)
	if i < 0 {
		return EmptyPreview
	}

	rest := lines[i+1:]
	if len(rest) > 2 {
		rest = rest[:2]
	}

	parts := make([]string, 0, len(rest))
	for _, l := range rest {
		if p := Plain(l); p != "" {
			parts = append(parts, p)
		}
	}

	if p := strings.TrimSpace(strings.Join(parts, " ")); p != "" {
		return p
	}
	return EmptyPreview
}

// FormatDate renders t relative to now: the clock time for today, "N일 전"
// within a week, the month and day otherwise.
func FormatDate(t, now time.Time) string {
	t = t.In(now.Location())
	days := int(now.Sub(t) / (24 * time.Hour))

	switch {
	case days <= 0:
		return t.Format("15:04")
	case days < 7:
		return fmt.Sprintf("%d일 전", days)
	default:
		return fmt.Sprintf("%d월 %d일", int(t.Month()), t.Day())
	}
}
