package scenes

import (
	"strings"

	"github.com/decker502/showcase/internal/dialogue"
)

// placedSegment 排版后的片段：X 为行内偏移，Line 为行号
type placedSegment struct {
	Segment dialogue.Segment
	X       float64
	Width   float64
	Line    int
}

// layoutSegments 按词换行排版。文本片段按空格拆词（空格跟随前一个词），
// 表情与占位符按 glyphWidth 宽度参与换行。
func layoutSegments(segments []dialogue.Segment, measure func(string) float64, glyphWidth, maxWidth float64) []placedSegment {
	var (
		out  []placedSegment
		x    float64
		line int
	)
	place := func(seg dialogue.Segment, w float64) {
		if x > 0 && x+w > maxWidth {
			line++
			x = 0
		}
		out = append(out, placedSegment{Segment: seg, X: x, Width: w, Line: line})
		x += w
	}

	for _, seg := range segments {
		if seg.Kind != dialogue.SegmentText {
			place(seg, glyphWidth)
			continue
		}
		for _, word := range splitWords(seg.Text) {
			if strings.Contains(word, "\n") {
				line++
				x = 0
				word = strings.TrimLeft(word, "\n")
				if word == "" {
					continue
				}
			}
			trimmed := strings.TrimRight(word, " ")
			if trimmed != "" {
				place(dialogue.Segment{Kind: dialogue.SegmentText, Text: trimmed}, measure(trimmed))
			}
			x += measure(" ") * float64(len(word)-len(trimmed))
		}
	}
	return out
}

// splitWords 拆成 "word " 形式，保留所有字符；换行符开启新词
func splitWords(s string) []string {
	var words []string
	start := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case ' ':
			if i+1 < len(s) && s[i+1] != ' ' {
				words = append(words, s[start:i+1])
				start = i + 1
			}
		case '\n':
			if i > start {
				words = append(words, s[start:i])
			}
			start = i
		}
	}
	if start < len(s) {
		words = append(words, s[start:])
	}
	return words
}
