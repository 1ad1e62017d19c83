package dialogue

import "strings"

// SegmentKind classifies a piece of tokenized dialogue text.
type SegmentKind int

const (
	// SegmentText is plain text, kept byte for byte.
	SegmentText SegmentKind = iota
	// SegmentEmoji is a {tag} whose name is a known emoji.
	SegmentEmoji
	// SegmentFallback is a {tag} whose name is not known.
	SegmentFallback
)

// Segment is one piece of tokenized text. Text holds plain text for
// SegmentText and the tag name otherwise.
type Segment struct {
	Kind SegmentKind
	Text string
}

// Tokenize splits text into plain text and {tag} segments in order.
// known reports whether a tag names a loaded emoji. A "{" with no closing
// "}" before the next "{", or an empty "{}", stays plain text.
func Tokenize(text string, known func(name string) bool) []Segment {
	var (
		segments []Segment
		plain    strings.Builder
	)
	flush := func() {
		if plain.Len() > 0 {
			segments = append(segments, Segment{Kind: SegmentText, Text: plain.String()})
			plain.Reset()
		}
	}

	for i := 0; i < len(text); {
		if text[i] != '{' {
			next := strings.IndexByte(text[i:], '{')
			if next < 0 {
				plain.WriteString(text[i:])
				break
			}
			plain.WriteString(text[i : i+next])
			i += next
			continue
		}

		end := strings.IndexAny(text[i+1:], "{}")
		if end <= 0 || text[i+1+end] != '}' {
			plain.WriteByte('{')
			i++
			continue
		}

		name := text[i+1 : i+1+end]
		flush()
		kind := SegmentFallback
		if known != nil && known(name) {
			kind = SegmentEmoji
		}
		segments = append(segments, Segment{Kind: kind, Text: name})
		i += end + 2
	}
	flush()
	return segments
}

// Join rebuilds the markup from segments. Join(Tokenize(s, f)) == s.
func Join(segments []Segment) string {
	var b strings.Builder
	for _, s := range segments {
		if s.Kind == SegmentText {
			b.WriteString(s.Text)
			continue
		}
		b.WriteByte('{')
		b.WriteString(s.Text)
		b.WriteByte('}')
	}
	return b.String()
}

// KnownIn returns a lookup for Tokenize backed by a name set.
func KnownIn(names map[string]struct{}) func(string) bool {
	return func(name string) bool {
		_, ok := names[name]
		return ok
	}
}
