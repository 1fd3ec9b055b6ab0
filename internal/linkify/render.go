package linkify

import "regexp"

// Segment is one piece of rendered assistant text: either plain text or
// a hyperlink. For bare URLs the label equals the URL.
type Segment struct {
	Text  string
	Label string
	URL   string
}

// IsLink reports whether the segment is a hyperlink.
func (s Segment) IsLink() bool {
	return s.URL != ""
}

// linkPattern matches either a markdown link [label](url) or a bare URL.
// URLs must start with http:// or https:// and end at the first
// whitespace or closing parenthesis.
var linkPattern = regexp.MustCompile(`\[([^\]]+)\]\((https?://[^)\s]+)\)|https?://[^\s)]+`)

// Render splits text into an ordered sequence of plain-text and link
// segments. The segments cover the whole input with no gaps or overlaps;
// matching is single-pass, leftmost-first and non-overlapping.
func Render(text string) []Segment {
	var segments []Segment
	last := 0

	for _, m := range linkPattern.FindAllStringSubmatchIndex(text, -1) {
		start, end := m[0], m[1]
		if start > last {
			segments = append(segments, Segment{Text: text[last:start]})
		}

		if m[2] >= 0 && m[4] >= 0 {
			// markdown link: capture groups hold label and url
			segments = append(segments, Segment{
				Label: text[m[2]:m[3]],
				URL:   text[m[4]:m[5]],
			})
		} else {
			// bare URL
			url := text[start:end]
			segments = append(segments, Segment{Label: url, URL: url})
		}

		last = end
	}

	if last < len(text) {
		segments = append(segments, Segment{Text: text[last:]})
	}

	return segments
}

// ContainsLink reports whether text already carries a bare URL or a
// markdown-style link.
func ContainsLink(text string) bool {
	return linkPattern.MatchString(text)
}
