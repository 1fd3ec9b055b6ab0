package linkify

import (
	"fmt"
	"regexp"
	"sort"
	"strings"
)

// AutoLink rewrites assistant text that carries no link of its own by
// replacing known product names with markdown links. If the text already
// contains any URL or markdown link it is returned unchanged, so replies
// the assistant linked itself are never double-linked.
//
// Names are tried longest-first so a shorter name never matches as a
// substring of a longer one, and each matched name is replaced at every
// occurrence. Matching is case-insensitive and word-boundary safe.
func AutoLink(text string, products ProductTable) string {
	if ContainsLink(text) {
		return text
	}
	if len(products) == 0 {
		return text
	}

	names := make([]string, 0, len(products))
	for name := range products {
		names = append(names, name)
	}
	sort.Slice(names, func(i, j int) bool {
		if len(names[i]) != len(names[j]) {
			return len(names[i]) > len(names[j])
		}
		return names[i] < names[j]
	})

	// Track which chunks are already linked so a shorter name cannot
	// match inside a link inserted for a longer one.
	chunks := []chunk{{text: text}}

	for _, name := range names {
		re, err := nameMatcher(name)
		if err != nil {
			continue
		}
		link := fmt.Sprintf("[%s](%s)", name, products[name])

		var next []chunk
		for _, c := range chunks {
			if c.linked {
				next = append(next, c)
				continue
			}
			next = append(next, splitOnMatches(c.text, re, link)...)
		}
		chunks = next
	}

	var b strings.Builder
	for _, c := range chunks {
		b.WriteString(c.text)
	}
	return b.String()
}

type chunk struct {
	text   string
	linked bool
}

// splitOnMatches replaces every match of re in text with link, keeping
// the surrounding plain text as separate unlinked chunks.
func splitOnMatches(text string, re *regexp.Regexp, link string) []chunk {
	locs := re.FindAllStringIndex(text, -1)
	if locs == nil {
		return []chunk{{text: text}}
	}

	var out []chunk
	last := 0
	for _, loc := range locs {
		if loc[0] > last {
			out = append(out, chunk{text: text[last:loc[0]]})
		}
		out = append(out, chunk{text: link, linked: true})
		last = loc[1]
	}
	if last < len(text) {
		out = append(out, chunk{text: text[last:]})
	}
	return out
}

func nameMatcher(name string) (*regexp.Regexp, error) {
	return regexp.Compile(`(?i)\b` + regexp.QuoteMeta(name) + `\b`)
}
