package skills

import (
	"strings"
)

// matcher pairs a canonical skill with the lowercase spellings that detect it.
type matcher struct {
	skill    string
	variants []string
}

var matchers = buildMatchers()

func buildMatchers() []matcher {
	all := AllSkills()
	out := make([]matcher, 0, len(all))
	for _, skill := range all {
		out = append(out, matcher{skill: skill, variants: Variants(skill)})
	}
	return out
}

// Variants returns the distinct lowercase spellings searched for a skill:
// the plain form, without dots, without whitespace, hyphens as spaces, and
// dots as spaces ("node js"). The dots-as-spaces form applies to every dotted
// skill, so "vue js", "next js" and "nuxt js" match as well.
func Variants(skill string) []string {
	lower := strings.ToLower(skill)
	set := NewOrderedSet[string]()
	for _, v := range []string{
		lower,
		strings.ReplaceAll(lower, ".", ""),
		strings.Join(strings.Fields(lower), ""),
		strings.ReplaceAll(lower, "-", " "),
		strings.ReplaceAll(lower, ".", " "),
	} {
		set.Add(v)
	}
	return set.Items()
}

// Extract returns the canonical names of every taxonomy skill mentioned in
// text, deduplicated and in taxonomy order.
//
// Matching is plain substring containment on the lowercased text, so short
// names such as "R" or "Go" match inside longer words.
func Extract(text string) []string {
	lower := strings.ToLower(text)
	found := NewOrderedSet[string]()

	for _, m := range matchers {
		for _, v := range m.variants {
			if v != "" && strings.Contains(lower, v) {
				found.Add(m.skill)
				break
			}
		}
	}
	return found.Items()
}
