package pipeline

import "github.com/dlclark/regexp2"

// mustCompile2 compiles a pattern that needs lookaround, which RE2 lacks.
// Multiline is always on so ^ and $ anchor at line boundaries.
func mustCompile2(pattern string) *regexp2.Regexp {
	return regexp2.MustCompile(pattern, regexp2.Multiline)
}

// replaceAll2 rewrites every match of re in s with the result of fn.
// regexp2 only fails on match timeouts, and none are configured, so the
// error path returns s unchanged.
func replaceAll2(re *regexp2.Regexp, s string, fn func(regexp2.Match) string) string {
	return replaceN2(re, s, -1, fn)
}

// replaceN2 is replaceAll2 limited to the first n matches.
func replaceN2(re *regexp2.Regexp, s string, n int, fn func(regexp2.Match) string) string {
	out, err := re.ReplaceFunc(s, regexp2.MatchEvaluator(fn), -1, n)
	if err != nil {
		return s
	}
	return out
}

// match2 reports whether re matches anywhere in s.
func match2(re *regexp2.Regexp, s string) bool {
	ok, err := re.MatchString(s)
	return err == nil && ok
}

// findAll2 returns the submatch strings of every match of re in s.
// Element 0 of each slice is the whole match.
func findAll2(re *regexp2.Regexp, s string) [][]string {
	var out [][]string
	m, err := re.FindStringMatch(s)
	for err == nil && m != nil {
		groups := m.Groups()
		sub := make([]string, len(groups))
		for i, g := range groups {
			sub[i] = g.String()
		}
		out = append(out, sub)
		m, err = re.FindNextMatch(m)
	}
	return out
}

// group returns the text of capture group i of m, or "" when it did not take part.
func group(m regexp2.Match, i int) string {
	g := m.GroupByNumber(i)
	if g == nil || len(g.Captures) == 0 {
		return ""
	}
	return g.String()
}
