package service

import (
	"net/url"
	"sort"
	"strings"
	"unicode"
)

var stopWords = map[string]struct{}{}

func init() {
	for _, w := range strings.Fields(`a an and are as at be but by for from has have how in into is it its
		of on or that the this to was were what when where which who why will with you your
		www com org net http https html htm index php page home`) {
		stopWords[w] = struct{}{}
	}
}

// tokens splits s into lowercase runs of letters and digits.
func tokens(s string) []string {
	return strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})
}

// words is tokens without stop-words and tokens shorter than three runes.
func words(s string) []string {
	fields := tokens(s)
	out := fields[:0]
	for _, f := range fields {
		if len([]rune(f)) < 3 {
			continue
		}
		if _, stop := stopWords[f]; stop {
			continue
		}
		out = append(out, f)
	}
	return out
}

func wordSet(parts ...string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, p := range parts {
		for _, w := range words(p) {
			set[w] = struct{}{}
		}
	}
	return set
}

// jaccard returns |a∩b| / |a∪b| and the shared words in sorted order.
func jaccard(a, b map[string]struct{}) (float64, []string) {
	if len(a) == 0 || len(b) == 0 {
		return 0, nil
	}
	var shared []string
	for w := range a {
		if _, ok := b[w]; ok {
			shared = append(shared, w)
		}
	}
	sort.Strings(shared)
	union := len(a) + len(b) - len(shared)
	return float64(len(shared)) / float64(union), shared
}

// topWords ranks words by frequency, ties broken by first appearance.
func topWords(text string, n int) []string {
	counts := make(map[string]int)
	var order []string
	for _, w := range words(text) {
		if counts[w] == 0 {
			order = append(order, w)
		}
		counts[w]++
	}
	sort.SliceStable(order, func(i, j int) bool { return counts[order[i]] > counts[order[j]] })
	if len(order) > n {
		order = order[:n]
	}
	return order
}

// urlText turns host and path of a URL into plain words.
func urlText(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return raw
	}
	return strings.TrimPrefix(u.Hostname(), "www.") + " " + u.Path
}

func domain(raw string) string {
	u, err := url.Parse(raw)
	if err != nil {
		return ""
	}
	return strings.TrimPrefix(strings.ToLower(u.Hostname()), "www.")
}
