package scoring

import (
	"math"
	"sort"
	"strings"

	"github.com/agnivade/levenshtein"
)

// TokenSetRatio scores two terms from 0 to 100 ignoring word order and
// duplicate words. A term whose words are a subset of the other's scores 100.
func TokenSetRatio(a, b string) int {
	wa, wb := wordSet(a), wordSet(b)
	if len(wa) == 0 || len(wb) == 0 {
		return 0
	}

	var common, onlyA, onlyB []string
	for w := range wa {
		if _, ok := wb[w]; ok {
			common = append(common, w)
		} else {
			onlyA = append(onlyA, w)
		}
	}
	for w := range wb {
		if _, ok := wa[w]; !ok {
			onlyB = append(onlyB, w)
		}
	}
	sort.Strings(common)
	sort.Strings(onlyA)
	sort.Strings(onlyB)

	t0 := strings.Join(common, " ")
	t1 := joinNonEmpty(t0, strings.Join(onlyA, " "))
	t2 := joinNonEmpty(t0, strings.Join(onlyB, " "))

	best := ratio(t0, t1)
	if r := ratio(t0, t2); r > best {
		best = r
	}
	if r := ratio(t1, t2); r > best {
		best = r
	}
	return best
}

// ratio is the normalized Levenshtein similarity of two strings, measured in runes.
func ratio(s1, s2 string) int {
	n1, n2 := runeLen(s1), runeLen(s2)
	longest := n1
	if n2 > longest {
		longest = n2
	}
	if longest == 0 {
		return 100
	}
	dist := levenshtein.ComputeDistance(s1, s2)
	return int(math.Round(100 * float64(longest-dist) / float64(longest)))
}

func wordSet(term string) map[string]struct{} {
	set := make(map[string]struct{})
	for _, w := range strings.Fields(term) {
		set[w] = struct{}{}
	}
	return set
}

func joinNonEmpty(a, b string) string {
	switch {
	case a == "":
		return b
	case b == "":
		return a
	}
	return a + " " + b
}
