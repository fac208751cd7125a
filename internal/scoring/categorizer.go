package scoring

import (
	"regexp"
	"strings"
	"unicode"

	"golang.org/x/text/unicode/norm"
)

// sentenceBoundary splits on terminal punctuation followed by whitespace so
// that "node.js" and "v1.2" stay in one piece.
var sentenceBoundary = regexp.MustCompile(`[.!?;:]+(?:\s+|$)|[\r\n]+`)

type wordKind int

const (
	wordStop wordKind = iota
	wordNumber
	wordVerb
	wordAdjective
	wordNoun
)

type taggedWord struct {
	norm   string
	kind   wordKind
	lemma  string
	entity bool
	// covered words belong to a multi-word lexicon phrase
	covered bool
}

func categorize(lex *Lexicon, text string) Categorization {
	out := newCategorization()
	text = norm.NFKC.String(text)

	var generic []string
	// surface forms of verbs whose lemma went to Responsibilities
	claimed := make(map[string]struct{})
	for _, sentence := range sentenceBoundary.Split(text, -1) {
		tagged := tagSentence(lex, sentence)
		if len(tagged) == 0 {
			continue
		}
		markPhrases(lex, tagged, out)
		generic = append(generic, assignWords(lex, tagged, out, claimed)...)
		collectTitles(lex, tagged, out)
	}

	// generic nouns are a fallback and only count when nothing else claimed them
	for _, n := range generic {
		if !out.contains(n) {
			out[Skills].Add(n)
		}
	}

	for term := range tokenize(lex, text) {
		if !out.contains(term) && !has(claimed, term) {
			out[Other].Add(term)
		}
	}

	return out
}

func tagSentence(lex *Lexicon, sentence string) []taggedWord {
	raw := strings.FieldsFunc(stripPunctuation(sentence), func(r rune) bool {
		return !isWordRune(r)
	})

	tagged := make([]taggedWord, 0, len(raw))
	for i, w := range raw {
		t := taggedWord{norm: strings.ToLower(w)}
		switch {
		case lex.IsStopword(t.norm):
			t.kind = wordStop
		case isNumber(t.norm):
			t.kind = wordNumber
		case has(lex.skills, t.norm) || has(lex.certifications, t.norm):
			t.kind = wordNoun
			t.entity = true
		default:
			if lemma, ok := lex.lemma(t.norm); ok {
				t.kind = wordVerb
				t.lemma = lemma
			} else if lex.isAdjective(t.norm) {
				t.kind = wordAdjective
			} else {
				t.kind = wordNoun
				t.entity = (i > 0 && isCapitalized(w)) || isAcronym(w)
			}
		}
		tagged = append(tagged, t)
	}
	return tagged
}

// markPhrases records multi-word skills and certifications, preferring the
// longest phrase at each position, and marks their words as covered.
func markPhrases(lex *Lexicon, tagged []taggedWord, out Categorization) {
	for i := 0; i < len(tagged); {
		name, n := longestPhrase(lex, tagged[i:])
		if n == 0 {
			i++
			continue
		}
		out[name].Add(joinNorms(tagged[i : i+n]))
		for k := i; k < i+n; k++ {
			tagged[k].covered = true
		}
		i += n
	}
}

func longestPhrase(lex *Lexicon, tagged []taggedWord) (CategoryName, int) {
	var name CategoryName
	best := 0
	try := func(phrases [][]string, category CategoryName) {
		for _, p := range phrases {
			if len(p) > best && startsWith(tagged, p) {
				best, name = len(p), category
			}
		}
	}
	try(lex.certPhrases, Certifications)
	try(lex.skillPhrases, Skills)
	return name, best
}

func startsWith(tagged []taggedWord, phrase []string) bool {
	if len(phrase) > len(tagged) {
		return false
	}
	for i, w := range phrase {
		if tagged[i].norm != w {
			return false
		}
	}
	return true
}

// assignWords places single words into categories and returns the generic
// nouns that matched no rule. Inflected verbs recorded by lemma are added to
// claimed under their surface form.
func assignWords(lex *Lexicon, tagged []taggedWord, out Categorization, claimed map[string]struct{}) []string {
	var generic []string
	for i, t := range tagged {
		n := t.norm
		long := runeLen(n) >= minTermLength

		if long && has(lex.impactVerbs, n) {
			out[Achievements].Add(n)
		}
		if long && has(lex.softSkills, n) {
			out[SoftSkills].Add(n)
		}
		if long && has(lex.communication, n) {
			out[CommunicationQuality].Add(n)
		}

		switch t.kind {
		case wordNumber:
			if i+1 < len(tagged) && isDurationUnit(tagged[i+1].norm) {
				out[Experience].Add(n + " " + tagged[i+1].norm)
			} else if isYear(n) {
				out[Experience].Add(n)
			}
		case wordVerb:
			if !t.covered && runeLen(t.lemma) >= minTermLength {
				out[Responsibilities].Add(t.lemma)
				claimed[n] = struct{}{}
			}
		case wordNoun:
			if t.covered || !long {
				continue
			}
			if assignNoun(lex, t, out) {
				generic = append(generic, n)
			}
		}
	}
	return generic
}

// assignNoun reports true when the noun matched none of the category rules.
func assignNoun(lex *Lexicon, t taggedWord, out Categorization) bool {
	n := t.norm
	marked := false
	for _, rule := range []struct {
		markers  []string
		category CategoryName
	}{
		{lex.experienceMarkers, Experience},
		{lex.educationMarkers, Education},
		{lex.certificationMarkers, Certifications},
		{lex.projectMarkers, Projects},
	} {
		if containsAny(n, rule.markers) {
			out[rule.category].Add(n)
			marked = true
		}
	}

	switch {
	case has(lex.certifications, n):
		out[Certifications].Add(n)
	case has(lex.skills, n):
		out[Skills].Add(n)
	case marked:
	case t.entity:
		out[Skills].Add(n)
	default:
		return true
	}
	return false
}

// collectTitles finds "[adjective]* noun+ suffix" runs such as
// "senior backend engineer".
func collectTitles(lex *Lexicon, tagged []taggedWord, out Categorization) {
	for j := 1; j < len(tagged); j++ {
		if !has(lex.titleSuffixes, tagged[j].norm) {
			continue
		}
		start := j
		for start > 0 && tagged[start-1].kind == wordNoun {
			start--
		}
		if start == j {
			continue
		}
		for start > 0 && tagged[start-1].kind == wordAdjective {
			start--
		}
		out[JobTitle].Add(joinNorms(tagged[start : j+1]))
	}
}

func joinNorms(tagged []taggedWord) string {
	parts := make([]string, len(tagged))
	for i, t := range tagged {
		parts[i] = t.norm
	}
	return strings.Join(parts, " ")
}

func isNumber(w string) bool {
	if w == "" {
		return false
	}
	for _, r := range w {
		if !unicode.IsDigit(r) {
			return false
		}
	}
	return true
}

func isYear(w string) bool {
	if len(w) != 4 || !isNumber(w) {
		return false
	}
	return w >= "1950" && w <= "2099"
}

func isDurationUnit(w string) bool {
	for _, unit := range []string{"year", "yr", "month"} {
		if strings.HasPrefix(w, unit) {
			return true
		}
	}
	return false
}

func isCapitalized(w string) bool {
	for _, r := range w {
		return unicode.IsUpper(r)
	}
	return false
}

// isAcronym matches short all-caps words like "AWS" or "EC2".
func isAcronym(w string) bool {
	n := runeLen(w)
	if n < 2 || n > 6 {
		return false
	}
	letters := 0
	for _, r := range w {
		switch {
		case unicode.IsUpper(r):
			letters++
		case unicode.IsDigit(r):
		default:
			return false
		}
	}
	return letters >= 2
}
