// Package scoring compares a resume with a job description: it extracts terms,
// sorts the job terms into weighted categories, fuzzy-matches them against the
// resume and aggregates the result into a report. Everything here is pure and
// safe for concurrent use.
package scoring

import (
	"strings"
	"unicode"
	"unicode/utf8"

	"golang.org/x/text/unicode/norm"
)

const minTermLength = 3

// normalize folds compatibility forms (PDF ligatures, full-width letters),
// lowercases and removes punctuation without inserting whitespace.
func normalize(text string) string {
	return stripPunctuation(strings.ToLower(norm.NFKC.String(text)))
}

func stripPunctuation(s string) string {
	return strings.Map(func(r rune) rune {
		if unicode.IsPunct(r) || unicode.IsSymbol(r) {
			return -1
		}
		return r
	}, s)
}

func isWordRune(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}

// words returns every normalized word run of text regardless of length.
func words(text string) []string {
	return strings.FieldsFunc(normalize(text), func(r rune) bool {
		return !isWordRune(r)
	})
}

func normalizeTerm(s string) string {
	return strings.Join(words(s), " ")
}

func runeLen(s string) int {
	return utf8.RuneCountInString(s)
}

// unigrams returns the word runs of at least minTermLength runes, in order.
func unigrams(text string) []string {
	all := words(text)
	out := all[:0]
	for _, w := range all {
		if runeLen(w) >= minTermLength {
			out = append(out, w)
		}
	}
	return out
}

func tokenize(lex *Lexicon, text string) TermSet {
	terms := NewTermSet()
	grams := unigrams(text)

	for i, w := range grams {
		stop := lex.IsStopword(w)
		if !stop {
			terms.Add(w)
		}
		if i == 0 || stop {
			continue
		}
		// bigrams pair adjacent unigrams before stopwords are dropped
		prev := grams[i-1]
		if !lex.IsStopword(prev) {
			terms.Add(prev + " " + w)
		}
	}

	return terms
}

// resumeTerms is the tokenizer output plus the lemma of every recognised verb,
// so lemma-form job terms ("manage") can meet inflected resume words ("managed").
func resumeTerms(lex *Lexicon, text string) TermSet {
	terms := tokenize(lex, text)
	for _, w := range unigrams(text) {
		if lex.IsStopword(w) {
			continue
		}
		if lemma, ok := lex.lemma(w); ok && runeLen(lemma) >= minTermLength {
			terms.Add(lemma)
		}
	}
	return terms
}
