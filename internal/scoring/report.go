package scoring

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// DefaultThreshold is the similarity a resume term needs to count as a match.
const DefaultThreshold = 80

var ErrInvalidThreshold = errors.New("threshold must be between 0 and 100")

// MatchLevel is the qualitative label of a category percentage.
type MatchLevel string

const (
	MatchNone      MatchLevel = "None"
	MatchPartial   MatchLevel = "Partial"
	MatchGood      MatchLevel = "Good"
	MatchExcellent MatchLevel = "Excellent"
)

func matchLevel(percentage int) MatchLevel {
	switch {
	case percentage >= 80:
		return MatchExcellent
	case percentage >= 50:
		return MatchGood
	case percentage > 0:
		return MatchPartial
	default:
		return MatchNone
	}
}

type CategoryResult struct {
	Category   CategoryName `json:"category"`
	Weight     int          `json:"weight"`
	MatchLevel MatchLevel   `json:"match_level"`
	Percentage int          `json:"percentage"`
	Matched    []string     `json:"matched"`
	Missing    []string     `json:"missing"`
}

// Report is the categorized result of comparing a resume with a job description.
type Report struct {
	OverallScore    int              `json:"overall_score"`
	Breakdown       []CategoryResult `json:"breakdown"`
	Recommendations []string         `json:"recommendations"`
	MatchedKeywords []string         `json:"matched_keywords"`
	MissingKeywords []string         `json:"missing_keywords"`
	LexiconVersion  string           `json:"lexicon_version,omitempty"`
}

func validateThreshold(threshold int) error {
	if threshold < 0 || threshold > 100 {
		return fmt.Errorf("%w: got %d", ErrInvalidThreshold, threshold)
	}
	return nil
}

// MatchCategory splits the category terms into those with a resume term
// scoring at least threshold and those without. A threshold outside 0..100
// returns ErrInvalidThreshold.
func MatchCategory(categoryTerms, resumeTerms TermSet, threshold int) (matched, missing TermSet, err error) {
	if err = validateThreshold(threshold); err != nil {
		return nil, nil, err
	}
	matched, missing = matchCategory(categoryTerms, resumeTerms, threshold)
	return matched, missing, nil
}

func matchCategory(categoryTerms, resumeTerms TermSet, threshold int) (matched, missing TermSet) {
	matched, missing = NewTermSet(), NewTermSet()
	for term := range categoryTerms {
		if matchesAny(term, resumeTerms, threshold) {
			matched.Add(term)
		} else {
			missing.Add(term)
		}
	}
	return matched, missing
}

func matchesAny(term string, resumeTerms TermSet, threshold int) bool {
	if threshold <= 100 && resumeTerms.Has(term) {
		return true
	}
	for candidate := range resumeTerms {
		if TokenSetRatio(term, candidate) >= threshold {
			return true
		}
	}
	return false
}

// buildReport scores every non-empty category and aggregates the weighted
// overall score.
func buildReport(categorized Categorization, resumeTerms TermSet, threshold int) (Report, error) {
	if err := validateThreshold(threshold); err != nil {
		return Report{}, err
	}

	report := Report{
		Breakdown:       []CategoryResult{},
		Recommendations: []string{},
	}
	allMatched, allMissing := NewTermSet(), NewTermSet()
	weighted, weights := 0, 0

	for _, cat := range categoryTable {
		terms := categorized.Terms(cat.Name)
		if terms.Len() == 0 {
			continue
		}

		matched, missing := matchCategory(terms, resumeTerms, threshold)
		percentage := 100 * matched.Len() / terms.Len()

		report.Breakdown = append(report.Breakdown, CategoryResult{
			Category:   cat.Name,
			Weight:     cat.Weight,
			MatchLevel: matchLevel(percentage),
			Percentage: percentage,
			Matched:    matched.Sorted(),
			Missing:    missing.Sorted(),
		})

		weighted += percentage * cat.Weight
		weights += cat.Weight
		allMatched.AddAll(matched)
		allMissing.AddAll(missing)
	}

	if weights > 0 {
		report.OverallScore = weighted / weights
	}

	sort.SliceStable(report.Breakdown, func(i, j int) bool {
		a, b := report.Breakdown[i], report.Breakdown[j]
		if a.Percentage != b.Percentage {
			return a.Percentage > b.Percentage
		}
		return a.Category > b.Category
	})

	for _, result := range report.Breakdown {
		if result.Percentage < 50 {
			report.Recommendations = append(report.Recommendations, fmt.Sprintf(
				"Improve your %s: consider adding %s.", result.Category, strings.Join(result.Missing, ", ")))
		}
	}

	report.MatchedKeywords = allMatched.Sorted()
	report.MissingKeywords = allMissing.Sorted()
	return report, nil
}
