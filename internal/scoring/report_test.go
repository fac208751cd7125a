package scoring

import (
	"errors"
	"reflect"
	"testing"
)

func categorization(terms map[CategoryName][]string) Categorization {
	c := newCategorization()
	for name, list := range terms {
		for _, term := range list {
			c[name].Add(term)
		}
	}
	return c
}

func TestBuildReportOrderingAndScore(t *testing.T) {
	t.Parallel()

	categorized := categorization(map[CategoryName][]string{
		Skills:     {"python", "docker", "golang", "redis", "kubernetes"},
		Education:  {"bachelor", "master", "degree", "diploma", "university"},
		Experience: {"experience", "leadership"},
	})
	resume := NewTermSet("python", "docker", "golang", "redis", "bachelor", "master", "degree", "diploma", "experience")

	report, err := BuildReport(categorized, resume, DefaultThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var order []CategoryName
	for _, result := range report.Breakdown {
		order = append(order, result.Category)
	}
	if want := []CategoryName{Skills, Education, Experience}; !reflect.DeepEqual(order, want) {
		t.Fatalf("expected order %v, got %v", want, order)
	}

	levels := []MatchLevel{MatchExcellent, MatchExcellent, MatchGood}
	for i, result := range report.Breakdown {
		if result.MatchLevel != levels[i] {
			t.Fatalf("%s: expected level %s, got %s", result.Category, levels[i], result.MatchLevel)
		}
	}

	// (80*20 + 80*10 + 50*15) / 45
	if report.OverallScore != 70 {
		t.Fatalf("expected overall score 70, got %d", report.OverallScore)
	}
	if len(report.Recommendations) != 0 {
		t.Fatalf("expected no recommendations, got %v", report.Recommendations)
	}
	if want := []string{"kubernetes", "leadership", "university"}; !reflect.DeepEqual(report.MissingKeywords, want) {
		t.Fatalf("expected missing %v, got %v", want, report.MissingKeywords)
	}
}

func TestBuildReportRecommendations(t *testing.T) {
	t.Parallel()

	categorized := categorization(map[CategoryName][]string{
		Skills:         {"python", "terraform", "ansible"},
		Certifications: {"cissp"},
		JobTitle:       {"python developer"},
	})
	resume := NewTermSet("python", "python developer")

	report, err := BuildReport(categorized, resume, DefaultThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	want := []string{
		"Improve your Skills: consider adding ansible, terraform.",
		"Improve your Certifications: consider adding cissp.",
	}
	if !reflect.DeepEqual(report.Recommendations, want) {
		t.Fatalf("expected %v, got %v", want, report.Recommendations)
	}

	// Skills 33, Certifications 0, Job Title 100
	if report.OverallScore != (33*20+0*10+100*10)/40 {
		t.Fatalf("unexpected overall score %d", report.OverallScore)
	}
}

func TestBuildReportEmpty(t *testing.T) {
	t.Parallel()

	report, err := BuildReport(newCategorization(), NewTermSet("python"), DefaultThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.OverallScore != 0 {
		t.Fatalf("expected 0, got %d", report.OverallScore)
	}
	if report.Breakdown == nil || len(report.Breakdown) != 0 {
		t.Fatalf("expected empty non-nil breakdown, got %#v", report.Breakdown)
	}
	if report.Recommendations == nil || report.MatchedKeywords == nil || report.MissingKeywords == nil {
		t.Fatalf("expected non-nil slices for JSON output")
	}
}

func TestBuildReportZeroWeightOnly(t *testing.T) {
	t.Parallel()

	categorized := categorization(map[CategoryName][]string{
		CommunicationQuality: {"communication"},
	})

	report, err := BuildReport(categorized, NewTermSet("communication"), DefaultThreshold)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if report.OverallScore != 0 {
		t.Fatalf("zero-weight category must not produce a score, got %d", report.OverallScore)
	}
	if len(report.Breakdown) != 1 || report.Breakdown[0].Percentage != 100 {
		t.Fatalf("expected the placeholder category in the breakdown, got %#v", report.Breakdown)
	}
}

func TestBuildReportInvalidThreshold(t *testing.T) {
	t.Parallel()

	for _, threshold := range []int{-1, 101, 1000} {
		if _, err := BuildReport(newCategorization(), NewTermSet(), threshold); !errors.Is(err, ErrInvalidThreshold) {
			t.Fatalf("threshold %d: expected ErrInvalidThreshold, got %v", threshold, err)
		}
	}
}

func TestMatchCategory(t *testing.T) {
	t.Parallel()

	terms := NewTermSet("python", "kubernetes", "experience", "java")
	resume := NewTermSet("python", "experienced", "lava")

	cases := []struct {
		threshold int
		matched   []string
	}{
		{threshold: 100, matched: []string{"python"}},
		{threshold: 80, matched: []string{"experience", "python"}},
		{threshold: 75, matched: []string{"experience", "java", "python"}},
		{threshold: 0, matched: []string{"experience", "java", "kubernetes", "python"}},
	}

	for _, tc := range cases {
		matched, missing, err := MatchCategory(terms, resume, tc.threshold)
		if err != nil {
			t.Fatalf("threshold %d: unexpected error: %v", tc.threshold, err)
		}
		if got := matched.Sorted(); !reflect.DeepEqual(got, tc.matched) {
			t.Fatalf("threshold %d: expected matched %v, got %v", tc.threshold, tc.matched, got)
		}
		if matched.Len()+missing.Len() != terms.Len() {
			t.Fatalf("threshold %d: matched and missing must partition the terms", tc.threshold)
		}
		for term := range matched {
			if missing.Has(term) {
				t.Fatalf("term %q is both matched and missing", term)
			}
		}
	}
}

func TestMatchCategoryEmptyResume(t *testing.T) {
	t.Parallel()

	matched, missing, err := MatchCategory(NewTermSet("python", "docker"), NewTermSet(), 0)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if matched.Len() != 0 || missing.Len() != 2 {
		t.Fatalf("expected everything missing, got matched=%v missing=%v", matched.Sorted(), missing.Sorted())
	}
}

func TestMatchCategoryRejectsInvalidThreshold(t *testing.T) {
	t.Parallel()

	for _, threshold := range []int{-1, 101, 150} {
		matched, missing, err := MatchCategory(NewTermSet("python"), NewTermSet("python"), threshold)
		if !errors.Is(err, ErrInvalidThreshold) {
			t.Fatalf("threshold %d: expected ErrInvalidThreshold, got %v", threshold, err)
		}
		if matched != nil || missing != nil {
			t.Fatalf("threshold %d: expected no partition, got %v / %v", threshold, matched, missing)
		}
	}
}

func TestMatchLevel(t *testing.T) {
	t.Parallel()

	cases := map[int]MatchLevel{
		0:   MatchNone,
		1:   MatchPartial,
		49:  MatchPartial,
		50:  MatchGood,
		79:  MatchGood,
		80:  MatchExcellent,
		100: MatchExcellent,
	}
	for percentage, want := range cases {
		if got := matchLevel(percentage); got != want {
			t.Fatalf("matchLevel(%d) = %s, want %s", percentage, got, want)
		}
	}
}
