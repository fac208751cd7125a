package scoring

// MatchResult is the flat keyword score without categories.
type MatchResult struct {
	OverallScore    int      `json:"overall_score"`
	MatchedKeywords []string `json:"matched_keywords"`
	MissingKeywords []string `json:"missing_keywords"`
}

// Keywords lists the terms extracted from both documents.
type Keywords struct {
	ResumeKeywords []string `json:"resume_keywords"`
	JobKeywords    []string `json:"job_keywords"`
}

// Analyzer runs the scoring pipeline against one lexicon. It holds no mutable
// state and can be shared between goroutines.
type Analyzer struct {
	lex *Lexicon
}

// NewAnalyzer returns an Analyzer using lex, or the embedded lexicon when lex is nil.
func NewAnalyzer(lex *Lexicon) *Analyzer {
	if lex == nil {
		lex = DefaultLexicon()
	}
	return &Analyzer{lex: lex}
}

func (a *Analyzer) Lexicon() *Lexicon {
	return a.lex
}

// Tokenize extracts the unigram and bigram terms of text, without stopwords.
func (a *Analyzer) Tokenize(text string) TermSet {
	return tokenize(a.lex, text)
}

// ResumeTerms is Tokenize plus the base form of every recognised verb.
func (a *Analyzer) ResumeTerms(text string) TermSet {
	return resumeTerms(a.lex, text)
}

// Categorize assigns the terms of a job description to the weighted categories.
// Every category is present in the result, possibly empty.
func (a *Analyzer) Categorize(jobText string) Categorization {
	return categorize(a.lex, jobText)
}

func (a *Analyzer) MatchCategory(categoryTerms, resumeTerms TermSet, threshold int) (matched, missing TermSet, err error) {
	return MatchCategory(categoryTerms, resumeTerms, threshold)
}

func (a *Analyzer) BuildReport(categorized Categorization, resumeTerms TermSet, threshold int) (Report, error) {
	report, err := buildReport(categorized, resumeTerms, threshold)
	if err != nil {
		return Report{}, err
	}
	report.LexiconVersion = a.lex.Version
	return report, nil
}

// AnalyzeMatch scores the share of job terms found in the resume.
func (a *Analyzer) AnalyzeMatch(resumeText, jobText string, threshold int) (MatchResult, error) {
	if err := validateThreshold(threshold); err != nil {
		return MatchResult{}, err
	}

	jobTerms := a.Tokenize(jobText)
	matched, missing := matchCategory(jobTerms, a.ResumeTerms(resumeText), threshold)

	result := MatchResult{
		MatchedKeywords: matched.Sorted(),
		MissingKeywords: missing.Sorted(),
	}
	if jobTerms.Len() > 0 {
		result.OverallScore = 100 * matched.Len() / jobTerms.Len()
	}
	return result, nil
}

// AnalyzeDetailed produces the full categorized report.
func (a *Analyzer) AnalyzeDetailed(resumeText, jobText string, threshold int) (Report, error) {
	if err := validateThreshold(threshold); err != nil {
		return Report{}, err
	}
	return a.BuildReport(a.Categorize(jobText), a.ResumeTerms(resumeText), threshold)
}

func (a *Analyzer) Keywords(resumeText, jobText string) Keywords {
	return Keywords{
		ResumeKeywords: a.Tokenize(resumeText).Sorted(),
		JobKeywords:    a.Tokenize(jobText).Sorted(),
	}
}

var std = NewAnalyzer(nil)

// Tokenize uses the embedded lexicon.
func Tokenize(text string) TermSet {
	return std.Tokenize(text)
}

// Categorize uses the embedded lexicon.
func Categorize(jobText string) Categorization {
	return std.Categorize(jobText)
}

// BuildReport uses the embedded lexicon.
func BuildReport(categorized Categorization, resumeTerms TermSet, threshold int) (Report, error) {
	return std.BuildReport(categorized, resumeTerms, threshold)
}

// AnalyzeMatch uses the embedded lexicon.
func AnalyzeMatch(resumeText, jobText string, threshold int) (MatchResult, error) {
	return std.AnalyzeMatch(resumeText, jobText, threshold)
}

// AnalyzeDetailed uses the embedded lexicon.
func AnalyzeDetailed(resumeText, jobText string, threshold int) (Report, error) {
	return std.AnalyzeDetailed(resumeText, jobText, threshold)
}
