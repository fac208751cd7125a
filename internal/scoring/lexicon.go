package scoring

import (
	_ "embed"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed lexicon.yaml
var defaultLexiconYAML []byte

// lexiconFile mirrors the on-disk YAML layout.
type lexiconFile struct {
	Version              string            `yaml:"version"`
	Stopwords            []string          `yaml:"stopwords"`
	Skills               []string          `yaml:"skills"`
	Certifications       []string          `yaml:"certifications"`
	ImpactVerbs          []string          `yaml:"impact_verbs"`
	TitleSuffixes        []string          `yaml:"title_suffixes"`
	SoftSkills           []string          `yaml:"soft_skills"`
	CommunicationMarkers []string          `yaml:"communication_markers"`
	Verbs                []string          `yaml:"verbs"`
	IrregularVerbs       map[string]string `yaml:"irregular_verbs"`
	Adjectives           []string          `yaml:"adjectives"`
	EducationMarkers     []string          `yaml:"education_markers"`
	CertificationMarkers []string          `yaml:"certification_markers"`
	ProjectMarkers       []string          `yaml:"project_markers"`
	ExperienceMarkers    []string          `yaml:"experience_markers"`
}

// Lexicon is the immutable word data behind tokenization and categorization.
// It is safe for concurrent use once built.
type Lexicon struct {
	Version string

	stopwords      map[string]struct{}
	skills         map[string]struct{}
	certifications map[string]struct{}
	impactVerbs    map[string]struct{}
	titleSuffixes  map[string]struct{}
	softSkills     map[string]struct{}
	communication  map[string]struct{}
	verbs          map[string]struct{}
	irregular      map[string]string
	adjectives     map[string]struct{}

	// multi-word skill/certification phrases, split into words
	skillPhrases [][]string
	certPhrases  [][]string

	educationMarkers     []string
	certificationMarkers []string
	projectMarkers       []string
	experienceMarkers    []string
}

var defaultLexicon = mustParseLexicon(defaultLexiconYAML)

// DefaultLexicon returns the lexicon embedded in the binary.
func DefaultLexicon() *Lexicon {
	return defaultLexicon
}

// LoadLexicon reads a lexicon override from a YAML file.
func LoadLexicon(path string) (*Lexicon, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read lexicon: %w", err)
	}
	return ParseLexicon(data)
}

// ParseLexicon builds a Lexicon from YAML bytes.
func ParseLexicon(data []byte) (*Lexicon, error) {
	var file lexiconFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, fmt.Errorf("failed to parse lexicon: %w", err)
	}
	if strings.TrimSpace(file.Version) == "" {
		return nil, fmt.Errorf("lexicon version is required")
	}
	if len(file.Stopwords) == 0 {
		return nil, fmt.Errorf("lexicon must define stopwords")
	}

	lex := &Lexicon{
		Version:        strings.TrimSpace(file.Version),
		stopwords:      make(map[string]struct{}, len(file.Stopwords)),
		skills:         make(map[string]struct{}),
		certifications: make(map[string]struct{}),
		impactVerbs:    normalizedSet(file.ImpactVerbs),
		titleSuffixes:  normalizedSet(file.TitleSuffixes),
		softSkills:     normalizedSet(file.SoftSkills),
		communication:  normalizedSet(file.CommunicationMarkers),
		verbs:          normalizedSet(file.Verbs),
		irregular:      make(map[string]string, len(file.IrregularVerbs)),
		adjectives:     normalizedSet(file.Adjectives),

		educationMarkers:     normalizedList(file.EducationMarkers),
		certificationMarkers: normalizedList(file.CertificationMarkers),
		projectMarkers:       normalizedList(file.ProjectMarkers),
		experienceMarkers:    normalizedList(file.ExperienceMarkers),
	}

	// Stopwords are only lowercased: stripping the apostrophe of "she'll" would
	// turn it into a real word.
	for _, w := range file.Stopwords {
		w = strings.ToLower(strings.TrimSpace(w))
		if w != "" {
			lex.stopwords[w] = struct{}{}
		}
	}

	for form, lemma := range file.IrregularVerbs {
		form, lemma = normalizeTerm(form), normalizeTerm(lemma)
		if form != "" && lemma != "" {
			lex.irregular[form] = lemma
		}
	}

	lex.skillPhrases = splitEntries(file.Skills, lex.skills)
	lex.certPhrases = splitEntries(file.Certifications, lex.certifications)

	return lex, nil
}

func mustParseLexicon(data []byte) *Lexicon {
	lex, err := ParseLexicon(data)
	if err != nil {
		panic(fmt.Sprintf("embedded lexicon is invalid: %v", err))
	}
	return lex
}

// IsStopword reports whether w (already lowercased) is a stopword.
func (l *Lexicon) IsStopword(w string) bool {
	_, ok := l.stopwords[w]
	return ok
}

// lemma returns the base form of a known verb.
func (l *Lexicon) lemma(w string) (string, bool) {
	if _, ok := l.verbs[w]; ok {
		return w, true
	}
	if base, ok := l.irregular[w]; ok {
		return base, true
	}

	var candidates []string
	switch {
	case strings.HasSuffix(w, "ing") && len(w) > 4:
		stem := w[:len(w)-3]
		candidates = append(candidates, stem, stem+"e", undouble(stem))
	case strings.HasSuffix(w, "ied") && len(w) > 4:
		candidates = append(candidates, w[:len(w)-3]+"y")
	case strings.HasSuffix(w, "ed") && len(w) > 3:
		stem := w[:len(w)-2]
		candidates = append(candidates, stem, w[:len(w)-1], undouble(stem))
	case strings.HasSuffix(w, "ies") && len(w) > 4:
		candidates = append(candidates, w[:len(w)-3]+"y")
	case strings.HasSuffix(w, "es") && len(w) > 4:
		candidates = append(candidates, w[:len(w)-2], w[:len(w)-1])
	case strings.HasSuffix(w, "s") && len(w) > 3:
		candidates = append(candidates, w[:len(w)-1])
	}

	for _, c := range candidates {
		if _, ok := l.verbs[c]; ok {
			return c, true
		}
	}
	return "", false
}

func (l *Lexicon) isAdjective(w string) bool {
	if _, ok := l.adjectives[w]; ok {
		return true
	}
	if len(w) < 6 {
		return false
	}
	for _, suffix := range []string{"ive", "ful", "ous", "able", "ible"} {
		if strings.HasSuffix(w, suffix) {
			return true
		}
	}
	return false
}

func undouble(stem string) string {
	n := len(stem)
	if n >= 2 && stem[n-1] == stem[n-2] {
		return stem[:n-1]
	}
	return stem
}

func has(set map[string]struct{}, w string) bool {
	_, ok := set[w]
	return ok
}

func containsAny(w string, markers []string) bool {
	for _, m := range markers {
		if strings.Contains(w, m) {
			return true
		}
	}
	return false
}

func normalizedSet(entries []string) map[string]struct{} {
	set := make(map[string]struct{}, len(entries))
	for _, e := range entries {
		if n := normalizeTerm(e); n != "" {
			set[n] = struct{}{}
		}
	}
	return set
}

func normalizedList(entries []string) []string {
	out := make([]string, 0, len(entries))
	for _, e := range entries {
		if n := normalizeTerm(e); n != "" {
			out = append(out, n)
		}
	}
	return out
}

// splitEntries puts single-word entries into singles and returns the
// multi-word ones as word slices. Entries left with no word of at least
// three runes ("c++") can never match a term and are dropped.
func splitEntries(entries []string, singles map[string]struct{}) [][]string {
	var phrases [][]string
	for _, e := range entries {
		ws := words(e)
		if !anyLongWord(ws) {
			continue
		}
		if len(ws) == 1 {
			singles[ws[0]] = struct{}{}
			continue
		}
		phrases = append(phrases, ws)
	}
	return phrases
}

func anyLongWord(words []string) bool {
	for _, w := range words {
		if runeLen(w) >= minTermLength {
			return true
		}
	}
	return false
}
