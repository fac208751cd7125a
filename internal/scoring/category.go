package scoring

// CategoryName identifies one evaluation dimension of a job description.
type CategoryName string

const (
	Skills               CategoryName = "Skills"
	Experience           CategoryName = "Experience"
	Responsibilities     CategoryName = "Responsibilities"
	Certifications       CategoryName = "Certifications"
	Education            CategoryName = "Education"
	JobTitle             CategoryName = "Job Title"
	Achievements         CategoryName = "Achievements"
	SoftSkills           CategoryName = "Soft Skills"
	Projects             CategoryName = "Projects"
	Other                CategoryName = "Other"
	CommunicationQuality CategoryName = "Communication Quality"
)

// Category is a named bucket with a fixed scoring weight.
type Category struct {
	Name   CategoryName `json:"name"`
	Weight int          `json:"weight"`
}

// categoryTable fixes both the weights and the order categories are visited in.
// Weights of the scoring categories add up to 100; Communication Quality is
// reported but never weighted.
var categoryTable = []Category{
	{Name: Skills, Weight: 20},
	{Name: Experience, Weight: 15},
	{Name: Responsibilities, Weight: 12},
	{Name: Certifications, Weight: 10},
	{Name: Education, Weight: 10},
	{Name: JobTitle, Weight: 10},
	{Name: Achievements, Weight: 8},
	{Name: SoftSkills, Weight: 7},
	{Name: Projects, Weight: 5},
	{Name: Other, Weight: 3},
	{Name: CommunicationQuality, Weight: 0},
}

// Categories returns a copy of the category table.
func Categories() []Category {
	out := make([]Category, len(categoryTable))
	copy(out, categoryTable)
	return out
}

// Categorization holds the job terms assigned to each category. A term may
// sit in several categories.
type Categorization map[CategoryName]TermSet

func newCategorization() Categorization {
	c := make(Categorization, len(categoryTable))
	for _, cat := range categoryTable {
		c[cat.Name] = NewTermSet()
	}
	return c
}

// Terms returns the terms of one category, or an empty set.
func (c Categorization) Terms(name CategoryName) TermSet {
	if set, ok := c[name]; ok {
		return set
	}
	return NewTermSet()
}

// contains reports whether term was assigned to any category.
func (c Categorization) contains(term string) bool {
	for _, set := range c {
		if set.Has(term) {
			return true
		}
	}
	return false
}

// Len is the number of distinct category assignments.
func (c Categorization) Len() int {
	n := 0
	for _, set := range c {
		n += set.Len()
	}
	return n
}
