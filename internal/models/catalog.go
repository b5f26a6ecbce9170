// internal/models/catalog.go
package models

type Difficulty string

const (
	DifficultyBeginner     Difficulty = "Beginner"
	DifficultyIntermediate Difficulty = "Intermediate"
	DifficultyAdvanced     Difficulty = "Advanced"
)

func (d Difficulty) Valid() bool {
	return d == DifficultyBeginner || d == DifficultyIntermediate || d == DifficultyAdvanced
}

// Course is a catalog entry recommended against focus areas.
type Course struct {
	ID          string     `json:"id,omitempty"`
	Title       string     `json:"title"`
	Provider    string     `json:"provider"`
	Duration    string     `json:"duration"`
	Difficulty  Difficulty `json:"difficulty"`
	Rating      float64    `json:"rating"`
	Price       string     `json:"price"`
	Description string     `json:"description,omitempty"`
	Skills      []string   `json:"skills"`
	URL         string     `json:"url"`
	Category    string     `json:"category"`
}

// Clone returns a copy that shares no slices with c.
func (c Course) Clone() Course {
	c.Skills = cloneStrings(c.Skills)
	return c
}

// Opportunity is a country catalog entry. MatchScore is the only field
// computed per request.
type Opportunity struct {
	Country       string   `json:"country"`
	Flag          string   `json:"flag,omitempty"`
	VisaType      string   `json:"visaType"`
	AverageSalary string   `json:"averageSalary"`
	TopCompanies  []string `json:"topCompanies"`
	Requirements  []string `json:"requirements"`
	Advantages    []string `json:"advantages"`
	Challenges    []string `json:"challenges"`
	TimeToProcess string   `json:"timeToProcess"`
	MatchScore    int      `json:"matchScore"`
	PopularCities []string `json:"popularCities"`
	WorkCulture   string   `json:"workCulture"`
	Adjustment    string   `json:"adjustment,omitempty"`
}

func (o Opportunity) Clone() Opportunity {
	o.TopCompanies = cloneStrings(o.TopCompanies)
	o.Requirements = cloneStrings(o.Requirements)
	o.Advantages = cloneStrings(o.Advantages)
	o.Challenges = cloneStrings(o.Challenges)
	o.PopularCities = cloneStrings(o.PopularCities)
	return o
}

func cloneStrings(in []string) []string {
	if in == nil {
		return nil
	}
	out := make([]string, len(in))
	copy(out, in)
	return out
}
