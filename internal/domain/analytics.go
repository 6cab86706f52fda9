package domain

// Analytics is the aggregate view served to the dashboard
type Analytics struct {
	SkillDistribution      map[string]int `json:"skill_distribution"`
	ExperienceDistribution map[string]int `json:"experience_distribution"`
}

// ExperienceBucket is a [Min, Max) range of experience years. Max of 0 marks the
// final unbounded bucket.
type ExperienceBucket struct {
	Label string
	Min   float64
	Max   float64
}

var ExperienceBuckets = []ExperienceBucket{
	{Label: "0-2 years", Min: 0, Max: 2},
	{Label: "2-5 years", Min: 2, Max: 5},
	{Label: "5-10 years", Min: 5, Max: 10},
	{Label: "10+ years", Min: 10},
}

func (b ExperienceBucket) Contains(years float64) bool {
	if years < b.Min {
		return false
	}
	return b.Max == 0 || years < b.Max
}

// BucketFor returns the label of the bucket holding years. Negative values
// are counted in the first bucket since stored experience is never negative.
func BucketFor(years float64) string {
	for _, b := range ExperienceBuckets {
		if b.Contains(years) {
			return b.Label
		}
	}
	return ExperienceBuckets[0].Label
}

// NewExperienceDistribution returns a distribution with every bucket set to zero
func NewExperienceDistribution() map[string]int {
	dist := make(map[string]int, len(ExperienceBuckets))
	for _, b := range ExperienceBuckets {
		dist[b.Label] = 0
	}
	return dist
}
