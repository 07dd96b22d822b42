package model

import "strings"

// SearchFilters restricts retrieval to courses matching every non-empty field.
// Each field is an allowed value set, an empty field does not filter.
type SearchFilters struct {
	Levels      []CourseLevel `json:"levels,omitempty"`
	Departments []string      `json:"departments,omitempty"`
	Categories  []string      `json:"categories,omitempty"`
	Tags        []string      `json:"tags,omitempty"`
}

// IsZero reports whether no filter field is set.
func (f *SearchFilters) IsZero() bool {
	if f == nil {
		return true
	}
	return len(f.Levels) == 0 && len(f.Departments) == 0 && len(f.Categories) == 0 && len(f.Tags) == 0
}

// RetrievalQuery is one retrieval request derived from a profile.
// Queries are created per recommendation request and not persisted.
type RetrievalQuery struct {
	// Text is embedded for the similarity search.
	Text string `json:"text"`
	// Label records where the query came from, e.g. "interest: data science".
	Label string `json:"label,omitempty"`
	// Filters restrict the search to matching courses.
	Filters SearchFilters `json:"filters,omitempty"`
	// Weight is the relative importance of this query when results are merged.
	Weight float64 `json:"weight"`
}

// Valid reports whether the query can be searched at all.
// A query needs text to embed or at least one filter.
func (q *RetrievalQuery) Valid() bool {
	if q == nil {
		return false
	}
	return strings.TrimSpace(q.Text) != "" || !q.Filters.IsZero()
}
