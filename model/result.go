package model

import "time"

// CandidateMatch represents a course surfaced by retrieval before ranking.
// It lives for one recommendation request and is consumed by the recommender.
type CandidateMatch struct {
	Course *Course `json:"course"`
	// Similarity is the raw cosine similarity of the best matching query,
	// computed as 1 - cosine distance and clamped to [0, 1].
	Similarity float64 `json:"similarity"`
	// Score is the combined retrieval score: the maximum of
	// similarity * query weight across every query that returned the course.
	Score float64 `json:"score"`
	// Query is a back-reference to the query that produced the kept match.
	Query *RetrievalQuery `json:"query,omitempty"`
}

// Recommendation is the final scored output for one course, immutable once
// produced.
type Recommendation struct {
	Course *Course `json:"course"`
	Score  float64 `json:"score"`
	// Rationale lists the factors that contributed positively, in a fixed
	// order, e.g. "matches skill: python".
	Rationale []string `json:"rationale,omitempty"`
	// Components records the per-factor score contributions for inspection.
	Components map[string]float64 `json:"components,omitempty"`
}

// ProfileAnalysis summarizes how a profile was interpreted for retrieval.
type ProfileAnalysis struct {
	Level       CourseLevel `json:"level"`
	SearchQuery string      `json:"search_query"`
	// SkillGaps are tags of recommended courses the profile does not cover yet.
	SkillGaps       []string          `json:"skill_gaps,omitempty"`
	Recommendations []*Recommendation `json:"recommendations,omitempty"`
}

// CatalogStats reports totals over the stored catalog and profiles.
type CatalogStats struct {
	TotalCourses  int       `json:"total_courses"`
	TotalProfiles int       `json:"total_profiles"`
	LastUpdated   time.Time `json:"last_updated"`
}
