package model

// QueryConfig represents configuration for query building, retrieval and
// ranking. All weighting constants are tunable here rather than hidden in the
// implementation.
type QueryConfig struct {
	// Vector search parameters
	TopK                int     `json:"top_k"`
	SimilarityThreshold float64 `json:"similarity_threshold,omitempty"`

	// Query building parameters
	MaxInterestQueries int     `json:"max_interest_queries"`
	ProfileWeight      float64 `json:"profile_weight"`    // Weight of the combined profile query
	InterestWeight     float64 `json:"interest_weight"`   // Weight of per-interest queries
	SkillWeight        float64 `json:"skill_weight"`      // Weight of the skills query
	ExperienceWeight   float64 `json:"experience_weight"` // Weight of the experience query

	// Ranking parameters
	RetrievalWeight     float64 `json:"retrieval_weight"`     // Weight of the combined retrieval score
	SkillBonus          float64 `json:"skill_bonus"`          // Bonus per exact skill/tag overlap
	InterestBonus       float64 `json:"interest_bonus"`       // Bonus per interest/tag alignment
	PrerequisitePenalty float64 `json:"prerequisite_penalty"` // Penalty per unmet prerequisite
	MaxPerTag           int     `json:"max_per_tag"`          // Diversity cap per dominant tag

	// Concurrency parameters
	MaxConcurrentQueries int `json:"max_concurrent_queries"`
}

// DefaultQueryConfig returns a sensible default configuration.
// Interests weigh more than skills, skills more than raw experience text.
func DefaultQueryConfig() QueryConfig {
	return QueryConfig{
		TopK:                 5,
		SimilarityThreshold:  0.0,
		MaxInterestQueries:   3,
		ProfileWeight:        1.0,
		InterestWeight:       0.9,
		SkillWeight:          0.7,
		ExperienceWeight:     0.4,
		RetrievalWeight:      1.0,
		SkillBonus:           0.1,
		InterestBonus:        0.15,
		PrerequisitePenalty:  0.1,
		MaxPerTag:            2,
		MaxConcurrentQueries: 4,
	}
}
