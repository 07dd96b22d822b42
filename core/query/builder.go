package query

import (
	"strings"

	"github.com/siherrmann/courser/model"
)

// maxExperienceSnippet caps the free-form experience text used as query input.
const maxExperienceSnippet = 200

// Build derives retrieval queries from a student profile.
// The first query covers the whole profile, followed by one query per leading
// interest, one for the skill set and one for the experience text. Interests
// weigh more than skills, skills more than raw experience. Every query carries
// a course level filter inferred from the education history.
// Build is a pure function of profile and config and never touches the profile.
func Build(profile *model.StudentProfile, config *model.QueryConfig) ([]model.RetrievalQuery, error) {
	if profile.IsEmpty() {
		return nil, model.ErrEmptyProfile
	}
	if config == nil {
		defaults := model.DefaultQueryConfig()
		config = &defaults
	}

	skills := model.NormalizeTerms(profile.Skills)
	interests := model.NormalizeOrderedTerms(profile.Interests)
	experience := experienceSnippet(profile.Experience)
	filters := levelFilters(profile.EducationLevel())

	queries := make([]model.RetrievalQuery, 0, len(interests)+3)

	// Primary query over the whole profile
	queries = append(queries, model.RetrievalQuery{
		Text:    PrimaryText(profile),
		Label:   "profile",
		Filters: filters,
		Weight:  config.ProfileWeight,
	})

	// One query per leading interest, interests are relevance ordered
	maxInterests := config.MaxInterestQueries
	if maxInterests > len(interests) {
		maxInterests = len(interests)
	}
	for i := 0; i < maxInterests; i++ {
		queries = append(queries, model.RetrievalQuery{
			Text:    interests[i],
			Label:   "interest: " + interests[i],
			Filters: filters,
			Weight:  config.InterestWeight,
		})
	}

	if len(skills) > 0 {
		queries = append(queries, model.RetrievalQuery{
			Text:    strings.Join(skills, " "),
			Label:   "skills",
			Filters: filters,
			Weight:  config.SkillWeight,
		})
	}

	if experience != "" {
		queries = append(queries, model.RetrievalQuery{
			Text:    experience,
			Label:   "experience",
			Filters: filters,
			Weight:  config.ExperienceWeight,
		})
	}

	return queries, nil
}

// PrimaryText returns the combined search text of the primary profile query,
// interests first, then skills, then the experience snippet.
func PrimaryText(profile *model.StudentProfile) string {
	if profile == nil {
		return ""
	}

	var parts []string
	if interests := model.NormalizeOrderedTerms(profile.Interests); len(interests) > 0 {
		parts = append(parts, strings.Join(interests, " "))
	}
	if skills := model.NormalizeTerms(profile.Skills); len(skills) > 0 {
		parts = append(parts, strings.Join(skills, " "))
	}
	if experience := experienceSnippet(profile.Experience); experience != "" {
		parts = append(parts, experience)
	}

	return strings.Join(parts, " ")
}

// levelFilters maps the inferred education level to the allowed course levels,
// the inferred level plus the one below it.
func levelFilters(level model.CourseLevel) model.SearchFilters {
	switch level {
	case model.LevelAdvanced:
		return model.SearchFilters{Levels: []model.CourseLevel{model.LevelIntermediate, model.LevelAdvanced}}
	case model.LevelIntermediate:
		return model.SearchFilters{Levels: []model.CourseLevel{model.LevelBeginner, model.LevelIntermediate}}
	default:
		return model.SearchFilters{Levels: []model.CourseLevel{model.LevelBeginner}}
	}
}

// experienceSnippet trims the free-form experience text to a searchable
// snippet, cut at a word boundary.
func experienceSnippet(experience string) string {
	experience = strings.TrimSpace(experience)
	runes := []rune(experience)
	if len(runes) <= maxExperienceSnippet {
		return experience
	}

	cut := string(runes[:maxExperienceSnippet])
	if idx := strings.LastIndex(cut, " "); idx > 0 {
		cut = cut[:idx]
	}
	return strings.TrimSpace(cut)
}
