package rank

import (
	"sort"

	"github.com/siherrmann/courser/model"
)

// Recommender re-scores retrieval candidates against the profile and produces
// the final ranked recommendations.
type Recommender struct {
	config model.QueryConfig
}

// NewRecommender creates a new recommender. A nil config falls back to the
// default configuration.
func NewRecommender(config *model.QueryConfig) *Recommender {
	if config == nil {
		defaults := model.DefaultQueryConfig()
		config = &defaults
	}
	return &Recommender{config: *config}
}

// Recommend re-scores the candidates and returns at most limit recommendations
// ordered by final score descending, ties by course code. The final score is
// the weighted retrieval score plus a bonus per skill/tag overlap, a bonus per
// interest/tag alignment and a penalty per unmet prerequisite. Unmet
// prerequisites lower the rank but never exclude a course.
//
// A diversity cap keeps at most MaxPerTag recommendations per dominant tag,
// skipping over-represented courses and promoting the next distinct ones.
// Courses without tags are exempt. An empty candidate list is a valid outcome
// and returns an empty list.
func (r *Recommender) Recommend(profile *model.StudentProfile, candidates []*model.CandidateMatch, limit int) ([]*model.Recommendation, error) {
	if profile.IsEmpty() {
		return nil, model.ErrInvalidProfile
	}

	recommendations := make([]*model.Recommendation, 0, len(candidates))
	if len(candidates) == 0 || limit <= 0 {
		return recommendations, nil
	}

	skills := model.NormalizeTerms(profile.Skills)
	interests := model.NormalizeOrderedTerms(profile.Interests)

	scored := make([]*model.Recommendation, 0, len(candidates))
	for _, candidate := range candidates {
		if candidate == nil || candidate.Course == nil {
			continue
		}
		scored = append(scored, r.score(profile, skills, interests, candidate))
	}

	sort.Slice(scored, func(i, j int) bool {
		if scored[i].Score != scored[j].Score {
			return scored[i].Score > scored[j].Score
		}
		return scored[i].Course.Code < scored[j].Course.Code
	})

	// Diversity cap per dominant tag
	tagCounts := make(map[string]int)
	for _, recommendation := range scored {
		if len(recommendations) >= limit {
			break
		}

		tag := recommendation.Course.DominantTag()
		if tag != "" && r.config.MaxPerTag > 0 && tagCounts[tag] >= r.config.MaxPerTag {
			continue
		}

		recommendations = append(recommendations, recommendation)
		if tag != "" {
			tagCounts[tag]++
		}
	}

	return recommendations, nil
}

// score computes the final score, components and rationale for one candidate.
func (r *Recommender) score(profile *model.StudentProfile, skills, interests []string, candidate *model.CandidateMatch) *model.Recommendation {
	course := candidate.Course
	tags := model.NormalizeTerms(course.Tags)

	skillMatches := intersectSorted(skills, tags)
	interestMatches := alignedInterests(interests, tags)
	unmet := unmetPrerequisites(profile, course)

	components := map[string]float64{
		"retrieval": r.config.RetrievalWeight * candidate.Score,
	}
	if len(skillMatches) > 0 {
		components["skills"] = r.config.SkillBonus * float64(len(skillMatches))
	}
	if len(interestMatches) > 0 {
		components["interests"] = r.config.InterestBonus * float64(len(interestMatches))
	}
	if len(unmet) > 0 {
		components["prerequisites"] = -r.config.PrerequisitePenalty * float64(len(unmet))
	}

	score := 0.0
	for _, component := range components {
		score += component
	}

	return &model.Recommendation{
		Course:     course,
		Score:      score,
		Rationale:  buildRationale(skillMatches, interestMatches, candidate),
		Components: components,
	}
}

// unmetPrerequisites returns the prerequisite codes the profile does not cover.
func unmetPrerequisites(profile *model.StudentProfile, course *model.Course) []string {
	var unmet []string
	for _, prerequisite := range model.NormalizeCodes(course.Prerequisites) {
		if !profile.MentionsCourse(prerequisite) {
			unmet = append(unmet, prerequisite)
		}
	}
	return unmet
}

// SkillGaps returns tags of the recommended courses the profile's skills do
// not cover yet, sorted, capped at max.
func SkillGaps(profile *model.StudentProfile, recommendations []*model.Recommendation, max int) []string {
	if profile == nil || max <= 0 {
		return nil
	}

	covered := make(map[string]struct{}, len(profile.Skills))
	for _, skill := range model.NormalizeTerms(profile.Skills) {
		covered[skill] = struct{}{}
	}

	var gaps []string
	seen := make(map[string]struct{})
	for _, recommendation := range recommendations {
		if recommendation == nil || recommendation.Course == nil {
			continue
		}
		for _, tag := range model.NormalizeTerms(recommendation.Course.Tags) {
			if _, ok := covered[tag]; ok {
				continue
			}
			if _, ok := seen[tag]; ok {
				continue
			}
			seen[tag] = struct{}{}
			gaps = append(gaps, tag)
		}
	}

	sort.Strings(gaps)
	if len(gaps) > max {
		gaps = gaps[:max]
	}
	return gaps
}
