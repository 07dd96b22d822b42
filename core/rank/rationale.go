package rank

import (
	"fmt"

	"github.com/siherrmann/courser/model"
)

// buildRationale lists the positively contributing factors in a fixed order:
// skill matches, interest alignments, then the retrieval provenance. Penalties
// never appear here, they are visible in the score components.
func buildRationale(skillMatches, interestMatches []string, candidate *model.CandidateMatch) []string {
	rationale := make([]string, 0, len(skillMatches)+len(interestMatches)+1)

	for _, skill := range skillMatches {
		rationale = append(rationale, "matches skill: "+skill)
	}
	for _, interest := range interestMatches {
		rationale = append(rationale, "aligned interest: "+interest)
	}

	if candidate.Query != nil && candidate.Query.Label != "" {
		rationale = append(rationale, fmt.Sprintf("retrieved via %q (similarity %.2f)", candidate.Query.Label, candidate.Similarity))
	} else {
		rationale = append(rationale, fmt.Sprintf("retrieval similarity %.2f", candidate.Similarity))
	}

	return rationale
}

// intersectSorted returns the terms present in both sorted term sets.
func intersectSorted(a, b []string) []string {
	var intersection []string
	i, j := 0, 0
	for i < len(a) && j < len(b) {
		switch {
		case a[i] == b[j]:
			intersection = append(intersection, a[i])
			i++
			j++
		case a[i] < b[j]:
			i++
		default:
			j++
		}
	}
	return intersection
}

// alignedInterests returns the interests matching a course tag exactly,
// keeping the profile's relevance order.
func alignedInterests(interests, tags []string) []string {
	tagSet := make(map[string]struct{}, len(tags))
	for _, tag := range tags {
		tagSet[tag] = struct{}{}
	}

	var aligned []string
	for _, interest := range interests {
		if _, ok := tagSet[interest]; ok {
			aligned = append(aligned, interest)
		}
	}
	return aligned
}
