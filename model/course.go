package model

import (
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// CourseLevel represents the difficulty level of a course
type CourseLevel string

const (
	LevelBeginner     CourseLevel = "beginner"
	LevelIntermediate CourseLevel = "intermediate"
	LevelAdvanced     CourseLevel = "advanced"
)

// ParseCourseLevel normalizes a level string to a CourseLevel.
// Unknown values map to LevelBeginner.
func ParseCourseLevel(value string) CourseLevel {
	switch strings.ToLower(strings.TrimSpace(value)) {
	case string(LevelIntermediate):
		return LevelIntermediate
	case string(LevelAdvanced):
		return LevelAdvanced
	default:
		return LevelBeginner
	}
}

// Course represents a course in the catalog.
// The code is the stable unique identifier across catalog updates, the numeric
// ID is database-internal. Embedding dimensionality is fixed catalog-wide.
type Course struct {
	ID            int64       `json:"id"`
	RID           uuid.UUID   `json:"rid"`
	Code          string      `json:"code"`
	Title         string      `json:"title"`
	Description   string      `json:"description,omitempty"`
	Department    string      `json:"department,omitempty"`
	Level         CourseLevel `json:"level"`
	Credits       int         `json:"credits,omitempty"`
	Instructor    string      `json:"instructor,omitempty"`
	Category      string      `json:"category,omitempty"`
	Tags          []string    `json:"tags,omitempty"`
	Prerequisites []string    `json:"prerequisites,omitempty"`
	Embedding     []float32   `json:"embedding,omitempty"`
	Metadata      Metadata    `json:"metadata,omitempty"`
	CreatedAt     time.Time   `json:"created_at"`
	UpdatedAt     time.Time   `json:"updated_at"`
	// Results
	Similarity float64 `json:"similarity,omitempty"`
}

// Normalize brings the course into canonical form: the code and prerequisites
// are uppercased, tags are lowercased, deduplicated and sorted, and the level
// falls back to beginner. Safe to call repeatedly.
func (c *Course) Normalize() {
	c.Code = strings.ToUpper(strings.TrimSpace(c.Code))
	c.Tags = NormalizeTerms(c.Tags)
	c.Prerequisites = NormalizeCodes(c.Prerequisites)
	c.Level = ParseCourseLevel(string(c.Level))
}

// DominantTag returns the tag counted against the diversity cap, the first tag
// of the normalized tag set. Courses without tags return an empty string and
// are exempt from the cap.
func (c *Course) DominantTag() string {
	tags := NormalizeTerms(c.Tags)
	if len(tags) == 0 {
		return ""
	}
	return tags[0]
}

// NormalizeTerms lowercases, trims, deduplicates and sorts a list of terms.
// Used for skills and tags, which are sets.
func NormalizeTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	result := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, exists := seen[term]; exists {
			continue
		}
		seen[term] = struct{}{}
		result = append(result, term)
	}
	sort.Strings(result)
	return result
}

// NormalizeOrderedTerms lowercases, trims and deduplicates a list of terms
// while keeping the original order. Used for interests, which are
// relevance-ordered.
func NormalizeOrderedTerms(terms []string) []string {
	seen := make(map[string]struct{}, len(terms))
	result := make([]string, 0, len(terms))
	for _, term := range terms {
		term = strings.ToLower(strings.TrimSpace(term))
		if term == "" {
			continue
		}
		if _, exists := seen[term]; exists {
			continue
		}
		seen[term] = struct{}{}
		result = append(result, term)
	}
	return result
}

// NormalizeCodes uppercases, trims, deduplicates and sorts course codes.
func NormalizeCodes(codes []string) []string {
	seen := make(map[string]struct{}, len(codes))
	result := make([]string, 0, len(codes))
	for _, code := range codes {
		code = strings.ToUpper(strings.TrimSpace(code))
		if code == "" {
			continue
		}
		if _, exists := seen[code]; exists {
			continue
		}
		seen[code] = struct{}{}
		result = append(result, code)
	}
	sort.Strings(result)
	return result
}
