package model

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/courser/helper"
)

// ProfileSource represents where a profile was ingested from
type ProfileSource string

const (
	SourceResume ProfileSource = "resume"
	SourceWeb    ProfileSource = "web"
	SourceManual ProfileSource = "manual"
)

// Education represents one entry of a profile's education history
type Education struct {
	Institution string `json:"institution"`
	Degree      string `json:"degree"`
	Field       string `json:"field"`
}

// EducationList is the education history stored as JSONB
type EducationList []Education

// Value implements the driver.Valuer interface for database storage
func (e EducationList) Value() (driver.Value, error) {
	if e == nil {
		return json.Marshal(EducationList{})
	}
	return json.Marshal(e)
}

// Scan implements the sql.Scanner interface for database retrieval
func (e *EducationList) Scan(value interface{}) error {
	if value == nil {
		*e = EducationList{}
		return nil
	}

	b, ok := value.([]byte)
	if !ok {
		return helper.NewError("byte assertion", errors.New("type assertion to []byte failed"))
	}

	return json.Unmarshal(b, e)
}

// StudentProfile represents a student profile used for recommendations.
// Profiles are created once per ingestion event and treated as immutable, a
// new version supersedes rather than mutates. Loosely structured extraction
// output must be validated into this shape before entering the core.
type StudentProfile struct {
	ID         int64         `json:"id"`
	RID        uuid.UUID     `json:"rid"`
	Name       string        `json:"name"`
	Email      string        `json:"email,omitempty"`
	Skills     []string      `json:"skills,omitempty"`
	Interests  []string      `json:"interests,omitempty"`
	Education  EducationList `json:"education,omitempty"`
	Experience string        `json:"experience,omitempty"`
	Source     ProfileSource `json:"source"`
	Metadata   Metadata      `json:"metadata,omitempty"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
}

// Normalize brings the profile into canonical form: skills become a sorted,
// deduplicated, lowercased set, interests keep their relevance order but are
// lowercased and deduplicated, and the source falls back to manual.
// Safe to call repeatedly.
func (p *StudentProfile) Normalize() {
	p.Skills = NormalizeTerms(p.Skills)
	p.Interests = NormalizeOrderedTerms(p.Interests)
	p.Experience = strings.TrimSpace(p.Experience)
	if p.Source == "" {
		p.Source = SourceManual
	}
}

// IsEmpty reports whether the profile has no searchable fields.
// A profile needs at least one of skills, interests or experience to be
// eligible for retrieval.
func (p *StudentProfile) IsEmpty() bool {
	if p == nil {
		return true
	}
	return len(p.Skills) == 0 && len(p.Interests) == 0 && strings.TrimSpace(p.Experience) == ""
}

// EducationLevel returns the course level implied by the profile's education
// history. Doctoral and master degrees imply advanced, bachelor degrees
// intermediate, everything else beginner.
func (p *StudentProfile) EducationLevel() CourseLevel {
	level := LevelBeginner
	for _, education := range p.Education {
		degree := strings.ToLower(education.Degree)
		switch {
		case strings.Contains(degree, "phd"),
			strings.Contains(degree, "ph.d"),
			strings.Contains(degree, "doctor"),
			strings.Contains(degree, "master"),
			strings.Contains(degree, "msc"),
			strings.Contains(degree, "mba"):
			return LevelAdvanced
		case strings.Contains(degree, "bachelor"),
			strings.Contains(degree, "bsc"),
			strings.Contains(degree, "b.s"),
			strings.Contains(degree, "undergraduate"):
			level = LevelIntermediate
		}
	}
	return level
}

// MentionsCourse reports whether the profile refers to the given course code
// in its skills, education history or experience text. Prerequisite checks use
// this to decide whether a prerequisite counts as met.
func (p *StudentProfile) MentionsCourse(code string) bool {
	code = strings.ToLower(strings.TrimSpace(code))
	if code == "" {
		return false
	}

	for _, skill := range p.Skills {
		if strings.ToLower(skill) == code {
			return true
		}
	}

	for _, education := range p.Education {
		if strings.Contains(strings.ToLower(education.Degree), code) ||
			strings.Contains(strings.ToLower(education.Field), code) {
			return true
		}
	}

	return strings.Contains(strings.ToLower(p.Experience), code)
}
