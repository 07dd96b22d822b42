package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestSearchFilters_IsZero(t *testing.T) {
	t.Run("Empty filters are zero", func(t *testing.T) {
		filters := &SearchFilters{}

		assert.True(t, filters.IsZero())
	})

	t.Run("Nil filters are zero", func(t *testing.T) {
		var filters *SearchFilters

		assert.True(t, filters.IsZero())
	})

	t.Run("Any set field makes filters non-zero", func(t *testing.T) {
		assert.False(t, (&SearchFilters{Levels: []CourseLevel{LevelBeginner}}).IsZero())
		assert.False(t, (&SearchFilters{Departments: []string{"Computer Science"}}).IsZero())
		assert.False(t, (&SearchFilters{Categories: []string{"core"}}).IsZero())
		assert.False(t, (&SearchFilters{Tags: []string{"python"}}).IsZero())
	})
}

func TestRetrievalQuery_Valid(t *testing.T) {
	t.Run("Query with text is valid", func(t *testing.T) {
		query := &RetrievalQuery{Text: "data science", Weight: 1.0}

		assert.True(t, query.Valid())
	})

	t.Run("Query with only filters is valid", func(t *testing.T) {
		query := &RetrievalQuery{
			Filters: SearchFilters{Levels: []CourseLevel{LevelIntermediate}},
			Weight:  1.0,
		}

		assert.True(t, query.Valid())
	})

	t.Run("Query with neither text nor filters is invalid", func(t *testing.T) {
		query := &RetrievalQuery{Weight: 1.0}

		assert.False(t, query.Valid())
	})

	t.Run("Whitespace text does not count", func(t *testing.T) {
		query := &RetrievalQuery{Text: "   "}

		assert.False(t, query.Valid())
	})

	t.Run("Nil query is invalid", func(t *testing.T) {
		var query *RetrievalQuery

		assert.False(t, query.Valid())
	})
}
