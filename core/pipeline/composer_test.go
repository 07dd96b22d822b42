package pipeline

import (
	"strings"
	"testing"

	"github.com/siherrmann/courser/model"
	"github.com/stretchr/testify/assert"
)

func TestDefaultComposer(t *testing.T) {
	composer := DefaultComposer()

	t.Run("Renders all meaningful fields", func(t *testing.T) {
		course := &model.Course{
			Code:        "CS101",
			Title:       "Introduction to Programming",
			Description: "Fundamentals of programming with Python",
			Department:  "Computer Science",
			Level:       model.LevelBeginner,
			Tags:        []string{"python", "programming"},
		}

		text := composer(course)

		assert.Contains(t, text, "Title: Introduction to Programming")
		assert.Contains(t, text, "Code: CS101")
		assert.Contains(t, text, "Department: Computer Science")
		assert.Contains(t, text, "Level: beginner")
		assert.Contains(t, text, "Description: Fundamentals of programming with Python")
		assert.Contains(t, text, "Tags: python, programming")
	})

	t.Run("Skips empty fields", func(t *testing.T) {
		course := &model.Course{
			Code:  "CS101",
			Title: "Introduction to Programming",
		}

		text := composer(course)

		assert.NotContains(t, text, "Description:")
		assert.NotContains(t, text, "Tags:")
		assert.NotContains(t, text, "Department:")
	})

	t.Run("Sparse course still yields text", func(t *testing.T) {
		course := &model.Course{Title: "Only a Title"}

		text := composer(course)

		assert.Equal(t, "Title: Only a Title", text)
	})

	t.Run("Empty course yields empty text", func(t *testing.T) {
		assert.Equal(t, "", composer(&model.Course{}))
	})

	t.Run("Nil course yields empty text", func(t *testing.T) {
		assert.Equal(t, "", composer(nil))
	})

	t.Run("Fields are separated by newlines", func(t *testing.T) {
		course := &model.Course{
			Code:  "CS101",
			Title: "Introduction to Programming",
		}

		text := composer(course)

		lines := strings.Split(text, "\n")
		assert.Len(t, lines, 2)
	})
}
