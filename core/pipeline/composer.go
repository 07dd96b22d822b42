package pipeline

import (
	"strings"

	"github.com/siherrmann/courser/model"
)

// DefaultComposer renders the course fields that carry meaning for retrieval
// into a single labeled text block. Empty fields are skipped so sparse catalog
// entries do not dilute the embedding.
func DefaultComposer() ComposeFunc {
	return func(course *model.Course) string {
		if course == nil {
			return ""
		}

		var parts []string
		addPart := func(label string, value string) {
			value = strings.TrimSpace(value)
			if value != "" {
				parts = append(parts, label+": "+value)
			}
		}

		addPart("Title", course.Title)
		addPart("Code", course.Code)
		addPart("Department", course.Department)
		addPart("Level", string(course.Level))
		addPart("Description", course.Description)
		addPart("Tags", strings.Join(course.Tags, ", "))

		return strings.Join(parts, "\n")
	}
}
