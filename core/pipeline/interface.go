package pipeline

import (
	"fmt"
	"strings"

	"github.com/siherrmann/courser/model"
)

// ComposeFunc renders a course into the text that gets embedded
type ComposeFunc func(course *model.Course) string

// EmbedFunc is a function that generates embeddings for text
type EmbedFunc func(text string) ([]float32, error)

// Pipeline combines composing and embedding functions
type Pipeline struct {
	Composer ComposeFunc
	Embedder EmbedFunc
}

// NewPipeline creates a new processing pipeline
func NewPipeline(composer ComposeFunc, embedder EmbedFunc) *Pipeline {
	return &Pipeline{
		Composer: composer,
		Embedder: embedder,
	}
}

// Process fills in the embedding of a course from its composed text.
// The course itself is not persisted here, storage is the caller's concern.
func (p *Pipeline) Process(course *model.Course) error {
	if course == nil {
		return fmt.Errorf("course is nil")
	}

	text := strings.TrimSpace(p.Composer(course))
	if text == "" {
		return fmt.Errorf("course %v has no content to embed", course.Code)
	}

	embedding, err := p.Embedder(text)
	if err != nil {
		return fmt.Errorf("%w: %v", model.ErrEmbeddingService, err)
	}

	course.Embedding = embedding
	return nil
}
