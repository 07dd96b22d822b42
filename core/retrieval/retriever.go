package retrieval

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/siherrmann/courser/core/pipeline"
	"github.com/siherrmann/courser/helper"
	"github.com/siherrmann/courser/model"
)

// Index defines the vector index operations the retriever needs.
// *database.CoursesDBHandler satisfies it.
type Index interface {
	SelectCoursesBySimilarity(embedding []float32, limit int, threshold float64, filters *model.SearchFilters) ([]*model.Course, error)
}

// Retriever runs profile queries against the vector index and merges the
// per-query results into one deduplicated candidate list.
type Retriever struct {
	index    Index
	embedder pipeline.EmbedFunc
	config   model.QueryConfig
	log      *slog.Logger
}

// NewRetriever creates a new retriever on top of a vector index and an
// embedder. A nil config falls back to the default configuration.
func NewRetriever(index Index, embedder pipeline.EmbedFunc, config *model.QueryConfig, logger *slog.Logger) *Retriever {
	if config == nil {
		defaults := model.DefaultQueryConfig()
		config = &defaults
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &Retriever{
		index:    index,
		embedder: embedder,
		config:   *config,
		log:      logger,
	}
}

// Retrieve embeds and searches every query concurrently and merges the results
// by course code, keeping per course the highest similarity * query weight and
// the query that produced it. Candidates are ordered by combined score
// descending, ties by course code.
//
// A failing query is logged and absorbed while at least one query succeeds.
// When every query fails the whole retrieval fails with ErrRetrievalUnavailable.
// topK limits each query's results, not the merged list.
func (r *Retriever) Retrieve(ctx context.Context, queries []model.RetrievalQuery, topK int) ([]*model.CandidateMatch, error) {
	if len(queries) == 0 {
		return nil, helper.NewError("validate queries", model.ErrInvalidQuery)
	}
	for i := range queries {
		if !queries[i].Valid() {
			return nil, helper.NewError(fmt.Sprintf("validate query %v", i), model.ErrInvalidQuery)
		}
	}

	if topK <= 0 {
		topK = r.config.TopK
	}

	results, errs := helper.ProcessParallel(
		ctx,
		queries,
		helper.ParallelOptions{MaxWorkers: r.config.MaxConcurrentQueries},
		func(ctx context.Context, index int, query model.RetrievalQuery) ([]*model.Course, error) {
			return r.runQuery(query, topK)
		},
	)

	matches := make(map[string]*model.CandidateMatch)
	var failures []error
	succeeded := 0

	for i := range queries {
		if errs[i] != nil {
			r.log.Warn("Retrieval query failed",
				slog.String("label", queries[i].Label),
				slog.Any("error", errs[i]))
			failures = append(failures, helper.NewError(fmt.Sprintf("query %q", queries[i].Label), errs[i]))
			continue
		}
		succeeded++

		for _, course := range results[i] {
			score := course.Similarity * queries[i].Weight
			existing, exists := matches[course.Code]
			if exists && score <= existing.Score {
				continue
			}
			matches[course.Code] = &model.CandidateMatch{
				Course:     course,
				Similarity: course.Similarity,
				Score:      score,
				Query:      &queries[i],
			}
		}
	}

	if succeeded == 0 {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		return nil, fmt.Errorf("%w: %v", model.ErrRetrievalUnavailable, errors.Join(failures...))
	}

	candidates := make([]*model.CandidateMatch, 0, len(matches))
	for _, match := range matches {
		candidates = append(candidates, match)
	}
	sort.Slice(candidates, func(i, j int) bool {
		if candidates[i].Score != candidates[j].Score {
			return candidates[i].Score > candidates[j].Score
		}
		return candidates[i].Course.Code < candidates[j].Course.Code
	})

	return candidates, nil
}

// runQuery embeds the query text and searches the index. A query without text
// skips the embedding and browses by its filters.
func (r *Retriever) runQuery(query model.RetrievalQuery, topK int) ([]*model.Course, error) {
	var embedding []float32
	if strings.TrimSpace(query.Text) != "" {
		if r.embedder == nil {
			return nil, fmt.Errorf("%w: no embedder configured", model.ErrEmbeddingService)
		}

		var err error
		embedding, err = r.embedder(query.Text)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", model.ErrEmbeddingService, err)
		}
	}

	courses, err := r.index.SelectCoursesBySimilarity(embedding, topK, r.config.SimilarityThreshold, &query.Filters)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrIndexUnavailable, err)
	}

	return courses, nil
}
