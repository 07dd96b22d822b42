package courser

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/courser/core/pipeline"
	"github.com/siherrmann/courser/core/query"
	"github.com/siherrmann/courser/core/rank"
	"github.com/siherrmann/courser/core/retrieval"
	"github.com/siherrmann/courser/database"
	"github.com/siherrmann/courser/helper"
	"github.com/siherrmann/courser/model"
	loadSql "github.com/siherrmann/courser/sql"
)

// maxSkillGaps caps the skill gaps reported by a profile analysis.
const maxSkillGaps = 5

// Courser provides a unified interface to the course catalog, the profile
// store and the recommendation core.
type Courser struct {
	DB       *helper.Database
	Courses  *database.CoursesDBHandler
	Profiles *database.ProfilesDBHandler
	Pipeline *pipeline.Pipeline // Optional embedding pipeline
	// Config holds the retrieval and ranking knobs, tune before recommending
	Config model.QueryConfig
	// Logging
	log *slog.Logger
}

// NewCourser creates a new Courser instance with all handlers initialized
func NewCourser(config *helper.DatabaseConfiguration, embeddingDim int) (*Courser, error) {
	// Logger
	opts := helper.PrettyHandlerOptions{
		SlogOpts: slog.HandlerOptions{
			Level: slog.LevelInfo,
		},
	}
	logger := slog.New(helper.NewPrettyHandler(os.Stdout, opts))

	// Initialize database
	db := helper.NewDatabase("courser", config, logger)
	err := loadSql.Init(db.Instance)
	if err != nil {
		return nil, helper.NewError("initialize database extensions", err)
	}

	// force=false to not reload if functions already exist
	courses, err := database.NewCoursesDBHandler(db, embeddingDim, false)
	if err != nil {
		return nil, helper.NewError("create courses handler", err)
	}

	profiles, err := database.NewProfilesDBHandler(db, false)
	if err != nil {
		return nil, helper.NewError("create profiles handler", err)
	}

	return &Courser{
		DB:       db,
		Courses:  courses,
		Profiles: profiles,
		Config:   model.DefaultQueryConfig(),
		log:      logger,
	}, nil
}

// Close closes the database connection
func (c *Courser) Close() error {
	if c.DB != nil && c.DB.Instance != nil {
		return c.DB.Instance.Close()
	}
	return nil
}

// SetPipeline sets the embedding pipeline for course processing
func (c *Courser) SetPipeline(pipeline *pipeline.Pipeline) {
	c.Pipeline = pipeline
}

// UseDefaultPipeline sets up the default composing and embedding pipeline.
// This uses DefaultComposer for the embedding text and DefaultEmbedder with
// the all-MiniLM-L6-v2 model (384 dimensions).
func (c *Courser) UseDefaultPipeline() error {
	embedder, err := pipeline.DefaultEmbedder()
	if err != nil {
		return helper.NewError("create default embedder", err)
	}

	c.Pipeline = pipeline.NewPipeline(pipeline.DefaultComposer(), embedder)
	return nil
}

// ProcessAndInsertCourse processes a course by:
// 1. Normalizing code, tags, prerequisites and level
// 2. Composing and embedding the course content using the pipeline
// 3. Inserting the course (an existing code is updated in place)
func (c *Courser) ProcessAndInsertCourse(course *model.Course) error {
	if c.Pipeline == nil {
		return helper.NewError("process course", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}
	if course == nil {
		return helper.NewError("process course", fmt.Errorf("course is nil"))
	}

	course.Normalize()

	if err := c.Pipeline.Process(course); err != nil {
		return helper.NewError("process course", err)
	}

	if err := c.Courses.InsertCourse(course); err != nil {
		return helper.NewError("insert course", err)
	}

	c.log.Info("Inserted course", slog.String("code", course.Code), slog.String("title", course.Title))
	return nil
}

// SeedSampleCatalog inserts the built-in sample catalog when the course table
// is empty. Returns the number of courses inserted, 0 when the catalog
// already has rows.
func (c *Courser) SeedSampleCatalog() (int, error) {
	count, err := c.Courses.CountCourses()
	if err != nil {
		return 0, helper.NewError("count courses", err)
	}
	if count > 0 {
		return 0, nil
	}

	samples := sampleCatalog()
	for i, course := range samples {
		if err := c.ProcessAndInsertCourse(course); err != nil {
			return i, helper.NewError(fmt.Sprintf("seed course %v", course.Code), err)
		}
	}

	c.log.Info("Seeded sample catalog", slog.Int("num_courses", len(samples)))
	return len(samples), nil
}

// RecommendForProfile runs the full recommendation flow for a profile:
// queries are built from the profile, retrieved concurrently against the
// vector index and re-ranked against the profile. An empty profile returns
// ErrEmptyProfile. When every retrieval query fails the call fails with
// ErrRetrievalUnavailable instead of returning a silently empty list.
func (c *Courser) RecommendForProfile(ctx context.Context, profile *model.StudentProfile, limit int) ([]*model.Recommendation, error) {
	if c.Pipeline == nil || c.Pipeline.Embedder == nil {
		return nil, helper.NewError("recommend", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}

	queries, err := query.Build(profile, &c.Config)
	if err != nil {
		return nil, helper.NewError("build queries", err)
	}

	retriever := retrieval.NewRetriever(c.Courses, c.Pipeline.Embedder, &c.Config, c.log)
	candidates, err := retriever.Retrieve(ctx, queries, c.Config.TopK)
	if err != nil {
		return nil, helper.NewError("retrieve candidates", err)
	}

	c.log.Info("Retrieved candidates",
		slog.Int("num_queries", len(queries)),
		slog.Int("num_candidates", len(candidates)))

	recommender := rank.NewRecommender(&c.Config)
	recommendations, err := recommender.Recommend(profile, candidates, limit)
	if err != nil {
		return nil, helper.NewError("rank candidates", err)
	}

	return recommendations, nil
}

// RecommendForStudent loads a stored profile by RID and recommends for it.
func (c *Courser) RecommendForStudent(ctx context.Context, rid uuid.UUID, limit int) ([]*model.Recommendation, error) {
	profile, err := c.Profiles.SelectProfile(rid)
	if err != nil {
		return nil, helper.NewError("load profile", err)
	}

	return c.RecommendForProfile(ctx, profile, limit)
}

// AnalyzeProfile explains how a profile is interpreted: the inferred course
// level, the primary search query, recommendations and the skill gaps the
// recommended courses would fill.
func (c *Courser) AnalyzeProfile(ctx context.Context, profile *model.StudentProfile, limit int) (*model.ProfileAnalysis, error) {
	recommendations, err := c.RecommendForProfile(ctx, profile, limit)
	if err != nil {
		return nil, err
	}

	return &model.ProfileAnalysis{
		Level:           profile.EducationLevel(),
		SearchQuery:     query.PrimaryText(profile),
		SkillGaps:       rank.SkillGaps(profile, recommendations, maxSkillGaps),
		Recommendations: recommendations,
	}, nil
}

// SearchCourses performs a semantic similarity search over the catalog.
func (c *Courser) SearchCourses(ctx context.Context, searchText string, limit int) ([]*model.Course, error) {
	if c.Pipeline == nil || c.Pipeline.Embedder == nil {
		return nil, helper.NewError("search courses", fmt.Errorf("pipeline not set, use SetPipeline() first"))
	}

	embedding, err := c.Pipeline.Embedder(searchText)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrEmbeddingService, err)
	}

	courses, err := c.Courses.SelectCoursesBySimilarity(embedding, limit, c.Config.SimilarityThreshold, nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", model.ErrIndexUnavailable, err)
	}

	return courses, nil
}

// SearchCatalog performs a keyword search over titles, descriptions, codes,
// departments and tags.
func (c *Courser) SearchCatalog(searchText string, limit int) ([]*model.Course, error) {
	return c.Courses.SelectCoursesBySearch(searchText, limit)
}

// Stats reports catalog and profile totals as of now.
func (c *Courser) Stats() (*model.CatalogStats, error) {
	courses, err := c.Courses.CountCourses()
	if err != nil {
		return nil, helper.NewError("count courses", err)
	}

	profiles, err := c.Profiles.CountProfiles()
	if err != nil {
		return nil, helper.NewError("count profiles", err)
	}

	return &model.CatalogStats{
		TotalCourses:  courses,
		TotalProfiles: profiles,
		LastUpdated:   time.Now(),
	}, nil
}

// ChangeIndexType changes the vector index type between HNSW and IVFFlat
func (c *Courser) ChangeIndexType(ctx context.Context, indexType string, params map[string]interface{}) error {
	return c.Courses.ChangeIndexType(ctx, indexType, params)
}
