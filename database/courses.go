package database

import (
	"context"
	"fmt"
	"log"
	"time"

	"github.com/lib/pq"
	"github.com/pgvector/pgvector-go"
	"github.com/siherrmann/courser/helper"
	"github.com/siherrmann/courser/model"
	loadSql "github.com/siherrmann/courser/sql"
)

// CoursesDBHandlerFunctions defines the interface for Courses database operations.
type CoursesDBHandlerFunctions interface {
	InsertCourse(course *model.Course) error
	SelectCourse(code string) (*model.Course, error)
	SelectAllCourses(lastCreatedAt *time.Time, limit int) ([]*model.Course, error)
	SelectCoursesBySearch(searchTerm string, limit int) ([]*model.Course, error)
	SelectCoursesBySimilarity(embedding []float32, limit int, threshold float64, filters *model.SearchFilters) ([]*model.Course, error)
	UpdateCourse(course *model.Course) error
	UpdateCourseEmbedding(course *model.Course) error
	DeleteCourse(code string) error
	CountCourses() (int, error)
}

// CoursesDBHandler handles course-related database operations
type CoursesDBHandler struct {
	db *helper.Database
}

// NewCoursesDBHandler creates a new courses database handler.
// It initializes the database connection and loads course-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewCoursesDBHandler(db *helper.Database, embeddingDim int, force bool) (*CoursesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	coursesDbHandler := &CoursesDBHandler{
		db: db,
	}

	err := loadSql.LoadCoursesSql(coursesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load courses sql", err)
	}

	err = coursesDbHandler.CreateTable(embeddingDim)
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized CoursesDBHandler")

	return coursesDbHandler, nil
}

// CreateTable creates the 'courses' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes and triggers.
func (h *CoursesDBHandler) CreateTable(embeddingDim int) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	// Use the SQL init() function to create all tables, triggers, and indexes
	_, err := h.db.Instance.ExecContext(ctx, `SELECT init_courses($1);`, embeddingDim)
	if err != nil {
		log.Panicf("error initializing courses table: %#v", err)
	}

	h.db.Logger.Info("Checked/created table courses")

	return nil
}

// InsertCourse inserts a new course or updates an existing one with the same code
func (h *CoursesDBHandler) InsertCourse(course *model.Course) error {
	var embeddingParam interface{}
	if len(course.Embedding) > 0 {
		embeddingParam = pq.Array(course.Embedding)
	}

	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_course($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		course.Code,
		course.Title,
		course.Description,
		course.Department,
		string(course.Level),
		course.Credits,
		course.Instructor,
		course.Category,
		pq.Array(course.Tags),
		pq.Array(course.Prerequisites),
		embeddingParam,
		course.Metadata,
	)

	err := row.Scan(
		&course.ID,
		&course.RID,
		&course.Code,
		&course.Title,
		&course.Description,
		&course.Department,
		&course.Level,
		&course.Credits,
		&course.Instructor,
		&course.Category,
		pq.Array(&course.Tags),
		pq.Array(&course.Prerequisites),
		pq.Array(&course.Embedding),
		&course.Metadata,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectCourse retrieves a course by code
func (h *CoursesDBHandler) SelectCourse(code string) (*model.Course, error) {
	course := &model.Course{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_course($1)`,
		code,
	)

	err := row.Scan(
		&course.ID,
		&course.RID,
		&course.Code,
		&course.Title,
		&course.Description,
		&course.Department,
		&course.Level,
		&course.Credits,
		&course.Instructor,
		&course.Category,
		pq.Array(&course.Tags),
		pq.Array(&course.Prerequisites),
		pq.Array(&course.Embedding),
		&course.Metadata,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return course, nil
}

// SelectAllCourses retrieves all courses with pagination
func (h *CoursesDBHandler) SelectAllCourses(lastCreatedAt *time.Time, limit int) ([]*model.Course, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_courses($1, $2)`,
		lastCreatedAt,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course := &model.Course{}
		err := rows.Scan(
			&course.ID,
			&course.RID,
			&course.Code,
			&course.Title,
			&course.Description,
			&course.Department,
			&course.Level,
			&course.Credits,
			&course.Instructor,
			&course.Category,
			pq.Array(&course.Tags),
			pq.Array(&course.Prerequisites),
			pq.Array(&course.Embedding),
			&course.Metadata,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		courses = append(courses, course)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return courses, nil
}

// SelectCoursesBySearch searches courses by code, title, description or department
func (h *CoursesDBHandler) SelectCoursesBySearch(searchTerm string, limit int) ([]*model.Course, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM search_courses($1, $2)`,
		searchTerm,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var courses []*model.Course
	for rows.Next() {
		course := &model.Course{}
		err := rows.Scan(
			&course.ID,
			&course.RID,
			&course.Code,
			&course.Title,
			&course.Description,
			&course.Department,
			&course.Level,
			&course.Credits,
			&course.Instructor,
			&course.Category,
			pq.Array(&course.Tags),
			pq.Array(&course.Prerequisites),
			pq.Array(&course.Embedding),
			&course.Metadata,
			&course.CreatedAt,
			&course.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		courses = append(courses, course)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return courses, nil
}

// SelectCoursesBySimilarity performs vector similarity search.
// If filters is nil or has no set fields, searches across the whole catalog.
// An empty embedding skips the similarity ranking and browses by filters only,
// ordered by course code. Courses without an embedding are never returned.
func (h *CoursesDBHandler) SelectCoursesBySimilarity(embedding []float32, limit int, threshold float64, filters *model.SearchFilters) ([]*model.Course, error) {
	var embeddingParam interface{}
	if len(embedding) > 0 {
		embeddingParam = pgvector.NewVector(embedding)
	}

	// Convert filters to PostgreSQL array format, nil arrays do not restrict
	var levelsParam, departmentsParam, categoriesParam, tagsParam interface{}
	if filters != nil {
		if len(filters.Levels) > 0 {
			levels := make([]string, 0, len(filters.Levels))
			for _, level := range filters.Levels {
				levels = append(levels, string(level))
			}
			levelsParam = pq.Array(levels)
		}
		if len(filters.Departments) > 0 {
			departmentsParam = pq.Array(filters.Departments)
		}
		if len(filters.Categories) > 0 {
			categoriesParam = pq.Array(filters.Categories)
		}
		if len(filters.Tags) > 0 {
			tagsParam = pq.Array(filters.Tags)
		}
	}

	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_courses_by_similarity($1, $2, $3, $4, $5, $6, $7)`,
		embeddingParam,
		limit,
		threshold,
		levelsParam,
		departmentsParam,
		categoriesParam,
		tagsParam,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var results []*model.Course
	for rows.Next() {
		course := &model.Course{}
		err := rows.Scan(
			&course.ID,
			&course.RID,
			&course.Code,
			&course.Title,
			&course.Description,
			&course.Department,
			&course.Level,
			&course.Credits,
			&course.Instructor,
			&course.Category,
			pq.Array(&course.Tags),
			pq.Array(&course.Prerequisites),
			pq.Array(&course.Embedding),
			&course.Metadata,
			&course.CreatedAt,
			&course.UpdatedAt,
			&course.Similarity,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		results = append(results, course)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return results, nil
}

// UpdateCourse updates a course by code, leaving the embedding untouched
func (h *CoursesDBHandler) UpdateCourse(course *model.Course) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM update_course($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`,
		course.Code,
		course.Title,
		course.Description,
		course.Department,
		string(course.Level),
		course.Credits,
		course.Instructor,
		course.Category,
		pq.Array(course.Tags),
		pq.Array(course.Prerequisites),
		course.Metadata,
	)

	err := row.Scan(
		&course.ID,
		&course.RID,
		&course.Code,
		&course.Title,
		&course.Description,
		&course.Department,
		&course.Level,
		&course.Credits,
		&course.Instructor,
		&course.Category,
		pq.Array(&course.Tags),
		pq.Array(&course.Prerequisites),
		pq.Array(&course.Embedding),
		&course.Metadata,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// UpdateCourseEmbedding updates the embedding of a course
func (h *CoursesDBHandler) UpdateCourseEmbedding(course *model.Course) error {
	embeddingVector := pgvector.NewVector(course.Embedding)
	row := h.db.Instance.QueryRow(
		`SELECT * FROM update_course_embedding($1, $2)`,
		course.Code,
		embeddingVector,
	)

	err := row.Scan(
		&course.ID,
		&course.RID,
		&course.Code,
		&course.Title,
		&course.Description,
		&course.Department,
		&course.Level,
		&course.Credits,
		&course.Instructor,
		&course.Category,
		pq.Array(&course.Tags),
		pq.Array(&course.Prerequisites),
		pq.Array(&course.Embedding),
		&course.Metadata,
		&course.CreatedAt,
		&course.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// DeleteCourse deletes a course by code
func (h *CoursesDBHandler) DeleteCourse(code string) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_course($1)`,
		code,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// CountCourses returns the number of courses in the catalog
func (h *CoursesDBHandler) CountCourses() (int, error) {
	var count int
	err := h.db.Instance.QueryRow(`SELECT count_courses()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}
