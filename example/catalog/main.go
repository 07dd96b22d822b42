package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/docker/docker/api/types/container"
	"github.com/docker/docker/api/types/mount"
	"github.com/siherrmann/courser"
	"github.com/siherrmann/courser/helper"
	"github.com/siherrmann/courser/model"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

// A small university catalog used when no catalog file is passed on the
// command line. A real deployment would load this from the registrar's
// course feed; the JSON shape matches model.Course.
const bundledCatalog = `[
	{"code": "CS110", "title": "Introduction to Programming", "description": "Variables, control flow, functions and basic data structures in Python.", "department": "Computer Science", "level": "beginner", "credits": 6, "instructor": "Dr. Okafor", "category": "Programming", "tags": ["python", "programming"]},
	{"code": "CS210", "title": "Data Structures and Algorithms", "description": "Lists, trees, graphs, sorting and searching with complexity analysis.", "department": "Computer Science", "level": "intermediate", "credits": 6, "instructor": "Dr. Okafor", "category": "Programming", "tags": ["algorithms", "python"], "prerequisites": ["CS110"]},
	{"code": "CS330", "title": "Database Systems", "description": "Relational modeling, SQL, transactions and query optimization.", "department": "Computer Science", "level": "intermediate", "credits": 6, "instructor": "Prof. Lindqvist", "category": "Systems", "tags": ["sql", "databases"], "prerequisites": ["CS110"]},
	{"code": "CS440", "title": "Distributed Systems", "description": "Replication, consensus, fault tolerance and the design of large scale services.", "department": "Computer Science", "level": "advanced", "credits": 8, "instructor": "Prof. Lindqvist", "category": "Systems", "tags": ["distributed systems", "networking"], "prerequisites": ["CS210", "CS330"]},
	{"code": "DS120", "title": "Foundations of Data Science", "description": "Data wrangling, exploratory analysis and visualization with Python.", "department": "Data Science", "level": "beginner", "credits": 6, "instructor": "Dr. Mehta", "category": "Data Science", "tags": ["data science", "python", "visualization"]},
	{"code": "DS220", "title": "Statistical Inference", "description": "Estimation, hypothesis testing and regression for data analysis.", "department": "Data Science", "level": "intermediate", "credits": 6, "instructor": "Dr. Mehta", "category": "Data Science", "tags": ["statistics", "data science"], "prerequisites": ["DS120", "MA130"]},
	{"code": "DS320", "title": "Machine Learning", "description": "Supervised and unsupervised learning, model evaluation and feature engineering.", "department": "Data Science", "level": "intermediate", "credits": 8, "instructor": "Prof. Anand", "category": "Data Science", "tags": ["machine learning", "python", "data science"], "prerequisites": ["DS220"]},
	{"code": "DS430", "title": "Deep Learning", "description": "Neural networks, backpropagation, convolutional and sequence models.", "department": "Data Science", "level": "advanced", "credits": 8, "instructor": "Prof. Anand", "category": "Data Science", "tags": ["machine learning", "neural networks"], "prerequisites": ["DS320"]},
	{"code": "MA130", "title": "Linear Algebra", "description": "Vectors, matrices, eigenvalues and linear transformations.", "department": "Mathematics", "level": "beginner", "credits": 6, "instructor": "Dr. Petrov", "category": "Mathematics", "tags": ["mathematics", "linear algebra"]},
	{"code": "MA240", "title": "Probability Theory", "description": "Random variables, distributions, expectation and limit theorems.", "department": "Mathematics", "level": "intermediate", "credits": 6, "instructor": "Dr. Petrov", "category": "Mathematics", "tags": ["mathematics", "statistics"], "prerequisites": ["MA130"]},
	{"code": "BU150", "title": "Principles of Management", "description": "Organizational structure, strategy and decision making in firms.", "department": "Business", "level": "beginner", "credits": 4, "instructor": "Prof. Weber", "category": "Business", "tags": ["management", "business"]},
	{"code": "HU160", "title": "History of Science", "description": "Scientific revolutions from antiquity to the modern era.", "department": "Humanities", "level": "beginner", "credits": 4, "instructor": "Dr. Rossi", "category": "Humanities", "tags": ["history", "science"]}
]`

// startPostgresContainer starts a PostgreSQL container for the catalog example.
// It mounts a local data directory so the embedded catalog survives between
// runs and repeated runs skip the embedding work.
func startPostgresContainer() (func(ctx context.Context, opts ...testcontainers.TerminateOption) error, string, error) {
	ctx := context.Background()

	// Create data directory if it doesn't exist
	dataDir := "./data"
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, "", fmt.Errorf("failed to create data directory: %w", err)
	}
	absDataDir, err := filepath.Abs(dataDir)
	if err != nil {
		return nil, "", fmt.Errorf("failed to get absolute path for data directory: %w", err)
	}

	// Check if database already exists (data directory has PG_VERSION file)
	pgVersionFile := filepath.Join(absDataDir, "PG_VERSION")
	_, err = os.Stat(pgVersionFile)
	dbExists := err == nil

	// When database already exists, PostgreSQL doesn't re-initialize,
	// so the ready message only appears once instead of twice
	waitOccurrences := 2
	if dbExists {
		waitOccurrences = 1
		fmt.Printf("Using existing persistent database in: %s\n", absDataDir)
	} else {
		fmt.Printf("Creating new persistent database in: %s\n", absDataDir)
	}

	options := []testcontainers.ContainerCustomizer{
		postgres.WithDatabase("database"),
		postgres.WithUsername("user"),
		postgres.WithPassword("password"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(waitOccurrences),
		),
		testcontainers.WithHostConfigModifier(func(hc *container.HostConfig) {
			hc.Mounts = append(hc.Mounts, mount.Mount{
				Type:   mount.TypeBind,
				Source: absDataDir,
				Target: "/var/lib/postgresql/data",
			})
		}),
	}

	pgContainer, err := postgres.Run(
		ctx,
		"pgvector/pgvector:pg17",
		options...,
	)
	if err != nil {
		return nil, "", fmt.Errorf("error starting postgres container: %w", err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		return nil, "", fmt.Errorf("error getting connection string: %w", err)
	}

	u, err := url.Parse(connStr)
	if err != nil {
		return nil, "", fmt.Errorf("error parsing connection string: %v", err)
	}

	return pgContainer.Terminate, u.Port(), nil
}

// loadCatalog reads courses from the JSON file given on the command line or
// falls back to the bundled catalog.
func loadCatalog() ([]*model.Course, string, error) {
	data := []byte(bundledCatalog)
	source := "bundled catalog"

	if len(os.Args) > 1 {
		path := os.Args[1]
		content, err := os.ReadFile(path)
		if err != nil {
			return nil, "", fmt.Errorf("failed to read catalog file %s: %w", path, err)
		}
		data = content
		source = path
	}

	var courses []*model.Course
	if err := json.Unmarshal(data, &courses); err != nil {
		return nil, "", fmt.Errorf("failed to parse catalog: %w", err)
	}

	return courses, source, nil
}

func main() {
	// Start a PostgreSQL container with persistence
	teardown, dbPort, err := startPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration using the container port
	dbConfig := &helper.DatabaseConfiguration{
		Host:     "localhost",
		Port:     dbPort,
		Database: "database",
		Username: "user",
		Password: "password",
		Schema:   "public",
		SSLMode:  "disable",
	}

	c, err := courser.NewCourser(dbConfig, 384)
	if err != nil {
		log.Fatalf("Failed to create courser: %v", err)
	}
	defer c.Close()

	// Set up the default pipeline (course text composition + embeddings)
	if err := c.UseDefaultPipeline(); err != nil {
		log.Fatalf("Failed to set up pipeline: %v", err)
	}

	courses, source, err := loadCatalog()
	if err != nil {
		log.Fatalf("Failed to load catalog: %v", err)
	}
	fmt.Printf("Loaded %d courses from %s\n", len(courses), source)

	// Check existing courses to avoid re-embedding on repeated runs
	existing, err := existingCourseCodes(c)
	if err != nil {
		log.Printf("Warning: could not check existing courses: %v", err)
		existing = make(map[string]bool)
	}
	if len(existing) > 0 {
		fmt.Printf("Found %d existing courses in database\n", len(existing))
	}

	inserted := 0
	skipped := 0
	for i, course := range courses {
		code := strings.ToUpper(strings.TrimSpace(course.Code))
		if existing[code] {
			fmt.Printf("Skipping %s (%d/%d) - already ingested\n", code, i+1, len(courses))
			skipped++
			continue
		}

		fmt.Printf("Processing %s (%d/%d)...\n", code, i+1, len(courses))
		if err := c.ProcessAndInsertCourse(course); err != nil {
			log.Printf("Warning: failed to process %s: %v, skipping...", code, err)
			continue
		}
		inserted++
	}

	fmt.Printf("\n✓ Catalog status:\n")
	fmt.Printf("  - Ingested: %d courses\n", inserted)
	fmt.Printf("  - Skipped (already in DB): %d courses\n", skipped)
	fmt.Printf("  - Total: %d courses\n", len(courses))

	ctx := context.Background()

	// Semantic search across the catalog
	query := "learning from data with statistical models"
	fmt.Printf("\nSearching: %q\n", query)
	fmt.Println(strings.Repeat("=", 20))

	results, err := c.SearchCourses(ctx, query, 5)
	if err != nil {
		log.Fatalf("Search failed: %v", err)
	}
	for i, course := range results {
		fmt.Printf("\n[%d] %s (%s) | similarity %.4f\n", i+1, course.Title, course.Code, course.Similarity)
		fmt.Printf("    %s | %s | %d credits\n", course.Department, course.Level, course.Credits)
		description := course.Description
		if len(description) > 120 {
			description = description[:120] + "..."
		}
		fmt.Printf("    %s\n", description)
	}

	// Recommendation for a transfer student
	profile := &model.StudentProfile{
		Name:       "Noor Haddad",
		Skills:     []string{"Python", "SQL"},
		Interests:  []string{"machine learning"},
		Experience: "Completed CS110 and an internship writing data pipelines.",
		Education: model.EducationList{
			{Institution: "City College", Degree: "Bachelor of Science", Field: "Information Systems"},
		},
		Source: model.SourceManual,
	}

	fmt.Printf("\nRecommending for %s\n", profile.Name)
	fmt.Println(strings.Repeat("=", 20))

	recommendations, err := c.RecommendForProfile(ctx, profile, 5)
	if err != nil {
		log.Fatalf("Recommendation failed: %v", err)
	}
	for i, recommendation := range recommendations {
		fmt.Printf("\n[%d] %s (%s) | score %.4f\n",
			i+1, recommendation.Course.Title, recommendation.Course.Code, recommendation.Score)
		for _, reason := range recommendation.Rationale {
			fmt.Printf("    - %s\n", reason)
		}
	}

	fmt.Println("\n" + strings.Repeat("=", 20))
	fmt.Println("Catalog example complete!")
}

// existingCourseCodes returns the codes already stored in the catalog for
// quick lookup.
func existingCourseCodes(c *courser.Courser) (map[string]bool, error) {
	courses, err := c.Courses.SelectAllCourses(nil, 1000)
	if err != nil {
		return nil, fmt.Errorf("failed to query courses: %w", err)
	}

	existing := make(map[string]bool)
	for _, course := range courses {
		existing[course.Code] = true
	}

	return existing, nil
}
