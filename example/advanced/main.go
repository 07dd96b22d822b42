package main

import (
	"context"
	"fmt"
	"log"

	"github.com/siherrmann/courser"
	"github.com/siherrmann/courser/helper"
	"github.com/siherrmann/courser/model"
)

func main() {
	// Start a test PostgreSQL container
	teardown, dbPort, err := helper.MustStartPostgresContainer()
	if err != nil {
		log.Fatalf("Failed to start PostgreSQL container: %v", err)
	}
	defer teardown(context.Background())

	// Create database configuration
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

	fmt.Println("=== Ingesting Catalog ===")
	inserted, err := c.SeedSampleCatalog()
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	fmt.Printf("Seeded %d sample courses\n", inserted)

	// Add a course beyond the sample catalog
	extra := &model.Course{
		Code:        "NLP310",
		Title:       "Natural Language Processing",
		Description: "Text processing, embeddings and transformer models for language understanding.",
		Department:  "Computer Science",
		Level:       model.LevelAdvanced,
		Credits:     6,
		Instructor:  "Dr. Vogel",
		Tags:        []string{"nlp", "machine learning", "python"},
		Prerequisites: []string{
			"DS250",
		},
	}
	if err := c.ProcessAndInsertCourse(extra); err != nil {
		log.Fatalf("Failed to insert course: %v", err)
	}
	fmt.Printf("Inserted extra course %s\n", extra.Code)

	ctx := context.Background()

	profile := &model.StudentProfile{
		Name:       "Sam Carter",
		Email:      "sam.carter@example.com",
		Skills:     []string{"Python", "SQL"},
		Interests:  []string{"machine learning", "data science"},
		Experience: "Two years as a data analyst building reporting pipelines.",
		Education: model.EducationList{
			{Institution: "State University", Degree: "Bachelor of Science", Field: "Computer Science"},
		},
		Source: model.SourceManual,
	}

	// 1. Recommendation with default configuration
	fmt.Println("\n=== 1. Default Recommendation ===")
	recommendations, err := c.RecommendForProfile(ctx, profile, 5)
	if err != nil {
		log.Fatalf("Recommendation failed: %v", err)
	}
	printRecommendations("Default", recommendations)

	// 2. Recommendation with custom weights
	fmt.Println("\n=== 2. Custom Weights ===")
	fmt.Println("Boosting skill overlap and disabling the diversity cap...")
	c.Config.SkillBonus = 0.3
	c.Config.InterestBonus = 0.1
	c.Config.MaxPerTag = 0
	weighted, err := c.RecommendForProfile(ctx, profile, 5)
	if err != nil {
		log.Fatalf("Weighted recommendation failed: %v", err)
	}
	printRecommendations("Custom Weights", weighted)
	c.Config = model.DefaultQueryConfig()

	// 3. Profile analysis
	fmt.Println("\n=== 3. Profile Analysis ===")
	analysis, err := c.AnalyzeProfile(ctx, profile, 5)
	if err != nil {
		log.Fatalf("Profile analysis failed: %v", err)
	}
	fmt.Printf("Inferred level: %s\n", analysis.Level)
	fmt.Printf("Search query: %q\n", analysis.SearchQuery)
	fmt.Printf("Skill gaps: %v\n", analysis.SkillGaps)

	// 4. Stored profiles
	fmt.Println("\n=== 4. Stored Profiles ===")
	if err := c.Profiles.InsertProfile(profile); err != nil {
		log.Fatalf("Failed to store profile: %v", err)
	}
	fmt.Printf("Stored profile %s (RID: %s)\n", profile.Name, profile.RID)

	stored, err := c.RecommendForStudent(ctx, profile.RID, 3)
	if err != nil {
		log.Fatalf("Stored profile recommendation failed: %v", err)
	}
	printRecommendations("Stored Profile", stored)

	// 5. Semantic course search
	fmt.Println("\n=== 5. Semantic Search ===")
	query := "introduction to neural networks"
	fmt.Printf("Searching: %q\n", query)
	courses, err := c.SearchCourses(ctx, query, 3)
	if err != nil {
		log.Fatalf("Semantic search failed: %v", err)
	}
	for i, course := range courses {
		fmt.Printf("  [%d] %s (%s) similarity %.4f\n", i+1, course.Title, course.Code, course.Similarity)
	}

	// 6. Keyword search
	fmt.Println("\n=== 6. Keyword Search ===")
	fmt.Println("Searching the catalog for 'databases'...")
	matches, err := c.SearchCatalog("databases", 5)
	if err != nil {
		log.Fatalf("Keyword search failed: %v", err)
	}
	for i, course := range matches {
		fmt.Printf("  [%d] %s (%s)\n", i+1, course.Title, course.Code)
	}

	// 7. Catalog statistics
	fmt.Println("\n=== 7. Catalog Statistics ===")
	stats, err := c.Stats()
	if err != nil {
		log.Fatalf("Stats failed: %v", err)
	}
	fmt.Printf("Courses: %d, Profiles: %d\n", stats.TotalCourses, stats.TotalProfiles)

	// 8. Demonstrate index type switching
	fmt.Println("\n=== 8. Changing Index Type ===")
	fmt.Println("Switching to IVFFlat index...")
	err = c.ChangeIndexType(ctx, "ivfflat", map[string]interface{}{
		"lists": 100,
	})
	if err != nil {
		log.Printf("Warning: Index change failed (this is okay for small datasets): %v", err)
	} else {
		fmt.Println("Successfully switched to IVFFlat index")
	}

	// Switch back to HNSW
	fmt.Println("Switching back to HNSW index...")
	err = c.ChangeIndexType(ctx, "hnsw", map[string]interface{}{
		"m":               16,
		"ef_construction": 64,
	})
	if err != nil {
		log.Printf("Warning: Index change failed: %v", err)
	} else {
		fmt.Println("Successfully switched to HNSW index")
	}

	fmt.Println("\n=== Advanced Example Completed Successfully! ===")
	fmt.Println("\nKey features demonstrated:")
	fmt.Println("✓ Profile-based recommendation with rationale")
	fmt.Println("✓ Custom scoring weights and diversity settings")
	fmt.Println("✓ Profile analysis (level, search query, skill gaps)")
	fmt.Println("✓ Stored profiles and recommendation by RID")
	fmt.Println("✓ Semantic and keyword catalog search")
	fmt.Println("✓ Catalog statistics")
	fmt.Println("✓ Index type switching (HNSW ↔ IVFFlat)")
}

func printRecommendations(title string, recommendations []*model.Recommendation) {
	fmt.Printf("\n%s - Found %d recommendations:\n", title, len(recommendations))
	for i, recommendation := range recommendations {
		if i >= 3 {
			break // Show only first 3
		}
		fmt.Printf("\n  Recommendation %d:\n", i+1)
		fmt.Printf("    Course: %s (%s, %s)\n",
			recommendation.Course.Title, recommendation.Course.Code, recommendation.Course.Level)
		fmt.Printf("    Score: %.4f\n", recommendation.Score)
		for factor, contribution := range recommendation.Components {
			fmt.Printf("      %s: %+.4f\n", factor, contribution)
		}
		for _, reason := range recommendation.Rationale {
			fmt.Printf("    - %s\n", reason)
		}
	}
}
