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

	// Seed a small catalog so there is something to recommend
	fmt.Println("Seeding sample catalog...")
	inserted, err := c.SeedSampleCatalog()
	if err != nil {
		log.Fatalf("Failed to seed catalog: %v", err)
	}
	fmt.Printf("Inserted %d courses\n", inserted)

	// Describe a student
	profile := &model.StudentProfile{
		Name:      "Jordan Lee",
		Skills:    []string{"Python", "Statistics"},
		Interests: []string{"machine learning", "data science"},
		Source:    model.SourceManual,
	}

	fmt.Printf("\nRecommending for %s (skills: %v, interests: %v)\n",
		profile.Name, profile.Skills, profile.Interests)

	recommendations, err := c.RecommendForProfile(context.Background(), profile, 5)
	if err != nil {
		log.Fatalf("Failed to recommend: %v", err)
	}

	// Display results
	fmt.Printf("\nFound %d recommendations:\n", len(recommendations))
	for i, recommendation := range recommendations {
		fmt.Printf("\n--- Recommendation %d ---\n", i+1)
		fmt.Printf("Course: %s (%s)\n", recommendation.Course.Title, recommendation.Course.Code)
		fmt.Printf("Score: %.4f\n", recommendation.Score)
		for _, reason := range recommendation.Rationale {
			fmt.Printf("  - %s\n", reason)
		}
	}

	fmt.Println("\nBasic example completed successfully!")
}
