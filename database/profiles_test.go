package database

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/siherrmann/courser/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestProfilesNewProfilesDBHandler(t *testing.T) {
	database := initDB(t)

	t.Run("Valid call NewProfilesDBHandler", func(t *testing.T) {
		profilesDbHandler, err := NewProfilesDBHandler(database, true)
		assert.NoError(t, err, "Expected NewProfilesDBHandler to not return an error")
		require.NotNil(t, profilesDbHandler, "Expected NewProfilesDBHandler to return a non-nil instance")
		require.NotNil(t, profilesDbHandler.db, "Expected NewProfilesDBHandler to have a non-nil database instance")
		require.NotNil(t, profilesDbHandler.db.Instance, "Expected NewProfilesDBHandler to have a non-nil database connection instance")
	})

	t.Run("Invalid call NewProfilesDBHandler with nil database", func(t *testing.T) {
		_, err := NewProfilesDBHandler(nil, false)
		assert.Error(t, err, "Expected error when creating ProfilesDBHandler with nil database")
		assert.Contains(t, err.Error(), "database connection is nil", "Expected specific error message for nil database connection")
	})
}

func TestProfilesInsert(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, true)
	require.NoError(t, err, "Expected NewProfilesDBHandler to not return an error")

	t.Run("Insert profile", func(t *testing.T) {
		profile := &model.StudentProfile{
			Name:      "Jordan Reyes",
			Email:     "jordan@example.com",
			Skills:    []string{"python", "sql"},
			Interests: []string{"data science", "machine learning"},
			Education: model.EducationList{
				{Institution: "State University", Degree: "BSc", Field: "Computer Science"},
			},
			Experience: "Two years as a data analyst",
			Source:     model.SourceResume,
			Metadata:   map[string]interface{}{"resume_pages": 2},
		}

		err := profilesDbHandler.InsertProfile(profile)
		assert.NoError(t, err, "Expected Insert to not return an error")
		assert.NotEmpty(t, profile.RID, "Expected inserted profile to have a RID")
		assert.NotZero(t, profile.ID, "Expected inserted profile to have an ID")
		assert.WithinDuration(t, profile.CreatedAt, time.Now(), 2*time.Second, "Expected CreatedAt to be set")
		assert.Equal(t, []string{"python", "sql"}, profile.Skills, "Expected skills to survive the round trip")
		require.Len(t, profile.Education, 1, "Expected education to survive the round trip")
		assert.Equal(t, "State University", profile.Education[0].Institution)

		// Cleanup
		profilesDbHandler.DeleteProfile(profile.RID)
	})

	t.Run("Insert minimal profile", func(t *testing.T) {
		profile := &model.StudentProfile{
			Name: "Minimal",
		}

		err := profilesDbHandler.InsertProfile(profile)
		assert.NoError(t, err, "Expected Insert of minimal profile to not return an error")
		assert.Equal(t, model.SourceManual, profile.Source, "Expected source to default to manual")
		assert.NotNil(t, profile.Education, "Expected education to come back as empty list")

		// Cleanup
		profilesDbHandler.DeleteProfile(profile.RID)
	})
}

func TestProfilesGet(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, true)
	require.NoError(t, err)

	// Create a profile
	profile := &model.StudentProfile{
		Name:      "Alex Kim",
		Email:     "alex@example.com",
		Skills:    []string{"go", "kubernetes"},
		Interests: []string{"distributed systems"},
		Source:    model.SourceWeb,
		Metadata:  map[string]interface{}{},
	}
	err = profilesDbHandler.InsertProfile(profile)
	require.NoError(t, err)

	// Test Get
	retrievedProfile, err := profilesDbHandler.SelectProfile(profile.RID)
	assert.NoError(t, err, "Expected Get to not return an error")
	assert.NotNil(t, retrievedProfile, "Expected Get to return a non-nil profile")
	assert.Equal(t, profile.RID, retrievedProfile.RID, "Expected profile RIDs to match")
	assert.Equal(t, profile.Name, retrievedProfile.Name, "Expected names to match")
	assert.Equal(t, profile.Skills, retrievedProfile.Skills, "Expected skills to match")
	assert.Equal(t, model.SourceWeb, retrievedProfile.Source, "Expected sources to match")

	// Test Get for a profile that does not exist
	_, err = profilesDbHandler.SelectProfile(uuid.New())
	assert.Error(t, err, "Expected Get to return an error for unknown RID")

	// Cleanup
	profilesDbHandler.DeleteProfile(profile.RID)
}

func TestProfilesGetAll(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, true)
	require.NoError(t, err)

	// Create multiple profiles
	profileCount := 5
	profiles := make([]*model.StudentProfile, profileCount)
	for i := 0; i < profileCount; i++ {
		profiles[i] = &model.StudentProfile{
			Name:   "Student " + string(rune('A'+i)),
			Skills: []string{"skill"},
		}
		err = profilesDbHandler.InsertProfile(profiles[i])
		require.NoError(t, err)
	}

	// Test SelectAllProfiles
	retrievedProfiles, err := profilesDbHandler.SelectAllProfiles(nil, 10)
	assert.NoError(t, err, "Expected SelectAllProfiles to not return an error")
	assert.GreaterOrEqual(t, len(retrievedProfiles), profileCount, "Expected to retrieve at least the inserted profiles")

	// Test pagination
	pageLength := 3
	paginatedProfiles, err := profilesDbHandler.SelectAllProfiles(nil, pageLength)
	assert.NoError(t, err, "Expected SelectAllProfiles to not return an error")
	assert.LessOrEqual(t, len(paginatedProfiles), pageLength, "Expected at most pageLength profiles")

	// Cleanup
	for _, profile := range profiles {
		profilesDbHandler.DeleteProfile(profile.RID)
	}
}

func TestProfilesUpdate(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, true)
	require.NoError(t, err)

	// Create a profile
	profile := &model.StudentProfile{
		Name:     "Original Name",
		Skills:   []string{"python"},
		Source:   model.SourceManual,
		Metadata: map[string]interface{}{"version": 1},
	}
	err = profilesDbHandler.InsertProfile(profile)
	require.NoError(t, err)

	// Update the profile
	profile.Name = "Updated Name"
	profile.Skills = []string{"python", "rust"}
	profile.Education = model.EducationList{
		{Institution: "Tech Institute", Degree: "MSc", Field: "Machine Learning"},
	}
	profile.Metadata = map[string]interface{}{"version": 2}

	err = profilesDbHandler.UpdateProfile(profile)
	assert.NoError(t, err, "Expected UpdateProfile to not return an error")

	// Verify update
	retrievedProfile, err := profilesDbHandler.SelectProfile(profile.RID)
	require.NoError(t, err)
	assert.Equal(t, "Updated Name", retrievedProfile.Name, "Expected name to be updated")
	assert.Equal(t, []string{"python", "rust"}, retrievedProfile.Skills, "Expected skills to be updated")
	require.Len(t, retrievedProfile.Education, 1, "Expected education to be updated")
	assert.Equal(t, "MSc", retrievedProfile.Education[0].Degree)
	assert.Equal(t, float64(2), retrievedProfile.Metadata["version"], "Expected metadata to be updated")

	// Cleanup
	profilesDbHandler.DeleteProfile(profile.RID)
}

func TestProfilesDelete(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, true)
	require.NoError(t, err)

	// Create a profile
	profile := &model.StudentProfile{
		Name: "To Be Deleted",
	}
	err = profilesDbHandler.InsertProfile(profile)
	require.NoError(t, err)

	// Delete the profile
	err = profilesDbHandler.DeleteProfile(profile.RID)
	assert.NoError(t, err, "Expected Delete to not return an error")

	// Verify deletion
	_, err = profilesDbHandler.SelectProfile(profile.RID)
	assert.Error(t, err, "Expected Get to return an error for deleted profile")
}

func TestProfilesCount(t *testing.T) {
	database := initDB(t)

	profilesDbHandler, err := NewProfilesDBHandler(database, true)
	require.NoError(t, err)

	countBefore, err := profilesDbHandler.CountProfiles()
	require.NoError(t, err, "Expected CountProfiles to not return an error")

	profile := &model.StudentProfile{
		Name: "Counted Student",
	}
	err = profilesDbHandler.InsertProfile(profile)
	require.NoError(t, err)

	countAfter, err := profilesDbHandler.CountProfiles()
	require.NoError(t, err)
	assert.Equal(t, countBefore+1, countAfter, "Expected count to grow by one")

	// Cleanup
	profilesDbHandler.DeleteProfile(profile.RID)
}
