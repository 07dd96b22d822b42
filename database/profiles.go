package database

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/siherrmann/courser/helper"
	"github.com/siherrmann/courser/model"
	loadSql "github.com/siherrmann/courser/sql"
)

// ProfilesDBHandlerFunctions defines the interface for Profiles database operations.
type ProfilesDBHandlerFunctions interface {
	InsertProfile(profile *model.StudentProfile) error
	SelectProfile(rid uuid.UUID) (*model.StudentProfile, error)
	SelectAllProfiles(lastCreatedAt *time.Time, limit int) ([]*model.StudentProfile, error)
	UpdateProfile(profile *model.StudentProfile) error
	DeleteProfile(rid uuid.UUID) error
	CountProfiles() (int, error)
}

// ProfilesDBHandler handles profile-related database operations
type ProfilesDBHandler struct {
	db *helper.Database
}

// NewProfilesDBHandler creates a new profiles database handler.
// It initializes the database connection and loads profile-related SQL functions.
// If force is true, it will reload the SQL functions even if they already exist.
func NewProfilesDBHandler(db *helper.Database, force bool) (*ProfilesDBHandler, error) {
	if db == nil {
		return nil, helper.NewError("database connection validation", fmt.Errorf("database connection is nil"))
	}

	profilesDbHandler := &ProfilesDBHandler{
		db: db,
	}

	err := loadSql.LoadProfilesSql(profilesDbHandler.db.Instance, force)
	if err != nil {
		return nil, helper.NewError("load profiles sql", err)
	}

	err = profilesDbHandler.CreateTable()
	if err != nil {
		return nil, helper.NewError("create table", err)
	}

	db.Logger.Info("Initialized ProfilesDBHandler")

	return profilesDbHandler, nil
}

// CreateTable creates the 'profiles' table in the database.
// If the table already exists, it does not create it again.
// It also creates all necessary indexes and triggers.
func (h *ProfilesDBHandler) CreateTable() error {
	_, err := h.db.Instance.Exec(`SELECT init_profiles();`)
	if err != nil {
		return helper.NewError("init profiles table", err)
	}

	h.db.Logger.Info("Checked/created table profiles")

	return nil
}

// InsertProfile inserts a new profile
func (h *ProfilesDBHandler) InsertProfile(profile *model.StudentProfile) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM insert_profile($1, $2, $3, $4, $5, $6, $7, $8)`,
		profile.Name,
		profile.Email,
		pq.Array(profile.Skills),
		pq.Array(profile.Interests),
		profile.Education,
		profile.Experience,
		string(profile.Source),
		profile.Metadata,
	)

	err := row.Scan(
		&profile.ID,
		&profile.RID,
		&profile.Name,
		&profile.Email,
		pq.Array(&profile.Skills),
		pq.Array(&profile.Interests),
		&profile.Education,
		&profile.Experience,
		&profile.Source,
		&profile.Metadata,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// SelectProfile retrieves a profile by RID
func (h *ProfilesDBHandler) SelectProfile(rid uuid.UUID) (*model.StudentProfile, error) {
	profile := &model.StudentProfile{}
	row := h.db.Instance.QueryRow(
		`SELECT * FROM select_profile($1)`,
		rid,
	)

	err := row.Scan(
		&profile.ID,
		&profile.RID,
		&profile.Name,
		&profile.Email,
		pq.Array(&profile.Skills),
		pq.Array(&profile.Interests),
		&profile.Education,
		&profile.Experience,
		&profile.Source,
		&profile.Metadata,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return nil, helper.NewError("scan", err)
	}

	return profile, nil
}

// SelectAllProfiles retrieves all profiles with pagination
func (h *ProfilesDBHandler) SelectAllProfiles(lastCreatedAt *time.Time, limit int) ([]*model.StudentProfile, error) {
	rows, err := h.db.Instance.Query(
		`SELECT * FROM select_all_profiles($1, $2)`,
		lastCreatedAt,
		limit,
	)
	if err != nil {
		return nil, helper.NewError("query", err)
	}
	defer rows.Close()

	var profiles []*model.StudentProfile
	for rows.Next() {
		profile := &model.StudentProfile{}
		err := rows.Scan(
			&profile.ID,
			&profile.RID,
			&profile.Name,
			&profile.Email,
			pq.Array(&profile.Skills),
			pq.Array(&profile.Interests),
			&profile.Education,
			&profile.Experience,
			&profile.Source,
			&profile.Metadata,
			&profile.CreatedAt,
			&profile.UpdatedAt,
		)
		if err != nil {
			return nil, helper.NewError("scan", err)
		}

		profiles = append(profiles, profile)
	}

	err = rows.Err()
	if err != nil {
		return nil, helper.NewError("rows error", err)
	}

	return profiles, nil
}

// UpdateProfile updates a profile by RID
func (h *ProfilesDBHandler) UpdateProfile(profile *model.StudentProfile) error {
	row := h.db.Instance.QueryRow(
		`SELECT * FROM update_profile($1, $2, $3, $4, $5, $6, $7, $8, $9)`,
		profile.RID,
		profile.Name,
		profile.Email,
		pq.Array(profile.Skills),
		pq.Array(profile.Interests),
		profile.Education,
		profile.Experience,
		string(profile.Source),
		profile.Metadata,
	)

	err := row.Scan(
		&profile.ID,
		&profile.RID,
		&profile.Name,
		&profile.Email,
		pq.Array(&profile.Skills),
		pq.Array(&profile.Interests),
		&profile.Education,
		&profile.Experience,
		&profile.Source,
		&profile.Metadata,
		&profile.CreatedAt,
		&profile.UpdatedAt,
	)
	if err != nil {
		return helper.NewError("scan", err)
	}

	return nil
}

// DeleteProfile deletes a profile by RID
func (h *ProfilesDBHandler) DeleteProfile(rid uuid.UUID) error {
	_, err := h.db.Instance.Exec(
		`SELECT delete_profile($1)`,
		rid,
	)
	if err != nil {
		return helper.NewError("exec", err)
	}
	return nil
}

// CountProfiles returns the number of stored profiles
func (h *ProfilesDBHandler) CountProfiles() (int, error) {
	var count int
	err := h.db.Instance.QueryRow(`SELECT count_profiles()`).Scan(&count)
	if err != nil {
		return 0, helper.NewError("scan", err)
	}
	return count, nil
}
