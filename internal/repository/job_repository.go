package repository

import (
	"errors"

	"github.com/brandon-wee/jobdash/internal/apperr"
	"github.com/brandon-wee/jobdash/internal/model"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

type JobRepository struct {
	db *gorm.DB
}

func NewJobRepository(db *gorm.DB) *JobRepository {
	return &JobRepository{db}
}

// CompanyLocation is one map marker: a company with coordinates plus how many
// of the user's listings sit there.
type CompanyLocation struct {
	CompanyID uuid.UUID
	Name      string
	Latitude  *float64
	Longitude *float64
	Count     int64
}

// ListByUser returns every listing associated with userKey, company preloaded.
// Rows come back in store-native order (insertion order, not guaranteed
// stable). A user with no listings gets an empty slice, not an error.
func (r *JobRepository) ListByUser(userKey string) ([]model.JobListing, error) {
	listings := []model.JobListing{}
	err := r.db.
		Select("job_listings.*").
		Joins("JOIN user_jobs ON user_jobs.job_listing_id = job_listings.id").
		Where("user_jobs.user_key = ?", userKey).
		Preload("Company").
		Find(&listings).Error
	if err != nil {
		return nil, apperr.DataAccess("list jobs", err)
	}
	return listings, nil
}

// LocationsByUser aggregates the user's listings per company. Companies with
// coordinates come back as located entries (one per company, with the listing
// count); companies without coordinates are returned separately so the caller
// can report them rather than lose them.
func (r *JobRepository) LocationsByUser(userKey string) (located []CompanyLocation, missing []CompanyLocation, err error) {
	rows := []CompanyLocation{}
	err = r.db.Model(&model.Company{}).
		Select("companies.id AS company_id, companies.name, companies.latitude, companies.longitude, COUNT(job_listings.id) AS count").
		Joins("JOIN job_listings ON job_listings.company_id = companies.id").
		Joins("JOIN user_jobs ON user_jobs.job_listing_id = job_listings.id").
		Where("user_jobs.user_key = ?", userKey).
		Group("companies.id, companies.name, companies.latitude, companies.longitude").
		Scan(&rows).Error
	if err != nil {
		return nil, nil, apperr.DataAccess("list job locations", err)
	}

	located = []CompanyLocation{}
	missing = []CompanyLocation{}
	for _, row := range rows {
		if row.Latitude != nil && row.Longitude != nil {
			located = append(located, row)
		} else {
			missing = append(missing, row)
		}
	}
	return located, missing, nil
}

// DeleteForUser removes the user's association with the listing identified by
// the external jobID. The listing itself stays, it may belong to other users.
// Deleting an association that does not exist is a no-op, not an error.
func (r *JobRepository) DeleteForUser(userKey, jobID string) error {
	var listing model.JobListing
	err := r.db.Select("id").Where("job_id = ?", jobID).First(&listing).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil
	}
	if err != nil {
		return apperr.DataAccess("delete job", err)
	}

	res := r.db.
		Where("user_key = ? AND job_listing_id = ?", userKey, listing.ID).
		Delete(&model.UserJob{})
	if res.Error != nil {
		return apperr.DataAccess("delete job", res.Error)
	}
	return nil
}
