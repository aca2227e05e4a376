package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// JobListing rows are created by the external scraper; this service only reads
// them and removes user associations.
type JobListing struct {
	ID                    uuid.UUID `gorm:"type:uuid;primaryKey" json:"id"`
	JobID                 string    `gorm:"uniqueIndex;not null" json:"job_id"`
	Position              string    `gorm:"not null" json:"position"`
	TechnicalRequirements string    `gorm:"type:text" json:"technical_requirements"`
	Experience            string    `json:"experience"`
	URL                   string    `json:"url"`
	CompanyID             uuid.UUID `gorm:"type:uuid" json:"company_id"`
	Company               Company   `json:"company"`
	CreatedAt             time.Time `json:"created_at"`
	UpdatedAt             time.Time `json:"updated_at"`
}

func (j *JobListing) TableName() string {
	return "job_listings"
}

func (j *JobListing) BeforeCreate(tx *gorm.DB) error {
	if j.ID == uuid.Nil {
		j.ID = uuid.New()
	}
	return nil
}
