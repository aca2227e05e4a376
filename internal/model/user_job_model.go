package model

import (
	"time"

	"github.com/google/uuid"
)

// UserJob links a user key to a listing. Removing a listing from a user's view
// deletes this row, not the shared listing itself.
type UserJob struct {
	UserKey      string    `gorm:"primaryKey;size:64" json:"user_key"`
	JobListingID uuid.UUID `gorm:"type:uuid;primaryKey" json:"job_listing_id"`
	CreatedAt    time.Time `json:"created_at"`
}

func (uj *UserJob) TableName() string {
	return "user_jobs"
}
