package repository

import (
	"errors"

	"github.com/brandon-wee/jobdash/internal/apperr"
	"github.com/brandon-wee/jobdash/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db}
}

func (r *UserRepository) FindByKey(userKey string) (*model.User, error) {
	var user model.User
	err := r.db.First(&user, "user_key = ?", userKey).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, apperr.NotFound("user not found")
	}
	if err != nil {
		return nil, apperr.DataAccess("find user", err)
	}
	return &user, nil
}

// UpsertDisplayName creates the user row on first sight and updates the
// display name afterwards.
func (r *UserRepository) UpsertDisplayName(userKey, displayName string) (*model.User, error) {
	user := model.User{UserKey: userKey, DisplayName: displayName}
	err := r.db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "user_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"display_name", "updated_at"}),
	}).Create(&user).Error
	if err != nil {
		return nil, apperr.DataAccess("upsert user", err)
	}
	return &user, nil
}
