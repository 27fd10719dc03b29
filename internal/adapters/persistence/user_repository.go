package persistence

import (
	"context"
	"errors"

	"gorm.io/gorm"
)

// GormUserStore implements UserStore using GORM, grounded on the teacher's
// GormPlayerRepository upsert-by-username idiom.
type GormUserStore struct {
	db *gorm.DB
}

func NewGormUserStore(db *gorm.DB) *GormUserStore {
	return &GormUserStore{db: db}
}

// UpsertUser creates or updates a user's identity row. Idempotent: a
// second claim of the same username updates the token/assignment in place.
func (r *GormUserStore) UpsertUser(ctx context.Context, username, token, assignment, systemSymbol string) (*UserRow, error) {
	var existing UserModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&existing).Error
	switch {
	case err == nil:
		existing.Token = token
		existing.DefaultAssignment = assignment
		existing.SystemSymbol = systemSymbol
		if result := r.db.WithContext(ctx).Save(&existing); result.Error != nil {
			return nil, NewTransportError("update user", result.Error)
		}
		return modelToUserRow(&existing), nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		model := UserModel{
			Username:          username,
			Token:             token,
			SystemSymbol:      systemSymbol,
			DefaultAssignment: assignment,
		}
		if result := r.db.WithContext(ctx).Create(&model); result.Error != nil {
			return nil, NewTransportError("create user", result.Error)
		}
		return modelToUserRow(&model), nil
	default:
		return nil, NewTransportError("find user", err)
	}
}

// GetUser retrieves a user's identity row by username.
func (r *GormUserStore) GetUser(ctx context.Context, username string) (*UserRow, error) {
	var model UserModel
	err := r.db.WithContext(ctx).Where("username = ?", username).First(&model).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, NewNotFoundError("user " + username)
		}
		return nil, NewTransportError("find user", err)
	}
	return modelToUserRow(&model), nil
}

func modelToUserRow(m *UserModel) *UserRow {
	return &UserRow{
		ID:                m.ID,
		Username:          m.Username,
		Token:             m.Token,
		SystemSymbol:      m.SystemSymbol,
		DefaultAssignment: m.DefaultAssignment,
		CreatedAt:         m.CreatedAt,
	}
}
