package store

import (
	"errors" // Sentinel error matching

	"catalog_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListUsers returns up to limit users starting at offset, in insertion order.
// An out-of-range offset yields an empty slice, not an error.
func ListUsers(db *gorm.DB, offset, limit int) ([]domain.User, error) {
	var users []domain.User
	if err := db.Offset(offset).Limit(limit).Find(&users).Error; err != nil {
		return nil, err
	}
	return users, nil
}

// GetUser returns the user with the given id, or nil when no row matches.
func GetUser(db *gorm.DB, id uint) (*domain.User, error) {
	var user domain.User
	if err := db.First(&user, id).Error; err != nil {
		// Absence is reported as nil, not as an error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &user, nil
}

// CreateUser inserts the user and fills in its generated id.
func CreateUser(db *gorm.DB, user *domain.User) error {
	return db.Create(user).Error
}

// SaveUser persists every column of an already-fetched user.
func SaveUser(db *gorm.DB, user *domain.User) error {
	return db.Save(user).Error
}

// DeleteUser removes the user with the given id, reporting false when it does
// not exist. The user's orders are left in place.
func DeleteUser(db *gorm.DB, id uint) (bool, error) {
	user, err := GetUser(db, id)
	if err != nil {
		return false, err
	}
	if user == nil {
		return false, nil
	}
	if err := db.Delete(user).Error; err != nil {
		return false, err
	}
	return true, nil
}
