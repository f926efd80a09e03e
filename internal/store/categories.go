package store

import (
	"errors" // Sentinel error matching

	"catalog_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListCategories returns up to limit categories starting at offset.
func ListCategories(db *gorm.DB, offset, limit int) ([]domain.Category, error) {
	var categories []domain.Category
	if err := db.Offset(offset).Limit(limit).Find(&categories).Error; err != nil {
		return nil, err
	}
	return categories, nil
}

// GetCategory returns the category with the given id, or nil when no row matches.
func GetCategory(db *gorm.DB, id uint) (*domain.Category, error) {
	var category domain.Category
	if err := db.First(&category, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &category, nil
}

// CreateCategory inserts the category and fills in its generated id.
func CreateCategory(db *gorm.DB, category *domain.Category) error {
	return db.Create(category).Error
}

// SaveCategory persists every column of an already-fetched category.
func SaveCategory(db *gorm.DB, category *domain.Category) error {
	return db.Save(category).Error
}

// DeleteCategory removes the category with the given id, reporting false when
// it does not exist. Products pointing at the category keep their dangling
// category_id; there is no cascade.
func DeleteCategory(db *gorm.DB, id uint) (bool, error) {
	category, err := GetCategory(db, id)
	if err != nil {
		return false, err
	}
	if category == nil {
		return false, nil
	}
	if err := db.Delete(category).Error; err != nil {
		return false, err
	}
	return true, nil
}
