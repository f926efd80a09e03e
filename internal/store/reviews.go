package store

import (
	"errors" // Sentinel error matching

	"catalog_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListReviews returns up to limit reviews starting at offset.
func ListReviews(db *gorm.DB, offset, limit int) ([]domain.Review, error) {
	var reviews []domain.Review
	if err := db.Offset(offset).Limit(limit).Find(&reviews).Error; err != nil {
		return nil, err
	}
	return reviews, nil
}

// GetReview returns the review with the given id, or nil when no row matches.
func GetReview(db *gorm.DB, id uint) (*domain.Review, error) {
	var review domain.Review
	if err := db.First(&review, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &review, nil
}

// CreateReview inserts the review and fills in its generated id.
func CreateReview(db *gorm.DB, review *domain.Review) error {
	return db.Create(review).Error
}

// SaveReview persists every column of an already-fetched review.
func SaveReview(db *gorm.DB, review *domain.Review) error {
	return db.Save(review).Error
}

// DeleteReview removes the review with the given id, reporting false when it
// does not exist.
func DeleteReview(db *gorm.DB, id uint) (bool, error) {
	review, err := GetReview(db, id)
	if err != nil {
		return false, err
	}
	if review == nil {
		return false, nil
	}
	if err := db.Delete(review).Error; err != nil {
		return false, err
	}
	return true, nil
}
