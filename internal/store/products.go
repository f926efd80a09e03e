package store

import (
	"errors" // Sentinel error matching

	"catalog_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListProducts returns up to limit products starting at offset.
func ListProducts(db *gorm.DB, offset, limit int) ([]domain.Product, error) {
	var products []domain.Product
	if err := db.Offset(offset).Limit(limit).Find(&products).Error; err != nil {
		return nil, err
	}
	return products, nil
}

// GetProduct returns the product with the given id, or nil when no row matches.
func GetProduct(db *gorm.DB, id uint) (*domain.Product, error) {
	var product domain.Product
	if err := db.First(&product, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &product, nil
}

// CreateProduct inserts the product and fills in its generated id. The
// category reference is stored as given; it is not checked against the
// categories table.
func CreateProduct(db *gorm.DB, product *domain.Product) error {
	return db.Create(product).Error
}

// SaveProduct persists every column of an already-fetched product.
func SaveProduct(db *gorm.DB, product *domain.Product) error {
	return db.Save(product).Error
}

// DeleteProduct removes the product with the given id, reporting false when
// it does not exist. Reviews and order associations referencing the product
// are left in place; there is no cascade.
func DeleteProduct(db *gorm.DB, id uint) (bool, error) {
	product, err := GetProduct(db, id)
	if err != nil {
		return false, err
	}
	if product == nil {
		return false, nil
	}
	if err := db.Delete(product).Error; err != nil {
		return false, err
	}
	return true, nil
}
