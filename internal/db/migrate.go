package db

import (
	"catalog_system/internal/domain" // Importing domain models

	"gorm.io/driver/mysql" // MySQL driver for GORM
	"gorm.io/gorm"         // GORM ORM library
)

// Open connects to MySQL. Foreign key constraint creation is disabled on
// purpose: the schema permits dangling category and product references.
func Open(dsn string) (*gorm.DB, error) {
	return gorm.Open(mysql.Open(dsn), &gorm.Config{
		DisableForeignKeyConstraintWhenMigrating: true,
	})
}

// Migrate creates any missing tables, columns and indexes for every entity
// plus the order_products join table.
func Migrate(conn *gorm.DB) error {
	return conn.AutoMigrate(
		&domain.User{},
		&domain.Category{},
		&domain.Product{},
		&domain.Review{},
		&domain.Order{},
		&domain.OrderProduct{},
	)
}
