package domain

// Category Model
type Category struct {
	ID       uint      `gorm:"primaryKey" json:"id"`             // Primary key
	Name     string    `gorm:"uniqueIndex;not null" json:"name"` // Unique category name
	Products []Product `json:"-"`                                // One-to-many relationship with Product
}
