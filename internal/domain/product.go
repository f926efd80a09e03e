package domain

// Product Model
type Product struct {
	ID         uint     `gorm:"primaryKey" json:"id"`  // Primary key
	Name       string   `gorm:"not null" json:"name"`  // Product name
	Price      float64  `gorm:"not null" json:"price"` // Product price (not validated beyond presence)
	CategoryID *uint    `json:"category_id"`           // Optional reference to Category; may dangle, no FK enforced
	Reviews    []Review `json:"-"`                     // One-to-many relationship with Review
}
