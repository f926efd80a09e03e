package domain

// Review Model
type Review struct {
	ID        uint   `gorm:"primaryKey" json:"id"`    // Primary key
	Text      string `gorm:"not null" json:"text"`    // Review text
	ProductID uint   `gorm:"index" json:"product_id"` // Reference to the reviewed Product
}
