package domain

// User Model
type User struct {
	ID       uint    `gorm:"primaryKey" json:"id"`                 // Primary key
	Username string  `gorm:"uniqueIndex;not null" json:"username"` // Unique username
	Email    string  `gorm:"uniqueIndex;not null" json:"email"`    // Unique email address
	Orders   []Order `json:"-"`                                    // One-to-many relationship with Order
}
