package domain

// Order Model
type Order struct {
	ID     uint   `gorm:"primaryKey" json:"id"`                   // Primary key
	UserID uint   `gorm:"index" json:"user_id"`                   // Reference to the ordering User
	Status string `gorm:"not null;default:pending" json:"status"` // Free-form status string, defaults to "pending"
	// Products is resolved through order_products rows; not managed by gorm so
	// duplicate associations survive loading.
	Products []Product `gorm:"-" json:"products"`
}

// OrderProduct is one association row linking an Order to a Product.
// The (order_id, product_id) pair carries no uniqueness constraint, so one
// order may reference the same product more than once.
type OrderProduct struct {
	ID        uint `gorm:"primaryKey"` // Surrogate key
	OrderID   uint `gorm:"index"`      // Reference to Order
	ProductID uint `gorm:"index"`      // Reference to Product
}
