package store

import (
	"errors" // Sentinel error matching

	"catalog_system/internal/domain" // Importing domain models

	"gorm.io/gorm" // GORM ORM library
)

// ListOrders returns up to limit orders starting at offset, each with its
// product list resolved through the association rows.
func ListOrders(db *gorm.DB, offset, limit int) ([]domain.Order, error) {
	var orders []domain.Order
	if err := db.Offset(offset).Limit(limit).Find(&orders).Error; err != nil {
		return nil, err
	}
	orderIDs := make([]uint, len(orders))
	for i, o := range orders {
		orderIDs[i] = o.ID
	}
	productsByOrder, err := orderProducts(db, orderIDs)
	if err != nil {
		return nil, err
	}
	// Attach resolved products; absent entries become empty lists
	for i := range orders {
		orders[i].Products = productsByOrder[orders[i].ID]
		if orders[i].Products == nil {
			orders[i].Products = []domain.Product{}
		}
	}
	return orders, nil
}

// GetOrder returns the order with the given id and its resolved product list,
// or nil when no row matches.
func GetOrder(db *gorm.DB, id uint) (*domain.Order, error) {
	var order domain.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	productsByOrder, err := orderProducts(db, []uint{order.ID})
	if err != nil {
		return nil, err
	}
	order.Products = productsByOrder[order.ID]
	if order.Products == nil {
		order.Products = []domain.Product{}
	}
	return &order, nil
}

// CreateOrder inserts the order row and one association row per requested
// product, all inside a single transaction: either everything commits or
// nothing does. Product ids that match no row are silently dropped; a
// duplicated id produces a duplicate association row.
func CreateOrder(db *gorm.DB, userID uint, productIDs []uint) (*domain.Order, error) {
	order := domain.Order{UserID: userID, Status: "pending", Products: []domain.Product{}}
	err := db.Transaction(func(tx *gorm.DB) error {
		// Insert the order row first to obtain its id
		if err := tx.Create(&order).Error; err != nil {
			return err
		}
		if len(productIDs) == 0 {
			return nil
		}
		// Resolve which of the requested products actually exist
		var products []domain.Product
		if err := tx.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
			return err
		}
		byID := make(map[uint]domain.Product, len(products))
		for _, p := range products {
			byID[p.ID] = p
		}
		// One association row per requested occurrence of a found product
		for _, productID := range productIDs {
			product, ok := byID[productID]
			if !ok {
				continue // Unknown ids are dropped without error
			}
			assoc := domain.OrderProduct{OrderID: order.ID, ProductID: productID}
			if err := tx.Create(&assoc).Error; err != nil {
				return err // Rolls back the order row as well
			}
			order.Products = append(order.Products, product)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

// SaveOrder persists the order row. The resolved product list is not managed
// here; associations are only written at creation time.
func SaveOrder(db *gorm.DB, order *domain.Order) error {
	return db.Save(order).Error
}

// DeleteOrder removes the order row together with its association rows,
// reporting false when the order does not exist.
func DeleteOrder(db *gorm.DB, id uint) (bool, error) {
	var order domain.Order
	if err := db.First(&order, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return false, nil
		}
		return false, err
	}
	err := db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Where("order_id = ?", id).Delete(&domain.OrderProduct{}).Error; err != nil {
			return err
		}
		return tx.Delete(&order).Error
	})
	if err != nil {
		return false, err
	}
	return true, nil
}

// orderProducts resolves the product list for each given order id. One list
// entry is produced per association row, in row insertion order, so duplicate
// associations stay visible. Rows pointing at deleted products are skipped.
func orderProducts(db *gorm.DB, orderIDs []uint) (map[uint][]domain.Product, error) {
	result := make(map[uint][]domain.Product, len(orderIDs))
	if len(orderIDs) == 0 {
		return result, nil
	}
	var rows []domain.OrderProduct
	if err := db.Where("order_id IN ?", orderIDs).Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return result, nil
	}
	productIDs := make([]uint, 0, len(rows))
	for _, row := range rows {
		productIDs = append(productIDs, row.ProductID)
	}
	var products []domain.Product
	if err := db.Where("id IN ?", productIDs).Find(&products).Error; err != nil {
		return nil, err
	}
	byID := make(map[uint]domain.Product, len(products))
	for _, p := range products {
		byID[p.ID] = p
	}
	for _, row := range rows {
		if product, ok := byID[row.ProductID]; ok {
			result[row.OrderID] = append(result[row.OrderID], product)
		}
	}
	return result, nil
}
