package api

import (
	"net/http" // HTTP status codes
	"strconv"  // Cache key building

	"catalog_system/internal/domain" // Importing domain models
	"catalog_system/internal/store"  // Data access layer
	"catalog_system/internal/utils"  // Redis view cache

	"github.com/gin-gonic/gin"   // Gin web framework
	"github.com/sirupsen/logrus" // Logrus for structured logging
	"gorm.io/gorm"               // GORM ORM library
)

// OrderCreateRequest is the create schema. The product list is optional;
// unknown ids are dropped without error and duplicate ids are kept.
type OrderCreateRequest struct {
	UserID     *uint  `json:"user_id" binding:"required"` // Ordering user; existence is not checked
	ProductIDs []uint `json:"product_ids"`                // Products to associate with the order
}

// OrderUpdateRequest is the update schema. Order PATCH is partial-overwrite
// and touches only the status; the product set is fixed at creation.
type OrderUpdateRequest struct {
	Status *string `json:"status"` // Replacement status, written only when present
}

// OrderView is the serialized order, embedding the resolved product views.
type OrderView struct {
	ID       uint          `json:"id"`       // Order ID
	UserID   uint          `json:"user_id"`  // Ordering user
	Status   string        `json:"status"`   // Free-form status string
	Products []ProductView `json:"products"` // Associated products, one entry per association row
}

// orderView maps a stored order to its view.
func orderView(o domain.Order) OrderView {
	return OrderView{ID: o.ID, UserID: o.UserID, Status: o.Status, Products: productViews(o.Products)}
}

// orderCacheKey is the cache key for one order's view.
func orderCacheKey(id uint) string {
	return "orders:id:" + strconv.Itoa(int(id))
}

// ListOrdersHandler returns up to limit orders starting at skip, each with
// its resolved product list.
func ListOrdersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit, ok := listParams(c)
		if !ok {
			return
		}
		orders, err := store.ListOrders(db, skip, limit)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list orders")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
			return
		}
		resp := make([]OrderView, len(orders))
		for i, o := range orders {
			resp[i] = orderView(o)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetOrderHandler returns one order by id.
func GetOrderHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached OrderView
		if found, err := cache.Get(ctx, orderCacheKey(id), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve the cached view
			return
		}
		order, err := store.GetOrder(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"order_id": id, "error": err.Error()}).Error("Failed to fetch order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		if order == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		view := orderView(*order)
		_ = cache.Set(ctx, orderCacheKey(id), view) // Cache the view
		c.JSON(http.StatusOK, view)
	}
}

// CreateOrderHandler inserts a new order together with its product
// associations in one transaction.
func CreateOrderHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req OrderCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		order, err := store.CreateOrder(db, *req.UserID, req.ProductIDs)
		if err != nil {
			logrus.WithFields(logrus.Fields{
				"user_id":     *req.UserID,    // Ordering user
				"product_ids": req.ProductIDs, // Requested products
				"error":       err.Error(),    // Error message
			}).Error("Failed to create order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
			return
		}
		logrus.WithFields(logrus.Fields{
			"order_id": order.ID,            // New order id
			"user_id":  order.UserID,        // Ordering user
			"products": len(order.Products), // Association count
		}).Info("Order created")
		c.JSON(http.StatusCreated, orderView(*order))
	}
}

// UpdateOrderHandler writes only the status when present (partial-overwrite).
func UpdateOrderHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req OrderUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		order, err := store.GetOrder(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"order_id": id, "error": err.Error()}).Error("Failed to fetch order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
			return
		}
		if order == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		if req.Status != nil {
			order.Status = *req.Status // Only written when the caller sent it
		}
		if err := store.SaveOrder(db, order); err != nil {
			logrus.WithFields(logrus.Fields{"order_id": id, "error": err.Error()}).Error("Failed to update order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
			return
		}
		_ = cache.Delete(c.Request.Context(), orderCacheKey(id)) // Invalidate the stale view
		c.JSON(http.StatusOK, orderView(*order))
	}
}

// DeleteOrderHandler removes an order and its association rows.
func DeleteOrderHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		found, err := store.DeleteOrder(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"order_id": id, "error": err.Error()}).Error("Failed to delete order")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete order"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		_ = cache.Delete(c.Request.Context(), orderCacheKey(id)) // Invalidate the stale view
		c.Status(http.StatusNoContent)
	}
}
