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

// ProductCreateRequest is the create schema. Price and category_id are
// pointers so that legitimate zero values pass the required rule.
type ProductCreateRequest struct {
	Name       string   `json:"name" binding:"required"`        // Product name
	Price      *float64 `json:"price" binding:"required"`       // Product price
	CategoryID *uint    `json:"category_id" binding:"required"` // Category reference; existence is not checked
}

// ProductUpdateRequest is the update schema. Product PATCH is full-overwrite:
// all three columns are replaced from the payload, so an omitted category_id
// clears the stored reference.
type ProductUpdateRequest struct {
	Name       string  `json:"name"`        // Replacement name
	Price      float64 `json:"price"`       // Replacement price
	CategoryID *uint   `json:"category_id"` // Replacement category reference
}

// ProductView is the serialized product returned by product and order endpoints.
type ProductView struct {
	ID         uint    `json:"id"`          // Product ID
	Name       string  `json:"name"`        // Product name
	Price      float64 `json:"price"`       // Product price
	CategoryID *uint   `json:"category_id"` // Category reference, null when unset
}

// productView maps a stored product to its view.
func productView(p domain.Product) ProductView {
	return ProductView{ID: p.ID, Name: p.Name, Price: p.Price, CategoryID: p.CategoryID}
}

// productViews maps a product list to views, never returning nil so the
// serialized form is always an array.
func productViews(products []domain.Product) []ProductView {
	views := make([]ProductView, len(products))
	for i, p := range products {
		views[i] = productView(p)
	}
	return views
}

// productCacheKey is the cache key for one product's view.
func productCacheKey(id uint) string {
	return "products:id:" + strconv.Itoa(int(id))
}

// ListProductsHandler returns up to limit products starting at skip.
func ListProductsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit, ok := listParams(c)
		if !ok {
			return
		}
		products, err := store.ListProducts(db, skip, limit)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list products")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
			return
		}
		c.JSON(http.StatusOK, productViews(products))
	}
}

// GetProductHandler returns one product by id.
func GetProductHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached ProductView
		if found, err := cache.Get(ctx, productCacheKey(id), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve the cached view
			return
		}
		product, err := store.GetProduct(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"product_id": id, "error": err.Error()}).Error("Failed to fetch product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		view := productView(*product)
		_ = cache.Set(ctx, productCacheKey(id), view) // Cache the view
		c.JSON(http.StatusOK, view)
	}
}

// CreateProductHandler inserts a new product. The category reference is
// stored as given, even when it matches no category.
func CreateProductHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ProductCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		product := domain.Product{Name: req.Name, Price: *req.Price, CategoryID: req.CategoryID}
		if err := store.CreateProduct(db, &product); err != nil {
			logrus.WithFields(logrus.Fields{"name": req.Name, "error": err.Error()}).Error("Failed to create product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
			return
		}
		c.JSON(http.StatusCreated, productView(product))
	}
}

// UpdateProductHandler replaces a product's fields with the payload
// (full-overwrite).
func UpdateProductHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req ProductUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		product, err := store.GetProduct(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"product_id": id, "error": err.Error()}).Error("Failed to fetch product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
			return
		}
		if product == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		product.Name = req.Name // Overwrite every column, omitted fields included
		product.Price = req.Price
		product.CategoryID = req.CategoryID
		if err := store.SaveProduct(db, product); err != nil {
			logrus.WithFields(logrus.Fields{"product_id": id, "error": err.Error()}).Error("Failed to update product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
			return
		}
		_ = cache.Delete(c.Request.Context(), productCacheKey(id)) // Invalidate the stale view
		c.JSON(http.StatusOK, productView(*product))
	}
}

// DeleteProductHandler removes a product by id. Reviews and order
// associations referencing it are left in place.
func DeleteProductHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		found, err := store.DeleteProduct(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"product_id": id, "error": err.Error()}).Error("Failed to delete product")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		_ = cache.Delete(c.Request.Context(), productCacheKey(id)) // Invalidate the stale view
		c.Status(http.StatusNoContent)
	}
}
