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

// CategoryCreateRequest is the create schema: the name is required.
type CategoryCreateRequest struct {
	Name string `json:"name" binding:"required"` // Unique category name
}

// CategoryUpdateRequest is the update schema. Category PATCH is
// full-overwrite like users: the stored name is replaced by the payload.
type CategoryUpdateRequest struct {
	Name string `json:"name"` // Replacement name
}

// CategoryView is the serialized category returned by every category endpoint.
type CategoryView struct {
	ID   uint   `json:"id"`   // Category ID
	Name string `json:"name"` // Category name
}

// categoryView maps a stored category to its view.
func categoryView(cat domain.Category) CategoryView {
	return CategoryView{ID: cat.ID, Name: cat.Name}
}

// categoryCacheKey is the cache key for one category's view.
func categoryCacheKey(id uint) string {
	return "categories:id:" + strconv.Itoa(int(id))
}

// ListCategoriesHandler returns up to limit categories starting at skip.
func ListCategoriesHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit, ok := listParams(c)
		if !ok {
			return
		}
		categories, err := store.ListCategories(db, skip, limit)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list categories")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list categories"})
			return
		}
		resp := make([]CategoryView, len(categories))
		for i, cat := range categories {
			resp[i] = categoryView(cat)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetCategoryHandler returns one category by id.
func GetCategoryHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached CategoryView
		if found, err := cache.Get(ctx, categoryCacheKey(id), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve the cached view
			return
		}
		category, err := store.GetCategory(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"category_id": id, "error": err.Error()}).Error("Failed to fetch category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}
		if category == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		view := categoryView(*category)
		_ = cache.Set(ctx, categoryCacheKey(id), view) // Cache the view
		c.JSON(http.StatusOK, view)
	}
}

// CreateCategoryHandler inserts a new category.
func CreateCategoryHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req CategoryCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		category := domain.Category{Name: req.Name}
		if err := store.CreateCategory(db, &category); err != nil {
			logrus.WithFields(logrus.Fields{"name": req.Name, "error": err.Error()}).Error("Failed to create category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create category"})
			return
		}
		c.JSON(http.StatusCreated, categoryView(category))
	}
}

// UpdateCategoryHandler replaces a category's name with the payload.
func UpdateCategoryHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req CategoryUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		category, err := store.GetCategory(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"category_id": id, "error": err.Error()}).Error("Failed to fetch category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch category"})
			return
		}
		if category == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		category.Name = req.Name // Full-overwrite
		if err := store.SaveCategory(db, category); err != nil {
			logrus.WithFields(logrus.Fields{"category_id": id, "error": err.Error()}).Error("Failed to update category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update category"})
			return
		}
		_ = cache.Delete(c.Request.Context(), categoryCacheKey(id)) // Invalidate the stale view
		c.JSON(http.StatusOK, categoryView(*category))
	}
}

// DeleteCategoryHandler removes a category by id. Products keep their
// (now dangling) category reference.
func DeleteCategoryHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		found, err := store.DeleteCategory(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"category_id": id, "error": err.Error()}).Error("Failed to delete category")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete category"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Category not found"})
			return
		}
		_ = cache.Delete(c.Request.Context(), categoryCacheKey(id)) // Invalidate the stale view
		c.Status(http.StatusNoContent)
	}
}
