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

// ReviewCreateRequest is the create schema: text and product reference are
// required. The product's existence is not checked.
type ReviewCreateRequest struct {
	Text      string `json:"text" binding:"required"`       // Review text
	ProductID *uint  `json:"product_id" binding:"required"` // Reviewed product
}

// ReviewUpdateRequest is the update schema. Review PATCH is
// partial-overwrite: only fields present in the payload are written.
type ReviewUpdateRequest struct {
	Text *string `json:"text"` // Replacement text, written only when present
}

// ReviewView is the serialized review returned by every review endpoint.
type ReviewView struct {
	ID        uint   `json:"id"`         // Review ID
	Text      string `json:"text"`       // Review text
	ProductID uint   `json:"product_id"` // Reviewed product
}

// reviewView maps a stored review to its view.
func reviewView(r domain.Review) ReviewView {
	return ReviewView{ID: r.ID, Text: r.Text, ProductID: r.ProductID}
}

// reviewCacheKey is the cache key for one review's view.
func reviewCacheKey(id uint) string {
	return "reviews:id:" + strconv.Itoa(int(id))
}

// ListReviewsHandler returns up to limit reviews starting at skip.
func ListReviewsHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit, ok := listParams(c)
		if !ok {
			return
		}
		reviews, err := store.ListReviews(db, skip, limit)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list reviews")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list reviews"})
			return
		}
		resp := make([]ReviewView, len(reviews))
		for i, r := range reviews {
			resp[i] = reviewView(r)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetReviewHandler returns one review by id.
func GetReviewHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached ReviewView
		if found, err := cache.Get(ctx, reviewCacheKey(id), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve the cached view
			return
		}
		review, err := store.GetReview(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"review_id": id, "error": err.Error()}).Error("Failed to fetch review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
			return
		}
		if review == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		view := reviewView(*review)
		_ = cache.Set(ctx, reviewCacheKey(id), view) // Cache the view
		c.JSON(http.StatusOK, view)
	}
}

// CreateReviewHandler inserts a new review.
func CreateReviewHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req ReviewCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		review := domain.Review{Text: req.Text, ProductID: *req.ProductID}
		if err := store.CreateReview(db, &review); err != nil {
			logrus.WithFields(logrus.Fields{"product_id": *req.ProductID, "error": err.Error()}).Error("Failed to create review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create review"})
			return
		}
		c.JSON(http.StatusCreated, reviewView(review))
	}
}

// UpdateReviewHandler writes only the fields present in the payload
// (partial-overwrite).
func UpdateReviewHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req ReviewUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		review, err := store.GetReview(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"review_id": id, "error": err.Error()}).Error("Failed to fetch review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch review"})
			return
		}
		if review == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		if req.Text != nil {
			review.Text = *req.Text // Only written when the caller sent it
		}
		if err := store.SaveReview(db, review); err != nil {
			logrus.WithFields(logrus.Fields{"review_id": id, "error": err.Error()}).Error("Failed to update review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update review"})
			return
		}
		_ = cache.Delete(c.Request.Context(), reviewCacheKey(id)) // Invalidate the stale view
		c.JSON(http.StatusOK, reviewView(*review))
	}
}

// DeleteReviewHandler removes a review by id.
func DeleteReviewHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		found, err := store.DeleteReview(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"review_id": id, "error": err.Error()}).Error("Failed to delete review")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete review"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "Review not found"})
			return
		}
		_ = cache.Delete(c.Request.Context(), reviewCacheKey(id)) // Invalidate the stale view
		c.Status(http.StatusNoContent)
	}
}
