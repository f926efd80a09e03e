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

// UserCreateRequest is the create schema: both fields are required.
type UserCreateRequest struct {
	Username string `json:"username" binding:"required"` // Unique username
	Email    string `json:"email" binding:"required"`    // Unique email address
}

// UserUpdateRequest is the update schema. User PATCH is full-overwrite:
// every column is replaced from the payload, so an omitted field overwrites
// the stored value with its zero value.
type UserUpdateRequest struct {
	Username string `json:"username"` // Replacement username
	Email    string `json:"email"`    // Replacement email
}

// UserView is the serialized user returned by every user endpoint.
type UserView struct {
	ID       uint   `json:"id"`       // User ID
	Username string `json:"username"` // Username
	Email    string `json:"email"`    // Email address
}

// userView maps a stored user to its view.
func userView(u domain.User) UserView {
	return UserView{ID: u.ID, Username: u.Username, Email: u.Email}
}

// userCacheKey is the cache key for one user's view.
func userCacheKey(id uint) string {
	return "users:id:" + strconv.Itoa(int(id))
}

// ListUsersHandler returns up to limit users starting at skip.
func ListUsersHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		skip, limit, ok := listParams(c)
		if !ok {
			return
		}
		users, err := store.ListUsers(db, skip, limit)
		if err != nil {
			logrus.WithField("error", err.Error()).Error("Failed to list users")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list users"})
			return
		}
		resp := make([]UserView, len(users))
		for i, u := range users {
			resp[i] = userView(u)
		}
		c.JSON(http.StatusOK, resp)
	}
}

// GetUserHandler returns one user by id.
func GetUserHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		ctx := c.Request.Context()
		var cached UserView
		if found, err := cache.Get(ctx, userCacheKey(id), &cached); err == nil && found {
			c.JSON(http.StatusOK, cached) // Serve the cached view
			return
		}
		user, err := store.GetUser(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Error("Failed to fetch user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		view := userView(*user)
		_ = cache.Set(ctx, userCacheKey(id), view) // Cache the view
		c.JSON(http.StatusOK, view)
	}
}

// CreateUserHandler inserts a new user.
func CreateUserHandler(db *gorm.DB) gin.HandlerFunc {
	return func(c *gin.Context) {
		var req UserCreateRequest
		if !bindJSON(c, &req) {
			return
		}
		user := domain.User{Username: req.Username, Email: req.Email}
		// Uniqueness of username and email is enforced by the schema, not here
		if err := store.CreateUser(db, &user); err != nil {
			logrus.WithFields(logrus.Fields{"username": req.Username, "error": err.Error()}).Error("Failed to create user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create user"})
			return
		}
		c.JSON(http.StatusCreated, userView(user))
	}
}

// UpdateUserHandler replaces a user's fields with the payload (full-overwrite).
func UpdateUserHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		var req UserUpdateRequest
		if !bindJSON(c, &req) {
			return
		}
		user, err := store.GetUser(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Error("Failed to fetch user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch user"})
			return
		}
		if user == nil {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		user.Username = req.Username // Overwrite every column, omitted fields included
		user.Email = req.Email
		if err := store.SaveUser(db, user); err != nil {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Error("Failed to update user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update user"})
			return
		}
		_ = cache.Delete(c.Request.Context(), userCacheKey(id)) // Invalidate the stale view
		c.JSON(http.StatusOK, userView(*user))
	}
}

// DeleteUserHandler removes a user by id. Orders remain untouched.
func DeleteUserHandler(db *gorm.DB, cache *utils.Cache) gin.HandlerFunc {
	return func(c *gin.Context) {
		id, ok := pathID(c)
		if !ok {
			return
		}
		found, err := store.DeleteUser(db, id)
		if err != nil {
			logrus.WithFields(logrus.Fields{"user_id": id, "error": err.Error()}).Error("Failed to delete user")
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete user"})
			return
		}
		if !found {
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
			return
		}
		_ = cache.Delete(c.Request.Context(), userCacheKey(id)) // Invalidate the stale view
		c.Status(http.StatusNoContent)
	}
}
