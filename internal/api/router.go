package api

import (
	"catalog_system/internal/utils" // Redis view cache

	"github.com/gin-gonic/gin" // Gin web framework
	"gorm.io/gorm"             // GORM ORM library
)

// RegisterRoutes wires one route group per resource onto the router. Every
// route binds its schema, calls one store function and maps the result to a
// status code. The cache may be nil, which disables view caching.
func RegisterRoutes(r *gin.Engine, db *gorm.DB, cache *utils.Cache) {
	registerTagNames() // Report json field names in 422 bodies

	// User routes
	users := r.Group("/users")
	users.GET("/", ListUsersHandler(db))
	users.GET("/:id", GetUserHandler(db, cache))
	users.POST("/", CreateUserHandler(db))
	users.PATCH("/:id", UpdateUserHandler(db, cache))
	users.DELETE("/:id", DeleteUserHandler(db, cache))

	// Category routes
	categories := r.Group("/categories")
	categories.GET("/", ListCategoriesHandler(db))
	categories.GET("/:id", GetCategoryHandler(db, cache))
	categories.POST("/", CreateCategoryHandler(db))
	categories.PATCH("/:id", UpdateCategoryHandler(db, cache))
	categories.DELETE("/:id", DeleteCategoryHandler(db, cache))

	// Product routes
	products := r.Group("/products")
	products.GET("/", ListProductsHandler(db))
	products.GET("/:id", GetProductHandler(db, cache))
	products.POST("/", CreateProductHandler(db))
	products.PATCH("/:id", UpdateProductHandler(db, cache))
	products.DELETE("/:id", DeleteProductHandler(db, cache))

	// Review routes
	reviews := r.Group("/reviews")
	reviews.GET("/", ListReviewsHandler(db))
	reviews.GET("/:id", GetReviewHandler(db, cache))
	reviews.POST("/", CreateReviewHandler(db))
	reviews.PATCH("/:id", UpdateReviewHandler(db, cache))
	reviews.DELETE("/:id", DeleteReviewHandler(db, cache))

	// Order routes
	orders := r.Group("/orders")
	orders.GET("/", ListOrdersHandler(db))
	orders.GET("/:id", GetOrderHandler(db, cache))
	orders.POST("/", CreateOrderHandler(db))
	orders.PATCH("/:id", UpdateOrderHandler(db, cache))
	orders.DELETE("/:id", DeleteOrderHandler(db, cache))
}
