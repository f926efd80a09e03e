package store

import (
	"fmt"
	"sync/atomic"
	"testing"

	"catalog_system/internal/db"
	"catalog_system/internal/domain"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var dbSeq atomic.Int64

// testDB opens a fresh in-memory sqlite database with the full schema. Each
// call gets its own database so tests stay independent.
func testDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:store_test_%d?mode=memory&cache=shared", dbSeq.Add(1))
	conn, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger:                                   logger.Default.LogMode(logger.Silent),
		DisableForeignKeyConstraintWhenMigrating: true,
	})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(conn))
	return conn
}

// seedProduct inserts a product and returns it.
func seedProduct(t *testing.T, conn *gorm.DB, name string, price float64) domain.Product {
	t.Helper()
	product := domain.Product{Name: name, Price: price}
	require.NoError(t, CreateProduct(conn, &product))
	return product
}

func TestUserCRUD(t *testing.T) {
	conn := testDB(t)

	user := domain.User{Username: "cruduser", Email: "crud@example.com"}
	require.NoError(t, CreateUser(conn, &user))
	require.NotZero(t, user.ID)

	// Created record round-trips by id
	got, err := GetUser(conn, user.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "cruduser", got.Username)
	require.Equal(t, "crud@example.com", got.Email)

	// Save persists overwritten fields
	got.Username = "renamed"
	require.NoError(t, SaveUser(conn, got))
	again, err := GetUser(conn, user.ID)
	require.NoError(t, err)
	require.Equal(t, "renamed", again.Username)

	// Delete reports true, then the record is gone
	found, err := DeleteUser(conn, user.ID)
	require.NoError(t, err)
	require.True(t, found)
	gone, err := GetUser(conn, user.ID)
	require.NoError(t, err)
	require.Nil(t, gone)

	// Deleting again reports false without error
	found, err = DeleteUser(conn, user.ID)
	require.NoError(t, err)
	require.False(t, found)
}

func TestGetUserAbsent(t *testing.T) {
	conn := testDB(t)

	// Absence is nil, not an error
	got, err := GetUser(conn, 12345)
	require.NoError(t, err)
	require.Nil(t, got)
}

func TestListUsersOffsetLimit(t *testing.T) {
	conn := testDB(t)

	for i := 0; i < 5; i++ {
		user := domain.User{
			Username: fmt.Sprintf("user%d", i),
			Email:    fmt.Sprintf("u%d@example.com", i),
		}
		require.NoError(t, CreateUser(conn, &user))
	}

	// Window inside the range
	users, err := ListUsers(conn, 2, 2)
	require.NoError(t, err)
	require.Len(t, users, 2)
	require.Equal(t, "user2", users[0].Username)
	require.Equal(t, "user3", users[1].Username)

	// Out-of-range offset yields an empty slice, not an error
	users, err = ListUsers(conn, 50, 10)
	require.NoError(t, err)
	require.Empty(t, users)
}

func TestCategoryCRUD(t *testing.T) {
	conn := testDB(t)

	category := domain.Category{Name: "Electronics"}
	require.NoError(t, CreateCategory(conn, &category))

	got, err := GetCategory(conn, category.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Electronics", got.Name)

	got.Name = "Gadgets"
	require.NoError(t, SaveCategory(conn, got))
	again, err := GetCategory(conn, category.ID)
	require.NoError(t, err)
	require.Equal(t, "Gadgets", again.Name)

	found, err := DeleteCategory(conn, category.ID)
	require.NoError(t, err)
	require.True(t, found)
}

func TestDeleteCategoryLeavesProducts(t *testing.T) {
	conn := testDB(t)

	category := domain.Category{Name: "Tools"}
	require.NoError(t, CreateCategory(conn, &category))
	product := domain.Product{Name: "Hammer", Price: 50, CategoryID: &category.ID}
	require.NoError(t, CreateProduct(conn, &product))

	found, err := DeleteCategory(conn, category.ID)
	require.NoError(t, err)
	require.True(t, found)

	// The product survives with its now-dangling category reference
	got, err := GetProduct(conn, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.NotNil(t, got.CategoryID)
	require.Equal(t, category.ID, *got.CategoryID)
}

func TestReviewCRUD(t *testing.T) {
	conn := testDB(t)

	product := seedProduct(t, conn, "Game", 60)
	review := domain.Review{Text: "Awesome!", ProductID: product.ID}
	require.NoError(t, CreateReview(conn, &review))

	got, err := GetReview(conn, review.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
	require.Equal(t, "Awesome!", got.Text)
	require.Equal(t, product.ID, got.ProductID)

	found, err := DeleteReview(conn, review.ID)
	require.NoError(t, err)
	require.True(t, found)
	gone, err := GetReview(conn, review.ID)
	require.NoError(t, err)
	require.Nil(t, gone)
}

func TestCreateOrderWithProducts(t *testing.T) {
	conn := testDB(t)

	p1 := seedProduct(t, conn, "Laptop", 2000)
	p2 := seedProduct(t, conn, "Mouse", 25)
	p3 := seedProduct(t, conn, "Keyboard", 80)

	order, err := CreateOrder(conn, 1, []uint{p1.ID, p2.ID, p3.ID})
	require.NoError(t, err)
	require.NotZero(t, order.ID)
	require.Equal(t, "pending", order.Status)

	// Exactly the three requested products, order-independent
	require.Len(t, order.Products, 3)
	ids := map[uint]bool{}
	for _, p := range order.Products {
		ids[p.ID] = true
	}
	require.True(t, ids[p1.ID] && ids[p2.ID] && ids[p3.ID])

	// One association row per product
	var count int64
	require.NoError(t, conn.Model(&domain.OrderProduct{}).Where("order_id = ?", order.ID).Count(&count).Error)
	require.EqualValues(t, 3, count)
}

func TestCreateOrderDropsUnknownProducts(t *testing.T) {
	conn := testDB(t)

	product := seedProduct(t, conn, "Phone", 1000)

	order, err := CreateOrder(conn, 1, []uint{product.ID, 9999})
	require.NoError(t, err)
	require.Len(t, order.Products, 1)
	require.Equal(t, product.ID, order.Products[0].ID)
}

func TestCreateOrderKeepsDuplicateProducts(t *testing.T) {
	conn := testDB(t)

	product := seedProduct(t, conn, "Phone", 1000)

	// The same id twice produces two association rows
	order, err := CreateOrder(conn, 1, []uint{product.ID, product.ID})
	require.NoError(t, err)
	require.Len(t, order.Products, 2)

	var count int64
	require.NoError(t, conn.Model(&domain.OrderProduct{}).Where("order_id = ?", order.ID).Count(&count).Error)
	require.EqualValues(t, 2, count)

	// Loading back preserves the duplicate
	got, err := GetOrder(conn, order.ID)
	require.NoError(t, err)
	require.Len(t, got.Products, 2)
}

func TestCreateOrderWithoutProducts(t *testing.T) {
	conn := testDB(t)

	order, err := CreateOrder(conn, 7, nil)
	require.NoError(t, err)
	require.Equal(t, uint(7), order.UserID)
	require.Empty(t, order.Products)

	got, err := GetOrder(conn, order.ID)
	require.NoError(t, err)
	require.NotNil(t, got.Products)
	require.Empty(t, got.Products)
}

func TestListOrdersResolvesProducts(t *testing.T) {
	conn := testDB(t)

	p1 := seedProduct(t, conn, "Laptop", 2000)
	p2 := seedProduct(t, conn, "Mouse", 25)
	first, err := CreateOrder(conn, 1, []uint{p1.ID})
	require.NoError(t, err)
	second, err := CreateOrder(conn, 2, []uint{p1.ID, p2.ID})
	require.NoError(t, err)

	orders, err := ListOrders(conn, 0, 100)
	require.NoError(t, err)
	require.Len(t, orders, 2)

	byID := map[uint]domain.Order{}
	for _, o := range orders {
		byID[o.ID] = o
	}
	require.Len(t, byID[first.ID].Products, 1)
	require.Len(t, byID[second.ID].Products, 2)
}

func TestDeleteOrderRemovesAssociations(t *testing.T) {
	conn := testDB(t)

	product := seedProduct(t, conn, "Phone", 1000)
	order, err := CreateOrder(conn, 1, []uint{product.ID})
	require.NoError(t, err)

	found, err := DeleteOrder(conn, order.ID)
	require.NoError(t, err)
	require.True(t, found)

	var count int64
	require.NoError(t, conn.Model(&domain.OrderProduct{}).Where("order_id = ?", order.ID).Count(&count).Error)
	require.Zero(t, count)

	// The product itself is untouched
	got, err := GetProduct(conn, product.ID)
	require.NoError(t, err)
	require.NotNil(t, got)
}

func TestDeleteProductLeavesReviewsAndAssociations(t *testing.T) {
	conn := testDB(t)

	product := seedProduct(t, conn, "Phone", 1000)
	review := domain.Review{Text: "Nice", ProductID: product.ID}
	require.NoError(t, CreateReview(conn, &review))
	order, err := CreateOrder(conn, 1, []uint{product.ID})
	require.NoError(t, err)

	found, err := DeleteProduct(conn, product.ID)
	require.NoError(t, err)
	require.True(t, found)

	// No cascade: the review row survives with a dangling product reference
	gotReview, err := GetReview(conn, review.ID)
	require.NoError(t, err)
	require.NotNil(t, gotReview)

	// The association row survives too; resolving the order just skips it
	var count int64
	require.NoError(t, conn.Model(&domain.OrderProduct{}).Where("order_id = ?", order.ID).Count(&count).Error)
	require.EqualValues(t, 1, count)
	gotOrder, err := GetOrder(conn, order.ID)
	require.NoError(t, err)
	require.Empty(t, gotOrder.Products)
}

func TestUpdateOrderStatus(t *testing.T) {
	conn := testDB(t)

	order, err := CreateOrder(conn, 1, nil)
	require.NoError(t, err)

	order.Status = "shipped"
	require.NoError(t, SaveOrder(conn, order))

	got, err := GetOrder(conn, order.ID)
	require.NoError(t, err)
	require.Equal(t, "shipped", got.Status)
}
