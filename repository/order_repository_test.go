package repository_test

import (
	"context"
	"regexp"
	"testing"
	"time"

	"bookstore-api/models"
	"bookstore-api/repository"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
)

func TestCountSalesByBookID(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`SELECT count(*) FROM "order_items"`)).
		WithArgs(uint(10)).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(3))

	count, err := repo.CountSalesByBookID(context.Background(), 10)
	assert.NoError(t, err)
	assert.Equal(t, int64(3), count)
}

func TestStatsBySellerID_OnlyCompletedOrders(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN orders ON orders.id = order_items.order_id`)).
		WithArgs(uint(7), models.OrderStatusCompleted).
		WillReturnRows(sqlmock.NewRows([]string{"total_sales", "total_revenue"}).AddRow(12, 3400.0))

	stats, err := repo.StatsBySellerID(context.Background(), 7)
	assert.NoError(t, err)
	assert.Equal(t, int64(12), stats.TotalSales)
	assert.Equal(t, 3400.0, stats.TotalRevenue)
}

func TestRecentSalesBySellerID_JoinsBuyerName(t *testing.T) {
	gormDB, mock := setupMockDB(t)
	repo := repository.NewGormOrderRepository(gormDB)

	now := time.Now()
	rows := sqlmock.NewRows([]string{"order_id", "book_title", "price", "buyer_name", "created_at"}).
		AddRow(1, "Go Basics", 100.0, "Ada Lovelace", now)

	mock.ExpectQuery(regexp.QuoteMeta(`JOIN users ON users.id = orders.user_id`)).
		WithArgs(uint(7), models.OrderStatusCompleted, 10).
		WillReturnRows(rows)

	sales, err := repo.RecentSalesBySellerID(context.Background(), 7, 10)
	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, "Ada Lovelace", sales[0].BuyerName)
	assert.Equal(t, "Go Basics", sales[0].BookTitle)
}
