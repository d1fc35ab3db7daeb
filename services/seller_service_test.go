package services_test

import (
	"context"
	"net/http"
	"testing"

	"bookstore-api/models"
	"bookstore-api/repository"
	"bookstore-api/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newSellerService(bookRepo *mockBookRepo, categoryRepo *mockCategoryRepo, orderRepo *mockOrderRepo) *services.SellerService {
	logger, _ := zap.NewDevelopment()
	return services.NewSellerService(bookRepo, categoryRepo, orderRepo, services.NewCacheManager(nil), logger)
}

func TestCreateBook_DefaultsToDraft(t *testing.T) {
	bookRepo := &mockBookRepo{}
	svc := newSellerService(bookRepo, &mockCategoryRepo{exists: true}, &mockOrderRepo{})

	book, svcErr := svc.CreateBook(context.Background(), 7, services.CreateBookRequest{
		Title:      "Go Basics",
		Author:     "Ada Lovelace",
		CategoryID: 3,
		Price:      199,
		FileType:   models.FileTypeEbook,
		FileFormat: "epub",
	})

	assert.Nil(t, svcErr)
	assert.Equal(t, models.BookStatusDraft, book.Status)
	assert.Equal(t, uint(7), book.SellerID)
	assert.NotEmpty(t, book.FileURL)
	assert.NotEmpty(t, book.CoverImageURL)
}

func TestCreateBook_RejectsUnknownCategory(t *testing.T) {
	svc := newSellerService(&mockBookRepo{}, &mockCategoryRepo{exists: false}, &mockOrderRepo{})

	book, svcErr := svc.CreateBook(context.Background(), 7, services.CreateBookRequest{
		Title: "X", Author: "Y", CategoryID: 99, Price: 10, FileType: models.FileTypeEbook, FileFormat: "epub",
	})

	assert.Nil(t, book)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestCreateBook_RejectsBadFileType(t *testing.T) {
	svc := newSellerService(&mockBookRepo{}, &mockCategoryRepo{exists: true}, &mockOrderRepo{})

	book, svcErr := svc.CreateBook(context.Background(), 7, services.CreateBookRequest{
		Title: "X", Author: "Y", CategoryID: 3, Price: 10, FileType: "vinyl", FileFormat: "epub",
	})

	assert.Nil(t, book)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestUpdateBook_EmptyPatchRejected(t *testing.T) {
	owned := &models.Book{ID: 10, SellerID: 7}
	svc := newSellerService(&mockBookRepo{ownedBook: owned}, &mockCategoryRepo{exists: true}, &mockOrderRepo{})

	book, svcErr := svc.UpdateBook(context.Background(), 7, 10, services.UpdateBookRequest{})

	assert.Nil(t, book)
	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
	assert.Equal(t, "No valid fields to update", svcErr.Message)
}

func TestUpdateBook_OwnershipScoped(t *testing.T) {
	title := "New Title"
	svc := newSellerService(&mockBookRepo{ownedErr: gorm.ErrRecordNotFound}, &mockCategoryRepo{exists: true}, &mockOrderRepo{})

	book, svcErr := svc.UpdateBook(context.Background(), 7, 10, services.UpdateBookRequest{Title: &title})

	assert.Nil(t, book)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
}

func TestUpdateStatus_RejectsUnknownStatus(t *testing.T) {
	owned := &models.Book{ID: 10, SellerID: 7}
	svc := newSellerService(&mockBookRepo{ownedBook: owned}, &mockCategoryRepo{}, &mockOrderRepo{})

	svcErr := svc.UpdateStatus(context.Background(), 7, 10, "archived")

	assert.Equal(t, http.StatusBadRequest, svcErr.StatusCode)
}

func TestUpdateStatus_Publish(t *testing.T) {
	owned := &models.Book{ID: 10, SellerID: 7, Status: models.BookStatusDraft}
	bookRepo := &mockBookRepo{ownedBook: owned}
	svc := newSellerService(bookRepo, &mockCategoryRepo{}, &mockOrderRepo{})

	svcErr := svc.UpdateStatus(context.Background(), 7, 10, models.BookStatusPublished)

	assert.Nil(t, svcErr)
	assert.Equal(t, models.BookStatusPublished, bookRepo.updatedFields["status"])
}

// A status change bumps the list-cache version exactly once and drops the
// book's detail entry.
func TestUpdateStatus_BumpsListCacheVersionOnce(t *testing.T) {
	owned := &models.Book{ID: 10, SellerID: 7, Status: models.BookStatusDraft}
	cache := &mockCache{}
	logger, _ := zap.NewDevelopment()
	svc := services.NewSellerService(&mockBookRepo{ownedBook: owned}, &mockCategoryRepo{}, &mockOrderRepo{}, cache, logger)

	svcErr := svc.UpdateStatus(context.Background(), 7, 10, models.BookStatusPublished)

	assert.Nil(t, svcErr)
	assert.Equal(t, 1, cache.invalidations)
	assert.Equal(t, []uint{10}, cache.dropped)
}

func TestDeleteBook_SoldBookConflicts(t *testing.T) {
	owned := &models.Book{ID: 10, SellerID: 7}
	bookRepo := &mockBookRepo{ownedBook: owned}
	svc := newSellerService(bookRepo, &mockCategoryRepo{}, &mockOrderRepo{salesCount: 3})

	svcErr := svc.DeleteBook(context.Background(), 7, 10)

	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Contains(t, svcErr.Message, "unpublish")
	assert.Zero(t, bookRepo.deletedID)
}

func TestDeleteBook_UnsoldSucceeds(t *testing.T) {
	owned := &models.Book{ID: 10, SellerID: 7}
	bookRepo := &mockBookRepo{ownedBook: owned}
	svc := newSellerService(bookRepo, &mockCategoryRepo{}, &mockOrderRepo{salesCount: 0})

	svcErr := svc.DeleteBook(context.Background(), 7, 10)

	assert.Nil(t, svcErr)
	assert.Equal(t, uint(10), bookRepo.deletedID)
}

func TestDashboard_AggregatesStats(t *testing.T) {
	orderRepo := &mockOrderRepo{
		stats:  &repository.SellerStats{TotalSales: 12, TotalRevenue: 3400},
		recent: []repository.SellerSale{{OrderID: 1, BookTitle: "Go Basics", Price: 100, BuyerName: "Ada Lovelace"}},
	}
	svc := newSellerService(&mockBookRepo{countBySeller: 5}, &mockCategoryRepo{}, orderRepo)

	dashboard, svcErr := svc.Dashboard(context.Background(), 7)

	assert.Nil(t, svcErr)
	assert.Equal(t, int64(5), dashboard.Stats.TotalBooks)
	assert.Equal(t, int64(12), dashboard.Stats.TotalSales)
	assert.Equal(t, 3400.0, dashboard.Stats.TotalRevenue)
	assert.Len(t, dashboard.RecentOrders, 1)
}
