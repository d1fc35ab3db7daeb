package services_test

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

func newCartService(cartRepo *mockCartRepo, bookRepo *mockBookRepo, libraryRepo *mockLibraryRepo) *services.CartService {
	logger, _ := zap.NewDevelopment()
	return services.NewCartService(cartRepo, bookRepo, libraryRepo, logger)
}

func TestViewCart_UnpublishedFlaggedAndExcludedFromTotal(t *testing.T) {
	unpublished := &models.Book{ID: 20, Title: "Pulled Title", Price: 200, Status: models.BookStatusDraft}
	cartRepo := &mockCartRepo{items: []models.CartItem{
		{ID: 1, UserID: 5, BookID: 10, Book: publishedBook(10, "Go Basics", 100)},
		{ID: 2, UserID: 5, BookID: 20, Book: unpublished},
	}}
	svc := newCartService(cartRepo, &mockBookRepo{}, &mockLibraryRepo{})

	view, svcErr := svc.ViewCart(context.Background(), 5)

	assert.Nil(t, svcErr)
	assert.Equal(t, 2, view.ItemCount)
	assert.True(t, view.Items[0].Purchasable)
	assert.False(t, view.Items[1].Purchasable)
	assert.Equal(t, 100.0, view.TotalAmount)
}

func TestAddToCart_Success(t *testing.T) {
	book := publishedBook(10, "Go Basics", 100)
	cartRepo := &mockCartRepo{}
	svc := newCartService(cartRepo, &mockBookRepo{publishedBook: book}, &mockLibraryRepo{})

	item, svcErr := svc.AddToCart(context.Background(), 5, 10)

	assert.Nil(t, svcErr)
	assert.Equal(t, uint(5), item.UserID)
	assert.Equal(t, uint(10), item.BookID)
	assert.Equal(t, book, item.Book)
	assert.NotNil(t, cartRepo.createdItem)
}

func TestAddToCart_UnpublishedLooksMissing(t *testing.T) {
	svc := newCartService(&mockCartRepo{}, &mockBookRepo{publishedErr: gorm.ErrRecordNotFound}, &mockLibraryRepo{})

	item, svcErr := svc.AddToCart(context.Background(), 5, 10)

	assert.Nil(t, item)
	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Book not found or not available", svcErr.Message)
}

func TestAddToCart_AlreadyOwned(t *testing.T) {
	book := publishedBook(10, "Go Basics", 100)
	svc := newCartService(&mockCartRepo{}, &mockBookRepo{publishedBook: book}, &mockLibraryRepo{has: true})

	item, svcErr := svc.AddToCart(context.Background(), 5, 10)

	assert.Nil(t, item)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "You already own this book", svcErr.Message)
}

func TestAddToCart_Duplicate(t *testing.T) {
	book := publishedBook(10, "Go Basics", 100)
	svc := newCartService(&mockCartRepo{exists: true}, &mockBookRepo{publishedBook: book}, &mockLibraryRepo{})

	item, svcErr := svc.AddToCart(context.Background(), 5, 10)

	assert.Nil(t, item)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "Book is already in your cart", svcErr.Message)
}

func TestAddToCart_RaceLosesAsDuplicate(t *testing.T) {
	book := publishedBook(10, "Go Basics", 100)
	cartRepo := &mockCartRepo{createErr: errors.New(`duplicate key value violates unique constraint "idx_cart_user_book"`)}
	svc := newCartService(cartRepo, &mockBookRepo{publishedBook: book}, &mockLibraryRepo{})

	item, svcErr := svc.AddToCart(context.Background(), 5, 10)

	assert.Nil(t, item)
	assert.Equal(t, http.StatusConflict, svcErr.StatusCode)
	assert.Equal(t, "Book is already in your cart", svcErr.Message)
}

func TestRemoveFromCart_SecondDeleteNotFound(t *testing.T) {
	svc := newCartService(&mockCartRepo{deleteRows: 0}, &mockBookRepo{}, &mockLibraryRepo{})

	svcErr := svc.RemoveFromCart(context.Background(), 5, 1)

	assert.Equal(t, http.StatusNotFound, svcErr.StatusCode)
	assert.Equal(t, "Cart item not found", svcErr.Message)
}

func TestRemoveFromCart_Success(t *testing.T) {
	svc := newCartService(&mockCartRepo{deleteRows: 1}, &mockBookRepo{}, &mockLibraryRepo{})

	assert.Nil(t, svc.RemoveFromCart(context.Background(), 5, 1))
}

func TestClearCart_EmptyCartSucceeds(t *testing.T) {
	cartRepo := &mockCartRepo{}
	svc := newCartService(cartRepo, &mockBookRepo{}, &mockLibraryRepo{})

	assert.Nil(t, svc.ClearCart(context.Background(), 5))
	assert.Equal(t, uint(5), cartRepo.clearedUser)
}
