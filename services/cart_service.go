package services

import (
	"context"
	"net/http"

	"bookstore-api/models"
	"bookstore-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CartService implements the cart ledger.
type CartService struct {
	cartRepo    repository.CartRepository
	bookRepo    repository.BookRepository
	libraryRepo repository.LibraryRepository
	logger      *zap.Logger
}

// NewCartService creates a new CartService.
func NewCartService(
	cartRepo repository.CartRepository,
	bookRepo repository.BookRepository,
	libraryRepo repository.LibraryRepository,
	logger *zap.Logger,
) *CartService {
	return &CartService{
		cartRepo:    cartRepo,
		bookRepo:    bookRepo,
		libraryRepo: libraryRepo,
		logger:      logger,
	}
}

// ViewCart returns the cart joined with current book snapshots. Entries whose
// book is no longer published stay visible but flagged un-purchasable, and
// only purchasable entries count toward the total.
func (s *CartService) ViewCart(ctx context.Context, userID uint) (*models.CartView, *ServiceError) {
	entries, err := s.cartRepo.FindByUserID(ctx, userID)
	if err != nil {
		s.logger.Error("ViewCart failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch cart")
	}

	view := &models.CartView{Items: make([]models.CartViewItem, 0, len(entries))}
	for _, entry := range entries {
		if entry.Book == nil {
			// Book row vanished under the entry; drop it from the view.
			continue
		}
		purchasable := entry.Book.Published()
		view.Items = append(view.Items, models.CartViewItem{
			CartItemID:  entry.ID,
			AddedAt:     entry.CreatedAt,
			Purchasable: purchasable,
			Book:        entry.Book,
		})
		if purchasable {
			view.TotalAmount += entry.Book.Price
		}
	}
	view.ItemCount = len(view.Items)
	return view, nil
}

// AddToCart inserts a cart entry for a published, not-yet-owned book.
func (s *CartService) AddToCart(ctx context.Context, userID, bookID uint) (*models.CartItem, *ServiceError) {
	book, err := s.bookRepo.FindPublishedByID(ctx, bookID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewServiceError(http.StatusNotFound, "Book not found or not available")
		}
		s.logger.Error("AddToCart: book lookup failed", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	owned, err := s.libraryRepo.Has(ctx, userID, bookID)
	if err != nil {
		s.logger.Error("AddToCart: ownership lookup failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to add item to cart")
	}
	if owned {
		return nil, NewServiceError(http.StatusConflict, "You already own this book")
	}

	inCart, err := s.cartRepo.Exists(ctx, userID, bookID)
	if err != nil {
		s.logger.Error("AddToCart: cart lookup failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to add item to cart")
	}
	if inCart {
		return nil, NewServiceError(http.StatusConflict, "Book is already in your cart")
	}

	item := &models.CartItem{UserID: userID, BookID: bookID}
	if err := s.cartRepo.Create(ctx, item); err != nil {
		// The unique index catches the race where two adds slip past the
		// existence check; the loser surfaces as already-in-cart.
		if isUniqueViolation(err) {
			return nil, NewServiceError(http.StatusConflict, "Book is already in your cart")
		}
		s.logger.Error("AddToCart: insert failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to add item to cart")
	}

	item.Book = book
	s.logger.Info("Added to cart",
		zap.Uint("user_id", userID),
		zap.Uint("book_id", bookID),
	)
	return item, nil
}

// RemoveFromCart deletes one entry, scoped to its owner.
func (s *CartService) RemoveFromCart(ctx context.Context, userID, cartItemID uint) *ServiceError {
	rows, err := s.cartRepo.DeleteByIDAndUserID(ctx, cartItemID, userID)
	if err != nil {
		s.logger.Error("RemoveFromCart failed", zap.Error(err), zap.Uint("user_id", userID))
		return NewServiceError(http.StatusInternalServerError, "Failed to remove item from cart")
	}
	if rows == 0 {
		return NewServiceError(http.StatusNotFound, "Cart item not found")
	}
	return nil
}

// ClearCart deletes every entry for the user. Clearing an empty cart succeeds.
func (s *CartService) ClearCart(ctx context.Context, userID uint) *ServiceError {
	if err := s.cartRepo.DeleteByUserID(ctx, userID); err != nil {
		s.logger.Error("ClearCart failed", zap.Error(err), zap.Uint("user_id", userID))
		return NewServiceError(http.StatusInternalServerError, "Failed to clear cart")
	}
	return nil
}
