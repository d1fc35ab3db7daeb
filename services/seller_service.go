package services

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"bookstore-api/models"
	"bookstore-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// CreateBookRequest is the payload for listing a new book.
type CreateBookRequest struct {
	Title         string   `json:"title" binding:"required"`
	Description   string   `json:"description"`
	Author        string   `json:"author" binding:"required"`
	CategoryID    uint     `json:"categoryId" binding:"required"`
	Price         float64  `json:"price" binding:"required"`
	OriginalPrice *float64 `json:"originalPrice"`
	FileType      string   `json:"fileType" binding:"required"`
	FileFormat    string   `json:"fileFormat" binding:"required"`
	Duration      int      `json:"duration"`
}

// UpdateBookRequest is a partial book update. Pointer fields distinguish
// "absent" from zero values.
type UpdateBookRequest struct {
	Title         *string  `json:"title"`
	Description   *string  `json:"description"`
	Author        *string  `json:"author"`
	CategoryID    *uint    `json:"categoryId"`
	Price         *float64 `json:"price"`
	OriginalPrice *float64 `json:"originalPrice"`
}

// UpdateStatusRequest flips a book between draft and published.
type UpdateStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

// SellerDashboard is the storefront overview for a seller.
type SellerDashboard struct {
	Stats        SellerDashboardStats    `json:"stats"`
	RecentOrders []repository.SellerSale `json:"recentOrders"`
}

type SellerDashboardStats struct {
	TotalBooks   int64   `json:"totalBooks"`
	TotalSales   int64   `json:"totalSales"`
	TotalRevenue float64 `json:"totalRevenue"`
}

const recentSalesLimit = 10

// SellerService manages a seller's listings and sales overview.
type SellerService struct {
	bookRepo     repository.BookRepository
	categoryRepo repository.CategoryRepository
	orderRepo    repository.OrderRepository
	cache        CacheInvalidator
	logger       *zap.Logger
}

// NewSellerService creates a new SellerService.
func NewSellerService(
	bookRepo repository.BookRepository,
	categoryRepo repository.CategoryRepository,
	orderRepo repository.OrderRepository,
	cache CacheInvalidator,
	logger *zap.Logger,
) *SellerService {
	return &SellerService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		orderRepo:    orderRepo,
		cache:        cache,
		logger:       logger,
	}
}

// Dashboard returns the seller's totals plus their latest completed sales.
func (s *SellerService) Dashboard(ctx context.Context, sellerID uint) (*SellerDashboard, *ServiceError) {
	totalBooks, err := s.bookRepo.CountBySellerID(ctx, sellerID)
	if err != nil {
		s.logger.Error("Dashboard book count failed", zap.Error(err), zap.Uint("seller_id", sellerID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	stats, err := s.orderRepo.StatsBySellerID(ctx, sellerID)
	if err != nil {
		s.logger.Error("Dashboard stats failed", zap.Error(err), zap.Uint("seller_id", sellerID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	recent, err := s.orderRepo.RecentSalesBySellerID(ctx, sellerID, recentSalesLimit)
	if err != nil {
		s.logger.Error("Dashboard recent sales failed", zap.Error(err), zap.Uint("seller_id", sellerID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch dashboard data")
	}

	return &SellerDashboard{
		Stats: SellerDashboardStats{
			TotalBooks:   totalBooks,
			TotalSales:   stats.TotalSales,
			TotalRevenue: stats.TotalRevenue,
		},
		RecentOrders: recent,
	}, nil
}

// ListBooks returns the seller's own books in every status, newest first.
func (s *SellerService) ListBooks(ctx context.Context, sellerID uint, page, limit int) (*BookListResponse, *ServiceError) {
	books, total, err := s.bookRepo.FindBySellerID(ctx, sellerID, page, limit)
	if err != nil {
		s.logger.Error("ListBooks failed", zap.Error(err), zap.Uint("seller_id", sellerID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch books")
	}
	return &BookListResponse{
		Books:      books,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// CreateBook lists a new book as a draft. File and cover locations are
// derived object keys; uploads happen out of band against those keys.
func (s *SellerService) CreateBook(ctx context.Context, sellerID uint, req CreateBookRequest) (*models.Book, *ServiceError) {
	if req.Price <= 0 {
		return nil, NewServiceError(http.StatusBadRequest, "Price must be positive")
	}
	if req.OriginalPrice != nil && *req.OriginalPrice <= 0 {
		return nil, NewServiceError(http.StatusBadRequest, "Original price must be positive")
	}
	if !models.ValidFileType(req.FileType) {
		return nil, NewServiceError(http.StatusBadRequest, `File type must be "ebook" or "audiobook"`)
	}
	if req.Duration < 0 {
		return nil, NewServiceError(http.StatusBadRequest, "Duration must be positive")
	}

	exists, err := s.categoryRepo.Exists(ctx, req.CategoryID)
	if err != nil {
		s.logger.Error("CreateBook category check failed", zap.Error(err), zap.Uint("category_id", req.CategoryID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to create book")
	}
	if !exists {
		return nil, NewServiceError(http.StatusBadRequest, "Valid category is required")
	}

	now := time.Now().UnixMilli()
	book := &models.Book{
		Title:         req.Title,
		Description:   req.Description,
		Author:        req.Author,
		CategoryID:    req.CategoryID,
		SellerID:      sellerID,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		CoverImageURL: fmt.Sprintf("covers/%d/%d.jpg", sellerID, now),
		FileURL:       fmt.Sprintf("books/%d/%d.%s", sellerID, now, req.FileFormat),
		FileType:      req.FileType,
		FileFormat:    req.FileFormat,
		Duration:      req.Duration,
		Status:        models.BookStatusDraft,
	}
	if err := s.bookRepo.Create(ctx, book); err != nil {
		s.logger.Error("CreateBook failed", zap.Error(err), zap.Uint("seller_id", sellerID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to create book")
	}

	s.logger.Info("Book created",
		zap.Uint("book_id", book.ID), zap.Uint("seller_id", sellerID), zap.String("title", book.Title))
	return book, nil
}

// UpdateBook applies a partial update to one of the seller's books.
func (s *SellerService) UpdateBook(ctx context.Context, sellerID, bookID uint, req UpdateBookRequest) (*models.Book, *ServiceError) {
	if _, svcErr := s.findOwned(ctx, sellerID, bookID); svcErr != nil {
		return nil, svcErr
	}

	fields := map[string]interface{}{}
	if req.Title != nil {
		fields["title"] = *req.Title
	}
	if req.Description != nil {
		fields["description"] = *req.Description
	}
	if req.Author != nil {
		fields["author"] = *req.Author
	}
	if req.CategoryID != nil {
		exists, err := s.categoryRepo.Exists(ctx, *req.CategoryID)
		if err != nil {
			s.logger.Error("UpdateBook category check failed", zap.Error(err), zap.Uint("category_id", *req.CategoryID))
			return nil, NewServiceError(http.StatusInternalServerError, "Failed to update book")
		}
		if !exists {
			return nil, NewServiceError(http.StatusBadRequest, "Valid category is required")
		}
		fields["category_id"] = *req.CategoryID
	}
	if req.Price != nil {
		if *req.Price <= 0 {
			return nil, NewServiceError(http.StatusBadRequest, "Price must be positive")
		}
		fields["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		if *req.OriginalPrice <= 0 {
			return nil, NewServiceError(http.StatusBadRequest, "Original price must be positive")
		}
		fields["original_price"] = *req.OriginalPrice
	}
	if len(fields) == 0 {
		return nil, NewServiceError(http.StatusBadRequest, "No valid fields to update")
	}

	if err := s.bookRepo.Updates(ctx, bookID, fields); err != nil {
		s.logger.Error("UpdateBook failed", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to update book")
	}
	s.invalidate(ctx, bookID)

	book, err := s.bookRepo.FindByIDAndSellerID(ctx, bookID, sellerID)
	if err != nil {
		s.logger.Error("UpdateBook reload failed", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to update book")
	}
	return book, nil
}

// UpdateStatus publishes or unpublishes one of the seller's books.
func (s *SellerService) UpdateStatus(ctx context.Context, sellerID, bookID uint, status string) *ServiceError {
	if !models.ValidBookStatus(status) {
		return NewServiceError(http.StatusBadRequest, `Invalid status. Must be "draft" or "published"`)
	}
	if _, svcErr := s.findOwned(ctx, sellerID, bookID); svcErr != nil {
		return svcErr
	}
	if err := s.bookRepo.Updates(ctx, bookID, map[string]interface{}{"status": status}); err != nil {
		s.logger.Error("UpdateStatus failed", zap.Error(err), zap.Uint("book_id", bookID))
		return NewServiceError(http.StatusInternalServerError, "Failed to update book status")
	}
	s.invalidate(ctx, bookID)
	return nil
}

// DeleteBook removes an unsold book. Books with any recorded sale line are
// never deleted, otherwise captured order history would dangle.
func (s *SellerService) DeleteBook(ctx context.Context, sellerID, bookID uint) *ServiceError {
	if _, svcErr := s.findOwned(ctx, sellerID, bookID); svcErr != nil {
		return svcErr
	}

	sales, err := s.orderRepo.CountSalesByBookID(ctx, bookID)
	if err != nil {
		s.logger.Error("DeleteBook sales check failed", zap.Error(err), zap.Uint("book_id", bookID))
		return NewServiceError(http.StatusInternalServerError, "Failed to delete book")
	}
	if sales > 0 {
		return NewServiceError(http.StatusConflict,
			"Cannot delete book that has been sold. You can unpublish it instead.")
	}

	if err := s.bookRepo.Delete(ctx, bookID); err != nil {
		s.logger.Error("DeleteBook failed", zap.Error(err), zap.Uint("book_id", bookID))
		return NewServiceError(http.StatusInternalServerError, "Failed to delete book")
	}
	s.invalidate(ctx, bookID)
	s.logger.Info("Book deleted", zap.Uint("book_id", bookID), zap.Uint("seller_id", sellerID))
	return nil
}

func (s *SellerService) findOwned(ctx context.Context, sellerID, bookID uint) (*models.Book, *ServiceError) {
	book, err := s.bookRepo.FindByIDAndSellerID(ctx, bookID, sellerID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewServiceError(http.StatusNotFound, "Book not found or access denied")
		}
		s.logger.Error("Seller book lookup failed", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch book")
	}
	return book, nil
}

func (s *SellerService) invalidate(ctx context.Context, bookID uint) {
	if err := s.cache.Invalidate(ctx); err != nil {
		s.logger.Warn("Catalog cache invalidation failed",
			zap.Error(err), zap.Uint("book_id", bookID))
	}
	s.cache.DropBook(bookID)
}
