package services

import (
	"context"
	"fmt"
	"net/http"

	"bookstore-api/models"
	"bookstore-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

const featuredBooksLimit = 8

// BookListResponse is the catalog listing payload.
type BookListResponse struct {
	Books      []models.Book `json:"books"`
	Pagination Pagination    `json:"pagination"`
}

// BookDetail is a catalog item with the caller's ownership flag.
type BookDetail struct {
	models.Book
	IsOwned bool `json:"isOwned"`
}

// BookService serves the public catalog.
type BookService struct {
	bookRepo     repository.BookRepository
	categoryRepo repository.CategoryRepository
	libraryRepo  repository.LibraryRepository
	cache        *CacheManager
	logger       *zap.Logger
}

// NewBookService creates a new BookService.
func NewBookService(
	bookRepo repository.BookRepository,
	categoryRepo repository.CategoryRepository,
	libraryRepo repository.LibraryRepository,
	cache *CacheManager,
	logger *zap.Logger,
) *BookService {
	return &BookService{
		bookRepo:     bookRepo,
		categoryRepo: categoryRepo,
		libraryRepo:  libraryRepo,
		cache:        cache,
		logger:       logger,
	}
}

// ListBooks returns published books matching the filters, served through the
// cache when one is configured.
func (s *BookService) ListBooks(ctx context.Context, params repository.BookSearchParams) (*BookListResponse, *ServiceError) {
	cacheKey := listCacheKey(params)
	if cached, ok := s.cache.GetBookList(ctx, cacheKey); ok {
		return cached, nil
	}

	books, total, err := s.bookRepo.Search(ctx, params)
	if err != nil {
		s.logger.Error("ListBooks failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch books")
	}

	response := &BookListResponse{
		Books:      books,
		Pagination: NewPagination(params.Page, params.Limit, total),
	}
	s.cache.SetBookListAsync(cacheKey, response)
	return response, nil
}

// FeaturedBooks returns the most recent featured published books.
func (s *BookService) FeaturedBooks(ctx context.Context) ([]models.Book, *ServiceError) {
	books, err := s.bookRepo.FindFeatured(ctx, featuredBooksLimit)
	if err != nil {
		s.logger.Error("FeaturedBooks failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch featured books")
	}
	return books, nil
}

// GetBook returns a published book with the caller's ownership flag.
// callerID is zero for anonymous requests.
func (s *BookService) GetBook(ctx context.Context, id, callerID uint) (*BookDetail, *ServiceError) {
	book, ok := s.cache.GetBook(ctx, id)
	if !ok {
		var err error
		book, err = s.bookRepo.FindPublishedByID(ctx, id)
		if err != nil {
			if err == gorm.ErrRecordNotFound {
				return nil, NewServiceError(http.StatusNotFound, "Book not found")
			}
			s.logger.Error("GetBook failed", zap.Error(err), zap.Uint("book_id", id))
			return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch book")
		}
		s.cache.SetBookAsync(book)
	}

	detail := &BookDetail{Book: *book}
	if callerID != 0 {
		owned, err := s.libraryRepo.Has(ctx, callerID, id)
		if err != nil {
			s.logger.Warn("GetBook: ownership lookup failed", zap.Error(err), zap.Uint("book_id", id))
		}
		detail.IsOwned = owned
	}
	return detail, nil
}

// ListCategories returns the taxonomy with published book counts.
func (s *BookService) ListCategories(ctx context.Context) ([]models.CategoryWithCount, *ServiceError) {
	categories, err := s.categoryRepo.ListWithCounts(ctx)
	if err != nil {
		s.logger.Error("ListCategories failed", zap.Error(err))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch categories")
	}
	return categories, nil
}

// GetCategory returns one category with its published book count.
func (s *BookService) GetCategory(ctx context.Context, id uint) (*models.CategoryWithCount, *ServiceError) {
	category, err := s.categoryRepo.FindWithCount(ctx, id)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewServiceError(http.StatusNotFound, "Category not found")
		}
		s.logger.Error("GetCategory failed", zap.Error(err), zap.Uint("category_id", id))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch category")
	}
	return category, nil
}

func listCacheKey(p repository.BookSearchParams) string {
	minPrice, maxPrice := "", ""
	if p.MinPrice != nil {
		minPrice = fmt.Sprintf("%.2f", *p.MinPrice)
	}
	if p.MaxPrice != nil {
		maxPrice = fmt.Sprintf("%.2f", *p.MaxPrice)
	}
	return fmt.Sprintf("p%d:l%d:q=%s:c=%s:min=%s:max=%s:s=%s:%s",
		p.Page, p.Limit, p.Query, p.Category, minPrice, maxPrice, p.SortBy, p.SortOrder)
}
