package services

import (
	"context"
	"net/http"
	"time"

	"bookstore-api/models"
	"bookstore-api/repository"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// LibraryListResponse wraps a page of owned books.
type LibraryListResponse struct {
	Items      []models.LibraryItem `json:"items"`
	Pagination Pagination           `json:"pagination"`
}

// ReadingProgress is position tracking for an owned book. Positions are not
// persisted yet; the endpoint exists so clients can wire against it.
type ReadingProgress struct {
	BookID      uint       `json:"bookId"`
	Progress    float64    `json:"progress"`
	LastReadAt  *time.Time `json:"lastReadAt"`
	CurrentPage int        `json:"currentPage"`
	TotalPages  int        `json:"totalPages"`
}

// LibraryService serves purchased books and their downloads.
type LibraryService struct {
	libraryRepo repository.LibraryRepository
	downloader  Downloader
	downloadTTL time.Duration
	logger      *zap.Logger
}

// NewLibraryService creates a new LibraryService.
func NewLibraryService(
	libraryRepo repository.LibraryRepository,
	downloader Downloader,
	downloadTTL time.Duration,
	logger *zap.Logger,
) *LibraryService {
	return &LibraryService{
		libraryRepo: libraryRepo,
		downloader:  downloader,
		downloadTTL: downloadTTL,
		logger:      logger,
	}
}

// ListLibrary returns the caller's entitlements, most recent purchase first.
func (s *LibraryService) ListLibrary(ctx context.Context, userID uint, page, limit int) (*LibraryListResponse, *ServiceError) {
	items, total, err := s.libraryRepo.FindByUserID(ctx, userID, page, limit)
	if err != nil {
		s.logger.Error("ListLibrary failed", zap.Error(err), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch library")
	}
	return &LibraryListResponse{
		Items:      items,
		Pagination: NewPagination(page, limit, total),
	}, nil
}

// Download issues a short-lived download grant for an owned book. Ownership
// and existence are indistinguishable from the outside: both miss as 404.
func (s *LibraryService) Download(ctx context.Context, userID, bookID uint) (*models.DownloadGrant, *ServiceError) {
	item, err := s.libraryRepo.FindWithBook(ctx, userID, bookID)
	if err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, NewServiceError(http.StatusNotFound, "Book not found in your library")
		}
		s.logger.Error("Download lookup failed", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to generate download link")
	}
	if item.Book == nil || item.Book.FileURL == "" {
		s.logger.Error("Download missing file", zap.Uint("book_id", bookID), zap.Uint("user_id", userID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to generate download link")
	}

	url, err := s.downloader.PresignDownload(ctx, item.Book.FileURL, s.downloadTTL)
	if err != nil {
		s.logger.Error("Download presign failed", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to generate download link")
	}

	return &models.DownloadGrant{
		DownloadURL: url,
		Title:       item.Book.Title,
		Format:      item.Book.FileFormat,
		ExpiresAt:   time.Now().Add(s.downloadTTL),
	}, nil
}

// GetProgress returns the reading position for an owned book.
func (s *LibraryService) GetProgress(ctx context.Context, userID, bookID uint) (*ReadingProgress, *ServiceError) {
	owned, err := s.libraryRepo.Has(ctx, userID, bookID)
	if err != nil {
		s.logger.Error("GetProgress failed", zap.Error(err), zap.Uint("book_id", bookID))
		return nil, NewServiceError(http.StatusInternalServerError, "Failed to fetch reading progress")
	}
	if !owned {
		return nil, NewServiceError(http.StatusNotFound, "Book not found in your library")
	}
	return &ReadingProgress{BookID: bookID, TotalPages: 100}, nil
}
