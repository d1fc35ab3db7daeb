package repository

import (
	"context"
	"fmt"

	"bookstore-api/models"

	"gorm.io/gorm"
)

// BookSearchParams are the catalog browse filters.
type BookSearchParams struct {
	Query     string
	Category  string
	MinPrice  *float64
	MaxPrice  *float64
	SortBy    string
	SortOrder string
	Page      int
	Limit     int
}

// Sortable columns for the catalog listing. Anything else falls back to
// created_at to keep ORDER BY injection-safe.
var bookSortColumns = map[string]string{
	"title":      "books.title",
	"price":      "books.price",
	"rating":     "books.rating",
	"created_at": "books.created_at",
}

// BookRepository defines data-access operations for catalog items.
type BookRepository interface {
	Search(ctx context.Context, params BookSearchParams) ([]models.Book, int64, error)
	FindFeatured(ctx context.Context, limit int) ([]models.Book, error)
	FindPublishedByID(ctx context.Context, id uint) (*models.Book, error)
	FindByIDAndSellerID(ctx context.Context, id, sellerID uint) (*models.Book, error)
	FindBySellerID(ctx context.Context, sellerID uint, page, limit int) ([]models.Book, int64, error)
	CountBySellerID(ctx context.Context, sellerID uint) (int64, error)
	Create(ctx context.Context, book *models.Book) error
	Updates(ctx context.Context, id uint, fields map[string]interface{}) error
	Delete(ctx context.Context, id uint) error
	IncrementDownloads(ctx context.Context, id uint) error
}

// GormBookRepository implements BookRepository using GORM.
type GormBookRepository struct {
	db *gorm.DB
}

// NewGormBookRepository creates a new GormBookRepository.
func NewGormBookRepository(db *gorm.DB) BookRepository {
	return &GormBookRepository{db: db}
}

// Search returns published books matching the filters plus the total count.
func (r *GormBookRepository) Search(ctx context.Context, params BookSearchParams) ([]models.Book, int64, error) {
	var books []models.Book
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("books.status = ?", models.BookStatusPublished)

	if params.Query != "" {
		like := "%" + params.Query + "%"
		query = query.Where("books.title ILIKE ? OR books.author ILIKE ? OR books.description ILIKE ?", like, like, like)
	}
	if params.Category != "" {
		query = query.Joins("JOIN categories ON categories.id = books.category_id").
			Where("categories.name_en = ?", params.Category)
	}
	if params.MinPrice != nil {
		query = query.Where("books.price >= ?", *params.MinPrice)
	}
	if params.MaxPrice != nil {
		query = query.Where("books.price <= ?", *params.MaxPrice)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	sortCol, ok := bookSortColumns[params.SortBy]
	if !ok {
		sortCol = "books.created_at"
	}
	direction := "DESC"
	if params.SortOrder == "asc" {
		direction = "ASC"
	}

	offset := (params.Page - 1) * params.Limit
	err := query.
		Preload("Category").
		Preload("Seller").
		Order(fmt.Sprintf("%s %s", sortCol, direction)).
		Offset(offset).
		Limit(params.Limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}

	return books, total, nil
}

func (r *GormBookRepository) FindFeatured(ctx context.Context, limit int) ([]models.Book, error) {
	var books []models.Book
	err := r.db.WithContext(ctx).
		Preload("Category").
		Where("status = ? AND is_featured = ?", models.BookStatusPublished, true).
		Order("created_at DESC").
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, err
	}
	return books, nil
}

func (r *GormBookRepository) FindPublishedByID(ctx context.Context, id uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Preload("Category").
		Preload("Seller").
		Where("id = ? AND status = ?", id, models.BookStatusPublished).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) FindByIDAndSellerID(ctx context.Context, id, sellerID uint) (*models.Book, error) {
	var book models.Book
	err := r.db.WithContext(ctx).
		Where("id = ? AND seller_id = ?", id, sellerID).
		First(&book).Error
	if err != nil {
		return nil, err
	}
	return &book, nil
}

func (r *GormBookRepository) FindBySellerID(ctx context.Context, sellerID uint, page, limit int) ([]models.Book, int64, error) {
	var books []models.Book
	var total int64

	query := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("seller_id = ?", sellerID)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * limit
	err := query.
		Preload("Category").
		Order("created_at DESC").
		Offset(offset).
		Limit(limit).
		Find(&books).Error
	if err != nil {
		return nil, 0, err
	}
	return books, total, nil
}

func (r *GormBookRepository) CountBySellerID(ctx context.Context, sellerID uint) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("seller_id = ?", sellerID).
		Count(&count).Error
	return count, err
}

func (r *GormBookRepository) Create(ctx context.Context, book *models.Book) error {
	return r.db.WithContext(ctx).Create(book).Error
}

func (r *GormBookRepository) Updates(ctx context.Context, id uint, fields map[string]interface{}) error {
	return r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		Updates(fields).Error
}

func (r *GormBookRepository) Delete(ctx context.Context, id uint) error {
	// Cart entries referencing the book go with it; entitlement and order
	// references are guarded at the service layer before this is reached.
	if err := r.db.WithContext(ctx).
		Where("book_id = ?", id).
		Delete(&models.CartItem{}).Error; err != nil {
		return err
	}
	return r.db.WithContext(ctx).Delete(&models.Book{}, "id = ?", id).Error
}

// IncrementDownloads bumps the download counter in SQL so concurrent
// purchases cannot lose updates.
func (r *GormBookRepository) IncrementDownloads(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).
		Model(&models.Book{}).
		Where("id = ?", id).
		UpdateColumn("downloads_count", gorm.Expr("downloads_count + ?", 1)).Error
}
