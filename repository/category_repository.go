package repository

import (
	"context"

	"bookstore-api/models"

	"gorm.io/gorm"
)

// CategoryRepository defines data-access operations for the catalog taxonomy.
type CategoryRepository interface {
	ListWithCounts(ctx context.Context) ([]models.CategoryWithCount, error)
	FindWithCount(ctx context.Context, id uint) (*models.CategoryWithCount, error)
	Exists(ctx context.Context, id uint) (bool, error)
}

// GormCategoryRepository implements CategoryRepository using GORM.
type GormCategoryRepository struct {
	db *gorm.DB
}

// NewGormCategoryRepository creates a new GormCategoryRepository.
func NewGormCategoryRepository(db *gorm.DB) CategoryRepository {
	return &GormCategoryRepository{db: db}
}

// Published book counts ride along via a LEFT JOIN so empty categories still
// show up with a zero count.
const categoryCountSelect = "categories.*, COUNT(books.id) AS book_count"

func (r *GormCategoryRepository) ListWithCounts(ctx context.Context) ([]models.CategoryWithCount, error) {
	var categories []models.CategoryWithCount

	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select(categoryCountSelect).
		Joins("LEFT JOIN books ON books.category_id = categories.id AND books.status = ?", models.BookStatusPublished).
		Group("categories.id").
		Order("categories.name").
		Find(&categories).Error
	if err != nil {
		return nil, err
	}
	return categories, nil
}

func (r *GormCategoryRepository) FindWithCount(ctx context.Context, id uint) (*models.CategoryWithCount, error) {
	var category models.CategoryWithCount

	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Select(categoryCountSelect).
		Joins("LEFT JOIN books ON books.category_id = categories.id AND books.status = ?", models.BookStatusPublished).
		Where("categories.id = ?", id).
		Group("categories.id").
		First(&category).Error
	if err != nil {
		return nil, err
	}
	return &category, nil
}

func (r *GormCategoryRepository) Exists(ctx context.Context, id uint) (bool, error) {
	var count int64
	err := r.db.WithContext(ctx).
		Model(&models.Category{}).
		Where("id = ?", id).
		Count(&count).Error
	return count > 0, err
}
