package controllers

import (
	"net/http"
	"strconv"

	"bookstore-api/middleware"
	"bookstore-api/repository"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// BookController handles the public catalog surface.
type BookController struct {
	bookService *services.BookService
}

// NewBookController creates a new BookController.
func NewBookController(svc *services.BookService) *BookController {
	return &BookController{bookService: svc}
}

// ListBooks handles GET /api/books
func (bc *BookController) ListBooks(c *gin.Context) {
	page, limit := parsePaginationParams(c)
	params := repository.BookSearchParams{
		Query:     c.Query("q"),
		Category:  c.Query("category"),
		SortBy:    c.DefaultQuery("sortBy", "created_at"),
		SortOrder: c.DefaultQuery("sortOrder", "desc"),
		Page:      page,
		Limit:     limit,
	}
	if v, err := strconv.ParseFloat(c.Query("minPrice"), 64); err == nil && v >= 0 {
		params.MinPrice = &v
	}
	if v, err := strconv.ParseFloat(c.Query("maxPrice"), 64); err == nil && v >= 0 {
		params.MaxPrice = &v
	}

	result, svcErr := bc.bookService.ListBooks(c.Request.Context(), params)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// FeaturedBooks handles GET /api/books/featured
func (bc *BookController) FeaturedBooks(c *gin.Context) {
	books, svcErr := bc.bookService.FeaturedBooks(c.Request.Context())
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"books": books})
}

// GetBook handles GET /api/books/:id. The route carries OptionalAuth so a
// signed-in caller gets an ownership flag on the detail.
func (bc *BookController) GetBook(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid book ID")
	if !ok {
		return
	}

	var callerID uint
	if p, err := middleware.GetPrincipal(c); err == nil {
		callerID = p.UserID
	}

	detail, svcErr := bc.bookService.GetBook(c.Request.Context(), id, callerID)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"book": detail})
}

// ListCategories handles GET /api/categories
func (bc *BookController) ListCategories(c *gin.Context) {
	categories, svcErr := bc.bookService.ListCategories(c.Request.Context())
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"categories": categories})
}

// GetCategory handles GET /api/categories/:id
func (bc *BookController) GetCategory(c *gin.Context) {
	id, ok := parseIDParam(c, "id", "Invalid category ID")
	if !ok {
		return
	}

	category, svcErr := bc.bookService.GetCategory(c.Request.Context(), id)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"category": category})
}
