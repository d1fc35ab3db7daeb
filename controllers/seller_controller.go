package controllers

import (
	"net/http"

	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// SellerController handles the seller storefront surface.
type SellerController struct {
	sellerService *services.SellerService
}

// NewSellerController creates a new SellerController.
func NewSellerController(svc *services.SellerService) *SellerController {
	return &SellerController{sellerService: svc}
}

// Dashboard handles GET /api/seller/dashboard
func (sc *SellerController) Dashboard(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	dashboard, svcErr := sc.sellerService.Dashboard(c.Request.Context(), p.UserID)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, dashboard)
}

// ListBooks handles GET /api/seller/books
func (sc *SellerController) ListBooks(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	page, limit := parsePaginationParams(c)
	result, svcErr := sc.sellerService.ListBooks(c.Request.Context(), p.UserID, page, limit)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// CreateBook handles POST /api/seller/books
func (sc *SellerController) CreateBook(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req services.CreateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	book, svcErr := sc.sellerService.CreateBook(c.Request.Context(), p.UserID, req)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Book created successfully", "book": book})
}

// UpdateBook handles PUT /api/seller/books/:id
func (sc *SellerController) UpdateBook(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id", "Invalid book ID")
	if !ok {
		return
	}

	var req services.UpdateBookRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	book, svcErr := sc.sellerService.UpdateBook(c.Request.Context(), p.UserID, id, req)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book updated successfully", "book": book})
}

// UpdateStatus handles PATCH /api/seller/books/:id/status
func (sc *SellerController) UpdateStatus(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id", "Invalid book ID")
	if !ok {
		return
	}

	var req services.UpdateStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	if svcErr := sc.sellerService.UpdateStatus(c.Request.Context(), p.UserID, id, req.Status); svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book status updated successfully"})
}

// DeleteBook handles DELETE /api/seller/books/:id
func (sc *SellerController) DeleteBook(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id", "Invalid book ID")
	if !ok {
		return
	}

	if svcErr := sc.sellerService.DeleteBook(c.Request.Context(), p.UserID, id); svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Book deleted successfully"})
}
