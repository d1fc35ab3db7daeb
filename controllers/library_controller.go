package controllers

import (
	"net/http"

	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// LibraryController handles the purchased-books surface.
type LibraryController struct {
	libraryService *services.LibraryService
}

// NewLibraryController creates a new LibraryController.
func NewLibraryController(svc *services.LibraryService) *LibraryController {
	return &LibraryController{libraryService: svc}
}

// ListLibrary handles GET /api/library
func (lc *LibraryController) ListLibrary(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	page, limit := parsePaginationParams(c)
	result, svcErr := lc.libraryService.ListLibrary(c.Request.Context(), p.UserID, page, limit)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// Download handles GET /api/library/download/:bookId
func (lc *LibraryController) Download(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	bookID, ok := parseIDParam(c, "bookId", "Invalid book ID")
	if !ok {
		return
	}

	grant, svcErr := lc.libraryService.Download(c.Request.Context(), p.UserID, bookID)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, grant)
}

// GetProgress handles GET /api/library/progress/:bookId
func (lc *LibraryController) GetProgress(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	bookID, ok := parseIDParam(c, "bookId", "Invalid book ID")
	if !ok {
		return
	}

	progress, svcErr := lc.libraryService.GetProgress(c.Request.Context(), p.UserID, bookID)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, progress)
}
