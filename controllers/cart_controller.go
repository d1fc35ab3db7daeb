package controllers

import (
	"net/http"

	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// addToCartRequest is the payload for adding a book to the cart.
type addToCartRequest struct {
	BookID uint `json:"bookId" binding:"required"`
}

// CartController handles the authenticated cart surface.
type CartController struct {
	cartService *services.CartService
}

// NewCartController creates a new CartController.
func NewCartController(svc *services.CartService) *CartController {
	return &CartController{cartService: svc}
}

// ViewCart handles GET /api/cart
func (cc *CartController) ViewCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	view, svcErr := cc.cartService.ViewCart(c.Request.Context(), p.UserID)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, view)
}

// AddToCart handles POST /api/cart/add
func (cc *CartController) AddToCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req addToCartRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	item, svcErr := cc.cartService.AddToCart(c.Request.Context(), p.UserID, req.BookID)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Book added to cart", "item": item})
}

// RemoveFromCart handles DELETE /api/cart/:itemId
func (cc *CartController) RemoveFromCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	itemID, ok := parseIDParam(c, "itemId", "Invalid cart item ID")
	if !ok {
		return
	}

	if svcErr := cc.cartService.RemoveFromCart(c.Request.Context(), p.UserID, itemID); svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Item removed from cart"})
}

// ClearCart handles DELETE /api/cart
func (cc *CartController) ClearCart(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	if svcErr := cc.cartService.ClearCart(c.Request.Context(), p.UserID); svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Cart cleared"})
}
