package controllers

import (
	"net/http"

	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// OrderController handles order history and checkout.
type OrderController struct {
	orderService *services.OrderService
}

// NewOrderController creates a new OrderController.
func NewOrderController(svc *services.OrderService) *OrderController {
	return &OrderController{orderService: svc}
}

// ListOrders handles GET /api/orders
func (oc *OrderController) ListOrders(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	page, limit := parsePaginationParams(c)
	result, svcErr := oc.orderService.GetUserOrders(c.Request.Context(), p.UserID, page, limit)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetOrder handles GET /api/orders/:id
func (oc *OrderController) GetOrder(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	id, ok := parseIDParam(c, "id", "Invalid order ID")
	if !ok {
		return
	}

	order, svcErr := oc.orderService.GetOrderByID(c.Request.Context(), p.UserID, id)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusOK, gin.H{"order": order})
}

// Checkout handles POST /api/orders/checkout
func (oc *OrderController) Checkout(c *gin.Context) {
	p, ok := principal(c)
	if !ok {
		return
	}

	var req services.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortBinding(c, err)
		return
	}

	order, svcErr := oc.orderService.Checkout(c.Request.Context(), p.UserID, req)
	if svcErr != nil {
		abortService(c, svcErr)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": "Order completed successfully", "order": order})
}
