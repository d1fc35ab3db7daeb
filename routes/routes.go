package routes

import (
	"net/http"

	"bookstore-api/controllers"
	"bookstore-api/middleware"
	"bookstore-api/models"
	"bookstore-api/services"

	"github.com/gin-gonic/gin"
)

// Controllers bundles the handlers wired into the router.
type Controllers struct {
	Auth    *controllers.AuthController
	Books   *controllers.BookController
	Cart    *controllers.CartController
	Orders  *controllers.OrderController
	Library *controllers.LibraryController
	Seller  *controllers.SellerController
}

// Register sets up the full API surface under /api.
func Register(r *gin.Engine, tokens *services.TokenService, c Controllers) {
	r.GET("/health", func(ctx *gin.Context) {
		ctx.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")

	// Credential endpoints carry a stricter rate limit than the rest of the
	// API.
	auth := api.Group("/auth")
	auth.POST("/register", middleware.RateLimitMiddleware(), c.Auth.Register)
	auth.POST("/login", middleware.RateLimitMiddleware(), c.Auth.Login)
	auth.GET("/me", middleware.Authenticate(tokens), c.Auth.Me)
	auth.GET("/profile", middleware.Authenticate(tokens), c.Auth.Me)
	auth.PUT("/profile", middleware.Authenticate(tokens), c.Auth.UpdateProfile)

	books := api.Group("/books")
	books.GET("", c.Books.ListBooks)
	books.GET("/featured", c.Books.FeaturedBooks)
	books.GET("/:id", middleware.OptionalAuth(tokens), c.Books.GetBook)

	categories := api.Group("/categories")
	categories.GET("", c.Books.ListCategories)
	categories.GET("/:id", c.Books.GetCategory)

	cart := api.Group("/cart")
	cart.Use(middleware.Authenticate(tokens))
	cart.GET("", c.Cart.ViewCart)
	cart.POST("/add", c.Cart.AddToCart)
	cart.DELETE("/:itemId", c.Cart.RemoveFromCart)
	cart.DELETE("", c.Cart.ClearCart)

	orders := api.Group("/orders")
	orders.Use(middleware.Authenticate(tokens))
	orders.GET("", c.Orders.ListOrders)
	orders.GET("/:id", c.Orders.GetOrder)
	orders.POST("/checkout", c.Orders.Checkout)

	library := api.Group("/library")
	library.Use(middleware.Authenticate(tokens))
	library.GET("", c.Library.ListLibrary)
	library.GET("/download/:bookId", c.Library.Download)
	library.GET("/progress/:bookId", c.Library.GetProgress)

	seller := api.Group("/seller")
	seller.Use(middleware.Authenticate(tokens), middleware.RequireRole(models.RoleSeller, models.RoleAdmin))
	seller.GET("/dashboard", c.Seller.Dashboard)
	seller.GET("/books", c.Seller.ListBooks)
	seller.POST("/books", c.Seller.CreateBook)
	seller.PUT("/books/:id", c.Seller.UpdateBook)
	seller.PATCH("/books/:id/status", c.Seller.UpdateStatus)
	seller.DELETE("/books/:id", c.Seller.DeleteBook)
}
