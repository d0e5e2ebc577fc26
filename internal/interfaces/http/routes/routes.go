// internal/interfaces/http/routes/routes.go
package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/lojamaq/storefront/internal/config"
	"github.com/lojamaq/storefront/internal/domain/auth"
	"github.com/lojamaq/storefront/internal/domain/cart"
	"github.com/lojamaq/storefront/internal/domain/order"
	"github.com/lojamaq/storefront/internal/domain/product"
	"github.com/lojamaq/storefront/internal/domain/profile"
	"github.com/lojamaq/storefront/internal/domain/review"
	redisinfra "github.com/lojamaq/storefront/internal/infrastructure/database/redis"
	"github.com/lojamaq/storefront/internal/infrastructure/supabase"
	"github.com/lojamaq/storefront/internal/interfaces/http/handlers"
	"github.com/lojamaq/storefront/internal/interfaces/http/middleware"
	"github.com/lojamaq/storefront/internal/pkg/session"
)

// SetupRoutes wires the facade's JSON API. Every route runs behind the
// session middleware; the facade itself decides how unauthenticated callers
// degrade (error for mutations, empty/null for reads).
func SetupRoutes(rg *gin.RouterGroup, sb *supabase.Client, store *redisinfra.Client, cfg *config.Config, log *logrus.Logger) {
	authService := auth.NewService(sb, log)
	productService := product.NewService(sb)
	cartService := cart.NewService(sb)
	orderService := order.NewService(sb, cartService, log)
	profileService := profile.NewService(sb)
	reviewService := review.NewService(sb)
	sessions := session.NewManager(store, cfg)

	rg.Use(middleware.Session(sessions, authService, log))

	authHandler := handlers.NewAuthHandler(authService, sessions, cfg, log)
	authGroup := rg.Group("/auth")
	{
		authGroup.POST("/signup", authHandler.SignUp)
		authGroup.POST("/signin", authHandler.SignIn)
		authGroup.POST("/signout", authHandler.SignOut)
		authGroup.GET("/session", authHandler.Session)
		authGroup.POST("/recover", authHandler.Recover)
	}

	productHandler := handlers.NewProductHandler(productService)
	reviewHandler := handlers.NewReviewHandler(reviewService)
	products := rg.Group("/products")
	{
		products.GET("", productHandler.GetProducts)
		products.GET("/:id", productHandler.GetProduct)
		products.GET("/:id/reviews", reviewHandler.GetProductReviews)
		products.POST("/:id/reviews", reviewHandler.CreateReview)
	}
	rg.GET("/categories/:category/products", productHandler.GetProductsByCategory)

	cartHandler := handlers.NewCartHandler(cartService)
	cartGroup := rg.Group("/cart")
	{
		cartGroup.GET("", cartHandler.GetCart)
		cartGroup.DELETE("", cartHandler.ClearCart)
		cartGroup.POST("/items", cartHandler.AddToCart)
		cartGroup.PUT("/items/:id", cartHandler.UpdateCartItem)
		cartGroup.DELETE("/items/:id", cartHandler.RemoveFromCart)
	}

	orderHandler := handlers.NewOrderHandler(orderService)
	orders := rg.Group("/orders")
	{
		orders.GET("", orderHandler.GetUserOrders)
		orders.POST("", orderHandler.CreateOrder)
		orders.GET("/:id", orderHandler.GetOrder)
	}

	profileHandler := handlers.NewProfileHandler(profileService)
	rg.GET("/profile", profileHandler.GetProfile)
	rg.PUT("/profile", profileHandler.UpdateProfile)
}
