package main

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pharmacy-backend/internal/domains/user"
	"pharmacy-backend/internal/shared/middleware"
	"pharmacy-backend/pkg/container"
)

// NewRouter builds the gin engine with one route group per domain.
// Mutating routes require a session token; admin-only routes add a
// role check on top.
func NewRouter(c *container.Container) *gin.Engine {
	if c.Config.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()

	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS())

	router.GET("/health", func(ctx *gin.Context) {
		if err := c.DB.HealthCheck(ctx.Request.Context()); err != nil {
			ctx.JSON(http.StatusServiceUnavailable, gin.H{"status": "unhealthy"})
			return
		}
		ctx.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"version": c.Config.App.Version,
		})
	})

	authn := middleware.AuthMiddleware(c.JWT)
	backOffice := middleware.RequireRoles(user.RoleAdmin, user.RoleBranchAdmin)
	adminOnly := middleware.RequireRoles(user.RoleAdmin)

	setupAuthRoutes(router, c, authn)
	setupUserRoutes(router, c, authn, adminOnly)
	setupGeographyRoutes(router, c, authn, backOffice)
	setupCatalogRoutes(router, c, authn, backOffice)
	setupSalesRoutes(router, c, authn, backOffice, adminOnly)

	return router
}

func setupAuthRoutes(router *gin.Engine, c *container.Container, authn gin.HandlerFunc) {
	auth := router.Group("/auth")
	{
		auth.POST("/signup", c.AuthHandler.SignUp)
		auth.POST("/login", c.AuthHandler.Login)
		auth.POST("/forgot-password", c.AuthHandler.ForgotPassword)
		auth.POST("/reset-password", c.AuthHandler.ResetPassword)
		auth.PATCH("/password", authn, c.AuthHandler.ChangePassword)
		auth.POST("/otp", authn, c.AuthHandler.IssueOTP)
	}
}

func setupUserRoutes(router *gin.Engine, c *container.Container, authn, adminOnly gin.HandlerFunc) {
	selfOrAdmin := middleware.RequireSelfOrRoles("userId", user.RoleAdmin)

	users := router.Group("/user")
	{
		users.POST("/otp", c.UserHandler.ValidateOTP)
		users.GET("", authn, adminOnly, c.UserHandler.List)
		users.GET("/:userId", authn, selfOrAdmin, c.UserHandler.GetByID)
		users.PATCH("/:userId", authn, selfOrAdmin, c.UserHandler.Update)
		users.DELETE("/:userId", authn, selfOrAdmin, c.UserHandler.Delete)
	}
}

func setupGeographyRoutes(router *gin.Engine, c *container.Container, authn, backOffice gin.HandlerFunc) {
	countries := router.Group("/country")
	{
		countries.GET("", c.CountryHandler.List)
		countries.GET("/:id", c.CountryHandler.GetByID)
		countries.POST("", authn, backOffice, c.CountryHandler.Create)
		countries.PATCH("/:id", authn, backOffice, c.CountryHandler.Update)
		countries.DELETE("/:id", authn, backOffice, c.CountryHandler.Delete)
	}

	states := router.Group("/state")
	{
		states.GET("", c.StateHandler.List)
		states.GET("/:id", c.StateHandler.GetByID)
		states.POST("", authn, backOffice, c.StateHandler.Create)
		states.PATCH("/:id", authn, backOffice, c.StateHandler.Update)
		states.DELETE("/:id", authn, backOffice, c.StateHandler.Delete)
	}

	cities := router.Group("/city")
	{
		cities.GET("", c.CityHandler.List)
		cities.GET("/:id", c.CityHandler.GetByID)
		cities.POST("", authn, backOffice, c.CityHandler.Create)
		cities.PATCH("/:id", authn, backOffice, c.CityHandler.Update)
		cities.DELETE("/:id", authn, backOffice, c.CityHandler.Delete)
	}

	branches := router.Group("/branch")
	{
		branches.GET("", c.BranchHandler.List)
		branches.GET("/:id", c.BranchHandler.GetByID)
		branches.POST("", authn, backOffice, c.BranchHandler.Create)
		branches.PATCH("/:id", authn, backOffice, c.BranchHandler.Update)
		branches.DELETE("/:id", authn, backOffice, c.BranchHandler.Delete)
	}
}

func setupCatalogRoutes(router *gin.Engine, c *container.Container, authn, backOffice gin.HandlerFunc) {
	manufacturers := router.Group("/manufacturer")
	{
		manufacturers.GET("", c.ManufacturerHandler.List)
		manufacturers.GET("/:id", c.ManufacturerHandler.GetByID)
		manufacturers.POST("", authn, backOffice, c.ManufacturerHandler.Create)
		manufacturers.PATCH("/:id", authn, backOffice, c.ManufacturerHandler.Update)
		manufacturers.DELETE("/:id", authn, backOffice, c.ManufacturerHandler.Delete)
	}

	categories := router.Group("/category")
	{
		categories.GET("", c.CategoryHandler.List)
		categories.GET("/:id", c.CategoryHandler.GetByID)
		categories.POST("", authn, backOffice, c.CategoryHandler.Create)
		categories.PATCH("/:id", authn, backOffice, c.CategoryHandler.Update)
		categories.DELETE("/:id", authn, backOffice, c.CategoryHandler.Delete)
	}

	presentations := router.Group("/presentation")
	{
		presentations.GET("", c.PresentationHandler.List)
		presentations.GET("/:id", c.PresentationHandler.GetByID)
		presentations.POST("", authn, backOffice, c.PresentationHandler.Create)
		presentations.PATCH("/:id", authn, backOffice, c.PresentationHandler.Update)
		presentations.DELETE("/:id", authn, backOffice, c.PresentationHandler.Delete)
	}

	products := router.Group("/product")
	{
		products.GET("", c.ProductHandler.List)
		products.GET("/:id", c.ProductHandler.GetByID)
		products.POST("", authn, backOffice, c.ProductHandler.Create)
		products.PATCH("/:id", authn, backOffice, c.ProductHandler.Update)
		products.DELETE("/:id", authn, backOffice, c.ProductHandler.Delete)
		products.POST("/:id/image", authn, backOffice, c.ProductHandler.UploadImage)
	}
}

func setupSalesRoutes(router *gin.Engine, c *container.Container, authn, backOffice, adminOnly gin.HandlerFunc) {
	coupons := router.Group("/coupon")
	{
		coupons.GET("", authn, backOffice, c.CouponHandler.List)
		coupons.GET("/:id", authn, backOffice, c.CouponHandler.GetByID)
		coupons.GET("/code/:code", authn, c.CouponHandler.GetByCode)
		coupons.POST("", authn, backOffice, c.CouponHandler.Create)
		coupons.PATCH("/:id", authn, backOffice, c.CouponHandler.Update)
		coupons.DELETE("/:id", authn, backOffice, c.CouponHandler.Delete)
	}

	promos := router.Group("/promo")
	{
		promos.GET("", c.PromoHandler.List)
		promos.GET("/:id", c.PromoHandler.GetByID)
		promos.POST("", authn, backOffice, c.PromoHandler.Create)
		promos.PATCH("/:id", authn, backOffice, c.PromoHandler.Update)
		promos.DELETE("/:id", authn, backOffice, c.PromoHandler.Delete)
	}

	orders := router.Group("/order")
	{
		orders.GET("", authn, c.OrderHandler.List)
		orders.GET("/export", authn, adminOnly, c.OrderHandler.Export)
		orders.GET("/:id", authn, c.OrderHandler.GetByID)
		orders.POST("", authn, c.OrderHandler.Create)
		orders.PATCH("/:id/status", authn, backOffice, c.OrderHandler.UpdateStatus)
		orders.DELETE("/:id", authn, backOffice, c.OrderHandler.Delete)
	}
}
