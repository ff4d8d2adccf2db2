package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"tourism-pricing-backend/controllers"
	"tourism-pricing-backend/middleware"
)

func parseCorsOrigins() []string {
	raw := strings.TrimSpace(os.Getenv("CORS_ORIGINS"))
	if raw == "" {
		return []string{"*"}
	}

	parts := strings.Split(raw, ",")
	origins := make([]string, 0, len(parts))
	for _, part := range parts {
		origin := strings.TrimSpace(part)
		if origin != "" {
			origins = append(origins, origin)
		}
	}
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// SetupRouter wires controller instances onto the route tree. Mutating
// catalog/discount/tax routes sit behind the admin key.
func SetupRouter(
	pc *controllers.PricingController,
	dc *controllers.DiscountController,
	rc *controllers.ResourceController,
	adminKey string,
) *gin.Engine {
	r := gin.New()
	r.Use(middleware.Logger(), gin.Recovery())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With", "X-Admin-Key"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		pricing := api.Group("/pricing")
		{
			pricing.POST("/quote", pc.CreateQuote)
			pricing.GET("/quote/:ref", pc.GetQuote)
			pricing.POST("/refund", pc.CalculateRefund)
			pricing.POST("/validate-discount", pc.ValidateDiscount)
		}

		discounts := api.Group("/discounts")
		{
			discounts.GET("/available", dc.GetAvailableDiscounts)

			admin := discounts.Group("", middleware.AdminKey(adminKey))
			{
				admin.GET("", dc.GetDiscounts)
				admin.POST("", dc.CreateDiscount)
				admin.DELETE("/:code", dc.DeleteDiscount)
			}
		}

		resources := api.Group("/resources")
		{
			resources.GET("", rc.GetResources)
			resources.GET("/:id", rc.GetResourceByID)

			admin := resources.Group("", middleware.AdminKey(adminKey))
			{
				admin.POST("", rc.CreateResource)
				// full replacement only, so no PATCH
				admin.PUT("/:id", rc.UpdateResource)
				admin.DELETE("/:id", rc.DeleteResource)
			}
		}

		api.PUT("/tax-rates/:country", middleware.AdminKey(adminKey), pc.UpdateTaxRate)
	}

	return r
}
