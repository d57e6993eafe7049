package routes

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"boda-backend/controllers"
	"boda-backend/middleware"
	"boda-backend/models"
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

// Controllers groups every handler set the API serves.
type Controllers struct {
	Guests      *controllers.GuestController
	Layout      *controllers.LayoutController
	Tasks       *controllers.TaskController
	Expenses    *controllers.ResourceController[models.Expense, *models.Expense]
	Vendors     *controllers.ResourceController[models.Vendor, *models.Vendor]
	Documents   *controllers.ResourceController[models.Document, *models.Document]
	Inspiration *controllers.ResourceController[models.Inspiration, *models.Inspiration]
	Songs       *controllers.ResourceController[models.Song, *models.Song]

	// UploadDir is served under /uploads when set.
	UploadDir string
}

func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

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
		AllowMethods:     []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	if ctl.UploadDir != "" {
		r.Static("/uploads", ctl.UploadDir)
	}

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		layout := api.Group("/layout")
		{
			layout.GET("", ctl.Layout.GetLayout)
			layout.POST("", ctl.Layout.CreateLayout)
			// static paths before /:id
			layout.GET("/stats", ctl.Layout.GetStats)
			layout.GET("/tables/:tableId/candidates", ctl.Layout.GetCandidates)
			layout.PUT("/:id", ctl.Layout.ReplaceLayout)
		}

		guests := api.Group("/invitados")
		{
			guests.GET("", ctl.Guests.GetGuests)
			guests.GET("/resumen", ctl.Guests.GetSummary)
			guests.GET("/:id", ctl.Guests.GetGuestByID)
			guests.POST("", ctl.Guests.CreateGuest)
			guests.PUT("/:id", ctl.Guests.UpdateGuest)
			guests.DELETE("/:id", ctl.Guests.DeleteGuest)
		}

		ctl.Tasks.Register(api.Group("/tareas"))
		ctl.Expenses.Register(api.Group("/gastos"))
		ctl.Vendors.Register(api.Group("/proveedores"))
		ctl.Documents.Register(api.Group("/documentos"))
		ctl.Inspiration.Register(api.Group("/inspiracion"))
		ctl.Songs.Register(api.Group("/musica"))
	}

	return r
}
