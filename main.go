package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"boda-backend/config"
	"boda-backend/controllers"
	"boda-backend/models"
	"boda-backend/routes"
	"boda-backend/services"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("⚠️  .env not found or couldn't load it; continuing with environment variables")
	}

	if err := config.ConnectDatabase(); err != nil {
		log.Fatalf("❌ Database connect failed: %v", err)
	}
	db := config.DB
	if db == nil {
		log.Fatal("❌ config.DB is nil after ConnectDatabase()")
	}
	log.Println("✅ Database connection established and migrations applied.")

	slots := config.LayoutSlots()

	guestService := services.NewGuestService(db)
	layoutService := services.NewLayoutService(db, slots)
	taskService := services.NewTaskService(db)
	uploads := services.NewUploadService(config.UploadDir())

	router := routes.SetupRouter(routes.Controllers{
		Guests:      controllers.NewGuestController(guestService, layoutService),
		Layout:      controllers.NewLayoutController(layoutService, guestService, slots),
		Tasks:       controllers.NewTaskController(taskService),
		Expenses:    controllers.NewResourceController[models.Expense, *models.Expense](services.NewResourceService[models.Expense](db, "expense"), "expense"),
		Vendors:     controllers.NewResourceController[models.Vendor, *models.Vendor](services.NewResourceService[models.Vendor](db, "vendor"), "vendor"),
		Documents:   controllers.NewResourceController[models.Document, *models.Document](services.NewResourceService[models.Document](db, "document"), "document").WithUploads(uploads),
		Inspiration: controllers.NewResourceController[models.Inspiration, *models.Inspiration](services.NewResourceService[models.Inspiration](db, "inspiration"), "inspiration").WithUploads(uploads),
		Songs:       controllers.NewResourceController[models.Song, *models.Song](services.NewResourceService[models.Song](db, "song"), "song"),
		UploadDir:   uploads.Dir,
	})

	addr := ":" + config.Port()
	srv := &http.Server{
		Addr:              addr,
		Handler:           router,
		ReadTimeout:       10 * time.Second,
		ReadHeaderTimeout: 5 * time.Second,
		WriteTimeout:      20 * time.Second,
		IdleTimeout:       60 * time.Second,
	}

	go func() {
		log.Printf("🚀 Server starting on %s (%d layout slots)", addr, slots)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ ListenAndServe(): %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit
	log.Println("⚠️  Shutdown signal received, shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %v", err)
	}

	log.Println("✅ Server stopped gracefully")
}
