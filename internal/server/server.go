package server

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"taskboard/internal/access"
	"taskboard/internal/auth"
	"taskboard/internal/config"
	"taskboard/internal/handler"
	"taskboard/internal/middleware"
	"taskboard/internal/repository"
	"taskboard/internal/service"
	"taskboard/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/golang-migrate/migrate/v4"
	_ "github.com/golang-migrate/migrate/v4/database/postgres"
	_ "github.com/golang-migrate/migrate/v4/source/file"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type Server struct {
	Engine *gin.Engine
	DB     *gorm.DB
	Config *config.Config
}

func Init(cfg *config.Config) (*Server, error) {
	// Setup GORM
	dsn := fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		cfg.DBHost, cfg.DBPort, cfg.DBUser, cfg.DBPassword, cfg.DBName,
	)
	db, err := gorm.Open(postgres.Open(dsn), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")

	if err := runMigrations(cfg); err != nil {
		return nil, fmt.Errorf("❌ failed to run migrations: %w", err)
	}
	log.Println("✅ Migrations applied")

	store, err := storage.NewLocalStore(cfg.UploadDir)
	if err != nil {
		return nil, err
	}

	tokens := auth.NewTokenManager(cfg.JWTSecret, time.Duration(cfg.JWTExpiryHours)*time.Hour)

	// Setup Gin
	r := gin.Default()

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	boardRepo := repository.NewBoardRepository(db)
	statusRepo := repository.NewStatusRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	collabRepo := repository.NewCollaborationRepository(db)
	attachmentRepo := repository.NewAttachmentRepository(db)

	// Every permission decision goes through the one engine
	engine := access.NewEngine(collabRepo, userRepo)

	// Initialize services
	boardService := service.NewBoardService(boardRepo, collabRepo, userRepo, attachmentRepo, engine, store)
	statusService := service.NewStatusService(statusRepo, taskRepo, boardRepo, engine)
	taskService := service.NewTaskService(taskRepo, statusRepo, boardRepo, attachmentRepo, engine, store)
	collabService := service.NewCollabService(collabRepo, boardRepo, userRepo, engine)
	attachmentService := service.NewAttachmentService(attachmentRepo, taskRepo, boardRepo, engine, store)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, tokens)
	boardHandler := handler.NewBoardHandler(boardService)
	statusHandler := handler.NewStatusHandler(statusService)
	taskHandler := handler.NewTaskHandler(taskService)
	collabHandler := handler.NewCollabHandler(collabService)
	attachmentHandler := handler.NewAttachmentHandler(attachmentService)
	fileHandler := handler.NewFileHandler(store)

	// Public routes
	r.POST("/register", userHandler.Register)
	r.POST("/login", userHandler.Login)
	r.GET("/files/:name", fileHandler.Serve)
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Board-scoped routes resolve the bearer if one is present and stay
	// anonymous otherwise; the access engine decides per operation.
	boards := r.Group("/boards")
	boards.Use(middleware.Authenticate(tokens))
	{
		boards.POST("", boardHandler.Create)
		boards.GET("", boardHandler.List)
		boards.GET("/:id", boardHandler.GetByID)
		boards.PATCH("/:id", boardHandler.UpdateVisibility)
		boards.DELETE("/:id", boardHandler.Delete)

		// Status routes
		boards.GET("/:id/statuses", statusHandler.List)
		boards.POST("/:id/statuses", statusHandler.Create)
		boards.GET("/:id/statuses/:statusId", statusHandler.GetByID)
		boards.PUT("/:id/statuses/:statusId", statusHandler.Update)
		boards.DELETE("/:id/statuses/:statusId", statusHandler.Delete)
		boards.DELETE("/:id/statuses/:statusId/:newStatusId", statusHandler.DeleteAndTransfer)

		// Task routes
		boards.GET("/:id/tasks", taskHandler.List)
		boards.POST("/:id/tasks", taskHandler.Create)
		boards.GET("/:id/tasks/:taskId", taskHandler.GetByID)
		boards.PUT("/:id/tasks/:taskId", taskHandler.Update)
		boards.DELETE("/:id/tasks/:taskId", taskHandler.Delete)

		// Collaborator routes
		boards.GET("/:id/collabs", collabHandler.List)
		boards.POST("/:id/collabs", collabHandler.Add)
		boards.GET("/:id/collabs/:userId", collabHandler.GetByID)
		boards.PATCH("/:id/collabs/:userId", collabHandler.Update)
		boards.PATCH("/:id/collabs/:userId/accept", collabHandler.Accept)
		boards.DELETE("/:id/collabs/:userId", collabHandler.Remove)

		// Attachment routes
		boards.GET("/:id/tasks/:taskId/attachments", attachmentHandler.List)
		boards.POST("/:id/tasks/:taskId/attachments", attachmentHandler.Add)
		boards.DELETE("/:id/tasks/:taskId/attachments/:attachmentId", attachmentHandler.Remove)
	}

	return &Server{
		Engine: r,
		DB:     db,
		Config: cfg,
	}, nil
}

func runMigrations(cfg *config.Config) error {
	url := fmt.Sprintf("postgres://%s:%s@%s:%s/%s?sslmode=disable",
		cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName,
	)
	m, err := migrate.New("file://"+cfg.MigrationsDir, url)
	if err != nil {
		return err
	}
	if err := m.Up(); err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return err
	}
	srcErr, dbErr := m.Close()
	if srcErr != nil {
		return srcErr
	}
	return dbErr
}

func (s *Server) Run() {
	srv := &http.Server{
		Addr:    ":" + s.Config.ServerPort,
		Handler: s.Engine,
	}

	go func() {
		log.Printf("🚀 Server running on port %s\n", s.Config.ServerPort)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("❌ Failed to listen: %s\n", err)
		}
	}()

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Println("🛑 Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("❌ Server forced to shutdown: %s", err)
	}

	log.Println("✅ Server exited properly")
}
