package server

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"projecthub/internal/auth"
	"projecthub/internal/config"
	"projecthub/internal/handler"
	"projecthub/internal/middleware"
	"projecthub/internal/migrations"
	"projecthub/internal/model"
	"projecthub/internal/obs"
	"projecthub/internal/repository"
	"projecthub/internal/seed"

	"github.com/gin-gonic/gin"
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

// OpenDB connects gorm to postgres with duplicate-key translation enabled.
func OpenDB(cfg *config.Config) (*gorm.DB, error) {
	db, err := gorm.Open(postgres.Open(cfg.DSN()), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to connect to DB: %w", err)
	}
	log.Println("✅ Connected to database")
	return db, nil
}

// NewSeeder wires the seeder to the gorm repositories.
func NewSeeder(db *gorm.DB, cfg *config.Config) *seed.Seeder {
	return seed.NewSeeder(
		repository.NewPermissionRepository(db),
		repository.NewRoleRepository(db),
		repository.NewUserRepository(db),
		seed.Admin{
			Email:    cfg.AdminEmail,
			Password: cfg.AdminPassword,
			FullName: cfg.AdminName,
		},
	)
}

func Init(cfg *config.Config) (*Server, error) {
	if cfg.AutoMigrate {
		if err := migrations.Up(cfg.MigrationURL()); err != nil {
			return nil, fmt.Errorf("❌ failed to migrate: %w", err)
		}
	}

	db, err := OpenDB(cfg)
	if err != nil {
		return nil, err
	}

	if cfg.AutoMigrate {
		if err := NewSeeder(db, cfg).Run(context.Background()); err != nil {
			return nil, fmt.Errorf("❌ failed to seed: %w", err)
		}
	}

	tokens, err := auth.NewTokenService(auth.TokenConfig{
		Secret: []byte(cfg.JWTSecret),
		TTL:    cfg.JWTTTL,
	})
	if err != nil {
		return nil, fmt.Errorf("❌ failed to init tokens: %w", err)
	}

	return &Server{
		Engine: NewRouter(cfg, db, tokens),
		DB:     db,
		Config: cfg,
	}, nil
}

// NewRouter builds the gin engine with every route and its required permission.
func NewRouter(cfg *config.Config, db *gorm.DB, tokens *auth.TokenService) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	obs.Init()

	r := gin.Default()
	r.Use(middleware.RequestID(), obs.Instrument())

	// Initialize repositories
	userRepo := repository.NewUserRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	taskRepo := repository.NewTaskRepository(db)

	// Initialize handlers
	userHandler := handler.NewUserHandler(userRepo, roleRepo, tokens)
	projectHandler := handler.NewProjectHandler(projectRepo)
	taskHandler := handler.NewTaskHandler(taskRepo, projectRepo, userRepo)

	gate := func(required model.PermissionName) gin.HandlerFunc {
		return middleware.Authorize(tokens, userRepo, required)
	}

	// Public routes
	r.POST("/signup", userHandler.Signup)
	r.POST("/signin", userHandler.Signin)

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
	r.GET("/metrics", gin.WrapH(obs.Handler()))
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Protected routes
	r.GET("/auth_data", gate(""), userHandler.AuthData)

	r.GET("/project", gate(model.PermViewProjects), projectHandler.List)
	r.POST("/project", gate(model.PermCreateProject), projectHandler.Create)
	r.PUT("/project/:id", gate(model.PermUpdateProject), projectHandler.Update)
	r.DELETE("/project/:id", gate(model.PermDeleteProject), projectHandler.Delete)

	r.GET("/task", gate(model.PermViewTasks), taskHandler.List)
	r.POST("/task", gate(model.PermCreateTask), taskHandler.Create)
	r.PUT("/task/:id", gate(model.PermUpdateTask), taskHandler.Update)
	r.DELETE("/task/:id", gate(model.PermDeleteTask), taskHandler.Delete)

	return r
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

	if sqlDB, err := s.DB.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Println("✅ Server exited properly")
}
