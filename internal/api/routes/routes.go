package routes

import (
	"fmt"

	"contacthub-backend/internal/api/handlers"
	"contacthub-backend/internal/api/middleware"
	"contacthub-backend/internal/auth"
	"contacthub-backend/internal/config"
	"contacthub-backend/internal/repository"
	"contacthub-backend/internal/service"
	"contacthub-backend/internal/storage"
	"contacthub-backend/internal/tenant"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/redis/go-redis/v9"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"gorm.io/gorm"
)

// SetupRoutes configures all the routes for the application
func SetupRoutes(db *gorm.DB, cfg *config.Config) (*gin.Engine, error) {
	// Create router
	router := gin.New()

	// Add middleware
	router.Use(middleware.RequestID())
	router.Use(middleware.Logger())
	router.Use(middleware.Recovery())
	router.Use(middleware.CORS(cfg))

	// Initialize validator
	validator := validator.New()

	// Initialize repositories
	organizationRepo := repository.NewOrganizationRepository(db)
	userRepo := repository.NewUserRepository(db)
	membershipRepo := repository.NewMembershipRepository(db)
	contactRepo := repository.NewContactRepository(db)
	contactNoteRepo := repository.NewContactNoteRepository(db)
	contactMetaRepo := repository.NewContactMetaRepository(db)

	// Session store for the current-organization value
	var sessions tenant.SessionStore
	switch cfg.SessionStore {
	case "redis":
		client := redis.NewClient(&redis.Options{
			Addr:     cfg.RedisAddr,
			Password: cfg.RedisPassword,
			DB:       cfg.RedisDB,
		})
		sessions = tenant.NewRedisStore(client)
	default:
		sessions = tenant.NewMemoryStore()
	}
	resolver := tenant.NewResolver(sessions, membershipRepo)

	// Role gate and blob storage
	gate := auth.NewGate(membershipRepo)
	blobs, err := storage.NewLocalStore(cfg.UploadsDir, cfg.MaxAvatarBytes)
	if err != nil {
		return nil, fmt.Errorf("initialize blob storage: %w", err)
	}

	// Initialize auth service and middleware
	authService := auth.NewService(cfg.JWTSecret)
	authMiddleware := auth.NewMiddleware(authService)

	// Initialize services
	organizationService := service.NewOrganizationService(organizationRepo, membershipRepo, resolver, validator)
	userService := service.NewUserService(userRepo, authService, validator)
	contactService := service.NewContactService(contactRepo, contactMetaRepo, gate, blobs, validator)
	contactNoteService := service.NewContactNoteService(contactNoteRepo, contactRepo, gate, validator)
	contactMetaService := service.NewContactMetaService(contactMetaRepo, contactRepo, gate, validator)

	// Initialize handlers
	healthHandler := handlers.NewHealthHandler(db)
	userHandler := handlers.NewUserHandler(userService)
	organizationHandler := handlers.NewOrganizationHandler(organizationService)
	contactHandler := handlers.NewContactHandler(contactService)
	contactNoteHandler := handlers.NewContactNoteHandler(contactNoteService)
	contactMetaHandler := handlers.NewContactMetaHandler(contactMetaService)

	// Health check routes
	router.GET("/health", healthHandler.Health)
	router.GET("/health/ready", healthHandler.Ready)
	router.GET("/health/live", healthHandler.Live)

	// Swagger documentation route
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// Auth routes
	authGroup := router.Group("/api/auth")
	{
		authGroup.POST("/register", userHandler.Register)
		authGroup.POST("/login", userHandler.Login)
	}

	// API v1 routes - all endpoints require authentication
	v1 := router.Group("/api/v1")
	v1.Use(authMiddleware.RequireAuth())
	{
		v1.GET("/me", userHandler.Me)

		// Organization routes: membership and session management, no current
		// organization required
		organizations := v1.Group("/organizations")
		{
			organizations.GET("", organizationHandler.ListOrganizations)
			organizations.POST("", organizationHandler.CreateOrganization)
			organizations.GET("/:id", organizationHandler.GetOrganization)
			organizations.POST("/:id/switch", organizationHandler.SwitchOrganization)
		}

		// Contact routes: always scoped to the session's current organization
		contacts := v1.Group("/contacts")
		contacts.Use(middleware.CurrentOrganization(resolver))
		{
			contacts.GET("", contactHandler.ListContacts)
			contacts.POST("", contactHandler.CreateContact)
			contacts.GET("/:id", contactHandler.GetContact)
			contacts.PUT("/:id", contactHandler.UpdateContact)
			contacts.DELETE("/:id", contactHandler.DeleteContact)
			contacts.POST("/:id/duplicate", contactHandler.DuplicateContact)
			contacts.PUT("/:id/avatar", contactHandler.UploadAvatar)
			contacts.GET("/:id/avatar", contactHandler.GetAvatar)

			contacts.GET("/:id/notes", contactNoteHandler.ListNotes)
			contacts.POST("/:id/notes", contactNoteHandler.CreateNote)
			contacts.PUT("/:id/notes/:noteId", contactNoteHandler.UpdateNote)
			contacts.DELETE("/:id/notes/:noteId", contactNoteHandler.DeleteNote)

			contacts.GET("/:id/meta", contactMetaHandler.ListMeta)
			contacts.POST("/:id/meta", contactMetaHandler.CreateMeta)
			contacts.PUT("/:id/meta/:metaId", contactMetaHandler.UpdateMeta)
			contacts.DELETE("/:id/meta/:metaId", contactMetaHandler.DeleteMeta)
		}
	}

	return router, nil
}
