// internal/app/server.go
package app

import (
	"context"
	"fmt"
	"log"
	"time"

	"backoffice-service/internal/config"
	"backoffice-service/internal/db"
	"backoffice-service/internal/domain/claims"
	accountHandler "backoffice-service/internal/handlers/account"
	notificationHandler "backoffice-service/internal/handlers/notification"
	permissionHandler "backoffice-service/internal/handlers/permission"
	productHandler "backoffice-service/internal/handlers/product"
	roleHandler "backoffice-service/internal/handlers/role"
	userHandler "backoffice-service/internal/handlers/user"
	wsHandler "backoffice-service/internal/handlers/websocket"
	"backoffice-service/internal/middleware"
	"backoffice-service/internal/pkg/jwt"
	"backoffice-service/internal/pkg/ratelimit"
	"backoffice-service/internal/repository/postgres"
	accountUsecase "backoffice-service/internal/service/account"
	"backoffice-service/internal/service/email"
	messagesUsecase "backoffice-service/internal/service/messages"
	productsUsecase "backoffice-service/internal/service/products"
	rolesUsecase "backoffice-service/internal/service/roles"
	usersUsecase "backoffice-service/internal/service/users"
	"backoffice-service/internal/storage"
	"backoffice-service/internal/websocket"
	wsHandlers "backoffice-service/internal/websocket/handler"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Server struct {
	cfg    config.AppConfig
	engine *gin.Engine
	logger *zap.Logger
}

func NewServer() *Server {
	cfg := config.Load()
	engine := gin.New()
	return &Server{cfg: cfg, engine: engine}
}

func (s *Server) Start() error {
	ctx := context.Background()

	// ----- PostgreSQL -----
	pool, err := postgres.Connect(ctx)
	if err != nil {
		return fmt.Errorf("failed to connect to PostgreSQL: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		return fmt.Errorf("failed to ping PostgreSQL: %w", err)
	}

	// ----- Redis -----
	redisClient, err := db.NewRedisClient(db.RedisConfig{
		Addr:     s.cfg.RedisAddr,
		Password: s.cfg.RedisPass,
		DB:       0,
		PoolSize: 10,
	})
	if err != nil {
		return fmt.Errorf("failed to connect to Redis: %w", err)
	}

	// ----- Logger -----
	logger, _ := zap.NewProduction()
	defer logger.Sync()
	s.logger = logger

	// ----- Claim Registry & JWT Manager -----
	registry := claims.DefaultRegistry()
	jwtManager := jwt.NewManager(s.cfg.JWT)

	// ----- Rate Limiter -----
	rateLimiter := ratelimit.NewLimiter(redisClient)

	// ----- Email -----
	emailSender := email.NewEmailSender(
		s.cfg.SMTPHost,
		s.cfg.SMTPPort,
		s.cfg.SMTPUser,
		s.cfg.SMTPPass,
		s.cfg.SMTPFromName,
		s.cfg.SMTPSecure,
	)

	// ----- Storage -----
	store, err := storage.NewDriver(&s.cfg.Storage)
	if err != nil {
		return fmt.Errorf("failed to build storage driver: %w", err)
	}
	if s.cfg.Storage.Driver == "local" || s.cfg.Storage.Driver == "" {
		s.engine.Static("/uploads", s.cfg.Storage.UploadsPath)
	}

	// ----- Repositories -----
	userRepo := postgres.NewUserRepository(pool)
	roleRepo := postgres.NewRoleRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	messageRepo := postgres.NewMessageRepository(pool)

	// ----- WebSocket Hub -----
	hub := websocket.NewHub(jwtManager, logger)
	hub.RegisterHandler(wsHandlers.NewNotificationHandler(messageRepo))
	go hub.Run(context.Background())

	// ----- Services (Usecases) -----
	accountService := accountUsecase.NewService(
		userRepo,
		roleRepo,
		registry,
		jwtManager,
		rateLimiter,
		emailSender,
		store,
		accountUsecase.Config{
			ActivationEmail: s.cfg.ActivationEmail,
			MaxUploadBytes:  s.cfg.MaxUploadMB << 20,
		},
		logger,
	)
	userService := usersUsecase.NewService(userRepo, s.cfg.Paging, logger)
	roleService := rolesUsecase.NewService(roleRepo, userRepo, registry, s.cfg.Paging, logger)
	productService := productsUsecase.NewService(productRepo, s.cfg.Paging, logger)
	messageService := messagesUsecase.NewService(messageRepo, hub, logger)

	// ----- Seed reserved roles and super admin -----
	if err := s.seedData(accountService); err != nil {
		return fmt.Errorf("failed to seed startup data: %w", err)
	}

	// ----- Handlers -----
	accountHandlerInst := accountHandler.NewAccountHandler(accountService, logger)
	userHandlerInst := userHandler.NewUserHandler(userService, logger)
	roleHandlerInst := roleHandler.NewRoleHandler(roleService, logger)
	productHandlerInst := productHandler.NewProductHandler(productService, logger)
	permissionHandlerInst := permissionHandler.NewPermissionHandler(registry)
	notificationHandlerInst := notificationHandler.NewNotificationHandler(messageService, logger)
	wsHandlerInst := wsHandler.NewWebSocketHandler(hub, logger)

	// ----- Middlewares -----
	authMiddleware := middleware.NewAuthMiddleware(jwtManager, userRepo)

	s.engine.Use(
		middleware.RecoveryMiddleware(logger),
		middleware.LoggingMiddleware(logger),
		middleware.CORSMiddleware(),
	)

	// ----- Router -----
	handlers := &Handlers{
		AccountHandler:      accountHandlerInst,
		UserHandler:         userHandlerInst,
		RoleHandler:         roleHandlerInst,
		ProductHandler:      productHandlerInst,
		PermissionHandler:   permissionHandlerInst,
		NotificationHandler: notificationHandlerInst,
		WSHandler:           wsHandlerInst,
		AuthMiddleware:      authMiddleware,
	}
	SetupRouter(s.engine, logger, handlers)

	// ----- Start HTTP -----
	log.Printf("server running on %s", s.cfg.HTTPAddr)
	return s.engine.Run(s.cfg.HTTPAddr)
}

// seedData creates the reserved roles and the super admin on startup.
func (s *Server) seedData(accountService *accountUsecase.Service) error {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	email := s.cfg.SuperAdminEmail
	password := s.cfg.SuperAdminPassword

	if email == "" {
		email = "admin@backoffice.local"
		s.logger.Warn("SUPER_ADMIN_EMAIL not set, using default", zap.String("email", email))
	}
	if password == "" {
		password = "ChangeMe123!"
		s.logger.Warn("SUPER_ADMIN_PASSWORD not set, using default password")
	}
	if len(password) < 8 {
		return fmt.Errorf("super admin password must be at least 8 characters")
	}

	return accountService.EnsureSeedData(ctx, email, password, s.cfg.SuperAdminName, s.cfg.SuperAdminSurname)
}
