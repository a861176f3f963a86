package main

import (
	"fmt"
	"log"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/klpbbs/forum/config"
	"github.com/klpbbs/forum/internal/handlers"
	"github.com/klpbbs/forum/internal/repositories"
	"github.com/klpbbs/forum/internal/routers"
	"github.com/klpbbs/forum/internal/services"
	"github.com/klpbbs/forum/internal/storage"
	"github.com/klpbbs/forum/pkg/logger"
	"github.com/klpbbs/forum/pkg/middlewares"
	"github.com/klpbbs/forum/pkg/utils"
)

func main() {
	// 加载配置
	cfg, err := config.LoadConfig("./config.toml")
	if err != nil {
		log.Fatalf("加载配置失败: %v", err)
	}

	zapLogger, err := logger.NewLogger(&cfg.Logging)
	if err != nil {
		log.Fatalf("初始化日志失败: %v", err)
	}
	defer zapLogger.Sync()

	// 初始化 Postgres
	dsn := storage.BuildDSN(cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.DBName)
	db, err := storage.InitPostgres(dsn, cfg.Postgres.MaxIdleConns, cfg.Postgres.MaxOpenConns)
	if err != nil {
		zapLogger.Fatal("初始化数据库失败", zap.Error(err))
	}

	// 初始化 Redis,失败时降级为无缓存运行
	redisClient, err := storage.InitRedis(cfg.Redis.Host, cfg.Redis.Port, cfg.Redis.Password,
		cfg.Redis.DB, cfg.Redis.PoolSize, cfg.Redis.MinIdleConns)
	if err != nil {
		zapLogger.Warn("初始化 Redis 失败,缓存已禁用", zap.Error(err))
		redisClient = nil
	}

	tokens := utils.NewTokenManager(cfg.JWT.Secret, cfg.JWT.ExpireHours)

	var limiter *middlewares.RateLimiter
	if redisClient != nil {
		limiter = middlewares.NewRateLimiter(redisClient, zapLogger)
	}

	// 仓储层
	userRepo := repositories.NewUserRepository(db, redisClient)
	postRepo := repositories.NewPostRepository(db)
	groupRepo := repositories.NewGroupRepository(db)
	roleRepo := repositories.NewRoleRepository(db)
	commentRepo := repositories.NewCommentRepository(db)
	notificationRepo := repositories.NewNotificationRepository(db)
	fileRepo := repositories.NewFileRepository(db)

	// 服务层
	authService := services.NewAuthService(userRepo, tokens)
	userService := services.NewUserService(userRepo, notificationRepo)
	postService := services.NewPostService(postRepo)
	groupService := services.NewGroupService(groupRepo, userRepo)
	roleService := services.NewRoleService(roleRepo, userRepo)
	commentService := services.NewCommentService(commentRepo, postRepo)
	notificationService := services.NewNotificationService(notificationRepo)
	fileService := services.NewFileService(fileRepo, userRepo, cfg.Upload.Dir)

	// 处理器层
	authHandler := handlers.NewAuthHandler(authService)
	userHandler := handlers.NewUserHandler(userService)
	postHandler := handlers.NewPostHandler(postService, commentService)
	groupHandler := handlers.NewGroupHandler(groupService)
	roleHandler := handlers.NewRoleHandler(roleService)
	fileHandler := handlers.NewFileHandler(fileService)
	notificationHandler := handlers.NewNotificationHandler(notificationService)
	adminHandler := handlers.NewAdminHandler(userService, postService)

	gin.SetMode(cfg.Server.Mode)
	r := gin.New()
	r.Use(gin.Recovery())

	limits := routers.RateLimits{
		LoginPerMinute:    cfg.Rate.LoginPerMinute,
		RegisterPerMinute: cfg.Rate.RegisterPerMinute,
	}
	routers.SetupRoutes(r, zapLogger, tokens, limiter, limits, roleService,
		authHandler, userHandler, postHandler, groupHandler,
		roleHandler, fileHandler, notificationHandler, adminHandler)

	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	zapLogger.Info("服务启动", zap.String("addr", addr))
	if err := r.Run(addr); err != nil {
		zapLogger.Fatal("服务启动失败", zap.Error(err))
	}
}
