package main

import (
	"os"

	_ "shipyard/api/swagger" // swagger docs
	"shipyard/internal/database"
	"shipyard/internal/handler"
	"shipyard/internal/middleware"
	"shipyard/internal/repository"
	"shipyard/internal/service"
	"shipyard/internal/websocket"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"
)

// @title           Shipyard Production Management API
// @version         1.0
// @description     Back office for hull section production: reference data, process flows, project tracking and access control.
// @host            localhost:8080
// @BasePath        /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	logger, err := zap.NewProduction()
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if err := godotenv.Load("configs/.env"); err != nil {
		logger.Info("no configs/.env file found")
	}

	dbHost := envOr("DB_HOST", "localhost")
	dbPort := envOr("DB_PORT", "5432")
	dbUser := envOr("DB_USER", "postgres")
	dbPassword := envOr("DB_PASSWORD", "postgres")
	dbName := envOr("DB_NAME", "shipyard")
	dbSslMode := envOr("DB_SSLMODE", "disable")

	dsn := "postgres://" + dbUser + ":" + dbPassword + "@" + dbHost + ":" + dbPort + "/" + dbName + "?sslmode=" + dbSslMode

	db, err := database.NewConnection(dsn, logger)
	if err != nil {
		logger.Fatal("database connection failed", zap.Error(err))
	}
	logger.Info("connected to postgres")

	if os.Getenv("SEED_DATA") == "true" {
		if err := database.Seed(db, logger); err != nil {
			logger.Fatal("seeding failed", zap.Error(err))
		}
	}

	middleware.InitPermissionMiddleware(db)

	// WebSocket hub for planner notifications
	wsHub := websocket.NewHub(logger)
	go wsHub.Run()

	// Repositories
	txManager := repository.NewTransactionManager(db)
	shipTypeRepo := repository.NewShipTypeRepository(db)
	typicalSectionRepo := repository.NewTypicalSectionRepository(db)
	workTypeRepo := repository.NewWorkTypeRepository(db)
	workProcessRepo := repository.NewWorkProcessRepository(db)
	processFlowRepo := repository.NewProcessFlowRepository(db)
	projectRepo := repository.NewProjectRepository(db)
	sectionRepo := repository.NewSectionRepository(db)
	palletRepo := repository.NewPalletRepository(db)
	personRepo := repository.NewPersonRepository(db)
	roleRepo := repository.NewRoleRepository(db)
	permissionRepo := repository.NewPermissionRepository(db)
	auditRepo := repository.NewAuditLogRepository(db)

	// Services
	shipTypeService := service.NewShipTypeService(shipTypeRepo, db)
	typicalSectionService := service.NewTypicalSectionService(typicalSectionRepo, shipTypeRepo, db)
	workTypeService := service.NewWorkTypeService(workTypeRepo, db)
	workProcessService := service.NewWorkProcessService(workProcessRepo, workTypeRepo, logger, db)
	processFlowService := service.NewProcessFlowService(processFlowRepo, workProcessRepo, shipTypeRepo, typicalSectionRepo, txManager, wsHub, logger, db)
	projectService := service.NewProjectService(projectRepo, shipTypeRepo, db)
	sectionService := service.NewSectionService(sectionRepo, projectRepo, typicalSectionRepo, db)
	palletService := service.NewPalletService(palletRepo, projectRepo, sectionRepo, wsHub, db)
	personService := service.NewPersonService(personRepo, roleRepo, txManager, db)
	roleService := service.NewRoleService(roleRepo, permissionRepo, txManager, db)
	permissionService := service.NewPermissionService(permissionRepo, db)
	auditService := service.NewAuditLogService(auditRepo)
	exportService := service.NewExportService(sectionRepo, palletRepo)

	// Handlers
	shipTypeHandler := handler.NewShipTypeHandler(shipTypeService)
	typicalSectionHandler := handler.NewTypicalSectionHandler(typicalSectionService)
	workTypeHandler := handler.NewWorkTypeHandler(workTypeService)
	workProcessHandler := handler.NewWorkProcessHandler(workProcessService)
	processFlowHandler := handler.NewProcessFlowHandler(processFlowService)
	projectHandler := handler.NewProjectHandler(projectService)
	sectionHandler := handler.NewSectionHandler(sectionService, exportService)
	palletHandler := handler.NewPalletHandler(palletService, exportService)
	personHandler := handler.NewPersonHandler(personService)
	roleHandler := handler.NewRoleHandler(roleService)
	permissionHandler := handler.NewPermissionHandler(permissionService)
	auditHandler := handler.NewAuditHandler(auditService)

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(middleware.RequestLogger(logger))

	corsConfig := cors.DefaultConfig()
	corsConfig.AllowOrigins = []string{"http://localhost:5173", "http://127.0.0.1:5173"}
	corsConfig.AllowCredentials = true
	corsConfig.AllowHeaders = []string{"Origin", "Content-Length", "Content-Type", "Authorization", "Accept"}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	router.Use(cors.New(corsConfig))

	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	router.GET("/health", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "OK"})
	})

	router.GET("/ws", func(c *gin.Context) {
		websocket.ServeWs(wsHub, c, middleware.GetJWTSecret())
	})

	shipTypeHandler.RegisterRoutes(router.Group(""))
	typicalSectionHandler.RegisterRoutes(router.Group(""))
	workTypeHandler.RegisterRoutes(router.Group(""))
	workProcessHandler.RegisterRoutes(router.Group(""))
	processFlowHandler.RegisterRoutes(router.Group(""))
	projectHandler.RegisterRoutes(router.Group(""))
	sectionHandler.RegisterRoutes(router.Group(""))
	palletHandler.RegisterRoutes(router.Group(""))
	personHandler.RegisterRoutes(router.Group(""))
	roleHandler.RegisterRoutes(router.Group(""))
	permissionHandler.RegisterRoutes(router.Group(""))
	auditHandler.RegisterRoutes(router.Group(""))

	port := envOr("PORT", "8080")
	logger.Info("server listening", zap.String("port", port))
	if err := router.Run(":" + port); err != nil {
		logger.Fatal("server failed", zap.Error(err))
	}
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
