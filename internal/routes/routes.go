package routes

import (
	"github.com/go-redis/redis/v8"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"labstock/internal/controllers"
	"labstock/internal/repositories"
	"labstock/internal/services"
	"labstock/pkg/config"
	"labstock/pkg/filestorage"
	"labstock/pkg/middleware"
	"labstock/pkg/service"
)

// InitRouter собирает весь граф зависимостей: репозитории, сервисы,
// контроллеры и маршруты.
func InitRouter(e *echo.Echo, dbConn *pgxpool.Pool, redisClient *redis.Client, jwtSvc service.JWTService, logger *zap.Logger, cfg *config.Config) {
	api := e.Group("/api")

	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Server.UploadDir)
	if err != nil {
		logger.Fatal("не удалось создать файловое хранилище", zap.Error(err))
	}
	txManager := repositories.NewTxManager(dbConn)

	// --- Репозитории ---
	userRepo := repositories.NewUserRepository(dbConn, logger)
	cacheRepo := repositories.NewRedisCacheRepository(redisClient)
	laboratoryRepo := repositories.NewLaboratoryRepository(dbConn)
	categoryRepo := repositories.NewCategoryRepository(dbConn)
	equipmentRepo := repositories.NewEquipmentRepository(dbConn)
	itemRepo := repositories.NewItemRepository(dbConn)
	reportRepo := repositories.NewReportRepository(dbConn)

	// --- Сервисы ---
	authService := services.NewAuthService(userRepo, cacheRepo, jwtSvc, logger, &cfg.Auth)
	userService := services.NewUserService(userRepo, logger)
	laboratoryService := services.NewLaboratoryService(laboratoryRepo, userRepo, fileStorage, logger)
	categoryService := services.NewCategoryService(categoryRepo, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, laboratoryRepo, txManager, fileStorage, logger)
	itemService := services.NewItemService(itemRepo, logger)
	reportService := services.NewReportService(reportRepo, logger)

	// --- Контроллеры ---
	authCtrl := controllers.NewAuthController(authService, logger)
	userCtrl := controllers.NewUserController(userService, fileStorage, logger)
	laboratoryCtrl := controllers.NewLaboratoryController(laboratoryService, fileStorage, logger)
	categoryCtrl := controllers.NewCategoryController(categoryService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, fileStorage, logger)
	itemCtrl := controllers.NewItemController(itemService, logger)
	reportCtrl := controllers.NewReportController(reportService, logger)

	// Сервис авторизации реализует проверку отозванных токенов.
	authMW := middleware.NewAuthMiddleware(jwtSvc, authService, logger)
	secureGroup := api.Group("", authMW.Auth)

	runAuthRouter(api, secureGroup, authCtrl)
	runUserRouter(secureGroup, userCtrl, authMW)
	runLaboratoryRouter(secureGroup, laboratoryCtrl, authMW)
	runCategoryRouter(secureGroup, categoryCtrl, authMW)
	runEquipmentRouter(secureGroup, equipmentCtrl, authMW)
	runItemRouter(secureGroup, itemCtrl, authMW)
	runReportRouter(secureGroup, reportCtrl, authMW)

	logger.Info("Маршруты успешно зарегистрированы")
}
