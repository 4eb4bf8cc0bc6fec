package routes

import (
	"fmt"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"academy-manager/internal/controllers"
	"academy-manager/internal/repositories"
	"academy-manager/internal/services"
	"academy-manager/pkg/config"
	"academy-manager/pkg/database"
	"academy-manager/pkg/filestorage"
	"academy-manager/pkg/mailer"
	"academy-manager/pkg/middleware"
	"academy-manager/pkg/service"
)

// Deps reúne o que o main já construiu e o roteador apenas consome.
type Deps struct {
	DB         *database.DB
	Cache      repositories.CacheRepositoryInterface
	SessionSvc service.SessionService
	Mailer     mailer.MailerInterface
	Logger     *zap.Logger
	Config     *config.Config
}

func InitRouter(e *echo.Echo, deps Deps) error {
	logger := deps.Logger
	cfg := deps.Config
	db := deps.DB
	logger.Info("InitRouter: registrando rotas")

	// --- 0. componentes comuns ---
	api := e.Group("/api")
	authMW := middleware.NewAuthMiddleware(deps.SessionSvc, logger)
	fileStorage, err := filestorage.NewLocalFileStorage(cfg.Storage.UploadDir)
	if err != nil {
		return fmt.Errorf("falha ao criar o armazenamento de arquivos: %w", err)
	}
	txManager := repositories.NewTxManager(db)

	// --- 1. repositórios ---
	userRepo := repositories.NewUserRepository(db, logger)
	studentRepo := repositories.NewStudentRepository(db, logger)
	deviceRepo := repositories.NewDeviceRepository(db, logger)
	equipmentRepo := repositories.NewEquipmentRepository(db, logger)
	loanRepo := repositories.NewLoanRepository(db, logger)
	bookRepo := repositories.NewBookRepository(db, logger)
	copyRepo := repositories.NewCopyRepository(db, logger)
	bookLoanRepo := repositories.NewBookLoanRepository(db, logger)
	inventoryRepo := repositories.NewInventoryRepository(db, logger)
	typeRepo := repositories.NewDeviceTypeRepository(db, logger)
	eventRepo := repositories.NewEventRepository(db, logger)
	dashboardRepo := repositories.NewDashboardRepository(db, logger)
	exportRepo := repositories.NewExportRepository(db, logger)
	backupRepo := repositories.NewBackupRepository(db, logger)

	// --- 2. serviços ---
	deviceSync := services.NewDeviceSync(deviceRepo, loanRepo, logger)
	authService := services.NewAuthService(userRepo, deps.Cache, txManager, logger, &cfg.Auth)
	userService := services.NewUserService(userRepo, txManager, fileStorage, logger)
	studentService := services.NewStudentService(studentRepo, loanRepo, bookLoanRepo, txManager, fileStorage, logger)
	deviceService := services.NewDeviceService(deviceRepo, loanRepo, txManager, logger)
	equipmentService := services.NewEquipmentService(equipmentRepo, deviceSync, txManager, logger)
	loanService := services.NewLoanService(loanRepo, deviceRepo, studentRepo, txManager, logger)
	bookService := services.NewBookService(bookRepo, txManager, logger)
	copyService := services.NewCopyService(copyRepo, bookRepo, bookLoanRepo, txManager, logger)
	bookLoanService := services.NewBookLoanService(bookLoanRepo, copyRepo, studentRepo, userRepo, txManager, deps.Mailer, logger)
	inventoryService := services.NewInventoryService(inventoryRepo, txManager, logger)
	typeService := services.NewDeviceTypeService(typeRepo, txManager, logger)
	eventService := services.NewEventService(eventRepo, txManager, logger)
	dashboardService := services.NewDashboardService(dashboardRepo, bookLoanRepo, logger)
	importService := services.NewImportService(studentRepo, deviceRepo, equipmentRepo, inventoryRepo, typeRepo,
		deviceSync, txManager, fileStorage, logger)
	exportService := services.NewExportService(exportRepo, logger)
	backupService := services.NewBackupService(backupRepo, cfg.Storage.BackupDir, logger)

	// --- 3. controllers ---
	authCtrl := controllers.NewAuthController(authService, deps.SessionSvc, cfg.Session.CookieSecure, logger)
	userCtrl := controllers.NewUserController(userService, logger)
	studentCtrl := controllers.NewStudentController(studentService, logger)
	deviceCtrl := controllers.NewDeviceController(deviceService, logger)
	equipmentCtrl := controllers.NewEquipmentController(equipmentService, logger)
	loanCtrl := controllers.NewLoanController(loanService, logger)
	bookCtrl := controllers.NewBookController(bookService, copyService, logger)
	bookLoanCtrl := controllers.NewBookLoanController(bookLoanService, logger)
	inventoryCtrl := controllers.NewInventoryController(inventoryService, logger)
	typeCtrl := controllers.NewDeviceTypeController(typeService, logger)
	eventCtrl := controllers.NewEventController(eventService, logger)
	dashboardCtrl := controllers.NewDashboardController(dashboardService, logger)
	importCtrl := controllers.NewImportController(importService, logger)
	exportCtrl := controllers.NewExportController(exportService, logger)
	backupCtrl := controllers.NewBackupController(backupService, logger)

	// --- 4. rotas ---
	e.Static("/uploads", cfg.Storage.UploadDir)

	runAuthRouter(api, authCtrl, authMW)

	secureGroup := api.Group("", authMW.Auth)
	runUserRouter(secureGroup, userCtrl, authMW)
	runStudentRouter(secureGroup, studentCtrl, authMW)
	runDeviceRouter(secureGroup, deviceCtrl, authMW)
	runEquipmentRouter(secureGroup, equipmentCtrl, authMW)
	runLoanRouter(secureGroup, loanCtrl, authMW)
	runLibraryRouter(secureGroup, bookCtrl, bookLoanCtrl, authMW)
	runInventoryRouter(secureGroup, inventoryCtrl, authMW)
	runDeviceTypeRouter(secureGroup, typeCtrl, authMW)
	runEventRouter(secureGroup, eventCtrl, authMW)
	runReportRouter(secureGroup, dashboardCtrl, exportCtrl, authMW)
	runUploadRouter(secureGroup, importCtrl)
	runSystemRouter(secureGroup, backupCtrl, authMW)

	logger.Info("InitRouter: rotas registradas")
	return nil
}
