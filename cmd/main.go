package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"sleepwell_store_v1_202610/internal/config"
	"sleepwell_store_v1_202610/internal/controller"
	"sleepwell_store_v1_202610/internal/model"
	"sleepwell_store_v1_202610/internal/repository"
	"sleepwell_store_v1_202610/internal/router"
	"sleepwell_store_v1_202610/internal/service"
	"sleepwell_store_v1_202610/internal/task"
	"sleepwell_store_v1_202610/pkg/database"
	"sleepwell_store_v1_202610/pkg/logger"
	"sleepwell_store_v1_202610/pkg/utils"
)

// @title Sleepwell Store API
// @version 1.0
// @description 商品规格选择与加购接口
// @BasePath /
func main() {
	cfg := config.Load()
	gin.SetMode(cfg.GinMode)

	// 1. 日志
	zl, err := logger.New(cfg.AppEnv, cfg.LogLevel)
	if err != nil {
		log.Fatalf("日志初始化失败: %v", err)
	}
	defer func() { _ = zl.Sync() }()

	// 2. 初始化数据库
	db := initDatabase(cfg)

	// 3. 初始化依赖
	deps := initDependencies(cfg, db, zl)

	// 4. 启动定时任务
	sweep := task.NewSessionSweepTask(deps.Services.Selection, cfg.SessionSweepCron, zl)
	if err := sweep.Start(); err != nil {
		zl.Fatal("定时任务启动失败", zap.Error(err))
	}

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers, router.Options{
		Logger:   zl,
		Limiter:  deps.Limiter,
		Debounce: cfg.CartAddDebounce,
	})

	// 6. 启动服务
	startServer(cfg, r, zl)

	sweep.Stop()
	// 等待后台加购完成
	deps.Services.Cart.Wait()
	zl.Info("服务已退出")
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
	Limiter     *utils.ActionLimiter
}

// Repositories 仓库集合
type Repositories struct {
	Product repository.ProductRepository
	Cart    repository.CartRepository
}

// Services 服务集合
type Services struct {
	Storage   *service.StorageService
	Product   *service.ProductService
	Cart      *service.CartService
	Selection *service.SelectionService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase(cfg *config.Config) *gorm.DB {
	level := gormlogger.Info
	if cfg.IsProduction() {
		level = gormlogger.Warn
	}
	return database.InitDB(database.Options{
		Driver:   cfg.DBDriver,
		DSN:      cfg.DBDSN,
		LogLevel: level,
	},
		// Product
		&model.Product{}, &model.ProductVariant{}, &model.ProductImage{}, &model.ProductBadge{},
		// Cart
		&model.CartItem{},
	)
}

// initDependencies 初始化所有依赖
func initDependencies(cfg *config.Config, db *gorm.DB, zl *zap.Logger) *Dependencies {
	// -------- Repo 层 --------
	repos := &Repositories{
		Product: repository.NewProductRepository(db),
		Cart:    repository.NewCartRepository(db),
	}

	// -------- 基础服务 --------
	storageSvc := initStorageService(cfg, zl)

	store, err := service.NewCartStore(&service.CartStoreConfig{
		Kind:    cfg.CartStore,
		URL:     cfg.CartStoreURL,
		Timeout: cfg.CartStoreTimeout,
	}, repos.Cart)
	if err != nil {
		zl.Fatal("购物车初始化失败", zap.Error(err))
	}

	// -------- 业务服务 --------
	limiter := utils.NewActionLimiter()
	services := &Services{Storage: storageSvc}
	services.Product = service.NewProductService(repos.Product, storageSvc, zl.Named("product"))
	services.Cart = service.NewCartService(store, repos.Cart, storageSvc, cfg.CartStoreTimeout, zl.Named("cart"))
	services.Selection = service.NewSelectionService(services.Product, services.Cart, limiter, service.SelectionConfig{
		TTL:         cfg.SessionTTL,
		Debounce:    cfg.CartAddDebounce,
		SoftPrompts: cfg.PromptSoftAttrs,
	}, zl.Named("selection"))

	// -------- Controller 层 --------
	controllers := &router.Controllers{
		Product:   controller.NewProductController(services.Product),
		Selection: controller.NewSelectionController(services.Selection),
		Cart:      controller.NewCartController(services.Cart),
	}

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
		Limiter:     limiter,
	}
}

// initStorageService 初始化存储服务
// 失败时退化为原样返回图片路径
func initStorageService(cfg *config.Config, zl *zap.Logger) *service.StorageService {
	storageSvc, err := service.NewStorageService(&service.StorageConfig{
		Provider:  cfg.StorageProvider,
		Bucket:    cfg.AWSBucket,
		Region:    cfg.AWSRegion,
		AccessKey: cfg.AWSAccessKey,
		SecretKey: cfg.AWSSecretKey,
		CDNDomain: cfg.AWSCDNDomain,
		BaseURL:   cfg.StorageBaseURL,
		Expires:   cfg.ImageURLExpires,
	})
	if err != nil {
		zl.Warn("存储服务初始化失败，图片地址将原样返回", zap.Error(err))
		return service.NewStorageServiceWithProvider(nil)
	}
	return storageSvc
}

// ==================== 服务启动 ====================

// startServer 启动服务，收到退出信号后返回
func startServer(cfg *config.Config, r *gin.Engine, zl *zap.Logger) {
	srv := &http.Server{
		Addr:    ":" + cfg.ServerPort,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		zl.Info("服务启动", zap.String("addr", srv.Addr))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			zl.Fatal("服务启动失败", zap.Error(err))
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	zl.Info("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		zl.Error("服务强制关闭", zap.Error(err))
	}
}
