package router

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.uber.org/zap"

	"sleepwell_store_v1_202610/internal/controller"
	"sleepwell_store_v1_202610/internal/middleware"
	"sleepwell_store_v1_202610/internal/service"
	"sleepwell_store_v1_202610/pkg/utils"
)

// Controllers 控制器集合
type Controllers struct {
	Product   *controller.ProductController
	Selection *controller.SelectionController
	Cart      *controller.CartController
}

// Options 路由层依赖
type Options struct {
	Logger   *zap.Logger
	Limiter  *utils.ActionLimiter
	Debounce time.Duration // 重新开始流程的去抖间隔
}

// SetupRouter 创建 gin 引擎并注册所有路由
func SetupRouter(ctrls *Controllers, opts Options) *gin.Engine {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Limiter == nil {
		opts.Limiter = utils.NewActionLimiter()
	}

	r := gin.New()
	r.Use(gin.Recovery(), middleware.RequestID(), middleware.ZapLogger(opts.Logger))
	InitRoutes(r, ctrls, opts)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, ctrls *Controllers, opts Options) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	r.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"code": 0, "message": "ok"})
	})

	// 2. API 路由组
	api := r.Group("/api")
	{
		// 商品
		products := api.Group("/products")
		{
			products.GET("", ctrls.Product.GetProducts)
			products.GET("/:id", ctrls.Product.GetProduct)
			products.GET("/slug/:slug", ctrls.Product.GetProductBySlug)
			products.GET("/:id/sizes", ctrls.Product.GetSizes)
			products.POST("/:id/resolve", ctrls.Product.Resolve)
		}

		// 选择流程
		selections := api.Group("/selections")
		{
			selections.POST("", ctrls.Selection.Create)
			selections.GET("/:id", ctrls.Selection.Get)
			// 双击"加入购物车"只处理第一次
			selections.POST("/:id/start",
				middleware.Debounce(opts.Limiter, service.ActionStart, opts.Debounce),
				ctrls.Selection.Restart,
			)
			selections.POST("/:id/answer", ctrls.Selection.Answer)
			selections.POST("/:id/cancel", ctrls.Selection.Cancel)
		}

		// 购物车
		carts := api.Group("/carts")
		{
			carts.GET("/:cart_id/items", ctrls.Cart.GetItems)
		}
	}
}
