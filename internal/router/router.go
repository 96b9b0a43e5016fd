package router

import (
	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"

	"github.com/francisconatale/easypay/internal/controller"
	"github.com/francisconatale/easypay/internal/middleware"

	_ "github.com/francisconatale/easypay/docs"
)

// Controllers 路由装配需要的全部控制器
type Controllers struct {
	User      *controller.UserController
	Client    *controller.ClientController
	Sale      *controller.SaleController
	Transfer  *controller.TransferController
	Dashboard *controller.DashboardController
	MPAuth    *controller.MPAuthController
	Terminal  *controller.TerminalController
	Order     *controller.OrderController
}

// SetupRouter 创建 gin 引擎并装配路由
func SetupRouter(c *Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())

	InitRoutes(r, c)
	return r
}

// InitRoutes 注册所有路由
func InitRoutes(r *gin.Engine, c *Controllers) {
	// 1. Swagger 文档路由
	// 访问 http://localhost:8080/swagger/index.html 即可查看
	r.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	// 2. API 路由组
	api := r.Group("/api")
	{
		// auth 鉴权组，登录/注册/刷新不需要 JWT
		auth := api.Group("/auth")
		{
			auth.POST("/login", c.User.Login)
			auth.POST("/register", c.User.Register)
			auth.POST("/refresh", c.User.RefreshToken)
		}

		// MP 授权回调是浏览器跳转，不带 JWT
		api.GET("/mp/callback", c.MPAuth.Callback)

		// 其余接口全部要求登录
		authed := api.Group("")
		authed.Use(middleware.JWTAuth(), middleware.AuditContext())
		{
			authed.GET("/auth/profile", c.User.GetProfile)
			authed.PUT("/auth/password", c.User.ChangePassword)

			// 客户档案
			clients := authed.Group("/clients")
			{
				clients.GET("", c.Client.List)
				clients.GET("/:id", c.Client.Get)
				clients.POST("", c.Client.Create)
				clients.PUT("/:id", c.Client.Update)
				clients.DELETE("/:id", c.Client.Delete)
			}

			// 销售记录
			sales := authed.Group("/sales")
			{
				sales.GET("", c.Sale.List)
				sales.POST("", c.Sale.Create)
				sales.PUT("/:id", c.Sale.Update)
				sales.DELETE("/:id", c.Sale.Delete)
			}

			// 收款流水和开票
			transfers := authed.Group("/transfers")
			{
				transfers.GET("", c.Transfer.List)
				transfers.POST("", c.Transfer.Create)
				transfers.POST("/import", c.Transfer.Import)
				transfers.GET("/invoices", c.Transfer.ListInvoices)
				transfers.POST("/invoices", c.Transfer.AssignInvoice)
				transfers.PUT("/:id", c.Transfer.Update)
				transfers.DELETE("/:id", c.Transfer.Delete)
			}

			// 仪表盘
			authed.GET("/dashboard/stats", c.Dashboard.Stats)

			// MP 绑定与终端配置
			mp := authed.Group("/mp")
			{
				mp.POST("/link", c.MPAuth.Link)
				mp.DELETE("/link", c.MPAuth.Disconnect)

				mp.GET("/terminal", c.Terminal.GetTerminal)
				mp.GET("/stores", c.Terminal.ListStores)
				mp.POST("/stores", c.Terminal.CreateStore)
				mp.DELETE("/stores/:id", c.Terminal.DeleteStore)
				mp.GET("/pos", c.Terminal.ListPos)
				mp.POST("/pos", c.Terminal.CreatePos)
				mp.DELETE("/pos/:id", c.Terminal.DeletePos)

				mp.PUT("/orders", c.Order.CreateOrder)
				mp.DELETE("/orders", c.Order.DeleteOrder)
				mp.POST("/preferences", c.Order.CreatePreference)
			}
		}
	}
}
