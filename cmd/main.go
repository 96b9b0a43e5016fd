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
	"gorm.io/gorm"

	"github.com/francisconatale/easypay/internal/controller"
	"github.com/francisconatale/easypay/internal/middleware"
	"github.com/francisconatale/easypay/internal/model"
	"github.com/francisconatale/easypay/internal/repository"
	"github.com/francisconatale/easypay/internal/router"
	"github.com/francisconatale/easypay/internal/service"
	"github.com/francisconatale/easypay/internal/task"
	"github.com/francisconatale/easypay/pkg/database"
	"github.com/francisconatale/easypay/pkg/mercadopago"
)

// @title Easypay API
// @version 1.0
// @description 小商户收款后台：客户/销售/流水管理 + Mercado Pago 收款
// @BasePath /api
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
func main() {
	// 1. 初始化数据库
	db := initDatabase()

	// 2. JWT 密钥从环境注入
	initJWT()

	// 3. 初始化依赖
	deps := initDependencies(db)

	// 4. 启动定时任务
	initTasks(deps)

	// 5. 初始化路由
	r := router.SetupRouter(deps.Controllers)

	// 6. 启动服务
	startServer(r)
}

// ==================== 依赖容器 ====================

// Dependencies 依赖容器
type Dependencies struct {
	DB          *gorm.DB
	Repos       *Repositories
	Services    *Services
	Controllers *router.Controllers
}

// Repositories 仓库集合
type Repositories struct {
	User       repository.UserRepository
	OAuthState repository.OAuthStateRepository
	Credential repository.CredentialRepository
	Client     repository.ClientRepository
	Sale       repository.SaleRepository
	Transfer   repository.TransferRepository
}

// Services 服务集合
type Services struct {
	User      *service.UserService
	Client    *service.ClientService
	Sale      *service.SaleService
	Transfer  *service.TransferService
	Dashboard *service.DashboardService
	MPAuth    *service.MPAuthService
	Terminal  *service.TerminalService
	Order     *service.OrderService
}

// ==================== 初始化函数 ====================

// initDatabase 初始化数据库
func initDatabase() *gorm.DB {
	dsn := getEnv("DATABASE_DSN",
		"host=localhost user=easypay password=easypay dbname=easypay port=5432 sslmode=disable")

	db := database.InitDB(dsn,
		// 账号
		&model.SysUser{},
		// MP 绑定
		&model.MPCredential{}, &model.OAuthState{},
		// 经营数据
		&model.Client{}, &model.Sale{}, &model.Transfer{},
	)

	// 写入时自动填充 CreatedBy/UpdatedBy
	middleware.RegisterAuditCallbacks(db)

	return db
}

// initJWT 注入 JWT 密钥
func initJWT() {
	cfg := middleware.DefaultJWTConfig()
	if secret := getEnv("JWT_SECRET", ""); secret != "" {
		cfg.SecretKey = secret
	}
	middleware.SetJWTConfig(cfg)
}

// initDependencies 初始化所有依赖
func initDependencies(db *gorm.DB) *Dependencies {
	// -------- Repo 层 --------
	repos := initRepositories(db)

	// -------- MP 客户端 --------
	mp := mercadopago.NewClient(mercadopago.Config{
		ClientID:     getEnv("MP_CLIENT_ID", ""),
		ClientSecret: getEnv("MP_CLIENT_SECRET", ""),
		RedirectURI:  getEnv("MP_REDIRECT_URI", "http://localhost:8080/api/mp/callback"),
	})

	// -------- 业务服务 --------
	services := &Services{
		User:     service.NewUserService(repos.User),
		Client:   service.NewClientService(repos.Client),
		Sale:     service.NewSaleService(repos.Sale),
		Transfer: service.NewTransferService(repos.Transfer),
		MPAuth:   service.NewMPAuthService(repos.OAuthState, repos.Credential, mp),
		Terminal: service.NewTerminalService(repos.Credential, mp),
	}
	services.Order = service.NewOrderService(services.Terminal, mp)
	services.Dashboard = service.NewDashboardService(
		repos.Transfer, repos.Sale, repos.Client, repos.Credential,
	)

	// -------- Controller 层 --------
	controllers := initControllers(services)

	return &Dependencies{
		DB:          db,
		Repos:       repos,
		Services:    services,
		Controllers: controllers,
	}
}

// initRepositories 初始化所有仓库
func initRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		User:       repository.NewUserRepository(db),
		OAuthState: repository.NewOAuthStateRepository(db),
		Credential: repository.NewCredentialRepository(db),
		Client:     repository.NewClientRepository(db),
		Sale:       repository.NewSaleRepository(db),
		Transfer:   repository.NewTransferRepository(db),
	}
}

// initControllers 初始化所有控制器
func initControllers(svc *Services) *router.Controllers {
	frontendURL := getEnv("FRONTEND_URL", "http://localhost:3000")

	return &router.Controllers{
		User:      controller.NewUserController(svc.User),
		Client:    controller.NewClientController(svc.Client),
		Sale:      controller.NewSaleController(svc.Sale),
		Transfer:  controller.NewTransferController(svc.Transfer),
		Dashboard: controller.NewDashboardController(svc.Dashboard),
		MPAuth:    controller.NewMPAuthController(svc.MPAuth, frontendURL),
		Terminal:  controller.NewTerminalController(svc.Terminal),
		Order:     controller.NewOrderController(svc.Order, svc.Terminal),
	}
}

// ==================== 定时任务 ====================

// initTasks 初始化定时任务
func initTasks(deps *Dependencies) {
	// MP 凭证保活
	credentialTask := task.NewCredentialTask(
		deps.Repos.Credential,
		deps.Services.MPAuth,
	)
	credentialTask.Start()

	// 过期 state 清理
	cleanupTask := task.NewStateCleanupTask(deps.Repos.OAuthState)
	cleanupTask.Start()

	log.Println("定时任务已启动")
}

// ==================== 服务启动 ====================

// startServer 启动服务
func startServer(r *gin.Engine) {
	port := getEnv("SERVER_PORT", "8080")

	srv := &http.Server{
		Addr:    ":" + port,
		Handler: r,
	}

	// 异步启动服务
	go func() {
		log.Printf("服务启动在 :%s", port)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("服务启动失败: %v", err)
		}
	}()

	// 等待退出信号
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("正在关闭服务...")

	// 优雅关闭，最多等待 30 秒
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("服务强制关闭: %v", err)
	}

	log.Println("服务已退出")
}

// ==================== 工具函数 ====================

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
