package app

import (
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/config"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/employee"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/hire"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/holiday"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/leave"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/middleware"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/notification"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/permission"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/querycache"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/reimbursement"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/session"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/shared/debounce"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/upstream"
	"github.com/mujammilmahaldar12/Sarvagun-app-sub003/internal/viewstate"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

type moduleDeps struct {
	cfg    *config.Config
	logger *zap.Logger
	gormDB *gorm.DB
	rdb    *redis.Client
	inv    *querycache.Invalidator
	policy querycache.Policy
}

func registerModules(router *gin.Engine, d moduleDeps) error {
	cfg := d.cfg
	api := upstream.NewClient(cfg.Upstream.BaseURL, cfg.Upstream.Timeout, cfg.Upstream.AuthScheme, d.logger)
	search := debounce.New(cfg.Search.Debounce)

	// --- Repositories ---
	sessionRepo := session.NewRepository(d.gormDB)

	// --- Session & Permissions ---
	permissionService := permission.NewService(permission.NewUpstreamFetcher(api), sessionRepo, d.logger)
	issuer := session.NewTokenIssuer(cfg.JWT.Secret, cfg.JWT.Issuer, cfg.JWT.AccessTTL)
	sessionService := session.NewService(session.Deps{
		Repo:        sessionRepo,
		API:         api,
		Permissions: permissionService,
		Issuer:      issuer,
		Cache:       d.inv.Cache(),
		RefreshTTL:  cfg.JWT.RefreshTTL,
	}, d.logger)
	auth := middleware.AuthMiddleware(issuer, sessionService)

	// --- Services ---
	leaveService := leave.NewService(api, d.inv, d.policy, d.logger)
	employeeService := employee.NewService(api, d.inv, d.policy, d.logger)
	reimbursementService := reimbursement.NewService(api, d.inv, d.policy, d.logger)
	holidayService := holiday.NewService(api, d.inv.Cache(), d.policy, d.logger)
	notificationService := notification.NewService(api, d.inv, d.policy, notification.NewHub(d.logger), d.logger)
	hireService := hire.NewService(api, d.inv, d.policy, d.logger)

	sessionService.OnLogout(notificationService.ResetSession)

	// --- Handlers ---
	sessionHandler := session.NewHandler(sessionService, d.logger)
	permissionHandler := permission.NewHandler(permissionService, d.logger)
	leaveHandler := leave.NewHandler(leaveService, d.logger)
	employeeHandler := employee.NewHandler(employeeService, d.logger)
	reimbursementHandler := reimbursement.NewHandler(reimbursementService, d.logger)
	holidayHandler := holiday.NewHandler(holidayService, d.logger)
	notificationHandler := notification.NewHandler(notificationService, d.logger)
	hireHandler := hire.NewHandler(hireService, d.logger)
	viewHandler := viewstate.NewHandler(leaveService, reimbursementService, d.logger)

	// --- Routes Registration ---
	v1 := router.Group("/api/v1")
	{
		session.RegisterRoutes(v1, sessionHandler, auth)
		permission.RegisterRoutes(v1, permissionHandler, auth)
		leave.RegisterRoutes(v1, leaveHandler, auth, permissionService)
		employee.RegisterRoutes(v1, employeeHandler, auth, search)
		reimbursement.RegisterRoutes(v1, reimbursementHandler, auth, permissionService, search, d.rdb)
		holiday.RegisterRoutes(v1, holidayHandler, auth)
		notification.RegisterRoutes(v1, notificationHandler, auth)
		hire.RegisterRoutes(v1, hireHandler, auth, permissionService)
		viewstate.RegisterRoutes(v1, viewHandler, auth, search)
	}

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(200, gin.H{"status": "ok"})
	})
	return nil
}
