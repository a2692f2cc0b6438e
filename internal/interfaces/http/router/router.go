package router

import (
	"github.com/gin-gonic/gin"
	"github.com/goodsflow/backend/internal/infrastructure/auth"
	"github.com/goodsflow/backend/internal/infrastructure/config"
	"github.com/goodsflow/backend/internal/infrastructure/logger"
	"github.com/goodsflow/backend/internal/interfaces/http/handler"
	"github.com/goodsflow/backend/internal/interfaces/http/middleware"
	"go.uber.org/zap"
)

// Dependencies carries everything the router needs to assemble the engine
type Dependencies struct {
	Config           *config.Config
	Logger           *zap.Logger
	JWTService       *auth.JWTService
	SystemHandler    *handler.SystemHandler
	OrderHandler     *handler.PurchaseOrderHandler
	ReceptionHandler *handler.ReceptionHandler
	FinanceHandler   *handler.FinanceHandler
}

// New builds the gin engine: middleware chain, health endpoints, and the
// versioned API surface behind JWT authentication.
func New(deps Dependencies) (*gin.Engine, error) {
	if deps.Config.App.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	engine := gin.New()

	if len(deps.Config.HTTP.TrustedProxies) > 0 {
		if err := engine.SetTrustedProxies(deps.Config.HTTP.TrustedProxies); err != nil {
			return nil, err
		}
	}

	engine.Use(middleware.RequestID())
	engine.Use(logger.Recovery(deps.Logger))
	engine.Use(logger.GinMiddleware(deps.Logger))

	corsConfig := middleware.DefaultCORSConfig()
	if len(deps.Config.HTTP.CORSAllowOrigins) > 0 {
		corsConfig.AllowOrigins = deps.Config.HTTP.CORSAllowOrigins
	}
	if len(deps.Config.HTTP.CORSAllowMethods) > 0 {
		corsConfig.AllowMethods = deps.Config.HTTP.CORSAllowMethods
	}
	if len(deps.Config.HTTP.CORSAllowHeaders) > 0 {
		corsConfig.AllowHeaders = deps.Config.HTTP.CORSAllowHeaders
	}
	engine.Use(middleware.CORSWithConfig(corsConfig))

	// Health endpoints stay outside authentication
	engine.GET("/health", deps.SystemHandler.Health)
	engine.GET("/ready", deps.SystemHandler.Ready)

	api := engine.Group("/api/v1")
	api.Use(middleware.JWTAuthMiddleware(deps.JWTService))

	api.GET("/health", deps.SystemHandler.Health)

	orders := api.Group("/purchase-orders")
	{
		orders.POST("", deps.OrderHandler.Create)
		orders.GET("", deps.OrderHandler.List)
		orders.GET("/:id", deps.OrderHandler.GetByID)
		orders.GET("/by-number/:orderNumber", deps.OrderHandler.GetByOrderNumber)
		orders.POST("/:id/cancel", deps.OrderHandler.Cancel)
		orders.POST("/:id/receive", deps.ReceptionHandler.Receive)
		orders.GET("/:id/receptions", deps.ReceptionHandler.History)
	}

	finance := api.Group("/finance")
	{
		finance.GET("/movements", deps.FinanceHandler.ListMovements)
		finance.GET("/movements/:id", deps.FinanceHandler.GetMovement)
		finance.GET("/cash-shifts/open", deps.FinanceHandler.GetOpenShift)
		finance.GET("/bank-accounts", deps.FinanceHandler.ListBankAccounts)
	}

	return engine, nil
}
