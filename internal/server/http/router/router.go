package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"

	"github.com/veilmart/veilmart/internal/domain/model"
	"github.com/veilmart/veilmart/internal/server/http/handlers"
	"github.com/veilmart/veilmart/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.MarketFacade, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	authHandler := handlers.NewAuthHandler(facade)
	fulfillmentHandler := handlers.NewFulfillmentHandler(facade)
	walletHandler := handlers.NewWalletHandler(facade)
	membershipHandler := handlers.NewMembershipHandler(facade)
	requestHandler := handlers.NewUpdateRequestHandler(facade)

	api := engine.Group("/api")
	api.POST("/user/register", authHandler.Register)
	api.POST("/user/login", authHandler.Login)

	// Payment gateway webhook, authenticated at the network edge.
	api.POST("/gateway/deposits/:transactionID/confirm", walletHandler.ConfirmDeposit)

	authorized := api.Group("")
	authorized.Use(middleware.AuthRequired(facade))

	authorized.GET("/subscriptions", membershipHandler.Subscriptions)
	authorized.GET("/orders/:orderID/milestones", fulfillmentHandler.Milestones)
	authorized.GET("/milestones/:milestoneID/tasks", fulfillmentHandler.Tasks)
	authorized.POST("/orders/:orderID/cancel", fulfillmentHandler.CancelOrder)
	authorized.POST("/orders/:orderID/pay", walletHandler.PayOrder)

	authorized.GET("/user/wallet", walletHandler.Balance)
	authorized.GET("/user/wallet/transactions", walletHandler.History)
	authorized.POST("/user/wallet/deposits", walletHandler.Deposit)
	authorized.POST("/user/wallet/withdrawals", walletHandler.Withdraw)

	authorized.POST("/update-requests/:requestID/accept", requestHandler.Accept)
	authorized.POST("/update-requests/:requestID/reject", requestHandler.Reject)

	shop := authorized.Group("/shop")
	shop.Use(middleware.RequireRole(facade, model.RoleShop))
	shop.POST("/orders/:orderID/accept", fulfillmentHandler.AcceptOrder)
	shop.POST("/milestones", fulfillmentHandler.CreateMilestone)
	shop.PATCH("/milestones/:milestoneID", fulfillmentHandler.UpdateMilestone)
	shop.POST("/milestones/:milestoneID/tasks/:taskID/complete", fulfillmentHandler.CompleteTask)
	shop.POST("/memberships", membershipHandler.Purchase)
	shop.POST("/memberships/cancel", membershipHandler.Cancel)
	shop.POST("/update-requests", requestHandler.Create)

	staff := authorized.Group("/staff")
	staff.Use(middleware.RequireRole(facade, model.RoleStaff))
	staff.POST("/withdrawals/:transactionID/approve", walletHandler.ApproveWithdrawal)
	staff.POST("/withdrawals/:transactionID/cancel", walletHandler.CancelWithdrawal)
	staff.PATCH("/milestones/:milestoneID", fulfillmentHandler.UpdateMilestone)

	return engine
}
