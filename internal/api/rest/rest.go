package rest

import (
	"github.com/gin-gonic/gin"

	"github.com/feral-file/genesis-ledger/internal/api/middleware"
)

// SetupRoutes configures all REST API routes
func SetupRoutes(router *gin.Engine, handler Handler, authCfg middleware.AuthConfig) {
	// Health check endpoint (no auth, no version prefix)
	router.GET("/health", handler.HealthCheck)

	// API v1 routes
	v1 := router.Group("/api/v1")
	{
		// Ledger reads (public)
		v1.GET("/tokens/:id", handler.GetToken)
		v1.GET("/supply", handler.GetSupply)
		v1.GET("/sale", handler.GetSale)
		v1.GET("/accounts/:address/balance", handler.GetBalance)
		v1.GET("/royalty", handler.GetRoyalty)

		// Holder operations (open: authorization is enforced by the ledger
		// itself against the request's caller address)
		v1.POST("/mint", handler.Mint)
		v1.POST("/transfers", handler.Transfer)
		v1.POST("/transfers/leveled", handler.LeveledTransfer)
		v1.POST("/approvals", handler.Approve)
		v1.POST("/approvals/operator", handler.SetApprovalForAll)
		v1.POST("/burns", handler.Burn)
		v1.POST("/loans", handler.Loan)
		v1.POST("/loans/retrieve", handler.RetrieveLoan)

		// Administrative operations (requires authentication; the contract
		// additionally checks the caller is the contract owner)
		admin := v1.Group("/admin", middleware.Auth(authCfg))
		{
			admin.POST("/stages/:stage/start", handler.StartStage)
			admin.PUT("/allowlist-root", handler.SetAllowlistRoot)
			admin.PUT("/paused", handler.SetPaused)
			admin.PUT("/revealed", handler.Reveal)
			admin.POST("/withdraw", handler.Withdraw)
			admin.PUT("/royalty/recipient", handler.SetRoyaltyRecipient)
			admin.PUT("/royalty/percentage", handler.SetRoyaltyPercentage)
		}
	}
}
