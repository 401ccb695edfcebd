package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/grouptally/grouptally-backend/handlers"
)

// SetupRoutes configures all API routes for the application
func SetupRoutes(router *gin.Engine, h *handlers.Handler) {
	v1 := router.Group("/api/v1")
	{
		// Expense endpoints
		v1.POST("/expenses/split", h.SplitExpense)
		v1.POST("/expenses/calculateSplit", h.CalculateSplit)
		v1.POST("/expenses/list", h.ListExpenses)
		v1.POST("/expenses/attachReceipt", h.AttachReceipt)

		// Balance and settlement endpoints
		v1.POST("/balances", h.GetBalances)
		v1.POST("/settlements", h.GetSettlements)

		// Report export endpoint
		v1.POST("/reports/export", h.ExportReport)
	}
}
