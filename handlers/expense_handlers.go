package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/services"
	"github.com/grouptally/grouptally-backend/utils"
)

// Handler bundles the service dependencies for all endpoints
type Handler struct {
	Expenses    *services.ExpenseService
	Balances    *services.BalanceService
	Settlements *services.SettlementService
	Reports     *services.ReportService
}

// NewHandler creates a new handler with its service dependencies
func NewHandler(expenses *services.ExpenseService, balances *services.BalanceService, settlements *services.SettlementService, reports *services.ReportService) *Handler {
	return &Handler{
		Expenses:    expenses,
		Balances:    balances,
		Settlements: settlements,
		Reports:     reports,
	}
}

// SplitExpense creates an expense, computes its split and records the shares
func (h *Handler) SplitExpense(c *gin.Context) {
	var request models.SplitExpenseRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	response, err := h.Expenses.ProcessSplitRequest(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, response)
}

// CalculateSplit computes a split without persisting it
func (h *Handler) CalculateSplit(c *gin.Context) {
	var request models.CalculateSplitRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	splits, err := h.Expenses.CalculateSplit(&request)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{
		"totalAmount": request.Amount,
		"splitType":   request.SplitType,
		"splits":      splits,
	})
}

// ListExpenses returns a group's expense history
func (h *Handler) ListExpenses(c *gin.Context) {
	var request models.GroupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	expenses, err := h.Expenses.ListGroupExpenses(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"expenses": expenses})
}

// AttachReceipt stores receipt metadata against an expense
func (h *Handler) AttachReceipt(c *gin.Context) {
	var request models.AttachReceiptRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	if err := h.Expenses.AttachReceipt(request.ExpenseID, request.Receipt); err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"expenseId": request.ExpenseID})
}
