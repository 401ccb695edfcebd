package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

// GetBalances returns the group's current balance snapshot
func (h *Handler) GetBalances(c *gin.Context) {
	var request models.GroupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	balances, err := h.Balances.GetGroupBalances(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, gin.H{"balances": balances})
}

// GetSettlements returns suggested transfers for the group
func (h *Handler) GetSettlements(c *gin.Context) {
	var request models.GroupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	result, err := h.Settlements.CalculateGroupSettlements(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	utils.HandleSuccess(c, result)
}

// ExportReport streams the group report workbook
func (h *Handler) ExportReport(c *gin.Context) {
	var request models.GroupRequest

	if err := c.ShouldBindJSON(&request); err != nil {
		utils.HandleError(c, utils.NewValidationError(utils.ErrInvalidRequest))
		return
	}

	file, filename, err := h.Reports.ExportGroupReport(request.GroupID)
	if err != nil {
		utils.HandleError(c, err)
		return
	}

	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
}
