package services

import (
	"fmt"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

// ReportService exports a group's expense history, balances and suggested
// settlements as an Excel workbook
type ReportService struct {
	store       ExpenseStore
	members     MemberStore
	settlements *SettlementService
}

// NewReportService creates a new report service
func NewReportService(store ExpenseStore, members MemberStore, settlements *SettlementService) *ReportService {
	return &ReportService{
		store:       store,
		members:     members,
		settlements: settlements,
	}
}

// ExportGroupReport generates an Excel file for a group
func (s *ReportService) ExportGroupReport(groupID int64) (*excelize.File, string, error) {
	members, err := s.members.GetGroupMembers(groupID)
	if err != nil {
		return nil, "", utils.NewPersistenceError("get group members", err)
	}

	expenses, err := s.store.ListExpensesByGroup(groupID)
	if err != nil {
		return nil, "", utils.NewPersistenceError("list expenses", err)
	}

	shares, err := s.store.ListSharesByGroup(groupID)
	if err != nil {
		return nil, "", utils.NewPersistenceError("list shares", err)
	}

	settlementResult, err := s.settlements.CalculateGroupSettlements(groupID)
	if err != nil {
		return nil, "", err
	}

	f := excelize.NewFile()

	if err := s.createBalanceSheet(f, settlementResult); err != nil {
		return nil, "", fmt.Errorf("failed to create balance sheet: %v", err)
	}

	if err := s.createExpenseSheet(f, members, expenses, shares); err != nil {
		return nil, "", fmt.Errorf("failed to create expense sheet: %v", err)
	}

	f.DeleteSheet("Sheet1")

	filename := utils.CleanFileName(fmt.Sprintf("group_%d_report_%s.xlsx",
		groupID, time.Now().Format("2006-01-02")))

	return f, filename, nil
}

// createBalanceSheet writes the balance snapshot and the suggested settlements
func (s *ReportService) createBalanceSheet(f *excelize.File, result *models.SettlementResult) error {
	sheetName := "Balances"
	f.NewSheet(sheetName)
	sheetIndex, _ := f.GetSheetIndex(sheetName)
	f.SetActiveSheet(sheetIndex)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	headers := []string{"Member", "Paid", "Owes", "Balance", "Status"}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", string(rune('A'+len(headers)-1))), headerStyle)

	userIDs := sortedUserIDs(result.Balances)
	for i, userID := range userIDs {
		balance := result.Balances[userID]
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), balance.Name)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), balance.Paid)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), balance.Owes)
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), balance.Balance)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), balance.Status)
	}

	// Settlements section below the balance table
	settlementsStartRow := len(userIDs) + 4
	f.SetCellValue(sheetName, fmt.Sprintf("A%d", settlementsStartRow), "Suggested Settlements:")

	boldStyle, _ := f.NewStyle(&excelize.Style{Font: &excelize.Font{Bold: true}})
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", settlementsStartRow), fmt.Sprintf("A%d", settlementsStartRow), boldStyle)

	settlementsStartRow++
	settlementHeaders := []string{"From", "To", "Amount"}
	for i, header := range settlementHeaders {
		cell := fmt.Sprintf("%s%d", string(rune('A'+i)), settlementsStartRow)
		f.SetCellValue(sheetName, cell, header)
	}
	f.SetCellStyle(sheetName, fmt.Sprintf("A%d", settlementsStartRow), fmt.Sprintf("C%d", settlementsStartRow), headerStyle)

	for i, settlement := range result.Settlements {
		row := settlementsStartRow + 1 + i
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), settlement.FromName)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), settlement.ToName)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), settlement.Amount)
	}

	f.SetColWidth(sheetName, "A", "E", 15)

	return nil
}

// createExpenseSheet writes one row per expense with each member's share
func (s *ReportService) createExpenseSheet(f *excelize.File, members []models.Member, expenses []*models.Expense, shares []*models.Share) error {
	sheetName := "Expenses"
	f.NewSheet(sheetName)

	headerStyle, _ := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"E6F3FF"}, Pattern: 1},
	})

	headers := []string{"Date", "Description", "Paid By", "Split Type", "Amount"}
	for _, member := range members {
		headers = append(headers, member.Name)
	}
	for i, header := range headers {
		cell := fmt.Sprintf("%s1", string(rune('A'+i)))
		f.SetCellValue(sheetName, cell, header)
	}
	lastCol := string(rune('A' + len(headers) - 1))
	f.SetCellStyle(sheetName, "A1", fmt.Sprintf("%s1", lastCol), headerStyle)

	// Index shares by expense and user
	sharesByExpense := make(map[int64]map[int64]float64)
	for _, share := range shares {
		if sharesByExpense[share.ExpenseID] == nil {
			sharesByExpense[share.ExpenseID] = make(map[int64]float64)
		}
		sharesByExpense[share.ExpenseID][share.UserID] = share.ShareAmount
	}

	memberNames := make(map[int64]string, len(members))
	for _, member := range members {
		memberNames[member.UserID] = member.Name
	}

	for i, expense := range expenses {
		row := i + 2
		f.SetCellValue(sheetName, fmt.Sprintf("A%d", row), expense.ExpenseDate)
		f.SetCellValue(sheetName, fmt.Sprintf("B%d", row), expense.Description)
		f.SetCellValue(sheetName, fmt.Sprintf("C%d", row), memberNames[expense.PayerID])
		f.SetCellValue(sheetName, fmt.Sprintf("D%d", row), expense.SplitType)
		f.SetCellValue(sheetName, fmt.Sprintf("E%d", row), expense.Amount)

		for j, member := range members {
			if amount, ok := sharesByExpense[expense.ID][member.UserID]; ok {
				cell := fmt.Sprintf("%s%d", string(rune('A'+5+j)), row)
				f.SetCellValue(sheetName, cell, amount)
			}
		}
	}

	f.SetColWidth(sheetName, "A", lastCol, 15)

	return nil
}
