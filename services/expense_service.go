package services

import (
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

// ExpenseStore is the persistence collaborator for the expense ledger
type ExpenseStore interface {
	StoreExpense(expense *models.Expense) (int64, error)
	StoreShares(expenseID int64, shares []*models.Share) error
	StoreItems(expenseID int64, items []models.Item) error
	StoreReceipt(expenseID int64, reference, receipt string) error
	ListExpensesByGroup(groupID int64) ([]*models.Expense, error)
	ListSharesByGroup(groupID int64) ([]*models.Share, error)
}

// MemberStore is the membership collaborator. Member order is significant:
// it drives remainder assignment in the splitting engine.
type MemberStore interface {
	GetGroupMembers(groupID int64) ([]models.Member, error)
}

// ExpenseService owns the expense ledger: creating expense records and
// persisting computed shares, items and receipt metadata
type ExpenseService struct {
	store    ExpenseStore
	members  MemberStore
	splitter *SplitService
}

// NewExpenseService creates a new expense service
func NewExpenseService(store ExpenseStore, members MemberStore, splitter *SplitService) *ExpenseService {
	return &ExpenseService{
		store:    store,
		members:  members,
		splitter: splitter,
	}
}

// CreateExpense assigns a new identity and persists the expense record.
// Group and payer existence are enforced by the store's referential
// constraints, not validated here.
func (s *ExpenseService) CreateExpense(expense *models.Expense) (int64, error) {
	if expense.ExpenseDate == "" {
		expense.ExpenseDate = time.Now().Format("2006-01-02")
	}
	if expense.Currency == "" {
		expense.Currency = utils.DefaultCurrency
	}
	if expense.Type == "" {
		expense.Type = utils.DefaultExpenseType
	}

	expenseID, err := s.store.StoreExpense(expense)
	if err != nil {
		return 0, utils.NewPersistenceError("create expense", err)
	}
	expense.ID = expenseID

	return expenseID, nil
}

// RecordShares persists one row per user from a completed split computation.
// Not idempotent: calling twice duplicates rows, so callers must not retry
// blindly after a failure.
func (s *ExpenseService) RecordShares(expenseID int64, splits map[int64]*models.Share) error {
	shares := make([]*models.Share, 0, len(splits))
	for _, userID := range sortedUserIDs(splits) {
		shares = append(shares, splits[userID])
	}

	if err := s.store.StoreShares(expenseID, shares); err != nil {
		return utils.NewPersistenceError("record shares", err)
	}
	return nil
}

// RecordItems persists itemized receipt lines, preserving the assigned-user
// set per item for history
func (s *ExpenseService) RecordItems(expenseID int64, items []models.Item) error {
	if err := s.store.StoreItems(expenseID, items); err != nil {
		return utils.NewPersistenceError("record items", err)
	}
	return nil
}

// AttachReceipt stores raw receipt text or a URL against an expense
func (s *ExpenseService) AttachReceipt(expenseID int64, receipt string) error {
	reference := uuid.NewString()
	if err := s.store.StoreReceipt(expenseID, reference, receipt); err != nil {
		return utils.NewPersistenceError("attach receipt", err)
	}
	return nil
}

// ListGroupExpenses returns the group's expense history
func (s *ExpenseService) ListGroupExpenses(groupID int64) ([]*models.Expense, error) {
	expenses, err := s.store.ListExpensesByGroup(groupID)
	if err != nil {
		return nil, utils.NewPersistenceError("list expenses", err)
	}
	return expenses, nil
}

// ProcessSplitRequest creates an expense, computes its split and persists the
// resulting shares as one logical unit. If persistence fails after computation
// the computed shares are discarded; nothing is retried.
func (s *ExpenseService) ProcessSplitRequest(request *models.SplitExpenseRequest) (*models.SplitExpenseResponse, error) {
	if err := utils.ValidatePositive(request.Amount, "amount"); err != nil {
		return nil, err
	}
	if err := utils.ValidateRequired(request.Description, "description"); err != nil {
		return nil, err
	}

	config, err := BuildSplitConfig(request.SplitType, request.ExcludedUsers, request.Percentages, request.Amounts, request.Items)
	if err != nil {
		return nil, err
	}

	members, err := s.members.GetGroupMembers(request.GroupID)
	if err != nil {
		return nil, utils.NewPersistenceError("get group members", err)
	}

	splits, err := s.splitter.Compute(request.Amount, members, config)
	if err != nil {
		return nil, err
	}

	expense := &models.Expense{
		GroupID:     request.GroupID,
		PayerID:     request.PayerID,
		Amount:      request.Amount,
		Description: request.Description,
		ExpenseDate: request.ExpenseDate,
		Location:    request.Location,
		Type:        request.Type,
		SplitType:   request.SplitType,
	}

	expenseID, err := s.CreateExpense(expense)
	if err != nil {
		return nil, err
	}

	if err := s.RecordShares(expenseID, splits); err != nil {
		return nil, err
	}

	if request.SplitType == utils.SplitTypeItemized {
		if err := s.RecordItems(expenseID, request.Items); err != nil {
			return nil, err
		}
	}

	if request.ReceiptText != "" {
		if err := s.AttachReceipt(expenseID, request.ReceiptText); err != nil {
			return nil, err
		}
	}

	slog.Info("expense split recorded",
		"expense_id", expenseID,
		"group_id", request.GroupID,
		"split_type", request.SplitType,
		"amount", request.Amount,
		"shares", len(splits),
	)

	return &models.SplitExpenseResponse{
		ExpenseID:   expenseID,
		TotalAmount: request.Amount,
		SplitType:   request.SplitType,
		Splits:      splits,
	}, nil
}

// CalculateSplit computes a split without persisting anything
func (s *ExpenseService) CalculateSplit(request *models.CalculateSplitRequest) (map[int64]*models.Share, error) {
	config, err := BuildSplitConfig(request.SplitType, request.ExcludedUsers, request.Percentages, request.Amounts, request.Items)
	if err != nil {
		return nil, err
	}

	members, err := s.members.GetGroupMembers(request.GroupID)
	if err != nil {
		return nil, utils.NewPersistenceError("get group members", err)
	}

	return s.splitter.Compute(request.Amount, members, config)
}
