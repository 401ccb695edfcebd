package services

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

// fakeExpenseStore is an in-memory ExpenseStore for service tests
type fakeExpenseStore struct {
	nextID   int64
	expenses []*models.Expense
	shares   []*models.Share
	items    map[int64][]models.Item
	receipts map[int64]string
	failWith error
}

func newFakeExpenseStore() *fakeExpenseStore {
	return &fakeExpenseStore{
		items:    make(map[int64][]models.Item),
		receipts: make(map[int64]string),
	}
}

func (f *fakeExpenseStore) StoreExpense(expense *models.Expense) (int64, error) {
	if f.failWith != nil {
		return 0, f.failWith
	}
	f.nextID++
	stored := *expense
	stored.ID = f.nextID
	f.expenses = append(f.expenses, &stored)
	return f.nextID, nil
}

func (f *fakeExpenseStore) StoreShares(expenseID int64, shares []*models.Share) error {
	if f.failWith != nil {
		return f.failWith
	}
	for _, share := range shares {
		stored := *share
		stored.ExpenseID = expenseID
		f.shares = append(f.shares, &stored)
	}
	return nil
}

func (f *fakeExpenseStore) StoreItems(expenseID int64, items []models.Item) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.items[expenseID] = append(f.items[expenseID], items...)
	return nil
}

func (f *fakeExpenseStore) StoreReceipt(expenseID int64, reference, receipt string) error {
	if f.failWith != nil {
		return f.failWith
	}
	f.receipts[expenseID] = receipt
	return nil
}

func (f *fakeExpenseStore) ListExpensesByGroup(groupID int64) ([]*models.Expense, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	var expenses []*models.Expense
	for _, expense := range f.expenses {
		if expense.GroupID == groupID {
			expenses = append(expenses, expense)
		}
	}
	return expenses, nil
}

func (f *fakeExpenseStore) ListSharesByGroup(groupID int64) ([]*models.Share, error) {
	if f.failWith != nil {
		return nil, f.failWith
	}
	inGroup := make(map[int64]bool)
	for _, expense := range f.expenses {
		if expense.GroupID == groupID {
			inGroup[expense.ID] = true
		}
	}
	var shares []*models.Share
	for _, share := range f.shares {
		if inGroup[share.ExpenseID] {
			shares = append(shares, share)
		}
	}
	return shares, nil
}

// fakeMemberStore is an in-memory MemberStore for service tests
type fakeMemberStore struct {
	members []models.Member
	err     error
}

func (f *fakeMemberStore) GetGroupMembers(groupID int64) ([]models.Member, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.members, nil
}

func newTestExpenseService(store *fakeExpenseStore) *ExpenseService {
	return NewExpenseService(store, &fakeMemberStore{members: testMembers()}, NewSplitService())
}

func TestExpenseService_CreateExpense_AppliesDefaults(t *testing.T) {
	store := newFakeExpenseStore()
	service := newTestExpenseService(store)

	expense := &models.Expense{
		GroupID:     1,
		PayerID:     1,
		Amount:      150.0,
		Description: "Team Dinner",
		SplitType:   utils.SplitTypeEqual,
	}

	expenseID, err := service.CreateExpense(expense)

	require.NoError(t, err)
	assert.Equal(t, int64(1), expenseID)
	assert.Equal(t, utils.DefaultCurrency, store.expenses[0].Currency)
	assert.Equal(t, utils.DefaultExpenseType, store.expenses[0].Type)
	assert.NotEmpty(t, store.expenses[0].ExpenseDate)
}

func TestExpenseService_CreateExpense_WrapsStoreFailure(t *testing.T) {
	store := newFakeExpenseStore()
	store.failWith = errors.New("connection refused")
	service := newTestExpenseService(store)

	_, err := service.CreateExpense(&models.Expense{GroupID: 1, PayerID: 1, Amount: 10})

	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindPersistence, appErr.Kind)
}

func TestExpenseService_RecordShares_NotIdempotent(t *testing.T) {
	store := newFakeExpenseStore()
	service := newTestExpenseService(store)

	splits := map[int64]*models.Share{
		1: {UserID: 1, UserName: "Alice", ShareAmount: 50, Percentage: 33.33},
		2: {UserID: 2, UserName: "Bob", ShareAmount: 50, Percentage: 33.33},
		3: {UserID: 3, UserName: "Charlie", ShareAmount: 50, Percentage: 33.34},
	}

	require.NoError(t, service.RecordShares(1, splits))
	require.NoError(t, service.RecordShares(1, splits))

	// Recording twice duplicates rows; this pins the current behavior
	assert.Len(t, store.shares, 6)
}

func TestExpenseService_ProcessSplitRequest_EqualEndToEnd(t *testing.T) {
	store := newFakeExpenseStore()
	service := newTestExpenseService(store)

	response, err := service.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID:     1,
		PayerID:     1,
		Amount:      150.0,
		Description: "Team Dinner",
		SplitType:   utils.SplitTypeEqual,
	})

	require.NoError(t, err)
	assert.Equal(t, int64(1), response.ExpenseID)
	assert.Equal(t, utils.SplitTypeEqual, response.SplitType)
	require.Len(t, response.Splits, 3)
	assert.InDelta(t, 150.0, sumShares(response.Splits), 1e-9)

	require.Len(t, store.expenses, 1)
	assert.Len(t, store.shares, 3)
}

func TestExpenseService_ProcessSplitRequest_ItemizedPersistsItems(t *testing.T) {
	store := newFakeExpenseStore()
	service := newTestExpenseService(store)

	response, err := service.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID:     1,
		PayerID:     2,
		Amount:      75.0,
		Description: "Shopping",
		SplitType:   utils.SplitTypeItemized,
		Items: []models.Item{
			{Name: "Milk", Price: 15.00, AssignedUsers: []int64{1, 2}},
			{Name: "Bread", Price: 10.00, AssignedUsers: []int64{2, 3}},
			{Name: "Shared Snacks", Price: 50.00},
		},
		ReceiptText: "MART\nMilk 15.00\nBread 10.00\nSnacks 50.00",
	})

	require.NoError(t, err)
	assert.Len(t, store.items[response.ExpenseID], 3)
	assert.NotEmpty(t, store.receipts[response.ExpenseID])
}

func TestExpenseService_ProcessSplitRequest_UnsupportedType(t *testing.T) {
	store := newFakeExpenseStore()
	service := newTestExpenseService(store)

	_, err := service.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID:     1,
		PayerID:     1,
		Amount:      100.0,
		Description: "Dinner",
		SplitType:   "weighted",
	})

	require.Error(t, err)
	var appErr *utils.AppError
	require.True(t, errors.As(err, &appErr))
	assert.Equal(t, utils.KindUnsupportedSplitType, appErr.Kind)

	// Nothing was persisted for the rejected request
	assert.Empty(t, store.expenses)
	assert.Empty(t, store.shares)
}

func TestExpenseService_ProcessSplitRequest_InvalidSplitLeavesNothingBehind(t *testing.T) {
	store := newFakeExpenseStore()
	service := newTestExpenseService(store)

	_, err := service.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID:     1,
		PayerID:     1,
		Amount:      100.0,
		Description: "Groceries",
		SplitType:   utils.SplitTypePercentage,
		Percentages: map[int64]float64{1: 50, 2: 30},
	})

	require.Error(t, err)
	assert.Empty(t, store.expenses)
	assert.Empty(t, store.shares)
}
