package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

func TestBalanceService_GetGroupBalances_RoundTrip(t *testing.T) {
	store := newFakeExpenseStore()
	members := &fakeMemberStore{members: testMembers()}
	expenses := NewExpenseService(store, members, NewSplitService())
	balances := NewBalanceService(store, members)

	// Alice pays $150 split equally among the three members
	_, err := expenses.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID:     1,
		PayerID:     1,
		Amount:      150.0,
		Description: "Team Dinner",
		SplitType:   utils.SplitTypeEqual,
	})
	require.NoError(t, err)

	result, err := balances.GetGroupBalances(1)

	require.NoError(t, err)
	require.Len(t, result, 3)

	assert.InDelta(t, 150.0, result[1].Paid, 1e-9)
	assert.InDelta(t, 50.0, result[1].Owes, 1e-9)
	assert.InDelta(t, 100.0, result[1].Balance, 1e-9)
	assert.Equal(t, utils.StatusOwedMoney, result[1].Status)

	for _, userID := range []int64{2, 3} {
		assert.InDelta(t, 0.0, result[userID].Paid, 1e-9)
		assert.InDelta(t, 50.0, result[userID].Owes, 1e-9)
		assert.InDelta(t, -50.0, result[userID].Balance, 1e-9)
		assert.Equal(t, utils.StatusOwesMoney, result[userID].Status)
	}
}

func TestBalanceService_GetGroupBalances_IncludesInactiveMembers(t *testing.T) {
	store := newFakeExpenseStore()
	members := &fakeMemberStore{members: append(testMembers(), models.Member{UserID: 4, Name: "Dave"})}
	expenses := NewExpenseService(store, members, NewSplitService())
	balances := NewBalanceService(store, members)

	// Dave is excluded from the only expense
	_, err := expenses.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID:       1,
		PayerID:       1,
		Amount:        90.0,
		Description:   "Lunch",
		SplitType:     utils.SplitTypeEqual,
		ExcludedUsers: []int64{4},
	})
	require.NoError(t, err)

	result, err := balances.GetGroupBalances(1)

	require.NoError(t, err)
	require.Contains(t, result, int64(4))
	assert.InDelta(t, 0.0, result[4].Paid, 1e-9)
	assert.InDelta(t, 0.0, result[4].Owes, 1e-9)
	assert.Equal(t, utils.StatusSettled, result[4].Status)
}

func TestBalanceService_GetGroupBalances_EmptyGroupHistory(t *testing.T) {
	store := newFakeExpenseStore()
	members := &fakeMemberStore{members: testMembers()}
	balances := NewBalanceService(store, members)

	result, err := balances.GetGroupBalances(1)

	require.NoError(t, err)
	require.Len(t, result, 3)
	for _, balance := range result {
		assert.Equal(t, utils.StatusSettled, balance.Status)
		assert.InDelta(t, 0.0, balance.Balance, 1e-9)
	}
}

func TestBalanceService_GetGroupBalances_MultipleExpenses(t *testing.T) {
	store := newFakeExpenseStore()
	members := &fakeMemberStore{members: testMembers()}
	expenses := NewExpenseService(store, members, NewSplitService())
	balances := NewBalanceService(store, members)

	_, err := expenses.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID: 1, PayerID: 1, Amount: 150.0, Description: "Dinner",
		SplitType: utils.SplitTypeEqual,
	})
	require.NoError(t, err)

	_, err = expenses.ProcessSplitRequest(&models.SplitExpenseRequest{
		GroupID: 1, PayerID: 2, Amount: 200.0, Description: "Groceries",
		SplitType:   utils.SplitTypePercentage,
		Percentages: map[int64]float64{1: 40, 2: 35, 3: 25},
	})
	require.NoError(t, err)

	result, err := balances.GetGroupBalances(1)
	require.NoError(t, err)

	// Alice: paid 150, owes 50 + 80
	assert.InDelta(t, 20.0, result[1].Balance, 1e-9)
	// Bob: paid 200, owes 50 + 70
	assert.InDelta(t, 80.0, result[2].Balance, 1e-9)
	// Charlie: owes 50 + 50
	assert.InDelta(t, -100.0, result[3].Balance, 1e-9)

	// Net positions always cancel out
	var net float64
	for _, balance := range result {
		net += balance.Balance
	}
	assert.InDelta(t, 0.0, net, 1e-9)
}
