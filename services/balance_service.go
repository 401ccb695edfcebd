package services

import (
	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

// BalanceService derives per-member net positions from a group's expense and
// share history. Balances are recomputed on demand, never persisted.
type BalanceService struct {
	store   ExpenseStore
	members MemberStore
}

// NewBalanceService creates a new balance service
func NewBalanceService(store ExpenseStore, members MemberStore) *BalanceService {
	return &BalanceService{
		store:   store,
		members: members,
	}
}

// GetGroupBalances computes each member's total paid, total owed and net
// balance. Members with no expense activity are still present with zeroed
// amounts and a settled status.
func (s *BalanceService) GetGroupBalances(groupID int64) (map[int64]*models.Balance, error) {
	members, err := s.members.GetGroupMembers(groupID)
	if err != nil {
		return nil, utils.NewPersistenceError("get group members", err)
	}

	expenses, err := s.store.ListExpensesByGroup(groupID)
	if err != nil {
		return nil, utils.NewPersistenceError("list expenses", err)
	}

	shares, err := s.store.ListSharesByGroup(groupID)
	if err != nil {
		return nil, utils.NewPersistenceError("list shares", err)
	}

	balances := make(map[int64]*models.Balance, len(members))
	for _, member := range members {
		balances[member.UserID] = &models.Balance{
			UserID: member.UserID,
			Name:   member.Name,
			Status: utils.StatusSettled,
		}
	}

	for _, expense := range expenses {
		if balance, ok := balances[expense.PayerID]; ok {
			balance.Paid += expense.Amount
		}
	}

	for _, share := range shares {
		if balance, ok := balances[share.UserID]; ok {
			balance.Owes += share.ShareAmount
		}
	}

	for _, balance := range balances {
		balance.Paid = utils.RoundToCents(balance.Paid)
		balance.Owes = utils.RoundToCents(balance.Owes)
		balance.Balance = utils.RoundToCents(balance.Paid - balance.Owes)
		balance.Status = balanceStatus(balance.Balance)
	}

	return balances, nil
}

// balanceStatus classifies a net balance against the settled epsilon
func balanceStatus(balance float64) string {
	switch {
	case balance > utils.SettledEpsilon:
		return utils.StatusOwedMoney
	case balance < -utils.SettledEpsilon:
		return utils.StatusOwesMoney
	default:
		return utils.StatusSettled
	}
}
