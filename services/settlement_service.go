package services

import (
	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

// SettlementService turns a balance snapshot into a short list of suggested
// transfers that zero out the group's imbalances. Suggestions are advisory
// and never persisted.
type SettlementService struct {
	balances *BalanceService
}

// NewSettlementService creates a new settlement service
func NewSettlementService(balances *BalanceService) *SettlementService {
	return &SettlementService{balances: balances}
}

// partyBalance tracks one side of the greedy matcher
type partyBalance struct {
	userID    int64
	name      string
	remaining float64
}

// CalculateGroupSettlements computes the current balance snapshot for a group
// and derives settlement suggestions from it
func (s *SettlementService) CalculateGroupSettlements(groupID int64) (*models.SettlementResult, error) {
	balances, err := s.balances.GetGroupBalances(groupID)
	if err != nil {
		return nil, err
	}

	return &models.SettlementResult{
		Settlements: s.SuggestSettlements(balances),
		Balances:    balances,
	}, nil
}

// SuggestSettlements greedily matches creditors against debtors, emitting a
// transfer of the smaller remaining amount each round and advancing past any
// party whose remainder drops below one cent. Parties are discovered in
// ascending user id order, which fixes which specific pairs are produced when
// several minimal solutions exist; it is a tie-break, not an optimality claim.
func (s *SettlementService) SuggestSettlements(balances map[int64]*models.Balance) []models.Settlement {
	var creditors, debtors []partyBalance
	for _, userID := range sortedUserIDs(balances) {
		balance := balances[userID]
		if balance.Balance > utils.SettledEpsilon {
			creditors = append(creditors, partyBalance{userID: balance.UserID, name: balance.Name, remaining: balance.Balance})
		} else if balance.Balance < -utils.SettledEpsilon {
			debtors = append(debtors, partyBalance{userID: balance.UserID, name: balance.Name, remaining: -balance.Balance})
		}
	}

	var settlements []models.Settlement

	i, j := 0, 0
	for i < len(creditors) && j < len(debtors) {
		creditor := &creditors[i]
		debtor := &debtors[j]

		amount := utils.RoundToCents(utils.MinFloat(creditor.remaining, debtor.remaining))
		if amount > 0 {
			settlements = append(settlements, models.Settlement{
				FromUserID: debtor.userID,
				FromName:   debtor.name,
				ToUserID:   creditor.userID,
				ToName:     creditor.name,
				Amount:     amount,
			})
		}

		creditor.remaining -= amount
		debtor.remaining -= amount

		if creditor.remaining < utils.SettledEpsilon {
			i++
		}
		if debtor.remaining < utils.SettledEpsilon {
			j++
		}
	}

	return settlements
}
