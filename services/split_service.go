package services

import (
	"sort"

	"github.com/grouptally/grouptally-backend/models"
	"github.com/grouptally/grouptally-backend/utils"
)

// SplitService computes per-user shares for the four split strategies.
// Every strategy guarantees the returned shares sum to the expense total,
// except itemized where per-item rounding leakage is accepted (the pooled
// portion is still remainder-corrected).
type SplitService struct{}

// NewSplitService creates a new split service
func NewSplitService() *SplitService {
	return &SplitService{}
}

// BuildSplitConfig converts a split type tag plus its raw allocation inputs
// into the matching config variant. Unknown tags are rejected here so the
// engine only ever dispatches on known types.
func BuildSplitConfig(splitType string, excluded []int64, percentages, amounts map[int64]float64, items []models.Item) (models.SplitConfig, error) {
	switch splitType {
	case utils.SplitTypeEqual:
		return models.EqualConfig{ExcludedUsers: excluded}, nil
	case utils.SplitTypePercentage:
		if len(percentages) == 0 {
			return nil, utils.NewInvalidSplitError("percentage split: percentage map is required")
		}
		return models.PercentageConfig{Percentages: percentages}, nil
	case utils.SplitTypeCustom:
		if len(amounts) == 0 {
			return nil, utils.NewInvalidSplitError("custom split: amount map is required")
		}
		return models.CustomConfig{Amounts: amounts}, nil
	case utils.SplitTypeItemized:
		if len(items) == 0 {
			return nil, utils.NewInvalidSplitError("itemized split: items are required")
		}
		for i, item := range items {
			if err := utils.ValidateItemData(item.Name, item.Price); err != nil {
				return nil, utils.NewInvalidSplitError("itemized split: item %d: %s", i+1, err.Error())
			}
		}
		return models.ItemizedConfig{Items: items}, nil
	default:
		return nil, utils.NewUnsupportedSplitTypeError(splitType)
	}
}

// Compute dispatches to the strategy matching the config variant
func (s *SplitService) Compute(total float64, members []models.Member, config models.SplitConfig) (map[int64]*models.Share, error) {
	switch cfg := config.(type) {
	case models.EqualConfig:
		return s.SplitEqual(total, members, cfg.ExcludedUsers)
	case models.PercentageConfig:
		return s.SplitPercentage(total, members, cfg.Percentages)
	case models.CustomConfig:
		return s.SplitCustomAmounts(total, members, cfg.Amounts)
	case models.ItemizedConfig:
		return s.SplitItemized(members, cfg.Items)
	default:
		return nil, utils.NewUnsupportedSplitTypeError(config.SplitType())
	}
}

// SplitEqual splits the total equally among group members, minus any excluded
// users. Rounding leakage is absorbed by the first eligible member so shares
// sum to the total exactly.
func (s *SplitService) SplitEqual(total float64, members []models.Member, excludedUsers []int64) (map[int64]*models.Share, error) {
	eligible := filterExcluded(members, excludedUsers)
	if len(eligible) == 0 {
		return nil, utils.NewInvalidSplitError("equal split: no eligible members")
	}

	numMembers := float64(len(eligible))
	equalShare := utils.RoundToCents(total / numMembers)
	remaining := total - equalShare*numMembers

	splits := make(map[int64]*models.Share, len(eligible))
	for i, member := range eligible {
		share := equalShare
		// Remaining cents go to the first member
		if i == 0 && remaining != 0 {
			share += utils.RoundToCents(remaining)
		}

		splits[member.UserID] = &models.Share{
			UserID:      member.UserID,
			UserName:    member.Name,
			ShareAmount: share,
			Percentage:  sharePercentage(share, total),
		}
	}

	return splits, nil
}

// SplitPercentage allocates by per-user percentages. The percentages must sum
// to 100 within a 0.01 tolerance; the caller fixes bad input, the engine never
// normalizes it. Allocation runs in ascending user id order and any rounding
// difference lands on the first user in that order.
func (s *SplitService) SplitPercentage(total float64, members []models.Member, percentages map[int64]float64) (map[int64]*models.Share, error) {
	if len(percentages) == 0 {
		return nil, utils.NewInvalidSplitError("percentage split: percentage map is required")
	}

	var totalPercentage float64
	for _, pct := range percentages {
		totalPercentage += pct
	}
	if totalPercentage < 100-utils.SettledEpsilon || totalPercentage > 100+utils.SettledEpsilon {
		return nil, utils.NewInvalidSplitError("percentage split: percentages summed to %g, expected 100", totalPercentage)
	}

	userIDs := sortedUserIDs(percentages)

	splits := make(map[int64]*models.Share, len(userIDs))
	var totalAssigned float64
	for _, userID := range userIDs {
		pct := percentages[userID]
		shareAmount := utils.RoundToCents(utils.PercentageOf(total, pct))
		totalAssigned += shareAmount

		splits[userID] = &models.Share{
			UserID:      userID,
			UserName:    resolveMemberName(members, userID),
			ShareAmount: shareAmount,
			Percentage:  pct,
		}
	}

	// Force exact reconciliation against the total
	difference := utils.RoundToCents(total - totalAssigned)
	if difference != 0 {
		splits[userIDs[0]].ShareAmount = utils.RoundToCents(splits[userIDs[0]].ShareAmount + difference)
	}

	return splits, nil
}

// SplitCustomAmounts allocates caller-asserted fixed amounts. The amounts must
// sum to the total within a 0.01 tolerance; no remainder correction is applied
// since the amounts are already exact by contract.
func (s *SplitService) SplitCustomAmounts(total float64, members []models.Member, amounts map[int64]float64) (map[int64]*models.Share, error) {
	if len(amounts) == 0 {
		return nil, utils.NewInvalidSplitError("custom split: amount map is required")
	}

	var totalAssigned float64
	for _, amount := range amounts {
		totalAssigned += amount
	}
	diff := totalAssigned - total
	if diff < -utils.SettledEpsilon || diff > utils.SettledEpsilon {
		return nil, utils.NewInvalidSplitError("custom split: amounts summed to %.2f, total is %.2f", totalAssigned, total)
	}

	splits := make(map[int64]*models.Share, len(amounts))
	for _, userID := range sortedUserIDs(amounts) {
		shareAmount := utils.RoundToCents(amounts[userID])
		splits[userID] = &models.Share{
			UserID:      userID,
			UserName:    resolveMemberName(members, userID),
			ShareAmount: shareAmount,
			Percentage:  sharePercentage(shareAmount, total),
		}
	}

	return splits, nil
}

// SplitItemized allocates receipt lines to their assigned users and pools
// unassigned lines into an equal split across the whole group. Per-item
// rounding leakage is accepted; the pooled portion uses the same
// base-plus-remainder technique as the equal split.
func (s *SplitService) SplitItemized(members []models.Member, items []models.Item) (map[int64]*models.Share, error) {
	if len(items) == 0 {
		return nil, utils.NewInvalidSplitError("itemized split: items are required")
	}

	userTotals := make(map[int64]float64)
	var poolTotal float64

	for _, item := range items {
		if len(item.AssignedUsers) > 0 {
			perPerson := utils.RoundToCents(item.Price / float64(len(item.AssignedUsers)))
			for _, userID := range item.AssignedUsers {
				userTotals[userID] += perPerson
			}
		} else {
			// Split across the whole group below
			poolTotal += item.Price
		}
	}

	if poolTotal > 0 {
		if len(members) == 0 {
			return nil, utils.NewInvalidSplitError("itemized split: unassigned items but no group members to pool them across")
		}

		numMembers := float64(len(members))
		perPerson := utils.RoundToCents(poolTotal / numMembers)
		remaining := poolTotal - perPerson*numMembers

		for i, member := range members {
			share := perPerson
			if i == 0 && remaining != 0 {
				share += utils.RoundToCents(remaining)
			}
			userTotals[member.UserID] += share
		}
	}

	if len(userTotals) == 0 {
		return nil, utils.NewInvalidSplitError("itemized split: no items could be allocated")
	}

	var grandTotal float64
	for _, amount := range userTotals {
		grandTotal += amount
	}

	splits := make(map[int64]*models.Share, len(userTotals))
	for _, userID := range sortedUserIDs(userTotals) {
		amount := utils.RoundToCents(userTotals[userID])
		splits[userID] = &models.Share{
			UserID:      userID,
			UserName:    resolveMemberName(members, userID),
			ShareAmount: amount,
			Percentage:  sharePercentage(amount, grandTotal),
		}
	}

	return splits, nil
}

// filterExcluded returns members not present in the excluded list, preserving order
func filterExcluded(members []models.Member, excludedUsers []int64) []models.Member {
	if len(excludedUsers) == 0 {
		return members
	}
	excluded := make(map[int64]bool, len(excludedUsers))
	for _, userID := range excludedUsers {
		excluded[userID] = true
	}
	eligible := make([]models.Member, 0, len(members))
	for _, member := range members {
		if !excluded[member.UserID] {
			eligible = append(eligible, member)
		}
	}
	return eligible
}

// resolveMemberName looks up a display name, falling back to a label for ids
// outside the supplied membership
func resolveMemberName(members []models.Member, userID int64) string {
	for _, member := range members {
		if member.UserID == userID {
			return member.Name
		}
	}
	return utils.FallbackUserName(userID)
}

// sharePercentage computes a share's percentage of the total, guarded against
// a zero total
func sharePercentage(share, total float64) float64 {
	if total == 0 {
		return 0
	}
	return utils.RoundPercentage((share / total) * 100)
}

// sortedUserIDs returns the map's keys in ascending order so allocation and
// remainder assignment are deterministic
func sortedUserIDs[V any](m map[int64]V) []int64 {
	userIDs := make([]int64, 0, len(m))
	for userID := range m {
		userIDs = append(userIDs, userID)
	}
	sort.Slice(userIDs, func(i, j int) bool { return userIDs[i] < userIDs[j] })
	return userIDs
}
