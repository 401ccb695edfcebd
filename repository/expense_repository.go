// repository/expense_repository.go
package repository

import (
	"database/sql"
	"encoding/json"
	"fmt"

	"github.com/grouptally/grouptally-backend/models"
)

// ExpenseRepository handles database operations for expenses, shares, items
// and receipts
type ExpenseRepository struct {
	DB *sql.DB
}

// NewExpenseRepository creates a new ExpenseRepository
func NewExpenseRepository(db *sql.DB) *ExpenseRepository {
	return &ExpenseRepository{DB: db}
}

// StoreExpense saves an expense and returns its assigned id
func (r *ExpenseRepository) StoreExpense(expense *models.Expense) (int64, error) {
	var expenseID int64
	err := r.DB.QueryRow(
		`INSERT INTO expenses
         (group_id, payer_id, amount, currency, description, expense_date, location, type, split_type)
         VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
         RETURNING expense_id`,
		expense.GroupID, expense.PayerID, expense.Amount, expense.Currency,
		expense.Description, expense.ExpenseDate, expense.Location,
		expense.Type, expense.SplitType,
	).Scan(&expenseID)
	if err != nil {
		return 0, fmt.Errorf("failed to insert expense: %v", err)
	}

	return expenseID, nil
}

// StoreShares saves one share row per user inside a transaction
func (r *ExpenseRepository) StoreShares(expenseID int64, shares []*models.Share) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, share := range shares {
		_, err = tx.Exec(
			`INSERT INTO expense_shares (expense_id, user_id, share_amount, percentage)
             VALUES ($1, $2, $3, $4)`,
			expenseID, share.UserID, share.ShareAmount, share.Percentage,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense share: %v", err)
		}
	}

	return tx.Commit()
}

// StoreItems saves itemized receipt lines, keeping the assigned-user set as JSON
func (r *ExpenseRepository) StoreItems(expenseID int64, items []models.Item) error {
	tx, err := r.DB.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %v", err)
	}
	defer tx.Rollback()

	for _, item := range items {
		var assignedUsers sql.NullString
		if len(item.AssignedUsers) > 0 {
			encoded, err := json.Marshal(item.AssignedUsers)
			if err != nil {
				return fmt.Errorf("failed to encode assigned users: %v", err)
			}
			assignedUsers = sql.NullString{String: string(encoded), Valid: true}
		}

		_, err = tx.Exec(
			`INSERT INTO expense_items (expense_id, name, unit_price, total_price, assigned_users)
             VALUES ($1, $2, $3, $4, $5)`,
			expenseID, item.Name, item.Price, item.Price, assignedUsers,
		)
		if err != nil {
			return fmt.Errorf("failed to insert expense item: %v", err)
		}
	}

	return tx.Commit()
}

// StoreReceipt saves receipt metadata against an expense
func (r *ExpenseRepository) StoreReceipt(expenseID int64, reference, receipt string) error {
	_, err := r.DB.Exec(
		`INSERT INTO expense_receipts (expense_id, reference, receipt_text)
         VALUES ($1, $2, $3)`,
		expenseID, reference, receipt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert expense receipt: %v", err)
	}
	return nil
}

// ListExpensesByGroup retrieves all expenses for a group in creation order
func (r *ExpenseRepository) ListExpensesByGroup(groupID int64) ([]*models.Expense, error) {
	rows, err := r.DB.Query(
		`SELECT expense_id, group_id, payer_id, amount, currency, description,
                expense_date, location, type, split_type
         FROM expenses
         WHERE group_id = $1
         ORDER BY expense_id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expenses: %v", err)
	}
	defer rows.Close()

	var expenses []*models.Expense
	for rows.Next() {
		var expense models.Expense
		var location sql.NullString

		err = rows.Scan(
			&expense.ID, &expense.GroupID, &expense.PayerID, &expense.Amount,
			&expense.Currency, &expense.Description, &expense.ExpenseDate,
			&location, &expense.Type, &expense.SplitType,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan expense: %v", err)
		}
		if location.Valid {
			expense.Location = location.String
		}

		expenses = append(expenses, &expense)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expenses: %v", err)
	}

	return expenses, nil
}

// ListSharesByGroup retrieves all share rows belonging to a group's expenses
func (r *ExpenseRepository) ListSharesByGroup(groupID int64) ([]*models.Share, error) {
	rows, err := r.DB.Query(
		`SELECT es.expense_id, es.user_id, es.share_amount, COALESCE(es.percentage, 0)
         FROM expense_shares es
         JOIN expenses e ON e.expense_id = es.expense_id
         WHERE e.group_id = $1
         ORDER BY es.expense_id ASC, es.user_id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get expense shares: %v", err)
	}
	defer rows.Close()

	var shares []*models.Share
	for rows.Next() {
		var share models.Share
		if err := rows.Scan(&share.ExpenseID, &share.UserID, &share.ShareAmount, &share.Percentage); err != nil {
			return nil, fmt.Errorf("failed to scan expense share: %v", err)
		}
		shares = append(shares, &share)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read expense shares: %v", err)
	}

	return shares, nil
}
