// repository/member_repository.go
package repository

import (
	"database/sql"
	"fmt"

	"github.com/grouptally/grouptally-backend/models"
)

// MemberRepository handles database operations for group membership
type MemberRepository struct {
	DB *sql.DB
}

// NewMemberRepository creates a new MemberRepository
func NewMemberRepository(db *sql.DB) *MemberRepository {
	return &MemberRepository{DB: db}
}

// GetGroupMembers retrieves a group's members ordered by user id. The order
// is stable on purpose: it decides which member absorbs rounding remainders.
func (r *MemberRepository) GetGroupMembers(groupID int64) ([]models.Member, error) {
	rows, err := r.DB.Query(
		`SELECT u.user_id, u.name, u.email
         FROM users u
         JOIN user_groups ug ON u.user_id = ug.user_id
         WHERE ug.group_id = $1
         ORDER BY u.user_id ASC`,
		groupID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get group members: %v", err)
	}
	defer rows.Close()

	var members []models.Member
	for rows.Next() {
		var member models.Member
		var email sql.NullString

		if err := rows.Scan(&member.UserID, &member.Name, &email); err != nil {
			return nil, fmt.Errorf("failed to scan member: %v", err)
		}
		if email.Valid {
			member.Email = email.String
		}

		members = append(members, member)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read members: %v", err)
	}

	return members, nil
}
