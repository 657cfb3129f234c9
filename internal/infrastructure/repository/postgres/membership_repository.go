package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/rider"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type MembershipRepository struct {
	db *sqlx.DB
}

func NewMembershipRepository(db *sqlx.DB) *MembershipRepository {
	return &MembershipRepository{db: db}
}

func (r *MembershipRepository) ListByRider(ctx context.Context, riderID int64) ([]rider.Membership, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(
			qb.Eq("rider_id", riderID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("member_date DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list memberships query: %w", err)
	}

	var rows []membershipTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list memberships: %w", err)
	}

	out := make([]rider.Membership, 0, len(rows))
	for _, row := range rows {
		out = append(out, membershipFromRow(row))
	}

	return out, nil
}

func (r *MembershipRepository) Current(ctx context.Context, riderID int64) (rider.Membership, bool, error) {
	query, args, err := qb.Select("*").From("memberships").
		Where(
			qb.Eq("rider_id", riderID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("member_date DESC").
		Limit(1).
		ToSQL()
	if err != nil {
		return rider.Membership{}, false, fmt.Errorf("build get current membership query: %w", err)
	}

	var row membershipTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rider.Membership{}, false, nil
		}
		return rider.Membership{}, false, fmt.Errorf("get current membership: %w", err)
	}

	return membershipFromRow(row), true, nil
}

func (r *MembershipRepository) Create(ctx context.Context, m rider.Membership) (rider.Membership, error) {
	insertModel := membershipInsertModel{
		RiderID:    m.RiderID,
		ClubID:     m.ClubID,
		MemberDate: timeToUnix(m.Date),
		Category:   string(m.Category),
	}
	query, args, err := qb.InsertModel("memberships", insertModel, "RETURNING id")
	if err != nil {
		return rider.Membership{}, fmt.Errorf("build insert membership query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&m.ID); err != nil {
		return rider.Membership{}, fmt.Errorf("insert membership: %w", err)
	}

	return m, nil
}

func membershipFromRow(row membershipTableModel) rider.Membership {
	return rider.Membership{
		ID:       row.ID,
		RiderID:  row.RiderID,
		ClubID:   row.ClubID,
		Date:     unixToTime(row.MemberDate),
		Category: rider.MembershipCategory(row.Category),
	}
}
