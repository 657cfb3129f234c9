package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/rider"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type RiderRepository struct {
	db *sqlx.DB
}

func NewRiderRepository(db *sqlx.DB) *RiderRepository {
	return &RiderRepository{db: db}
}

func (r *RiderRepository) GetByID(ctx context.Context, riderID int64) (rider.Rider, bool, error) {
	query, args, err := qb.Select("*").From("riders").
		Where(
			qb.Eq("id", riderID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return rider.Rider{}, false, fmt.Errorf("build get rider by id query: %w", err)
	}

	var row riderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rider.Rider{}, false, nil
		}
		return rider.Rider{}, false, fmt.Errorf("get rider by id: %w", err)
	}

	return riderFromRow(row), true, nil
}

func (r *RiderRepository) GetByUsername(ctx context.Context, username string) (rider.Rider, bool, error) {
	query, args, err := qb.Select("*").From("riders").
		Where(
			qb.Eq("username", username),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return rider.Rider{}, false, fmt.Errorf("build get rider by username query: %w", err)
	}

	var row riderTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rider.Rider{}, false, nil
		}
		return rider.Rider{}, false, fmt.Errorf("get rider by username: %w", err)
	}

	return riderFromRow(row), true, nil
}

func (r *RiderRepository) Create(ctx context.Context, rd rider.Rider) (rider.Rider, error) {
	insertModel := riderInsertModel{
		Username:  rd.Username,
		FirstName: rd.FirstName,
		LastName:  rd.LastName,
		LicenceNo: nullableString(rd.LicenceNo),
		Gender:    nullableString(rd.Gender),
		DOB:       nullableUnix(timePtrOrNil(rd.DOB)),
		ClubID:    nullableInt64(rd.ClubID),
		Phone:     nullableString(rd.Phone),
		Email:     nullableString(rd.Email),
	}
	query, args, err := qb.InsertModel("riders", insertModel, "RETURNING id")
	if err != nil {
		return rider.Rider{}, fmt.Errorf("build insert rider query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&rd.ID); err != nil {
		return rider.Rider{}, fmt.Errorf("insert rider: %w", err)
	}

	return rd, nil
}

func (r *RiderRepository) Update(ctx context.Context, rd rider.Rider) error {
	query, args, err := qb.Update("riders").
		Set("first_name", rd.FirstName).
		Set("last_name", rd.LastName).
		Set("licence_no", nullableString(rd.LicenceNo)).
		Set("gender", nullableString(rd.Gender)).
		Set("dob", nullableUnix(timePtrOrNil(rd.DOB))).
		Set("club_id", nullableInt64(rd.ClubID)).
		Set("phone", nullableString(rd.Phone)).
		Set("email", nullableString(rd.Email)).
		SetExpr("updated_at", "NOW()").
		Where(
			qb.Eq("id", rd.ID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build update rider query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("update rider: %w", err)
	}

	return nil
}

func (r *RiderRepository) CountCurrentMembers(ctx context.Context, clubID int64, asOf time.Time) (int, error) {
	cutoff := asOf.AddDate(-1, 0, 0)
	query, args, err := qb.Select("COUNT(DISTINCT m.rider_id) AS total").
		From("memberships m").
		Where(
			qb.Eq("m.club_id", clubID),
			qb.IsNull("m.deleted_at"),
			qb.Expr("m.member_date >= ?", timeToUnix(cutoff)),
			qb.Expr("m.member_date = (SELECT MAX(m2.member_date) FROM memberships m2 WHERE m2.rider_id = m.rider_id AND m2.deleted_at IS NULL)"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count current members query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count current members: %w", err)
	}

	return total, nil
}

func (r *RiderRepository) ListMembersByClub(ctx context.Context, clubID int64, category rider.MembershipCategory, asOf time.Time) ([]rider.Rider, error) {
	cutoff := asOf.AddDate(-1, 0, 0)
	query, args, err := qb.Select("r.*").
		From("riders r JOIN memberships m ON m.rider_id = r.id").
		Where(
			qb.Eq("m.club_id", clubID),
			qb.Eq("m.category", string(category)),
			qb.IsNull("r.deleted_at"),
			qb.IsNull("m.deleted_at"),
			qb.Expr("m.member_date >= ?", timeToUnix(cutoff)),
			qb.Expr("m.member_date = (SELECT MAX(m2.member_date) FROM memberships m2 WHERE m2.rider_id = r.id AND m2.deleted_at IS NULL)"),
		).
		OrderBy("r.last_name", "r.first_name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club members query: %w", err)
	}

	var rows []riderTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list club members: %w", err)
	}

	out := make([]rider.Rider, 0, len(rows))
	for _, row := range rows {
		out = append(out, riderFromRow(row))
	}

	return out, nil
}

func riderFromRow(row riderTableModel) rider.Rider {
	rd := rider.Rider{
		ID:        row.ID,
		Username:  row.Username,
		FirstName: row.FirstName,
		LastName:  row.LastName,
		LicenceNo: nullStringToString(row.LicenceNo),
		Gender:    nullStringToString(row.Gender),
		ClubID:    nullInt64ToInt64(row.ClubID),
		Phone:     nullStringToString(row.Phone),
		Email:     nullStringToString(row.Email),
	}
	if row.DOB.Valid {
		rd.DOB = unixToTime(row.DOB.Int64)
	}
	return rd
}

func timePtrOrNil(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
