package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/race"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type StaffRepository struct {
	db *sqlx.DB
}

func NewStaffRepository(db *sqlx.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) ListByRace(ctx context.Context, raceID int64) ([]race.Staff, error) {
	query, args, err := qb.Select("*").From("race_staff").
		Where(
			qb.Eq("race_id", raceID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("role", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list race staff query: %w", err)
	}

	var rows []raceStaffTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list race staff: %w", err)
	}

	out := make([]race.Staff, 0, len(rows))
	for _, row := range rows {
		out = append(out, race.Staff{
			ID:      row.ID,
			RaceID:  row.RaceID,
			RiderID: row.RiderID,
			Role:    race.StaffRole(row.Role),
		})
	}

	return out, nil
}

func (r *StaffRepository) Create(ctx context.Context, st race.Staff) (race.Staff, error) {
	insertModel := raceStaffInsertModel{
		RaceID:  st.RaceID,
		RiderID: st.RiderID,
		Role:    string(st.Role),
	}
	query, args, err := qb.InsertModel("race_staff", insertModel, "RETURNING id")
	if err != nil {
		return race.Staff{}, fmt.Errorf("build insert race staff query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&st.ID); err != nil {
		return race.Staff{}, fmt.Errorf("insert race staff: %w", err)
	}

	return st, nil
}

func (r *StaffRepository) DutyCounts(ctx context.Context, clubID int64, role race.StaffRole, since time.Time) (map[int64]int, error) {
	query, args, err := qb.Select(
		"rs.rider_id",
		"COUNT(1) AS total",
	).From("race_staff rs JOIN races rc ON rc.id = rs.race_id").
		Where(
			qb.Eq("rc.club_id", clubID),
			qb.Eq("rs.role", string(role)),
			qb.Expr("rc.race_date >= ?", timeToUnix(since)),
			qb.IsNull("rs.deleted_at"),
			qb.IsNull("rc.deleted_at"),
		).
		GroupBy("rs.rider_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build duty counts query: %w", err)
	}

	var rows []struct {
		RiderID int64 `db:"rider_id"`
		Total   int   `db:"total"`
	}
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("get duty counts: %w", err)
	}

	counts := make(map[int64]int, len(rows))
	for _, row := range rows {
		counts[row.RiderID] = row.Total
	}

	return counts, nil
}
