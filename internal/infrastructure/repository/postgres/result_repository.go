package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/race"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type ResultRepository struct {
	db *sqlx.DB
}

func NewResultRepository(db *sqlx.DB) *ResultRepository {
	return &ResultRepository{db: db}
}

func (r *ResultRepository) ListByRace(ctx context.Context, raceID int64) ([]race.Result, error) {
	query, args, err := qb.Select("*").From("race_results").
		Where(
			qb.Eq("race_id", raceID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("grade", "CASE WHEN place = 0 THEN 1 ELSE 0 END", "place", "number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list race results query: %w", err)
	}

	var rows []raceResultTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list race results: %w", err)
	}

	out := make([]race.Result, 0, len(rows))
	for _, row := range rows {
		out = append(out, resultFromRow(row))
	}

	return out, nil
}

func (r *ResultRepository) CountByRace(ctx context.Context, raceID int64) (int, error) {
	query, args, err := qb.Select("COUNT(1) AS total").From("race_results").
		Where(
			qb.Eq("race_id", raceID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count race results query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count race results: %w", err)
	}

	return total, nil
}

func (r *ResultRepository) CountByRaceAndGrade(ctx context.Context, raceID int64, grade string) (int, error) {
	query, args, err := qb.Select("COUNT(1) AS total").From("race_results").
		Where(
			qb.Eq("race_id", raceID),
			qb.Eq("grade", grade),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count grade results query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count grade results: %w", err)
	}

	return total, nil
}

func (r *ResultRepository) Create(ctx context.Context, res race.Result) (race.Result, error) {
	insertModel := raceResultInsertModel{
		RaceID:     res.RaceID,
		RiderID:    res.RiderID,
		Grade:      res.Grade,
		UsualGrade: nullableString(res.UsualGrade),
		Number:     res.Number,
		Place:      res.Place,
		DNF:        res.DNF,
	}
	query, args, err := qb.InsertModel("race_results", insertModel, "RETURNING id")
	if err != nil {
		return race.Result{}, fmt.Errorf("build insert race result query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&res.ID); err != nil {
		if isUniqueViolation(err) {
			return race.Result{}, race.ErrDuplicateResult
		}
		return race.Result{}, fmt.Errorf("insert race result: %w", err)
	}

	return res, nil
}

func (r *ResultRepository) DeleteByRace(ctx context.Context, raceID int64) error {
	query, args, err := qb.Update("race_results").
		SetExpr("deleted_at", "NOW()").
		Where(
			qb.Eq("race_id", raceID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete race results query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete race results: %w", err)
	}

	return nil
}

func (r *ResultRepository) CountByClub(ctx context.Context, clubID int64) (int, error) {
	query, args, err := qb.Select("COUNT(1) AS total").
		From("race_results rr JOIN races rc ON rc.id = rr.race_id").
		Where(
			qb.Eq("rc.club_id", clubID),
			qb.IsNull("rr.deleted_at"),
			qb.IsNull("rc.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count club results query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count club results: %w", err)
	}

	return total, nil
}

func (r *ResultRepository) PerformanceCounts(ctx context.Context, clubID, riderID int64, grade string, since, before time.Time) (race.PerformanceCounts, error) {
	query, args, err := qb.Select(
		"COALESCE(SUM(CASE WHEN rr.place = 1 THEN 1 ELSE 0 END), 0) AS wins",
		"COALESCE(SUM(CASE WHEN rr.place BETWEEN 1 AND 3 THEN 1 ELSE 0 END), 0) AS places",
	).From("race_results rr JOIN races rc ON rc.id = rr.race_id").
		Where(
			qb.Eq("rc.club_id", clubID),
			qb.Eq("rr.rider_id", riderID),
			qb.Eq("rr.grade", grade),
			qb.Expr("rc.race_date >= ?", timeToUnix(since)),
			qb.Expr("rc.race_date < ?", timeToUnix(before)),
			qb.IsNull("rr.deleted_at"),
			qb.IsNull("rc.deleted_at"),
		).
		ToSQL()
	if err != nil {
		return race.PerformanceCounts{}, fmt.Errorf("build performance counts query: %w", err)
	}

	var row struct {
		Wins   int `db:"wins"`
		Places int `db:"places"`
	}
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		return race.PerformanceCounts{}, fmt.Errorf("get performance counts: %w", err)
	}

	return race.PerformanceCounts{Wins: row.Wins, Places: row.Places}, nil
}

func resultFromRow(row raceResultTableModel) race.Result {
	return race.Result{
		ID:         row.ID,
		RaceID:     row.RaceID,
		RiderID:    row.RiderID,
		Grade:      row.Grade,
		UsualGrade: nullStringToString(row.UsualGrade),
		Number:     row.Number,
		Place:      row.Place,
		DNF:        row.DNF,
	}
}
