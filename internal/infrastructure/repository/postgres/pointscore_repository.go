package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/pointscore"
	"github.com/openvelo/clubraces/internal/domain/race"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type PointScoreRepository struct {
	db *sqlx.DB
}

func NewPointScoreRepository(db *sqlx.DB) *PointScoreRepository {
	return &PointScoreRepository{db: db}
}

func (r *PointScoreRepository) GetByID(ctx context.Context, pointScoreID int64) (pointscore.PointScore, bool, error) {
	query, args, err := qb.Select("*").From("pointscores").
		Where(
			qb.Eq("id", pointScoreID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return pointscore.PointScore{}, false, fmt.Errorf("build get point score query: %w", err)
	}

	var row pointScoreTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pointscore.PointScore{}, false, nil
		}
		return pointscore.PointScore{}, false, fmt.Errorf("get point score: %w", err)
	}

	return pointScoreFromRow(row), true, nil
}

func (r *PointScoreRepository) ListByClub(ctx context.Context, clubID int64) ([]pointscore.PointScore, error) {
	query, args, err := qb.Select("*").From("pointscores").
		Where(
			qb.Eq("club_id", clubID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list point scores query: %w", err)
	}

	var rows []pointScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list point scores: %w", err)
	}

	out := make([]pointscore.PointScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, pointScoreFromRow(row))
	}

	return out, nil
}

func (r *PointScoreRepository) ListByRace(ctx context.Context, raceID int64) ([]pointscore.PointScore, error) {
	query, args, err := qb.Select("ps.*").
		From("pointscores ps JOIN pointscore_races pr ON pr.pointscore_id = ps.id").
		Where(
			qb.Eq("pr.race_id", raceID),
			qb.IsNull("ps.deleted_at"),
			qb.IsNull("pr.deleted_at"),
		).
		OrderBy("ps.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list point scores by race query: %w", err)
	}

	var rows []pointScoreTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list point scores by race: %w", err)
	}

	out := make([]pointscore.PointScore, 0, len(rows))
	for _, row := range rows {
		out = append(out, pointScoreFromRow(row))
	}

	return out, nil
}

func (r *PointScoreRepository) ContainsRace(ctx context.Context, pointScoreID, raceID int64) (bool, error) {
	query, args, err := qb.Select("COUNT(1) AS total").From("pointscore_races").
		Where(
			qb.Eq("pointscore_id", pointScoreID),
			qb.Eq("race_id", raceID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build contains race query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return false, fmt.Errorf("contains race: %w", err)
	}

	return total > 0, nil
}

func (r *PointScoreRepository) ListRaces(ctx context.Context, pointScoreID int64) ([]race.Race, error) {
	query, args, err := qb.Select("rc.*").
		From("races rc JOIN pointscore_races pr ON pr.race_id = rc.id").
		Where(
			qb.Eq("pr.pointscore_id", pointScoreID),
			qb.IsNull("rc.deleted_at"),
			qb.IsNull("pr.deleted_at"),
		).
		OrderBy("rc.race_date", "rc.id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list point score races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list point score races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceFromRow(row))
	}

	return out, nil
}

func (r *PointScoreRepository) AddRace(ctx context.Context, pointScoreID, raceID int64) error {
	query, args, err := qb.InsertInto("pointscore_races").
		Columns("pointscore_id", "race_id").
		Values(pointScoreID, raceID).
		Suffix(`ON CONFLICT (pointscore_id, race_id) WHERE deleted_at IS NULL
DO UPDATE SET deleted_at = NULL`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build add point score race query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("add point score race: %w", err)
	}

	return nil
}

func (r *PointScoreRepository) Create(ctx context.Context, ps pointscore.PointScore) (pointscore.PointScore, error) {
	ps.ApplyDefaults()
	insertModel := pointScoreInsertModel{
		ClubID:         ps.ClubID,
		Name:           ps.Name,
		Method:         string(ps.Method),
		Points:         int64Array(ps.Points),
		SmallPoints:    int64Array(ps.SmallPoints),
		SmallThreshold: ps.SmallThreshold,
		Participation:  ps.Participation,
		SmallWin:       ps.SmallWin,
	}
	query, args, err := qb.InsertModel("pointscores", insertModel, "RETURNING id")
	if err != nil {
		return pointscore.PointScore{}, fmt.Errorf("build insert point score query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&ps.ID); err != nil {
		return pointscore.PointScore{}, fmt.Errorf("insert point score: %w", err)
	}

	return ps, nil
}

func pointScoreFromRow(row pointScoreTableModel) pointscore.PointScore {
	return pointscore.PointScore{
		ID:             row.ID,
		ClubID:         row.ClubID,
		Name:           row.Name,
		Method:         pointscore.Method(row.Method),
		Points:         intSlice(row.Points),
		SmallPoints:    intSlice(row.SmallPoints),
		SmallThreshold: row.SmallThreshold,
		Participation:  row.Participation,
		SmallWin:       row.SmallWin,
	}
}
