package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/race"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type RaceRepository struct {
	db *sqlx.DB
}

func NewRaceRepository(db *sqlx.DB) *RaceRepository {
	return &RaceRepository{db: db}
}

func (r *RaceRepository) GetByID(ctx context.Context, raceID int64) (race.Race, bool, error) {
	query, args, err := qb.Select("*").From("races").
		Where(
			qb.Eq("id", raceID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return race.Race{}, false, fmt.Errorf("build get race by id query: %w", err)
	}

	var row raceTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Race{}, false, nil
		}
		return race.Race{}, false, fmt.Errorf("get race by id: %w", err)
	}

	return raceFromRow(row), true, nil
}

func (r *RaceRepository) ListByClub(ctx context.Context, clubID int64) ([]race.Race, error) {
	query, args, err := qb.Select("*").From("races").
		Where(
			qb.Eq("club_id", clubID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("race_date", "id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list races query: %w", err)
	}

	var rows []raceTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list races: %w", err)
	}

	out := make([]race.Race, 0, len(rows))
	for _, row := range rows {
		out = append(out, raceFromRow(row))
	}

	return out, nil
}

func (r *RaceRepository) Create(ctx context.Context, rc race.Race) (race.Race, error) {
	insertModel := raceInsertModel{
		ClubID:      rc.ClubID,
		CourseID:    nullableInt64(rc.CourseID),
		Title:       rc.Title,
		RaceDate:    timeToUnix(rc.Date),
		Status:      string(rc.Status),
		Grading:     nullableString(rc.Grading),
		ExternalUID: nullableString(rc.ExternalUID),
		ContentHash: nullableString(rc.ContentHash),
	}
	query, args, err := qb.InsertModel("races", insertModel, "RETURNING id")
	if err != nil {
		return race.Race{}, fmt.Errorf("build insert race query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&rc.ID); err != nil {
		return race.Race{}, fmt.Errorf("insert race: %w", err)
	}

	return rc, nil
}

func (r *RaceRepository) ExistsByHash(ctx context.Context, clubID int64, hash string) (bool, error) {
	query, args, err := qb.Select("COUNT(1) AS total").From("races").
		Where(
			qb.Eq("club_id", clubID),
			qb.Eq("content_hash", hash),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return false, fmt.Errorf("build race exists by hash query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return false, fmt.Errorf("race exists by hash: %w", err)
	}

	return total > 0, nil
}

func (r *RaceRepository) CountByClub(ctx context.Context, clubID int64) (int, error) {
	query, args, err := qb.Select("COUNT(1) AS total").From("races").
		Where(
			qb.Eq("club_id", clubID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build count races query: %w", err)
	}

	var total int
	if err := r.db.GetContext(ctx, &total, query, args...); err != nil {
		return 0, fmt.Errorf("count races: %w", err)
	}

	return total, nil
}

func raceFromRow(row raceTableModel) race.Race {
	return race.Race{
		ID:          row.ID,
		ClubID:      row.ClubID,
		CourseID:    nullInt64ToInt64(row.CourseID),
		Title:       row.Title,
		Date:        unixToTime(row.RaceDate),
		Status:      race.Status(row.Status),
		Grading:     nullStringToString(row.Grading),
		ExternalUID: nullStringToString(row.ExternalUID),
		ContentHash: nullStringToString(row.ContentHash),
	}
}
