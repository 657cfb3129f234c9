package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/pointscore"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type TallyRepository struct {
	db *sqlx.DB
}

func NewTallyRepository(db *sqlx.DB) *TallyRepository {
	return &TallyRepository{db: db}
}

func (r *TallyRepository) Get(ctx context.Context, pointScoreID, riderID int64) (pointscore.Tally, bool, error) {
	query, args, err := qb.Select("*").From("pointscore_tallies").
		Where(
			qb.Eq("pointscore_id", pointScoreID),
			qb.Eq("rider_id", riderID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return pointscore.Tally{}, false, fmt.Errorf("build get tally query: %w", err)
	}

	var row tallyTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return pointscore.Tally{}, false, nil
		}
		return pointscore.Tally{}, false, fmt.Errorf("get tally: %w", err)
	}

	return tallyFromRow(row), true, nil
}

// Append updates the tally and writes the audit event in one transaction
// so the event log can always explain the tally totals.
func (r *TallyRepository) Append(ctx context.Context, pointScoreID, riderID int64, points int, reason string) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin append tally tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	upsertQuery, upsertArgs, err := qb.InsertInto("pointscore_tallies").
		Columns("pointscore_id", "rider_id", "points", "eventcount").
		Values(pointScoreID, riderID, points, 1).
		Suffix(`ON CONFLICT (pointscore_id, rider_id) WHERE deleted_at IS NULL
DO UPDATE SET
    points = pointscore_tallies.points + EXCLUDED.points,
    eventcount = pointscore_tallies.eventcount + 1,
    updated_at = NOW()
RETURNING eventcount`).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build upsert tally query: %w", err)
	}

	var eventCount int
	if err := tx.QueryRowxContext(ctx, upsertQuery, upsertArgs...).Scan(&eventCount); err != nil {
		return fmt.Errorf("upsert tally: %w", err)
	}

	eventQuery, eventArgs, err := qb.InsertInto("pointscore_events").
		Columns("pointscore_id", "rider_id", "seq", "points", "reason").
		Values(pointScoreID, riderID, eventCount, points, reason).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build insert tally event query: %w", err)
	}
	if _, err := tx.ExecContext(ctx, eventQuery, eventArgs...); err != nil {
		return fmt.Errorf("insert tally event: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit append tally tx: %w", err)
	}

	return nil
}

func (r *TallyRepository) List(ctx context.Context, pointScoreID int64) ([]pointscore.Tally, error) {
	query, args, err := qb.Select("*").From("pointscore_tallies").
		Where(
			qb.Eq("pointscore_id", pointScoreID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("points DESC", "eventcount", "rider_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list tallies query: %w", err)
	}

	var rows []tallyTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list tallies: %w", err)
	}

	out := make([]pointscore.Tally, 0, len(rows))
	for _, row := range rows {
		out = append(out, tallyFromRow(row))
	}

	return out, nil
}

func (r *TallyRepository) Audit(ctx context.Context, pointScoreID, riderID int64) ([]pointscore.Event, error) {
	query, args, err := qb.Select("*").From("pointscore_events").
		Where(
			qb.Eq("pointscore_id", pointScoreID),
			qb.Eq("rider_id", riderID),
		).
		OrderBy("seq").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build audit query: %w", err)
	}

	var rows []tallyEventTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list audit events: %w", err)
	}

	out := make([]pointscore.Event, 0, len(rows))
	for _, row := range rows {
		out = append(out, pointscore.Event{
			ID:           row.ID,
			PointScoreID: row.PointScoreID,
			RiderID:      row.RiderID,
			Seq:          row.Seq,
			Points:       row.Points,
			Reason:       row.Reason,
		})
	}

	return out, nil
}

// DeleteByPointScore clears tallies and events ahead of a full rebuild.
// Events are removed outright rather than soft deleted so the rebuilt log
// starts from sequence one.
func (r *TallyRepository) DeleteByPointScore(ctx context.Context, pointScoreID int64) error {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin clear tallies tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	if _, err := tx.ExecContext(ctx, "DELETE FROM pointscore_events WHERE pointscore_id = $1", pointScoreID); err != nil {
		return fmt.Errorf("delete tally events: %w", err)
	}
	if _, err := tx.ExecContext(ctx, "DELETE FROM pointscore_tallies WHERE pointscore_id = $1", pointScoreID); err != nil {
		return fmt.Errorf("delete tallies: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit clear tallies tx: %w", err)
	}

	return nil
}

func tallyFromRow(row tallyTableModel) pointscore.Tally {
	return pointscore.Tally{
		ID:           row.ID,
		PointScoreID: row.PointScoreID,
		RiderID:      row.RiderID,
		Points:       row.Points,
		EventCount:   row.EventCount,
	}
}
