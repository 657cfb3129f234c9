package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/rider"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type GradeRepository struct {
	db *sqlx.DB
}

func NewGradeRepository(db *sqlx.DB) *GradeRepository {
	return &GradeRepository{db: db}
}

func (r *GradeRepository) Get(ctx context.Context, clubID, riderID int64) (rider.ClubGrade, bool, error) {
	query, args, err := qb.Select("*").From("club_grades").
		Where(
			qb.Eq("club_id", clubID),
			qb.Eq("rider_id", riderID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return rider.ClubGrade{}, false, fmt.Errorf("build get club grade query: %w", err)
	}

	var row clubGradeTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return rider.ClubGrade{}, false, nil
		}
		return rider.ClubGrade{}, false, fmt.Errorf("get club grade: %w", err)
	}

	return clubGradeFromRow(row), true, nil
}

func (r *GradeRepository) Create(ctx context.Context, g rider.ClubGrade) (rider.ClubGrade, error) {
	insertModel := clubGradeInsertModel{
		ClubID:  g.ClubID,
		RiderID: g.RiderID,
		Grade:   g.Grade,
	}
	query, args, err := qb.InsertModel("club_grades", insertModel, "RETURNING id")
	if err != nil {
		return rider.ClubGrade{}, fmt.Errorf("build insert club grade query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&g.ID); err != nil {
		if isUniqueViolation(err) {
			return rider.ClubGrade{}, rider.ErrAlreadyGraded
		}
		return rider.ClubGrade{}, fmt.Errorf("insert club grade: %w", err)
	}

	return g, nil
}

func (r *GradeRepository) Replace(ctx context.Context, clubID, riderID int64, grade string) (rider.ClubGrade, error) {
	insertModel := clubGradeInsertModel{
		ClubID:  clubID,
		RiderID: riderID,
		Grade:   grade,
	}
	query, args, err := qb.InsertModel("club_grades", insertModel, `ON CONFLICT (club_id, rider_id) WHERE deleted_at IS NULL
DO UPDATE SET
    grade = EXCLUDED.grade,
    updated_at = NOW(),
    deleted_at = NULL
RETURNING id`)
	if err != nil {
		return rider.ClubGrade{}, fmt.Errorf("build replace club grade query: %w", err)
	}

	g := rider.ClubGrade{ClubID: clubID, RiderID: riderID, Grade: grade}
	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&g.ID); err != nil {
		return rider.ClubGrade{}, fmt.Errorf("replace club grade: %w", err)
	}

	return g, nil
}

func (r *GradeRepository) ListByClub(ctx context.Context, clubID int64) ([]rider.ClubGrade, error) {
	query, args, err := qb.Select("*").From("club_grades").
		Where(
			qb.Eq("club_id", clubID),
			qb.IsNull("deleted_at"),
		).
		OrderBy("grade", "rider_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list club grades query: %w", err)
	}

	var rows []clubGradeTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list club grades: %w", err)
	}

	out := make([]rider.ClubGrade, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubGradeFromRow(row))
	}

	return out, nil
}

func clubGradeFromRow(row clubGradeTableModel) rider.ClubGrade {
	return rider.ClubGrade{
		ID:      row.ID,
		ClubID:  row.ClubID,
		RiderID: row.RiderID,
		Grade:   row.Grade,
	}
}
