package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/club"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type ClubRepository struct {
	db *sqlx.DB
}

func NewClubRepository(db *sqlx.DB) *ClubRepository {
	return &ClubRepository{db: db}
}

func (r *ClubRepository) List(ctx context.Context) ([]club.Club, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(qb.IsNull("deleted_at")).
		OrderBy("slug").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select clubs query: %w", err)
	}

	var rows []clubTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select clubs: %w", err)
	}

	out := make([]club.Club, 0, len(rows))
	for _, row := range rows {
		out = append(out, clubFromRow(row))
	}

	return out, nil
}

func (r *ClubRepository) GetByID(ctx context.Context, clubID int64) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(
			qb.Eq("id", clubID),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by id query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by id: %w", err)
	}

	return clubFromRow(row), true, nil
}

func (r *ClubRepository) GetBySlug(ctx context.Context, slug string) (club.Club, bool, error) {
	query, args, err := qb.Select("*").From("clubs").
		Where(
			qb.Eq("slug", slug),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return club.Club{}, false, fmt.Errorf("build get club by slug query: %w", err)
	}

	var row clubTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return club.Club{}, false, nil
		}
		return club.Club{}, false, fmt.Errorf("get club by slug: %w", err)
	}

	return clubFromRow(row), true, nil
}

func (r *ClubRepository) Create(ctx context.Context, c club.Club) (club.Club, error) {
	insertModel := clubInsertModel{
		Slug:    c.Slug,
		Name:    c.Name,
		Website: nullableString(c.Website),
		ICalURL: nullableString(c.ICalURL),
		Grading: nullableString(c.Grading),
	}
	query, args, err := qb.InsertModel("clubs", insertModel, "RETURNING id")
	if err != nil {
		return club.Club{}, fmt.Errorf("build insert club query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return club.Club{}, fmt.Errorf("insert club: %w", err)
	}

	return c, nil
}

func clubFromRow(row clubTableModel) club.Club {
	return club.Club{
		ID:      row.ID,
		Slug:    row.Slug,
		Name:    row.Name,
		Website: nullStringToString(row.Website),
		ICalURL: nullStringToString(row.ICalURL),
		Grading: nullStringToString(row.Grading),
	}
}
