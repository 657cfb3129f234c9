package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/race"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type courseTableModel struct {
	ID        int64      `db:"id"`
	Name      string     `db:"name"`
	Location  string     `db:"location"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

type courseInsertModel struct {
	Name     string `db:"name"`
	Location string `db:"location"`
}

type CourseRepository struct {
	db *sqlx.DB
}

func NewCourseRepository(db *sqlx.DB) *CourseRepository {
	return &CourseRepository{db: db}
}

func (r *CourseRepository) List(ctx context.Context) ([]race.Course, error) {
	query, args, err := qb.Select("*").From("racecourses").
		Where(qb.IsNull("deleted_at")).
		OrderBy("name").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select courses query: %w", err)
	}

	var rows []courseTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select courses: %w", err)
	}

	out := make([]race.Course, 0, len(rows))
	for _, row := range rows {
		out = append(out, race.Course{ID: row.ID, Name: row.Name, Location: row.Location})
	}

	return out, nil
}

func (r *CourseRepository) GetByName(ctx context.Context, name string) (race.Course, bool, error) {
	query, args, err := qb.Select("*").From("racecourses").
		Where(
			qb.Eq("name", name),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return race.Course{}, false, fmt.Errorf("build get course by name query: %w", err)
	}

	var row courseTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return race.Course{}, false, nil
		}
		return race.Course{}, false, fmt.Errorf("get course by name: %w", err)
	}

	return race.Course{ID: row.ID, Name: row.Name, Location: row.Location}, true, nil
}

func (r *CourseRepository) Create(ctx context.Context, c race.Course) (race.Course, error) {
	insertModel := courseInsertModel{Name: c.Name, Location: c.Location}
	query, args, err := qb.InsertModel("racecourses", insertModel, "RETURNING id")
	if err != nil {
		return race.Course{}, fmt.Errorf("build insert course query: %w", err)
	}

	if err := r.db.QueryRowxContext(ctx, query, args...).Scan(&c.ID); err != nil {
		return race.Course{}, fmt.Errorf("insert course: %w", err)
	}

	return c, nil
}
