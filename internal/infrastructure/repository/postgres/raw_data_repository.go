package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/openvelo/clubraces/internal/domain/rawdata"
	qb "github.com/openvelo/clubraces/internal/platform/querybuilder"
)

type RawDataRepository struct {
	db *sqlx.DB
}

func NewRawDataRepository(db *sqlx.DB) *RawDataRepository {
	return &RawDataRepository{db: db}
}

func (r *RawDataRepository) Save(ctx context.Context, p rawdata.Payload) error {
	insertModel := rawDataPayloadInsertModel{
		Source:      p.Source,
		EntityType:  p.EntityType,
		EntityKey:   p.EntityKey,
		ClubSlug:    nullableString(p.ClubSlug),
		RaceID:      nullableInt64(p.RaceID),
		Payload:     p.PayloadJSON,
		PayloadHash: p.PayloadHash,
	}

	query, args, err := qb.InsertModel("raw_uploads", insertModel, `ON CONFLICT (source, entity_type, entity_key) WHERE deleted_at IS NULL
DO UPDATE SET
    club_slug = EXCLUDED.club_slug,
    race_id = EXCLUDED.race_id,
    payload = EXCLUDED.payload,
    payload_hash = EXCLUDED.payload_hash,
    ingested_at = NOW(),
    deleted_at = NULL`)
	if err != nil {
		return fmt.Errorf("build upsert raw upload query: %w", err)
	}
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert raw upload entity=%s key=%s: %w", p.EntityType, p.EntityKey, err)
	}

	return nil
}

type rawDataPayloadInsertModel struct {
	Source      string         `db:"source"`
	EntityType  string         `db:"entity_type"`
	EntityKey   string         `db:"entity_key"`
	ClubSlug    sql.NullString `db:"club_slug"`
	RaceID      sql.NullInt64  `db:"race_id"`
	Payload     string         `db:"payload"`
	PayloadHash string         `db:"payload_hash"`
}
