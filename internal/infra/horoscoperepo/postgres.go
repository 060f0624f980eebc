package horoscoperepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

// PostgresRepository stores bundles in the horoscopes table with the content
// as JSONB.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewPostgresRepository creates a new repository.
func NewPostgresRepository(pool *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{pool: pool}
}

// Find loads the bundle for key.
func (r *PostgresRepository) Find(ctx context.Context, key horoscope.Key) (horoscope.Content, bool, error) {
	var raw []byte
	err := r.pool.QueryRow(ctx, `
		SELECT content
		FROM horoscopes
		WHERE sign = $1 AND period = $2 AND date = $3 AND language = $4
	`, key.Sign.Key(), string(key.Period), key.Date, string(key.Language)).Scan(&raw)
	if errors.Is(err, pgx.ErrNoRows) {
		return horoscope.Content{}, false, nil
	}
	if err != nil {
		return horoscope.Content{}, false, err
	}
	content, err := decodeContent(raw)
	if err != nil {
		return horoscope.Content{}, false, err
	}
	return content, true, nil
}

// Save upserts the bundle.
func (r *PostgresRepository) Save(ctx context.Context, content horoscope.Content) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode horoscope: %w", err)
	}
	key := content.Key()
	_, err = r.pool.Exec(ctx, `
		INSERT INTO horoscopes (id, sign, period, date, language, content)
		VALUES ($1, $2, $3, $4, $5, $6::jsonb)
		ON CONFLICT (sign, period, date, language) DO UPDATE
		SET content = EXCLUDED.content
	`, key.ID(), key.Sign.Key(), string(key.Period), key.Date, string(key.Language), raw)
	return err
}

var _ horoscope.Repository = (*PostgresRepository)(nil)
