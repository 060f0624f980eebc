package horoscoperepo

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/yanqian/astromaster/internal/domain/horoscope"
)

// SQLiteRepository stores bundles in the local SQLite database opened by
// sqlitedb.Open.
type SQLiteRepository struct {
	db *sql.DB
}

// NewSQLiteRepository wraps an open, migrated database.
func NewSQLiteRepository(db *sql.DB) *SQLiteRepository {
	return &SQLiteRepository{db: db}
}

// Find loads the bundle for key.
func (r *SQLiteRepository) Find(ctx context.Context, key horoscope.Key) (horoscope.Content, bool, error) {
	var raw string
	err := r.db.QueryRowContext(ctx, `
		SELECT content FROM horoscopes
		WHERE sign = ? AND period = ? AND date = ? AND language = ?`,
		key.Sign.Key(), string(key.Period), key.Date, string(key.Language)).Scan(&raw)
	if errors.Is(err, sql.ErrNoRows) {
		return horoscope.Content{}, false, nil
	}
	if err != nil {
		return horoscope.Content{}, false, fmt.Errorf("find horoscope: %w", err)
	}
	content, err := decodeContent([]byte(raw))
	if err != nil {
		return horoscope.Content{}, false, err
	}
	return content, true, nil
}

// Save writes the bundle, replacing an existing row with the same key.
func (r *SQLiteRepository) Save(ctx context.Context, content horoscope.Content) error {
	raw, err := json.Marshal(content)
	if err != nil {
		return fmt.Errorf("encode horoscope: %w", err)
	}
	key := content.Key()
	_, err = r.db.ExecContext(ctx, `
		INSERT OR REPLACE INTO horoscopes (id, sign, period, date, language, content, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?)`,
		key.ID(), key.Sign.Key(), string(key.Period), key.Date, string(key.Language), string(raw),
		time.Now().UTC().Format(time.RFC3339Nano))
	if err != nil {
		return fmt.Errorf("save horoscope: %w", err)
	}
	return nil
}

var _ horoscope.Repository = (*SQLiteRepository)(nil)
