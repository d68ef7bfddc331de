package postgres

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/kitbuilder587/bookfinder/internal/domain"
	"github.com/kitbuilder587/bookfinder/internal/repository"
	"github.com/kitbuilder587/bookfinder/internal/search"
)

const DefaultSessionTTL = 24 * time.Hour

type SessionRepo struct {
	db  *DB
	ttl time.Duration
	now func() time.Time
}

func NewSessionRepo(db *DB, ttl time.Duration) *SessionRepo {
	if ttl <= 0 {
		ttl = DefaultSessionTTL
	}
	return &SessionRepo{db: db, ttl: ttl, now: time.Now}
}

func (r *SessionRepo) SaveResults(ctx context.Context, sessionID string, items []search.Item) error {
	if items == nil {
		items = []search.Item{}
	}
	value, err := json.Marshal(items)
	if err != nil {
		return fmt.Errorf("marshal results: %w", err)
	}

	query := `
		INSERT INTO session_values (session_id, key, value, updated_at, expires_at)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (session_id, key) DO UPDATE
		SET value = EXCLUDED.value, updated_at = EXCLUDED.updated_at, expires_at = EXCLUDED.expires_at
	`

	now := r.now().UTC()
	_, err = r.db.Pool.Exec(ctx, query, sessionID, repository.ResultsKey, value, now, now.Add(r.ttl))
	if err != nil {
		return fmt.Errorf("save session results: %w", err)
	}
	return nil
}

func (r *SessionRepo) GetResults(ctx context.Context, sessionID string) ([]search.Item, error) {
	query := `
		SELECT value
		FROM session_values
		WHERE session_id = $1 AND key = $2 AND expires_at > $3
	`

	var raw []byte
	err := r.db.Pool.QueryRow(ctx, query, sessionID, repository.ResultsKey, r.now().UTC()).Scan(&raw)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrSessionNotFound
		}
		return nil, fmt.Errorf("get session results: %w", err)
	}

	var items []search.Item
	if err := json.Unmarshal(raw, &items); err != nil {
		return nil, fmt.Errorf("unmarshal session results: %w", err)
	}
	if items == nil {
		items = []search.Item{}
	}
	return items, nil
}

func (r *SessionRepo) Delete(ctx context.Context, sessionID string) error {
	_, err := r.db.Pool.Exec(ctx, `DELETE FROM session_values WHERE session_id = $1`, sessionID)
	if err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	return nil
}

// DeleteExpired - чистка протухших сессий, вызывается периодически из main
func (r *SessionRepo) DeleteExpired(ctx context.Context) (int64, error) {
	tag, err := r.db.Pool.Exec(ctx, `DELETE FROM session_values WHERE expires_at <= $1`, r.now().UTC())
	if err != nil {
		return 0, fmt.Errorf("delete expired sessions: %w", err)
	}
	return tag.RowsAffected(), nil
}

func (r *SessionRepo) Ping(ctx context.Context) error {
	return r.db.Ping(ctx)
}
