package repository

import (
	"context"

	"github.com/kitbuilder587/bookfinder/internal/search"
)

// ResultsKey - единственный ключ, который приложение пишет в сессию
const ResultsKey = "results"

// SessionRepository - серверное хранилище сессии пользователя.
// Save перезаписывает предыдущий список целиком, не дописывает.
type SessionRepository interface {
	SaveResults(ctx context.Context, sessionID string, items []search.Item) error
	// GetResults возвращает domain.ErrSessionNotFound, если для сессии ничего нет
	GetResults(ctx context.Context, sessionID string) ([]search.Item, error)
	Delete(ctx context.Context, sessionID string) error
	Ping(ctx context.Context) error
}
