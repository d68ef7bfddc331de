package web

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"

	"github.com/kitbuilder587/bookfinder/internal/repository"
)

// brokenWriter принимает заголовки, но тело записать не может (клиент ушел)
type brokenWriter struct {
	header http.Header
	status int
}

func (w *brokenWriter) Header() http.Header {
	if w.header == nil {
		w.header = http.Header{}
	}
	return w.header
}

func (w *brokenWriter) WriteHeader(code int) { w.status = code }

func (w *brokenWriter) Write([]byte) (int, error) {
	return 0, errors.New("write: broken pipe")
}

func TestHealth_BodyWriteFailureIsLogged(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	h := NewHealthHandler(repository.NewMockSessionRepository(), "test", zap.New(core))

	w := &brokenWriter{}
	require.NotPanics(t, func() {
		h.Live(w, httptest.NewRequest(http.MethodGet, "/healthz", nil), nil)
	})

	assert.Equal(t, http.StatusOK, w.status)
	require.Equal(t, 1, logs.Len())
	entry := logs.All()[0]
	assert.Equal(t, "failed to write health response", entry.Message)
	assert.Equal(t, "/healthz", entry.ContextMap()["path"])
}

func TestHealth_ReadyLogsStoreFailure(t *testing.T) {
	core, logs := observer.New(zap.WarnLevel)
	store := repository.NewMockSessionRepository()
	store.PingErr = errors.New("connection refused")
	h := NewHealthHandler(store, "test", zap.New(core))

	rec := httptest.NewRecorder()
	h.Ready(rec, httptest.NewRequest(http.MethodGet, "/readyz", nil), nil)

	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
	require.Equal(t, 1, logs.Len())
	assert.Equal(t, "session store is not ready", logs.All()[0].Message)
}

func TestNewHealthHandler_NilLogger(t *testing.T) {
	h := NewHealthHandler(repository.NewMockSessionRepository(), "", nil)

	rec := httptest.NewRecorder()
	h.Live(rec, httptest.NewRequest(http.MethodGet, "/healthz", nil), nil)

	assert.Equal(t, http.StatusOK, rec.Code)
}
