package integration

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/kitbuilder587/bookfinder/internal/domain"
	pgRepo "github.com/kitbuilder587/bookfinder/internal/repository/postgres"
	"github.com/kitbuilder587/bookfinder/internal/search"
)

var testDB *pgRepo.DB

func TestMain(m *testing.M) {
	if os.Getenv("SHORT_TESTS") == "1" {
		os.Exit(0)
	}

	ctx := context.Background()

	pgContainer, err := postgres.Run(ctx, "postgres:16-alpine",
		postgres.WithDatabase("test_db"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	if err != nil {
		panic(err)
	}

	connStr, err := pgContainer.ConnectionString(ctx, "sslmode=disable")
	if err != nil {
		panic(err)
	}

	testDB, err = pgRepo.New(ctx, connStr)
	if err != nil {
		panic(err)
	}

	if err := testDB.Migrate(ctx); err != nil {
		panic(err)
	}

	code := m.Run()

	testDB.Close()
	pgContainer.Terminate(ctx)

	os.Exit(code)
}

func TestSessionRepository_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewSessionRepo(testDB, time.Hour)

	_, err := repo.GetResults(ctx, "missing-session")
	if !errors.Is(err, domain.ErrSessionNotFound) {
		t.Fatalf("GetResults() error = %v, want ErrSessionNotFound", err)
	}

	items := []search.Item{
		search.Item(`{"id":"a","volumeInfo":{"title":"Dune"}}`),
		search.Item(`{"id":"b","volumeInfo":{"title":"Emma"}}`),
	}
	if err := repo.SaveResults(ctx, "session-1", items); err != nil {
		t.Fatalf("SaveResults() error = %v", err)
	}

	got, err := repo.GetResults(ctx, "session-1")
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("GetResults() len = %d, want 2", len(got))
	}
	if got[0].Volume().Title != "Dune" || got[1].Volume().Title != "Emma" {
		t.Errorf("GetResults() order/content mismatch: %s", got)
	}

	// повторное сохранение перезаписывает, а не дописывает
	if err := repo.SaveResults(ctx, "session-1", items[:1]); err != nil {
		t.Fatalf("SaveResults() error = %v", err)
	}
	got, _ = repo.GetResults(ctx, "session-1")
	if len(got) != 1 {
		t.Errorf("GetResults() len after overwrite = %d, want 1", len(got))
	}

	if err := repo.SaveResults(ctx, "session-empty", nil); err != nil {
		t.Fatalf("SaveResults(nil) error = %v", err)
	}
	got, err = repo.GetResults(ctx, "session-empty")
	if err != nil {
		t.Fatalf("GetResults() error = %v", err)
	}
	if got == nil || len(got) != 0 {
		t.Errorf("GetResults() = %v, want empty non-nil", got)
	}

	if err := repo.Delete(ctx, "session-1"); err != nil {
		t.Fatalf("Delete() error = %v", err)
	}
	if _, err := repo.GetResults(ctx, "session-1"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("GetResults() after delete error = %v, want ErrSessionNotFound", err)
	}
}

func TestSessionRepository_Expiry_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	ctx := context.Background()
	repo := pgRepo.NewSessionRepo(testDB, 50*time.Millisecond)

	if err := repo.SaveResults(ctx, "short-lived", []search.Item{search.Item(`{"id":"x"}`)}); err != nil {
		t.Fatalf("SaveResults() error = %v", err)
	}

	time.Sleep(100 * time.Millisecond)

	if _, err := repo.GetResults(ctx, "short-lived"); !errors.Is(err, domain.ErrSessionNotFound) {
		t.Errorf("GetResults() error = %v, want ErrSessionNotFound for expired session", err)
	}

	n, err := repo.DeleteExpired(ctx)
	if err != nil {
		t.Fatalf("DeleteExpired() error = %v", err)
	}
	if n < 1 {
		t.Errorf("DeleteExpired() = %d, want >= 1", n)
	}

	if err := repo.Ping(ctx); err != nil {
		t.Errorf("Ping() error = %v", err)
	}
}

func TestMigrate_Idempotent_Integration(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test")
	}

	if err := testDB.Migrate(context.Background()); err != nil {
		t.Errorf("second Migrate() error = %v", err)
	}
}
