package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/kitbuilder587/bookfinder/internal/domain"
	"github.com/kitbuilder587/bookfinder/internal/metrics"
	"github.com/kitbuilder587/bookfinder/internal/repository"
	"github.com/kitbuilder587/bookfinder/internal/search"
)

// SearchOutcome - то, что получает страница. Results никогда не nil.
// При успехе Error пустой, при ошибке Results пустой.
type SearchOutcome struct {
	Request  domain.SearchRequest
	Results  []search.Item
	Error    string
	Searched bool
}

func (o SearchOutcome) HasError() bool {
	return o.Error != ""
}

type SearchService interface {
	Search(ctx context.Context, sessionID string, req domain.SearchRequest) SearchOutcome
}

type SearchServiceDeps struct {
	Catalog  search.SearchClient
	Sessions repository.SessionRepository
	Logger   *zap.Logger
	Metrics  *metrics.Metrics
}

type searchService struct {
	catalog  search.SearchClient
	sessions repository.SessionRepository
	logger   *zap.Logger
	metrics  *metrics.Metrics
}

func NewSearchService(deps SearchServiceDeps) SearchService {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &searchService{
		catalog:  deps.Catalog,
		sessions: deps.Sessions,
		logger:   deps.Logger,
		metrics:  deps.Metrics,
	}
}

func (s *searchService) Search(ctx context.Context, sessionID string, req domain.SearchRequest) SearchOutcome {
	req.Sanitize()
	req.ApplyDefaults()

	out := SearchOutcome{
		Request:  req,
		Results:  []search.Item{},
		Searched: true,
	}

	if err := req.Validate(); err != nil {
		s.recordSearch("validation_error")
		out.Error = domain.EmptyQueryMessage
		return out
	}

	s.logger.Info("searching catalog",
		zap.String("session_id", sessionID),
		zap.Int("query_length", len(req.Query)),
		zap.String("language", req.Language),
		zap.String("print_type", req.PrintType),
		zap.String("order_by", req.OrderBy),
		zap.String("category", req.Category),
	)

	start := time.Now()
	items, err := s.catalog.Search(ctx, search.SearchRequest{
		Query:        req.CatalogQuery(),
		LangRestrict: req.Language,
		PrintType:    req.PrintType,
		OrderBy:      req.OrderBy,
		MaxResults:   domain.MaxResults,
	})
	if err != nil {
		s.recordCatalog("error", time.Since(start), 0)
		s.recordSearch("upstream_error")
		s.logger.Warn("catalog search failed",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
		out.Error = domain.APIErrorPrefix + describe(err)
		return out
	}
	if items == nil {
		items = []search.Item{}
	}
	s.recordCatalog("success", time.Since(start), len(items))

	// сессия - побочная запись; если не удалось, результаты все равно показываем
	if err := s.sessions.SaveResults(ctx, sessionID, items); err != nil {
		s.recordSessionWrite("error")
		s.logger.Error("failed to store results in session",
			zap.String("session_id", sessionID),
			zap.Error(err),
		)
	} else {
		s.recordSessionWrite("success")
	}

	s.recordSearch("success")
	s.logger.Info("search completed",
		zap.String("session_id", sessionID),
		zap.Int("results", len(items)),
	)

	out.Results = items
	return out
}

// describe - человекочитаемое описание ошибки каталога без внутренних префиксов
func describe(err error) string {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		return "request timed out"
	case errors.Is(err, context.Canceled):
		return "request canceled"
	}
	msg := err.Error()
	if msg == "" {
		return "unknown error"
	}
	return strings.TrimSpace(msg)
}

func (s *searchService) recordSearch(outcome string) {
	if s.metrics != nil {
		s.metrics.RecordSearch(outcome)
	}
}

func (s *searchService) recordCatalog(status string, d time.Duration, n int) {
	if s.metrics != nil {
		s.metrics.RecordCatalogRequest(status, d, n)
	}
}

func (s *searchService) recordSessionWrite(status string) {
	if s.metrics != nil {
		s.metrics.RecordSessionWrite(status)
	}
}
